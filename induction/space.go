// SPDX-License-Identifier: MIT

package induction

import (
	"iter"
	"slices"
)

// StateSpace enumerates the finite state set X(t) of a stage.
// Duplicates are allowed; the first occurrence fixes a state's position.
type StateSpace[S comparable] interface {
	States(t int) iter.Seq[S]
}

// ActionSpace enumerates the admissible actions U(t, x). The enumeration
// must be finite, non-empty for every visited state, and stable, because
// ties are broken by enumeration order.
type ActionSpace[S comparable, A any] interface {
	Actions(t int, x S) iter.Seq[A]
}

// StatesFunc adapts a slice-returning function to StateSpace.
type StatesFunc[S comparable] func(t int) []S

// States implements StateSpace.
func (f StatesFunc[S]) States(t int) iter.Seq[S] { return slices.Values(f(t)) }

// StatesSeq adapts a sequence-returning function to StateSpace.
type StatesSeq[S comparable] func(t int) iter.Seq[S]

// States implements StateSpace.
func (f StatesSeq[S]) States(t int) iter.Seq[S] { return f(t) }

// StaticStates returns a StateSpace that yields xs at every stage.
func StaticStates[S comparable](xs ...S) StateSpace[S] {
	xs = slices.Clone(xs)
	return StatesFunc[S](func(int) []S { return xs })
}

// ActionsFunc adapts a slice-returning function to ActionSpace.
type ActionsFunc[S comparable, A any] func(t int, x S) []A

// Actions implements ActionSpace.
func (f ActionsFunc[S, A]) Actions(t int, x S) iter.Seq[A] { return slices.Values(f(t, x)) }

// ActionsSeq adapts a sequence-returning function to ActionSpace.
type ActionsSeq[S comparable, A any] func(t int, x S) iter.Seq[A]

// Actions implements ActionSpace.
func (f ActionsSeq[S, A]) Actions(t int, x S) iter.Seq[A] { return f(t, x) }

// StaticActions returns an ActionSpace that yields us for every (t, x).
func StaticActions[S comparable, A any](us ...A) ActionSpace[S, A] {
	us = slices.Clone(us)
	return ActionsFunc[S, A](func(int, S) []A { return us })
}

// drainStates materialises X(t) once, dropping repeated states.
func drainStates[S comparable](X StateSpace[S], t int) []S {
	var (
		xs   []S
		seen = make(map[S]struct{})
	)
	for x := range X.States(t) {
		if _, dup := seen[x]; dup {
			continue
		}
		seen[x] = struct{}{}
		xs = append(xs, x)
	}

	return xs
}
