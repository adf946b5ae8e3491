// SPDX-License-Identifier: MIT

package markov

import (
	"errors"
	"fmt"
	"iter"

	"github.com/katalvlaran/dynprog/policy"
	"github.com/katalvlaran/dynprog/prob"
)

var (
	// ErrMissingRow indicates a state with no transition row.
	ErrMissingRow = errors.New("markov: missing transition row")

	// ErrBadHorizon indicates a negative horizon.
	ErrBadHorizon = errors.New("markov: horizon must be non-negative")
)

// Model is a transition-probability model: state → distribution of the
// next state.
type Model[S comparable] map[S]*prob.Dist[S]

// Row returns P(x).
func (m Model[S]) Row(x S) (*prob.Dist[S], bool) {
	d, ok := m[x]
	return d, ok && d != nil
}

// Validate checks every row with prob.Dist.Validate. The error names the
// offending state.
func (m Model[S]) Validate(tol float64) error {
	for x, d := range m {
		if err := d.Validate(tol); err != nil {
			return fmt.Errorf("row %v: %w", x, err)
		}
	}

	return nil
}

// Forward returns π' with π'(j) = Σ_i π(i)·P(i)(j). States of π without a
// row contribute nothing. The result enumerates next states in order of
// first contribution, so it is deterministic for a deterministic π.
//
// Complexity: O(Σ_{i ∈ supp π} |P(i)|).
func Forward[S comparable](pi *prob.Dist[S], P Model[S]) *prob.Dist[S] {
	next := prob.New[S]()
	for i, p := range pi.Support() {
		for j, q := range P[i].All() {
			next.Add(j, p*q)
		}
	}

	return next
}

// Propagate yields (t, π_t) for t = 0..T, starting from pi0. The sequence
// is finite and restartable.
func Propagate[S comparable](pi0 *prob.Dist[S], P Model[S], T int) iter.Seq2[int, *prob.Dist[S]] {
	return func(yield func(int, *prob.Dist[S]) bool) {
		pi := pi0
		for t := 0; t <= T; t++ {
			if !yield(t, pi) {
				return
			}
			if t < T {
				pi = Forward(pi, P)
			}
		}
	}
}

// Backward returns v with v(x) = g(x) + Σ_y P(x)(y)·next(y) for every x in
// states. A state missing from next counts as 0, and a state without a row
// keeps only its stage cost.
//
// Complexity: O(Σ_x |P(x)|).
func Backward[S comparable](P Model[S], states []S, g func(x S) float64, next map[S]float64) map[S]float64 {
	v := make(map[S]float64, len(states))
	for _, x := range states {
		var r float64
		for y, q := range P[x].All() {
			r += q * next[y]
		}
		v[x] = g(x) + r
	}

	return v
}

// Values yields (T, v_T), (T−1, v_{T−1}), …, (0, v_0) where v_T = g(T, ·)
// and earlier values follow Backward. It evaluates the fixed policy that
// generated P. The sequence is finite and restartable.
func Values[S comparable](T int, states []S, P Model[S], g func(t int, x S) float64) iter.Seq2[int, map[S]float64] {
	return func(yield func(int, map[S]float64) bool) {
		v := make(map[S]float64, len(states))
		for _, x := range states {
			v[x] = g(T, x)
		}
		if !yield(T, v) {
			return
		}
		for t := T - 1; t >= 0; t-- {
			v = Backward(P, states, func(x S) float64 { return g(t, x) }, v)
			if !yield(t, v) {
				return
			}
		}
	}
}

// ExpectedCosts yields (t, J_t) for t = 0..T where
// J_t = Σ_{s ≤ t} E_{π_s}[g(s, ·)] is the running expected cost.
func ExpectedCosts[S comparable](pi0 *prob.Dist[S], P Model[S], T int, g func(t int, x S) float64) iter.Seq2[int, float64] {
	return func(yield func(int, float64) bool) {
		var J float64
		for t, pi := range Propagate(pi0, P, T) {
			J += prob.ExpectedOver(pi, func(x S) float64 { return g(t, x) })
			if !yield(t, J) {
				return
			}
		}
	}
}

// ClosedLoop builds the chain induced by following stage's decisions:
// P(x)(step(x, u, w)) accumulates W(x, u)(w) for u = stage's action at x.
// States are visited in stage order and outcomes in W's canonical order.
func ClosedLoop[S comparable, A any, W comparable](
	stage *policy.Stage[S, A],
	step func(x S, u A, w W) S,
	dist func(x S, u A) *prob.Dist[W],
) Model[S] {
	m := make(Model[S], stage.Len())
	for x, d := range stage.All() {
		row := prob.New[S]()
		for w, p := range dist(x, d.Action).Support() {
			row.Add(step(x, d.Action, w), p)
		}
		m[x] = row
	}

	return m
}
