// SPDX-License-Identifier: MIT

package policy

import (
	"fmt"
	"iter"
	"slices"
)

// Decision is the optimal action at one (stage, state) and its cost-to-go.
// Value is +Inf when every action is infeasible; Action is then the first
// admissible action.
type Decision[A any] struct {
	Value  float64
	Action A
}

// Stage maps each state of one stage to its Decision.
type Stage[S comparable, A any] struct {
	t         int
	states    []S
	decisions []Decision[A]
	index     map[S]int
}

// NewStage builds an immutable stage from parallel slices. Both slices are
// copied, so the caller may reuse them.
//
// Errors: ErrLengthMismatch, ErrDuplicateState.
//
// Complexity: O(n).
func NewStage[S comparable, A any](t int, states []S, decisions []Decision[A]) (*Stage[S, A], error) {
	if len(states) != len(decisions) {
		return nil, fmt.Errorf("%w: %d states, %d decisions", ErrLengthMismatch, len(states), len(decisions))
	}
	index := make(map[S]int, len(states))
	for i, x := range states {
		if _, dup := index[x]; dup {
			return nil, fmt.Errorf("%w: t=%d state=%v", ErrDuplicateState, t, x)
		}
		index[x] = i
	}

	return &Stage[S, A]{
		t:         t,
		states:    slices.Clone(states),
		decisions: slices.Clone(decisions),
		index:     index,
	}, nil
}

// T returns the stage index.
func (s *Stage[S, A]) T() int { return s.t }

// Len returns the number of states.
func (s *Stage[S, A]) Len() int { return len(s.states) }

// Lookup returns the decision for x.
func (s *Stage[S, A]) Lookup(x S) (Decision[A], bool) {
	i, ok := s.index[x]
	if !ok {
		return Decision[A]{}, false
	}

	return s.decisions[i], true
}

// Value returns V(t, x), or 0 when x is not part of the stage.
func (s *Stage[S, A]) Value(x S) float64 {
	if i, ok := s.index[x]; ok {
		return s.decisions[i].Value
	}

	return 0
}

// States enumerates the states in first-occurrence order.
func (s *Stage[S, A]) States() iter.Seq[S] {
	return slices.Values(s.states)
}

// All enumerates (state, decision) pairs in first-occurrence order.
func (s *Stage[S, A]) All() iter.Seq2[S, Decision[A]] {
	return func(yield func(S, Decision[A]) bool) {
		for i, x := range s.states {
			if !yield(x, s.decisions[i]) {
				return
			}
		}
	}
}

// Values returns a fresh state → value map.
func (s *Stage[S, A]) Values() map[S]float64 {
	m := make(map[S]float64, len(s.states))
	for i, x := range s.states {
		m[x] = s.decisions[i].Value
	}

	return m
}
