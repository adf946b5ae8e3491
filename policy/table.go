// SPDX-License-Identifier: MIT

package policy

import (
	"fmt"
	"iter"
)

// Table is a stage-indexed policy for stages 0..T-1. Stage T is implicit:
// every value there is 0.
type Table[S comparable, A any] struct {
	horizon int
	stages  []*Stage[S, A]
	filled  int
}

// NewTable returns an empty table for horizon T.
//
// Errors: ErrBadHorizon when T ≤ 0.
func NewTable[S comparable, A any](horizon int) (*Table[S, A], error) {
	if horizon <= 0 {
		return nil, fmt.Errorf("%w: T=%d", ErrBadHorizon, horizon)
	}

	return &Table[S, A]{horizon: horizon, stages: make([]*Stage[S, A], horizon)}, nil
}

// Horizon returns T.
func (tb *Table[S, A]) Horizon() int { return tb.horizon }

// Complete reports whether every stage 0..T-1 has been written.
func (tb *Table[S, A]) Complete() bool { return tb.filled == tb.horizon }

// Put stores a finished stage. Each stage index accepts exactly one write.
//
// Errors: ErrStageOutOfRange, ErrStageExists.
func (tb *Table[S, A]) Put(s *Stage[S, A]) error {
	if s == nil {
		return fmt.Errorf("%w: nil stage", ErrStageOutOfRange)
	}
	t := s.T()
	if t < 0 || t >= tb.horizon {
		return fmt.Errorf("%w: t=%d, T=%d", ErrStageOutOfRange, t, tb.horizon)
	}
	if tb.stages[t] != nil {
		return fmt.Errorf("%w: t=%d", ErrStageExists, t)
	}
	tb.stages[t] = s
	tb.filled++

	return nil
}

// Stage returns stage t if it has been written.
func (tb *Table[S, A]) Stage(t int) (*Stage[S, A], bool) {
	if t < 0 || t >= tb.horizon || tb.stages[t] == nil {
		return nil, false
	}

	return tb.stages[t], true
}

// Value returns V(t, x). Stage T, unwritten stages and absent states all
// read as 0.
func (tb *Table[S, A]) Value(t int, x S) float64 {
	s, ok := tb.Stage(t)
	if !ok {
		return 0
	}

	return s.Value(x)
}

// Decision returns the decision at (t, x).
func (tb *Table[S, A]) Decision(t int, x S) (Decision[A], bool) {
	s, ok := tb.Stage(t)
	if !ok {
		return Decision[A]{}, false
	}

	return s.Lookup(x)
}

// Stages enumerates written stages in ascending t.
func (tb *Table[S, A]) Stages() iter.Seq2[int, *Stage[S, A]] {
	return func(yield func(int, *Stage[S, A]) bool) {
		for t, s := range tb.stages {
			if s == nil {
				continue
			}
			if !yield(t, s) {
				return
			}
		}
	}
}

// Collect drains a stage sequence into a new table. The sequence's first
// error aborts collection; stages already received are discarded with it.
func Collect[S comparable, A any](seq iter.Seq2[*Stage[S, A], error], horizon int) (*Table[S, A], error) {
	tb, err := NewTable[S, A](horizon)
	if err != nil {
		return nil, err
	}
	for s, err := range seq {
		if err != nil {
			return nil, err
		}
		if err = tb.Put(s); err != nil {
			return nil, err
		}
	}
	if !tb.Complete() {
		return nil, fmt.Errorf("%w: %d of %d stages", ErrIncomplete, tb.filled, horizon)
	}

	return tb, nil
}
