// SPDX-License-Identifier: MIT

package bellman

import (
	"fmt"
	"iter"

	"github.com/katalvlaran/dynprog/induction"
	"github.com/katalvlaran/dynprog/policy"
)

// TransitionModel is the deterministic dynamics x' = step(t, x, u).
type TransitionModel[S comparable, A any] interface {
	Step(t int, x S, u A) S
}

// CostModel is the stage cost. +Inf marks an infeasible move.
type CostModel[S comparable, A any] interface {
	Cost(t int, x S, u A) float64
}

// StepFunc adapts a function to TransitionModel.
type StepFunc[S comparable, A any] func(t int, x S, u A) S

// Step implements TransitionModel.
func (f StepFunc[S, A]) Step(t int, x S, u A) S { return f(t, x, u) }

// CostFunc adapts a function to CostModel.
type CostFunc[S comparable, A any] func(t int, x S, u A) float64

// Cost implements CostModel.
func (f CostFunc[S, A]) Cost(t int, x S, u A) float64 { return f(t, x, u) }

// Problem bundles the models of a deterministic control problem.
// Every field is required.
type Problem[S comparable, A any] struct {
	Horizon int
	States  induction.StateSpace[S]
	Actions induction.ActionSpace[S, A]
	Step    TransitionModel[S, A]
	Cost    CostModel[S, A]
}

// Solver runs backward induction for one Problem.
type Solver[S comparable, A any] struct {
	engine *induction.Engine[S, A]
}

// NewSolver validates p and prepares a solver.
//
// Errors: induction.ErrBadHorizon, induction.ErrNilModel.
func NewSolver[S comparable, A any](p Problem[S, A], opts ...induction.Option) (*Solver[S, A], error) {
	switch {
	case p.Step == nil:
		return nil, fmt.Errorf("%w: transition", induction.ErrNilModel)
	case p.Cost == nil:
		return nil, fmt.Errorf("%w: cost", induction.ErrNilModel)
	}
	step, cost := p.Step, p.Cost

	q := func(t int, x S, u A, next *policy.Stage[S, A]) (float64, error) {
		c := cost.Cost(t, x, u)
		return c + induction.NextValue(next, step.Step(t, x, u)), nil
	}
	e, err := induction.NewEngine(p.Horizon, p.States, p.Actions, q, opts...)
	if err != nil {
		return nil, err
	}

	return &Solver[S, A]{engine: e}, nil
}

// Horizon returns T.
func (s *Solver[S, A]) Horizon() int { return s.engine.Horizon() }

// Stages yields the policy for t = T−1 … 0. The sequence is finite and
// restartable: each range recomputes from scratch.
func (s *Solver[S, A]) Stages() iter.Seq2[*policy.Stage[S, A], error] {
	return s.engine.Stages()
}

// Solve fills tbl (allocated when nil) and returns it.
func (s *Solver[S, A]) Solve(tbl *policy.Table[S, A]) (*policy.Table[S, A], error) {
	return s.engine.Solve(tbl)
}

// Solve is shorthand for NewSolver(p, opts...).Solve(nil).
func Solve[S comparable, A any](p Problem[S, A], opts ...induction.Option) (*policy.Table[S, A], error) {
	s, err := NewSolver(p, opts...)
	if err != nil {
		return nil, err
	}

	return s.Solve(nil)
}
