// SPDX-License-Identifier: MIT

package mdp

import (
	"fmt"
	"iter"

	"github.com/katalvlaran/dynprog/induction"
	"github.com/katalvlaran/dynprog/policy"
	"github.com/katalvlaran/dynprog/prob"
)

// DisturbanceModel returns the distribution W(t, x, u) of the exogenous outcome.
type DisturbanceModel[S comparable, A any, W comparable] interface {
	Disturbance(t int, x S, u A) *prob.Dist[W]
}

// TransitionModel is the dynamics x' = step(t, x, u, w).
type TransitionModel[S comparable, A any, W comparable] interface {
	Step(t int, x S, u A, w W) S
}

// CostModel is the stage cost for one disturbance outcome. +Inf marks an
// infeasible outcome.
type CostModel[S comparable, A any, W comparable] interface {
	Cost(t int, x S, u A, w W) float64
}

// DisturbanceFunc adapts a function to DisturbanceModel.
type DisturbanceFunc[S comparable, A any, W comparable] func(t int, x S, u A) *prob.Dist[W]

// Disturbance implements DisturbanceModel.
func (f DisturbanceFunc[S, A, W]) Disturbance(t int, x S, u A) *prob.Dist[W] { return f(t, x, u) }

// StepFunc adapts a function to TransitionModel.
type StepFunc[S comparable, A any, W comparable] func(t int, x S, u A, w W) S

// Step implements TransitionModel.
func (f StepFunc[S, A, W]) Step(t int, x S, u A, w W) S { return f(t, x, u, w) }

// CostFunc adapts a function to CostModel.
type CostFunc[S comparable, A any, W comparable] func(t int, x S, u A, w W) float64

// Cost implements CostModel.
func (f CostFunc[S, A, W]) Cost(t int, x S, u A, w W) float64 { return f(t, x, u, w) }

// StaticDisturbance returns a model yielding d for every (t, x, u).
func StaticDisturbance[S comparable, A any, W comparable](d *prob.Dist[W]) DisturbanceModel[S, A, W] {
	return DisturbanceFunc[S, A, W](func(int, S, A) *prob.Dist[W] { return d })
}

// Problem bundles the models of a finite-horizon MDP.
//
// Disturbance may be nil (deterministic problem). Tolerance bounds |Σp − 1|
// for every disturbance distribution; 0 means prob.DefaultTolerance.
type Problem[S comparable, A any, W comparable] struct {
	Horizon     int
	States      induction.StateSpace[S]
	Actions     induction.ActionSpace[S, A]
	Disturbance DisturbanceModel[S, A, W]
	Step        TransitionModel[S, A, W]
	Cost        CostModel[S, A, W]
	Tolerance   float64
}

// Solver runs stochastic backward induction for one Problem.
type Solver[S comparable, A any, W comparable] struct {
	engine *induction.Engine[S, A]
}

// NewSolver validates p and prepares a solver.
//
// Errors: induction.ErrBadHorizon, induction.ErrNilModel.
func NewSolver[S comparable, A any, W comparable](p Problem[S, A, W], opts ...induction.Option) (*Solver[S, A, W], error) {
	switch {
	case p.Step == nil:
		return nil, fmt.Errorf("%w: transition", induction.ErrNilModel)
	case p.Cost == nil:
		return nil, fmt.Errorf("%w: cost", induction.ErrNilModel)
	}
	tol := p.Tolerance
	if tol <= 0 {
		tol = prob.DefaultTolerance
	}
	dist := p.Disturbance
	if dist == nil {
		var zero W
		dist = StaticDisturbance[S, A](prob.Point(zero))
	}
	step, cost := p.Step, p.Cost

	q := func(t int, x S, u A, next *policy.Stage[S, A]) (float64, error) {
		d := dist.Disturbance(t, x, u)
		if err := d.Validate(tol); err != nil {
			return 0, fmt.Errorf("disturbance at t=%d state=%v action=%v: %w", t, x, u, err)
		}
		var v float64
		for w, pw := range d.Support() {
			c := cost.Cost(t, x, u, w)
			v += pw * (c + induction.NextValue(next, step.Step(t, x, u, w)))
		}
		return v, nil
	}
	e, err := induction.NewEngine(p.Horizon, p.States, p.Actions, q, opts...)
	if err != nil {
		return nil, err
	}

	return &Solver[S, A, W]{engine: e}, nil
}

// Horizon returns T.
func (s *Solver[S, A, W]) Horizon() int { return s.engine.Horizon() }

// Stages yields the policy for t = T−1 … 0; each range recomputes from scratch.
func (s *Solver[S, A, W]) Stages() iter.Seq2[*policy.Stage[S, A], error] {
	return s.engine.Stages()
}

// Solve fills tbl (allocated when nil) and returns it.
func (s *Solver[S, A, W]) Solve(tbl *policy.Table[S, A]) (*policy.Table[S, A], error) {
	return s.engine.Solve(tbl)
}

// Solve is shorthand for NewSolver(p, opts...).Solve(nil).
func Solve[S comparable, A any, W comparable](p Problem[S, A, W], opts ...induction.Option) (*policy.Table[S, A], error) {
	s, err := NewSolver(p, opts...)
	if err != nil {
		return nil, err
	}

	return s.Solve(nil)
}
