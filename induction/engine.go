// SPDX-License-Identifier: MIT

package induction

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"math"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/dynprog/policy"
)

// ActionValue returns Q(t, x, u): the expected stage cost of taking u in x
// at stage t plus the expected cost-to-go read from next. next is nil at
// t = T−1, where V_T ≡ 0; read it through NextValue.
//
// An ActionValue is called concurrently when Workers > 1 and must be pure.
type ActionValue[S comparable, A any] func(t int, x S, u A, next *policy.Stage[S, A]) (float64, error)

// NextValue reads V_{t+1}(x) with the terminal and missing-state
// conventions applied: a nil stage or an absent state both give 0.
func NextValue[S comparable, A any](next *policy.Stage[S, A], x S) float64 {
	if next == nil {
		return 0
	}

	return next.Value(x)
}

// Engine runs backward induction for one problem. It holds no state
// between calls, so Stages and Solve may be invoked repeatedly.
type Engine[S comparable, A any] struct {
	horizon int
	states  StateSpace[S]
	actions ActionSpace[S, A]
	q       ActionValue[S, A]
	opts    Options
}

// NewEngine validates the problem shape and applies opts.
//
// Errors: ErrBadHorizon, ErrNilModel.
func NewEngine[S comparable, A any](
	horizon int,
	X StateSpace[S],
	U ActionSpace[S, A],
	q ActionValue[S, A],
	opts ...Option,
) (*Engine[S, A], error) {
	if horizon <= 0 {
		return nil, fmt.Errorf("%w: T=%d", ErrBadHorizon, horizon)
	}
	switch {
	case X == nil:
		return nil, fmt.Errorf("%w: state space", ErrNilModel)
	case U == nil:
		return nil, fmt.Errorf("%w: action space", ErrNilModel)
	case q == nil:
		return nil, fmt.Errorf("%w: action value", ErrNilModel)
	}

	return &Engine[S, A]{horizon: horizon, states: X, actions: U, q: q, opts: Apply(opts...)}, nil
}

// Horizon returns T.
func (e *Engine[S, A]) Horizon() int { return e.horizon }

// Stages yields the finished stages T−1, T−2, …, 0, strictly descending.
// A failing stage yields (nil, err) and ends the sequence. Each range over
// the sequence recomputes from scratch.
func (e *Engine[S, A]) Stages() iter.Seq2[*policy.Stage[S, A], error] {
	return func(yield func(*policy.Stage[S, A], error) bool) {
		var next *policy.Stage[S, A]
		for t := e.horizon - 1; t >= 0; t-- {
			s, err := e.stage(t, next)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(s, nil) {
				return
			}
			next = s
		}
	}
}

// Solve fills tbl with every stage and returns it. A nil tbl is allocated.
// Stages finished before a failure stay in tbl; a failing stage is never
// written.
//
// Errors: ErrHorizonMismatch, policy.ErrStageExists, any stage error.
func (e *Engine[S, A]) Solve(tbl *policy.Table[S, A]) (*policy.Table[S, A], error) {
	if tbl == nil {
		var err error
		if tbl, err = policy.NewTable[S, A](e.horizon); err != nil {
			return nil, err
		}
	}
	if tbl.Horizon() != e.horizon {
		return nil, fmt.Errorf("%w: table T=%d, problem T=%d", ErrHorizonMismatch, tbl.Horizon(), e.horizon)
	}
	for s, err := range e.Stages() {
		if err != nil {
			return tbl, err
		}
		if err = tbl.Put(s); err != nil {
			return tbl, err
		}
	}

	return tbl, nil
}

// stage evaluates one stage against the finished next stage.
func (e *Engine[S, A]) stage(t int, next *policy.Stage[S, A]) (*policy.Stage[S, A], error) {
	ctx := e.opts.Ctx
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	xs := drainStates(e.states, t)
	e.opts.Observer.StageStarted(t, len(xs))

	ctx, span := e.opts.Tracer.Start(ctx, "induction.stage",
		trace.WithAttributes(
			attribute.Int("dp.stage", t),
			attribute.Int("dp.states", len(xs)),
			attribute.Int("dp.workers", e.opts.Workers),
		),
	)
	defer span.End()

	decisions := make([]policy.Decision[A], len(xs))
	evals := make([]int, len(xs))
	err := e.forEach(ctx, len(xs), func(i int) error {
		d, n, err := e.decide(t, xs[i], next)
		decisions[i], evals[i] = d, n
		return err
	})

	var s *policy.Stage[S, A]
	if err == nil {
		s, err = policy.NewStage(t, xs, decisions)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.opts.Observer.StageFailed(t, err)
		e.opts.Logger.Debug("induction stage failed", slog.Int("stage", t), slog.String("error", err.Error()))
		return nil, err
	}

	total := 0
	for _, n := range evals {
		total += n
	}
	elapsed := time.Since(start)
	span.SetAttributes(attribute.Int("dp.evaluations", total))
	e.opts.Observer.StageFinished(t, total, elapsed)
	e.opts.Logger.Debug("induction stage complete",
		slog.Int("stage", t),
		slog.Int("states", len(xs)),
		slog.Int("evaluations", total),
		slog.Duration("elapsed", elapsed),
	)

	return s, nil
}

// forEach runs fn(0..n-1), inline for one worker and through a bounded
// errgroup otherwise. It returns after every started call finished.
func (e *Engine[S, A]) forEach(ctx context.Context, n int, fn func(i int) error) error {
	if e.opts.Workers <= 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(i)
		})
	}

	return g.Wait()
}

// decide minimises Q(t, x, ·) over U(t, x). The first action reaching the
// minimum wins; an all-infeasible state keeps the first action at +Inf.
func (e *Engine[S, A]) decide(t int, x S, next *policy.Stage[S, A]) (policy.Decision[A], int, error) {
	var (
		best  policy.Decision[A]
		evals int
	)
	for u := range e.actions.Actions(t, x) {
		v, err := e.q(t, x, u, next)
		evals++
		if err != nil {
			return policy.Decision[A]{}, evals, err
		}
		if math.IsNaN(v) {
			return policy.Decision[A]{}, evals, fmt.Errorf("%w: NaN at t=%d state=%v action=%v", ErrInvalidCost, t, x, u)
		}
		if evals == 1 || v < best.Value {
			best = policy.Decision[A]{Value: v, Action: u}
		}
	}
	if evals == 0 {
		return policy.Decision[A]{}, 0, fmt.Errorf("%w: t=%d state=%v", ErrEmptyActionSpace, t, x)
	}

	return best, evals, nil
}
