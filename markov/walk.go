// SPDX-License-Identifier: MIT

package markov

import (
	"context"
	"fmt"
	"iter"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/dynprog/prob"
)

// Walker simulates one random walk of T+1 states: x_0 ~ π_0, then
// x_{t+1} ~ P(x_t). Like bufio.Scanner, Steps stops on the first failure
// and Err reports it afterwards.
//
// π_0 and every visited row must sum to 1 within the walker's tolerance;
// Pick clamps overshooting draws, so an unnormalised row would otherwise
// skew the walk without failing.
//
// A Walker caches one cumulative table per visited row and is not safe for
// concurrent use.
type Walker[S comparable] struct {
	pi0 *prob.Dist[S]
	P   Model[S]
	T   int
	r   *rand.Rand
	tol float64
	cdf map[S]*prob.CDF[S]
	err error
}

// NewWalker prepares a walk checked against prob.DefaultTolerance.
// A nil r falls back to prob.NewRand(0).
//
// Errors: ErrBadHorizon when T < 0.
func NewWalker[S comparable](pi0 *prob.Dist[S], P Model[S], T int, r *rand.Rand) (*Walker[S], error) {
	if T < 0 {
		return nil, fmt.Errorf("%w: T=%d", ErrBadHorizon, T)
	}
	if r == nil {
		r = prob.NewRand(0)
	}

	return &Walker[S]{pi0: pi0, P: P, T: T, r: r, tol: prob.DefaultTolerance, cdf: make(map[S]*prob.CDF[S])}, nil
}

// SetTolerance changes the normalisation tolerance; tol <= 0 restores
// prob.DefaultTolerance. Rows already cached are not re-checked.
func (w *Walker[S]) SetTolerance(tol float64) {
	if tol <= 0 {
		tol = prob.DefaultTolerance
	}
	w.tol = tol
}

// Steps yields (t, x_t) for t = 0..T. Every range draws a fresh walk from
// the walker's RNG, so the sequence is not restartable.
func (w *Walker[S]) Steps() iter.Seq2[int, S] {
	return func(yield func(int, S) bool) {
		w.err = nil
		first, err := cumulative(w.pi0, w.tol)
		if err != nil {
			w.err = fmt.Errorf("initial distribution: %w", err)
			return
		}
		x := first.Pick(w.r.Float64())
		if !yield(0, x) {
			return
		}
		for t := 1; t <= w.T; t++ {
			c, err := w.row(x)
			if err != nil {
				w.err = fmt.Errorf("t=%d: %w", t, err)
				return
			}
			x = c.Pick(w.r.Float64())
			if !yield(t, x) {
				return
			}
		}
	}
}

// Err returns the error that ended the last Steps range, if any.
func (w *Walker[S]) Err() error { return w.err }

func (w *Walker[S]) row(x S) (*prob.CDF[S], error) {
	if c, ok := w.cdf[x]; ok {
		return c, nil
	}
	d, ok := w.P.Row(x)
	if !ok {
		return nil, fmt.Errorf("%w: state %v", ErrMissingRow, x)
	}
	c, err := cumulative(d, w.tol)
	if err != nil {
		return nil, fmt.Errorf("state %v: %w", x, err)
	}
	w.cdf[x] = c

	return c, nil
}

func cumulative[S comparable](d *prob.Dist[S], tol float64) (*prob.CDF[S], error) {
	if err := d.Validate(tol); err != nil {
		return nil, err
	}

	return prob.Cumulative(d)
}

// Trajectory collects one walk of T+1 states.
func Trajectory[S comparable](pi0 *prob.Dist[S], P Model[S], T int, r *rand.Rand) ([]S, error) {
	w, err := NewWalker(pi0, P, T, r)
	if err != nil {
		return nil, err
	}
	xs := make([]S, 0, T+1)
	for _, x := range w.Steps() {
		xs = append(xs, x)
	}
	if err = w.Err(); err != nil {
		return nil, err
	}

	return xs, nil
}

// EstimateConfig parameterises EstimateCost.
type EstimateConfig struct {
	// Walks is the number of simulated trajectories (> 0).
	Walks int
	// Seed selects the RNG family; walk i uses prob.StreamRand(Seed, i).
	Seed int64
	// Workers bounds concurrent walks; ≤ 1 runs inline.
	Workers int
	// Tolerance bounds |Σp − 1| for π_0 and every visited row;
	// 0 means prob.DefaultTolerance.
	Tolerance float64
}

// EstimateCost simulates cfg.Walks independent walks and feeds the
// cumulative cost Σ_{t=0..T} g(t, x_t) of each into a prob.Estimator.
// Walk costs are accumulated in walk order, so the estimate is identical
// for every worker count.
//
// Errors: prob.ErrEmptySample when cfg.Walks ≤ 0, walk errors otherwise
// (prob.ErrUnnormalizedDistribution for a row that does not sum to 1).
func EstimateCost[S comparable](
	ctx context.Context,
	pi0 *prob.Dist[S],
	P Model[S],
	T int,
	g func(t int, x S) float64,
	cfg EstimateConfig,
) (prob.Estimator, error) {
	var est prob.Estimator
	if cfg.Walks <= 0 {
		return est, prob.ErrEmptySample
	}

	costs := make([]float64, cfg.Walks)
	walk := func(i int) error {
		w, err := NewWalker(pi0, P, T, prob.StreamRand(cfg.Seed, uint64(i)))
		if err != nil {
			return err
		}
		w.SetTolerance(cfg.Tolerance)
		var c float64
		for t, x := range w.Steps() {
			c += g(t, x)
		}
		if err = w.Err(); err != nil {
			return fmt.Errorf("walk %d: %w", i, err)
		}
		costs[i] = c
		return nil
	}

	if cfg.Workers <= 1 {
		for i := range costs {
			if err := ctx.Err(); err != nil {
				return est, err
			}
			if err := walk(i); err != nil {
				return est, err
			}
		}
	} else {
		eg, gctx := errgroup.WithContext(ctx)
		eg.SetLimit(cfg.Workers)
		for i := range costs {
			eg.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				return walk(i)
			})
		}
		if err := eg.Wait(); err != nil {
			return est, err
		}
	}

	for _, c := range costs {
		est.Add(c)
	}

	return est, nil
}
