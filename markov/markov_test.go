// SPDX-License-Identifier: MIT

package markov_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dynprog/markov"
	"github.com/katalvlaran/dynprog/policy"
	"github.com/katalvlaran/dynprog/prob"
)

const T = 50

// stock is the inventory chain under the "refill when at most one unit is
// left" policy with demand {0:.7, 1:.2, 2:.1}.
func stock() (markov.Model[int], *prob.Dist[int], []int) {
	refill := prob.FromMap(map[int]float64{4: .1, 5: .2, 6: .7})
	P := markov.Model[int]{
		0: refill,
		1: refill.Clone(),
		2: prob.FromMap(map[int]float64{0: .1, 1: .2, 2: .7}),
		3: prob.FromMap(map[int]float64{1: .1, 2: .2, 3: .7}),
		4: prob.FromMap(map[int]float64{2: .1, 3: .2, 4: .7}),
		5: prob.FromMap(map[int]float64{3: .1, 4: .2, 5: .7}),
		6: prob.FromMap(map[int]float64{4: .1, 5: .2, 6: .7}),
	}
	return P, prob.Point(6), []int{0, 1, 2, 3, 4, 5, 6}
}

// cost is .1 per unit held plus 1 for every stage that triggers a refill.
func cost(_ int, x int) float64 {
	c := 0.1 * float64(x)
	if x <= 1 {
		c++
	}
	return c
}

// TestModel_Validate names the bad row.
func TestModel_Validate(t *testing.T) {
	P, _, _ := stock()
	require.NoError(t, P.Validate(prob.DefaultTolerance))

	P[3] = prob.FromMap(map[int]float64{1: .5, 2: .2})
	err := P.Validate(prob.DefaultTolerance)
	assert.ErrorIs(t, err, prob.ErrUnnormalizedDistribution)
	assert.Contains(t, err.Error(), "row 3")
}

// TestPropagate_MassPreserved checks Σπ_t = 1 for every t.
func TestPropagate_MassPreserved(t *testing.T) {
	P, pi0, _ := stock()
	n := 0
	for st, pi := range markov.Propagate(pi0, P, T) {
		assert.InDelta(t, 1.0, pi.Mass(), 1e-9, "t=%d", st)
		n++
	}
	assert.Equal(t, T+1, n)
}

// TestForward_Linear checks π' on a two-state chain by hand.
func TestForward_Linear(t *testing.T) {
	P := markov.Model[string]{
		"a": prob.Of(prob.Outcome[string]{Key: "a", P: .9}, prob.Outcome[string]{Key: "b", P: .1}),
		"b": prob.Of(prob.Outcome[string]{Key: "a", P: .5}, prob.Outcome[string]{Key: "b", P: .5}),
	}
	pi := prob.Of(prob.Outcome[string]{Key: "a", P: .2}, prob.Outcome[string]{Key: "b", P: .8})
	next := markov.Forward(pi, P)
	assert.InDelta(t, .2*.9+.8*.5, next.P("a"), 1e-15)
	assert.InDelta(t, .2*.1+.8*.5, next.P("b"), 1e-15)

	// A state without a row leaks its mass.
	orphan := markov.Forward(prob.Point("z"), P)
	assert.Zero(t, orphan.Len())
}

// TestExpectedCosts_Reference checks the exact cumulative cost of the chain.
func TestExpectedCosts_Reference(t *testing.T) {
	P, pi0, _ := stock()
	var last float64
	n := 0
	for st, J := range markov.ExpectedCosts(pi0, P, T, cost) {
		assert.Equal(t, n, st)
		assert.GreaterOrEqual(t, J, last)
		last = J
		n++
	}
	assert.InDelta(t, 23.1286, last, 1e-4)
}

// TestValues_Reference checks the backward values and their agreement with
// forward propagation from the same start.
func TestValues_Reference(t *testing.T) {
	P, pi0, X := stock()
	vs := make(map[int]map[int]float64)
	var order []int
	for st, v := range markov.Values(T, X, P, cost) {
		vs[st] = v
		order = append(order, st)
	}
	require.Len(t, order, T+1)
	assert.Equal(t, T, order[0])
	assert.Equal(t, 0, order[T])

	assert.InDelta(t, .446, vs[0][6]-vs[1][6], 1e-2)
	for _, x := range X {
		assert.Equal(t, cost(T, x), vs[T][x])
	}

	// v_0 started at 6 is the total expected cost computed forwards.
	var J float64
	for _, j := range markov.ExpectedCosts(pi0, P, T, cost) {
		J = j
	}
	assert.InDelta(t, J, vs[0][6], 1e-9)
}

// TestBackward_MissingEntries treats absent next values and rows as 0.
func TestBackward_MissingEntries(t *testing.T) {
	P := markov.Model[int]{1: prob.FromMap(map[int]float64{1: .5, 2: .5})}
	v := markov.Backward(P, []int{1, 3}, func(x int) float64 { return float64(x) }, map[int]float64{1: 10})
	assert.Equal(t, map[int]float64{1: 1 + 5, 3: 3}, v)
}

// TestTrajectory covers length, determinism and failures.
func TestTrajectory(t *testing.T) {
	P, pi0, _ := stock()

	a, err := markov.Trajectory(pi0, P, T, prob.NewRand(11))
	require.NoError(t, err)
	b, err := markov.Trajectory(pi0, P, T, prob.NewRand(11))
	require.NoError(t, err)
	assert.Len(t, a, T+1)
	assert.Equal(t, a, b)
	assert.Equal(t, 6, a[0])
	for i := 1; i < len(a); i++ {
		row, _ := P.Row(a[i-1])
		assert.Positive(t, row.P(a[i]), "step %d must follow a positive transition", i)
	}

	one, err := markov.Trajectory(pi0, P, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{6}, one)

	_, err = markov.Trajectory(pi0, P, -1, nil)
	assert.ErrorIs(t, err, markov.ErrBadHorizon)

	_, err = markov.Trajectory(prob.New[int](), P, 3, nil)
	assert.ErrorIs(t, err, prob.ErrEmptyDistribution)

	broken := markov.Model[int]{6: prob.Point(9)}
	_, err = markov.Trajectory(pi0, broken, 3, nil)
	assert.ErrorIs(t, err, markov.ErrMissingRow)
}

// TestWalker_ErrResets clears a previous failure on the next range.
func TestWalker_ErrResets(t *testing.T) {
	P := markov.Model[int]{6: prob.Point(6)}
	w, err := markov.NewWalker(prob.Point(6), P, 3, prob.NewRand(1))
	require.NoError(t, err)
	n := 0
	for range w.Steps() {
		n++
	}
	assert.NoError(t, w.Err())
	assert.Equal(t, 4, n)

	for range w.Steps() {
		break
	}
	assert.NoError(t, w.Err())
}

// TestTrajectory_Unnormalized rejects rows and initial distributions whose
// mass is not 1 instead of sampling them with clamped odds.
func TestTrajectory_Unnormalized(t *testing.T) {
	short := prob.FromMap(map[int]float64{0: .3, 1: .3})
	heavy := prob.FromMap(map[int]float64{0: 2, 1: 2})
	P := markov.Model[int]{0: short, 1: heavy}

	_, err := markov.Trajectory(prob.Point(0), P, 5, prob.NewRand(3))
	require.ErrorIs(t, err, prob.ErrUnnormalizedDistribution)
	assert.ErrorContains(t, err, "state 0")

	ok := markov.Model[int]{0: prob.Point(1), 1: heavy}
	_, err = markov.Trajectory(prob.Point(0), ok, 5, prob.NewRand(3))
	require.ErrorIs(t, err, prob.ErrUnnormalizedDistribution)
	assert.ErrorContains(t, err, "state 1")

	_, err = markov.Trajectory(short, markov.Model[int]{0: prob.Point(0), 1: prob.Point(1)}, 5, prob.NewRand(3))
	require.ErrorIs(t, err, prob.ErrUnnormalizedDistribution)
	assert.ErrorContains(t, err, "initial distribution")

	_, err = markov.EstimateCost(context.Background(), prob.Point(0), P, 5, cost, markov.EstimateConfig{Walks: 50, Seed: 3})
	assert.ErrorIs(t, err, prob.ErrUnnormalizedDistribution)
	_, err = markov.EstimateCost(context.Background(), prob.Point(0), P, 5, cost, markov.EstimateConfig{Walks: 50, Seed: 3, Workers: 4})
	assert.ErrorIs(t, err, prob.ErrUnnormalizedDistribution)

	loose := markov.Model[int]{0: prob.FromMap(map[int]float64{0: .5, 1: .5 + 1e-6}), 1: prob.Point(1)}
	_, err = markov.EstimateCost(context.Background(), prob.Point(0), loose, 5, cost, markov.EstimateConfig{Walks: 10, Seed: 3})
	assert.ErrorIs(t, err, prob.ErrUnnormalizedDistribution)
	_, err = markov.EstimateCost(context.Background(), prob.Point(0), loose, 5, cost, markov.EstimateConfig{Walks: 10, Seed: 3, Tolerance: 1e-3})
	assert.NoError(t, err)
}

// TestEstimateCost_CrossValidation compares Monte Carlo with the exact value.
func TestEstimateCost_CrossValidation(t *testing.T) {
	P, pi0, _ := stock()
	var exact float64
	for _, j := range markov.ExpectedCosts(pi0, P, T, cost) {
		exact = j
	}

	est, err := markov.EstimateCost(context.Background(), pi0, P, T, cost, markov.EstimateConfig{Walks: 1000, Seed: 7})
	require.NoError(t, err)
	m, err := est.Mean()
	require.NoError(t, err)
	se, err := est.StdErr()
	require.NoError(t, err)
	assert.Equal(t, 1000, est.Count())
	assert.Less(t, math.Abs(m-exact), 5*se, "mean %.4f, exact %.4f, se %.4f", m, exact, se)

	big, err := markov.EstimateCost(context.Background(), pi0, P, T, cost, markov.EstimateConfig{Walks: 20000, Seed: 7, Workers: 4})
	require.NoError(t, err)
	m, err = big.Mean()
	require.NoError(t, err)
	assert.Greater(t, m, 23.0)
	assert.Less(t, m, 24.0)
}

// TestEstimateCost_WorkerInvariance reproduces the estimate bit for bit.
func TestEstimateCost_WorkerInvariance(t *testing.T) {
	P, pi0, _ := stock()
	a, err := markov.EstimateCost(context.Background(), pi0, P, T, cost, markov.EstimateConfig{Walks: 500, Seed: 3})
	require.NoError(t, err)
	b, err := markov.EstimateCost(context.Background(), pi0, P, T, cost, markov.EstimateConfig{Walks: 500, Seed: 3, Workers: 8})
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = markov.EstimateCost(context.Background(), pi0, P, T, cost, markov.EstimateConfig{})
	assert.ErrorIs(t, err, prob.ErrEmptySample)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = markov.EstimateCost(ctx, pi0, P, T, cost, markov.EstimateConfig{Walks: 5})
	assert.ErrorIs(t, err, context.Canceled)
}

// TestClosedLoop rebuilds the chain from a refill policy stage.
func TestClosedLoop(t *testing.T) {
	P, _, X := stock()
	decisions := make([]policy.Decision[int], len(X))
	for i, x := range X {
		if x <= 1 {
			decisions[i].Action = 6 - x
		}
	}
	stage, err := policy.NewStage(0, X, decisions)
	require.NoError(t, err)

	demand := prob.FromMap(map[int]float64{0: .7, 1: .2, 2: .1})
	got := markov.ClosedLoop(stage,
		func(x, u, d int) int { return x + u - d },
		func(int, int) *prob.Dist[int] { return demand },
	)
	require.Len(t, got, len(P))
	for x, row := range P {
		assert.InDelta(t, 0, prob.TotalVariation(row, got[x]), 1e-12, "row %d", x)
	}
}
