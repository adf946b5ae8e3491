// SPDX-License-Identifier: MIT

package scenario

import (
	"fmt"
	"math"

	"github.com/katalvlaran/dynprog/prob"
)

// Option customises a scenario. Options that make no sense on their own
// (negative horizon, probability outside [0,1], ...) panic at construction,
// so a misuse fails at the call site. Combinations are checked by the
// scenario constructors and reported as ErrBadParameter.
type Option func(*config)

// WithHorizon sets T. Panics if T < 1.
func WithHorizon(T int) Option {
	if T < 1 {
		panic(fmt.Sprintf("scenario: WithHorizon(%d): horizon must be >= 1", T))
	}
	return func(c *config) { c.horizon = T }
}

// WithCapacity sets the inventory capacity. Panics if capacity < 1.
func WithCapacity(capacity int) Option {
	if capacity < 1 {
		panic(fmt.Sprintf("scenario: WithCapacity(%d): capacity must be >= 1", capacity))
	}
	return func(c *config) { c.capacity = capacity }
}

// WithReorderPoint sets the stock level at or below which the fixed
// inventory chain refills to capacity. Panics if s < 0.
func WithReorderPoint(s int) Option {
	if s < 0 {
		panic(fmt.Sprintf("scenario: WithReorderPoint(%d): reorder point must be >= 0", s))
	}
	return func(c *config) { c.reorderPoint = s }
}

// WithDemand sets the per-stage demand distribution. The distribution is
// cloned. Panics on nil.
func WithDemand(d *prob.Dist[int]) Option {
	if d == nil {
		panic("scenario: WithDemand(nil)")
	}
	d = d.Clone()
	return func(c *config) { c.demand = d }
}

// WithCosts sets the per-unit holding cost and the fixed order cost.
// Panics on negative or non-finite values.
func WithCosts(holding, order float64) Option {
	if !finiteNonNegative(holding) || !finiteNonNegative(order) {
		panic(fmt.Sprintf("scenario: WithCosts(%v, %v): costs must be finite and >= 0", holding, order))
	}
	return func(c *config) {
		c.holdingCost = holding
		c.orderCost = order
	}
}

// WithPositionRange sets the admissible trading positions [qmin, qmax].
// Panics if qmin > qmax.
func WithPositionRange(qmin, qmax int) Option {
	if qmin > qmax {
		panic(fmt.Sprintf("scenario: WithPositionRange(%d, %d): qmin > qmax", qmin, qmax))
	}
	return func(c *config) {
		c.qmin = qmin
		c.qmax = qmax
	}
}

// WithPriceGrid sets the relative tick gamma and the number of levels n on
// each side of the reference price. Panics if gamma <= 0 or n < 1.
func WithPriceGrid(gamma float64, n int) Option {
	if !(gamma > 0) || math.IsInf(gamma, 0) || n < 1 {
		panic(fmt.Sprintf("scenario: WithPriceGrid(%v, %d): need gamma > 0 and n >= 1", gamma, n))
	}
	return func(c *config) {
		c.gamma = gamma
		c.levels = n
	}
}

// WithGrid sets the designer's belief resolution N. Panics if N < 1.
func WithGrid(N int) Option {
	if N < 1 {
		panic(fmt.Sprintf("scenario: WithGrid(%d): grid must be >= 1", N))
	}
	return func(c *config) { c.grid = N }
}

// WithPrior sets the designer's initial belief. Panics outside [0, 1].
func WithPrior(p float64) Option {
	if !(p >= 0 && p <= 1) {
		panic(fmt.Sprintf("scenario: WithPrior(%v): prior must be in [0,1]", p))
	}
	return func(c *config) { c.prior = p }
}

// WithPenalty sets rho, the cost of a wrong final guess. Panics on
// negative or non-finite values.
func WithPenalty(rho float64) Option {
	if !finiteNonNegative(rho) {
		panic(fmt.Sprintf("scenario: WithPenalty(%v): penalty must be finite and >= 0", rho))
	}
	return func(c *config) { c.penalty = rho }
}

// WithTests replaces the designer's test menu. Panics on an empty menu or
// a test whose error rates are outside [0, 1] or whose cost is negative.
func WithTests(tests ...Test) Option {
	if len(tests) == 0 {
		panic("scenario: WithTests(): need at least one test")
	}
	for i, tt := range tests {
		if !(tt.FalsePositive >= 0 && tt.FalsePositive <= 1) ||
			!(tt.FalseNegative >= 0 && tt.FalseNegative <= 1) ||
			!finiteNonNegative(tt.Cost) {
			panic(fmt.Sprintf("scenario: WithTests: test %d %+v is invalid", i, tt))
		}
	}
	tests = append([]Test(nil), tests...)
	return func(c *config) { c.tests = tests }
}

func finiteNonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}
