// SPDX-License-Identifier: MIT

package scenario

import "github.com/katalvlaran/dynprog/prob"

// config collects every scenario parameter. Each constructor reads the
// fields it needs; a zero horizon means "this scenario's default".
type config struct {
	horizon int

	capacity     int
	reorderPoint int
	demand       *prob.Dist[int]
	holdingCost  float64
	orderCost    float64

	qmin, qmax int
	gamma      float64
	levels     int

	grid    int
	prior   float64
	penalty float64
	tests   []Test
}

// DefaultDemand returns the stock example's demand {0:.7, 1:.2, 2:.1}.
func DefaultDemand() *prob.Dist[int] {
	return prob.FromMap(map[int]float64{0: 0.7, 1: 0.2, 2: 0.1})
}

// DefaultTests returns the designer's standard test menu.
func DefaultTests() []Test {
	return []Test{
		{FalsePositive: 0.25, FalseNegative: 0.10, Cost: 2},
		{FalsePositive: 0.10, FalseNegative: 0.20, Cost: 3},
		{FalsePositive: 0.05, FalseNegative: 0.05, Cost: 7},
		{FalsePositive: 0.50, FalseNegative: 0.50, Cost: 0},
	}
}

// newConfig applies opts over the defaults; last option wins.
func newConfig(opts ...Option) config {
	cfg := config{
		capacity:     DefaultCapacity,
		reorderPoint: DefaultReorderPoint,
		demand:       DefaultDemand(),
		holdingCost:  DefaultHoldingCost,
		orderCost:    DefaultOrderCost,
		qmin:         DefaultMinPosition,
		qmax:         DefaultMaxPosition,
		gamma:        DefaultGamma,
		levels:       DefaultPriceLevels,
		grid:         DefaultGrid,
		prior:        DefaultPrior,
		penalty:      DefaultPenalty,
		tests:        DefaultTests(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// horizonOr returns the configured horizon or def when none was set.
func (c config) horizonOr(def int) int {
	if c.horizon == 0 {
		return def
	}
	return c.horizon
}
