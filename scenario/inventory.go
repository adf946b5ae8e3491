// SPDX-License-Identifier: MIT

package scenario

import (
	"math"

	"github.com/katalvlaran/dynprog/induction"
	"github.com/katalvlaran/dynprog/markov"
	"github.com/katalvlaran/dynprog/mdp"
	"github.com/katalvlaran/dynprog/policy"
	"github.com/katalvlaran/dynprog/prob"
)

// InventoryModel is the single-item stock problem: at each stage the store
// holds x ∈ [0, C] units, orders u ∈ [0, C] and then loses a random demand
// d. Holding costs are linear in x and every order pays a fixed fee.
// Ending below zero or above C is infeasible.
type InventoryModel struct {
	horizon  int
	capacity int
	demand   *prob.Dist[int]
	holding  float64
	order    float64
}

// Inventory builds the stock problem (T=50, C=6 and demand {0:.7, 1:.2,
// 2:.1} unless overridden).
//
// Errors: ErrBadParameter if the demand is not a distribution over
// non-negative integers.
func Inventory(opts ...Option) (*InventoryModel, error) {
	cfg := newConfig(opts...)
	if err := validateDemand(MethodInventory, cfg.demand); err != nil {
		return nil, err
	}

	return &InventoryModel{
		horizon:  cfg.horizonOr(DefaultInventoryHorizon),
		capacity: cfg.capacity,
		demand:   cfg.demand,
		holding:  cfg.holdingCost,
		order:    cfg.orderCost,
	}, nil
}

func validateDemand(method string, d *prob.Dist[int]) error {
	if err := d.Validate(prob.DefaultTolerance); err != nil {
		return scenarioErrorf(method, "demand: %w", err)
	}
	for k := range d.Keys() {
		if k < 0 {
			return scenarioErrorf(method, "negative demand %d", k)
		}
	}

	return nil
}

// Horizon returns T.
func (m *InventoryModel) Horizon() int { return m.horizon }

// Capacity returns C.
func (m *InventoryModel) Capacity() int { return m.capacity }

// Levels returns 0..C.
func (m *InventoryModel) Levels() []int { return levels(m.capacity) }

// Problem returns the model as a stochastic decision problem. Every order
// size 0..C is offered; sizes that overflow are priced at +Inf.
func (m *InventoryModel) Problem() mdp.Problem[int, int, int] {
	xs := m.Levels()
	C := m.capacity
	return mdp.Problem[int, int, int]{
		Horizon:     m.horizon,
		States:      induction.StaticStates(xs...),
		Actions:     induction.StaticActions[int](xs...),
		Disturbance: mdp.StaticDisturbance[int, int](m.demand),
		Step:        mdp.StepFunc[int, int, int](func(_ int, x, u, d int) int { return x + u - d }),
		Cost: mdp.CostFunc[int, int, int](func(_ int, x, u, d int) float64 {
			if y := x + u - d; y < 0 || y > C {
				return math.Inf(1)
			}
			c := m.holding * float64(x)
			if u > 0 {
				c += m.order
			}
			return c
		}),
	}
}

// Solve runs backward induction on Problem.
func (m *InventoryModel) Solve(opts ...induction.Option) (*policy.Table[int, int], error) {
	return mdp.Solve(m.Problem(), opts...)
}

// Chain is a Markov chain with a stage cost, ready for markov.Values,
// markov.ExpectedCosts or markov.EstimateCost.
type Chain struct {
	Horizon int
	States  []int
	Model   markov.Model[int]
	Initial *prob.Dist[int]
	Cost    func(t int, x int) float64
}

// InventoryChain builds the stock chain under the fixed policy "refill to
// capacity when at most s units are left" (s = 1 unless WithReorderPoint).
// The stage cost is the holding cost plus the order fee on refill stages,
// and the chain starts full. Demand beyond the stock is lost.
//
// Errors: ErrBadParameter if s >= C or the demand is invalid.
func InventoryChain(opts ...Option) (*Chain, error) {
	cfg := newConfig(opts...)
	if cfg.reorderPoint >= cfg.capacity {
		return nil, scenarioErrorf(MethodInventoryChain, "reorder point %d >= capacity %d", cfg.reorderPoint, cfg.capacity)
	}
	if err := validateDemand(MethodInventoryChain, cfg.demand); err != nil {
		return nil, err
	}

	xs := levels(cfg.capacity)
	refill := make([]policy.Decision[int], len(xs))
	for i, x := range xs {
		if x <= cfg.reorderPoint {
			refill[i].Action = cfg.capacity - x
		}
	}
	stage, err := policy.NewStage(0, xs, refill)
	if err != nil {
		return nil, err
	}
	demand := cfg.demand
	P := markov.ClosedLoop(stage,
		func(x, u, d int) int { return max(x+u-d, 0) },
		func(int, int) *prob.Dist[int] { return demand },
	)

	s, holding, order := cfg.reorderPoint, cfg.holdingCost, cfg.orderCost
	return &Chain{
		Horizon: cfg.horizonOr(DefaultInventoryHorizon),
		States:  xs,
		Model:   P,
		Initial: prob.Point(cfg.capacity),
		Cost: func(_ int, x int) float64 {
			c := holding * float64(x)
			if x <= s {
				c += order
			}
			return c
		},
	}, nil
}

func levels(n int) []int {
	xs := make([]int, n+1)
	for i := range xs {
		xs[i] = i
	}
	return xs
}
