// SPDX-License-Identifier: MIT

package scenario

import (
	"math"

	"github.com/katalvlaran/dynprog/induction"
	"github.com/katalvlaran/dynprog/mdp"
	"github.com/katalvlaran/dynprog/policy"
	"github.com/katalvlaran/dynprog/prob"
)

// Test is one noisy binary query. FalsePositive is P(y=1 | negative),
// FalseNegative is P(y=0 | positive) and Cost is paid per use.
type Test struct {
	FalsePositive float64
	FalseNegative float64
	Cost          float64
}

// likelihood returns P(y | truth).
func (tt Test) likelihood(truth, y int) float64 {
	if truth == 0 {
		if y == 1 {
			return tt.FalsePositive
		}
		return 1 - tt.FalsePositive
	}
	if y == 0 {
		return tt.FalseNegative
	}
	return 1 - tt.FalseNegative
}

// DesignerModel is the active-query problem: the belief that the hidden
// truth is positive lives on a grid n/N, each stage buys one test and
// updates the belief from its outcome. After the last test the designer
// guesses the likelier answer and pays ρ times the probability of being
// wrong.
type DesignerModel struct {
	horizon int
	grid    int
	prior   float64
	penalty float64
	tests   []Test
	trans   [][]*prob.Dist[int] // [n][k]
}

// Designer builds the query problem (T=3, N=1000, prior .6, ρ=100 and
// DefaultTests unless overridden). Posterior transitions are tabulated for
// every grid point and test up front, O(N·K).
func Designer(opts ...Option) (*DesignerModel, error) {
	cfg := newConfig(opts...)
	m := &DesignerModel{
		horizon: cfg.horizonOr(DefaultDesignerHorizon),
		grid:    cfg.grid,
		prior:   cfg.prior,
		penalty: cfg.penalty,
		tests:   cfg.tests,
		trans:   make([][]*prob.Dist[int], cfg.grid+1),
	}
	for n := range m.trans {
		m.trans[n] = make([]*prob.Dist[int], len(m.tests))
		for k, tt := range m.tests {
			m.trans[n][k] = m.update(n, tt)
		}
	}

	return m, nil
}

// update returns the distribution of the next grid point after running tt
// at belief n/N. Posteriors are rounded down to the grid.
func (m *DesignerModel) update(n int, tt Test) *prob.Dist[int] {
	p := float64(n) / float64(m.grid)
	d := prob.New[int]()
	for y := range 2 {
		b := tt.likelihood(0, y)*(1-p) + tt.likelihood(1, y)*p
		if b == 0 {
			continue
		}
		f := tt.likelihood(1, y) * p / b
		next := min(int(math.Floor(f*float64(m.grid)+posteriorEpsilon)), m.grid)
		d.Add(next, b)
	}

	return d
}

// Horizon returns T.
func (m *DesignerModel) Horizon() int { return m.horizon }

// Grid returns N.
func (m *DesignerModel) Grid() int { return m.grid }

// Tests returns a copy of the test menu.
func (m *DesignerModel) Tests() []Test { return append([]Test(nil), m.tests...) }

// Initial returns the grid point closest to the prior.
func (m *DesignerModel) Initial() int {
	return int(math.Round(m.prior * float64(m.grid)))
}

// Transition returns a copy of the next-belief distribution for test k at
// grid point n, or nil when either is out of range.
func (m *DesignerModel) Transition(n, k int) *prob.Dist[int] {
	if n < 0 || n > m.grid || k < 0 || k >= len(m.tests) {
		return nil
	}
	return m.trans[n][k].Clone()
}

// Problem returns the model as a stochastic decision problem over grid
// points, with test indices as actions and the next grid point as
// disturbance.
func (m *DesignerModel) Problem() mdp.Problem[int, int, int] {
	ks := make([]int, len(m.tests))
	for k := range ks {
		ks[k] = k
	}
	last := m.horizon - 1
	rho := m.penalty / float64(m.grid)
	return mdp.Problem[int, int, int]{
		Horizon: m.horizon,
		States:  induction.StaticStates(levels(m.grid)...),
		Actions: induction.StaticActions[int](ks...),
		Disturbance: mdp.DisturbanceFunc[int, int, int](func(_ int, n, k int) *prob.Dist[int] {
			return m.trans[n][k]
		}),
		Step: mdp.StepFunc[int, int, int](func(_ int, _, _, next int) int { return next }),
		Cost: mdp.CostFunc[int, int, int](func(t int, _, k, next int) float64 {
			c := m.tests[k].Cost
			if t == last {
				c += rho * float64(min(next, m.grid-next))
			}
			return c
		}),
	}
}

// Solve runs backward induction on Problem.
func (m *DesignerModel) Solve(opts ...induction.Option) (*policy.Table[int, int], error) {
	return mdp.Solve(m.Problem(), opts...)
}
