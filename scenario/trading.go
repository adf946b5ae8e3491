// SPDX-License-Identifier: MIT

package scenario

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/dynprog/induction"
	"github.com/katalvlaran/dynprog/mdp"
	"github.com/katalvlaran/dynprog/policy"
	"github.com/katalvlaran/dynprog/prob"
)

// Variant selects the trading cost model.
type Variant int

const (
	// Plain pays u·p per trade.
	Plain Variant = iota
	// ShortHolding adds a flat fee on every stage that starts short.
	ShortHolding
	// Linear adds a fee proportional to |u|.
	Linear
	// ShortNonLinear adds a small short fee and a fee proportional to |u|^1.5.
	ShortNonLinear
)

var variantNames = [...]string{
	Plain:          "plain",
	ShortHolding:   "short-holding",
	Linear:         "linear",
	ShortNonLinear: "short-nonlinear",
}

// Variants lists every trading variant in declaration order.
func Variants() []Variant {
	return []Variant{Plain, ShortHolding, Linear, ShortNonLinear}
}

// String returns the variant's CLI name.
func (v Variant) String() string {
	if v < 0 || int(v) >= len(variantNames) {
		return fmt.Sprintf("Variant(%d)", int(v))
	}
	return variantNames[v]
}

// ParseVariant maps a CLI name (case-insensitive) back to its Variant.
func ParseVariant(s string) (Variant, error) {
	for _, v := range Variants() {
		if strings.EqualFold(s, v.String()) {
			return v, nil
		}
	}

	return 0, scenarioErrorf(MethodTrading, "unknown variant %q", s)
}

// extra returns the variant's cost on top of u·p.
func (v Variant) extra(q, u int) float64 {
	switch v {
	case ShortHolding:
		if q < 0 {
			return shortHoldingFee
		}
	case Linear:
		return linearTradeFee * math.Abs(float64(u))
	case ShortNonLinear:
		c := linearTradeFee * math.Pow(math.Abs(float64(u)), nonLinearExponent)
		if q < 0 {
			c += shortNonLinearFee
		}
		return c
	}

	return 0
}

// Position is a trading state: the held quantity Q and the price level.
// Level k quotes the price (1+γ)^k.
type Position struct {
	Q     int
	Level int
}

// String renders the position as "(Q,Level)".
func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.Q, p.Level) }

// TradingModel is the single-asset execution problem: the trader holds a
// quantity in [qmin, qmax], trades u per stage at the current price and
// must be flat after the last trade. Prices move one level up, one level
// down or stay, with the drift pulling back towards level 0.
type TradingModel struct {
	variant    Variant
	horizon    int
	qmin, qmax int
	gamma      float64
	levels     int
	moves      []*prob.Dist[int] // index level+levels
}

// Trading builds the execution problem for variant (T=25, q ∈ [−5, 15],
// γ=.005, 20 levels each side unless overridden).
//
// Errors: ErrBadParameter for an unknown variant or a position range that
// excludes 0 (no state could end flat).
func Trading(v Variant, opts ...Option) (*TradingModel, error) {
	if v < 0 || int(v) >= len(variantNames) {
		return nil, scenarioErrorf(MethodTrading, "unknown variant %d", int(v))
	}
	cfg := newConfig(opts...)
	if cfg.qmin > 0 || cfg.qmax < 0 {
		return nil, scenarioErrorf(MethodTrading, "position range [%d, %d] excludes 0", cfg.qmin, cfg.qmax)
	}

	m := &TradingModel{
		variant: v,
		horizon: cfg.horizonOr(DefaultTradingHorizon),
		qmin:    cfg.qmin,
		qmax:    cfg.qmax,
		gamma:   cfg.gamma,
		levels:  cfg.levels,
		moves:   make([]*prob.Dist[int], 2*cfg.levels+1),
	}
	for k := -m.levels; k <= m.levels; k++ {
		m.moves[k+m.levels] = m.priceMove(k)
	}

	return m, nil
}

// priceMove returns the next-level distribution at level k. Mass that
// would leave the grid stays at k.
func (m *TradingModel) priceMove(k int) *prob.Dist[int] {
	l := 2 * math.Log(m.Price(k))
	up := clamp(baseMove-l, minMove, maxMove)
	down := clamp(baseMove+l, minMove, maxMove)

	d := prob.New[int]()
	if k < m.levels {
		d.Add(k+1, up)
	} else {
		d.Add(k, up)
	}
	if k > -m.levels {
		d.Add(k-1, down)
	} else {
		d.Add(k, down)
	}
	d.Add(k, 1-up-down)

	return d
}

func clamp(v, lo, hi float64) float64 { return min(max(v, lo), hi) }

// Variant returns the cost model.
func (m *TradingModel) Variant() Variant { return m.variant }

// Horizon returns T.
func (m *TradingModel) Horizon() int { return m.horizon }

// Levels returns N; price levels span [−N, N].
func (m *TradingModel) Levels() int { return m.levels }

// PositionRange returns [qmin, qmax].
func (m *TradingModel) PositionRange() (qmin, qmax int) { return m.qmin, m.qmax }

// Price returns (1+γ)^k.
func (m *TradingModel) Price(k int) float64 { return math.Pow(1+m.gamma, float64(k)) }

// Moves returns a copy of the next-level distribution at level k, or nil
// off the grid.
func (m *TradingModel) Moves(k int) *prob.Dist[int] {
	if k < -m.levels || k > m.levels {
		return nil
	}
	return m.moves[k+m.levels].Clone()
}

// Positions enumerates every state, quantity-major.
func (m *TradingModel) Positions() []Position {
	xs := make([]Position, 0, (m.qmax-m.qmin+1)*(2*m.levels+1))
	for q := m.qmin; q <= m.qmax; q++ {
		for k := -m.levels; k <= m.levels; k++ {
			xs = append(xs, Position{Q: q, Level: k})
		}
	}

	return xs
}

// Problem returns the model as a stochastic decision problem with the
// next price level as disturbance. Trades keep Q+u inside [qmin, qmax].
// The last stage only prices the flattening constraint: 0 when Q+u = 0,
// +Inf otherwise.
func (m *TradingModel) Problem() mdp.Problem[Position, int, int] {
	xs := m.Positions()
	last := m.horizon - 1
	return mdp.Problem[Position, int, int]{
		Horizon: m.horizon,
		States:  induction.StaticStates(xs...),
		Actions: induction.ActionsFunc[Position, int](func(_ int, x Position) []int {
			us := make([]int, 0, m.qmax-m.qmin+1)
			for u := m.qmin - x.Q; u <= m.qmax-x.Q; u++ {
				us = append(us, u)
			}
			return us
		}),
		Disturbance: mdp.DisturbanceFunc[Position, int, int](func(_ int, x Position, _ int) *prob.Dist[int] {
			return m.moves[x.Level+m.levels]
		}),
		Step: mdp.StepFunc[Position, int, int](func(_ int, x Position, u, w int) Position {
			return Position{Q: x.Q + u, Level: w}
		}),
		Cost: mdp.CostFunc[Position, int, int](func(t int, x Position, u, _ int) float64 {
			if t == last {
				if x.Q+u == 0 {
					return 0
				}
				return math.Inf(1)
			}
			return float64(u)*m.Price(x.Level) + m.variant.extra(x.Q, u)
		}),
	}
}

// Solve runs backward induction on Problem.
func (m *TradingModel) Solve(opts ...induction.Option) (*policy.Table[Position, int], error) {
	return mdp.Solve(m.Problem(), opts...)
}
