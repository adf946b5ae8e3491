// SPDX-License-Identifier: MIT

package bellman_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dynprog/bellman"
	"github.com/katalvlaran/dynprog/induction"
	"github.com/katalvlaran/dynprog/policy"
)

var inf = math.Inf(1)

// shortestPath is the four-node graph a,b,c,d where d is absorbing at zero
// cost and the final stage charges +Inf unless the walk ended on d.
func shortestPath(T int) bellman.Problem[string, string] {
	nodes := []string{"a", "b", "c", "d"}
	edges := map[string]float64{"ab": 2, "ac": 6, "bc": 3, "bd": 8, "cb": 1, "cd": 4, "dd": 0}

	return bellman.Problem[string, string]{
		Horizon: T,
		States:  induction.StaticStates(nodes...),
		Actions: induction.StaticActions[string](nodes...),
		Step:    bellman.StepFunc[string, string](func(_ int, _ string, u string) string { return u }),
		Cost: bellman.CostFunc[string, string](func(t int, x, u string) float64 {
			if t == T-1 {
				if x == "d" {
					return 0
				}
				return inf
			}
			if c, ok := edges[x+u]; ok {
				return c
			}
			return inf
		}),
	}
}

// TestSolve_ShortestPathTable compares every stage with the hand-computed table.
func TestSolve_ShortestPathTable(t *testing.T) {
	want := map[int]map[string]policy.Decision[string]{
		0: {"a": {Value: 9, Action: "b"}, "b": {Value: 7, Action: "c"}, "c": {Value: 4, Action: "d"}, "d": {Value: 0, Action: "d"}},
		1: {"a": {Value: 10, Action: "b"}, "b": {Value: 7, Action: "c"}, "c": {Value: 4, Action: "d"}, "d": {Value: 0, Action: "d"}},
		2: {"a": {Value: inf, Action: "a"}, "b": {Value: 8, Action: "d"}, "c": {Value: 4, Action: "d"}, "d": {Value: 0, Action: "d"}},
		3: {"a": {Value: inf, Action: "a"}, "b": {Value: inf, Action: "a"}, "c": {Value: inf, Action: "a"}, "d": {Value: 0, Action: "a"}},
	}

	s, err := bellman.NewSolver(shortestPath(4))
	require.NoError(t, err)

	var order []int
	for st, err := range s.Stages() {
		require.NoError(t, err)
		order = append(order, st.T())
		got := make(map[string]policy.Decision[string], st.Len())
		for x, d := range st.All() {
			got[x] = d
		}
		assert.Equal(t, want[st.T()], got, "stage %d", st.T())
	}
	assert.Equal(t, []int{3, 2, 1, 0}, order)
}

// TestSolve_TerminalConvention checks V(T,·) = 0 on the returned table.
func TestSolve_TerminalConvention(t *testing.T) {
	tbl, err := bellman.Solve(shortestPath(4))
	require.NoError(t, err)
	assert.True(t, tbl.Complete())
	assert.Zero(t, tbl.Value(4, "a"))
	assert.Equal(t, 9.0, tbl.Value(0, "a"))
}

// TestSolve_Idempotent invokes the solver twice and expects identical tables.
func TestSolve_Idempotent(t *testing.T) {
	s, err := bellman.NewSolver(shortestPath(6))
	require.NoError(t, err)

	a, err := s.Solve(nil)
	require.NoError(t, err)
	b, err := s.Solve(nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := bellman.Solve(shortestPath(6), induction.WithWorkers(4))
	require.NoError(t, err)
	assert.Equal(t, a, c)
}

// TestNewSolver_NilModels rejects missing transition and cost models.
func TestNewSolver_NilModels(t *testing.T) {
	p := shortestPath(2)
	p.Step = nil
	_, err := bellman.NewSolver(p)
	assert.ErrorIs(t, err, induction.ErrNilModel)

	p = shortestPath(2)
	p.Cost = nil
	_, err = bellman.NewSolver(p)
	assert.ErrorIs(t, err, induction.ErrNilModel)

	p = shortestPath(2)
	p.Horizon = -1
	_, err = bellman.Solve(p)
	assert.ErrorIs(t, err, induction.ErrBadHorizon)
}

// TestSolve_EmptyActions surfaces ErrEmptyActionSpace.
func TestSolve_EmptyActions(t *testing.T) {
	p := shortestPath(2)
	p.Actions = induction.ActionsFunc[string, string](func(int, string) []string { return nil })
	_, err := bellman.Solve(p)
	assert.ErrorIs(t, err, induction.ErrEmptyActionSpace)
}
