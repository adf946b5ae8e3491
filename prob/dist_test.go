// SPDX-License-Identifier: MIT

package prob_test

import (
	"math"
	"slices"
	"testing"

	"github.com/katalvlaran/dynprog/prob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDist_InsertionOrder verifies that Of preserves argument order and that
// repeated keys accumulate at their first position.
func TestDist_InsertionOrder(t *testing.T) {
	d := prob.Of(
		prob.Outcome[string]{Key: "c", P: 0.2},
		prob.Outcome[string]{Key: "a", P: 0.3},
		prob.Outcome[string]{Key: "c", P: 0.1},
		prob.Outcome[string]{Key: "b", P: 0.4},
	)

	assert.Equal(t, []string{"c", "a", "b"}, slices.Collect(d.Keys()))
	assert.InDelta(t, 0.3, d.P("c"), 1e-15)
	assert.Equal(t, 3, d.Len())
	assert.Zero(t, d.P("zzz"), "absent key has probability 0")
}

// TestDist_FromMapSorted checks that map-built distributions enumerate in
// ascending key order regardless of map iteration order.
func TestDist_FromMapSorted(t *testing.T) {
	d := prob.FromMap(map[int]float64{2: 0.1, 0: 0.7, 1: 0.2})
	for i := 0; i < 10; i++ {
		assert.Equal(t, []int{0, 1, 2}, slices.Collect(d.Keys()))
	}
}

// TestDist_ZeroValueUsable ensures Set/Add work on a zero Dist and that a nil
// *Dist reads as empty.
func TestDist_ZeroValueUsable(t *testing.T) {
	var d prob.Dist[int]
	d.Set(1, 0.5)
	d.Add(2, 0.25)
	d.Add(2, 0.25)
	assert.Equal(t, 1.0, d.Mass())

	var nilDist *prob.Dist[int]
	assert.Zero(t, nilDist.Len())
	assert.Zero(t, nilDist.P(3))
	assert.False(t, nilDist.Has(3))
	assert.Empty(t, slices.Collect(nilDist.Keys()))
}

// TestDist_SupportSkipsZero verifies that zero weights stay enumerable via All
// but are left out of Support.
func TestDist_SupportSkipsZero(t *testing.T) {
	d := prob.New[string]()
	d.Set("x", 0)
	d.Set("y", 1)

	assert.True(t, d.Has("x"))
	var all, support []string
	for k := range d.All() {
		all = append(all, k)
	}
	for k := range d.Support() {
		support = append(support, k)
	}
	assert.Equal(t, []string{"x", "y"}, all)
	assert.Equal(t, []string{"y"}, support)
}

// TestDist_CloneIndependent makes sure a clone does not alias the original.
func TestDist_CloneIndependent(t *testing.T) {
	d := prob.Of(prob.Outcome[int]{Key: 1, P: 1})
	c := d.Clone()
	c.Set(2, 0.5)
	c.Set(1, 0.5)

	assert.Equal(t, 1, d.Len())
	assert.Equal(t, 1.0, d.P(1))
	assert.Equal(t, []int{1, 2}, slices.Collect(c.Keys()))
}

// TestDist_Validate covers every Validate failure mode in priority order.
func TestDist_Validate(t *testing.T) {
	require.NoError(t, prob.Point("w").Validate(prob.DefaultTolerance))
	require.NoError(t, prob.FromMap(map[int]float64{0: 0.7, 1: 0.2, 2: 0.1}).Validate(prob.DefaultTolerance))

	assert.ErrorIs(t, prob.New[int]().Validate(prob.DefaultTolerance), prob.ErrEmptyDistribution)

	neg := prob.FromMap(map[int]float64{0: 1.5, 1: -0.5})
	assert.ErrorIs(t, neg.Validate(prob.DefaultTolerance), prob.ErrInvalidProbability)

	nan := prob.FromMap(map[int]float64{0: math.NaN()})
	assert.ErrorIs(t, nan.Validate(prob.DefaultTolerance), prob.ErrInvalidProbability)

	short := prob.FromMap(map[int]float64{0: 0.5, 1: 0.4})
	err := short.Validate(prob.DefaultTolerance)
	assert.ErrorIs(t, err, prob.ErrUnnormalizedDistribution)
	assert.Contains(t, err.Error(), "0.9")

	// A looser tolerance accepts the same distribution.
	assert.NoError(t, short.Validate(0.2))
}
