// SPDX-License-Identifier: MIT

package prob

import (
	"iter"
	"math/rand"
	"sort"
)

// CDF holds cumulative boundaries over the positive-mass outcomes of a
// distribution, in the distribution's canonical order. It is immutable.
type CDF[K comparable] struct {
	keys   []K
	bounds []float64 // strictly increasing running sums
}

// Cumulative builds the cumulative table of d.
//
// Implementation:
//   - Stage 1: walk d.Support() in canonical order, keeping a running sum.
//   - Stage 2: reject a distribution with no positive mass.
//
// Zero-weight outcomes are left out so they can never be picked, even by a
// draw of exactly 0. Weights are not rescaled: callers that need an exact
// sampler must pass a normalised distribution.
//
// Errors: ErrEmptyDistribution.
//
// Complexity: O(n) time, O(n) space.
func Cumulative[K comparable](d *Dist[K]) (*CDF[K], error) {
	c := &CDF[K]{
		keys:   make([]K, 0, d.Len()),
		bounds: make([]float64, 0, d.Len()),
	}
	var s float64
	for k, p := range d.Support() {
		s += p
		c.keys = append(c.keys, k)
		c.bounds = append(c.bounds, s)
	}
	if len(c.keys) == 0 {
		return nil, ErrEmptyDistribution
	}

	return c, nil
}

// Pick returns the first outcome whose cumulative boundary is ≥ u.
// A u beyond the last boundary (rounding on a mass slightly below 1)
// returns the last outcome.
//
// Complexity: O(log n).
func (c *CDF[K]) Pick(u float64) K {
	i := sort.SearchFloat64s(c.bounds, u)
	if i == len(c.bounds) {
		i--
	}

	return c.keys[i]
}

// Len returns the number of positive-mass outcomes.
func (c *CDF[K]) Len() int { return len(c.keys) }

// Sample draws one outcome from d using r.
// A nil r falls back to a fresh NewRand(0) on every call, so repeated
// Sample(d, nil) calls return the same outcome; pass one *rand.Rand, or use
// a Sampler, for a sequence of independent draws.
//
// Errors: ErrEmptyDistribution.
func Sample[K comparable](d *Dist[K], r *rand.Rand) (K, error) {
	s, err := NewSampler(d, r)
	if err != nil {
		var zero K
		return zero, err
	}

	return s.Next(), nil
}

// Sampler draws repeatedly from a fixed distribution. The cumulative table
// is built once. A Sampler is not safe for concurrent use because *rand.Rand
// is not.
type Sampler[K comparable] struct {
	cdf *CDF[K]
	r   *rand.Rand
}

// NewSampler prepares a sampler over d. A nil r falls back to NewRand(0).
//
// Errors: ErrEmptyDistribution.
func NewSampler[K comparable](d *Dist[K], r *rand.Rand) (*Sampler[K], error) {
	c, err := Cumulative(d)
	if err != nil {
		return nil, err
	}
	if r == nil {
		r = NewRand(0)
	}

	return &Sampler[K]{cdf: c, r: r}, nil
}

// Next draws u ∈ [0,1) and returns the matching outcome.
func (s *Sampler[K]) Next() K {
	return s.cdf.Pick(s.r.Float64())
}

// Take returns a finite sequence of n samples. Each element consumes fresh
// randomness, so ranging over the sequence twice yields different values:
// the sequence is not restartable.
func (s *Sampler[K]) Take(n int) iter.Seq[K] {
	return func(yield func(K) bool) {
		for i := 0; i < n; i++ {
			if !yield(s.Next()) {
				return
			}
		}
	}
}

// Stream returns an unbounded, non-restartable sequence of samples.
// The consumer decides when to stop.
func (s *Sampler[K]) Stream() iter.Seq[K] {
	return func(yield func(K) bool) {
		for {
			if !yield(s.Next()) {
				return
			}
		}
	}
}
