// SPDX-License-Identifier: MIT

package prob

import (
	"cmp"
	"fmt"
	"iter"
	"maps"
	"math"
	"slices"
)

// DefaultTolerance is the normalisation tolerance used when callers have no
// stronger requirement.
const DefaultTolerance = 1e-9

// Outcome pairs a key with its weight. It is the literal form accepted by Of.
type Outcome[K comparable] struct {
	Key K
	P   float64
}

// Dist is a discrete distribution over comparable outcomes.
//
// Outcomes are enumerated in insertion order (see package doc). A key that
// was never set has probability 0. Build one with New, Of, FromMap or Point;
// a zero Dist also accepts Set/Add. A nil *Dist behaves as an empty
// distribution for every read-only method.
type Dist[K comparable] struct {
	keys []K
	mass map[K]float64
}

// New returns an empty distribution.
func New[K comparable]() *Dist[K] {
	return &Dist[K]{mass: make(map[K]float64)}
}

// Of builds a distribution from outcomes, preserving argument order.
// A repeated key accumulates its weights at its first position.
//
// Complexity: O(n).
func Of[K comparable](outcomes ...Outcome[K]) *Dist[K] {
	d := &Dist[K]{
		keys: make([]K, 0, len(outcomes)),
		mass: make(map[K]float64, len(outcomes)),
	}
	for _, o := range outcomes {
		d.Add(o.Key, o.P)
	}

	return d
}

// FromMap builds a distribution from a map, inserting keys in ascending
// order so the result does not depend on map iteration order.
//
// Complexity: O(n log n).
func FromMap[K cmp.Ordered](m map[K]float64) *Dist[K] {
	d := &Dist[K]{
		keys: make([]K, 0, len(m)),
		mass: make(map[K]float64, len(m)),
	}
	for _, k := range slices.Sorted(maps.Keys(m)) {
		d.Set(k, m[k])
	}

	return d
}

// Point returns the single-point distribution {k: 1}.
func Point[K comparable](k K) *Dist[K] {
	return &Dist[K]{keys: []K{k}, mass: map[K]float64{k: 1}}
}

// Set assigns weight p to k. A new key is appended to the enumeration
// order; an existing key keeps its position.
func (d *Dist[K]) Set(k K, p float64) {
	if d.mass == nil {
		d.mass = make(map[K]float64)
	}
	if _, ok := d.mass[k]; !ok {
		d.keys = append(d.keys, k)
	}
	d.mass[k] = p
}

// Add accumulates weight p onto k, appending k when it is new.
func (d *Dist[K]) Add(k K, p float64) {
	if d.mass == nil {
		d.mass = make(map[K]float64)
	}
	if _, ok := d.mass[k]; !ok {
		d.keys = append(d.keys, k)
	}
	d.mass[k] += p
}

// P returns the weight of k, or 0 when k is absent.
func (d *Dist[K]) P(k K) float64 {
	if d == nil {
		return 0
	}

	return d.mass[k]
}

// Has reports whether k was explicitly set (even with weight 0).
func (d *Dist[K]) Has(k K) bool {
	if d == nil {
		return false
	}
	_, ok := d.mass[k]

	return ok
}

// Len returns the number of explicitly set outcomes.
func (d *Dist[K]) Len() int {
	if d == nil {
		return 0
	}

	return len(d.keys)
}

// Keys enumerates outcomes in canonical order.
func (d *Dist[K]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		if d == nil {
			return
		}
		for _, k := range d.keys {
			if !yield(k) {
				return
			}
		}
	}
}

// All enumerates (outcome, weight) pairs in canonical order, zero weights included.
func (d *Dist[K]) All() iter.Seq2[K, float64] {
	return func(yield func(K, float64) bool) {
		if d == nil {
			return
		}
		for _, k := range d.keys {
			if !yield(k, d.mass[k]) {
				return
			}
		}
	}
}

// Support enumerates the outcomes with strictly positive weight in canonical order.
func (d *Dist[K]) Support() iter.Seq2[K, float64] {
	return func(yield func(K, float64) bool) {
		if d == nil {
			return
		}
		for _, k := range d.keys {
			p := d.mass[k]
			if p <= 0 {
				continue
			}
			if !yield(k, p) {
				return
			}
		}
	}
}

// Mass returns the total weight, summed in canonical order.
func (d *Dist[K]) Mass() float64 {
	var s float64
	for _, p := range d.All() {
		s += p
	}

	return s
}

// Clone returns an independent copy with the same enumeration order.
func (d *Dist[K]) Clone() *Dist[K] {
	if d == nil {
		return New[K]()
	}

	return &Dist[K]{keys: slices.Clone(d.keys), mass: maps.Clone(d.mass)}
}

// Validate checks that every weight is finite and non-negative, that the
// distribution is not empty, and that the total mass is within tol of 1.
//
// Errors (in priority order):
//   - ErrInvalidProbability       - a weight is negative, NaN or ±Inf.
//   - ErrEmptyDistribution        - no outcomes at all.
//   - ErrUnnormalizedDistribution - |Σp − 1| > tol.
//
// Complexity: O(n).
func (d *Dist[K]) Validate(tol float64) error {
	for k, p := range d.All() {
		if p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
			return fmt.Errorf("%w: outcome %v has weight %g", ErrInvalidProbability, k, p)
		}
	}
	if d.Len() == 0 {
		return ErrEmptyDistribution
	}
	if s := d.Mass(); math.Abs(s-1) > tol {
		return fmt.Errorf("%w: total mass %.12g", ErrUnnormalizedDistribution, s)
	}

	return nil
}
