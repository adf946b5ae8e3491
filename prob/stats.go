// SPDX-License-Identifier: MIT

package prob

import (
	"iter"
	"math"
)

// Expected returns Σ f(x)·π(x) over the explicit domain, not just the
// support of π, so states of zero probability are still visited.
// f is evaluated once per domain element. A zero-probability term
// contributes exactly 0 even when f(x) is ±Inf (0·∞ := 0).
//
// Complexity: O(|domain|) evaluations of f.
func Expected[K comparable](d *Dist[K], f func(K) float64, domain iter.Seq[K]) float64 {
	var s float64
	for x := range domain {
		v := f(x)
		if p := d.P(x); p != 0 {
			s += v * p
		}
	}

	return s
}

// ExpectedOver returns Σ f(x)·π(x) over the positive-mass support of π.
func ExpectedOver[K comparable](d *Dist[K], f func(K) float64) float64 {
	var s float64
	for x, p := range d.Support() {
		s += f(x) * p
	}

	return s
}

// Probability returns Σ π(e) over the event. Outcomes outside the
// distribution contribute 0; the event is expected to list each outcome once.
func Probability[K comparable](d *Dist[K], event iter.Seq[K]) float64 {
	var s float64
	for e := range event {
		s += d.P(e)
	}

	return s
}

// TotalVariation returns ½ Σ |a(k) − b(k)| over the union of both key sets.
//
// It is a metric on distributions: symmetric, zero iff a and b assign equal
// weights, bounded by 1 for normalised inputs (reached for disjoint supports),
// and it satisfies the triangle inequality.
//
// Complexity: O(|a| + |b|).
func TotalVariation[K comparable](a, b *Dist[K]) float64 {
	var s float64
	for k, p := range a.All() {
		s += math.Abs(p - b.P(k))
	}
	for k, q := range b.All() {
		if a.Has(k) {
			continue
		}
		s += math.Abs(q)
	}

	return s / 2
}
