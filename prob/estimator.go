// SPDX-License-Identifier: MIT

package prob

import (
	"iter"
	"math"
)

// Estimator is a constant-memory running mean and variance (Welford).
// Count and sum are advanced in the same single pass, so every observation
// is read exactly once. The zero value is ready to use.
type Estimator struct {
	n    int
	mean float64
	m2   float64
}

// Add records one observation.
func (e *Estimator) Add(x float64) {
	e.n++
	delta := x - e.mean
	e.mean += delta / float64(e.n)
	e.m2 += delta * (x - e.mean)
}

// Count returns the number of observations.
func (e *Estimator) Count() int { return e.n }

// Mean returns the running mean.
//
// Errors: ErrEmptySample when no observation was recorded.
func (e *Estimator) Mean() (float64, error) {
	if e.n == 0 {
		return 0, ErrEmptySample
	}

	return e.mean, nil
}

// Variance returns the unbiased sample variance (n−1 denominator);
// a single observation has variance 0.
//
// Errors: ErrEmptySample when no observation was recorded.
func (e *Estimator) Variance() (float64, error) {
	switch e.n {
	case 0:
		return 0, ErrEmptySample
	case 1:
		return 0, nil
	}

	return e.m2 / float64(e.n-1), nil
}

// StdErr returns the standard error of the mean, √(var/n).
func (e *Estimator) StdErr() (float64, error) {
	v, err := e.Variance()
	if err != nil {
		return 0, err
	}

	return math.Sqrt(v / float64(e.n)), nil
}

// MonteCarlo returns the mean of f over the outcomes in xs in one pass.
// f is called exactly once per outcome.
//
// Errors: ErrEmptySample on an empty sequence (never NaN).
func MonteCarlo[T any](xs iter.Seq[T], f func(T) float64) (float64, error) {
	var e Estimator
	for x := range xs {
		e.Add(f(x))
	}

	return e.Mean()
}
