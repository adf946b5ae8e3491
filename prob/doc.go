// SPDX-License-Identifier: MIT

// Package prob provides discrete probability utilities used by the
// dynamic-programming solvers and the Markov toolkit.
//
// 🚀 What lives here?
//
//	• Dist        - an ordered discrete distribution (outcome → weight)
//	• CDF         - cumulative boundaries for inverse-transform sampling
//	• Sampler     - finite (Take) and infinite (Stream) sample sequences
//	• Expected    - Σ f(x)·π(x) over an explicit domain
//	• Probability - Σ π(e) over an event
//	• TotalVariation - ½ Σ |π(k) − π'(k)|
//	• Estimator   - constant-memory running mean / variance (Monte Carlo)
//	• NewRand / StreamRand - deterministic RNG factories
//
// Canonical order:
//
//	A Dist enumerates its outcomes in INSERTION order, always. FromMap inserts
//	keys in ascending order, so a distribution built from a Go map is still
//	deterministic. The CDF is built from, and looked up against, that same
//	order; two distributions with equal weights but different insertion order
//	are equal as measures yet sample differently under the same seed.
//
// Determinism:
//
//	Randomness is never drawn from a global source. Every sampler takes a
//	*rand.Rand; NewRand(seed) with a fixed seed reproduces identical samples.
//
// Errors:
//
//	ErrEmptyDistribution        - no outcome with positive mass to sample.
//	ErrInvalidProbability       - a weight is negative, NaN or infinite.
//	ErrUnnormalizedDistribution - weights do not sum to 1 within tolerance.
//	ErrEmptySample              - an estimator saw zero observations.
package prob
