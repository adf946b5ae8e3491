// SPDX-License-Identifier: MIT

// Package markov propagates distributions and values through a fixed
// finite Markov chain and simulates it.
//
// A Model maps each state to its row, the distribution over next states.
// Rows are expected to sum to 1; Forward and Backward do not check that
// (use Model.Validate once up front), so propagation is a plain linear map
// that preserves mass exactly when the rows do.
//
// Exact path:
//
//	Forward     π_{t+1}(j) = Σ_i π_t(i)·P(i)(j)
//	Propagate   π_0, π_1, …, π_T
//	Backward    v_t(x) = g(t, x) + Σ_y P(x)(y)·v_{t+1}(y)
//	Values      v_T, v_{T−1}, …, v_0   (fixed-policy evaluation)
//	ExpectedCosts  running Σ_{s ≤ t} E_{π_s}[g(s, ·)]
//
// Statistical path:
//
//	Walker         lazy random walk of T+1 states (Scanner-style Err)
//	Trajectory     one collected walk
//	EstimateCost   Monte Carlo mean of the cumulative cost over n walks,
//	               optionally fanned out over workers; reproducible for a
//	               fixed seed whatever the worker count.
//
// ClosedLoop turns a solved policy stage into a Model so a policy from
// package mdp can be cross-checked against exact propagation.
//
// Errors:
//
//	ErrMissingRow     - the walk reached a state without a row.
//	ErrBadHorizon     - T < 0.
//	prob.ErrEmptyDistribution, prob.ErrUnnormalizedDistribution, prob.ErrEmptySample.
package markov
