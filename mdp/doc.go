// SPDX-License-Identifier: MIT

// Package mdp solves finite-horizon Markov decision problems by backward
// induction with an expectation over a per-(t, x, u) disturbance.
//
// The value of action u in state x at stage t is
//
//	Q(t, x, u) = Σ_{w ∈ supp W(t,x,u)} W(t,x,u)(w) · [cost(t,x,u,w) + V(t+1, step(t,x,u,w))]
//
// and V(t, x) = min_u Q(t, x, u) with V(T, ·) ≡ 0. Zero-probability outcomes
// are skipped, so an infeasible (+Inf) outcome that cannot happen does not
// turn the sum into NaN. Every disturbance distribution is validated when
// used; a distribution that does not sum to 1 fails the stage with
// prob.ErrUnnormalizedDistribution instead of skewing the expectation.
//
// With a nil Disturbance model every W(t, x, u) is the single-point
// distribution {zero(W): 1}, and the solver reproduces bellman exactly.
//
// Stage ordering, tie-break (first minimum in U(t, x) order), empty action
// space handling and options are those of package induction.
//
// Complexity: O(T·|X|·|U|·|W|) evaluations of cost and step.
package mdp
