// SPDX-License-Identifier: MIT

// Package bellman solves deterministic finite-horizon control problems by
// backward induction.
//
// 🚀 What is it?
//
//	Given a horizon T, state spaces X(t), action spaces U(t, x), a
//	deterministic transition step(t, x, u) and a stage cost cost(t, x, u),
//	the solver computes for every stage t = T−1 … 0 and state x
//
//	  V(t, x) = min_{u ∈ U(t,x)} cost(t, x, u) + V(t+1, step(t, x, u))
//
//	with V(T, ·) ≡ 0. A terminal cost belongs in cost(T−1, x, u). A state
//	reached at t+1 but missing from X(t+1) contributes 0.
//
// ✨ Key properties
//   - +Inf costs mark infeasible moves and are recorded, not reported.
//   - Ties keep the first action in U(t, x) enumeration order.
//   - Stages() is lazy and yields T−1 … 0; Solve fills a caller-owned table.
//   - Output is identical for any induction.WithWorkers value.
//
// ⚙️ Usage:
//
//	s, err := bellman.NewSolver(bellman.Problem[string, string]{
//	    Horizon: 4,
//	    States:  induction.StaticStates(nodes...),
//	    Actions: induction.ActionsFunc[string, string](next),
//	    Step:    bellman.StepFunc[string, string](move),
//	    Cost:    bellman.CostFunc[string, string](edgeCost),
//	})
//	tbl, err := s.Solve(nil)
//
// Complexity: O(T·|X|·|U|) evaluations of cost and step.
package bellman
