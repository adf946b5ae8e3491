// SPDX-License-Identifier: MIT

// Package dynprog solves finite-horizon sequential decision problems by
// backward induction, from deterministic shortest paths to Markov decision
// processes, and analyses the Markov chains that fixed policies induce.
//
// 🚀 What is inside?
//
//	prob/        - discrete distributions, sampling, expectations, estimators
//	policy/      - per-stage decisions and the write-once policy table
//	induction/   - the backward-induction engine (workers, tracing, observers)
//	bellman/     - deterministic problems: V(t,x) = min_u c + V(t+1, f(x,u))
//	mdp/         - stochastic problems with a disturbance distribution
//	markov/      - chain propagation, fixed-policy values, Monte-Carlo walks
//	scenario/    - inventory, trading and query-design models
//	telemetry/   - Prometheus metrics, OpenTelemetry spans, slog loggers
//	plot/        - go-echarts HTML charts of solved stages
//	policystore/ - SQLite persistence of policy tables
//	config/      - YAML + environment configuration for dpctl
//	cmd/dpctl    - the command-line front end
//
// ✨ Guarantees
//
//   - Stages are produced lazily from T−1 down to 0 and only once complete.
//   - Ties go to the first minimising action in enumeration order.
//   - Results are bit-identical for every worker count.
//   - Infeasibility is a +Inf value, never a panic.
//
// Quick example (deterministic shortest path to d):
//
//	tbl, err := bellman.Solve(bellman.Problem[string, string]{...})
//	d, _ := tbl.Decision(0, "a") // d.Action is the first hop, d.Value the cost
//
//	go install github.com/katalvlaran/dynprog/cmd/dpctl@latest
package dynprog
