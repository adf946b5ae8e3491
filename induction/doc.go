// SPDX-License-Identifier: MIT

// Package induction is the backward-induction runtime shared by the
// deterministic (bellman) and stochastic (mdp) solvers.
//
// 🚀 What it does
//
//	For t = T−1, T−2, …, 0 it drains the state space X(t) once, evaluates
//	every admissible action u ∈ U(t, x) through a caller-supplied action
//	value Q(t, x, u | V_{t+1}) and keeps the first minimiser. The finished
//	stage is immutable and becomes V_{t+1} for the next iteration. Stage T
//	is never materialised: every lookup against it returns 0.
//
// ✨ Key properties
//   - Strict backward dependency: stage t is evaluated only after stage t+1
//     is complete (barrier between stages).
//   - Fork-join inside a stage: states are independent, read-only against
//     V_{t+1} and write-once into their own slot, so WithWorkers(n) gives
//     bit-identical output for every n.
//   - Deterministic tie-break: the first action reaching the minimum in the
//     order U(t, x) enumerates it. Clients must enumerate in a stable order.
//   - No hidden memo: each Stages/Solve call starts from scratch.
//
// ⚙️ Options
//
//	WithWorkers(n)   - fork-join width per stage (errgroup), default 1.
//	WithContext(ctx) - cooperative cancellation between and within stages.
//	WithLogger(l)    - *slog.Logger for Debug stage summaries; silent by default.
//	WithTracer(tr)   - OpenTelemetry tracer, one span per stage; noop by default.
//	WithObserver(o)  - stage lifecycle callbacks (see telemetry.Metrics).
//
// Errors:
//
//	ErrBadHorizon       - T ≤ 0.
//	ErrNilModel         - a required space or model is missing.
//	ErrEmptyActionSpace - U(t, x) enumerated nothing for a visited state.
//	ErrInvalidCost      - an action value evaluated to NaN.
//	ErrHorizonMismatch  - Solve was handed a table of another horizon.
//
// Complexity: O(T·|X|·|U|) action-value evaluations.
package induction
