// SPDX-License-Identifier: MIT

// Package telemetry wires solver runs to Prometheus, OpenTelemetry and
// log/slog.
//
//   - Metrics registers stage counters and a stage-duration histogram on a
//     caller-supplied prometheus.Registerer; Metrics.Observer(solver)
//     returns an induction.Observer labelled with the solver name.
//   - WriteText dumps any prometheus.Gatherer in the text exposition format.
//   - NewTracerProvider builds an SDK tracer provider that exports spans to
//     a writer (stdout exporter), for CLI runs.
//   - NewLogger builds a text or JSON slog.Logger from a level name.
package telemetry
