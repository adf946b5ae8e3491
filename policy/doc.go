// SPDX-License-Identifier: MIT

// Package policy holds the output of backward induction: per-stage decision
// tables and the stage-indexed table that owns them.
//
// A Stage is immutable once built. It keeps its states in first-occurrence
// order, which is the order the state space enumerated them in, so printing
// or persisting a stage is deterministic.
//
// A Table is owned by the caller. Solvers receive it, fill it one stage at a
// time (each stage exactly once) and hand it back; there is no hidden shared
// table between invocations. Reading V(T, ·) or any state absent from a
// stage yields the terminal convention value 0.
//
// Concurrency: a finished Stage may be read from any number of goroutines.
// A Table is not synchronised; Put must not race with readers.
package policy
