// SPDX-License-Identifier: MIT

// Package policystore keeps solved policy tables in a SQLite database
// (modernc.org/sqlite, no cgo). Each Save creates a run identified by a
// time-ordered UUID; Load returns the run's decisions in stage order with
// states and actions in their printed form.
package policystore
