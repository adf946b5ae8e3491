// SPDX-License-Identifier: MIT

package induction

import "errors"

// Sentinel errors. Runtime failures are wrapped with the stage and state
// they occurred at, e.g. fmt.Errorf("%w: t=%d state=%v", ErrEmptyActionSpace, t, x).
var (
	// ErrBadHorizon indicates a horizon T ≤ 0.
	ErrBadHorizon = errors.New("induction: horizon must be positive")

	// ErrNilModel indicates a missing state space, action space, transition
	// or cost model.
	ErrNilModel = errors.New("induction: nil model")

	// ErrEmptyActionSpace indicates U(t, x) is empty at a visited state.
	// Minimising over an empty set is undefined, so this is fatal.
	ErrEmptyActionSpace = errors.New("induction: empty action space")

	// ErrInvalidCost indicates a NaN action value. +Inf is a legal
	// infeasibility marker and never triggers this error.
	ErrInvalidCost = errors.New("induction: invalid cost")

	// ErrHorizonMismatch indicates a caller-owned table whose horizon
	// differs from the problem's.
	ErrHorizonMismatch = errors.New("induction: table horizon mismatch")
)
