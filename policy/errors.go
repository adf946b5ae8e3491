// SPDX-License-Identifier: MIT

package policy

import "errors"

var (
	// ErrBadHorizon indicates a table was requested with a horizon ≤ 0.
	ErrBadHorizon = errors.New("policy: horizon must be positive")

	// ErrStageExists indicates a second write to an already filled stage.
	ErrStageExists = errors.New("policy: stage already written")

	// ErrStageOutOfRange indicates a stage index outside [0, T).
	ErrStageOutOfRange = errors.New("policy: stage out of range")

	// ErrDuplicateState indicates a stage was built with a repeated state.
	ErrDuplicateState = errors.New("policy: duplicate state in stage")

	// ErrIncomplete indicates a stage sequence ended before filling the table.
	ErrIncomplete = errors.New("policy: stage sequence incomplete")

	// ErrLengthMismatch indicates states and decisions of different lengths.
	ErrLengthMismatch = errors.New("policy: states and decisions differ in length")
)
