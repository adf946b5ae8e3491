// SPDX-License-Identifier: MIT

package prob

import "errors"

// Sentinel errors for the prob package. Callers branch with errors.Is;
// implementations attach context with fmt.Errorf("...: %w", ErrX).
var (
	// ErrEmptyDistribution indicates a distribution with no outcome of
	// positive mass was asked for a sample or a cumulative table.
	ErrEmptyDistribution = errors.New("prob: empty distribution")

	// ErrInvalidProbability indicates a negative, NaN or infinite weight.
	ErrInvalidProbability = errors.New("prob: invalid probability")

	// ErrUnnormalizedDistribution indicates the weights do not sum to 1
	// within the requested tolerance.
	ErrUnnormalizedDistribution = errors.New("prob: distribution does not sum to 1")

	// ErrEmptySample indicates an estimate was requested over zero observations.
	ErrEmptySample = errors.New("prob: empty sample")
)
