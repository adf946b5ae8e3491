// SPDX-License-Identifier: MIT

package scenario

import (
	"errors"
	"fmt"
)

// ErrBadParameter is returned when a scenario's parameters are individually
// valid but cannot be combined (e.g. a reorder point at or above capacity).
// Single-value nonsense is rejected earlier by the Option constructors,
// which panic.
var ErrBadParameter = errors.New("scenario: bad parameter")

// scenarioErrorf prefixes a formatted detail with the constructor name and
// wraps ErrBadParameter. The format may itself carry a %w for the cause:
//
//	Inventory: reorder point 6 >= capacity 6: scenario: bad parameter
func scenarioErrorf(method, format string, args ...any) error {
	return fmt.Errorf("%s: "+format+": %w", append(append([]any{method}, args...), ErrBadParameter)...)
}
