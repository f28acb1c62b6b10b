// SPDX-License-Identifier: MIT

package units

import (
	"errors"
	"fmt"
)

// Sentinel errors. Match them with errors.Is; the registry wraps them with
// the offending symbol.
var (
	// ErrUndefinedUnit is returned when Undefined takes part in a conversion.
	ErrUndefinedUnit = errors.New("units: undefined unit")

	// ErrUnsupportedUnit marks a symbol the registry cannot resolve.
	// The message carries the "not supported for conversion." wording that
	// callers surface as a warning.
	ErrUnsupportedUnit = errors.New("units: not supported for conversion.")

	// ErrIncompatibleUnits marks two resolvable units with different physical dimensions.
	ErrIncompatibleUnits = errors.New("units: incompatible dimensions")

	// ErrInvalidQuantity is returned when a "<number> <unit>" string cannot be parsed.
	ErrInvalidQuantity = errors.New("units: invalid quantity")
)

// unsupportedf wraps ErrUnsupportedUnit with the symbol that failed.
func unsupportedf(symbol string) error {
	return fmt.Errorf("unit %q: %w", symbol, ErrUnsupportedUnit)
}
