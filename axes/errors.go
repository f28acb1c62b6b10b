// SPDX-License-Identifier: MIT

package axes

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/hyperaxes/units"
)

// Sentinel errors for axis operations. Unit resolution failures come from
// package units (ErrUndefinedUnit, ErrUnsupportedUnit, ErrIncompatibleUnits).
var (
	// ErrInvalidQuantityAttr is returned when a quantity accessor is asked for
	// anything other than scale or offset.
	ErrInvalidQuantityAttr = errors.New("axes: attribute can only be scale or offset")

	// ErrNotImplemented marks operations a non-uniform axis does not support.
	ErrNotImplemented = errors.New("axes: operation not implemented for non-uniform axes")

	// ErrUnitsLength is returned when a units list does not match the axes it targets.
	ErrUnitsLength = errors.New("axes: units list length must match the number of axes")

	// ErrAxisNotFound is returned by index or name lookups that match nothing.
	ErrAxisNotFound = errors.New("axes: axis not found")

	// ErrInvalidSpec marks an axis record that cannot be built.
	ErrInvalidSpec = errors.New("axes: invalid axis specification")

	// ErrOutOfRange is returned by coordinate lookups outside the axis.
	ErrOutOfRange = errors.New("axes: value out of axis range")
)

// IsIgnored reports whether err is one of the non-fatal "skip this axis"
// outcomes of a conversion: undefined or unsupported units.
func IsIgnored(err error) bool {
	return errors.Is(err, units.ErrUndefinedUnit) || errors.Is(err, units.ErrUnsupportedUnit)
}

// axisErrorf attaches the operation name to err.
func axisErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// IsUnitUndefined reports whether err stems from Undefined units.
func IsUnitUndefined(err error) bool {
	return errors.Is(err, units.ErrUndefinedUnit)
}
