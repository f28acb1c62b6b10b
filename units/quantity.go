// SPDX-License-Identifier: MIT

package units

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Quantity is a magnitude paired with a unit. A Quantity whose Units is
// Undefined is unit-less: consumers interpret it in their own current units.
type Quantity struct {
	Magnitude float64
	Units     Unit
}

// NewQuantity pairs v with u.
func NewQuantity(v float64, u Unit) Quantity {
	return Quantity{Magnitude: v, Units: u}
}

// Scalar returns a unit-less quantity.
func Scalar(v float64) Quantity {
	return Quantity{Magnitude: v, Units: Undefined}
}

// IsUnitless reports whether q carries no unit.
func (q Quantity) IsUnitless() bool {
	return !q.Units.IsDefined()
}

// String renders "2.5 nm", or just "2.5" when unit-less.
func (q Quantity) String() string {
	if q.IsUnitless() {
		return strconv.FormatFloat(q.Magnitude, 'g', -1, 64)
	}

	return fmt.Sprintf("%g %s", q.Magnitude, q.Units.Symbol())
}

// numberPrefix matches the leading float literal of a quantity string.
var numberPrefix = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`)

// ParseQuantity parses "<number>" or "<number> <unit>" with the registry.
// The unit part is validated and normalised ("2.5 um" -> 2.5 µm); the space
// between number and unit is optional.
func (r *Registry) ParseQuantity(s string) (Quantity, error) {
	s = strings.TrimSpace(s)
	num := numberPrefix.FindString(s)
	if num == "" {
		return Quantity{}, fmt.Errorf("%q: %w", s, ErrInvalidQuantity)
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Quantity{}, fmt.Errorf("%q: %w", s, ErrInvalidQuantity)
	}
	rest := strings.TrimSpace(s[len(num):])
	if rest == "" {
		return Scalar(v), nil
	}
	u, err := r.Normalize(Of(rest))
	if err != nil {
		return Quantity{}, err
	}

	return NewQuantity(v, u), nil
}

// ParseQuantity parses s with the default registry.
func ParseQuantity(s string) (Quantity, error) {
	return Default().ParseQuantity(s)
}

// ConvertQuantity re-expresses q in to. Unit-less quantities cannot be converted.
func (r *Registry) ConvertQuantity(q Quantity, to Unit) (Quantity, error) {
	if q.IsUnitless() {
		return Quantity{}, ErrUndefinedUnit
	}
	v, err := r.Convert(q.Magnitude, q.Units, to)
	if err != nil {
		return Quantity{}, err
	}
	norm, err := r.Normalize(to)
	if err != nil {
		return Quantity{}, err
	}

	return NewQuantity(v, norm), nil
}
