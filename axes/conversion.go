// SPDX-License-Identifier: MIT

package axes

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/hyperaxes/units"
)

// msgNotSupported is the warning logged whenever a conversion is skipped
// because a unit cannot be resolved.
const msgNotSupported = "units not supported for conversion. Nothing done."

// UnitConversion carries the (units, scale, offset, size) state of one axis
// and converts it in place.
//
// scale and offset are always expressed in units. Undefined units disable
// every conversion silently; unsupported units disable it with a warning.
type UnitConversion struct {
	units  units.Unit
	scale  float64
	offset float64
	size   int
	opts   options
}

// Conversion is the outcome of a conversion computed without mutation.
type Conversion struct {
	Scale  float64
	Offset float64
	Units  units.Unit
}

// NewUnitConversion returns a conversion state. No validation is performed
// on u: unsupported symbols are accepted and simply never converted.
func NewUnitConversion(u units.Unit, scale, offset float64, size int, opts ...Option) *UnitConversion {
	return &UnitConversion{
		units:  u,
		scale:  scale,
		offset: offset,
		size:   size,
		opts:   gatherOptions(opts...),
	}
}

func (c *UnitConversion) Units() units.Unit { return c.units }
func (c *UnitConversion) Scale() float64 { return c.scale }
func (c *UnitConversion) Offset() float64 { return c.offset }
func (c *UnitConversion) Size() int { return c.size }

// SetUnits replaces the units without touching scale or offset.
func (c *UnitConversion) SetUnits(u units.Unit) { c.units = u }
func (c *UnitConversion) SetScale(v float64) { c.scale = v }
func (c *UnitConversion) SetOffset(v float64) { c.offset = v }
func (c *UnitConversion) SetSize(n int) { c.size = n }

// Registry returns the registry conversions resolve units with.
func (c *UnitConversion) Registry() *units.Registry { return c.opts.registry }

// Convertible returns nil when u can be converted, ErrUndefinedUnit or a
// wrapped ErrUnsupportedUnit otherwise. It never logs.
func (c *UnitConversion) Convertible(u units.Unit) error {
	return c.opts.registry.Check(u)
}

// IgnoreConversion reports whether conversions involving u are skipped.
// Unsupported units are logged as a warning, Undefined is silent.
func (c *UnitConversion) IgnoreConversion(u units.Unit) bool {
	return checkUnits(c.opts, u) != nil
}

// checkUnits is the shared gate for conversions: it resolves u and warns on
// unsupported symbols.
func checkUnits(o options, u units.Unit) error {
	err := o.registry.Check(u)
	if err != nil && !IsUnitUndefined(err) {
		o.logger.Warn(msgNotSupported, zap.Stringer("units", u))
	}

	return err
}

// ConvertedTo computes the state after converting to target, without
// mutating c. target is checked before the current units, so both may warn.
//
// Errors:
//   - ErrUndefinedUnit, ErrUnsupportedUnit when either side is ignored.
//   - ErrIncompatibleUnits when dimensions differ.
func (c *UnitConversion) ConvertedTo(target units.Unit) (Conversion, error) {
	errTarget := checkUnits(c.opts, target)
	errCurrent := checkUnits(c.opts, c.units)
	switch {
	case errTarget != nil:
		return Conversion{}, axisErrorf("ConvertedTo", errTarget)
	case errCurrent != nil:
		return Conversion{}, axisErrorf("ConvertedTo", errCurrent)
	}

	reg := c.opts.registry
	f, err := reg.Factor(c.units, target)
	if err != nil {
		return Conversion{}, axisErrorf("ConvertedTo", err)
	}
	norm, err := reg.Normalize(target)
	if err != nil {
		return Conversion{}, axisErrorf("ConvertedTo", err)
	}

	return Conversion{Scale: c.scale * f, Offset: c.offset * f, Units: norm}, nil
}

// ConvertToUnits converts scale and offset to target in place.
// On any error the state is left untouched.
func (c *UnitConversion) ConvertToUnits(target units.Unit) error {
	conv, err := c.ConvertedTo(target)
	if err != nil {
		return err
	}
	c.apply(conv)

	return nil
}

// CompactUnits returns the prefixed variant of the current units that reads
// best for a quarter of the axis span (compact factor * scale * size).
func (c *UnitConversion) CompactUnits() (units.Unit, error) {
	if err := checkUnits(c.opts, c.units); err != nil {
		return c.units, axisErrorf("CompactUnits", err)
	}
	magnitude := c.opts.compactFactor * c.scale * float64(c.size)
	u, err := c.opts.registry.Compact(magnitude, c.units)
	if err != nil {
		return c.units, axisErrorf("CompactUnits", err)
	}

	return u, nil
}

// ConvertedToCompact is ConvertedTo(CompactUnits()).
func (c *UnitConversion) ConvertedToCompact() (Conversion, error) {
	u, err := c.CompactUnits()
	if err != nil {
		return Conversion{}, err
	}

	return c.ConvertedTo(u)
}

// ConvertToCompactUnits converts in place to the compact units.
func (c *UnitConversion) ConvertToCompactUnits() error {
	conv, err := c.ConvertedToCompact()
	if err != nil {
		return err
	}
	c.apply(conv)

	return nil
}

func (c *UnitConversion) apply(conv Conversion) {
	c.scale, c.offset, c.units = conv.Scale, conv.Offset, conv.Units
}
