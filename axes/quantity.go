// SPDX-License-Identifier: MIT

package axes

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/katalvlaran/hyperaxes/units"
)

// QuantityAttr names the attribute a quantity accessor reads or writes.
type QuantityAttr int

const (
	AttrScale QuantityAttr = iota + 1
	AttrOffset
)

// String implements fmt.Stringer.
func (a QuantityAttr) String() string {
	switch a {
	case AttrScale:
		return "scale"
	case AttrOffset:
		return "offset"
	default:
		return fmt.Sprintf("QuantityAttr(%d)", int(a))
	}
}

// ParseQuantityAttr maps "scale" / "offset" to their QuantityAttr.
func ParseQuantityAttr(name string) (QuantityAttr, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "scale":
		return AttrScale, nil
	case "offset":
		return AttrOffset, nil
	}

	return 0, fmt.Errorf("%q: %w", name, ErrInvalidQuantityAttr)
}

// fields returns pointers to the attribute named by attr and to its sibling.
func (c *UnitConversion) fields(attr QuantityAttr) (self, other *float64, err error) {
	switch attr {
	case AttrScale:
		return &c.scale, &c.offset, nil
	case AttrOffset:
		return &c.offset, &c.scale, nil
	}

	return nil, nil, fmt.Errorf("%s: %w", attr, ErrInvalidQuantityAttr)
}

// Quantity returns scale or offset paired with the current units. With
// Undefined units the result is unit-less.
func (c *UnitConversion) Quantity(attr QuantityAttr) (units.Quantity, error) {
	self, _, err := c.fields(attr)
	if err != nil {
		return units.Quantity{}, axisErrorf("Quantity", err)
	}

	return units.NewQuantity(*self, c.units), nil
}

// SetQuantity assigns scale or offset from q.
//
// Behavior highlights:
//   - unit-less q: only the magnitude is assigned, units stay.
//   - Undefined current units: q's units are adopted as-is, the sibling
//     attribute is not converted.
//   - otherwise the sibling attribute is converted to q's units, then both
//     the magnitude and the units are adopted.
//
// Errors:
//   - ErrInvalidQuantityAttr for anything but AttrScale/AttrOffset.
//   - unit resolution errors from package units; the state is untouched.
//     Unsupported units on either side are logged like any other conversion.
func (c *UnitConversion) SetQuantity(attr QuantityAttr, q units.Quantity) error {
	self, other, err := c.fields(attr)
	if err != nil {
		return axisErrorf("SetQuantity", err)
	}
	if q.IsUnitless() {
		*self = q.Magnitude
		return nil
	}

	if err := checkUnits(c.opts, q.Units); err != nil {
		return axisErrorf("SetQuantity", err)
	}
	reg := c.opts.registry
	target, err := reg.Normalize(q.Units)
	if err != nil {
		return axisErrorf("SetQuantity", err)
	}
	if c.units.IsDefined() {
		if err := checkUnits(c.opts, c.units); err != nil {
			return axisErrorf("SetQuantity", err)
		}
		f, err := reg.Factor(c.units, target)
		if err != nil {
			return axisErrorf("SetQuantity", err)
		}
		*other *= f
	}
	c.units = target
	*self = q.Magnitude

	return nil
}

// SetQuantityString parses s ("5 nm", "0.2") and calls SetQuantity.
func (c *UnitConversion) SetQuantityString(attr QuantityAttr, s string) error {
	q, err := c.opts.registry.ParseQuantity(s)
	if err != nil {
		if errors.Is(err, units.ErrUnsupportedUnit) {
			c.opts.logger.Warn(msgNotSupported, zap.String("units", s))
		}
		return axisErrorf("SetQuantityString", err)
	}

	return c.SetQuantity(attr, q)
}

// ScaleAsQuantity is Quantity(AttrScale) for a valid attribute.
func (c *UnitConversion) ScaleAsQuantity() units.Quantity {
	return units.NewQuantity(c.scale, c.units)
}

// OffsetAsQuantity is Quantity(AttrOffset) for a valid attribute.
func (c *UnitConversion) OffsetAsQuantity() units.Quantity {
	return units.NewQuantity(c.offset, c.units)
}

func (c *UnitConversion) SetScaleAsQuantity(q units.Quantity) error {
	return c.SetQuantity(AttrScale, q)
}

func (c *UnitConversion) SetOffsetAsQuantity(q units.Quantity) error {
	return c.SetQuantity(AttrOffset, q)
}
