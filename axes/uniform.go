// SPDX-License-Identifier: MIT

package axes

import (
	"fmt"
	"math"

	"github.com/katalvlaran/hyperaxes/units"
)

// UniformDataAxis is an axis whose coordinates are offset + scale*i for
// i in [0, size). Coordinates are derived on demand, so they always reflect
// the current scale, offset and size.
type UniformDataAxis struct {
	axisBase
	UnitConversion
}

// NewUniformDataAxis returns a signal axis with the given geometry.
// Use SetName / SetNavigate / SetBinned for the descriptive fields.
func NewUniformDataAxis(size int, scale, offset float64, u units.Unit, opts ...Option) *UniformDataAxis {
	return &UniformDataAxis{
		UnitConversion: *NewUnitConversion(u, scale, offset, size, opts...),
	}
}

func (a *UniformDataAxis) IsUniform() bool { return true }

// Axis returns offset + scale*i for every channel.
func (a *UniformDataAxis) Axis() []float64 {
	out := make([]float64, a.size)
	for i := range out {
		out[i] = a.offset + a.scale*float64(i)
	}

	return out
}

// Value returns offset + scale*i.
func (a *UniformDataAxis) Value(i int) (float64, error) {
	if i < 0 || i >= a.size {
		return 0, fmt.Errorf("Value(%d) on %s: %w", i, label(a), ErrOutOfRange)
	}

	return a.offset + a.scale*float64(i), nil
}

// Index returns the channel whose coordinate is nearest to value.
// Values more than half a channel outside the axis fail with ErrOutOfRange.
func (a *UniformDataAxis) Index(value float64) (int, error) {
	if a.size == 0 || a.scale == 0 || math.IsNaN(value) {
		return 0, fmt.Errorf("Index(%g) on %s: %w", value, label(a), ErrOutOfRange)
	}
	i := int(math.Round((value - a.offset) / a.scale))
	if i < 0 || i >= a.size {
		return 0, fmt.Errorf("Index(%g) on %s: %w", value, label(a), ErrOutOfRange)
	}

	return i, nil
}

// LowValue and HighValue are the first and last coordinates.
func (a *UniformDataAxis) LowValue() float64 { return a.offset }

func (a *UniformDataAxis) HighValue() float64 {
	return a.offset + a.scale*float64(a.size-1)
}

// SetUnitsScaleOffset replaces all three at once without conversion.
func (a *UniformDataAxis) SetUnitsScaleOffset(u units.Unit, scale, offset float64) {
	a.units, a.scale, a.offset = u, scale, offset
}

// Spec implements Axis.
func (a *UniformDataAxis) Spec() AxisSpec {
	return AxisSpec{
		Type:     TypeUniform,
		Name:     a.name,
		Navigate: a.navigate,
		IsBinned: a.binned,
		Size:     a.size,
		Scale:    a.scale,
		Offset:   a.offset,
		Units:    a.units,
	}
}
