// SPDX-License-Identifier: MIT

package axes

import "github.com/katalvlaran/hyperaxes/units"

// Axis is the behaviour shared by uniform and non-uniform axes.
//
// Conversion methods are part of the contract so batch operations can treat
// axes uniformly; a DataAxis answers them with ErrNotImplemented.
type Axis interface {
	Name() string
	SetName(name string)
	Navigate() bool
	SetNavigate(navigate bool)
	IsBinned() bool
	SetBinned(binned bool)
	IsUniform() bool
	Size() int
	Units() units.Unit
	SetUnits(u units.Unit)

	// Axis returns a fresh copy of the coordinates.
	Axis() []float64
	// Index returns the channel nearest to value.
	Index(value float64) (int, error)
	// Value returns the coordinate of channel i.
	Value(i int) (float64, error)

	ConvertToUnits(target units.Unit) error
	ConvertToCompactUnits() error

	// Spec returns the record the axis can be rebuilt from.
	Spec() AxisSpec
}

// axisBase holds the descriptive fields common to every axis kind.
type axisBase struct {
	name     string
	navigate bool
	binned   bool
}

func (b *axisBase) Name() string { return b.name }
func (b *axisBase) SetName(name string) { b.name = name }
func (b *axisBase) Navigate() bool { return b.navigate }
func (b *axisBase) SetNavigate(navigate bool) { b.navigate = navigate }
func (b *axisBase) IsBinned() bool { return b.binned }
func (b *axisBase) SetBinned(binned bool) { b.binned = binned }

// label is how an axis is named in errors and logs.
func label(ax Axis) string {
	if ax.Name() == "" {
		return "<unnamed>"
	}

	return ax.Name()
}
