// SPDX-License-Identifier: MIT

package axes

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/hyperaxes/units"
)

// DataAxis is a non-uniform axis with explicit, strictly monotonic
// coordinates. It carries units but cannot be converted.
type DataAxis struct {
	axisBase
	units  units.Unit
	coords []float64
}

// NewDataAxis copies coords into a new signal axis.
// Returns ErrInvalidSpec when coords are not strictly monotonic or contain NaN.
func NewDataAxis(coords []float64, u units.Unit) (*DataAxis, error) {
	if err := checkMonotonic(coords); err != nil {
		return nil, err
	}

	return &DataAxis{units: u, coords: append([]float64(nil), coords...)}, nil
}

func checkMonotonic(coords []float64) error {
	if len(coords) < 2 {
		for _, v := range coords {
			if math.IsNaN(v) {
				return fmt.Errorf("coordinate NaN: %w", ErrInvalidSpec)
			}
		}
		return nil
	}
	inc := coords[1] > coords[0]
	for i := 1; i < len(coords); i++ {
		if (inc && !(coords[i] > coords[i-1])) || (!inc && !(coords[i] < coords[i-1])) {
			return fmt.Errorf("coordinates not strictly monotonic at %d: %w", i, ErrInvalidSpec)
		}
	}

	return nil
}

func (a *DataAxis) IsUniform() bool { return false }
func (a *DataAxis) Size() int { return len(a.coords) }
func (a *DataAxis) Units() units.Unit { return a.units }
func (a *DataAxis) SetUnits(u units.Unit) { a.units = u }
func (a *DataAxis) Axis() []float64 { return append([]float64(nil), a.coords...) }
func (a *DataAxis) ConvertToCompactUnits() error {
	return fmt.Errorf("ConvertToCompactUnits on %s: %w", label(a), ErrNotImplemented)
}

// ConvertToUnits always fails with ErrNotImplemented.
func (a *DataAxis) ConvertToUnits(units.Unit) error {
	return fmt.Errorf("ConvertToUnits on %s: %w", label(a), ErrNotImplemented)
}

// Value returns coordinate i.
func (a *DataAxis) Value(i int) (float64, error) {
	if i < 0 || i >= len(a.coords) {
		return 0, fmt.Errorf("Value(%d) on %s: %w", i, label(a), ErrOutOfRange)
	}

	return a.coords[i], nil
}

// Index returns the channel nearest to value; values outside
// [min, max] fail with ErrOutOfRange.
func (a *DataAxis) Index(value float64) (int, error) {
	n := len(a.coords)
	if n == 0 || math.IsNaN(value) {
		return 0, fmt.Errorf("Index(%g) on %s: %w", value, label(a), ErrOutOfRange)
	}
	lo, hi := a.coords[0], a.coords[n-1]
	inc := lo <= hi
	if !inc {
		lo, hi = hi, lo
	}
	if value < lo || value > hi {
		return 0, fmt.Errorf("Index(%g) on %s: %w", value, label(a), ErrOutOfRange)
	}
	// first index at or past value in axis direction
	j := sort.Search(n, func(k int) bool {
		if inc {
			return a.coords[k] >= value
		}
		return a.coords[k] <= value
	})
	if j > 0 && math.Abs(a.coords[j-1]-value) <= math.Abs(a.coords[j]-value) {
		return j - 1, nil
	}

	return j, nil
}

// Spec implements Axis.
func (a *DataAxis) Spec() AxisSpec {
	return AxisSpec{
		Type:     TypeDataAxis,
		Name:     a.name,
		Navigate: a.navigate,
		IsBinned: a.binned,
		Size:     len(a.coords),
		Units:    a.units,
		Axis:     a.Axis(),
	}
}
