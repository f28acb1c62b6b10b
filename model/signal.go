// SPDX-License-Identifier: MIT

package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/hyperaxes/axes"
	"github.com/katalvlaran/hyperaxes/units"
)

// Signal is a dataset laid out as a navigation x signal matrix.
//
// Row r is the navigation position whose natural-order indices, first
// navigation axis fastest, flatten to r. Column c likewise flattens the
// signal indices, first signal axis fastest.
type Signal struct {
	axes *axes.Manager
	data *mat.Dense

	variance       *mat.Dense
	scalarVariance float64
	hasVariance    bool
}

// NewSignal validates data against am's navigation and signal sizes.
func NewSignal(am *axes.Manager, data *mat.Dense) (*Signal, error) {
	r, c := data.Dims()
	if r != am.NavigationSize() || c != am.SignalSize() {
		return nil, fmt.Errorf("NewSignal: data %dx%d, axes %dx%d: %w",
			r, c, am.NavigationSize(), am.SignalSize(), ErrShape)
	}

	return &Signal{axes: am, data: data}, nil
}

// NewSignal1D wraps a single spectrum on an index axis (scale 1, offset 0).
func NewSignal1D(values []float64, opts ...axes.Option) (*Signal, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("NewSignal1D: %w", ErrShape)
	}
	am, err := axes.NewManager([]axes.AxisSpec{
		{Type: axes.TypeUniform, Name: "Signal axis", Scale: 1, Size: len(values), Units: units.Undefined},
	}, opts...)
	if err != nil {
		return nil, err
	}

	return NewSignal(am, mat.NewDense(1, len(values), append([]float64(nil), values...)))
}

// Axes returns the axes manager.
func (s *Signal) Axes() *axes.Manager { return s.axes }

// Data returns the data matrix. Callers may modify it in place.
func (s *Signal) Data() *mat.Dense { return s.data }

// Row returns navigation position i as a slice aliasing the data.
func (s *Signal) Row(i int) []float64 { return s.data.RawRowView(i) }

// SetBinned flags every signal axis as binned or not.
func (s *Signal) SetBinned(binned bool) {
	for _, ax := range s.axes.SignalAxes() {
		ax.SetBinned(binned)
	}
}

// IsBinned reports whether any signal axis is binned.
func (s *Signal) IsBinned() bool {
	for _, ax := range s.axes.SignalAxes() {
		if ax.IsBinned() {
			return true
		}
	}

	return false
}

// SetNoiseVariance sets a per-point variance with the data's shape.
func (s *Signal) SetNoiseVariance(v *mat.Dense) error {
	r, c := v.Dims()
	dr, dc := s.data.Dims()
	if r != dr || c != dc {
		return fmt.Errorf("SetNoiseVariance: %w", ErrShape)
	}
	s.variance, s.hasVariance = v, true

	return nil
}

// SetNoiseVarianceScalar sets one variance for every point.
func (s *Signal) SetNoiseVarianceScalar(v float64) {
	s.variance, s.scalarVariance, s.hasVariance = nil, v, true
}

// ClearNoiseVariance removes any variance.
func (s *Signal) ClearNoiseVariance() {
	s.variance, s.hasVariance = nil, false
}

// HasNoiseVariance reports whether a variance is set.
func (s *Signal) HasNoiseVariance() bool { return s.hasVariance }

// varianceRow returns the variance at navigation position i, or nil.
func (s *Signal) varianceRow(i int) []float64 {
	if !s.hasVariance {
		return nil
	}
	if s.variance != nil {
		return s.variance.RawRowView(i)
	}
	out := make([]float64, s.axes.SignalSize())
	for k := range out {
		out[k] = s.scalarVariance
	}

	return out
}
