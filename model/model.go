// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/hyperaxes/axes"
)

// Model is a sum of components fitted to a Signal.
//
// The model keeps a current navigation position (Index); Fit works on that
// position's row of data. Channel switches restrict which signal points
// take part in fitting (one-dimensional signals only).
type Model struct {
	signal     *Signal
	dim        int
	components []Component
	switches   []bool
	index      int

	chisq    []float64
	redChisq []float64
	dof      []int

	pStd      []float64
	fitOutput FitOutput

	logger *zap.Logger
}

// New returns an empty model of s. Signals with more than two signal
// dimensions (or none) return ErrNotImplemented.
func New(s *Signal, opts ...Option) (*Model, error) {
	o := gatherModelOptions(opts...)
	dim := s.Axes().SignalDimension()
	if dim != 1 && dim != 2 {
		return nil, fmt.Errorf("New: signal dimension %d: %w", dim, ErrNotImplemented)
	}
	n := s.Axes().NavigationSize()
	m := &Model{
		signal:   s,
		dim:      dim,
		switches: make([]bool, s.Axes().SignalSize()),
		chisq:    nanSlice(n),
		redChisq: nanSlice(n),
		dof:      make([]int, n),
		logger:   o.logger,
	}
	for i := range m.switches {
		m.switches[i] = true
	}

	return m, nil
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}

	return out
}

// Signal returns the fitted signal.
func (m *Model) Signal() *Signal { return m.signal }

// Dimension returns the signal dimension (1 or 2).
func (m *Model) Dimension() int { return m.dim }

// Append adds c to the model.
func (m *Model) Append(c Component) error {
	if c.Dimension() != m.dim {
		return fmt.Errorf("Append %s: %d-D component on %d-D signal: %w",
			c.Name(), c.Dimension(), m.dim, ErrComponentDimension)
	}
	n := m.signal.Axes().NavigationSize()
	for _, p := range c.Parameters() {
		p.ensureMap(n)
	}
	m.components = append(m.components, c)

	return nil
}

// Components returns the components in insertion order.
func (m *Model) Components() []Component {
	return append([]Component(nil), m.components...)
}

// Index returns the current navigation position.
func (m *Model) Index() int { return m.index }

// SetIndex moves to navigation position i and fetches every stored value.
func (m *Model) SetIndex(i int) error {
	if i < 0 || i >= m.signal.Axes().NavigationSize() {
		return fmt.Errorf("SetIndex(%d): %w", i, ErrIndex)
	}
	m.index = i
	m.FetchStoredValues(false)

	return nil
}

// StoreCurrentValues records every parameter of the active components at
// the current position.
func (m *Model) StoreCurrentValues() {
	for _, c := range m.components {
		if !c.Active() {
			continue
		}
		for _, p := range c.Parameters() {
			p.store(m.index)
		}
	}
}

// FetchStoredValues restores stored values at the current position.
// With onlyFixed, free parameters keep their current values.
func (m *Model) FetchStoredValues(onlyFixed bool) {
	for _, c := range m.components {
		for _, p := range c.Parameters() {
			if onlyFixed && p.Free {
				continue
			}
			p.fetch(m.index)
		}
	}
}

// grid returns the signal coordinates, first signal axis fastest.
func (m *Model) grid() Points {
	sig := m.signal.Axes().SignalAxes()
	xs := sig[0].Axis()
	if m.dim == 1 {
		return Points{X: xs}
	}
	ys := sig[1].Axis()
	pts := Points{X: make([]float64, 0, len(xs)*len(ys)), Y: make([]float64, 0, len(xs)*len(ys))}
	for _, y := range ys {
		for _, x := range xs {
			pts.X = append(pts.X, x)
			pts.Y = append(pts.Y, y)
		}
	}

	return pts
}

// binScale is the product of the scales of the binned uniform signal axes.
func (m *Model) binScale() float64 {
	s := 1.0
	for _, ax := range m.signal.Axes().SignalAxes() {
		if u, ok := ax.(*axes.UniformDataAxis); ok && u.IsBinned() {
			s *= u.Scale()
		}
	}

	return s
}

// evaluate sums the active components on pts into out.
func (m *Model) evaluate(pts Points, out, scratch []float64) {
	for i := range out {
		out[i] = 0
	}
	for _, c := range m.components {
		if !c.Active() {
			continue
		}
		c.Evaluate(pts, scratch)
		for i, v := range scratch {
			out[i] += v
		}
	}
	if s := m.binScale(); s != 1 {
		for i := range out {
			out[i] *= s
		}
	}
}

// Evaluate returns the model on the full signal grid with current values.
func (m *Model) Evaluate() []float64 {
	pts := m.grid()
	out := make([]float64, pts.Len())
	m.evaluate(pts, out, make([]float64, pts.Len()))

	return out
}

// ChannelSwitches returns which signal points take part in fitting.
func (m *Model) ChannelSwitches() []bool {
	return append([]bool(nil), m.switches...)
}

// rangeIndices converts a value range on the signal axis to channel indices.
func (m *Model) rangeIndices(op string, lo, hi float64) (int, int, error) {
	if m.dim != 1 {
		return 0, 0, fmt.Errorf("%s: %w", op, ErrNotImplemented)
	}
	ax := m.signal.Axes().SignalAxes()[0]
	i1, err := ax.Index(lo)
	if err != nil {
		return 0, 0, modelErrorf(op, err)
	}
	i2, err := ax.Index(hi)
	if err != nil {
		return 0, 0, modelErrorf(op, err)
	}
	if i1 > i2 {
		i1, i2 = i2, i1
	}

	return i1, i2, nil
}

// SetSignalRange restricts fitting to [lo, hi] (inclusive, axis values).
func (m *Model) SetSignalRange(lo, hi float64) error {
	i1, i2, err := m.rangeIndices("SetSignalRange", lo, hi)
	if err != nil {
		return err
	}
	for i := range m.switches {
		m.switches[i] = i >= i1 && i <= i2
	}

	return nil
}

// AddSignalRange switches [lo, hi] on.
func (m *Model) AddSignalRange(lo, hi float64) error {
	i1, i2, err := m.rangeIndices("AddSignalRange", lo, hi)
	if err != nil {
		return err
	}
	for i := i1; i <= i2; i++ {
		m.switches[i] = true
	}

	return nil
}

// RemoveSignalRange switches [lo, hi] off.
func (m *Model) RemoveSignalRange(lo, hi float64) error {
	i1, i2, err := m.rangeIndices("RemoveSignalRange", lo, hi)
	if err != nil {
		return err
	}
	for i := i1; i <= i2; i++ {
		m.switches[i] = false
	}

	return nil
}

// ResetSignalRange switches every channel on.
func (m *Model) ResetSignalRange() error {
	if m.dim != 1 {
		return fmt.Errorf("ResetSignalRange: %w", ErrNotImplemented)
	}
	for i := range m.switches {
		m.switches[i] = true
	}

	return nil
}

// Chisq returns chi-square per navigation position (NaN where never fitted).
func (m *Model) Chisq() []float64 { return append([]float64(nil), m.chisq...) }

// RedChisq returns chisq / (n - dof - 1) per navigation position.
func (m *Model) RedChisq() []float64 { return append([]float64(nil), m.redChisq...) }

// Dof returns the number of free parameters of the last fit per position.
func (m *Model) Dof() []int { return append([]int(nil), m.dof...) }

// PStd returns the standard deviations of the free parameters of the last
// fit, in fit order; nil when they could not be estimated.
func (m *Model) PStd() []float64 { return append([]float64(nil), m.pStd...) }

// FitOutput describes the last fit.
func (m *Model) FitOutput() FitOutput { return m.fitOutput }
