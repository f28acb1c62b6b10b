// SPDX-License-Identifier: MIT

package axes

import (
	"fmt"

	"go.uber.org/zap"
)

// Manager owns an ordered list of axes.
//
// Axes are stored in array order (the order of the specs given to
// NewManager). NavigationAxes and SignalAxes return each group in natural
// order, the reverse of array order within the group; At indexes the
// concatenation navigation ++ signal.
type Manager struct {
	axes []Axis
	opts options
}

// NewManager builds one axis per spec, in order.
// Errors from AxisSpec.Build are returned with the failing position.
func NewManager(specs []AxisSpec, opts ...Option) (*Manager, error) {
	o := gatherOptions(opts...)
	m := &Manager{axes: make([]Axis, 0, len(specs)), opts: o}
	for i, s := range specs {
		ax, err := s.Build(o.reapply()...)
		if err != nil {
			return nil, fmt.Errorf("NewManager: spec %d: %w", i, err)
		}
		m.axes = append(m.axes, ax)
	}
	o.logger.Debug("axes manager built",
		zap.Int("navigation_dimension", m.NavigationDimension()),
		zap.Int("signal_dimension", m.SignalDimension()))

	return m, nil
}

// Len returns the number of axes.
func (m *Manager) Len() int { return len(m.axes) }

// Axes returns the axes in array order.
func (m *Manager) Axes() []Axis {
	return append([]Axis(nil), m.axes...)
}

// group collects the axes with Navigate()==navigate in natural order.
func (m *Manager) group(navigate bool) []Axis {
	var out []Axis
	for i := len(m.axes) - 1; i >= 0; i-- {
		if m.axes[i].Navigate() == navigate {
			out = append(out, m.axes[i])
		}
	}

	return out
}

// NavigationAxes returns the navigation axes in natural order.
func (m *Manager) NavigationAxes() []Axis { return m.group(true) }

// SignalAxes returns the signal axes in natural order.
func (m *Manager) SignalAxes() []Axis { return m.group(false) }

// natural returns navigation ++ signal.
func (m *Manager) natural() []Axis {
	return append(m.NavigationAxes(), m.SignalAxes()...)
}

func (m *Manager) NavigationDimension() int { return len(m.NavigationAxes()) }
func (m *Manager) SignalDimension() int { return len(m.SignalAxes()) }

// NavigationShape returns the navigation sizes in natural order.
func (m *Manager) NavigationShape() []int { return shape(m.NavigationAxes()) }

// SignalShape returns the signal sizes in natural order.
func (m *Manager) SignalShape() []int { return shape(m.SignalAxes()) }

// NavigationSize is the number of navigation positions; 1 with no navigation axes.
func (m *Manager) NavigationSize() int { return product(m.NavigationShape()) }

// SignalSize is the number of signal channels; 1 with no signal axes.
func (m *Manager) SignalSize() int { return product(m.SignalShape()) }

func shape(group []Axis) []int {
	out := make([]int, len(group))
	for i, ax := range group {
		out[i] = ax.Size()
	}

	return out
}

func product(dims []int) int {
	p := 1
	for _, d := range dims {
		p *= d
	}

	return p
}

// At returns the i-th axis of navigation ++ signal. Negative i counts from the end.
func (m *Manager) At(i int) (Axis, error) {
	nat := m.natural()
	j := i
	if j < 0 {
		j += len(nat)
	}
	if j < 0 || j >= len(nat) {
		return nil, fmt.Errorf("At(%d): %w", i, ErrAxisNotFound)
	}

	return nat[j], nil
}

// ByName returns the first axis named name in natural order.
func (m *Manager) ByName(name string) (Axis, error) {
	for _, ax := range m.natural() {
		if ax.Name() == name {
			return ax, nil
		}
	}

	return nil, fmt.Errorf("ByName(%q): %w", name, ErrAxisNotFound)
}

// SetAxis replaces the axis at array position i.
func (m *Manager) SetAxis(i int, ax Axis) error {
	if i < 0 || i >= len(m.axes) || ax == nil {
		return fmt.Errorf("SetAxis(%d): %w", i, ErrAxisNotFound)
	}
	m.axes[i] = ax

	return nil
}

// Specs returns one record per axis, in array order.
func (m *Manager) Specs() []AxisSpec {
	out := make([]AxisSpec, len(m.axes))
	for i, ax := range m.axes {
		out[i] = ax.Spec()
	}

	return out
}

// MarshalYAML encodes the manager as its Specs.
func (m *Manager) MarshalYAML() (interface{}, error) {
	return m.Specs(), nil
}
