// SPDX-License-Identifier: MIT

package axes

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/hyperaxes/units"
)

// Axis type tags used in AxisSpec.Type.
const (
	TypeUniform  = "UniformDataAxis"
	TypeDataAxis = "DataAxis"
)

// Defaults applied to a decoded AxisSpec for missing keys.
const (
	DefaultScale = 1.0
	DefaultSize  = 1
)

// AxisSpec is the serialisable description of one axis. It round-trips
// through YAML; Units null or absent means Undefined.
type AxisSpec struct {
	Type     string     `yaml:"_type"`
	Name     string     `yaml:"name"`
	Navigate bool       `yaml:"navigate"`
	IsBinned bool       `yaml:"is_binned"`
	Size     int        `yaml:"size"`
	Scale    float64    `yaml:"scale"`
	Offset   float64    `yaml:"offset"`
	Units    units.Unit `yaml:"units"`
	Axis     []float64  `yaml:"axis,omitempty"`
}

// DefaultAxisSpec returns the record missing keys are filled from.
func DefaultAxisSpec() AxisSpec {
	return AxisSpec{Type: TypeUniform, Scale: DefaultScale, Size: DefaultSize}
}

// UnmarshalYAML decodes over DefaultAxisSpec so omitted keys keep defaults.
func (s *AxisSpec) UnmarshalYAML(node *yaml.Node) error {
	type plain AxisSpec
	p := plain(DefaultAxisSpec())
	if err := node.Decode(&p); err != nil {
		return err
	}
	*s = AxisSpec(p)

	return nil
}

// Build constructs the axis described by s.
//
// Errors:
//   - ErrInvalidSpec for an unknown type, a negative size or a non-finite
//     scale/offset of a uniform axis, or invalid DataAxis coordinates.
func (s AxisSpec) Build(opts ...Option) (Axis, error) {
	var ax Axis
	switch s.Type {
	case TypeUniform, "":
		if s.Size < 0 {
			return nil, fmt.Errorf("axis %q: size %d: %w", s.Name, s.Size, ErrInvalidSpec)
		}
		if math.IsNaN(s.Scale) || math.IsInf(s.Scale, 0) || math.IsNaN(s.Offset) || math.IsInf(s.Offset, 0) {
			return nil, fmt.Errorf("axis %q: non-finite scale or offset: %w", s.Name, ErrInvalidSpec)
		}
		u := NewUniformDataAxis(s.Size, s.Scale, s.Offset, s.Units, opts...)
		u.SetBinned(s.IsBinned)
		ax = u
	case TypeDataAxis:
		d, err := NewDataAxis(s.Axis, s.Units)
		if err != nil {
			return nil, fmt.Errorf("axis %q: %w", s.Name, err)
		}
		d.SetBinned(s.IsBinned)
		ax = d
	default:
		return nil, fmt.Errorf("axis %q: unknown type %q: %w", s.Name, s.Type, ErrInvalidSpec)
	}
	ax.SetName(s.Name)
	ax.SetNavigate(s.Navigate)

	return ax, nil
}

// LoadSpecs decodes a YAML sequence of axis records.
// An empty document yields no specs and no error.
func LoadSpecs(r io.Reader) ([]AxisSpec, error) {
	var specs []AxisSpec
	if err := yaml.NewDecoder(r).Decode(&specs); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("LoadSpecs: %w: %v", ErrInvalidSpec, err)
	}

	return specs, nil
}

// NewManagerFromYAML is LoadSpecs followed by NewManager.
func NewManagerFromYAML(r io.Reader, opts ...Option) (*Manager, error) {
	specs, err := LoadSpecs(r)
	if err != nil {
		return nil, err
	}

	return NewManager(specs, opts...)
}
