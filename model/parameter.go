// SPDX-License-Identifier: MIT

package model

import "math"

// ParameterMap holds a parameter's stored values per navigation position.
type ParameterMap struct {
	Values []float64
	Std    []float64
	IsSet  []bool
}

// Parameter is one scalar of a component.
//
// Bmin/Bmax default to -Inf/+Inf (unbounded); Std is NaN until a fit
// estimates it.
type Parameter struct {
	Name  string
	Value float64
	Free  bool
	Bmin  float64
	Bmax  float64
	Std   float64
	Map   ParameterMap
}

// NewParameter returns a free, unbounded parameter.
func NewParameter(name string, value float64) *Parameter {
	return &Parameter{
		Name:  name,
		Value: value,
		Free:  true,
		Bmin:  math.Inf(-1),
		Bmax:  math.Inf(1),
		Std:   math.NaN(),
	}
}

// Bounded reports whether either bound is finite.
func (p *Parameter) Bounded() bool {
	return !math.IsInf(p.Bmin, -1) || !math.IsInf(p.Bmax, 1)
}

// snap moves Value onto the nearest bound when outside [Bmin, Bmax].
func (p *Parameter) snap() {
	p.Value = math.Max(p.Bmin, math.Min(p.Bmax, p.Value))
}

// ensureMap sizes the map for n positions, keeping stored entries.
func (p *Parameter) ensureMap(n int) {
	if len(p.Map.Values) == n {
		return
	}
	m := ParameterMap{
		Values: make([]float64, n),
		Std:    make([]float64, n),
		IsSet:  make([]bool, n),
	}
	for i := range m.Std {
		m.Std[i] = math.NaN()
	}
	copy(m.Values, p.Map.Values)
	copy(m.Std, p.Map.Std)
	copy(m.IsSet, p.Map.IsSet)
	p.Map = m
}

func (p *Parameter) store(i int) {
	p.Map.Values[i] = p.Value
	p.Map.Std[i] = p.Std
	p.Map.IsSet[i] = true
}

func (p *Parameter) fetch(i int) {
	if !p.Map.IsSet[i] {
		return
	}
	p.Value = p.Map.Values[i]
	p.Std = p.Map.Std[i]
}
