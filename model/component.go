// SPDX-License-Identifier: MIT

package model

// Points is the flattened signal grid a component is evaluated on.
// Y is nil for one-dimensional signals.
type Points struct {
	X []float64
	Y []float64
}

// Len returns the number of points.
func (p Points) Len() int { return len(p.X) }

// mask keeps the points whose switch is on.
func (p Points) mask(on []bool) Points {
	var out Points
	for i, keep := range on {
		if !keep {
			continue
		}
		out.X = append(out.X, p.X[i])
		if p.Y != nil {
			out.Y = append(out.Y, p.Y[i])
		}
	}

	return out
}

// Component is a parametric function of the signal coordinates.
type Component interface {
	Name() string
	// Dimension is the signal dimension the component applies to (1 or 2).
	Dimension() int
	Parameters() []*Parameter
	Active() bool
	SetActive(active bool)
	// Evaluate overwrites out[i] with the component value at point i.
	Evaluate(pts Points, out []float64)
}

// GradientComponent is a Component with analytical parameter derivatives.
type GradientComponent interface {
	Component
	// Gradient overwrites out[i] with d(component)/d(Parameters()[k]) at point i.
	Gradient(k int, pts Points, out []float64)
}

// base carries the bookkeeping shared by built-in components.
type base struct {
	name     string
	dim      int
	params   []*Parameter
	inactive bool
}

func (b *base) Name() string { return b.name }
func (b *base) Dimension() int { return b.dim }
func (b *base) Parameters() []*Parameter { return b.params }
func (b *base) Active() bool { return !b.inactive }
func (b *base) SetActive(active bool) { b.inactive = !active }

// SetName renames the component.
func (b *base) SetName(name string) { b.name = name }
