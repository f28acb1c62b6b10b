// SPDX-License-Identifier: MIT

package model

import "math"

// boundKind classifies a parameter's bounds.
type boundKind int

const (
	boundNone boundKind = iota
	boundLower
	boundUpper
	boundBoth
)

// transform maps an unconstrained internal variable onto [lo, hi]:
//
//	both:  x = lo + (hi-lo) * (sin(y)+1)/2
//	lower: x = lo - 1 + sqrt(y^2+1)
//	upper: x = hi + 1 - sqrt(y^2+1)
type transform struct {
	kind   boundKind
	lo, hi float64
}

func newTransform(p *Parameter, bounded bool) transform {
	if !bounded {
		return transform{kind: boundNone}
	}
	lo, hi := p.Bmin, p.Bmax
	switch {
	case !math.IsInf(lo, -1) && !math.IsInf(hi, 1):
		return transform{kind: boundBoth, lo: lo, hi: hi}
	case !math.IsInf(lo, -1):
		return transform{kind: boundLower, lo: lo}
	case !math.IsInf(hi, 1):
		return transform{kind: boundUpper, hi: hi}
	}

	return transform{kind: boundNone}
}

// external maps y to the parameter value.
func (t transform) external(y float64) float64 {
	switch t.kind {
	case boundBoth:
		return t.lo + (t.hi-t.lo)*(math.Sin(y)+1)/2
	case boundLower:
		return t.lo - 1 + math.Sqrt(y*y+1)
	case boundUpper:
		return t.hi + 1 - math.Sqrt(y*y+1)
	}

	return y
}

// internal maps a value (already inside the bounds) back to y.
func (t transform) internal(x float64) float64 {
	switch t.kind {
	case boundBoth:
		if t.hi == t.lo {
			return 0
		}
		s := 2*(x-t.lo)/(t.hi-t.lo) - 1
		return math.Asin(math.Max(-1, math.Min(1, s)))
	case boundLower:
		d := x - t.lo + 1
		return math.Sqrt(math.Max(0, d*d-1))
	case boundUpper:
		d := t.hi - x + 1
		return math.Sqrt(math.Max(0, d*d-1))
	}

	return x
}

// derivative returns dx/dy at y.
func (t transform) derivative(y float64) float64 {
	switch t.kind {
	case boundBoth:
		return (t.hi - t.lo) * math.Cos(y) / 2
	case boundLower:
		return y / math.Sqrt(y*y+1)
	case boundUpper:
		return -y / math.Sqrt(y*y+1)
	}

	return 1
}

// startNudge keeps a starting point off the flat spots of the transform,
// where the chain-rule gradient vanishes.
const startNudge = 0.1

// start is internal(x) moved away from the stationary points of external.
func (t transform) start(x float64) float64 {
	y := t.internal(x)
	switch t.kind {
	case boundLower, boundUpper:
		if y < startNudge {
			y = startNudge
		}
	case boundBoth:
		if y > math.Pi/2-startNudge {
			y = math.Pi/2 - startNudge
		} else if y < -math.Pi/2+startNudge {
			y = -math.Pi/2 + startNudge
		}
	}

	return y
}
