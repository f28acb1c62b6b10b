// SPDX-License-Identifier: MIT

package units

import "math"

// Compact returns the prefixed variant of u that displays magnitude
// (expressed in u) with a mantissa in [1, 1000).
//
// Implementation:
//   - Stage 1: express magnitude in the prefix-free base unit.
//   - Stage 2: take its exact decimal exponent e; the wanted power is
//     floor(e/3)*3, negated for reciprocal units.
//   - Stage 3: pick the first SI prefix whose exponent is >= that power,
//     falling back to the largest prefix past the end of the table.
//
// Behavior highlights:
//   - On a power-of-1000 boundary the larger prefix wins (mantissa 1, not 1000).
//   - Zero, NaN or ±Inf magnitudes and base units that take no prefix return
//     the normalised u unchanged.
//
// Errors:
//   - ErrUndefinedUnit, ErrUnsupportedUnit from resolution.
func (r *Registry) Compact(magnitude float64, u Unit) (Unit, error) {
	t, err := r.resolve(u)
	if err != nil {
		return u, err
	}
	if magnitude == 0 || math.IsNaN(magnitude) || math.IsInf(magnitude, 0) || !t.base.prefixable {
		return Of(t.format()), nil
	}

	// Stage 1: magnitude in base units (1/µm = 1e6 1/m).
	inBase := math.Abs(magnitude) * math.Pow10(t.prefix.exp*t.power)

	// Stage 2: engineering exponent.
	want := floorDiv(decimalExponent(inBase), 3) * 3 * t.power

	// Stage 3: bisect-left over the sorted prefix exponents.
	chosen := siPrefixes[len(siPrefixes)-1]
	for _, p := range siPrefixes {
		if p.exp >= want {
			chosen = p
			break
		}
	}
	t.prefix = chosen

	return Of(t.format()), nil
}

// decimalExponent returns floor(log10(x)) for x > 0, corrected so exact
// powers of ten land on their own exponent despite log rounding.
func decimalExponent(x float64) int {
	e := int(math.Floor(math.Log10(x)))
	switch {
	case math.Pow10(e+1) <= x:
		e++
	case math.Pow10(e) > x:
		e--
	}

	return e
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}

	return q
}
