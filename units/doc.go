// SPDX-License-Identifier: MIT

// Package units resolves physical unit symbols for axis conversion.
//
// A Registry understands simple SI-prefixed units ("nm", "keV", "ms") and
// their reciprocals ("1/µm", "nm^-1"). Each base unit is backed by a
// gonum.org/v1/gonum/unit value, so two symbols are convertible exactly when
// their gonum dimensions match. Anything else (compound units, free text) is
// reported as ErrUnsupportedUnit and left for the caller to skip.
//
// Unit is a small value type with an explicit Undefined zero value: an axis
// that never had a unit assigned is not the same thing as an axis whose unit
// is the empty string.
//
// Typical use:
//
//	reg := units.Default()
//	f, err := reg.Factor(units.Of("µm"), units.Of("nm")) // f == 1000
//	u, err := reg.Compact(6.144e-9, units.Of("m"))       // u == units.Of("nm")
//
// Formatting follows the short symbol style: "µm", "keV", "1 / nm".
package units
