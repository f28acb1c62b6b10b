// SPDX-License-Identifier: MIT

package units

import (
	"math"

	"gonum.org/v1/gonum/unit"
)

// prefix is an SI multiplier. Symbols are the canonical short forms.
type prefix struct {
	symbol string
	exp    int // power of ten
}

// siPrefixes is sorted by exponent; Compact bisects over it.
var siPrefixes = []prefix{
	{"y", -24}, {"z", -21}, {"a", -18}, {"f", -15}, {"p", -12}, {"n", -9},
	{"µ", -6}, {"m", -3}, {"c", -2}, {"d", -1}, {"", 0}, {"da", 1}, {"h", 2},
	{"k", 3}, {"M", 6}, {"G", 9}, {"T", 12}, {"P", 15}, {"E", 18}, {"Z", 21}, {"Y", 24},
}

// prefixAliases maps alternative spellings to canonical prefixes: ASCII "u"
// and the Greek small letter mu both mean micro.
var prefixAliases = map[string]string{
	"u": "µ",
	"μ": "µ",
}

// baseUnit is a prefix-free unit known to the registry.
type baseUnit struct {
	symbol     string
	si         float64 // value of one unit in coherent SI units
	dims       unit.Dimensions
	prefixable bool
}

// dimensions used by the default table.
var (
	dimLength   = unit.Dimensions{unit.LengthDim: 1}
	dimTime     = unit.Dimensions{unit.TimeDim: 1}
	dimMass     = unit.Dimensions{unit.MassDim: 1}
	dimEnergy   = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 2, unit.TimeDim: -2}
	dimPower    = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 2, unit.TimeDim: -3}
	dimForce    = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 1, unit.TimeDim: -2}
	dimPressure = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -1, unit.TimeDim: -2}
	dimVoltage  = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 2, unit.TimeDim: -3, unit.CurrentDim: -1}
	dimOhm      = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 2, unit.TimeDim: -3, unit.CurrentDim: -2}
	dimCharge   = unit.Dimensions{unit.CurrentDim: 1, unit.TimeDim: 1}
	dimTesla    = unit.Dimensions{unit.MassDim: 1, unit.TimeDim: -2, unit.CurrentDim: -1}
	dimFreq     = unit.Dimensions{unit.TimeDim: -1}
)

// electronvolt in joules (exact since the 2019 SI redefinition).
const electronvolt = 1.602176634e-19

// defaultBaseUnits is the table a Registry starts from.
func defaultBaseUnits() []baseUnit {
	return []baseUnit{
		{"m", 1, dimLength, true},
		{"s", 1, dimTime, true},
		{"g", 1e-3, dimMass, true},
		{"eV", electronvolt, dimEnergy, true},
		{"J", 1, dimEnergy, true},
		{"W", 1, dimPower, true},
		{"N", 1, dimForce, true},
		{"Pa", 1, dimPressure, true},
		{"V", 1, dimVoltage, true},
		{"Ω", 1, dimOhm, true},
		{"A", 1, unit.Dimensions{unit.CurrentDim: 1}, true},
		{"C", 1, dimCharge, true},
		{"T", 1, dimTesla, true},
		{"K", 1, unit.Dimensions{unit.TemperatureDim: 1}, true},
		{"mol", 1, unit.Dimensions{unit.MoleDim: 1}, true},
		{"Hz", 1, dimFreq, true},
		{"rad", 1, unit.Dimensions{unit.AngleDim: 1}, true},
		{"Å", 1e-10, dimLength, false},
		{"min", 60, dimTime, false},
		{"h", 3600, dimTime, false},
		{"deg", math.Pi / 180, unit.Dimensions{unit.AngleDim: 1}, false},
	}
}
