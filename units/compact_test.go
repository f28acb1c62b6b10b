// SPDX-License-Identifier: MIT
package units_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hyperaxes/units"
)

// TestCompact_Table exercises the magnitude→prefix rule on typical axis spans
// (magnitude = 0.25 * scale * size).
func TestCompact_Table(t *testing.T) {
	reg := units.Default()
	cases := []struct {
		name      string
		magnitude float64
		in, want  string
	}{
		{"HR image", 0.25 * 12e-12 * 2048, "m", "nm"},
		{"nm image", 0.25 * 0.5e-9 * 1024, "m", "nm"},
		{"TEM diffraction", 0.25 * 0.1e9 * 1024, "1/m", "1 / nm"},
		{"coarse diffraction", 0.25 * 0.01e9 * 256, "1/m", "1 / µm"},
		{"EDS", 0.25 * 50 * 4096, "eV", "keV"},
		{"EELS", 0.25 * 0.2 * 2048, "eV", "eV"},
		{"HR EELS", 0.25 * 0.05 * 100, "eV", "eV"},
		{"already prefixed", 0.25 * 1.5e3 * 1024, "nm", "µm"},
		{"reciprocal prefixed", 0.25 * 10 * 256, "1/µm", "1 / µm"},
		{"negative span", -0.25 * 50 * 4096, "eV", "keV"},
		{"below yocto", 1e-30, "m", "ym"},
		{"above yotta", 1e30, "m", "Ym"},
	}
	for _, tc := range cases {
		got, err := reg.Compact(tc.magnitude, units.Of(tc.in))
		require.NoError(t, err, tc.name)
		assert.Equal(t, units.Of(tc.want), got, tc.name)
	}
}

// TestCompact_Boundary keeps the mantissa >= 1 on exact powers of 1000.
func TestCompact_Boundary(t *testing.T) {
	reg := units.Default()
	cases := map[float64]string{
		1000:     "km",
		999.9999: "m",
		1:        "m",
		1e-3:     "mm",
		1e-9:     "nm",
		1e6:      "Mm",
	}
	for mag, want := range cases {
		got, err := reg.Compact(mag, units.Of("m"))
		require.NoError(t, err)
		assert.Equalf(t, units.Of(want), got, "magnitude %g", mag)
	}
}

// TestCompact_Passthrough covers zero, non-finite and non-prefixable inputs.
func TestCompact_Passthrough(t *testing.T) {
	reg := units.Default()
	for _, mag := range []float64{0, math.NaN(), math.Inf(1)} {
		got, err := reg.Compact(mag, units.Of("um"))
		require.NoError(t, err)
		assert.Equal(t, units.Of("µm"), got)
	}
	got, err := reg.Compact(1e-12, units.Of("Å"))
	require.NoError(t, err)
	assert.Equal(t, units.Of("Å"), got)

	_, err = reg.Compact(1, units.Of("toto"))
	assert.ErrorIs(t, err, units.ErrUnsupportedUnit)
	_, err = reg.Compact(1, units.Undefined)
	assert.ErrorIs(t, err, units.ErrUndefinedUnit)
}
