// SPDX-License-Identifier: MIT
package units_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/hyperaxes/units"
)

// TestParseQuantity covers the "<number> <unit>" forms accepted by axis setters.
func TestParseQuantity(t *testing.T) {
	cases := []struct {
		in   string
		want units.Quantity
	}{
		{"2.5 nm", units.NewQuantity(2.5, units.Of("nm"))},
		{"5e-3 mm", units.NewQuantity(5e-3, units.Of("mm"))},
		{"5e-3", units.Scalar(5e-3)},
		{"  -1.5 um ", units.NewQuantity(-1.5, units.Of("µm"))},
		{"3keV", units.NewQuantity(3, units.Of("keV"))},
		{".5 1/nm", units.NewQuantity(0.5, units.Of("1 / nm"))},
	}
	for _, tc := range cases {
		got, err := units.ParseQuantity(tc.in)
		require.NoErrorf(t, err, "parse %q", tc.in)
		assert.Equalf(t, tc.want, got, "parse %q", tc.in)
	}

	_, err := units.ParseQuantity("nm")
	assert.ErrorIs(t, err, units.ErrInvalidQuantity)
	_, err = units.ParseQuantity("2.5 toto")
	assert.ErrorIs(t, err, units.ErrUnsupportedUnit)
}

// TestQuantity_StringAndConvert checks formatting and conversion.
func TestQuantity_StringAndConvert(t *testing.T) {
	q := units.NewQuantity(2.5, units.Of("nm"))
	assert.Equal(t, "2.5 nm", q.String())
	assert.Equal(t, "0.005", units.Scalar(0.005).String())
	assert.True(t, units.Scalar(1).IsUnitless())

	reg := units.Default()
	got, err := reg.ConvertQuantity(q, units.Of("um"))
	require.NoError(t, err)
	assert.Equal(t, units.Of("µm"), got.Units)
	assert.InDelta(t, 2.5e-3, got.Magnitude, 1e-15)

	_, err = reg.ConvertQuantity(units.Scalar(1), units.Of("m"))
	assert.ErrorIs(t, err, units.ErrUndefinedUnit)
}

// TestUnit_YAML round-trips defined and undefined units.
func TestUnit_YAML(t *testing.T) {
	type doc struct {
		A units.Unit `yaml:"a"`
		B units.Unit `yaml:"b"`
	}
	out, err := yaml.Marshal(doc{A: units.Of("nm")})
	require.NoError(t, err)
	assert.Contains(t, string(out), "a: nm")
	assert.Contains(t, string(out), "b: null")

	var back doc
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, units.Of("nm"), back.A)
	assert.Equal(t, units.Undefined, back.B)

	var missing doc
	require.NoError(t, yaml.Unmarshal([]byte("a: eV\n"), &missing))
	assert.Equal(t, units.Of("eV"), missing.A)
	assert.False(t, missing.B.IsDefined())
}
