// SPDX-License-Identifier: MIT
package axes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hyperaxes/axes"
	"github.com/katalvlaran/hyperaxes/units"
)

// imageSpecs is a 2-D navigation with an EDS signal; natural order y, x, energy.
func imageSpecs() []axes.AxisSpec {
	return []axes.AxisSpec{
		{Type: axes.TypeUniform, Name: "x", Navigate: true, Scale: 1.5e-9, Size: 1024, Units: units.Of("m")},
		{Type: axes.TypeUniform, Name: "y", Navigate: true, Scale: 0.5e-9, Size: 1024, Units: units.Of("m")},
		{Type: axes.TypeUniform, Name: "energy", Scale: 5.0, Size: 4096, Units: units.Of("eV")},
	}
}

// spectrumImageSpecs has two signal axes; natural signal order energy2, energy.
func spectrumImageSpecs() []axes.AxisSpec {
	return []axes.AxisSpec{
		{Name: "x", Navigate: true, Scale: 1.5e-9, Size: 1024, Units: units.Of("m")},
		{Name: "energy", Scale: 2.5, Size: 4096, Units: units.Of("eV")},
		{Name: "energy2", Scale: 5.0, Size: 4096, Units: units.Of("eV")},
	}
}

func mustManager(t *testing.T, specs []axes.AxisSpec, opts ...axes.Option) *axes.Manager {
	t.Helper()
	am, err := axes.NewManager(specs, opts...)
	require.NoError(t, err)

	return am
}

func mustAxis(t *testing.T, am *axes.Manager, name string) *axes.UniformDataAxis {
	t.Helper()
	ax, err := am.ByName(name)
	require.NoError(t, err)
	u, ok := ax.(*axes.UniformDataAxis)
	require.True(t, ok, "axis %q is not uniform", name)

	return u
}

func assertAxis(t *testing.T, am *axes.Manager, name, symbol string, scale float64) {
	t.Helper()
	ax := mustAxis(t, am, name)
	assert.Equalf(t, units.Of(symbol), ax.Units(), "axis %q units", name)
	assert.InDeltaf(t, scale, ax.Scale(), 1e-7*max(1, abs(scale)), "axis %q scale", name)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// TestManager_Ordering checks natural order, lookups and shapes.
func TestManager_Ordering(t *testing.T) {
	am := mustManager(t, imageSpecs())
	names := func(list []axes.Axis) []string {
		out := make([]string, len(list))
		for i, ax := range list {
			out[i] = ax.Name()
		}
		return out
	}
	assert.Equal(t, []string{"y", "x"}, names(am.NavigationAxes()))
	assert.Equal(t, []string{"energy"}, names(am.SignalAxes()))
	assert.Equal(t, 2, am.NavigationDimension())
	assert.Equal(t, 1, am.SignalDimension())
	assert.Equal(t, []int{1024, 1024}, am.NavigationShape())
	assert.Equal(t, 1024*1024, am.NavigationSize())
	assert.Equal(t, 4096, am.SignalSize())

	first, err := am.At(0)
	require.NoError(t, err)
	assert.Equal(t, "y", first.Name())
	last, err := am.At(-1)
	require.NoError(t, err)
	assert.Equal(t, "energy", last.Name())
	_, err = am.At(3)
	assert.ErrorIs(t, err, axes.ErrAxisNotFound)
	_, err = am.ByName("z")
	assert.ErrorIs(t, err, axes.ErrAxisNotFound)

	assert.Equal(t, imageSpecs(), am.Specs())
}

func TestManager_CompactUnits(t *testing.T) {
	am := mustManager(t, imageSpecs())
	rep, err := am.ConvertUnits(axes.SelectAll(), axes.CompactUnits(), true)
	require.NoError(t, err)
	assertAxis(t, am, "x", "nm", 1.5)
	assertAxis(t, am, "y", "nm", 0.5)
	assertAxis(t, am, "energy", "keV", 0.005)
	assert.Len(t, rep.Converted, 3)
	assert.Empty(t, rep.Skipped)
}

func TestManager_NavigationToUnit(t *testing.T) {
	am := mustManager(t, imageSpecs())
	_, err := am.ConvertUnits(axes.SelectNavigation(), axes.ToUnit(units.Of("mm")), true)
	require.NoError(t, err)
	assertAxis(t, am, "x", "mm", 1.5e-6)
	assertAxis(t, am, "y", "mm", 0.5e-6)
	assertAxis(t, am, "energy", "eV", 5)
}

// TestManager_IndexSelection converts one axis, then its whole group.
func TestManager_IndexSelection(t *testing.T) {
	am := mustManager(t, imageSpecs())
	_, err := am.ConvertUnits(axes.SelectIndex(0), axes.ToUnit(units.Of("nm")), false)
	require.NoError(t, err)
	assertAxis(t, am, "y", "nm", 0.5)
	assertAxis(t, am, "x", "m", 1.5e-9)
	assertAxis(t, am, "energy", "eV", 5)

	_, err = am.ConvertUnits(axes.SelectIndex(0), axes.ToUnit(units.Of("nm")), true)
	require.NoError(t, err)
	assertAxis(t, am, "y", "nm", 0.5)
	assertAxis(t, am, "x", "nm", 1.5)
	assertAxis(t, am, "energy", "eV", 5)

	_, err = am.ConvertUnits(axes.SelectName("energy"), axes.ToUnit(units.Of("keV")), true)
	require.NoError(t, err)
	assertAxis(t, am, "energy", "keV", 0.005)
	assertAxis(t, am, "x", "nm", 1.5)

	_, err = am.ConvertUnits(axes.SelectIndex(7), axes.CompactUnits(), true)
	assert.ErrorIs(t, err, axes.ErrAxisNotFound)
}

func TestManager_NavigationList(t *testing.T) {
	am := mustManager(t, imageSpecs())
	_, err := am.ConvertUnits(axes.SelectNavigation(), axes.ToUnits(units.Of("mm"), units.Of("nm")), false)
	require.NoError(t, err)
	assertAxis(t, am, "x", "nm", 1.5)
	assertAxis(t, am, "y", "mm", 0.5e-6)
	assertAxis(t, am, "energy", "eV", 5)

	am = mustManager(t, imageSpecs())
	_, err = am.ConvertUnits(axes.SelectNavigation(), axes.ToUnits(units.Of("mm"), units.Of("nm")), true)
	require.NoError(t, err)
	assertAxis(t, am, "x", "mm", 1.5e-6)
	assertAxis(t, am, "y", "mm", 0.5e-6)
	assertAxis(t, am, "energy", "eV", 5)
}

// TestManager_DifferentDimensions keeps axes of another dimension untouched.
func TestManager_DifferentDimensions(t *testing.T) {
	specs := append([]axes.AxisSpec{
		{Name: "time", Navigate: true, Scale: 1.5, Size: 20, Units: units.Of("s")},
	}, imageSpecs()...)
	am := mustManager(t, specs)
	_, err := am.ConvertUnits(axes.SelectNavigation(), axes.CompactUnits(), true)
	require.NoError(t, err)
	assertAxis(t, am, "time", "s", 1.5)
	assertAxis(t, am, "x", "nm", 1.5)
	assertAxis(t, am, "y", "nm", 0.5)
	assertAxis(t, am, "energy", "eV", 5)
}

// TestManager_UndefinedInGroup leaves the whole group alone.
func TestManager_UndefinedInGroup(t *testing.T) {
	specs := imageSpecs()
	specs[0].Units = units.Undefined
	opt, logs := observedLogger()
	am := mustManager(t, specs, opt)
	rep, err := am.ConvertUnits(axes.SelectNavigation(), axes.CompactUnits(), true)
	require.NoError(t, err)

	x := mustAxis(t, am, "x")
	assert.Equal(t, units.Undefined, x.Units())
	assert.Equal(t, 1.5e-9, x.Scale())
	assertAxis(t, am, "y", "m", 0.5e-9)
	assertAxis(t, am, "energy", "eV", 5)
	assert.Empty(t, rep.Converted)
	assert.Len(t, rep.Skipped, 2)
	assert.Equal(t, 0, warnings(logs))
}

func TestManager_SignalToUnit(t *testing.T) {
	am := mustManager(t, imageSpecs())
	_, err := am.ConvertUnits(axes.SelectSignal(), axes.ToUnit(units.Of("keV")), true)
	require.NoError(t, err)
	assertAxis(t, am, "x", "m", 1.5e-9)
	assertAxis(t, am, "y", "m", 0.5e-9)
	assertAxis(t, am, "energy", "keV", 0.005)
}

func TestManager_AllList(t *testing.T) {
	am := mustManager(t, imageSpecs())
	_, err := am.ConvertUnits(axes.SelectAll(), axes.ToUnits(units.Of("µm"), units.Of("nm"), units.Of("meV")), false)
	require.NoError(t, err)
	assertAxis(t, am, "x", "nm", 1.5)
	assertAxis(t, am, "y", "µm", 0.5e-3)
	assertAxis(t, am, "energy", "meV", 5e3)
}

// TestManager_AllListSameUnits slices the list per group.
func TestManager_AllListSameUnits(t *testing.T) {
	am := mustManager(t, spectrumImageSpecs())
	_, err := am.ConvertUnits(axes.SelectAll(), axes.ToUnits(units.Of("µm"), units.Of("eV"), units.Of("meV")), true)
	require.NoError(t, err)
	assertAxis(t, am, "x", "µm", 0.0015)
	assertAxis(t, am, "energy", "eV", 2.5)
	assertAxis(t, am, "energy2", "eV", 5.0)
}

func TestManager_AllListSignal2D(t *testing.T) {
	am := mustManager(t, spectrumImageSpecs())
	_, err := am.ConvertUnits(axes.SelectAll(), axes.ToUnits(units.Of("µm"), units.Of("eV"), units.Of("meV")), false)
	require.NoError(t, err)
	assertAxis(t, am, "x", "µm", 0.0015)
	assertAxis(t, am, "energy", "meV", 2500)
	assertAxis(t, am, "energy2", "eV", 5.0)
}

// TestManager_UnsupportedTarget warns and changes nothing.
func TestManager_UnsupportedTarget(t *testing.T) {
	for _, same := range []bool{true, false} {
		opt, logs := observedLogger()
		am := mustManager(t, imageSpecs(), opt)
		rep, err := am.ConvertUnits(axes.SelectNavigation(), axes.ToUnit(units.Of("toto")), same)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, warnings(logs), 1, "same=%v", same)
		assert.Equal(t, imageSpecs(), am.Specs(), "same=%v", same)
		assert.NotEmpty(t, rep.Skipped)
	}
}

func TestManager_UnitsLength(t *testing.T) {
	am := mustManager(t, imageSpecs())
	_, err := am.ConvertUnits(axes.SelectNavigation(), axes.ToUnits(units.Of("nm")), false)
	assert.ErrorIs(t, err, axes.ErrUnitsLength)
	_, err = am.ConvertUnits(axes.SelectAll(), axes.ToUnits(units.Of("nm"), units.Of("nm"), units.Of("eV"), units.Of("eV")), true)
	assert.ErrorIs(t, err, axes.ErrUnitsLength)
	assert.Equal(t, imageSpecs(), am.Specs())
}

// TestManager_NonUniform rejects selections containing a DataAxis.
func TestManager_NonUniform(t *testing.T) {
	am := mustManager(t, imageSpecs())
	coords := make([]float64, 16)
	for i := range coords {
		coords[i] = float64(i * i)
	}
	d, err := axes.NewDataAxis(coords, units.Undefined)
	require.NoError(t, err)
	require.NoError(t, am.SetAxis(0, d))

	_, err = am.ConvertUnits(axes.SelectAll(), axes.CompactUnits(), true)
	assert.ErrorIs(t, err, axes.ErrNotImplemented)
	assertAxis(t, am, "y", "m", 0.5e-9)
	assertAxis(t, am, "energy", "eV", 5)
}

// TestManager_NonUniformMidBatch keeps conversions made before the failure.
func TestManager_NonUniformMidBatch(t *testing.T) {
	am := mustManager(t, imageSpecs())
	d, err := axes.NewDataAxis([]float64{0, 1, 4, 9}, units.Of("m"))
	require.NoError(t, err)
	d.SetName("x")
	d.SetNavigate(true)
	require.NoError(t, am.SetAxis(0, d))

	_, err = am.ConvertUnits(axes.SelectName("y"), axes.ToUnit(units.Of("nm")), true)
	assert.ErrorIs(t, err, axes.ErrNotImplemented)
	assertAxis(t, am, "y", "nm", 0.5)
	x, err := am.ByName("x")
	require.NoError(t, err)
	assert.Equal(t, units.Of("m"), x.Units())
}

// TestManager_NavigationToUnitIndependent broadcasts a single unit when
// sameUnits is false, so every navigation axis lands in mm.
func TestManager_NavigationToUnitIndependent(t *testing.T) {
	am := mustManager(t, imageSpecs())
	rep, err := am.ConvertUnits(axes.SelectNavigation(), axes.ToUnit(units.Of("mm")), false)
	require.NoError(t, err)
	assertAxis(t, am, "x", "mm", 1.5e-6)
	assertAxis(t, am, "y", "mm", 5e-7)
	assertAxis(t, am, "energy", "eV", 5)
	assert.Len(t, rep.Converted, 2)
}

// TestManager_ZeroTarget treats Target{} as CompactUnits.
func TestManager_ZeroTarget(t *testing.T) {
	for _, same := range []bool{true, false} {
		am := mustManager(t, imageSpecs())
		rep, err := am.ConvertUnits(axes.SelectAll(), axes.Target{}, same)
		require.NoError(t, err)
		assertAxis(t, am, "x", "nm", 1.5)
		assertAxis(t, am, "y", "nm", 0.5)
		assertAxis(t, am, "energy", "keV", 0.005)
		assert.Len(t, rep.Converted, 3)
	}
}
