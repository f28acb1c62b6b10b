// Package hyperaxes describes the axes of multi-dimensional scientific
// datasets, converts their units, and fits parametric models along them.
//
// The library is organised in three subpackages:
//
//	units/ : unit symbols, SI prefixes, conversion factors and compact prefix choice
//	axes/  : uniform and non-uniform data axes, the axes manager and its YAML codec
//	model/ : components, losses and bounded fitting of a signal over gonum/optimize
//
// Axes are grouped into navigation and signal roles. Within a role, axes are
// listed in natural order, the reverse of their storage order, so the first
// navigation axis is the fastest-varying one.
//
// Quick example:
//
//	am, _ := axes.NewManager([]axes.AxisSpec{
//		{Name: "x", Navigate: true, Size: 1024, Scale: 1.5e-9, Units: units.Of("m")},
//		{Name: "energy", Size: 4096, Scale: 5, Units: units.Of("eV")},
//	})
//	am.ConvertUnits(axes.SelectAll(), axes.CompactUnits(), true)
//	// x: 1.5 nm, energy: 0.005 keV
//
//	go get github.com/katalvlaran/hyperaxes
package hyperaxes
