// SPDX-License-Identifier: MIT

// Package axes models the axes of a multidimensional dataset and converts
// their physical units.
//
// What lives here:
//
//	UnitConversion  : (units, scale, offset, size) with single-axis conversion,
//	                  compact-prefix selection and quantity accessors
//	UniformDataAxis : an axis described by offset + scale*index
//	DataAxis        : an axis with explicit coordinates; never converted
//	Manager         : ordered axes split into navigation and signal groups,
//	                  with batch conversion (ConvertUnits)
//	AxisSpec        : the record a Manager is built from and serialised to
//
// Invariants:
//   - scale and offset are always expressed in the axis's current units; a
//     conversion multiplies both by the same factor.
//   - an axis with Undefined units is never converted, silently.
//   - an unsupported unit is skipped with a warning ("not supported for
//     conversion.") and leaves the axis untouched; batch conversion carries on.
//   - converting a DataAxis fails with ErrNotImplemented and aborts the batch;
//     axes converted earlier in the same call stay converted.
//
// Ordering:
//
//	Axes are stored in array order. Each group (navigation, signal) is exposed
//	in natural order, the reverse of array order within the group, and
//	integer lookups index navigation axes first, then signal axes.
//
// Quick example:
//
//	am, _ := axes.NewManager([]axes.AxisSpec{
//		{Name: "x", Navigate: true, Scale: 1.5e-9, Size: 1024, Units: units.Of("m")},
//		{Name: "energy", Scale: 5, Size: 4096, Units: units.Of("eV")},
//	})
//	_, err := am.ConvertUnits(axes.SelectAll(), axes.CompactUnits(), true)
//	// x is now 1.5 nm per pixel, energy 0.005 keV per channel
//
// Not safe for concurrent mutation: callers own the single-writer discipline.
package axes
