// SPDX-License-Identifier: MIT
package axes_test

import (
	"fmt"

	"github.com/katalvlaran/hyperaxes/axes"
	"github.com/katalvlaran/hyperaxes/units"
)

// ExampleManager_ConvertUnits compacts every group of an EDS spectrum image.
func ExampleManager_ConvertUnits() {
	am, err := axes.NewManager([]axes.AxisSpec{
		{Type: axes.TypeUniform, Name: "x", Navigate: true, Size: 1024, Scale: 1.5e-9, Units: units.Of("m")},
		{Type: axes.TypeUniform, Name: "y", Navigate: true, Size: 1024, Scale: 0.5e-9, Units: units.Of("m")},
		{Type: axes.TypeUniform, Name: "energy", Size: 4096, Scale: 5, Units: units.Of("eV")},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if _, err := am.ConvertUnits(axes.SelectAll(), axes.CompactUnits(), true); err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, ax := range am.Axes() {
		u := ax.(*axes.UniformDataAxis)
		fmt.Printf("%s: %.4g %s\n", u.Name(), u.Scale(), u.Units())
	}
	// Output:
	// x: 1.5 nm
	// y: 0.5 nm
	// energy: 0.005 keV
}
