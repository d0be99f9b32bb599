package raypath_test

import (
	"fmt"
	"math"

	"github.com/katalvlaran/raytime/mesh"
	"github.com/katalvlaran/raytime/phase"
	"github.com/katalvlaran/raytime/raypath"
	"github.com/katalvlaran/raytime/structure"
	"github.com/katalvlaran/raytime/woodhouse"
)

// ExampleRaypath_Delta shows that a vertical core reflection returns to its
// source.
func ExampleRaypath_Delta() {
	s := structure.PREM()
	m, err := mesh.New(s, mesh.WithInterval(10))
	if err != nil {
		panic(err)
	}
	rp, err := raypath.New(0, woodhouse.New(s), m)
	if err != nil {
		panic(err)
	}
	rp.Compute()
	fmt.Printf("PcP: %.1f deg\n", rp.Delta(phase.PcP, s.EarthRadius())*180/math.Pi)
	fmt.Println("P exists:", rp.Exists(phase.P, s.EarthRadius()))
	// Output:
	// PcP: 0.0 deg
	// P exists: false
}

// ExampleToRelativeAngle folds a distance past the antipode.
func ExampleToRelativeAngle() {
	fmt.Printf("%.0f\n", raypath.ToRelativeAngle(190*math.Pi/180)*180/math.Pi)
	// Output: 170
}
