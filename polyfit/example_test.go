package polyfit_test

import (
	"fmt"

	"github.com/katalvlaran/raytime/polyfit"
)

// ExampleFit recovers a parabola from three samples.
func ExampleFit() {
	x := []float64{0, 1, 2}
	y := []float64{1, 2, 5} // 1 + x²
	p, err := polyfit.Fit(x, y, 2)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.3f %.3f\n", p.Value(3), p.Derivative(3))
	// Output: 10.000 6.000
}
