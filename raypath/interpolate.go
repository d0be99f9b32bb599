// SPDX-License-Identifier: MIT

package raypath

import (
	"math"

	"github.com/katalvlaran/raytime/phase"
	"github.com/katalvlaran/raytime/polyfit"
)

// DefaultInterpolationDegree is the polynomial degree of three-point
// interpolation.
const DefaultInterpolationDegree = 2

// ToRelativeAngle folds an angle (rad) into [0, π]: 190° becomes 170°.
func ToRelativeAngle(angle float64) float64 {
	a := math.Mod(angle, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a <= math.Pi {
		return a
	}
	return 2*math.Pi - a
}

// InterpolateTravelTime fits T(Δ) through the raypaths with a polynomial of
// the given degree and evaluates it at target. It returns NaN when any
// raypath lacks the phase or the fit is degenerate.
func InterpolateTravelTime(ph phase.Phase, eventR, target float64, relative bool, degree int, paths ...*Raypath) float64 {
	return interpolate(ph, eventR, target, relative, degree, paths, func(rp *Raypath) float64 {
		return rp.T(ph, eventR)
	})
}

// InterpolateRayParameter fits p(Δ) like InterpolateTravelTime.
func InterpolateRayParameter(ph phase.Phase, eventR, target float64, relative bool, degree int, paths ...*Raypath) float64 {
	return interpolate(ph, eventR, target, relative, degree, paths, func(rp *Raypath) float64 {
		return rp.p
	})
}

func interpolate(ph phase.Phase, eventR, target float64, relative bool, degree int,
	paths []*Raypath, value func(*Raypath) float64) float64 {
	x := make([]float64, len(paths))
	y := make([]float64, len(paths))
	for i, rp := range paths {
		if rp == nil {
			return math.NaN()
		}
		x[i] = rp.Delta(ph, eventR)
		if relative {
			x[i] = ToRelativeAngle(x[i])
		}
		y[i] = value(rp)
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			return math.NaN()
		}
	}
	if degree > len(paths)-1 {
		degree = len(paths) - 1
	}
	poly, err := polyfit.Fit(x, y, degree)
	if err != nil {
		return math.NaN()
	}
	return poly.Value(target)
}
