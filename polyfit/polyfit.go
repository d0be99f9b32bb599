// SPDX-License-Identifier: MIT

package polyfit

import (
	"fmt"
	"math"
)

// Polynomial is a fitted polynomial. The coefficients apply to (x − shift),
// lowest order first.
type Polynomial struct {
	coef  []float64
	shift float64
}

// Fit returns the least-squares polynomial of the given degree through
// (x[i], y[i]).
func Fit(x, y []float64, degree int) (Polynomial, error) {
	if degree < 0 || len(x) != len(y) || len(x) <= degree {
		return Polynomial{}, fmt.Errorf("Fit: %d points, degree %d: %w", len(x), degree, ErrTooFewPoints)
	}
	var shift float64
	for _, v := range x {
		shift += v
	}
	shift /= float64(len(x))

	a, err := NewDense(len(x), degree+1)
	if err != nil {
		return Polynomial{}, fmt.Errorf("Fit: %w", err)
	}
	for i, xi := range x {
		t, pow := xi-shift, 1.0
		for j := 0; j <= degree; j++ {
			a.set(i, j, pow)
			pow *= t
		}
	}
	coef, err := LeastSquares(a, y)
	if err != nil {
		return Polynomial{}, fmt.Errorf("Fit: %w", err)
	}
	return Polynomial{coef: coef, shift: shift}, nil
}

// Degree returns the degree of the polynomial.
func (p Polynomial) Degree() int { return len(p.coef) - 1 }

// Value evaluates the polynomial at x. A zero Polynomial yields NaN.
func (p Polynomial) Value(x float64) float64 {
	if len(p.coef) == 0 {
		return math.NaN()
	}
	t := x - p.shift
	var v float64
	for i := len(p.coef) - 1; i >= 0; i-- {
		v = v*t + p.coef[i]
	}
	return v
}

// Derivative evaluates dp/dx at x.
func (p Polynomial) Derivative(x float64) float64 {
	if len(p.coef) == 0 {
		return math.NaN()
	}
	t := x - p.shift
	var v float64
	for i := len(p.coef) - 1; i >= 1; i-- {
		v = v*t + float64(i)*p.coef[i]
	}
	return v
}
