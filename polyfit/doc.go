// SPDX-License-Identifier: MIT

// Package polyfit fits polynomials to sample points by linear least squares.
//
// 🚀 What is it for?
//
//	Catalog searches interpolate travel time and ray parameter from a few
//	neighbouring raypaths. Fit builds the Vandermonde system of the samples
//	and solves it with a Householder QR decomposition, which stays stable
//	where the normal equations would square the condition number.
//
// ✨ Key features:
//   - Any degree below the number of points; exact interpolation when
//     degree = len(points) − 1.
//   - Abscissae are centred before fitting.
//   - Small row-major Dense matrix with checked accessors.
//
// ⚙️ Usage:
//
//	p, err := polyfit.Fit([]float64{0, 1, 2}, []float64{1, 2, 5}, 2)
//	y := p.Value(1.5)
package polyfit
