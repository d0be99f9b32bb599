// SPDX-License-Identifier: MIT

// Package woodhouse evaluates the ray-theory integrands of Woodhouse (1981)
// for a transversely isotropic structure.
//
// For a ray parameter p and radius r the package exposes
//
//	qτ  vertical slowness, zero at the turning radius
//	qΔ  dΔ/dr, angular distance integrand
//	qT  dT/dr, travel time integrand
//
// for the six wave types of package phase. They are built from five scalar
// fields S1..S5 of ρ, A, C, F, L and N:
//
//	S1 = ρ/2 (1/L + 1/C)
//	S2 = ρ/2 (1/L − 1/C)
//	S3 = (AC − F² − 2LF) / (2LC)
//	S4 = S3² − A/C
//	S5 = ρ/(2C) (1 + A/L) − S1·S3
//	R  = sqrt(S4 (p/r)⁴ + 2 S5 (p/r)² + S2²)
//
// A negative radicand yields NaN: the ray does not exist at r.
//
// Coefficients are memoized per radius in a Cache owned by the caller and
// shared by every Kernel built on a structure with the same fingerprint.
package woodhouse
