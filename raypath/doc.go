// SPDX-License-Identifier: MIT

// Package raypath integrates epicentral distance and travel time for one ray
// parameter.
//
// 🚀 What is a Raypath?
//
//	A Raypath fixes the ray parameter p and, once computed, knows for every
//	wave type where the ray turns and how much Δ and T it accumulates per
//	layer. Any phase is then evaluated leg by leg from those integrals: a
//	leg from radius a to radius b contributes I(b) − I(a), where I is the
//	cumulative integral from the lowest point of the wave.
//
// ✨ Key features:
//   - Simpson quadrature on the mesh with memoized kernel values.
//   - Turning points handled by the substitution r = rt + u², which turns
//     the 1/sqrt singularity into a smooth integrand for Gauss-Legendre.
//   - Rays through the centre of the Earth (p = 0, inner-core bounce) add
//     π/2 per half.
//   - Diffraction along the core-mantle boundary at the grazing ray
//     parameter.
//   - Route geometry, τ = T − pΔ, and three-point interpolation helpers.
//   - Snapshot and Restore for persistence.
//
// ⚙️ Usage:
//
//	rp, err := raypath.New(500, woodhouse.New(s), mesh.Simple(s))
//	rp.Compute()
//	delta := rp.Delta(phase.P, s.EarthRadius()) // NaN when P does not exist
//
// Non-existing arrivals are NaN, never errors.
package raypath
