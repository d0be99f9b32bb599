// SPDX-License-Identifier: MIT

// Package structure describes radially layered planetary models for ray
// tracing: density and the five transversely isotropic elastic moduli
// (A, C, F, L, N) as functions of radius.
//
// 🚀 What is a velocity structure?
//
//	A spherically symmetric Earth model split into layers bounded by
//	discontinuities. Three boundaries are special:
//	  • ICB  (inner-core boundary, solid inside, fluid outside)
//	  • CMB  (core-mantle boundary, fluid inside, solid outside)
//	  • the free surface
//
// ✨ Key features:
//   - Structure interface consumed by the kernel, mesh and raypath packages
//   - PolynomialStructure with the built-in PREM (transversely isotropic)
//     and IsotropicPREM reference models
//   - TabulatedStructure for user-supplied depth tables
//   - TOML / YAML model files via Load and LoadFile
//   - IsDiscontinuity ratio probe and TurningRadius solver for r·sqrt(ρ/M) = p
//   - structural equality through Fingerprint, so identical models share caches
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/raytime/structure"
//
//	prem := structure.PREM()
//	rho := prem.Rho(5000)                       // g/cm³
//	rt, st := structure.TurningRadius(prem, structure.ModulusA, 600,
//	    prem.CoreMantleBoundary(), prem.EarthRadius())
//
// Units: radius in km, density in g/cm³, velocities in km/s, moduli in GPa.
package structure
