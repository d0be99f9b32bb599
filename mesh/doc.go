// SPDX-License-Identifier: MIT

// Package mesh builds the radius grids the raypath integrator samples.
//
// 🚀 What is a computational mesh?
//
//	Every layer between two consecutive structure boundaries gets a uniform
//	grid running from bottom+ε to top−ε. Integrands are never evaluated
//	exactly on a discontinuity, where the elastic parameters are double
//	valued.
//
// ✨ Key features:
//   - Separate resolution per partition (inner core, outer core, mantle).
//   - Comparable Key, so meshes and everything derived from them can be
//     cached and persisted.
//   - Cache memoizes meshes per key and is safe for concurrent use.
//
// ⚙️ Usage:
//
//	m, err := mesh.New(structure.PREM(), mesh.WithMantleInterval(5))
//	for _, l := range m.LayersOf(structure.Mantle) {
//		fmt.Println(l.Bottom, l.Top, len(l.Radii))
//	}
package mesh
