// Package raytime computes seismic travel times, ray parameters and
// raypaths in spherically symmetric, transversely isotropic Earth models.
//
// 🚀 What is raytime?
//
//	A ray-theory engine built from small packages:
//		• phase:     phase-name grammar (P, PcP, SKiKS, Pdiff, P670S, ...)
//		• structure: PREM, polynomial and tabulated velocity models
//		• woodhouse: TI ray-theory integrands with a shared coefficient cache
//		• mesh:      radial integration grids per core shell and mantle
//		• raypath:   Δ(p) and T(p) for every phase at one ray parameter
//		• polyfit:   least-squares polynomial fits for local refinement
//		• catalog:   sampled ray-parameter space, searches, persistence
//		• config:    viper-backed settings validated on load
//
// ✨ Key features:
//
//   - Full TI kernels (A, C, F, L, N), isotropic models as a special case
//   - Every arrival returned, triplications included; no arrival is an
//     empty result rather than an error
//   - Catalogs built once on a worker pool, persisted with a checksummed
//     blob codec and reused across runs
//   - Structured logging, Prometheus metrics and OpenTelemetry spans
//
// Layout:
//
//	cmd/raytime/ CLI: time, path, phase, catalog build|list
//	catalog/     Build, Registry, SearchPath, SearchTime, stores
//	raypath/     per-p integration, Route, interpolation helpers
//
//	go install github.com/katalvlaran/raytime/cmd/raytime@latest
package raytime
