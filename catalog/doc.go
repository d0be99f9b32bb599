// SPDX-License-Identifier: MIT

// Package catalog samples ray-parameter space into an ordered set of
// computed raypaths and answers phase/distance queries from it.
//
// 🚀 What is a catalog?
//
//	Build computes raypaths on a coarse grid of ray parameters, adds the
//	grazing rays of Pdiff, SVdiff and SHdiff and the outer-core limit, then
//	inserts midpoints between neighbours until no reference phase jumps by
//	more than Δδ between adjacent samples. Searches bracket the target
//	distance between neighbours and refine with a local polynomial fit.
//
// ✨ Key features:
//   - Parallel raypath integration on an errgroup worker pool.
//   - SearchPath / SearchTime returning every arrival (triplications
//     included); an empty result means no arrival.
//   - Registry that reuses in-memory catalogs, loads persisted ones and
//     builds missing ones once, with concurrent requests collapsed.
//   - Versioned, checksummed blob codec and directory, badger and memory
//     stores.
//   - Prometheus metrics and OpenTelemetry spans.
//
// ⚙️ Usage:
//
//	store, _ := catalog.NewDirStore(cacheDir)
//	reg := catalog.NewRegistry(store, catalog.WithLogger(logger))
//	cat, err := reg.Get(ctx, mesh.Simple(structure.PREM()), catalog.DefaultDDelta)
//	times, err := cat.SearchTime(phase.P, 6371, 60*math.Pi/180, false)
package catalog
