// SPDX-License-Identifier: MIT

package catalog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("raytime.catalog")

var (
	// buildTotal counts finished catalog builds by result.
	buildTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "raytime_catalog_builds_total",
		Help: "Catalog builds by result",
	}, []string{"result"})

	// buildDuration tracks catalog build latency.
	buildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "raytime_catalog_build_duration_seconds",
		Help:    "Catalog build duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 14), // 0.1s to ~27min
	})

	// raypathsComputed counts integrated raypaths, searches included.
	raypathsComputed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "raytime_catalog_raypaths_computed_total",
		Help: "Raypaths integrated by catalogs",
	})

	// registryLookups counts registry hits by where the catalog came from.
	registryLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "raytime_catalog_registry_lookups_total",
		Help: "Registry lookups by source (memory, store, build)",
	}, []string{"source"})

	// storeSkipped counts persisted blobs passed over during a scan.
	storeSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "raytime_catalog_store_skipped_total",
		Help: "Persisted catalogs skipped by reason",
	}, []string{"reason"})

	// searches counts searches by kind.
	searches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "raytime_catalog_searches_total",
		Help: "Catalog searches by kind",
	}, []string{"kind"})
)
