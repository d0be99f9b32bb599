// SPDX-License-Identifier: MIT

package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/katalvlaran/raytime/mesh"
	"github.com/katalvlaran/raytime/woodhouse"
)

// Registry hands out catalogs by key. A lookup tries, in order, the
// catalogs already in memory, the blobs in the store whose header matches,
// and finally a fresh build that is persisted under a new name. Concurrent
// lookups of one key share a single load or build.
type Registry struct {
	store   Store
	opts    []Option
	logger  *slog.Logger
	kernels *woodhouse.Cache

	mu       sync.RWMutex
	catalogs map[Key]*Catalog
	group    singleflight.Group
}

// NewRegistry returns a registry over store; a nil store disables
// persistence. opts apply to every catalog it builds or loads.
func NewRegistry(store Store, opts ...Option) *Registry {
	return &Registry{
		store:    store,
		opts:     opts,
		logger:   newSettings(opts).logger,
		kernels:  woodhouse.NewCache(),
		catalogs: make(map[Key]*Catalog),
	}
}

// Kernel returns a kernel for m's structure sharing the registry's
// coefficient cache.
func (r *Registry) Kernel(m *mesh.Mesh) *woodhouse.Kernel {
	return woodhouse.New(m.Structure(), woodhouse.WithCache(r.kernels))
}

// Len returns the number of catalogs held in memory.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.catalogs)
}

// Get returns the catalog for m and dDelta.
func (r *Registry) Get(ctx context.Context, m *mesh.Mesh, dDelta float64) (*Catalog, error) {
	if !finitePositive(dDelta) {
		return nil, fmt.Errorf("Registry.Get: ddelta %g: %w", dDelta, ErrInvalidInput)
	}
	key := KeyOf(m, dDelta)
	if c := r.cached(key); c != nil {
		registryLookups.WithLabelValues("memory").Inc()
		return c, nil
	}

	ctx, span := tracer.Start(ctx, "catalog.Registry.Get", trace.WithAttributes(
		attribute.String("catalog.key", key.String()),
	))
	defer span.End()

	v, err, shared := r.group.Do(key.Mesh.Structure+"/"+key.String(), func() (interface{}, error) {
		if c := r.cached(key); c != nil {
			registryLookups.WithLabelValues("memory").Inc()
			return c, nil
		}
		c, err := r.resolve(ctx, m, key)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.catalogs[key] = c
		r.mu.Unlock()
		return c, nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("Registry.Get: %w", err)
	}
	span.SetAttributes(attribute.Bool("catalog.shared", shared))
	span.SetStatus(codes.Ok, "")
	return v.(*Catalog), nil
}

func (r *Registry) cached(key Key) *Catalog {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.catalogs[key]
}

// resolve loads from the store or builds.
func (r *Registry) resolve(ctx context.Context, m *mesh.Mesh, key Key) (*Catalog, error) {
	k := r.Kernel(m)
	if c := r.load(ctx, k, m, key); c != nil {
		registryLookups.WithLabelValues("store").Inc()
		return c, nil
	}
	c, err := Build(ctx, k, m, key.DDelta, r.opts...)
	if err != nil {
		return nil, err
	}
	registryLookups.WithLabelValues("build").Inc()
	r.save(ctx, c)
	return c, nil
}

// load scans the store for a blob with a matching header. Unreadable blobs
// are logged and skipped.
func (r *Registry) load(ctx context.Context, k *woodhouse.Kernel, m *mesh.Mesh, key Key) *Catalog {
	if r.store == nil {
		return nil
	}
	ctx, span := tracer.Start(ctx, "catalog.load")
	defer span.End()

	names, err := r.store.List(ctx)
	if err != nil {
		span.RecordError(err)
		r.logger.Warn("catalog store listing failed", "error", err)
		return nil
	}
	for _, name := range names {
		blob, err := r.store.Read(ctx, name)
		if err != nil {
			r.logger.Warn("catalog blob unreadable", "name", name, "error", err)
			storeSkipped.WithLabelValues("unreadable").Inc()
			continue
		}
		h, err := DecodeHeader(bytes.NewReader(blob))
		if err != nil {
			r.skip(name, err)
			continue
		}
		if h.Key != key {
			storeSkipped.WithLabelValues("mismatch").Inc()
			continue
		}
		c, err := Unmarshal(blob, k, m, r.opts...)
		if err != nil {
			r.skip(name, err)
			continue
		}
		span.SetAttributes(attribute.String("catalog.name", name))
		r.logger.Info("catalog loaded", "name", name, "key", key.String(), "raypaths", c.Len())
		return c
	}
	return nil
}

func (r *Registry) skip(name string, err error) {
	reason := "corrupt"
	if errors.Is(err, ErrVersionMismatch) {
		reason = "version"
	}
	storeSkipped.WithLabelValues(reason).Inc()
	r.logger.Warn("catalog blob skipped", "name", name, "reason", reason, "error", err)
}

// save persists c under a new name. Failures are logged; the catalog stays
// usable in memory.
func (r *Registry) save(ctx context.Context, c *Catalog) {
	if r.store == nil {
		return
	}
	ctx, span := tracer.Start(ctx, "catalog.save")
	defer span.End()

	blob, err := Marshal(c)
	if err == nil {
		name := NewName()
		if err = r.store.Write(ctx, name, blob); err == nil {
			span.SetAttributes(attribute.String("catalog.name", name), attribute.Int("catalog.bytes", len(blob)))
			r.logger.Info("catalog saved", "name", name, "bytes", len(blob))
			return
		}
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	r.logger.Warn("catalog not persisted", "key", c.Key().String(), "error", err)
}
