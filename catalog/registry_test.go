package catalog_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/raytime/catalog"
	"github.com/katalvlaran/raytime/phase"
)

// registryOptions keeps registry builds small.
func registryOptions() []catalog.Option {
	return []catalog.Option{
		catalog.WithLogger(quiet),
		catalog.WithDeltaP(40),
		catalog.WithReferencePhases(phase.P, phase.S),
	}
}

// TestRegistry_Collapse verifies that concurrent lookups share one build
// and persist exactly one blob.
func TestRegistry_Collapse(t *testing.T) {
	store := catalog.NewMemoryStore()
	reg := catalog.NewRegistry(store, registryOptions()...)
	m := coarseMesh(t)

	const n = 8
	got := make([]*catalog.Catalog, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := reg.Get(context.Background(), m, 10*deg)
			assert.NoError(t, err)
			got[i] = c
		}()
	}
	wg.Wait()
	require.NotNil(t, got[0])
	for _, c := range got[1:] {
		assert.Same(t, got[0], c)
	}
	assert.Equal(t, 1, reg.Len())

	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, names, 1)
}

// TestRegistry_LoadsFromStore verifies that a second registry reuses the
// persisted blob instead of rebuilding, and skips corrupt blobs.
func TestRegistry_LoadsFromStore(t *testing.T) {
	ctx := context.Background()
	store := catalog.NewMemoryStore()
	require.NoError(t, store.Write(ctx, "aaa-garbage"+catalog.Suffix, []byte("not a catalog")))
	m := coarseMesh(t)

	first, err := catalog.NewRegistry(store, registryOptions()...).Get(ctx, m, 10*deg)
	require.NoError(t, err)

	second, err := catalog.NewRegistry(store, registryOptions()...).Get(ctx, m, 10*deg)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, first.Key(), second.Key())
	assert.Equal(t, first.Len(), second.Len())

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, names, 2)

	R := m.Structure().EarthRadius()
	a, err := first.SearchTime(phase.P, R, 30*deg, false)
	require.NoError(t, err)
	b, err := second.SearchTime(phase.P, R, 30*deg, false)
	require.NoError(t, err)
	assert.InDeltaSlice(t, a, b, 1e-9)
}

// TestRegistry_DistinctKeys verifies that resolution is part of the key.
func TestRegistry_DistinctKeys(t *testing.T) {
	reg := catalog.NewRegistry(nil, registryOptions()...)
	m := coarseMesh(t)
	a, err := reg.Get(context.Background(), m, 10*deg)
	require.NoError(t, err)
	b, err := reg.Get(context.Background(), m, 20*deg)
	require.NoError(t, err)
	assert.NotEqual(t, a.Key(), b.Key())
	assert.Equal(t, 2, reg.Len())

	again, err := reg.Get(context.Background(), m, 10*deg)
	require.NoError(t, err)
	assert.Same(t, a, again)

	_, err = reg.Get(context.Background(), m, 0)
	assert.ErrorIs(t, err, catalog.ErrInvalidInput)
}
