package mesh_test

import (
	"sync"
	"testing"

	"github.com/katalvlaran/raytime/mesh"
	"github.com/katalvlaran/raytime/structure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew_EndpointsOffset verifies that every layer grid stays eps away from
// the boundaries and ascends.
func TestNew_EndpointsOffset(t *testing.T) {
	s := structure.PREM()
	m, err := mesh.New(s, mesh.WithInterval(10))
	require.NoError(t, err)
	require.Equal(t, len(s.Boundaries())-1, m.Len())

	for _, l := range m.Layers() {
		require.GreaterOrEqual(t, len(l.Radii), 2)
		assert.InDelta(t, l.Bottom+mesh.DefaultEps, l.Radii[0], 1e-12)
		assert.InDelta(t, l.Top-mesh.DefaultEps, l.Radii[len(l.Radii)-1], 1e-12)
		for i := 1; i < len(l.Radii); i++ {
			assert.Less(t, l.Radii[i-1], l.Radii[i])
			assert.LessOrEqual(t, l.Radii[i]-l.Radii[i-1], 10+1e-9)
		}
	}
}

// TestNew_Partitions verifies partition assignment and per-partition spacing.
func TestNew_Partitions(t *testing.T) {
	s := structure.PREM()
	m, err := mesh.New(s,
		mesh.WithInnerCoreInterval(50),
		mesh.WithOuterCoreInterval(100),
		mesh.WithMantleInterval(20))
	require.NoError(t, err)

	ic := m.LayersOf(structure.InnerCore)
	require.Len(t, ic, 1)
	assert.Equal(t, 0.0, ic[0].Bottom)
	assert.Equal(t, s.InnerCoreBoundary(), ic[0].Top)

	oc := m.LayersOf(structure.OuterCore)
	require.Len(t, oc, 1)
	assert.Equal(t, s.CoreMantleBoundary(), oc[0].Top)

	radii := m.Radii(structure.Mantle)
	assert.Greater(t, radii[0], s.CoreMantleBoundary())
	assert.Less(t, radii[len(radii)-1], s.EarthRadius())
	assert.Equal(t, 100.0, m.Interval(structure.OuterCore))
}

// TestLayerAt verifies boundary radii belong to the layer above.
func TestLayerAt(t *testing.T) {
	m := mesh.Simple(structure.PREM())

	assert.Equal(t, 0, m.LayerAt(0))
	assert.Equal(t, 1, m.LayerAt(1221.5))
	assert.Equal(t, 2, m.LayerAt(3480))
	assert.Equal(t, m.Len()-1, m.LayerAt(6371))
}

// TestKey verifies keys distinguish resolution and identify equal models.
func TestKey(t *testing.T) {
	a, err := mesh.New(structure.PREM(), mesh.WithInterval(25))
	require.NoError(t, err)
	b, err := mesh.New(structure.PREM(), mesh.WithInterval(25))
	require.NoError(t, err)
	c, err := mesh.New(structure.IsotropicPREM(), mesh.WithInterval(25))
	require.NoError(t, err)

	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
	assert.NotEqual(t, a.Key(), mesh.Simple(structure.PREM()).Key())
}

// TestOptions_Panics verifies option constructors reject nonsense.
func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { mesh.WithInterval(0) })
	assert.Panics(t, func() { mesh.WithMantleInterval(-1) })
	assert.Panics(t, func() { mesh.WithEps(0) })
	assert.Panics(t, func() { mesh.WithTurningZoneWidth(-5) })
}

// TestNew_EpsTooLarge verifies an eps wider than a layer is rejected.
func TestNew_EpsTooLarge(t *testing.T) {
	_, err := mesh.New(structure.PREM(), mesh.WithEps(100))
	assert.ErrorIs(t, err, mesh.ErrInvalidOption)
}

// TestCache_Get verifies concurrent requests share one mesh per key.
func TestCache_Get(t *testing.T) {
	c := mesh.NewCache()
	var wg sync.WaitGroup
	got := make([]*mesh.Mesh, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m, err := c.Get(structure.PREM(), mesh.WithInterval(50))
			assert.NoError(t, err)
			got[i] = m
		}(i)
	}
	wg.Wait()
	for _, m := range got {
		assert.Same(t, got[0], m)
	}
	assert.Equal(t, 1, c.Len())

	_, err := c.Get(structure.PREM(), mesh.WithInterval(40))
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
}
