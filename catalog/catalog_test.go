package catalog_test

import (
	"context"
	"io"
	"log/slog"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/raytime/catalog"
	"github.com/katalvlaran/raytime/mesh"
	"github.com/katalvlaran/raytime/phase"
	"github.com/katalvlaran/raytime/raypath"
	"github.com/katalvlaran/raytime/structure"
	"github.com/katalvlaran/raytime/woodhouse"
)

const (
	deg        = math.Pi / 180
	testDDelta = 5 * deg
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

var (
	fixtureOnce sync.Once
	fixtureMesh *mesh.Mesh
	fixture     *catalog.Catalog
	fixtureErr  error
)

// coarseMesh returns a 50 km PREM mesh.
func coarseMesh(t *testing.T) *mesh.Mesh {
	t.Helper()
	m, err := mesh.New(structure.PREM(), mesh.WithInterval(50))
	require.NoError(t, err)
	return m
}

// testCatalog builds one shared PREM catalog for the package.
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	fixtureOnce.Do(func() {
		fixtureMesh, fixtureErr = mesh.New(structure.PREM(), mesh.WithInterval(50))
		if fixtureErr != nil {
			return
		}
		fixture, fixtureErr = catalog.Build(context.Background(), woodhouse.New(fixtureMesh.Structure()), fixtureMesh,
			testDDelta, catalog.WithDeltaP(20), catalog.WithLogger(quiet))
	})
	require.NoError(t, fixtureErr)
	return fixture
}

// TestBuild_Ordered verifies that raypaths are strictly ascending in p,
// start at vertical incidence and include the grazing raypaths.
func TestBuild_Ordered(t *testing.T) {
	c := testCatalog(t)
	rps := c.Raypaths()
	require.Greater(t, len(rps), 10)
	assert.Equal(t, 0.0, rps[0].RayParameter())
	for i := 1; i < len(rps); i++ {
		require.Less(t, rps[i-1].RayParameter(), rps[i].RayParameter(), "index %d", i)
	}
	for _, g := range []*raypath.Raypath{c.Pdiff(), c.SVdiff(), c.SHdiff(), c.KLimit()} {
		require.NotNil(t, g)
		found := false
		for _, rp := range rps {
			found = found || rp.RayParameter() == g.RayParameter()
		}
		assert.True(t, found, "grazing p=%g missing", g.RayParameter())
	}
	assert.Less(t, c.KLimit().RayParameter(), c.Pdiff().RayParameter())
	assert.Less(t, c.Pdiff().RayParameter(), c.SHdiff().RayParameter())
}

// assertRefined checks that no phase jumps by more than dDelta between
// neighbours unless the pair lacks the phase or is already at the minimum
// step.
func assertRefined(t *testing.T, c *catalog.Catalog, dDelta float64, phases ...phase.Phase) {
	t.Helper()
	rps := c.Raypaths()
	R := c.Structure().EarthRadius()
	for _, ph := range phases {
		for i := 0; i+1 < len(rps); i++ {
			a, b := rps[i], rps[i+1]
			if b.RayParameter()-a.RayParameter() < catalog.DefaultMinimumDeltaP {
				continue
			}
			da, db := a.Delta(ph, R), b.Delta(ph, R)
			if math.IsNaN(da) || math.IsNaN(db) {
				continue
			}
			assert.LessOrEqual(t, math.Abs(da-db), dDelta, "%s between p=%g and p=%g", ph, a.RayParameter(), b.RayParameter())
		}
	}
}

// TestBuild_Refined verifies the refinement on the shared coarse catalog.
func TestBuild_Refined(t *testing.T) {
	assertRefined(t, testCatalog(t), testDDelta, catalog.DefaultReferencePhases()...)
}

// TestBuild_RefinedDefaultMesh verifies the refinement on the default 1 km
// mesh at the default resolution.
func TestBuild_RefinedDefaultMesh(t *testing.T) {
	if testing.Short() {
		t.Skip("builds a full-resolution catalog")
	}
	m, err := mesh.New(structure.PREM())
	require.NoError(t, err)
	phases := []phase.Phase{phase.P, phase.S}
	c, err := catalog.Build(context.Background(), woodhouse.New(m.Structure()), m, catalog.DefaultDDelta,
		catalog.WithReferencePhases(phases...), catalog.WithLogger(quiet))
	require.NoError(t, err)
	assertRefined(t, c, catalog.DefaultDDelta, phases...)
}

// TestBuild_InvalidInput verifies resolution and structure checks.
func TestBuild_InvalidInput(t *testing.T) {
	m := coarseMesh(t)
	k := woodhouse.New(m.Structure())
	for _, d := range []float64{0, -1, math.NaN(), math.Inf(1), 4} {
		_, err := catalog.Build(context.Background(), k, m, d, catalog.WithLogger(quiet))
		assert.ErrorIs(t, err, catalog.ErrInvalidInput, "ddelta %g", d)
	}
	_, err := catalog.Build(context.Background(), woodhouse.New(structure.IsotropicPREM()), m, testDDelta, catalog.WithLogger(quiet))
	assert.ErrorIs(t, err, raypath.ErrStructureMismatch)
}

// TestBuild_Cancelled verifies that a cancelled context aborts the build.
func TestBuild_Cancelled(t *testing.T) {
	m := coarseMesh(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := catalog.Build(ctx, woodhouse.New(m.Structure()), m, testDDelta, catalog.WithLogger(quiet))
	assert.ErrorIs(t, err, context.Canceled)
}

// TestOptions_Panics verifies that option constructors reject nonsense.
func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { catalog.WithLogger(nil) })
	assert.Panics(t, func() { catalog.WithWorkers(0) })
	assert.Panics(t, func() { catalog.WithDeltaP(0) })
	assert.Panics(t, func() { catalog.WithDeltaP(math.Inf(1)) })
	assert.Panics(t, func() { catalog.WithMinimumDeltaP(-1) })
	assert.Panics(t, func() { catalog.WithInterpolationDegree(0) })
	assert.Panics(t, func() { catalog.WithInterpolationDegree(3) })
	assert.Panics(t, func() { catalog.WithReferencePhases() })
	assert.NotPanics(t, func() { catalog.WithWorkers(2) })
}
