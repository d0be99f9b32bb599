package raypath_test

import (
	"math"
	"strconv"
	"sync"
	"testing"

	"github.com/katalvlaran/raytime/mesh"
	"github.com/katalvlaran/raytime/phase"
	"github.com/katalvlaran/raytime/raypath"
	"github.com/katalvlaran/raytime/structure"
	"github.com/katalvlaran/raytime/woodhouse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	premOnce   sync.Once
	premKernel *woodhouse.Kernel
	premMesh   *mesh.Mesh
)

// premPath returns a computed raypath on PREM with a 10 km mesh.
func premPath(t *testing.T, p float64) *raypath.Raypath {
	t.Helper()
	premOnce.Do(func() {
		s := structure.PREM()
		premKernel = woodhouse.New(s, woodhouse.WithCache(woodhouse.NewCache()))
		var err error
		premMesh, err = mesh.New(s, mesh.WithInterval(10))
		if err != nil {
			panic(err)
		}
	})
	rp, err := raypath.New(p, premKernel, premMesh)
	require.NoError(t, err)
	rp.Compute()
	return rp
}

// homogeneous returns an isotropic model with constant velocities in each
// partition, where rays are straight lines.
func homogeneous(t *testing.T) structure.Structure {
	t.Helper()
	layer := func(bottom, top, rho, vp, vs float64) structure.PolynomialLayer {
		return structure.PolynomialLayer{
			Bottom: bottom, Top: top,
			Rho: []float64{rho},
			Vpv: []float64{vp}, Vph: []float64{vp},
			Vsv: []float64{vs}, Vsh: []float64{vs},
		}
	}
	s, err := structure.NewPolynomialStructure("homogeneous", 6371, 1221.5, 3480, []structure.PolynomialLayer{
		layer(0, 1221.5, 5, 11, 3.5),
		layer(1221.5, 3480, 5, 9, 0),
		layer(3480, 6371, 4, 10, 5.5),
	})
	require.NoError(t, err)
	return s
}

// TestRaypath_StraightRays verifies the integrator against the chord
// geometry of a constant-velocity mantle.
func TestRaypath_StraightRays(t *testing.T) {
	s := homogeneous(t)
	m, err := mesh.New(s, mesh.WithInterval(5))
	require.NoError(t, err)
	k := woodhouse.New(s)
	const R, cmb, v = 6371.0, 3480.0, 10.0

	// P turning at 5000 km.
	rp, err := raypath.New(500, k, m)
	require.NoError(t, err)
	rt, state := rp.TurningRadius(phase.WaveP)
	require.Equal(t, structure.Turns, state)
	assert.InDelta(t, 5000, rt, 1e-5)

	wantDelta := 2 * math.Acos(5000/R)
	wantT := 2 * math.Sqrt(R*R-5000*5000) / v
	assert.InDelta(t, wantDelta, rp.Delta(phase.P, R), 1e-4*wantDelta)
	assert.InDelta(t, wantT, rp.T(phase.P, R), 1e-4*wantT)

	// PcP with the impact parameter inside the core.
	rp, err = raypath.New(200, k, m)
	require.NoError(t, err)
	b := 200 * v
	wantDelta = 2 * (math.Acos(b/R) - math.Acos(b/cmb))
	wantT = 2 * (math.Sqrt(R*R-b*b) - math.Sqrt(cmb*cmb-b*b)) / v
	assert.InDelta(t, wantDelta, rp.Delta(phase.PcP, R), 1e-4*wantDelta)
	assert.InDelta(t, wantT, rp.T(phase.PcP, R), 1e-4*wantT)
	assert.True(t, math.IsNaN(rp.Delta(phase.P, R)), "P penetrates into the core")
}

// TestRaypath_VerticalIncidence verifies that core reflections at p = 0
// return to the source.
func TestRaypath_VerticalIncidence(t *testing.T) {
	rp := premPath(t, 0)
	R := structure.PREMRadius

	assert.InDelta(t, 0, rp.Delta(phase.PcP, R), 1e-12)
	assert.InDelta(t, 0, rp.Delta(phase.ScS, R), 1e-12)
	assert.InDelta(t, 510, rp.T(phase.PcP, R), 10)
	assert.InDelta(t, 935, rp.T(phase.ScS, R), 15)
	assert.False(t, rp.Exists(phase.P, R), "P needs a turning point")
}

// TestRaypath_ThroughCentre verifies PKIKP at p = 0 reaches the antipode.
func TestRaypath_ThroughCentre(t *testing.T) {
	rp := premPath(t, 0)
	R := structure.PREMRadius

	assert.InDelta(t, math.Pi, rp.Delta(phase.PKIKP, R), 1e-12)
	assert.InDelta(t, 1212, rp.T(phase.PKIKP, R), 10)

	// A slightly positive p approaches the same limit continuously.
	near := premPath(t, 0.05)
	assert.InDelta(t, math.Pi, near.Delta(phase.PKIKP, R), 2e-3)
}

// TestRaypath_Diffraction verifies that the diffraction angle adds to Δ and
// p times the angle to T, and that only the grazing ray diffracts.
func TestRaypath_Diffraction(t *testing.T) {
	s := structure.PREM()
	R := s.EarthRadius()
	premPath(t, 0)
	p := structure.HorizontalSlowness(s, structure.ModulusA, s.CoreMantleBoundary()+premMesh.Eps())
	rp := premPath(t, p)

	base := rp.Delta(phase.Pdiff, R)
	require.False(t, math.IsNaN(base))
	assert.Greater(t, base, 1.5)
	assert.Less(t, base, 1.9)

	prevD, prevT := base, rp.T(phase.Pdiff, R)
	for _, deg := range []float64{5, 10, 20} {
		ph := phase.MustParse("Pdiff" + strconv.FormatFloat(deg, 'f', -1, 64))
		d, tt := rp.Delta(ph, R), rp.T(ph, R)
		assert.Greater(t, d, prevD)
		assert.Greater(t, tt, prevT)
		assert.InDelta(t, base+deg*math.Pi/180, d, 1e-12)
		prevD, prevT = d, tt
	}

	off := premPath(t, p-1)
	assert.True(t, math.IsNaN(off.Delta(phase.Pdiff, R)))
}

// TestRaypath_SmoothAcrossContinuousBoundaries verifies that Δ(p) has no
// spike when P turns just below or just above a layer boundary where the
// model is continuous.
func TestRaypath_SmoothAcrossContinuousBoundaries(t *testing.T) {
	s := structure.PREM()
	R := s.EarthRadius()
	deg := math.Pi / 180
	delta := func(p float64) float64 {
		d := premPath(t, p).Delta(phase.P, R)
		require.False(t, math.IsNaN(d), "p=%g", p)
		return d
	}
	for _, r := range []float64{3630, 5600} {
		r := r
		t.Run(strconv.FormatFloat(r, 'f', -1, 64), func(t *testing.T) {
			require.False(t, structure.IsDiscontinuity(s, r))
			p := structure.HorizontalSlowness(s, structure.ModulusA, r)
			below, above := delta(p-1e-4), delta(p+1e-4)
			far := (delta(p+0.01) + delta(p-0.01)) / 2
			assert.InDelta(t, below, above, 0.2*deg)
			assert.InDelta(t, far, below, deg)
			assert.InDelta(t, far, above, deg)
		})
	}
}

// TestRaypath_NoArrival verifies that impossible rays are NaN, not errors.
func TestRaypath_NoArrival(t *testing.T) {
	rp := premPath(t, 2500)
	R := structure.PREMRadius
	for _, ph := range []phase.Phase{phase.P, phase.S, phase.PcP, phase.PKIKP} {
		assert.False(t, rp.Exists(ph, R), ph.Name())
		assert.True(t, math.IsNaN(rp.T(ph, R)), ph.Name())
	}
	assert.Nil(t, rp.Route(phase.P, R))

	_, state := rp.TurningRadius(phase.WaveP)
	assert.Equal(t, structure.Evanescent, state)
}

// TestRaypath_SourceDepth verifies a deeper source shortens P and that a
// source below the turning point has no P.
func TestRaypath_SourceDepth(t *testing.T) {
	rp := premPath(t, 600)
	R := structure.PREMRadius

	assert.Less(t, rp.Delta(phase.P, R-100), rp.Delta(phase.P, R))
	assert.Less(t, rp.T(phase.P, R-100), rp.T(phase.P, R))

	rt, state := rp.TurningRadius(phase.WaveP)
	require.Equal(t, structure.Turns, state)
	assert.False(t, rp.Exists(phase.P, rt-10))
	assert.False(t, rp.Exists(phase.P, R+1))
}

// TestRaypath_Tau verifies τ = T − pΔ.
func TestRaypath_Tau(t *testing.T) {
	rp := premPath(t, 600)
	R := structure.PREMRadius
	assert.InDelta(t, rp.T(phase.S, R)-600*rp.Delta(phase.S, R), rp.Tau(phase.S, R), 1e-9)
}

// TestRaypath_Route verifies the route ends at the receiver.
func TestRaypath_Route(t *testing.T) {
	rp := premPath(t, 600)
	R := structure.PREMRadius

	route := rp.Route(phase.P, R)
	require.NotEmpty(t, route)
	assert.InDelta(t, 0, route[0].X, 1e-9)
	assert.InDelta(t, R, route[0].Y, 1e-9)

	last := route[len(route)-1]
	assert.InDelta(t, R, math.Hypot(last.X, last.Y), 1e-6)
	assert.InDelta(t, rp.Delta(phase.P, R), math.Atan2(last.X, last.Y), 1e-6)

	rt, _ := rp.TurningRadius(phase.WaveP)
	minR := R
	for _, pt := range route {
		minR = math.Min(minR, math.Hypot(pt.X, pt.Y))
	}
	assert.InDelta(t, rt, minR, 1e-6)
}

// TestRaypath_Concurrent verifies concurrent queries agree.
func TestRaypath_Concurrent(t *testing.T) {
	rp := premPath(t, 300)
	serial := premPath(t, 300)
	R := structure.PREMRadius
	phases := []phase.Phase{phase.P, phase.PcP, phase.PKP, phase.S, phase.ScS, phase.SKS}

	var wg sync.WaitGroup
	got := make([]float64, 4*len(phases))
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = rp.T(phases[i%len(phases)], R)
		}(i)
	}
	wg.Wait()
	for i, v := range got {
		want := serial.T(phases[i%len(phases)], R)
		if math.IsNaN(want) {
			assert.True(t, math.IsNaN(v))
			continue
		}
		assert.Equal(t, want, v)
	}
}

// TestSnapshot_Restore verifies a restored raypath answers identically.
func TestSnapshot_Restore(t *testing.T) {
	rp := premPath(t, 450)
	R := structure.PREMRadius

	back, err := raypath.Restore(rp.Snapshot(), premKernel, premMesh)
	require.NoError(t, err)
	assert.Equal(t, rp.RayParameter(), back.RayParameter())
	for _, ph := range []phase.Phase{phase.P, phase.PcP, phase.S, phase.ScS, phase.SKS, phase.PKIKP} {
		d1, d2 := rp.Delta(ph, R), back.Delta(ph, R)
		if math.IsNaN(d1) {
			assert.True(t, math.IsNaN(d2), ph.Name())
			continue
		}
		assert.Equal(t, d1, d2, ph.Name())
		assert.Equal(t, rp.T(ph, R), back.T(ph, R), ph.Name())
	}

	coarse, err := mesh.New(structure.PREM(), mesh.WithInterval(50))
	require.NoError(t, err)
	snap := rp.Snapshot()
	snap.Waves = snap.Waves[:3]
	_, err = raypath.Restore(snap, premKernel, coarse)
	assert.ErrorIs(t, err, raypath.ErrSnapshotMismatch)
}

// TestNew_Errors verifies constructor validation.
func TestNew_Errors(t *testing.T) {
	premPath(t, 0)
	_, err := raypath.New(-1, premKernel, premMesh)
	assert.ErrorIs(t, err, raypath.ErrInvalidRayParameter)
	_, err = raypath.New(math.NaN(), premKernel, premMesh)
	assert.ErrorIs(t, err, raypath.ErrInvalidRayParameter)

	_, err = raypath.New(10, woodhouse.New(structure.IsotropicPREM()), premMesh)
	assert.ErrorIs(t, err, raypath.ErrStructureMismatch)
}

// TestInterpolate verifies three-point interpolation reproduces its nodes
// and fails on a missing neighbour.
func TestInterpolate(t *testing.T) {
	R := structure.PREMRadius
	lo, mid, hi := premPath(t, 600), premPath(t, 610), premPath(t, 620)
	target := mid.Delta(phase.P, R)

	p := raypath.InterpolateRayParameter(phase.P, R, target, false, raypath.DefaultInterpolationDegree, lo, mid, hi)
	assert.InDelta(t, 610, p, 1e-6)
	tt := raypath.InterpolateTravelTime(phase.P, R, target, false, raypath.DefaultInterpolationDegree, lo, mid, hi)
	assert.InDelta(t, mid.T(phase.P, R), tt, 1e-6)

	gone := premPath(t, 2500)
	assert.True(t, math.IsNaN(raypath.InterpolateTravelTime(phase.P, R, target, false, 2, lo, mid, gone)))

	// Three points carry at most a quadratic.
	cubic := raypath.InterpolateRayParameter(phase.P, R, target, false, 3, lo, mid, hi)
	assert.InDelta(t, p, cubic, 1e-9)
}

// TestToRelativeAngle verifies folding into [0, π].
func TestToRelativeAngle(t *testing.T) {
	deg := math.Pi / 180
	cases := []struct{ in, want float64 }{
		{0, 0},
		{170 * deg, 170 * deg},
		{190 * deg, 170 * deg},
		{360 * deg, 0},
		{370 * deg, 10 * deg},
		{-10 * deg, 10 * deg},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, raypath.ToRelativeAngle(tc.in), 1e-12)
	}
}
