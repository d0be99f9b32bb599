package structure_test

import (
	"math"
	"strings"
	"testing"

	"github.com/katalvlaran/raytime/structure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPREM_Boundaries verifies the reference radii and the boundary list.
func TestPREM_Boundaries(t *testing.T) {
	prem := structure.PREM()
	assert.Equal(t, 6371.0, prem.EarthRadius())
	assert.Equal(t, 3480.0, prem.CoreMantleBoundary())
	assert.Equal(t, 1221.5, prem.InnerCoreBoundary())

	b := prem.Boundaries()
	require.Len(t, b, 13)
	assert.Equal(t, 0.0, b[0])
	assert.Equal(t, 6371.0, b[len(b)-1])
	assert.True(t, sortedAscending(b), "boundaries must ascend")
}

// TestPREM_Values checks a few textbook PREM values.
func TestPREM_Values(t *testing.T) {
	prem := structure.IsotropicPREM()

	assert.InDelta(t, 13.0885, prem.Rho(0), 1e-9, "central density")

	// Vs just above the CMB is 7.2647 km/s.
	r := 3480.0 + 1e-3
	vs := math.Sqrt(prem.L(r) / prem.Rho(r))
	assert.InDelta(t, 7.2647, vs, 1e-3)

	// No shear strength in the outer core.
	assert.Equal(t, 0.0, prem.L(2000))
	assert.Equal(t, 0.0, prem.N(2000))

	// Isotropic layers satisfy A = C and F = A - 2L.
	x := 6000 / 6371.0
	rho := 7.1089 - 3.8045*x
	vp := 20.3926 - 12.2569*x
	assert.InDelta(t, rho*vp*vp, prem.A(6000), 1e-9)
	assert.InDelta(t, prem.A(6000), prem.C(6000), 1e-12)
	assert.InDelta(t, prem.A(6000)-2*prem.L(6000), prem.F(6000), 1e-9)
}

// TestPREM_Anisotropy verifies that only the layers between 220 km depth and
// the Moho carry transverse isotropy.
func TestPREM_Anisotropy(t *testing.T) {
	prem := structure.PREM()
	assert.NotEqual(t, prem.A(6300), prem.C(6300), "TI between 220 km and Moho")
	assert.NotEqual(t, prem.L(6300), prem.N(6300))
	assert.Equal(t, prem.A(5000), prem.C(5000), "lower mantle is isotropic")

	iso := structure.IsotropicPREM()
	assert.Equal(t, iso.A(6300), iso.C(6300))
}

// TestIsDiscontinuity probes real and fake boundaries of PREM.
func TestIsDiscontinuity(t *testing.T) {
	prem := structure.PREM()
	for _, r := range []float64{1221.5, 3480, 5701, 5971, 6151} {
		assert.True(t, structure.IsDiscontinuity(prem, r), "r=%g should be a discontinuity", r)
	}
	for _, r := range []float64{6291, 5000, 2000} {
		assert.False(t, structure.IsDiscontinuity(prem, r), "r=%g should be continuous", r)
	}
	assert.Equal(t, 3480.0, structure.SnapToDiscontinuity(prem, 3480.3))
	assert.Equal(t, 3000.0, structure.SnapToDiscontinuity(prem, 3000))
}

// TestEqual_Structural verifies that equality depends on content only.
func TestEqual_Structural(t *testing.T) {
	a := structure.PREM()
	b, err := structure.NewPolynomialStructure("other name", 6371, 1221.5, 3480, a.Layers())
	require.NoError(t, err)
	assert.True(t, structure.Equal(a, b))
	assert.False(t, structure.Equal(a, structure.IsotropicPREM()))
}

// TestPartitionOf checks shell classification including boundary radii.
func TestPartitionOf(t *testing.T) {
	prem := structure.PREM()
	assert.Equal(t, structure.InnerCore, structure.PartitionOf(prem, 100))
	assert.Equal(t, structure.OuterCore, structure.PartitionOf(prem, 1221.5))
	assert.Equal(t, structure.Mantle, structure.PartitionOf(prem, 3480))
	bottom, top := structure.Bounds(prem, structure.OuterCore)
	assert.Equal(t, 1221.5, bottom)
	assert.Equal(t, 3480.0, top)
}

// TestTurningRadius covers the three turning states.
func TestTurningRadius(t *testing.T) {
	prem := structure.IsotropicPREM()

	p := structure.HorizontalSlowness(prem, structure.ModulusA, 5000)
	rt, st := structure.PTurningRadius(prem, p)
	require.Equal(t, structure.Turns, st)
	assert.InDelta(t, 5000, rt, 1e-6)

	_, st = structure.PTurningRadius(prem, 0)
	assert.Equal(t, structure.Penetrates, st)

	rt, st = structure.PTurningRadius(prem, 1e4)
	assert.Equal(t, structure.Evanescent, st)
	assert.True(t, math.IsNaN(rt))

	rt, st = structure.ITurningRadius(prem, 0)
	assert.Equal(t, structure.Turns, st)
	assert.Equal(t, 0.0, rt)

	rt, st = structure.ITurningRadius(prem, 1)
	assert.Equal(t, structure.Turns, st)
	assert.Greater(t, rt, 0.0)
	assert.Less(t, rt, 20.0)
}

// TestNewPolynomialStructure_Invalid verifies geometry validation.
func TestNewPolynomialStructure_Invalid(t *testing.T) {
	layer := structure.PolynomialLayer{Rho: []float64{1}, Vpv: []float64{1}, Vph: []float64{1}, Vsv: []float64{1}, Vsh: []float64{1}}

	_, err := structure.NewPolynomialStructure("empty", 6371, 1000, 3000, nil)
	assert.ErrorIs(t, err, structure.ErrInvalidModel)

	l1, l2 := layer, layer
	l1.Bottom, l1.Top = 0, 1000
	l2.Bottom, l2.Top = 1100, 6371
	_, err = structure.NewPolynomialStructure("gap", 6371, 1000, 3000, []structure.PolynomialLayer{l1, l2})
	assert.ErrorIs(t, err, structure.ErrInvalidModel, "gap between layers")

	_, err = structure.Named("nope")
	assert.ErrorIs(t, err, structure.ErrUnknownModel)

	_, err = structure.Named("ak135")
	assert.ErrorIs(t, err, structure.ErrUnknownModel)
	assert.Contains(t, err.Error(), "load the model from a file")
}

const toyTOML = `
name = "toy"
kind = "polynomial"
radius = 6000.0
icb = 1000.0
cmb = 3000.0

[[layers]]
bottom = 0.0
top = 1000.0
rho = [12.0]
vp = [11.0]
vs = [3.5]

[[layers]]
bottom = 1000.0
top = 3000.0
rho = [10.0]
vp = [9.0]
vs = [0.0]

[[layers]]
bottom = 3000.0
top = 6000.0
rho = [5.0, -2.0]
vp = [14.0, -6.0]
vs = [7.5, -3.0]
`

const toyYAML = `
name: toy-table
kind: tabulated
icb: 1000
cmb: 3000
rows:
  - {radius: 0, rho: 12, vpv: 11, vph: 11, vsv: 3.5, vsh: 3.5}
  - {radius: 1000, rho: 12, vpv: 11, vph: 11, vsv: 3.5, vsh: 3.5}
  - {radius: 1000, rho: 10, vpv: 9, vph: 9, vsv: 0, vsh: 0}
  - {radius: 3000, rho: 10, vpv: 9, vph: 9, vsv: 0, vsh: 0}
  - {radius: 3000, rho: 5, vpv: 13, vph: 13, vsv: 7, vsh: 7}
  - {radius: 6000, rho: 3, vpv: 8, vph: 8, vsv: 4.5, vsh: 4.5}
`

// TestLoad_TOML decodes a polynomial model.
func TestLoad_TOML(t *testing.T) {
	s, err := structure.Load(strings.NewReader(toyTOML), structure.FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, 6000.0, s.EarthRadius())
	assert.InDelta(t, 5.0-2.0*0.75, s.Rho(4500), 1e-12)
	assert.True(t, structure.IsDiscontinuity(s, 3000))
}

// TestLoad_YAML decodes a tabulated model and checks interpolation.
func TestLoad_YAML(t *testing.T) {
	s, err := structure.Load(strings.NewReader(toyYAML), structure.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, 6000.0, s.EarthRadius())
	assert.InDelta(t, 4.0, s.Rho(4500), 1e-12, "midpoint of the mantle table")
	assert.InDelta(t, 10.0*81, s.A(2000), 1e-9)
	assert.Equal(t, 0.0, s.L(2000))
	assert.True(t, structure.IsDiscontinuity(s, 1000))
	assert.False(t, structure.IsDiscontinuity(s, 4500))
}

// TestFormatOf infers formats from extensions.
func TestFormatOf(t *testing.T) {
	f, err := structure.FormatOf("model.TOML")
	require.NoError(t, err)
	assert.Equal(t, structure.FormatTOML, f)
	f, err = structure.FormatOf("model.yml")
	require.NoError(t, err)
	assert.Equal(t, structure.FormatYAML, f)
	_, err = structure.FormatOf("model.json")
	assert.ErrorIs(t, err, structure.ErrUnknownFormat)
}

func sortedAscending(v []float64) bool {
	for i := 1; i < len(v); i++ {
		if v[i] <= v[i-1] {
			return false
		}
	}
	return true
}
