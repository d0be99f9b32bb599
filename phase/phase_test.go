package phase_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/raytime/phase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParse_Idempotent verifies that parsing twice yields equal parts.
func TestParse_Idempotent(t *testing.T) {
	for _, name := range []string{"P", "PcP", "SKKS", "PKiKP", "P^410P", "Pdiff10", "sScS"} {
		a, err := phase.Parse(name)
		require.NoError(t, err, name)
		b, err := phase.Parse(name)
		require.NoError(t, err, name)
		assert.True(t, a.Equal(b), name)
		assert.Equal(t, a.Parts(), b.Parts(), name)
	}
}

// TestParse_RepetitionAlias verifies that S(2K)S and SKKS are the same phase.
func TestParse_RepetitionAlias(t *testing.T) {
	a, err := phase.Parse("S(2K)S")
	require.NoError(t, err)
	b, err := phase.Parse("SKKS")
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Key(), b.Key())
	assert.Equal(t, "SKKS", a.ExpandedName())
	assert.Equal(t, "S(2K)S", a.Name())
	assert.Equal(t, a.Parts(), b.Parts())
}

// TestParse_Rejects checks names that the grammar must refuse.
func TestParse_Rejects(t *testing.T) {
	for _, name := range []string{
		"", "PcS", "ScP", "PcK", "S((2K))S", "S(2K))S", "Kp", "PdiffP", "PPdiff",
		"P10.", "X", "P_P", "PKIKPdiff", "Pv", "PKPdiff", "S(0K)S", "pv410P",
	} {
		_, err := phase.Parse(name)
		assert.ErrorIs(t, err, phase.ErrInvalidPhase, "%q must be rejected", name)
		assert.False(t, phase.IsValid(name), name)
	}
}

// TestParse_Accepts checks a representative set of valid names.
func TestParse_Accepts(t *testing.T) {
	for _, name := range []string{
		"P", "S", "p", "s", "PP", "SS", "pP", "sS", "PcP", "ScS", "PKP", "PKKP", "SKS", "SKKS",
		"PKiKP", "PKIKP", "SKIKS", "SKJKS", "PKIIKP", "P^410P", "Pv410P", "P410s", "s410P",
		"Pdiff", "Sdiff", "Pdiff10.5", "S(3K)S", "ScSScS",
	} {
		_, err := phase.Parse(name)
		assert.NoError(t, err, "%q must be accepted", name)
	}
}

// TestParse_Polarity verifies P-SV detection and forcing.
func TestParse_Polarity(t *testing.T) {
	assert.False(t, phase.S.IsPSV(), "S alone is SH")
	assert.True(t, phase.SV.IsPSV())
	assert.True(t, phase.SKS.IsPSV(), "K forces P-SV")
	for name, psv := range map[string]bool{
		"ScS": false, "sS": false, "p": false, "s410P": true, "P410s": true, "PKIKP": true,
	} {
		assert.Equal(t, psv, phase.MustParse(name).IsPSV(), "only upper-case P or K selects P-SV in %q", name)
	}
	assert.False(t, phase.S.Equal(phase.SV), "polarity is part of equality")

	leg := phase.S.Parts()[1].(phase.GeneralPart)
	assert.Equal(t, phase.WaveSH, leg.Wave)
	leg = phase.SV.Parts()[1].(phase.GeneralPart)
	assert.Equal(t, phase.WaveSV, leg.Wave)
}

// TestParse_PcPParts checks the exact part sequence of a CMB reflection.
func TestParse_PcPParts(t *testing.T) {
	want := []phase.PathPart{
		phase.Emission,
		phase.GeneralPart{Wave: phase.WaveP, Downward: true, Inner: phase.CMB, Outer: phase.SeismicSource},
		phase.ReflectionC,
		phase.GeneralPart{Wave: phase.WaveP, Inner: phase.CMB, Outer: phase.EarthSurface},
	}
	assert.Equal(t, want, phase.PcP.Parts())
}

// TestParse_PKIKPParts checks that the inner-core phase crosses both
// boundaries twice.
func TestParse_PKIKPParts(t *testing.T) {
	parts := phase.PKIKP.Parts()
	require.Len(t, parts, 12)
	assert.Equal(t, phase.Emission, parts[0])
	assert.Equal(t, phase.CMBPenetration, parts[2])
	assert.Equal(t, phase.ICBPenetration, parts[4])
	assert.Equal(t, phase.Bounce, parts[6])
	assert.Equal(t, phase.ICBPenetration, parts[8])
	assert.Equal(t, phase.CMBPenetration, parts[10])

	var waves []phase.WaveType
	for _, p := range parts {
		if g, ok := p.(phase.GeneralPart); ok {
			waves = append(waves, g.Wave)
		}
	}
	assert.Equal(t, []phase.WaveType{phase.WaveP, phase.WaveK, phase.WaveI, phase.WaveI, phase.WaveK, phase.WaveP}, waves)
}

// TestParse_DepthInteractions checks bottom-side reflections and
// conversions at explicit depths.
func TestParse_DepthInteractions(t *testing.T) {
	ph, err := phase.Parse("P^410P")
	require.NoError(t, err)
	parts := ph.Parts()
	require.Len(t, parts, 8)
	assert.Equal(t, phase.Arbitrary{Interaction: phase.BottomsideReflection, Depth: 410}, parts[4])
	up := parts[3].(phase.GeneralPart)
	assert.Equal(t, phase.Other, up.Outer)
	assert.Equal(t, 410.0, up.OuterDepth)
	down := parts[5].(phase.GeneralPart)
	assert.True(t, down.Downward)
	assert.Equal(t, phase.Other, down.Outer)
	assert.Equal(t, 410.0, down.OuterDepth)

	ph, err = phase.Parse("P410s")
	require.NoError(t, err)
	parts = ph.Parts()
	last := parts[len(parts)-1].(phase.GeneralPart)
	assert.Equal(t, phase.WaveSV, last.Wave)
	assert.Equal(t, phase.Other, last.Inner)
	assert.Equal(t, 410.0, last.InnerDepth)
	assert.Equal(t, phase.EarthSurface, last.Outer)
}

// TestParse_Diffraction checks the angle and the display name.
func TestParse_Diffraction(t *testing.T) {
	ph, err := phase.Parse("Pdiff10")
	require.NoError(t, err)
	assert.True(t, ph.IsDiffracted())
	assert.Equal(t, "Pdiff", ph.DisplayName())

	d, ok := ph.Diffraction()
	require.True(t, ok)
	assert.InDelta(t, 10*math.Pi/180, d.Angle, 1e-15)
	assert.Equal(t, phase.CMB, d.Boundary)

	parts := ph.Parts()
	_, isLeg := parts[len(parts)-1].(phase.GeneralPart)
	assert.True(t, isLeg, "only the final up-going leg follows a diffraction")

	_, ok = phase.P.Diffraction()
	assert.False(t, ok)
	assert.False(t, phase.SVdiff.Equal(phase.Sdiff))
}
