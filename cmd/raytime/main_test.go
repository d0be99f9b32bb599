package main

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/raytime/phase"
)

// run executes the root command with a coarse mesh and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("RAYTIME_MESH_INNER_CORE", "50")
	t.Setenv("RAYTIME_MESH_OUTER_CORE", "50")
	t.Setenv("RAYTIME_MESH_MANTLE", "50")
	t.Setenv("RAYTIME_CATALOG_DELTA_P", "40")
	t.Setenv("RAYTIME_LOG_LEVEL", "error")

	var out, errOut bytes.Buffer
	root := newRootCmd(viper.New())
	root.SetOut(&out)
	root.SetErr(&errOut)
	if !hasFlag(args, "--cache-dir") {
		args = append(args, "--cache-dir", t.TempDir())
	}
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

// TestPhaseCmd verifies that legs are printed and bad names fail.
func TestPhaseCmd(t *testing.T) {
	out, err := run(t, "phase", "PcP", "SKS")
	require.NoError(t, err)
	assert.Contains(t, out, "PcP (P-SV)")
	assert.Contains(t, out, "SKS (P-SV)")

	out, err = run(t, "phase", "--psv", "ScS")
	require.NoError(t, err)
	assert.Contains(t, out, "ScS (P-SV)")

	_, err = run(t, "phase", "PXP")
	assert.ErrorIs(t, err, phase.ErrInvalidPhase)
}

// TestPathCmd verifies a single ray parameter evaluation.
func TestPathCmd(t *testing.T) {
	out, err := run(t, "path", "--phase", "P,PKIKP", "--rayp", "8", "--route")
	require.NoError(t, err)
	assert.Contains(t, out, "PHASE")
	assert.Contains(t, out, "# P\n")
	assert.NotContains(t, out, "# PKIKP")

	_, err = run(t, "path", "--rayp", "8", "--depth", "-5")
	assert.Error(t, err)
}

// TestTimeCmd verifies a catalog-backed search with a memory store.
func TestTimeCmd(t *testing.T) {
	out, err := run(t, "time", "--store", "memory", "--ddelta", "10", "--phase", "P", "--deg", "60")
	require.NoError(t, err)
	assert.Contains(t, out, "60.000")

	_, err = run(t, "time", "--store", "memory", "--phase", "P")
	assert.Error(t, err)
}

// TestCatalogCmd verifies build then list on a directory store.
func TestCatalogCmd(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "catalog", "build", "--ddelta", "20", "--cache-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "raypaths")

	out, err = run(t, "catalog", "list", "--cache-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "raypath-")
	assert.Contains(t, out, "PREM")
}

// TestRoot_BadConfig verifies that validation errors surface.
func TestRoot_BadConfig(t *testing.T) {
	_, err := run(t, "--store", "s3", "phase", "P")
	assert.Error(t, err)
}
