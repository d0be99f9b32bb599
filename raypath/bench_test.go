package raypath_test

import (
	"testing"

	"github.com/katalvlaran/raytime/mesh"
	"github.com/katalvlaran/raytime/phase"
	"github.com/katalvlaran/raytime/raypath"
	"github.com/katalvlaran/raytime/structure"
	"github.com/katalvlaran/raytime/woodhouse"
)

// benchmarkCompute integrates a fresh raypath of ray parameter p on a PREM
// mesh with the given interval, sharing one kernel cache across runs.
func benchmarkCompute(b *testing.B, p, interval float64) {
	m, err := mesh.New(structure.PREM(), mesh.WithInterval(interval))
	if err != nil {
		b.Fatalf("mesh.New failed: %v", err)
	}
	k := woodhouse.New(m.Structure(), woodhouse.WithCache(woodhouse.NewCache()))

	b.ResetTimer() // ignore setup time
	for i := 0; i < b.N; i++ {
		rp, err := raypath.New(p, k, m)
		if err != nil {
			b.Fatalf("New failed: %v", err)
		}
		rp.Compute()
	}
}

// BenchmarkCompute_Mantle10km benchmarks a mantle-turning ray on a 10 km mesh.
func BenchmarkCompute_Mantle10km(b *testing.B) { benchmarkCompute(b, 500, 10) }

// BenchmarkCompute_Vertical10km benchmarks a ray reaching the centre.
func BenchmarkCompute_Vertical10km(b *testing.B) { benchmarkCompute(b, 0, 10) }

// BenchmarkCompute_Mantle1km benchmarks the default mesh resolution.
func BenchmarkCompute_Mantle1km(b *testing.B) { benchmarkCompute(b, 500, 1) }

// BenchmarkDelta_Memoized benchmarks repeated evaluation of one phase.
func BenchmarkDelta_Memoized(b *testing.B) {
	m := mesh.Simple(structure.PREM())
	rp, err := raypath.New(300, woodhouse.New(m.Structure()), m)
	if err != nil {
		b.Fatalf("New failed: %v", err)
	}
	rp.Compute()
	R := m.Structure().EarthRadius()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = rp.Delta(phase.ScS, R)
	}
}
