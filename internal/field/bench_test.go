package field

import "testing"

func benchmarkBuilder(b *testing.B, builder GraphBuilder, n int) {
	s := randomStore(n, DefaultHalfExtent, 1)
	c := DefaultControlState()
	c.ParticleCount = uint32(n)
	var dst []Edge
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dst = builder.Build(s, c, dst)
	}
}

func BenchmarkBruteForce500(b *testing.B)  { benchmarkBuilder(b, NewBruteForce(), 500) }
func BenchmarkBruteForce2000(b *testing.B) { benchmarkBuilder(b, NewBruteForce(), 2000) }
func BenchmarkGrid500(b *testing.B)        { benchmarkBuilder(b, NewGrid(), 500) }
func BenchmarkGrid2000(b *testing.B)       { benchmarkBuilder(b, NewGrid(), 2000) }

func BenchmarkAdvanceFrame(b *testing.B) {
	sim, err := New(DefaultOptions())
	if err != nil {
		b.Fatal(err)
	}
	c := DefaultControlState()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sim.AdvanceFrame(c)
	}
}
