package analysis

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/plexus/internal/field"
)

func TestPowerSpectrumLength(t *testing.T) {
	tests := []struct {
		n        int
		expected int
	}{
		{0, 0},
		{1, 1},
		{7, 4},
		{64, 33},
		{100, 51},
	}

	for _, tt := range tests {
		ps := PowerSpectrum(make([]float64, tt.n))
		if len(ps) != tt.expected {
			t.Errorf("n=%d: expected %d bins, got %d", tt.n, tt.expected, len(ps))
		}
	}
}

func TestDominantFrequency(t *testing.T) {
	const rate = 60.0
	const hz = 7.5
	data := make([]float64, 240)
	for i := range data {
		data[i] = 100 + 20*math.Sin(2*math.Pi*hz*float64(i)/rate)
	}

	freq, mag := DominantFrequency(data, rate)
	if math.Abs(freq-hz) > rate/float64(len(data)) {
		t.Errorf("expected ~%f Hz, got %f", hz, freq)
	}
	if mag <= 0 {
		t.Errorf("expected positive magnitude, got %f", mag)
	}
}

func TestDominantFrequencyFlat(t *testing.T) {
	data := []float64{42, 42, 42, 42, 42, 42, 42, 42}
	freq, mag := DominantFrequency(data, 60)
	if freq != 0 || mag != 0 {
		t.Errorf("expected no frequency for a flat series, got %f (%f)", freq, mag)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if s.Mean != 5 {
		t.Errorf("expected mean 5, got %f", s.Mean)
	}
	if s.StdDev != 2 {
		t.Errorf("expected std dev 2, got %f", s.StdDev)
	}
	if s.Min != 2 || s.Max != 9 {
		t.Errorf("expected range [2, 9], got [%f, %f]", s.Min, s.Max)
	}

	if (Summarize(nil) != Stats{}) {
		t.Error("expected zero stats for empty series")
	}
}

func TestDegreeHistogram(t *testing.T) {
	ps := []field.Particle{
		{Position: mgl32.Vec3{0, 0, 0}},
		{Position: mgl32.Vec3{1, 0, 0}},
		{Position: mgl32.Vec3{2, 0, 0}},
		{Position: mgl32.Vec3{200, 200, 200}},
	}
	s := field.NewStoreFrom(ps, 250)
	c := field.DefaultControlState()
	c.LimitConnections = false
	field.NewBruteForce().Build(s, c, nil)

	h := DegreeHistogram(s)
	expected := []int{1, 0, 3}
	if len(h) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, h)
	}
	for d := range expected {
		if h[d] != expected[d] {
			t.Errorf("degree %d: expected %d, got %d", d, expected[d], h[d])
		}
	}
}

func TestDegreeHistogramEmpty(t *testing.T) {
	s := field.NewStoreFrom(nil, 250)
	h := DegreeHistogram(s)
	if len(h) != 1 || h[0] != 0 {
		t.Errorf("expected [0], got %v", h)
	}
}
