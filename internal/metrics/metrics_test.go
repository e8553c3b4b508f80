package metrics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/plexus/internal/field"
)

func stillStore(pos ...mgl32.Vec3) *field.Store {
	ps := make([]field.Particle, len(pos))
	for i, p := range pos {
		ps[i] = field.Particle{Position: p}
	}
	return field.NewStoreFrom(ps, 250)
}

func TestMeanEdges(t *testing.T) {
	m := NewMeanEdges()
	s := stillStore()

	m.Observe(&field.Frame{Edges: make([]field.Edge, 4)}, s)
	m.Observe(&field.Frame{Edges: make([]field.Edge, 2)}, s)

	if m.Value() != 3 {
		t.Errorf("expected mean 3, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestMeanAlpha(t *testing.T) {
	m := NewMeanAlpha()
	s := stillStore()

	if m.Value() != 0 {
		t.Errorf("expected 0 with no edges, got %f", m.Value())
	}

	m.Observe(&field.Frame{Edges: []field.Edge{{Alpha: 0.5}, {Alpha: 1}}}, s)
	m.Observe(&field.Frame{}, s)
	m.Observe(&field.Frame{Edges: []field.Edge{{Alpha: 0.25}, {Alpha: 0.25}}}, s)

	if math.Abs(m.Value()-0.5) > 1e-9 {
		t.Errorf("expected mean alpha 0.5, got %f", m.Value())
	}
}

func TestMaxDegree(t *testing.T) {
	s := stillStore(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{2, 0, 0}, mgl32.Vec3{3, 0, 0})
	c := field.DefaultControlState()
	c.LimitConnections = false
	edges := field.NewBruteForce().Build(s, c, nil)

	m := NewMaxDegree()
	m.Observe(&field.Frame{Edges: edges}, s)

	if m.Value() != 3 {
		t.Errorf("expected max degree 3, got %f", m.Value())
	}

	c.LimitConnections = true
	c.MaxConnections = 1
	field.NewBruteForce().Build(s, c, nil)
	m.Observe(&field.Frame{}, s)
	if m.Value() != 3 {
		t.Errorf("max degree should keep its peak, got %f", m.Value())
	}

	m.Reset()
	m.Observe(&field.Frame{}, s)
	if m.Value() != 1 {
		t.Errorf("expected max degree 1 after reset, got %f", m.Value())
	}
}

func TestEscapes(t *testing.T) {
	tests := []struct {
		name     string
		pos      []mgl32.Vec3
		expected float64
	}{
		{"inside", []mgl32.Vec3{{0, 0, 0}, {250, -250, 250}}, 0},
		{"one out", []mgl32.Vec3{{0, 0, 0}, {250.5, 0, 0}}, 1},
		{"corner counts once", []mgl32.Vec3{{-251, 251, -251}}, 1},
		{"all out", []mgl32.Vec3{{0, 0, 300}, {0, -300, 0}}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewEscapes()
			m.Observe(&field.Frame{}, stillStore(tt.pos...))
			if m.Value() != tt.expected {
				t.Errorf("expected %f escapes, got %f", tt.expected, m.Value())
			}
		})
	}
}

func TestNew(t *testing.T) {
	for _, name := range Names() {
		m, err := New(name)
		if err != nil {
			t.Fatalf("New(%q) failed: %v", name, err)
		}
		if m.Name() != name {
			t.Errorf("expected metric %q, got %q", name, m.Name())
		}
	}

	if _, err := New("energy"); err == nil {
		t.Error("expected error for unknown metric")
	}
}

func TestMetricsInSimulator(t *testing.T) {
	opts := field.DefaultOptions()
	opts.MaxParticles = 200
	sim, err := field.New(opts)
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range All() {
		sim.AddMetric(m)
	}

	c := field.DefaultControlState()
	c.ParticleCount = 200
	result, err := sim.Run(t.Context(), 50, field.Fixed(c))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Metrics) != len(Names()) {
		t.Errorf("expected %d metrics, got %d", len(Names()), len(result.Metrics))
	}
	if result.Metrics["max_degree"] > 5 {
		t.Errorf("max degree %f exceeds the connection cap", result.Metrics["max_degree"])
	}
	if a := result.Metrics["mean_alpha"]; a < 0 || a > 1 {
		t.Errorf("mean alpha %f out of range", a)
	}
}
