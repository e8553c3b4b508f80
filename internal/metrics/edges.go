package metrics

import "github.com/san-kum/plexus/internal/field"

// MeanEdges averages the number of drawn edges per frame.
type MeanEdges struct {
	name    string
	total   float64
	samples int
}

func NewMeanEdges() *MeanEdges {
	return &MeanEdges{name: "mean_edges"}
}

func (m *MeanEdges) Name() string { return m.name }

func (m *MeanEdges) Observe(f *field.Frame, s *field.Store) {
	m.total += float64(len(f.Edges))
	m.samples++
}

func (m *MeanEdges) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanEdges) Reset() {
	m.total = 0
	m.samples = 0
}

// MeanAlpha averages edge opacity over every edge of every frame. Close
// clusters push it toward 1, a field near the distance threshold toward 0.
type MeanAlpha struct {
	name  string
	sum   float64
	edges int
}

func NewMeanAlpha() *MeanAlpha {
	return &MeanAlpha{name: "mean_alpha"}
}

func (m *MeanAlpha) Name() string { return m.name }

func (m *MeanAlpha) Observe(f *field.Frame, s *field.Store) {
	for _, e := range f.Edges {
		m.sum += float64(e.Alpha)
	}
	m.edges += len(f.Edges)
}

func (m *MeanAlpha) Value() float64 {
	if m.edges == 0 {
		return 0
	}
	return m.sum / float64(m.edges)
}

func (m *MeanAlpha) Reset() {
	m.sum = 0
	m.edges = 0
}
