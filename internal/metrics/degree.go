package metrics

import "github.com/san-kum/plexus/internal/field"

// MaxDegree is the largest connection count any active particle reached.
type MaxDegree struct {
	name string
	peak uint32
}

func NewMaxDegree() *MaxDegree {
	return &MaxDegree{name: "max_degree"}
}

func (m *MaxDegree) Name() string { return m.name }

func (m *MaxDegree) Observe(f *field.Frame, s *field.Store) {
	for _, p := range s.ActiveParticles() {
		m.peak = max(m.peak, p.Connections)
	}
}

func (m *MaxDegree) Value() float64 { return float64(m.peak) }

func (m *MaxDegree) Reset() { m.peak = 0 }
