package metrics

import "github.com/san-kum/plexus/internal/field"

// Escapes averages how many active particles sit outside the box per frame.
// Reflection flips velocity without clamping, so a particle can overshoot
// by up to one step before it turns back.
type Escapes struct {
	name    string
	outside int
	samples int
}

func NewEscapes() *Escapes {
	return &Escapes{name: "escapes"}
}

func (e *Escapes) Name() string { return e.name }

func (e *Escapes) Observe(f *field.Frame, s *field.Store) {
	h := s.HalfExtent()
	for _, p := range s.ActiveParticles() {
		for _, c := range p.Position {
			if c < -h || c > h {
				e.outside++
				break
			}
		}
	}
	e.samples++
}

func (e *Escapes) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return float64(e.outside) / float64(e.samples)
}

func (e *Escapes) Reset() {
	e.outside = 0
	e.samples = 0
}
