package analysis

import "github.com/san-kum/plexus/internal/field"

// DegreeHistogram counts active particles by connection count: h[d] is how
// many particles have exactly d edges after the last build.
func DegreeHistogram(s *field.Store) []int {
	var top uint32
	ps := s.ActiveParticles()
	for _, p := range ps {
		top = max(top, p.Connections)
	}
	h := make([]int, top+1)
	for _, p := range ps {
		h[p.Connections]++
	}
	return h
}
