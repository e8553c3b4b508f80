package field

import "github.com/go-gl/mathgl/mgl32"

// GraphBuilder finds the proximity edges of the active particles.
//
// Build resets connection counts, then considers unordered pairs (i, j),
// i < j, in ascending (i, j) order. A pair is skipped when connections are
// limited and either endpoint already has MaxConnections edges. A pair
// closer than MinDistance becomes an edge and bumps both counts. Edges are
// appended to dst[:0] so callers can reuse the backing array.
type GraphBuilder interface {
	Name() string
	Build(s *Store, c ControlState, dst []Edge) []Edge
}

// BruteForce is the reference O(n²) builder.
type BruteForce struct{}

func NewBruteForce() *BruteForce { return &BruteForce{} }

func (b *BruteForce) Name() string { return "brute" }

func (b *BruteForce) Build(s *Store, c ControlState, dst []Edge) []Edge {
	dst = dst[:0]
	s.ResetConnections()
	ps := s.ActiveParticles()
	limit := c.LimitConnections
	maxConn := c.MaxConnections

	for i := 0; i < len(ps); i++ {
		pi := &ps[i]
		for j := i + 1; j < len(ps); j++ {
			if limit && pi.Connections >= maxConn {
				break
			}
			pj := &ps[j]
			if limit && pj.Connections >= maxConn {
				continue
			}
			d := distance(pi.Position, pj.Position)
			if d < c.MinDistance {
				pi.Connections++
				pj.Connections++
				dst = append(dst, Edge{A: uint32(i), B: uint32(j), Alpha: alpha(d, c.MinDistance)})
			}
		}
	}
	return dst
}

// distance is shared by every builder so they agree bit for bit.
func distance(a, b mgl32.Vec3) float32 {
	return a.Sub(b).Len()
}

func alpha(d, minDistance float32) float32 {
	return 1 - d/minDistance
}
