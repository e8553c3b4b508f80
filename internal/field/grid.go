package field

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// maxGridCells bounds the dense cell array. Fields spread wider than this
// (relative to MinDistance) go through the brute-force path instead.
const maxGridCells = 1 << 21

// cellSlack widens cells slightly so a pair closer than MinDistance can
// never land two cells apart through float rounding.
const cellSlack = 1.001

// Grid buckets the active particles into cubic cells of side MinDistance
// and only measures pairs in neighboring cells. Candidates of each i are
// visited in ascending j, so its edges and cap decisions match BruteForce
// exactly.
type Grid struct {
	cellOf []int32
	start  []int32
	cursor []int32
	order  []int32
	cands  []int32

	fallback BruteForce
}

func NewGrid() *Grid { return &Grid{} }

func (g *Grid) Name() string { return "grid" }

func (g *Grid) Build(s *Store, c ControlState, dst []Edge) []Edge {
	dst = dst[:0]
	ps := s.ActiveParticles()
	n := len(ps)
	if n < 2 {
		s.ResetConnections()
		return dst
	}

	cell := float64(c.MinDistance) * cellSlack
	lo, dims, ok := gridDims(ps, cell)
	if !ok {
		return g.fallback.Build(s, c, dst)
	}
	s.ResetConnections()
	g.bucket(ps, lo, cell, dims)

	limit := c.LimitConnections
	maxConn := c.MaxConnections
	for i := 0; i < n; i++ {
		pi := &ps[i]
		if limit && pi.Connections >= maxConn {
			continue
		}
		g.collect(ps, i, dims, c.MinDistance)
		for _, j32 := range g.cands {
			if limit && pi.Connections >= maxConn {
				break
			}
			j := int(j32)
			pj := &ps[j]
			if limit && pj.Connections >= maxConn {
				continue
			}
			d := distance(pi.Position, pj.Position)
			pi.Connections++
			pj.Connections++
			dst = append(dst, Edge{A: uint32(i), B: uint32(j), Alpha: alpha(d, c.MinDistance)})
		}
	}
	return dst
}

func gridDims(ps []Particle, cell float64) (lo [3]float64, dims [3]int, ok bool) {
	var hi [3]float64
	for a := 0; a < 3; a++ {
		lo[a], hi[a] = math.Inf(1), math.Inf(-1)
	}
	for i := range ps {
		for a := 0; a < 3; a++ {
			v := float64(ps[i].Position[a])
			lo[a] = math.Min(lo[a], v)
			hi[a] = math.Max(hi[a], v)
		}
	}
	total := 1
	for a := 0; a < 3; a++ {
		span := (hi[a] - lo[a]) / cell
		if math.IsNaN(span) || math.IsInf(span, 0) || span >= maxGridCells {
			return lo, dims, false
		}
		dims[a] = int(span) + 1
		total *= dims[a]
		if total > maxGridCells {
			return lo, dims, false
		}
	}
	return lo, dims, true
}

func cellCoord(v, lo, cell float64, dim int) int {
	k := int((v - lo) / cell)
	if k < 0 {
		return 0
	}
	if k >= dim {
		return dim - 1
	}
	return k
}

func (g *Grid) cellIndex(p mgl32.Vec3, lo [3]float64, cell float64, dims [3]int) int {
	x := cellCoord(float64(p[0]), lo[0], cell, dims[0])
	y := cellCoord(float64(p[1]), lo[1], cell, dims[1])
	z := cellCoord(float64(p[2]), lo[2], cell, dims[2])
	return (z*dims[1]+y)*dims[0] + x
}

// bucket counting-sorts particle indices by cell. Inserting i in ascending
// order keeps every cell's slice of order ascending too.
func (g *Grid) bucket(ps []Particle, lo [3]float64, cell float64, dims [3]int) {
	n := len(ps)
	total := dims[0] * dims[1] * dims[2]
	g.cellOf = resize(g.cellOf, n)
	g.order = resize(g.order, n)
	g.start = resize(g.start, total+1)
	g.cursor = resize(g.cursor, total)
	clear(g.start)

	for i := range ps {
		k := g.cellIndex(ps[i].Position, lo, cell, dims)
		g.cellOf[i] = int32(k)
		g.start[k+1]++
	}
	for k := 1; k <= total; k++ {
		g.start[k] += g.start[k-1]
	}
	copy(g.cursor, g.start[:total])
	for i := 0; i < n; i++ {
		k := g.cellOf[i]
		g.order[g.cursor[k]] = int32(i)
		g.cursor[k]++
	}
}

// collect gathers every j > i within minDistance of i, sorted ascending.
func (g *Grid) collect(ps []Particle, i int, dims [3]int, minDistance float32) {
	g.cands = g.cands[:0]
	k := int(g.cellOf[i])
	cx := k % dims[0]
	cy := (k / dims[0]) % dims[1]
	cz := k / (dims[0] * dims[1])
	pos := ps[i].Position

	for z := max(cz-1, 0); z <= min(cz+1, dims[2]-1); z++ {
		for y := max(cy-1, 0); y <= min(cy+1, dims[1]-1); y++ {
			for x := max(cx-1, 0); x <= min(cx+1, dims[0]-1); x++ {
				nk := (z*dims[1]+y)*dims[0] + x
				for _, j := range g.order[g.start[nk]:g.start[nk+1]] {
					if int(j) <= i {
						continue
					}
					if distance(pos, ps[j].Position) < minDistance {
						g.cands = append(g.cands, j)
					}
				}
			}
		}
	}
	slices.Sort(g.cands)
}

func resize(buf []int32, n int) []int32 {
	if cap(buf) < n {
		return make([]int32, n)
	}
	return buf[:n]
}
