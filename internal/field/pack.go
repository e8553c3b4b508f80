package field

import "github.com/go-gl/mathgl/mgl32"

// LineBuffers holds line-segment geometry: two vertices per edge, xyz
// positions and rgb colors in parallel flat arrays. Only the first
// DrawRange vertices are valid; the rest is stale from earlier frames.
type LineBuffers struct {
	Positions []float32
	Colors    []float32
	DrawRange int

	capacity int
}

// NewLineBuffers sizes the buffers for maxParticles² vertices, which bounds
// the two vertices of every unordered pair.
func NewLineBuffers(maxParticles int) *LineBuffers {
	return NewLineBuffersCap(maxParticles * maxParticles)
}

// NewLineBuffersCap sizes the buffers for exactly the given vertex count.
func NewLineBuffersCap(vertices int) *LineBuffers {
	if vertices < 0 {
		vertices = 0
	}
	return &LineBuffers{
		Positions: make([]float32, vertices*3),
		Colors:    make([]float32, vertices*3),
		capacity:  vertices,
	}
}

// Capacity is the number of vertices the buffers can hold.
func (b *LineBuffers) Capacity() int { return b.capacity }

// Pack writes edges in order, both endpoints per edge, with the edge's
// alpha as r=g=b. Edge k owns vertices 2k and 2k+1, so large edge sets
// are packed in parallel. If the edges need more room than the buffers have, the
// leading edges that fit are kept and a *CapacityError is returned.
func (b *LineBuffers) Pack(s *Store, edges []Edge) error {
	fit := len(edges)
	if room := b.capacity / 2; fit > room {
		fit = room
	}
	ps := s.Particles()
	ParallelFor(fit, packChunk, func(start, end int) {
		for k, e := range edges[start:end] {
			v := 2 * (start + k)
			b.put(v, ps[e.A].Position, e.Alpha)
			b.put(v+1, ps[e.B].Position, e.Alpha)
		}
	})
	b.DrawRange = 2 * fit
	if fit < len(edges) {
		return &CapacityError{Edges: len(edges), Capacity: b.capacity / 2, Dropped: len(edges) - fit}
	}
	return nil
}

func (b *LineBuffers) put(v int, p mgl32.Vec3, a float32) {
	o := v * 3
	b.Positions[o], b.Positions[o+1], b.Positions[o+2] = p[0], p[1], p[2]
	b.Colors[o], b.Colors[o+1], b.Colors[o+2] = a, a, a
}

// Vertex returns the position and color of vertex v.
func (b *LineBuffers) Vertex(v int) (pos, col mgl32.Vec3) {
	o := v * 3
	return mgl32.Vec3{b.Positions[o], b.Positions[o+1], b.Positions[o+2]},
		mgl32.Vec3{b.Colors[o], b.Colors[o+1], b.Colors[o+2]}
}

// PointBuffers holds one vertex per particle. DrawRange is the active count.
type PointBuffers struct {
	Positions []float32
	Colors    []float32
	DrawRange int
}

func NewPointBuffers(maxParticles int) *PointBuffers {
	return &PointBuffers{
		Positions: make([]float32, maxParticles*3),
		Colors:    make([]float32, maxParticles*3),
	}
}

// Pack copies the active particles' positions and colors.
func (b *PointBuffers) Pack(s *Store) {
	for i, p := range s.ActiveParticles() {
		o := i * 3
		c := s.colors[i]
		b.Positions[o], b.Positions[o+1], b.Positions[o+2] = p.Position[0], p.Position[1], p.Position[2]
		b.Colors[o], b.Colors[o+1], b.Colors[o+2] = c[0], c[1], c[2]
	}
	b.DrawRange = s.Active()
}

// Vertex returns the position and color of point i.
func (b *PointBuffers) Vertex(i int) (pos, col mgl32.Vec3) {
	o := i * 3
	return mgl32.Vec3{b.Positions[o], b.Positions[o+1], b.Positions[o+2]},
		mgl32.Vec3{b.Colors[o], b.Colors[o+1], b.Colors[o+2]}
}
