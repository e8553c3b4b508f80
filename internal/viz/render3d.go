package viz

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/plexus/internal/field"
)

// Camera orbits the box center and projects world points onto the canvas.
// Distance is measured in box half-extents.
type Camera struct {
	Yaw, Pitch float64
	Zoom       float64
	Distance   float64
	Extent     float64
}

func NewCamera(extent float64) *Camera {
	return &Camera{Pitch: 0.3, Zoom: 1.0, Distance: 4, Extent: extent}
}

func (c *Camera) Orbit(dyaw, dpitch float64) {
	c.Yaw = math.Mod(c.Yaw+dyaw, 2*math.Pi)
	c.Pitch = math.Max(-1.5, math.Min(1.5, c.Pitch+dpitch))
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// Rotate turns p by yaw about Y, then pitch about X.
func (c *Camera) Rotate(p mgl32.Vec3) mgl32.Vec3 {
	p = mgl32.Rotate3DY(float32(c.Yaw)).Mul3x1(p)
	return mgl32.Rotate3DX(float32(c.Pitch)).Mul3x1(p)
}

// Project maps p to sub-pixel coordinates on a sw x sh canvas. ok is false
// when p is behind the camera; on-screen clipping is left to the canvas.
func (c *Camera) Project(p mgl32.Vec3, sw, sh int) (x, y int, depth float32, ok bool) {
	r := c.Rotate(p)
	ext := float32(c.Extent)
	if ext <= 0 {
		ext = 1
	}
	rx, ry, rz := float64(r.X()/ext), float64(r.Y()/ext), float64(r.Z()/ext)
	if rz >= c.Distance-0.1 {
		return 0, 0, 0, false
	}
	scale := c.Distance / (c.Distance - rz)
	unit := float64(min(sw, sh)) / 5 * c.Zoom
	x = int(rx*scale*unit) + sw/2
	y = int(-ry*scale*unit) + sh/2
	return x, y, r.Z(), true
}

// BoxEdges returns the twelve edges of the cube [-h, h]³.
func BoxEdges(h float32) [12][2]mgl32.Vec3 {
	v := [8]mgl32.Vec3{
		{-h, -h, -h}, {h, -h, -h}, {h, h, -h}, {-h, h, -h},
		{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h},
	}
	ei := [12][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}
	var edges [12][2]mgl32.Vec3
	for i, e := range ei {
		edges[i] = [2]mgl32.Vec3{v[e[0]], v[e[1]]}
	}
	return edges
}

// DrawSegment projects a world-space segment and draws it.
func DrawSegment(c *Canvas, cam *Camera, a, b mgl32.Vec3, stride int, l Layer) {
	sw, sh := c.SubSize()
	x1, y1, _, ok1 := cam.Project(a, sw, sh)
	x2, y2, _, ok2 := cam.Project(b, sw, sh)
	if !ok1 || !ok2 {
		return
	}
	c.DrawLine(x1, y1, x2, y2, stride, l)
}

// RenderFrame draws the bounding box, then lines, then dots, honoring the
// frame's visibility flags.
func RenderFrame(c *Canvas, cam *Camera, f *field.Frame, halfExtent float32) {
	c.Clear()
	for _, e := range BoxEdges(halfExtent) {
		DrawSegment(c, cam, e[0], e[1], 2, LayerBox)
	}
	if f == nil {
		return
	}
	if f.ShowLines {
		for k := 0; k < f.Lines.DrawRange/2; k++ {
			a, col := f.Lines.Vertex(2 * k)
			b, _ := f.Lines.Vertex(2*k + 1)
			DrawSegment(c, cam, a, b, alphaStride(col.X()), LayerLine)
		}
	}
	if f.ShowDots {
		sw, sh := c.SubSize()
		for i := 0; i < f.Points.DrawRange; i++ {
			p, _ := f.Points.Vertex(i)
			if x, y, _, ok := cam.Project(p, sw, sh); ok {
				c.Set(x, y, LayerDot)
			}
		}
	}
}
