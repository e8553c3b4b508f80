package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// worldPos maps a field position into window world units.
func worldPos(p mgl32.Vec3) rl.Vector3 {
	p = p.Mul(worldScale)
	return rl.NewVector3(p.X(), p.Y(), p.Z())
}

func unit(v float32) uint8 {
	return uint8(max(0, min(1, v)) * 255)
}

// vertexColor turns a packed vertex colour into an opaque raylib colour,
// clamping each channel to [0, 1].
func vertexColor(c mgl32.Vec3) rl.Color {
	return rl.NewColor(unit(c.X()), unit(c.Y()), unit(c.Z()), 255)
}

// lineColor uses the packed alpha as the line's opacity.
func lineColor(c mgl32.Vec3) rl.Color {
	return rl.NewColor(255, 255, 255, unit(c.X()))
}

// drawScene draws the box, then the lines and points with additive blending
// so overlapping faint lines brighten.
func (a *App) drawScene() {
	side := 2 * a.sim.Store().HalfExtent() * worldScale
	rl.DrawCubeWires(rl.NewVector3(0, 0, 0), side, side, side, ColBox)

	f := a.frame
	if f == nil {
		return
	}
	rl.BeginBlendMode(rl.BlendAdditive)
	if f.ShowLines {
		for k := 0; k < f.Lines.DrawRange/2; k++ {
			p, col := f.Lines.Vertex(2 * k)
			q, _ := f.Lines.Vertex(2*k + 1)
			rl.DrawLine3D(worldPos(p), worldPos(q), lineColor(col))
		}
	}
	if f.ShowDots {
		for i := 0; i < f.Points.DrawRange; i++ {
			p, col := f.Points.Vertex(i)
			rl.DrawSphere(worldPos(p), 0.02, vertexColor(col))
		}
	}
	rl.EndBlendMode()
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func (a *App) DrawHUD() {
	a.drawText("plexus", 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", a.sim.Builder().Name()), 130, 34, 16, ColText)

	status := "RUNNING"
	col := ColSelect
	if !a.Running {
		status = "PAUSED"
		col = ColTextDim
	}
	a.drawText(status, 1150, 30, 16, col)

	c := a.controls.Snapshot()
	edges := 0
	if a.frame != nil {
		edges = len(a.frame.Edges)
	}
	rows := []string{
		fmt.Sprintf("frame      %d", a.sim.FrameCount()),
		fmt.Sprintf("particles  %d", c.ParticleCount),
		fmt.Sprintf("edges      %d", edges),
		fmt.Sprintf("distance   %.0f", c.MinDistance),
		fmt.Sprintf("max conn   %d (%s)", c.MaxConnections, onOff(c.LimitConnections)),
		fmt.Sprintf("dots %s  lines %s", onOff(c.ShowDots), onOff(c.ShowLines)),
	}
	for i, r := range rows {
		a.drawText(r, 30, 80+i*22, 16, ColText)
	}
	if d := a.sim.DroppedEdges(); d > 0 {
		a.drawText(fmt.Sprintf("dropped    %d", d), 30, 80+len(rows)*22, 16, ColWarn)
	}

	a.DrawTelemetry()

	if a.ShowHelp {
		help := []string{
			"SPACE pause   R reset   Q quit",
			"D dots   L lines   C limit",
			"[ ] distance   - = max connections",
			", . particles (shift x10)",
			"ARROWS orbit   Z zoom (shift out)",
		}
		for i, h := range help {
			a.drawText(h, 850, 80+i*22, 14, ColAccent)
		}
	}
	a.drawText("[SPACE] PAUSE  [R] RESET  [/] HELP  [Q] QUIT", 850, 680, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, 680, 14, ColTextDim)
}

// DrawTelemetry plots the recent edge counts as a line strip.
func (a *App) DrawTelemetry() {
	points := telemetryPoints(a.Telemetry, 30, 600, 400, 60)
	if points == nil {
		return
	}
	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("E: %.0f", a.Telemetry[len(a.Telemetry)-1]), 440, 650, 14, ColText)
}

// telemetryPoints normalizes data into a width x height rectangle whose
// top-left corner is (x, y). It returns nil for fewer than two samples.
func telemetryPoints(data []float64, x, y, width, height int) []rl.Vector2 {
	if len(data) < 2 {
		return nil
	}

	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(data))
	for i, val := range data {
		px := float32(x) + (float32(i)/float32(len(data)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(y+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}
	return points
}
