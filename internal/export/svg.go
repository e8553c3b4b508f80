package export

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/plexus/internal/field"
	"github.com/san-kum/plexus/internal/viz"
)

const background = "#0a0a0a"

// CanvasToSVG converts a braille canvas to SVG, one circle per lit dot.
func CanvasToSVG(canvas *viz.Canvas, scale float64, theme viz.Theme) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	writeHeader(&sb, width, height)
	sb.WriteString(fmt.Sprintf("<g fill=\"%s\">\n", theme.Dots))

	// Braille dot-to-bit mapping
	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius))
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// FrameToSVG draws a frame as vector art through cam: the bounding box,
// one line per packed segment with its alpha as stroke opacity, then the
// dots. Visibility flags on the frame are honored.
func FrameToSVG(f *field.Frame, cam *viz.Camera, width, height int, halfExtent float32, theme viz.Theme) string {
	var sb strings.Builder
	writeHeader(&sb, float64(width), float64(height))

	segment := func(a, b mgl32.Vec3, attrs string) {
		x1, y1, _, ok1 := cam.Project(a, width, height)
		x2, y2, _, ok2 := cam.Project(b, width, height)
		if !ok1 || !ok2 {
			return
		}
		sb.WriteString(fmt.Sprintf("<line x1=\"%d\" y1=\"%d\" x2=\"%d\" y2=\"%d\"%s/>\n", x1, y1, x2, y2, attrs))
	}

	sb.WriteString(fmt.Sprintf("<g stroke=\"%s\" stroke-width=\"1\" stroke-dasharray=\"4 3\">\n", theme.Box))
	for _, e := range viz.BoxEdges(halfExtent) {
		segment(e[0], e[1], "")
	}
	sb.WriteString("</g>\n")

	if f != nil && f.ShowLines && f.Lines != nil {
		sb.WriteString(fmt.Sprintf("<g stroke=\"%s\" stroke-width=\"1\">\n", theme.Lines))
		for k := 0; k < f.Lines.DrawRange/2; k++ {
			a, col := f.Lines.Vertex(2 * k)
			b, _ := f.Lines.Vertex(2*k + 1)
			segment(a, b, fmt.Sprintf(" stroke-opacity=\"%.3f\"", col.X()))
		}
		sb.WriteString("</g>\n")
	}

	if f != nil && f.ShowDots && f.Points != nil {
		sb.WriteString(fmt.Sprintf("<g fill=\"%s\">\n", theme.Dots))
		for i := 0; i < f.Points.DrawRange; i++ {
			p, _ := f.Points.Vertex(i)
			if x, y, _, ok := cam.Project(p, width, height); ok {
				sb.WriteString(fmt.Sprintf("<circle cx=\"%d\" cy=\"%d\" r=\"1.5\"/>\n", x, y))
			}
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// EdgeSeriesToSVG plots a per-frame series, typically edge counts, as a
// single polyline.
func EdgeSeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	// Add padding
	span := hi - lo
	if span == 0 {
		span = 1
	}
	lo -= span * 0.1
	hi += span * 0.1
	span = hi - lo
	step := float64(width) / float64(len(values)-1)

	var sb strings.Builder
	writeHeader(&sb, float64(width), float64(height))
	sb.WriteString(fmt.Sprintf("<path fill=\"none\" stroke=\"%s\" stroke-width=\"1.5\" d=\"M", strokeColor))

	for i, v := range values {
		x := float64(i) * step
		y := float64(height) - (v-lo)/span*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString("\"/>\n</svg>")
	return sb.String()
}

func writeHeader(sb *strings.Builder, width, height float64) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))
}
