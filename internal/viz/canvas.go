package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Layer tags what was drawn into a cell. A cell shows the style of the
// highest layer that touched it.
type Layer uint8

const (
	LayerNone Layer = iota
	LayerBox
	LayerLine
	LayerDot
	numLayers
)

type Canvas struct {
	Width, Height int
	Grid          [][]rune
	layers        [][]Layer
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		layers: make([][]Layer, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.layers[i] = make([]Layer, w)
	}
	c.Clear()
	return c
}

// SubSize is the canvas size in sub-pixels: (Width*2) x (Height*4).
func (c *Canvas) SubSize() (int, int) { return c.Width * 2, c.Height * 4 }

// Set lights the sub-pixel at (x, y). Out-of-range coordinates are ignored.
func (c *Canvas) Set(x, y int, l Layer) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if l > c.layers[row][col] {
		c.layers[row][col] = l
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
		clear(c.layers[i])
	}
}

// DrawLine draws a line using Bresenham's algorithm, lighting every
// stride-th sub-pixel. A stride of 1 draws a solid line.
func (c *Canvas) DrawLine(x0, y0, x1, y1, stride int, l Layer) {
	stride = max(stride, 1)
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for n := 0; ; n++ {
		if n%stride == 0 {
			c.Set(x0, y0, l)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Lit counts lit sub-pixels.
func (c *Canvas) Lit() int {
	n := 0
	for _, row := range c.Grid {
		for _, r := range row {
			for bits := r - brailleBlank; bits != 0; bits &= bits - 1 {
				n++
			}
		}
	}
	return n
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render styles each run of cells by its layer.
func (c *Canvas) Render(styles [numLayers]lipgloss.Style) string {
	var b strings.Builder
	for i, row := range c.Grid {
		layers := c.layers[i]
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && layers[j] == layers[start] {
				continue
			}
			run := string(row[start:j])
			if layers[start] == LayerNone {
				b.WriteString(run)
			} else {
				b.WriteString(styles[layers[start]].Render(run))
			}
			start = j
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// alphaStride maps line opacity to dot spacing: faint lines are sparse.
func alphaStride(alpha float32) int {
	switch {
	case alpha >= 0.75:
		return 1
	case alpha >= 0.5:
		return 2
	case alpha >= 0.25:
		return 3
	default:
		return 4
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
