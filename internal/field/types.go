package field

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultMaxParticles = 2000
	DefaultHalfExtent   = 250.0
)

// Control bounds.
const (
	MinDistanceLow     = 10.0
	MinDistanceHigh    = 300.0
	MaxConnectionsHigh = 30
)

// Particle is the kinematic state of one point.
type Particle struct {
	Position    mgl32.Vec3
	Velocity    mgl32.Vec3
	Connections uint32
}

// Edge joins particles A < B. Alpha is 1 - distance/minDistance.
type Edge struct {
	A, B  uint32
	Alpha float32
}

// ControlState is one frame's view of the control surface.
type ControlState struct {
	ShowDots         bool    `yaml:"show_dots"`
	ShowLines        bool    `yaml:"show_lines"`
	MinDistance      float32 `yaml:"min_distance"`
	LimitConnections bool    `yaml:"limit_connections"`
	MaxConnections   uint32  `yaml:"max_connections"`
	ParticleCount    uint32  `yaml:"particle_count"`
}

func DefaultControlState() ControlState {
	return ControlState{
		ShowDots:         true,
		ShowLines:        true,
		MinDistance:      150,
		LimitConnections: true,
		MaxConnections:   5,
		ParticleCount:    500,
	}
}

// Clamp returns c with every numeric control forced into its range.
// Out-of-range input is never an error.
func (c ControlState) Clamp(maxParticles int) ControlState {
	c.MinDistance = ClampMinDistance(c.MinDistance)
	if c.MaxConnections > MaxConnectionsHigh {
		c.MaxConnections = MaxConnectionsHigh
	}
	if maxParticles < 0 {
		maxParticles = 0
	}
	if int64(c.ParticleCount) > int64(maxParticles) {
		c.ParticleCount = uint32(maxParticles)
	}
	return c
}

func ClampMinDistance(d float32) float32 {
	if math.IsNaN(float64(d)) || d < MinDistanceLow {
		return MinDistanceLow
	}
	if d > MinDistanceHigh {
		return MinDistanceHigh
	}
	return d
}

// Frame is what one AdvanceFrame hands to a renderer. The buffers are
// owned by the Simulator and overwritten by the next frame.
type Frame struct {
	Index     uint64
	Points    *PointBuffers
	Lines     *LineBuffers
	Edges     []Edge
	ShowDots  bool
	ShowLines bool
	Controls  ControlState
}

// Metric observes frames and reduces them to a single value.
type Metric interface {
	Name() string
	Observe(f *Frame, s *Store)
	Value() float64
	Reset()
}

// Observer is notified after every completed frame.
type Observer interface {
	OnFrame(f *Frame)
}

// Result summarises a headless Run.
type Result struct {
	Frames     int
	EdgeCounts []float64
	Metrics    map[string]float64
	Dropped    int
}
