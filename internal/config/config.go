package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/san-kum/plexus/internal/field"
	"gopkg.in/yaml.v3"
)

const (
	DefaultMaxParticles   = field.DefaultMaxParticles
	DefaultHalfExtent     = field.DefaultHalfExtent
	DefaultBuilder        = "brute"
	DefaultFPS            = 30
	DefaultTheme          = "midnight"
	DefaultMinDistance    = 150.0
	DefaultMaxConnections = 5
	DefaultParticleCount  = 500
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Seed         int64          `yaml:"seed"`
	MaxParticles int            `yaml:"max_particles"`
	HalfExtent   float64        `yaml:"half_extent"`
	Builder      string         `yaml:"builder"`
	FPS          int            `yaml:"fps"`
	Theme        string         `yaml:"theme"`
	Controls     ControlsConfig `yaml:"controls"`
}

// ControlsConfig mirrors field.ControlState with signed fields so a file
// holding negative numbers is clamped rather than rejected.
type ControlsConfig struct {
	ShowDots         bool    `yaml:"show_dots"`
	ShowLines        bool    `yaml:"show_lines"`
	MinDistance      float64 `yaml:"min_distance"`
	LimitConnections bool    `yaml:"limit_connections"`
	MaxConnections   int     `yaml:"max_connections"`
	ParticleCount    int     `yaml:"particle_count"`
}

func DefaultConfig() *Config {
	return &Config{
		MaxParticles: DefaultMaxParticles,
		HalfExtent:   DefaultHalfExtent,
		Builder:      DefaultBuilder,
		FPS:          DefaultFPS,
		Theme:        DefaultTheme,
		Controls: ControlsConfig{
			ShowDots:         true,
			ShowLines:        true,
			MinDistance:      DefaultMinDistance,
			LimitConnections: true,
			MaxConnections:   DefaultMaxConnections,
			ParticleCount:    DefaultParticleCount,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects structural problems. Control values are never rejected;
// ControlState clamps them.
func (c *Config) Validate() error {
	if c.MaxParticles <= 0 {
		return fmt.Errorf("%w: max_particles must be positive, got %d", ErrInvalidConfig, c.MaxParticles)
	}
	if c.HalfExtent <= 0 {
		return fmt.Errorf("%w: half_extent must be positive, got %g", ErrInvalidConfig, c.HalfExtent)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.FPS)
	}
	if names := field.NewRegistry().Names(); !slices.Contains(names, c.Builder) {
		return fmt.Errorf("%w: unknown builder %q (available: %v)", ErrInvalidConfig, c.Builder, names)
	}
	return nil
}

// ControlState converts the controls section into a clamped field state.
func (c *Config) ControlState() field.ControlState {
	cc := c.Controls
	s := field.ControlState{
		ShowDots:         cc.ShowDots,
		ShowLines:        cc.ShowLines,
		MinDistance:      field.ClampMinDistance(float32(cc.MinDistance)),
		LimitConnections: cc.LimitConnections,
		MaxConnections:   nonNegative(cc.MaxConnections),
		ParticleCount:    nonNegative(cc.ParticleCount),
	}
	return s.Clamp(c.MaxParticles)
}

func (c *Config) Options() field.Options {
	return field.Options{
		MaxParticles: c.MaxParticles,
		HalfExtent:   float32(c.HalfExtent),
		Seed:         c.Seed,
		Builder:      c.Builder,
	}
}

func nonNegative(n int) uint32 {
	if n < 0 {
		return 0
	}
	return uint32(n)
}
