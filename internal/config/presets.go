package config

import "sort"

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"sparse": {
		MaxParticles: 2000, HalfExtent: 250, Builder: "brute", FPS: 30, Theme: "midnight",
		Controls: ControlsConfig{ShowDots: true, ShowLines: true, MinDistance: 120, LimitConnections: true, MaxConnections: 3, ParticleCount: 200},
	},
	"dense": {
		MaxParticles: 2000, HalfExtent: 250, Builder: "grid", FPS: 30, Theme: "ocean",
		Controls: ControlsConfig{ShowDots: true, ShowLines: true, MinDistance: 60, LimitConnections: true, MaxConnections: 8, ParticleCount: 2000},
	},
	"web": {
		MaxParticles: 2000, HalfExtent: 250, Builder: "grid", FPS: 30, Theme: "neon",
		Controls: ControlsConfig{ShowDots: false, ShowLines: true, MinDistance: 200, LimitConnections: true, MaxConnections: 12, ParticleCount: 800},
	},
	"unbounded": {
		MaxParticles: 2000, HalfExtent: 250, Builder: "grid", FPS: 30, Theme: "midnight",
		Controls: ControlsConfig{ShowDots: true, ShowLines: true, MinDistance: 100, LimitConnections: false, MaxConnections: 0, ParticleCount: 400},
	},
	"swarm": {
		MaxParticles: 2000, HalfExtent: 250, Builder: "grid", FPS: 30, Theme: "forest",
		Controls: ControlsConfig{ShowDots: true, ShowLines: true, MinDistance: 40, LimitConnections: true, MaxConnections: 4, ParticleCount: 1500},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
