package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/plexus/internal/config"
)

func resolve(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()
	root := newRootCmd()
	if err := root.ParseFlags(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return resolveConfig(root)
}

func TestResolveDefaults(t *testing.T) {
	cfg, err := resolve(t)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Controls.ParticleCount != config.DefaultParticleCount {
		t.Errorf("expected %d particles, got %d", config.DefaultParticleCount, cfg.Controls.ParticleCount)
	}
	if cfg.Seed == 0 {
		t.Error("expected a clock seed")
	}
}

func TestResolvePrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plexus.yaml")
	data := []byte("seed: 9\nbuilder: grid\ncontrols:\n  min_distance: 80\n  particle_count: 300\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := resolve(t, "--preset", "dense", "--config", path, "--particles", "42", "--no-limit")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != 9 || cfg.Builder != "grid" {
		t.Errorf("expected file values, got seed %d builder %s", cfg.Seed, cfg.Builder)
	}
	if cfg.Controls.MinDistance != 80 {
		t.Errorf("expected min distance 80 from file, got %f", cfg.Controls.MinDistance)
	}
	if cfg.Controls.ParticleCount != 42 {
		t.Errorf("expected flag to override file, got %d", cfg.Controls.ParticleCount)
	}
	if cfg.Controls.LimitConnections {
		t.Error("expected --no-limit to turn the limit off")
	}
}

func TestResolvePreset(t *testing.T) {
	cfg, err := resolve(t, "--preset", "sparse", "--seed", "5")
	if err != nil {
		t.Fatal(err)
	}
	expected := config.GetPreset("sparse")
	if cfg.Controls != expected.Controls {
		t.Errorf("expected sparse controls %+v, got %+v", expected.Controls, cfg.Controls)
	}
	if cfg.Seed != 5 {
		t.Errorf("expected seed 5, got %d", cfg.Seed)
	}
}

func TestResolveErrors(t *testing.T) {
	if _, err := resolve(t, "--preset", "nope"); err == nil {
		t.Error("expected error for unknown preset")
	}
	if _, err := resolve(t, "--builder", "octree"); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if _, err := resolve(t, "--config", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}
