package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.TickInterval != 17*time.Millisecond {
		t.Errorf("interval = %v, want 17ms", cfg.TickInterval)
	}
	if cfg.OffscreenLimit != 20 || cfg.Scale != 10 || cfg.Color != "red" {
		t.Errorf("limit = %v scale = %v colour = %q", cfg.OffscreenLimit, cfg.Scale, cfg.Color)
	}
	if tps := cfg.TPS(); tps != 59 {
		t.Errorf("TPS = %d, want 59", tps)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boids.yaml")
	data := `
width: 1024
boids: 250
image: assets/boid.png
tick_interval: 20ms
palette: noise
fade_in_ticks: 30
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Width != 1024 || cfg.Boids != 250 || cfg.Image != "assets/boid.png" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.TickInterval != 20*time.Millisecond || cfg.TPS() != 50 {
		t.Errorf("interval = %v tps = %d", cfg.TickInterval, cfg.TPS())
	}
	if cfg.Palette != PaletteNoise || cfg.FadeInTicks != 30 {
		t.Errorf("palette = %q fade = %d", cfg.Palette, cfg.FadeInTicks)
	}
	// untouched keys keep defaults
	if cfg.Height != DefaultHeight || cfg.OffscreenLimit != DefaultOffscreenLimit {
		t.Errorf("height = %d limit = %v, want defaults", cfg.Height, cfg.OffscreenLimit)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("boids: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero boids", func(c *Config) { c.Boids = 0 }, false},
		{"zero size headless", func(c *Config) { c.Width, c.Height, c.Headless = 0, 0, true }, false},
		{"zero width window", func(c *Config) { c.Width = 0 }, true},
		{"zero height window", func(c *Config) { c.Height = 0 }, true},
		{"negative width", func(c *Config) { c.Width = -1 }, true},
		{"negative boids", func(c *Config) { c.Boids = -3 }, true},
		{"zero interval", func(c *Config) { c.TickInterval = 0 }, true},
		{"negative frames", func(c *Config) { c.Frames = -1 }, true},
		{"negative scale", func(c *Config) { c.Scale = -2 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
