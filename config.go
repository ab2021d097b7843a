package main

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Simulation defaults
const (
	DefaultWidth        = 800
	DefaultHeight       = 600
	DefaultBoids        = 100
	DefaultTickInterval = 17 * time.Millisecond
)

// Config holds everything needed to start a simulation
type Config struct {
	Width          int           `yaml:"width"`
	Height         int           `yaml:"height"`
	Boids          int           `yaml:"boids"`
	Image          string        `yaml:"image"`
	TickInterval   time.Duration `yaml:"tick_interval"`
	OffscreenLimit float64       `yaml:"offscreen_limit"`
	Scale          float64       `yaml:"scale"`
	Color          string        `yaml:"color"`
	Palette        string        `yaml:"palette"`
	FadeInTicks    int           `yaml:"fade_in_ticks"`
	Seed           int64         `yaml:"seed"` // 0 seeds from the clock

	Headless bool   `yaml:"headless"`
	Frames   int    `yaml:"frames"`   // headless only; 0 runs until interrupted
	Snapshot string `yaml:"snapshot"` // headless only; PNG of the last frame
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		Boids:          DefaultBoids,
		TickInterval:   DefaultTickInterval,
		OffscreenLimit: DefaultOffscreenLimit,
		Scale:          DefaultBoidScale,
		Color:          "red",
		Palette:        PaletteSolid,
	}
}

// LoadConfig reads a YAML file over the defaults. Keys missing from the file keep their default.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse %s", path)
	}
	return cfg, nil
}

// Validate rejects configurations the simulation cannot run.
func (c Config) Validate() error {
	switch {
	case c.Width < 0 || c.Height < 0:
		return errors.Errorf("surface size %dx%d must not be negative", c.Width, c.Height)
	case !c.Headless && (c.Width == 0 || c.Height == 0):
		// Ebitengine panics on a zero-sized window
		return errors.Errorf("window size %dx%d must be positive", c.Width, c.Height)
	case c.Boids < 0:
		return errors.Errorf("boid count %d must not be negative", c.Boids)
	case c.TickInterval <= 0:
		return errors.Errorf("tick interval %v must be positive", c.TickInterval)
	case c.Frames < 0:
		return errors.Errorf("frame count %d must not be negative", c.Frames)
	case c.Scale < 0:
		return errors.Errorf("scale %v must not be negative", c.Scale)
	}
	return nil
}

// TPS converts the tick interval to Ebitengine ticks per second.
func (c Config) TPS() int {
	tps := int((time.Second + c.TickInterval/2) / c.TickInterval)
	return max(tps, 1)
}

func (c Config) seed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}
