// Package config loads the demo configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/plus3/sparks/ecs"
	"github.com/plus3/sparks/particle"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure returned from Load and Validate.
var ErrInvalid = errors.New("invalid config")

// WindowConfig sizes the demo window.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// Config is the top-level configuration file.
type Config struct {
	// Seed for the particle random source; 0 picks one from the clock.
	Seed uint64 `yaml:"seed"`
	// FixedHz is the FixedUpdate rate, i.e. particles spawned per second.
	FixedHz   float64           `yaml:"fixed_hz"`
	Window    WindowConfig      `yaml:"window"`
	Particles particle.Settings `yaml:"particles"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		FixedHz: ecs.DefaultFixedRate,
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "sparks",
		},
		Particles: particle.DefaultSettings(),
	}
}

// Load reads a YAML file on top of Default and validates the result.
// Keys missing from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the ranges the simulation relies on.
func (c *Config) Validate() error {
	switch {
	case c.FixedHz <= 0:
		return fmt.Errorf("%w: fixed_hz must be positive, got %v", ErrInvalid, c.FixedHz)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size must be positive, got %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Particles.InitialCount < 0:
		return fmt.Errorf("%w: particles.initial_count must not be negative, got %d", ErrInvalid, c.Particles.InitialCount)
	case c.Particles.TTL <= 0:
		return fmt.Errorf("%w: particles.ttl must be positive, got %v", ErrInvalid, c.Particles.TTL)
	case c.Particles.Radius <= 0:
		return fmt.Errorf("%w: particles.radius must be positive, got %v", ErrInvalid, c.Particles.Radius)
	}
	return nil
}
