package config

import (
	"fmt"
	"math"
	"os"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPreset        = "solar"
	DefaultDt            = physics.Day
	DefaultTimeScale     = 1.0
	DefaultSteps         = 3650
	DefaultSampleEvery   = 10
	DefaultTrailCapacity = 2000
)

type Config struct {
	Preset        string       `yaml:"preset"`
	Dt            float64      `yaml:"dt"`
	TimeScale     float64      `yaml:"time_scale"`
	Steps         int          `yaml:"steps"`
	SampleEvery   int          `yaml:"sample_every"`
	TrailCapacity int          `yaml:"trail_capacity"`
	MinDistance   float64      `yaml:"min_distance"`
	G             float64      `yaml:"g,omitempty"`
	AutoOrbit     bool         `yaml:"auto_orbit"`
	Bodies        []BodyConfig `yaml:"bodies,omitempty"`
}

// BodyConfig describes one body in a config file. Units are SI; X and Y may
// be given in AU by setting AU to true.
type BodyConfig struct {
	Name    string  `yaml:"name"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	VX      float64 `yaml:"vx"`
	VY      float64 `yaml:"vy"`
	AU      bool    `yaml:"au,omitempty"`
	Mass    float64 `yaml:"mass"`
	Radius  float64 `yaml:"radius,omitempty"`
	Color   string  `yaml:"color,omitempty"`
	Primary bool    `yaml:"primary,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Preset:        DefaultPreset,
		Dt:            DefaultDt,
		TimeScale:     DefaultTimeScale,
		Steps:         DefaultSteps,
		SampleEvery:   DefaultSampleEvery,
		TrailCapacity: DefaultTrailCapacity,
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of base: keys present in the file replace the
// base values, absent keys keep them.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// FilePreset returns the preset a config file names, or "" when it names none.
func FilePreset(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var head struct {
		Preset string `yaml:"preset"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return "", fmt.Errorf("parse %s: %w", path, err)
	}
	return head.Preset, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Gravity returns the gravitational constant to use, falling back to G.
func (c *Config) Gravity() float64 {
	if c.G != 0 {
		return c.G
	}
	return physics.G
}

func (c *Config) Validate() error {
	if !(c.Dt > 0) || math.IsInf(c.Dt, 0) {
		return fmt.Errorf("dt must be positive and finite, got %g", c.Dt)
	}
	if math.IsNaN(c.TimeScale) || math.IsInf(c.TimeScale, 0) {
		return fmt.Errorf("time_scale must be finite, got %g", c.TimeScale)
	}
	if c.Steps < 0 {
		return fmt.Errorf("steps must not be negative, got %d", c.Steps)
	}
	if c.SampleEvery < 1 {
		return fmt.Errorf("sample_every must be at least 1, got %d", c.SampleEvery)
	}
	if c.TrailCapacity < 0 {
		return fmt.Errorf("trail_capacity must not be negative, got %d", c.TrailCapacity)
	}
	if c.MinDistance < 0 {
		return fmt.Errorf("min_distance must not be negative, got %g", c.MinDistance)
	}
	if c.G < 0 {
		return fmt.Errorf("g must not be negative, got %g", c.G)
	}

	primaries := 0
	for i, b := range c.Bodies {
		if !(b.Mass > 0) {
			return fmt.Errorf("body %d (%s): mass must be positive, got %g", i, b.Name, b.Mass)
		}
		if b.Primary {
			primaries++
		}
	}
	if primaries > 1 {
		return fmt.Errorf("at most one primary body allowed, got %d", primaries)
	}
	if len(c.Bodies) == 0 {
		if _, ok := GetPreset(c.Preset); !ok {
			return fmt.Errorf("unknown preset %q", c.Preset)
		}
	}
	return nil
}

// Specs resolves the body list: explicit bodies win over the preset. With
// AutoOrbit set, bodies at rest are given a circular velocity around the
// primary.
func (c *Config) Specs() ([]dynamo.BodySpec, error) {
	if len(c.Bodies) == 0 {
		p, ok := GetPreset(c.Preset)
		if !ok {
			return nil, fmt.Errorf("unknown preset %q", c.Preset)
		}
		return p.Bodies(), nil
	}

	specs := make([]dynamo.BodySpec, len(c.Bodies))
	for i, b := range c.Bodies {
		pos := r2.Vec{X: b.X, Y: b.Y}
		if b.AU {
			pos = r2.Scale(physics.AU, pos)
		}
		name := b.Name
		if name == "" {
			name = fmt.Sprintf("body-%d", i)
		}
		color := b.Color
		if color == "" {
			color = "#ffffff"
		}
		specs[i] = dynamo.BodySpec{
			Name:    name,
			Pos:     pos,
			Vel:     r2.Vec{X: b.VX, Y: b.VY},
			Mass:    b.Mass,
			Radius:  b.Radius,
			Color:   color,
			Primary: b.Primary,
		}
	}

	if c.AutoOrbit {
		autoOrbit(specs, c.Gravity())
	}
	return specs, nil
}

func autoOrbit(specs []dynamo.BodySpec, g float64) {
	center := -1
	for i, s := range specs {
		if s.Primary {
			center = i
			break
		}
	}
	if center < 0 {
		return
	}
	primary := &dynamo.Body{Pos: specs[center].Pos, Vel: specs[center].Vel, Mass: specs[center].Mass}
	for i := range specs {
		if i == center || specs[i].Vel != (r2.Vec{}) {
			continue
		}
		specs[i].Vel = physics.CircularVelocity(g, primary, specs[i].Pos)
	}
}

// ToBodies validates the config and builds the bodies it describes.
func (c *Config) ToBodies() ([]*dynamo.Body, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	specs, err := c.Specs()
	if err != nil {
		return nil, err
	}
	return physics.Build(specs, c.TrailCapacity)
}
