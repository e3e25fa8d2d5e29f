package config

import (
	"sort"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
)

type Preset struct {
	Name        string
	Description string
	Bodies      func() []dynamo.BodySpec
	// G overrides the gravitational constant for unit systems.
	G  float64
	Dt float64
}

var Presets = map[string]Preset{
	"solar": {
		Name:        "solar",
		Description: "Sun and the eight planets on their initial orbits",
		Bodies:      physics.SolarSystem,
	},
	"sun-earth": {
		Name:        "sun-earth",
		Description: "Sun and one Earth-mass body on a circular 1 AU orbit",
		Bodies:      physics.SunEarth,
	},
	"unit-circle": {
		Name:        "unit-circle",
		Description: "G=1 unit system, satellite period 2*pi",
		Bodies:      physics.UnitCircle,
		G:           1,
		Dt:          0.01,
	},
}

func GetPreset(name string) (Preset, bool) {
	p, ok := Presets[name]
	return p, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FromPreset returns the default config seeded with a preset's constants.
func FromPreset(name string) (*Config, bool) {
	p, ok := GetPreset(name)
	if !ok {
		return nil, false
	}
	cfg := DefaultConfig()
	cfg.Preset = name
	if p.G != 0 {
		cfg.G = p.G
	}
	if p.Dt != 0 {
		cfg.Dt = p.Dt
	}
	return cfg, true
}
