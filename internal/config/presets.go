package config

import (
	"sort"

	"github.com/san-kum/landscape/internal/marker"
)

func preset(scenario string, edit func(c *Config)) *Config {
	c := DefaultConfig()
	c.Scenario = scenario
	edit(c)
	return c
}

var Presets = map[string]map[string]*Config{
	"basin": {
		"deep": preset("basin", func(c *Config) {
			c.Shock = ShockConfig{Every: 240, Magnitude: 6}
		}),
		"shallow": preset("basin", func(c *Config) {
			c.Terrain.Depth = -1
			c.Terrain.Radius = 2
			c.Shock = ShockConfig{Every: 240, Magnitude: 6}
		}),
	},
	"noise": {
		"mild": preset("noise", func(c *Config) {
			c.Noise = 0.3
			c.StopOnCollapse = true
		}),
		"severe": preset("noise", func(c *Config) {
			c.Noise = 0.9
			c.Terrain.Depth = -1.5
			c.StopOnCollapse = true
		}),
	},
	"erosion": {
		"gradual": preset("erosion", func(c *Config) {
			c.Frames = 3600
			c.Noise = 0.1
			c.Erosion = ErosionConfig{Intensity: 0.08, Every: 60, Radius: 3, Delay: 300}
			c.StopOnCollapse = true
		}),
		"fast": preset("erosion", func(c *Config) {
			c.Frames = 2400
			c.Noise = 0.15
			c.Erosion = ErosionConfig{Intensity: 0.2, Every: 45, Radius: 3, Delay: 120}
			c.StopOnCollapse = true
		}),
	},
	"hysteresis": {
		"twin": preset("hysteresis", func(c *Config) {
			c.Frames = 3000
			c.Grid.Cols = 19
			c.Start = StartConfig{Col: 5, Row: 5}
			c.Terrain = TerrainConfig{Depth: -2.5, Radius: 2, RuinRing: 0, SecondDepth: -2, Offset: 8}
			c.Erosion = ErosionConfig{Intensity: 0.15, Every: 40, Radius: 2, Delay: 200}
			c.Physics = marker.DefaultParams()
		}),
	},
	"fog": {
		"explore": preset("fog", func(c *Config) {
			c.Frames = 1200
			c.Fog = FogConfig{Hidden: true, Radius: 1}
			c.Terrain = TerrainConfig{Depth: -3, Radius: 9, RuinRing: 0}
			c.Start = StartConfig{Col: 1, Row: 1}
		}),
	},
}

func GetPreset(scenario, name string) *Config {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	cfg, ok := scenarioPresets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(scenario string) []string {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenarioPresets))
	for name := range scenarioPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
