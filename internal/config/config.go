package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/landscape/internal/marker"
	"gopkg.in/yaml.v3"
)

const (
	DefaultCols     = 15
	DefaultRows     = 11
	DefaultSide     = 20.0
	DefaultFrames   = 1800
	DefaultMoveMs   = 300.0
	DefaultScenario = "basin"
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Scenario       string        `yaml:"scenario"`
	Seed           int64         `yaml:"seed"`
	Frames         int           `yaml:"frames"`
	StopOnCollapse bool          `yaml:"stop_on_collapse"`
	Grid           GridConfig    `yaml:"grid"`
	Start          StartConfig   `yaml:"start"`
	Noise          float64       `yaml:"noise"`
	Erosion        ErosionConfig `yaml:"erosion"`
	Shock          ShockConfig   `yaml:"shock"`
	Fog            FogConfig     `yaml:"fog"`
	Move           MoveConfig    `yaml:"move"`
	Physics        marker.Params `yaml:"physics"`
	Terrain        TerrainConfig `yaml:"terrain"`
}

type GridConfig struct {
	Cols int     `yaml:"cols"`
	Rows int     `yaml:"rows"`
	Side float64 `yaml:"side"`
}

// StartConfig places the marker; negative values mean the grid centre.
type StartConfig struct {
	Col int `yaml:"col"`
	Row int `yaml:"row"`
}

// ErosionConfig raises terrain every Every frames. Radius 0 erodes the
// whole grid; a positive radius erodes around the start cell only.
type ErosionConfig struct {
	Intensity float64 `yaml:"intensity"`
	Every     int     `yaml:"every"`
	Radius    int     `yaml:"radius"`
	Delay     int     `yaml:"delay"`
}

// ShockConfig applies an impulse of Magnitude in a random direction every
// Every frames.
type ShockConfig struct {
	Every     int     `yaml:"every"`
	Magnitude float64 `yaml:"magnitude"`
}

type FogConfig struct {
	Hidden bool `yaml:"hidden"`
	Radius int  `yaml:"radius"`
}

type MoveConfig struct {
	DurationMs float64 `yaml:"duration_ms"`
	Every      int     `yaml:"every"`
}

// TerrainConfig describes the authored landscape: a basin around the start
// and, for two-basin scenarios, a second basin Offset columns away.
type TerrainConfig struct {
	Depth       float64 `yaml:"depth"`
	Radius      int     `yaml:"radius"`
	RuinRing    int     `yaml:"ruin_ring"`
	SecondDepth float64 `yaml:"second_depth"`
	Offset      int     `yaml:"offset"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario: DefaultScenario,
		Frames:   DefaultFrames,
		Grid: GridConfig{
			Cols: DefaultCols,
			Rows: DefaultRows,
			Side: DefaultSide,
		},
		Start:   StartConfig{Col: -1, Row: -1},
		Fog:     FogConfig{Radius: 1},
		Move:    MoveConfig{DurationMs: DefaultMoveMs, Every: 30},
		Physics: marker.DefaultParams(),
		Terrain: TerrainConfig{Depth: -2.5, Radius: 3, RuinRing: 5},
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

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

func (c *Config) Validate() error {
	switch {
	case c.Grid.Cols <= 0 || c.Grid.Rows <= 0:
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalid, c.Grid.Cols, c.Grid.Rows)
	case c.Grid.Side <= 0:
		return fmt.Errorf("%w: side must be positive, got %f", ErrInvalid, c.Grid.Side)
	case c.Frames <= 0:
		return fmt.Errorf("%w: frames must be positive, got %d", ErrInvalid, c.Frames)
	case c.Noise < 0 || c.Noise > 1:
		return fmt.Errorf("%w: noise must be in [0,1], got %f", ErrInvalid, c.Noise)
	case c.Erosion.Intensity < 0:
		return fmt.Errorf("%w: erosion intensity must be >= 0, got %f", ErrInvalid, c.Erosion.Intensity)
	case c.Fog.Radius < 0:
		return fmt.Errorf("%w: fog radius must be >= 0, got %d", ErrInvalid, c.Fog.Radius)
	case c.Move.DurationMs <= 0:
		return fmt.Errorf("%w: move duration must be positive, got %f", ErrInvalid, c.Move.DurationMs)
	}
	return nil
}

// StartCell resolves the configured start, defaulting to the grid centre.
func (c *Config) StartCell() (col, row int) {
	col, row = c.Start.Col, c.Start.Row
	if col < 0 || col >= c.Grid.Cols {
		col = c.Grid.Cols / 2
	}
	if row < 0 || row >= c.Grid.Rows {
		row = c.Grid.Rows / 2
	}
	return col, row
}

// FrameMs is the simulated duration of one frame.
func (c *Config) FrameMs() float64 {
	if c.Physics.FrameMs > 0 {
		return c.Physics.FrameMs
	}
	return marker.DefaultParams().FrameMs
}
