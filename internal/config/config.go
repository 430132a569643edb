package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth      = 21
	DefaultHeight     = 21
	DefaultCarver     = "prim"
	DefaultTheme      = "dungeon"
	DefaultFPS        = 30
	DefaultWarmWalls  = 256
	DefaultWarmFloors = 256
	DefaultCarveOps   = 10
	DefaultBuildCells = 50
)

// Config is one generation request plus host-loop tuning. Zero seed means
// randomize on submission.
type Config struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	Seed      int64   `yaml:"seed"`
	Carver    string  `yaml:"carver"`
	Braiding  float64 `yaml:"braiding"`
	AutoPlace bool    `yaml:"auto_place"`
	Start     *Point  `yaml:"start"`
	End       *Point  `yaml:"end"`
	Theme     string  `yaml:"theme"`
	FPS       int     `yaml:"fps"`
	Pool      Pool    `yaml:"pool"`
	Steps     Steps   `yaml:"steps"`
}

// Point is an explicit start or end override.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Pool sets warm-up counts for the instance sub-pools.
type Pool struct {
	WarmWalls  int `yaml:"warm_walls"`
	WarmFloors int `yaml:"warm_floors"`
}

// Steps bounds the per-frame work slices.
type Steps struct {
	CarveOps   int `yaml:"carve_ops"`
	BuildCells int `yaml:"build_cells"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		Carver:    DefaultCarver,
		AutoPlace: true,
		Theme:     DefaultTheme,
		FPS:       DefaultFPS,
		Pool: Pool{
			WarmWalls:  DefaultWarmWalls,
			WarmFloors: DefaultWarmFloors,
		},
		Steps: Steps{
			CarveOps:   DefaultCarveOps,
			BuildCells: DefaultBuildCells,
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
		return nil, err
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

func (c *Config) Validate() error {
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("config: dimensions %dx%d must be positive", c.Width, c.Height)
	}
	if c.Braiding < 0 || c.Braiding > 1 {
		return fmt.Errorf("config: braiding %f outside [0,1]", c.Braiding)
	}
	if c.FPS < 1 {
		return fmt.Errorf("config: fps %d must be at least 1", c.FPS)
	}
	return nil
}
