package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/minemind/pkg/minemind/internalerr"
)

// Config is the top-level configuration for games and simulations.
type Config struct {
	Game       Game       `yaml:"game"`
	Simulation Simulation `yaml:"simulation"`
	Store      Store      `yaml:"store"`
}

// Game describes one board setup.
type Game struct {
	Height int `yaml:"height"`
	Width  int `yaml:"width"`
	Mines  int `yaml:"mines"`
}

// Simulation controls the batch harness.
type Simulation struct {
	Games int   `yaml:"games"`
	Seed  int64 `yaml:"seed"`
}

// Store points at the results database.
type Store struct {
	Path string `yaml:"path"`
}

// Default returns the standard 8x8 board with 8 mines and a single game.
func Default() Config {
	return Config{
		Game:       Game{Height: 8, Width: 8, Mines: 8},
		Simulation: Simulation{Games: 1},
	}
}

// Load reads a YAML configuration file. Omitted game fields fall back to
// the defaults; the result is validated before being returned.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks dimensional and count constraints.
func (c *Config) Validate() error {
	if c.Game.Height <= 0 || c.Game.Width <= 0 {
		return fmt.Errorf("board %dx%d: %w", c.Game.Height, c.Game.Width, internalerr.ErrInvalidConfig)
	}
	if c.Game.Mines < 0 || c.Game.Mines > c.Game.Height*c.Game.Width {
		return fmt.Errorf("mine count %d: %w", c.Game.Mines, internalerr.ErrInvalidConfig)
	}
	if c.Simulation.Games <= 0 {
		return fmt.Errorf("games %d: %w", c.Simulation.Games, internalerr.ErrInvalidConfig)
	}
	return nil
}
