// Package config provides YAML-based generator configuration for the maze
// game, with an embedded default that is used when no file is found.
package config

import (
	"fmt"

	"github.com/vovakirdan/tui-maze/internal/maze"
)

// MazeConfig contains all tunable generator settings.
type MazeConfig struct {
	Tiers              TierConfig `yaml:"tiers"`
	OpenRatio          float64    `yaml:"open_ratio"`
	MaxAttempts        int        `yaml:"max_attempts"`
	FillAttemptsFactor int        `yaml:"fill_attempts_factor"` // fill pass bails after factor*N*N draws
	WalkStepsFactor    int        `yaml:"walk_steps_factor"`    // connecting walk bails after factor*N*N steps
}

// TierConfig maps each difficulty tier to its grid size.
type TierConfig struct {
	Easy   int `yaml:"easy"`
	Medium int `yaml:"medium"`
	Hard   int `yaml:"hard"`
}

// MaxOpenRatio is the largest open ratio Validate accepts.
const MaxOpenRatio = 0.5

// Validate checks that the configuration can drive the generator.
func (c MazeConfig) Validate() error {
	for _, tier := range []struct {
		name string
		size int
	}{
		{"easy", c.Tiers.Easy},
		{"medium", c.Tiers.Medium},
		{"hard", c.Tiers.Hard},
	} {
		if tier.size < maze.MinSize || tier.size > maze.MaxSize {
			return fmt.Errorf("tiers.%s: size %d is outside [%d, %d]", tier.name, tier.size, maze.MinSize, maze.MaxSize)
		}
	}
	if c.OpenRatio <= 0 || c.OpenRatio > MaxOpenRatio {
		return fmt.Errorf("open_ratio: %v is outside (0, %v]", c.OpenRatio, MaxOpenRatio)
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("max_attempts: must be positive, got %d", c.MaxAttempts)
	}
	if c.FillAttemptsFactor <= 0 {
		return fmt.Errorf("fill_attempts_factor: must be positive, got %d", c.FillAttemptsFactor)
	}
	if c.WalkStepsFactor <= 0 {
		return fmt.Errorf("walk_steps_factor: must be positive, got %d", c.WalkStepsFactor)
	}
	return nil
}

// Params converts the config into generator parameters.
func (c MazeConfig) Params() maze.Params {
	return maze.Params{
		OpenRatio:          c.OpenRatio,
		MaxAttempts:        c.MaxAttempts,
		FillAttemptsFactor: c.FillAttemptsFactor,
		WalkStepsFactor:    c.WalkStepsFactor,
	}
}

// Sizes converts the tier table into the generator's lookup table.
func (c MazeConfig) Sizes() maze.SizeTable {
	return c.Tiers.Sizes()
}

// Sizes returns the tier table keyed by difficulty.
func (t TierConfig) Sizes() maze.SizeTable {
	return maze.SizeTable{
		maze.DifficultyEasy:   t.Easy,
		maze.DifficultyMedium: t.Medium,
		maze.DifficultyHard:   t.Hard,
	}
}

// GeneratorOptions returns the options that apply this config to a
// maze.Generator.
func (c MazeConfig) GeneratorOptions() []maze.Option {
	return []maze.Option{
		maze.WithParams(c.Params()),
		maze.WithSizes(c.Sizes()),
	}
}
