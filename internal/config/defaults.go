package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-maze/internal/maze"
)

//go:embed defaults/maze.yaml
var defaultMazeYAML []byte

// DefaultMazeConfig returns the built-in generator configuration.
func DefaultMazeConfig() MazeConfig {
	p := maze.DefaultParams()
	return MazeConfig{
		Tiers: TierConfig{
			Easy:   maze.SizeEasy,
			Medium: maze.SizeMedium,
			Hard:   maze.SizeHard,
		},
		OpenRatio:          p.OpenRatio,
		MaxAttempts:        p.MaxAttempts,
		FillAttemptsFactor: p.FillAttemptsFactor,
		WalkStepsFactor:    p.WalkStepsFactor,
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultMazeYAML
}
