package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [difficulty]",
	Short: "Play mazes of one difficulty",
	Long: `Generate a maze and play it. Reach any opening in the outer wall to win.

Controls:
  Arrows/WASD/HJKL  - Move
  N                 - New maze
  R                 - Back to the start of this maze
  Esc               - Leave (same as Q here)
  ?                 - Show all keys
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - 10x10 (default)
  medium - 15x15
  hard   - 20x20

Examples:
  mazegen play
  mazegen play hard
  mazegen play medium --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	d, err := parseDifficultyArg(args)
	if err != nil {
		return err
	}

	logger, err := newLogger("mazegen")
	if err != nil {
		return err
	}
	env, err := newEnv(logger)
	if err != nil {
		return err
	}
	if env.Store != nil {
		defer env.Store.Close()
	}

	width, height := terminalSize()
	return tui.RunPlay(env, d, width, height)
}
