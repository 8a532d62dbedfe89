package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a difficulty picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to pick a difficulty and Enter to play. Esc on the
play screen returns to the menu; Tab on the menu opens the maze history.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play selected difficulty
  Tab          - Maze history
  Q            - Quit

Examples:
  mazegen menu
  mazegen menu --db ./mazes.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
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
	return tui.RunSession(env, width, height)
}
