// mazegen generates square mazes and lets you play them in the terminal.
//
// Usage:
//
//	mazegen generate          - Print a maze (text, YAML or PNG)
//	mazegen play [tier]       - Play mazes of one difficulty
//	mazegen menu              - Pick a difficulty interactively
//	mazegen serve             - Start SSH server for remote play
//	mazegen history           - Show stored mazes and best runs
//	mazegen tiers             - Show difficulty tiers and their sizes
//
// Global flags:
//
//	--seed <value>      - Set RNG seed for reproducible mazes (0 = time-based)
//	--db <path>         - Set database path (default: ~/.tui-maze/mazes.db)
//	--config <path>     - Use a specific config YAML
//	--log-level <lvl>   - debug, info, warn, error (default: warn)
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/maze"
	"github.com/vovakirdan/tui-maze/internal/platform/tui"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

var (
	// Global flags
	flagSeed     uint64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mazegen",
	Short: "Generate and play square mazes in your terminal",
	Long: `mazegen builds square wall/open mazes at three difficulty tiers and
lets you play them in the terminal or over SSH.

Available commands:
  generate - Print a maze as text or YAML, or draw it to PNG
  play     - Play mazes of one difficulty
  menu     - Interactive difficulty picker
  serve    - Start SSH server for remote play
  history  - Show stored mazes and best runs
  tiers    - Show difficulty tiers

Examples:
  mazegen generate --difficulty hard --seed 42
  mazegen play medium
  mazegen menu
  mazegen serve --ssh :2222
  mazegen history`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tui-maze/mazes.db", "Path to maze database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(tiersCmd)
}

// newLogger returns a stderr logger at the --log-level level.
func newLogger(prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(strings.ToLower(flagLogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// loadConfig loads the generator config from --config or the search path.
func loadConfig() (config.MazeConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// resolveSeed turns --seed 0 into a time-based seed.
func resolveSeed() uint64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return maze.TimeSeed()
}

// parseDifficultyArg parses an optional positional tier, defaulting to easy.
func parseDifficultyArg(args []string) (maze.Difficulty, error) {
	if len(args) == 0 {
		return maze.DifficultyEasy, nil
	}
	return maze.ParseDifficulty(args[0])
}

// newEnv builds the session environment shared by play and menu. The store
// is optional; failures to open it are logged and play continues.
func newEnv(logger *log.Logger) (*tui.Env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open maze database", "error", err)
		store = nil
	}

	player := os.Getenv("USER")
	return &tui.Env{
		Config: cfg,
		Store:  store,
		Logger: logger,
		Player: player,
		Seed:   flagSeed,
	}, nil
}

// terminalSize returns the size of stdout, or 80x24 if it is not a terminal.
func terminalSize() (width, height int) {
	width, height = 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}
