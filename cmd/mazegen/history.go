package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-maze/internal/maze"
	"github.com/vovakirdan/tui-maze/internal/platform/tui"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryPlain bool
)

var historyCmd = &cobra.Command{
	Use:   "history [difficulty]",
	Short: "Show stored mazes and best runs",
	Long: `Show recently generated mazes from the database.

On a terminal this opens an interactive table; Tab cycles tiers.
With --plain, or when output is piped, it prints a text listing instead.
Naming a difficulty also lists the best completed runs for it.

Examples:
  mazegen history
  mazegen history hard --plain
  mazegen history --limit 50 --plain > mazes.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of mazes to list")
	historyCmd.Flags().BoolVar(&flagHistoryPlain, "plain", false, "Print text instead of the interactive table")
}

func runHistory(cmd *cobra.Command, args []string) error {
	d := maze.DifficultyNone
	if len(args) == 1 {
		parsed, err := maze.ParseDifficulty(args[0])
		if err != nil {
			return err
		}
		d = parsed
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	interactive := !flagHistoryPlain && cmd.OutOrStdout() == os.Stdout && term.IsTerminal(int(os.Stdout.Fd()))
	if interactive {
		width, height := terminalSize()
		_, err := tui.RunHistory(store, width, height)
		return err
	}

	return printHistory(cmd.OutOrStdout(), store, d, flagHistoryLimit)
}

// printHistory writes recent mazes, and best runs when d names a tier.
func printHistory(out io.Writer, store *storage.Store, d maze.Difficulty, limit int) error {
	mazes, err := store.RecentMazes(limit)
	if err != nil {
		return err
	}

	title := "Recent mazes"
	if d != maze.DifficultyNone {
		title = fmt.Sprintf("Recent mazes - %s", d)
	}
	fmt.Fprintln(out, title)
	fmt.Fprintln(out)

	shown := 0
	for _, rec := range mazes {
		if d != maze.DifficultyNone && rec.Difficulty != d {
			continue
		}
		if shown == 0 {
			fmt.Fprintf(out, "  %-6s  %-8s  %-6s  %-20s  %s\n", "ID", "Tier", "Size", "Seed", "Date")
			fmt.Fprintf(out, "  %-6s  %-8s  %-6s  %-20s  %s\n", "--", "----", "----", "----", "----")
		}
		fmt.Fprintf(out, "  %-6d  %-8s  %-6s  %-20d  %s\n",
			rec.ID,
			rec.Difficulty,
			fmt.Sprintf("%dx%d", rec.Grid.N, rec.Grid.N),
			rec.Seed,
			rec.CreatedAt.Format("2006-01-02 15:04"),
		)
		shown++
	}

	if shown == 0 {
		fmt.Fprintln(out, "No mazes recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'mazegen play' or 'mazegen generate --save' to start.")
		return nil
	}

	if d == maze.DifficultyNone {
		return nil
	}

	runs, err := store.BestRuns(d, 10)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Best runs - %s\n", d)
	fmt.Fprintln(out)
	if len(runs) == 0 {
		fmt.Fprintln(out, "No completed runs yet.")
		return nil
	}
	fmt.Fprintf(out, "  %-4s  %-12s  %-6s  %-8s  %s\n", "Rank", "Player", "Moves", "Time", "Maze")
	fmt.Fprintf(out, "  %-4s  %-12s  %-6s  %-8s  %s\n", "----", "------", "-----", "----", "----")
	for i, run := range runs {
		fmt.Fprintf(out, "  %-4d  %-12s  %-6d  %-8s  #%d\n", i+1, run.Player, run.Moves, run.Duration, run.MazeID)
	}
	return nil
}
