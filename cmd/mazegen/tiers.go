package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/maze"
)

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "List difficulty tiers",
	Long: `Shows each difficulty tier with its grid size and the number of
interior cells the generator opens at minimum, using the active config.`,
	Args: cobra.NoArgs,
	RunE: runTiers,
}

func runTiers(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	params := cfg.Params()
	sizes := cfg.Sizes()

	fmt.Fprintln(out, "Difficulty tiers:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-8s  %-7s  %s\n", "Tier", "Size", "Open target")
	fmt.Fprintf(out, "  %-8s  %-7s  %s\n", "----", "----", "-----------")

	for _, d := range maze.Difficulties() {
		n, err := sizes.Size(d)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %-8s  %-7s  %d of %d\n", d, fmt.Sprintf("%dx%d", n, n), params.Target(n), (n-2)*(n-2))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'mazegen play <tier>' to play.")
	return nil
}
