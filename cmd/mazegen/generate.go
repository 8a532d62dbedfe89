package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-maze/internal/export"
	"github.com/vovakirdan/tui-maze/internal/maze"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

var (
	flagGenDifficulty string
	flagGenSize       int
	flagGenFormat     string
	flagGenSave       bool
	flagGenOut        string
	flagGenCellSize   int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a maze and print it",
	Long: `Generate one maze and print it to stdout.

Text output uses '#' for walls and '.' for open cells, one row per line.
YAML output adds the seed, start cell, open-cell target and attempt count,
which is enough to reproduce or replay the maze. PNG output draws the
maze to --out with the start marked and arrows on every exit.

Examples:
  mazegen generate
  mazegen generate --difficulty hard --seed 42
  mazegen generate --size 31 --format yaml
  mazegen generate --difficulty medium --save
  mazegen generate -d hard -f png --out maze.png`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&flagGenDifficulty, "difficulty", "d", "easy", "Difficulty tier: easy, medium, hard")
	generateCmd.Flags().IntVar(&flagGenSize, "size", 0, fmt.Sprintf("Explicit grid size N in [%d, %d] (overrides --difficulty)", maze.MinSize, maze.MaxSize))
	generateCmd.Flags().StringVarP(&flagGenFormat, "format", "f", "text", "Output format: text, yaml, png")
	generateCmd.Flags().BoolVar(&flagGenSave, "save", false, "Store the maze in the database")
	generateCmd.Flags().StringVarP(&flagGenOut, "out", "o", "", "Output file (required for png)")
	generateCmd.Flags().IntVar(&flagGenCellSize, "cell-size", export.DefaultCellSize, "Pixels per cell for png output")
}

// mazeExport is the YAML form of a generated maze.
type mazeExport struct {
	ID         int64         `yaml:"id,omitempty"`
	Difficulty string        `yaml:"difficulty,omitempty"`
	Size       int           `yaml:"size"`
	Seed       uint64        `yaml:"seed"`
	Start      coordExport   `yaml:"start"`
	Target     int           `yaml:"target"`
	Attempts   int           `yaml:"attempts"`
	Forced     bool          `yaml:"forced"`
	Exits      []coordExport `yaml:"exits"`
	Rows       []string      `yaml:"rows"`
}

type coordExport struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

func newMazeExport(d maze.Difficulty, seed uint64, res *maze.Result) mazeExport {
	exp := mazeExport{
		Size:     res.Grid.N,
		Seed:     seed,
		Start:    coordExport{Row: res.Start.Row, Col: res.Start.Col},
		Target:   res.Target,
		Attempts: res.Attempts,
		Forced:   res.Forced,
		Rows:     res.Grid.Rows(),
	}
	if d != maze.DifficultyNone {
		exp.Difficulty = d.String()
	}
	for _, c := range res.Grid.BorderOpenCells() {
		exp.Exits = append(exp.Exits, coordExport{Row: c.Row, Col: c.Col})
	}
	return exp
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger("mazegen")
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	switch flagGenFormat {
	case "text", "yaml":
	case "png":
		if flagGenOut == "" {
			return fmt.Errorf("png output needs --out")
		}
	default:
		return fmt.Errorf("unknown format %q (want text, yaml or png)", flagGenFormat)
	}

	seed := resolveSeed()
	opts := append(cfg.GeneratorOptions(), maze.WithLogger(logger))
	gen := maze.New(maze.NewSource(seed), opts...)

	var (
		d   maze.Difficulty
		res *maze.Result
	)
	if flagGenSize > 0 {
		res, err = gen.GenerateSize(flagGenSize)
	} else {
		d, err = maze.ParseDifficulty(flagGenDifficulty)
		if err == nil {
			res, err = gen.Generate(d)
		}
	}
	if err != nil {
		return err
	}

	logger.Info("generated maze",
		"size", res.Grid.N,
		"seed", seed,
		"attempts", res.Attempts,
		"forced", res.Forced,
		"interior_open", res.Grid.InteriorOpenCount(),
	)

	exp := newMazeExport(d, seed, res)

	if flagGenSave {
		if d == maze.DifficultyNone {
			return fmt.Errorf("--save needs a difficulty tier, not --size")
		}
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		id, err := store.SaveMaze(storage.NewMazeRecord(d, seed, res))
		if err != nil {
			return err
		}
		exp.ID = id
		logger.Info("saved maze", "id", id)
	}

	if flagGenFormat == "png" {
		return writeImage(res)
	}

	out := cmd.OutOrStdout()
	if flagGenOut != "" {
		f, err := os.Create(flagGenOut)
		if err != nil {
			return fmt.Errorf("creating %s: %w", flagGenOut, err)
		}
		defer f.Close()
		out = f
	}
	if flagGenFormat == "yaml" {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(exp); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	}

	_, err = fmt.Fprint(out, res.Grid.String())
	return err
}

func writeImage(res *maze.Result) error {
	f, err := os.Create(flagGenOut)
	if err != nil {
		return fmt.Errorf("creating %s: %w", flagGenOut, err)
	}
	if err := export.WritePNG(f, res, flagGenCellSize); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
