package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-maze/internal/export"
	"github.com/vovakirdan/tui-maze/internal/maze"
)

// execute runs the root command with fresh flag values and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	flagSeed = 0
	flagDBPath = filepath.Join(t.TempDir(), "mazes.db")
	flagConfig = ""
	flagLogLevel = "error"
	flagGenDifficulty = "easy"
	flagGenSize = 0
	flagGenFormat = "text"
	flagGenSave = false
	flagGenOut = ""
	flagGenCellSize = export.DefaultCellSize
	flagHistoryLimit = 20
	flagHistoryPlain = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestGenerateText(t *testing.T) {
	out, err := execute(t, "generate", "--difficulty", "medium", "--seed", "42")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	g, err := maze.ParseGrid(out)
	if err != nil {
		t.Fatalf("output is not a grid: %v\n%s", err, out)
	}
	if g.N != maze.SizeMedium {
		t.Errorf("size %d, expected %d", g.N, maze.SizeMedium)
	}

	again, _ := execute(t, "generate", "--difficulty", "medium", "--seed", "42")
	if again != out {
		t.Error("same seed produced different output")
	}
}

func TestGenerateYAML(t *testing.T) {
	out, err := execute(t, "generate", "--difficulty", "hard", "--seed", "7", "--format", "yaml")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	var exp mazeExport
	if err := yaml.Unmarshal([]byte(out), &exp); err != nil {
		t.Fatalf("invalid yaml: %v\n%s", err, out)
	}
	if exp.Difficulty != "hard" || exp.Size != maze.SizeHard || exp.Seed != 7 {
		t.Errorf("unexpected header %+v", exp)
	}
	if len(exp.Rows) != maze.SizeHard {
		t.Errorf("%d rows, expected %d", len(exp.Rows), maze.SizeHard)
	}
	if len(exp.Exits) < 1 || len(exp.Exits) > 2 {
		t.Errorf("expected 1 or 2 exits, got %v", exp.Exits)
	}

	g, err := maze.ParseGrid(strings.Join(exp.Rows, "\n"))
	if err != nil {
		t.Fatalf("rows do not parse: %v", err)
	}
	if !g.IsOpen(maze.At(exp.Start.Row, exp.Start.Col)) {
		t.Errorf("start %+v is not open", exp.Start)
	}
}

func TestGenerateExplicitSize(t *testing.T) {
	out, err := execute(t, "generate", "--size", "9", "--seed", "3")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if lines := strings.Count(out, "\n"); lines != 9 {
		t.Errorf("%d lines, expected 9", lines)
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown tier", []string{"generate", "--difficulty", "extreme"}},
		{"tiny size", []string{"generate", "--size", "4"}},
		{"huge size", []string{"generate", "--size", "100000"}},
		{"bad format", []string{"generate", "--format", "json"}},
		{"png without out", []string{"generate", "--format", "png"}},
		{"bad log level", []string{"generate", "--log-level", "loud"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := execute(t, tc.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestGeneratePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.png")
	out, err := execute(t, "generate", "-d", "hard", "--seed", "3", "-f", "png", "--out", path, "--cell-size", "4")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if out != "" {
		t.Errorf("png output should not print to stdout, got %q", out)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open png: %v", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if want := maze.SizeHard * 4; cfg.Width != want {
		t.Errorf("width %d, expected %d", cfg.Width, want)
	}
}

func TestGenerateTextToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.txt")
	if _, err := execute(t, "generate", "--seed", "5", "--out", path); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if _, err := maze.ParseGrid(string(data)); err != nil {
		t.Errorf("file is not a grid: %v", err)
	}
}

func TestGenerateSaveAndHistory(t *testing.T) {
	out, err := execute(t, "generate", "--difficulty", "easy", "--seed", "11", "--save", "--format", "yaml")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	var exp mazeExport
	if err := yaml.Unmarshal([]byte(out), &exp); err != nil {
		t.Fatalf("invalid yaml: %v", err)
	}
	if exp.ID == 0 {
		t.Error("saved maze should report its ID")
	}

	// execute resets --db, so point history at the same file.
	db := flagDBPath
	flagHistoryPlain = true
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"history", "easy", "--plain", "--db", db})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(buf.String(), "easy") || !strings.Contains(buf.String(), "11") {
		t.Errorf("history does not list the saved maze:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "No completed runs yet.") {
		t.Errorf("history should report no runs:\n%s", buf.String())
	}
}

func TestHistoryEmpty(t *testing.T) {
	out, err := execute(t, "history", "--plain")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(out, "No mazes recorded yet.") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestTiers(t *testing.T) {
	out, err := execute(t, "tiers")
	if err != nil {
		t.Fatalf("tiers failed: %v", err)
	}
	for _, want := range []string{"easy", "10x10", "20 of 64", "medium", "15x15", "hard", "20x20", "98 of 324"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTiersUsesConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "maze.yaml")
	writeFile(t, cfgPath, "tiers:\n  easy: 8\n")

	out, err := execute(t, "tiers", "--config", cfgPath)
	if err != nil {
		t.Fatalf("tiers failed: %v", err)
	}
	if !strings.Contains(out, "8x8") {
		t.Errorf("config override not applied:\n%s", out)
	}
}

func TestPortOf(t *testing.T) {
	tests := map[string]string{
		":23235":         "23235",
		"localhost:2222": "2222",
		"[::1]:22":       "22",
	}
	for addr, want := range tests {
		if got := portOf(addr); got != want {
			t.Errorf("portOf(%q) = %q, expected %q", addr, got, want)
		}
	}
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
