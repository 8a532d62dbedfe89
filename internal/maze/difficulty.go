// Package maze generates square wall/open grids for the maze game.
// It contains pure generation logic with no terminal or storage dependencies,
// so every pass can be tested in isolation with a scripted random source.
package maze

import (
	"fmt"
	"strings"
)

// Difficulty is a named tier that maps to a fixed grid size.
type Difficulty int

const (
	DifficultyNone Difficulty = iota
	DifficultyEasy
	DifficultyMedium
	DifficultyHard
)

// Grid size bounds the generator accepts.
const (
	MinSize = 6
	MaxSize = 255
)

// Tier sizes. Each tier maps to exactly one N.
const (
	SizeEasy   = 10
	SizeMedium = 15
	SizeHard   = 20
)

// Difficulties lists the playable tiers in ascending order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// String returns the lowercase tier name.
func (d Difficulty) String() string {
	switch d {
	case DifficultyNone:
		return "none"
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

// ParseDifficulty converts a tier name (case-insensitive) to a Difficulty.
// "none" is not a playable tier and is rejected like any unknown name.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy", "e":
		return DifficultyEasy, nil
	case "medium", "m", "normal":
		return DifficultyMedium, nil
	case "hard", "h":
		return DifficultyHard, nil
	}
	return DifficultyNone, invalidArgument(fmt.Sprintf("unknown difficulty %q", s))
}

// Size returns the grid size for a tier.
// Unrecognized tiers (including DifficultyNone) fail with an InvalidArgument error.
func Size(d Difficulty) (int, error) {
	return DefaultSizes().Size(d)
}

// SizeTable maps playable tiers to grid sizes. Configuration may override
// the defaults, but the mapping stays total over the three playable tiers.
type SizeTable map[Difficulty]int

// DefaultSizes returns the built-in tier table.
func DefaultSizes() SizeTable {
	return SizeTable{
		DifficultyEasy:   SizeEasy,
		DifficultyMedium: SizeMedium,
		DifficultyHard:   SizeHard,
	}
}

// Size looks up the grid size for d.
func (t SizeTable) Size(d Difficulty) (int, error) {
	n, ok := t[d]
	if !ok {
		return 0, invalidArgument(fmt.Sprintf("no grid size for difficulty %s", d))
	}
	if n < MinSize || n > MaxSize {
		return 0, invalidArgument(fmt.Sprintf("grid size %d for %s is outside [%d, %d]", n, d, MinSize, MaxSize))
	}
	return n, nil
}
