package maze

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"
)

// Params configures the generator.
type Params struct {
	OpenRatio          float64 // Fraction of interior cells to open (default 0.3)
	MaxAttempts        int     // Attempts before GenerationFailed
	FillAttemptsFactor int     // Fill pass gives up after factor*N*N draws
	WalkStepsFactor    int     // Connecting walk gives up after factor*N*N steps
}

// DefaultParams returns the standard generator settings.
func DefaultParams() Params {
	return Params{
		OpenRatio:          0.3,
		MaxAttempts:        10,
		FillAttemptsFactor: 64,
		WalkStepsFactor:    16,
	}
}

// Target returns ceil(OpenRatio * (n-2)^2), the number of interior cells the
// generator opens at minimum.
func (p Params) Target(n int) int {
	interior := (n - 2) * (n - 2)
	// Trim float noise so 0.3*100 stays 30.
	return int(math.Ceil(float64(interior)*p.OpenRatio - 1e-9))
}

// Pass identifies a generation stage.
type Pass int

const (
	PassCarve Pass = iota
	PassBorderForce
	PassFill
	PassBorderAccess
)

func (p Pass) String() string {
	switch p {
	case PassCarve:
		return "carve"
	case PassBorderForce:
		return "border-force"
	case PassFill:
		return "fill"
	case PassBorderAccess:
		return "border-access"
	}
	return fmt.Sprintf("pass(%d)", int(p))
}

// PassHook observes the grid after each pass. It receives a copy, never the
// grid under construction.
type PassHook func(p Pass, g *Grid)

// Result is a finished maze plus facts about how it was built.
type Result struct {
	Grid          *Grid
	Start         Coord // Carving start cell, always Open
	Target        int   // Interior open-cell target
	ReachedBorder bool  // Carving touched the inner ring on its own
	Forced        bool  // Border-forcing pass ran
	ForceReached  bool  // Border-forcing walk landed on the inner ring
	Attempts      int   // Attempts used, including the successful one
}

// Generator builds mazes from a single random source. It is not safe for
// concurrent use; create one per goroutine.
type Generator struct {
	src    Source
	params Params
	sizes  SizeTable
	logger *log.Logger
	hook   PassHook
}

// Option configures a Generator.
type Option func(*Generator)

// WithParams overrides DefaultParams. Zero fields keep their defaults.
func WithParams(p Params) Option {
	return func(g *Generator) {
		def := DefaultParams()
		if p.OpenRatio <= 0 {
			p.OpenRatio = def.OpenRatio
		}
		if p.MaxAttempts <= 0 {
			p.MaxAttempts = def.MaxAttempts
		}
		if p.FillAttemptsFactor <= 0 {
			p.FillAttemptsFactor = def.FillAttemptsFactor
		}
		if p.WalkStepsFactor <= 0 {
			p.WalkStepsFactor = def.WalkStepsFactor
		}
		g.params = p
	}
}

// WithSizes replaces the tier size table used by Generate.
func WithSizes(t SizeTable) Option {
	return func(g *Generator) {
		if len(t) > 0 {
			g.sizes = t
		}
	}
}

// WithLogger sets the logger used for retry diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithPassHook registers a hook called after every pass.
func WithPassHook(h PassHook) Option {
	return func(g *Generator) {
		g.hook = h
	}
}

// New creates a generator drawing from src.
func New(src Source, opts ...Option) *Generator {
	g := &Generator{
		src:    src,
		params: DefaultParams(),
		sizes:  DefaultSizes(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Params returns the effective parameters.
func (g *Generator) Params() Params {
	return g.params
}

// Generate builds a maze for a difficulty tier.
func (g *Generator) Generate(d Difficulty) (*Result, error) {
	n, err := g.sizes.Size(d)
	if err != nil {
		return nil, err
	}
	return g.GenerateSize(n)
}

// GenerateSize builds an n×n maze.
//
// Attempts that hit an assumption violation are discarded and generation
// restarts, drawing fresh values from the same source. After MaxAttempts
// failures it returns a GenerationFailed error.
func (g *Generator) GenerateSize(n int) (*Result, error) {
	if n < MinSize || n > MaxSize {
		return nil, invalidArgument(fmt.Sprintf("grid size %d is outside [%d, %d]", n, MinSize, MaxSize))
	}
	if g.src == nil {
		return nil, invalidArgument("nil random source")
	}

	var lastErr error
	for attempt := 1; attempt <= g.params.MaxAttempts; attempt++ {
		res, err := g.attempt(n)
		if err == nil {
			res.Attempts = attempt
			return res, nil
		}
		var f faultError
		if !errors.As(err, &f) {
			return nil, err
		}
		lastErr = err
		g.logger.Debug("discarding maze attempt", "size", n, "attempt", attempt, "reason", err)
	}

	g.logger.Error("maze generation failed", "size", n, "attempts", g.params.MaxAttempts, "error", lastErr)
	return nil, &Error{
		Kind:    KindGenerationFailed,
		Message: fmt.Sprintf("no valid %dx%d maze after %d attempts", n, n, g.params.MaxAttempts),
		Err:     lastErr,
	}
}

// attempt runs every pass once on a fresh grid.
func (g *Generator) attempt(n int) (*Result, error) {
	b := &builder{
		grid:   NewGrid(n),
		src:    g.src,
		params: g.params,
		target: g.params.Target(n),
	}

	b.carve()
	g.notify(PassCarve, b.grid)

	res := &Result{
		Start:         b.start,
		Target:        b.target,
		ReachedBorder: b.reachedBorder,
	}

	if !b.reachedBorder {
		if err := b.forcePathToBorder(); err != nil {
			return nil, err
		}
		res.Forced = true
		res.ForceReached = b.forceReached
		g.notify(PassBorderForce, b.grid)
	}

	if err := b.fillToTarget(); err != nil {
		return nil, err
	}
	g.notify(PassFill, b.grid)

	if err := b.ensureBorderAccess(); err != nil {
		return nil, err
	}
	g.notify(PassBorderAccess, b.grid)

	res.Grid = b.grid
	return res, nil
}

func (g *Generator) notify(p Pass, grid *Grid) {
	if g.hook != nil {
		g.hook(p, grid.Clone())
	}
}

// Generate builds a maze for d with a PCG source seeded by seed.
func Generate(d Difficulty, seed uint64, opts ...Option) (*Result, error) {
	return New(NewSource(seed), opts...).Generate(d)
}
