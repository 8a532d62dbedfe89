package tui

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/game"
	"github.com/vovakirdan/tui-maze/internal/maze"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

// Env carries what the screens need to build and record rounds.
// One Env belongs to one terminal session.
type Env struct {
	Config config.MazeConfig
	Store  *storage.Store // nil disables persistence
	Logger *log.Logger
	Player string

	// Session tags stored runs; assigned on first use when empty.
	Session string

	// Seed is used for the first maze only; 0 means time-based.
	Seed uint64
}

// Round is a generated maze being played.
type Round struct {
	Game   *game.Game
	Result *maze.Result
	Seed   uint64
	MazeID int64 // 0 if the maze was not stored
}

func (e *Env) logger() *log.Logger {
	if e.Logger == nil {
		e.Logger = log.New(io.Discard)
	}
	return e.Logger
}

// SessionID returns the session identifier, generating one if needed.
func (e *Env) SessionID() string {
	if e.Session == "" {
		e.Session = uuid.NewString()
	}
	return e.Session
}

// NewRound generates a maze for d, stores it, and starts a game on it.
func (e *Env) NewRound(d maze.Difficulty) (*Round, error) {
	seed := e.Seed
	e.Seed = 0
	if seed == 0 {
		seed = maze.TimeSeed()
	}

	opts := append(e.Config.GeneratorOptions(), maze.WithLogger(e.logger()))
	res, err := maze.New(maze.NewSource(seed), opts...).Generate(d)
	if err != nil {
		return nil, err
	}

	g, err := game.New(res, d)
	if err != nil {
		return nil, err
	}

	round := &Round{Game: g, Result: res, Seed: seed}
	if e.Store != nil {
		id, err := e.Store.SaveMaze(storage.NewMazeRecord(d, seed, res))
		if err != nil {
			e.logger().Warn("could not save maze", "error", err)
		} else {
			round.MazeID = id
		}
	}

	e.logger().Debug("maze ready",
		"difficulty", d,
		"seed", seed,
		"attempts", res.Attempts,
		"forced", res.Forced,
	)
	return round, nil
}

// RecordRun stores the outcome of a round. Rounds whose maze was not stored
// are skipped.
func (e *Env) RecordRun(r *Round) {
	if e.Store == nil || r == nil || r.MazeID == 0 {
		return
	}

	snap := r.Game.Snapshot()
	_, err := e.Store.SaveRun(storage.RunRecord{
		MazeID:     r.MazeID,
		Difficulty: snap.Difficulty,
		Player:     e.Player,
		Session:    e.SessionID(),
		Moves:      snap.Moves,
		Duration:   snap.Elapsed,
		Completed:  snap.Status == game.StatusWon,
	})
	if err != nil {
		e.logger().Warn("could not save run", "error", err)
	}
}
