// Package storage provides SQLite-based persistence for generated mazes and
// completed runs. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-maze/internal/maze"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// MazeRecord is a generated maze as stored on disk.
type MazeRecord struct {
	ID         int64
	Difficulty maze.Difficulty
	Seed       uint64
	Grid       *maze.Grid
	Start      maze.Coord
	Attempts   int
	CreatedAt  time.Time
}

// NewMazeRecord builds a record from a generation result.
func NewMazeRecord(d maze.Difficulty, seed uint64, res *maze.Result) MazeRecord {
	return MazeRecord{
		Difficulty: d,
		Seed:       seed,
		Grid:       res.Grid,
		Start:      res.Start,
		Attempts:   res.Attempts,
	}
}

// RunRecord is one play-through of a stored maze.
type RunRecord struct {
	ID         int64
	MazeID     int64
	Difficulty maze.Difficulty
	Player     string
	Session    string // terminal session that played the run
	Moves      int
	Duration   time.Duration
	Completed  bool
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS mazes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			difficulty TEXT NOT NULL,
			size INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			grid TEXT NOT NULL,
			start_row INTEGER NOT NULL,
			start_col INTEGER NOT NULL,
			attempts INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_mazes_difficulty ON mazes(difficulty);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			maze_id INTEGER NOT NULL REFERENCES mazes(id),
			difficulty TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			session TEXT NOT NULL DEFAULT '',
			moves INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_maze_id ON runs(maze_id);
		CREATE INDEX IF NOT EXISTS idx_runs_session ON runs(session);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(difficulty, completed, moves, duration_ms);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveMaze records a generated maze. Returns the ID of the inserted record.
func (s *Store) SaveMaze(rec MazeRecord) (int64, error) {
	if rec.Grid == nil {
		return 0, errors.New("storage: cannot save maze: nil grid")
	}

	result, err := s.db.Exec(
		`INSERT INTO mazes (difficulty, size, seed, grid, start_row, start_col, attempts)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.Difficulty.String(),
		rec.Grid.N,
		int64(rec.Seed), // bit pattern preserved; SQLite integers are signed
		rec.Grid.String(),
		rec.Start.Row,
		rec.Start.Col,
		rec.Attempts,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save maze: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const mazeColumns = `id, difficulty, seed, grid, start_row, start_col, attempts, created_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanMaze(row rowScanner) (MazeRecord, error) {
	var (
		rec        MazeRecord
		difficulty string
		seed       int64
		grid       string
		createdAt  any
	)
	if err := row.Scan(&rec.ID, &difficulty, &seed, &grid, &rec.Start.Row, &rec.Start.Col, &rec.Attempts, &createdAt); err != nil {
		return rec, err
	}

	d, err := maze.ParseDifficulty(difficulty)
	if err != nil {
		return rec, fmt.Errorf("storage: maze %d: %w", rec.ID, err)
	}
	g, err := maze.ParseGrid(grid)
	if err != nil {
		return rec, fmt.Errorf("storage: maze %d: %w", rec.ID, err)
	}

	rec.Difficulty = d
	rec.Seed = uint64(seed)
	rec.Grid = g
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}

// MazeByID retrieves a stored maze. Returns nil if no maze has that ID.
func (s *Store) MazeByID(id int64) (*MazeRecord, error) {
	rec, err := scanMaze(s.db.QueryRow(
		`SELECT `+mazeColumns+` FROM mazes WHERE id = ?`,
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query maze: %w", err)
	}
	return &rec, nil
}

// RecentMazes retrieves the most recently generated mazes, newest first.
func (s *Store) RecentMazes(limit int) ([]MazeRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+mazeColumns+` FROM mazes ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query mazes: %w", err)
	}
	defer rows.Close()

	var records []MazeRecord
	for rows.Next() {
		rec, err := scanMaze(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// SaveRun records a play-through. Returns the ID of the inserted record.
func (s *Store) SaveRun(run RunRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (maze_id, difficulty, player, session, moves, duration_ms, completed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.MazeID,
		run.Difficulty.String(),
		run.Player,
		run.Session,
		run.Moves,
		run.Duration.Milliseconds(),
		run.Completed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// BestRuns retrieves the best completed runs for a difficulty.
// Results are ordered by fewest moves, then shortest time.
func (s *Store) BestRuns(d maze.Difficulty, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE difficulty = ? AND completed = 1
		 ORDER BY moves ASC, duration_ms ASC, id ASC
		 LIMIT ?`,
		d.String(), limit,
	)
}

// SessionRuns returns every run recorded by one session, oldest first.
func (s *Store) SessionRuns(session string) ([]RunRecord, error) {
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE session = ?
		 ORDER BY id ASC`,
		session,
	)
}

const runColumns = "id, maze_id, difficulty, player, session, moves, duration_ms, completed, created_at"

func (s *Store) queryRuns(query string, args ...any) ([]RunRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var (
			run        RunRecord
			difficulty string
			durationMS int64
			createdAt  any
		)
		if err := rows.Scan(&run.ID, &run.MazeID, &difficulty, &run.Player, &run.Session, &run.Moves, &durationMS, &run.Completed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		d, err := maze.ParseDifficulty(difficulty)
		if err != nil {
			return nil, fmt.Errorf("storage: run %d: %w", run.ID, err)
		}
		run.Difficulty = d
		run.Duration = time.Duration(durationMS) * time.Millisecond
		run.CreatedAt = parseTime(createdAt)
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// DifficultyStats contains aggregated statistics for one difficulty tier.
type DifficultyStats struct {
	Difficulty maze.Difficulty
	Mazes      int
	Runs       int
	Completed  int
	BestMoves  int // 0 if no completed run
	LastPlayed time.Time
}

// Stats retrieves aggregated statistics for a difficulty tier.
func (s *Store) Stats(d maze.Difficulty) (*DifficultyStats, error) {
	stats := &DifficultyStats{Difficulty: d}

	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM mazes WHERE difficulty = ?`,
		d.String(),
	).Scan(&stats.Mazes)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot count mazes: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(completed), 0),
		        COALESCE(MIN(CASE WHEN completed = 1 THEN moves END), 0),
		        MAX(created_at)
		 FROM runs WHERE difficulty = ?`,
		d.String(),
	).Scan(&stats.Runs, &stats.Completed, &stats.BestMoves, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// parseTime handles the DATETIME column coming back as either time.Time or
// a string, depending on driver settings.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
