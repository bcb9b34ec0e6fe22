package sqlite

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/minemind/pkg/minemind/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite results database with WAL mode enabled, creating
// the schema if needed.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS results (
	id TEXT PRIMARY KEY,
	height INTEGER NOT NULL,
	width INTEGER NOT NULL,
	mine_count INTEGER NOT NULL,
	won INTEGER NOT NULL,
	exploded INTEGER NOT NULL,
	moves INTEGER NOT NULL,
	safe_moves INTEGER NOT NULL,
	guesses INTEGER NOT NULL,
	flagged_mines INTEGER NOT NULL,
	started_at TEXT NOT NULL,
	duration_ns INTEGER NOT NULL
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveResult inserts or updates a game result
func (s *sqliteStore) SaveResult(ctx context.Context, r store.Result) error {
	const stmt = `
INSERT INTO results (id, height, width, mine_count, won, exploded, moves, safe_moves, guesses, flagged_mines, started_at, duration_ns)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	height=excluded.height,
	width=excluded.width,
	mine_count=excluded.mine_count,
	won=excluded.won,
	exploded=excluded.exploded,
	moves=excluded.moves,
	safe_moves=excluded.safe_moves,
	guesses=excluded.guesses,
	flagged_mines=excluded.flagged_mines,
	started_at=excluded.started_at,
	duration_ns=excluded.duration_ns;
`

	_, err := s.db.ExecContext(
		ctx,
		stmt,
		r.ID,
		r.Height,
		r.Width,
		r.MineCount,
		boolToInt(r.Won),
		boolToInt(r.Exploded),
		r.Moves,
		r.SafeMoves,
		r.Guesses,
		r.FlaggedMines,
		r.StartedAt.UTC().Format(time.RFC3339Nano),
		r.Duration.Nanoseconds(),
	)
	return err
}

// GetResult returns a result by ID
func (s *sqliteStore) GetResult(ctx context.Context, id string) (store.Result, bool, error) {
	const stmt = `
SELECT id, height, width, mine_count, won, exploded, moves, safe_moves, guesses, flagged_mines, started_at, duration_ns
FROM results WHERE id = ?;
`

	r, err := scanResult(s.db.QueryRowContext(ctx, stmt, id))
	if err == sql.ErrNoRows {
		return store.Result{}, false, nil
	}
	if err != nil {
		return store.Result{}, false, err
	}
	return r, true, nil
}

// ListResults returns up to limit results, newest first
func (s *sqliteStore) ListResults(ctx context.Context, limit int) ([]store.Result, error) {
	if limit <= 0 {
		limit = 50
	}

	const stmt = `
SELECT id, height, width, mine_count, won, exploded, moves, safe_moves, guesses, flagged_mines, started_at, duration_ns
FROM results ORDER BY started_at DESC LIMIT ?;
`

	rows, err := s.db.QueryContext(ctx, stmt, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Summary aggregates all stored results
func (s *sqliteStore) Summary(ctx context.Context) (store.Summary, error) {
	const stmt = `
SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(AVG(moves), 0), COALESCE(AVG(guesses), 0)
FROM results;
`

	var sum store.Summary
	err := s.db.QueryRowContext(ctx, stmt).Scan(&sum.Games, &sum.Wins, &sum.AvgMoves, &sum.AvgGuesses)
	if err != nil {
		return store.Summary{}, err
	}
	if sum.Games > 0 {
		sum.WinRate = float64(sum.Wins) / float64(sum.Games)
	}
	return sum, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResult(row rowScanner) (store.Result, error) {
	var (
		r          store.Result
		won        int
		exploded   int
		startedAt  string
		durationNS int64
	)
	err := row.Scan(
		&r.ID,
		&r.Height,
		&r.Width,
		&r.MineCount,
		&won,
		&exploded,
		&r.Moves,
		&r.SafeMoves,
		&r.Guesses,
		&r.FlaggedMines,
		&startedAt,
		&durationNS,
	)
	if err != nil {
		return store.Result{}, err
	}

	r.Won = won != 0
	r.Exploded = exploded != 0
	r.Duration = time.Duration(durationNS)
	if ts, perr := time.Parse(time.RFC3339Nano, startedAt); perr == nil {
		r.StartedAt = ts
	}
	return r, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
