package store

import (
	"context"
	"time"
)

// Store persists finished game results for the simulation harness. Only
// outcomes are stored; the knowledge base itself is never persisted.
type Store interface {
	Close() error

	SaveResult(ctx context.Context, r Result) error
	GetResult(ctx context.Context, id string) (Result, bool, error)
	ListResults(ctx context.Context, limit int) ([]Result, error)
	Summary(ctx context.Context) (Summary, error)
}

// Result is the record of one completed game.
type Result struct {
	ID           string
	Height       int
	Width        int
	MineCount    int
	Won          bool
	Exploded     bool
	Moves        int
	SafeMoves    int
	Guesses      int
	FlaggedMines int
	StartedAt    time.Time
	Duration     time.Duration
}

// Summary aggregates stored results.
type Summary struct {
	Games      int
	Wins       int
	WinRate    float64
	AvgMoves   float64
	AvgGuesses float64
}
