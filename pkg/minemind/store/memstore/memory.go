package memstore

import (
	"context"
	"sync"

	"github.com/cognicore/minemind/pkg/minemind/store"
)

// Store is an in-memory implementation of store.Store for tests and for
// runs that do not need persistence.
type Store struct {
	mu      sync.RWMutex
	order   []string
	results map[string]store.Result
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		results: make(map[string]store.Result),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveResult inserts or updates a result, keyed by ID.
func (s *Store) SaveResult(ctx context.Context, r store.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == "" {
		return nil
	}
	if _, ok := s.results[r.ID]; !ok {
		s.order = append(s.order, r.ID)
	}
	s.results[r.ID] = r
	return nil
}

// GetResult returns a result by ID.
func (s *Store) GetResult(ctx context.Context, id string) (store.Result, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.results[id]
	return r, ok, nil
}

// ListResults returns results in insertion order, newest last.
func (s *Store) ListResults(ctx context.Context, limit int) ([]store.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.order) {
		limit = len(s.order)
	}

	out := make([]store.Result, 0, limit)
	for _, id := range s.order[:limit] {
		out = append(out, s.results[id])
	}
	return out, nil
}

// Summary aggregates all stored results.
func (s *Store) Summary(ctx context.Context) (store.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum store.Summary
	var moves, guesses int
	for _, r := range s.results {
		sum.Games++
		if r.Won {
			sum.Wins++
		}
		moves += r.Moves
		guesses += r.Guesses
	}
	if sum.Games > 0 {
		sum.WinRate = float64(sum.Wins) / float64(sum.Games)
		sum.AvgMoves = float64(moves) / float64(sum.Games)
		sum.AvgGuesses = float64(guesses) / float64(sum.Games)
	}
	return sum, nil
}
