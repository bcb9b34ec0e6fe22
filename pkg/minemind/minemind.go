package minemind

import (
	"context"
	"crypto/rand"
	"fmt"
	mrand "math/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/minemind/pkg/minemind/board"
	"github.com/cognicore/minemind/pkg/minemind/grid"
	"github.com/cognicore/minemind/pkg/minemind/internalerr"
	"github.com/cognicore/minemind/pkg/minemind/knowledge"
	"github.com/cognicore/minemind/pkg/minemind/store"
)

// Session drives one game: it asks the agent for moves, answers them with
// the board's observations, and records the outcome. The agent only ever
// sees (cell, nearby count) pairs; the board's ground truth stays on this
// side of the boundary.
type Session struct {
	board   *board.Board
	agent   *knowledge.Agent
	store   store.Store
	entropy *ulid.MonotonicEntropy

	moves     int
	safeMoves int
	guesses   int
	done      bool
	exploded  bool
}

// Options configures a Session.
type Options struct {
	// Board is required.
	Board *board.Board
	// Agent is optional; a fresh one sized to the board is created when nil.
	Agent *knowledge.Agent
	// Store is optional; results are persisted when set.
	Store store.Store
	// Rand seeds the default agent's guess selection. Ignored when Agent
	// is provided.
	Rand *mrand.Rand
}

// MoveKind distinguishes proven-safe reveals from guesses.
type MoveKind int

const (
	MoveSafe MoveKind = iota
	MoveGuess
)

// Move is one reveal made during a game.
type Move struct {
	Cell grid.Cell
	Kind MoveKind
	// Count is the nearby-mine observation for a survived reveal.
	Count int
	// Exploded is set when the reveal hit a mine and ended the game.
	Exploded bool
}

// Result summarizes a finished game.
type Result struct {
	ID           string
	Won          bool
	Exploded     bool
	Moves        int
	SafeMoves    int
	Guesses      int
	FlaggedMines int
	StartedAt    time.Time
	Duration     time.Duration
}

// New creates a session with the given dependencies.
func New(opts Options) (*Session, error) {
	if opts.Board == nil {
		return nil, fmt.Errorf("session needs a board: %w", internalerr.ErrInvalidConfig)
	}

	agent := opts.Agent
	size := opts.Board.Size()
	if agent == nil {
		if opts.Rand != nil {
			agent = knowledge.NewAgent(size.Height, size.Width, opts.Rand)
		} else {
			agent = knowledge.NewAgent(size.Height, size.Width)
		}
	} else if agent.Size() != size {
		return nil, fmt.Errorf("agent %v does not match board %v: %w", agent.Size(), size, internalerr.ErrInvalidConfig)
	}

	return &Session{
		board:   opts.Board,
		agent:   agent,
		store:   opts.Store,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}, nil
}

// Agent exposes the session's knowledge base for inspection.
func (s *Session) Agent() *knowledge.Agent { return s.agent }

// Board exposes the session's board.
func (s *Session) Board() *board.Board { return s.board }

// Done reports whether the game has ended.
func (s *Session) Done() bool { return s.done }

// Step makes one move: a proven-safe reveal when one exists, otherwise a
// guess. The observation is fed back into the agent. The second return is
// false when the game is over and no move was made.
func (s *Session) Step() (Move, bool, error) {
	if s.done {
		return Move{}, false, nil
	}

	move := Move{Kind: MoveSafe}
	cell, ok := s.agent.SafeMove()
	if !ok {
		cell, ok = s.agent.RandomMove()
		move.Kind = MoveGuess
	}
	if !ok {
		// Nothing left to reveal: a legitimate terminal state.
		s.done = true
		return Move{}, false, nil
	}
	move.Cell = cell

	s.moves++
	if move.Kind == MoveSafe {
		s.safeMoves++
	} else {
		s.guesses++
	}

	mine, err := s.board.IsMine(cell)
	if err != nil {
		return Move{}, false, err
	}
	if mine {
		move.Exploded = true
		s.exploded = true
		s.done = true
		return move, true, nil
	}

	count, err := s.board.NearbyMines(cell)
	if err != nil {
		return Move{}, false, err
	}
	move.Count = count

	if err := s.agent.AddKnowledge(cell, count); err != nil {
		return Move{}, false, err
	}

	if len(s.agent.MovesMade()) == s.board.Size().Area()-s.board.MineCount() {
		s.done = true
	}
	return move, true, nil
}

// Play runs the game to completion, flags every proven mine on the board,
// and persists the result when a store is configured.
func (s *Session) Play(ctx context.Context) (Result, error) {
	started := time.Now()

	for !s.done {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if _, _, err := s.Step(); err != nil {
			return Result{}, err
		}
	}

	flagged := 0
	for _, c := range s.agent.Mines() {
		if err := s.board.Flag(c); err != nil {
			return Result{}, err
		}
		flagged++
	}

	res := Result{
		ID:           ulid.MustNew(ulid.Now(), s.entropy).String(),
		Won:          !s.exploded && len(s.agent.MovesMade()) == s.board.Size().Area()-s.board.MineCount(),
		Exploded:     s.exploded,
		Moves:        s.moves,
		SafeMoves:    s.safeMoves,
		Guesses:      s.guesses,
		FlaggedMines: flagged,
		StartedAt:    started,
		Duration:     time.Since(started),
	}

	if s.store != nil {
		if err := s.store.SaveResult(ctx, toStoreResult(res, s.board)); err != nil {
			return Result{}, err
		}
	}
	return res, nil
}

func toStoreResult(r Result, b *board.Board) store.Result {
	size := b.Size()
	return store.Result{
		ID:           r.ID,
		Height:       size.Height,
		Width:        size.Width,
		MineCount:    b.MineCount(),
		Won:          r.Won,
		Exploded:     r.Exploded,
		Moves:        r.Moves,
		SafeMoves:    r.SafeMoves,
		Guesses:      r.Guesses,
		FlaggedMines: r.FlaggedMines,
		StartedAt:    r.StartedAt,
		Duration:     r.Duration,
	}
}
