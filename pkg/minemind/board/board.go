package board

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/cognicore/minemind/pkg/minemind/grid"
	"github.com/cognicore/minemind/pkg/minemind/internalerr"
)

// Board holds the ground truth for one Minesweeper game: dimensions, mine
// locations, and the mines a player has flagged so far. The inference
// engine never sees this state; the driver reads it to answer the agent's
// moves and to validate them.
type Board struct {
	size    grid.Size
	mines   map[grid.Cell]struct{}
	flagged map[grid.Cell]struct{}
}

// New creates a board with mineCount mines placed uniformly at random
// using the given source. A nil source falls back to the global one.
func New(height, width, mineCount int, rng *rand.Rand) (*Board, error) {
	size := grid.Size{Height: height, Width: width}
	if !size.Valid() {
		return nil, fmt.Errorf("board %dx%d: %w", height, width, internalerr.ErrInvalidConfig)
	}
	if mineCount < 0 || mineCount > size.Area() {
		return nil, fmt.Errorf("mine count %d on %dx%d board: %w", mineCount, height, width, internalerr.ErrInvalidConfig)
	}

	intn := rand.Intn
	if rng != nil {
		intn = rng.Intn
	}

	b := &Board{
		size:    size,
		mines:   make(map[grid.Cell]struct{}, mineCount),
		flagged: make(map[grid.Cell]struct{}),
	}
	for len(b.mines) < mineCount {
		c := grid.Cell{Row: intn(height), Col: intn(width)}
		b.mines[c] = struct{}{}
	}
	return b, nil
}

// NewWithMines creates a board with mines at exactly the given cells.
// Duplicates collapse; out-of-bounds cells are rejected.
func NewWithMines(height, width int, mines []grid.Cell) (*Board, error) {
	size := grid.Size{Height: height, Width: width}
	if !size.Valid() {
		return nil, fmt.Errorf("board %dx%d: %w", height, width, internalerr.ErrInvalidConfig)
	}

	b := &Board{
		size:    size,
		mines:   make(map[grid.Cell]struct{}, len(mines)),
		flagged: make(map[grid.Cell]struct{}),
	}
	for _, c := range mines {
		if !size.Contains(c) {
			return nil, fmt.Errorf("mine %v: %w", c, internalerr.ErrOutOfBounds)
		}
		b.mines[c] = struct{}{}
	}
	return b, nil
}

// Size returns the board dimensions.
func (b *Board) Size() grid.Size { return b.size }

// MineCount returns the number of mines on the board.
func (b *Board) MineCount() int { return len(b.mines) }

// IsMine reports whether the cell holds a mine.
func (b *Board) IsMine(c grid.Cell) (bool, error) {
	if !b.size.Contains(c) {
		return false, fmt.Errorf("cell %v: %w", c, internalerr.ErrOutOfBounds)
	}
	_, ok := b.mines[c]
	return ok, nil
}

// NearbyMines counts the mines among the up-to-8 in-bounds neighbors of
// the cell, not counting the cell itself. This is the observation fed to
// the agent when the cell is revealed.
func (b *Board) NearbyMines(c grid.Cell) (int, error) {
	if !b.size.Contains(c) {
		return 0, fmt.Errorf("cell %v: %w", c, internalerr.ErrOutOfBounds)
	}
	count := 0
	for _, n := range b.size.Neighbors(c) {
		if _, ok := b.mines[n]; ok {
			count++
		}
	}
	return count, nil
}

// Flag marks a cell as a suspected mine.
func (b *Board) Flag(c grid.Cell) error {
	if !b.size.Contains(c) {
		return fmt.Errorf("flag %v: %w", c, internalerr.ErrOutOfBounds)
	}
	b.flagged[c] = struct{}{}
	return nil
}

// Won reports whether every mine, and nothing else, has been flagged.
func (b *Board) Won() bool {
	if len(b.flagged) != len(b.mines) {
		return false
	}
	for c := range b.mines {
		if _, ok := b.flagged[c]; !ok {
			return false
		}
	}
	return true
}

// Mines returns a sorted copy of the mine locations.
func (b *Board) Mines() []grid.Cell { return sorted(b.mines) }

// Flagged returns a sorted copy of the flagged cells.
func (b *Board) Flagged() []grid.Cell { return sorted(b.flagged) }

func sorted(set map[grid.Cell]struct{}) []grid.Cell {
	out := make([]grid.Cell, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return grid.Less(out[i], out[j])
	})
	return out
}
