package board

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/cognicore/minemind/pkg/minemind/grid"
	"github.com/cognicore/minemind/pkg/minemind/internalerr"
)

func TestNewPlacesExactCount(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	b, err := New(8, 8, 10, rng)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if b.MineCount() != 10 {
		t.Errorf("Expected 10 mines, got %d", b.MineCount())
	}
	for _, c := range b.Mines() {
		if !b.Size().Contains(c) {
			t.Errorf("Mine %v out of bounds", c)
		}
	}
}

func TestNewRejectsBadDimensions(t *testing.T) {
	if _, err := New(0, 8, 1, nil); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for zero height, got %v", err)
	}
	if _, err := New(4, 4, 17, nil); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for too many mines, got %v", err)
	}
	if _, err := New(4, 4, -1, nil); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for negative mines, got %v", err)
	}
}

func TestNearbyMines(t *testing.T) {
	b, err := NewWithMines(4, 4, []grid.Cell{{Row: 1, Col: 1}, {Row: 2, Col: 2}, {Row: 3, Col: 3}})
	if err != nil {
		t.Fatalf("NewWithMines failed: %v", err)
	}

	cases := []struct {
		cell grid.Cell
		want int
	}{
		{grid.Cell{Row: 0, Col: 0}, 1},
		{grid.Cell{Row: 1, Col: 0}, 1},
		{grid.Cell{Row: 1, Col: 1}, 1},
		{grid.Cell{Row: 2, Col: 2}, 2},
		{grid.Cell{Row: 3, Col: 2}, 2},
	}
	for _, tc := range cases {
		got, err := b.NearbyMines(tc.cell)
		if err != nil {
			t.Fatalf("NearbyMines(%v) failed: %v", tc.cell, err)
		}
		if got != tc.want {
			t.Errorf("NearbyMines(%v): expected %d, got %d", tc.cell, tc.want, got)
		}
	}
}

func TestIsMine(t *testing.T) {
	b, err := NewWithMines(2, 2, []grid.Cell{{Row: 0, Col: 1}})
	if err != nil {
		t.Fatalf("NewWithMines failed: %v", err)
	}

	mine, err := b.IsMine(grid.Cell{Row: 0, Col: 1})
	if err != nil || !mine {
		t.Errorf("Expected (0, 1) to be a mine, got %v, %v", mine, err)
	}
	mine, err = b.IsMine(grid.Cell{Row: 0, Col: 0})
	if err != nil || mine {
		t.Errorf("Expected (0, 0) not a mine, got %v, %v", mine, err)
	}
	if _, err := b.IsMine(grid.Cell{Row: 5, Col: 5}); !errors.Is(err, internalerr.ErrOutOfBounds) {
		t.Errorf("Expected ErrOutOfBounds, got %v", err)
	}
}

func TestWon(t *testing.T) {
	b, err := NewWithMines(3, 3, []grid.Cell{{Row: 0, Col: 0}, {Row: 2, Col: 2}})
	if err != nil {
		t.Fatalf("NewWithMines failed: %v", err)
	}

	if b.Won() {
		t.Error("Expected new game not won")
	}
	if err := b.Flag(grid.Cell{Row: 0, Col: 0}); err != nil {
		t.Fatalf("Flag failed: %v", err)
	}
	if b.Won() {
		t.Error("Expected game not won with one mine unflagged")
	}
	if err := b.Flag(grid.Cell{Row: 2, Col: 2}); err != nil {
		t.Fatalf("Flag failed: %v", err)
	}
	if !b.Won() {
		t.Error("Expected game won with every mine flagged")
	}
}

func TestWonRequiresExactFlags(t *testing.T) {
	b, err := NewWithMines(3, 3, []grid.Cell{{Row: 0, Col: 0}})
	if err != nil {
		t.Fatalf("NewWithMines failed: %v", err)
	}

	b.Flag(grid.Cell{Row: 0, Col: 0})
	b.Flag(grid.Cell{Row: 1, Col: 1})

	if b.Won() {
		t.Error("Expected a wrong flag to block the win")
	}
}

func TestNewWithMinesRejectsOutOfBounds(t *testing.T) {
	if _, err := NewWithMines(2, 2, []grid.Cell{{Row: 5, Col: 5}}); !errors.Is(err, internalerr.ErrOutOfBounds) {
		t.Errorf("Expected ErrOutOfBounds, got %v", err)
	}
}
