package knowledge

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/cognicore/minemind/pkg/minemind/grid"
	"github.com/cognicore/minemind/pkg/minemind/internalerr"
)

func containsCell(cells []grid.Cell, c grid.Cell) bool {
	for _, x := range cells {
		if x == c {
			return true
		}
	}
	return false
}

func TestAddKnowledgeZeroCount(t *testing.T) {
	a := NewAgent(3, 3)

	if err := a.AddKnowledge(grid.Cell{Row: 1, Col: 1}, 0); err != nil {
		t.Fatalf("AddKnowledge failed: %v", err)
	}

	// A zero count proves every neighbor safe immediately.
	safes := a.Safes()
	if len(safes) != 9 {
		t.Fatalf("Expected all 9 cells safe, got %d: %v", len(safes), safes)
	}
	if len(a.Mines()) != 0 {
		t.Errorf("Expected no mines, got %v", a.Mines())
	}
	if len(a.Sentences()) != 0 {
		t.Errorf("Expected no live sentences, got %v", a.Sentences())
	}
}

func TestAddKnowledgeAllMines(t *testing.T) {
	a := NewAgent(2, 2)

	if err := a.AddKnowledge(grid.Cell{Row: 0, Col: 0}, 3); err != nil {
		t.Fatalf("AddKnowledge failed: %v", err)
	}

	mines := a.Mines()
	for _, c := range []grid.Cell{{Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 1}} {
		if !containsCell(mines, c) {
			t.Errorf("Expected %v proven a mine, mines: %v", c, mines)
		}
	}
}

func TestSubsetReductionProvesSafes(t *testing.T) {
	a := NewAgent(8, 8)

	// {(0,1),(1,0),(1,1)} = 1
	if err := a.AddKnowledge(grid.Cell{Row: 0, Col: 0}, 1); err != nil {
		t.Fatalf("AddKnowledge failed: %v", err)
	}
	// After marking (0,1) safe: {(1,0),(1,1)} = 1 is a subset of the new
	// sentence {(0,2),(1,0),(1,1),(1,2)} = 1, so the difference
	// {(0,2),(1,2)} must hold zero mines.
	if err := a.AddKnowledge(grid.Cell{Row: 0, Col: 1}, 1); err != nil {
		t.Fatalf("AddKnowledge failed: %v", err)
	}

	safes := a.Safes()
	for _, c := range []grid.Cell{{Row: 0, Col: 2}, {Row: 1, Col: 2}} {
		if !containsCell(safes, c) {
			t.Errorf("Expected %v proven safe by subset reduction, safes: %v", c, safes)
		}
	}
	if len(a.Mines()) != 0 {
		t.Errorf("Expected no mines, got %v", a.Mines())
	}
}

func TestInferenceProvesMine(t *testing.T) {
	a := NewAgent(2, 3)

	if err := a.AddKnowledge(grid.Cell{Row: 0, Col: 0}, 0); err != nil {
		t.Fatalf("AddKnowledge failed: %v", err)
	}
	// Neighbors of (1,2) are {(0,1),(0,2),(1,1)}; two are already safe,
	// so the remaining cell carries the mine.
	if err := a.AddKnowledge(grid.Cell{Row: 1, Col: 2}, 1); err != nil {
		t.Fatalf("AddKnowledge failed: %v", err)
	}

	mines := a.Mines()
	if len(mines) != 1 || mines[0] != (grid.Cell{Row: 0, Col: 2}) {
		t.Errorf("Expected (0, 2) proven a mine, got %v", mines)
	}
}

func TestMonotonicity(t *testing.T) {
	a := NewAgent(8, 8)

	observations := []struct {
		cell  grid.Cell
		count int
	}{
		{grid.Cell{Row: 0, Col: 0}, 1},
		{grid.Cell{Row: 0, Col: 1}, 1},
		{grid.Cell{Row: 2, Col: 2}, 0},
	}

	var prevSafes, prevMines, prevMoves []grid.Cell
	for _, obs := range observations {
		if err := a.AddKnowledge(obs.cell, obs.count); err != nil {
			t.Fatalf("AddKnowledge(%v, %d) failed: %v", obs.cell, obs.count, err)
		}

		for _, c := range prevSafes {
			if !containsCell(a.Safes(), c) {
				t.Errorf("Safe cell %v disappeared after %v", c, obs.cell)
			}
		}
		for _, c := range prevMines {
			if !containsCell(a.Mines(), c) {
				t.Errorf("Mine cell %v disappeared after %v", c, obs.cell)
			}
		}
		for _, c := range prevMoves {
			if !containsCell(a.MovesMade(), c) {
				t.Errorf("Move %v disappeared after %v", c, obs.cell)
			}
		}
		prevSafes, prevMines, prevMoves = a.Safes(), a.Mines(), a.MovesMade()
	}
}

func TestRepeatedObservationIsStable(t *testing.T) {
	a := NewAgent(8, 8)

	if err := a.AddKnowledge(grid.Cell{Row: 0, Col: 0}, 1); err != nil {
		t.Fatalf("AddKnowledge failed: %v", err)
	}
	if err := a.AddKnowledge(grid.Cell{Row: 0, Col: 1}, 1); err != nil {
		t.Fatalf("AddKnowledge failed: %v", err)
	}

	safes, mines, moves := a.Safes(), a.Mines(), a.MovesMade()

	// Feeding the same observation again must not change anything: the
	// fixed point is stable.
	if err := a.AddKnowledge(grid.Cell{Row: 0, Col: 1}, 1); err != nil {
		t.Fatalf("AddKnowledge failed: %v", err)
	}

	if len(a.Safes()) != len(safes) {
		t.Errorf("Safes changed on repeat: %v -> %v", safes, a.Safes())
	}
	if len(a.Mines()) != len(mines) {
		t.Errorf("Mines changed on repeat: %v -> %v", mines, a.Mines())
	}
	if len(a.MovesMade()) != len(moves) {
		t.Errorf("Moves changed on repeat: %v -> %v", moves, a.MovesMade())
	}
}

func TestOutOfBounds(t *testing.T) {
	a := NewAgent(2, 2)

	err := a.AddKnowledge(grid.Cell{Row: 5, Col: 5}, 0)
	if !errors.Is(err, internalerr.ErrOutOfBounds) {
		t.Errorf("Expected ErrOutOfBounds, got %v", err)
	}
	if len(a.MovesMade()) != 0 {
		t.Error("Expected rejected cell to leave state untouched")
	}
}

func TestContradictionCountTooHigh(t *testing.T) {
	a := NewAgent(1, 2)

	// (0,0) has a single neighbor, so a count of 2 is unsatisfiable.
	err := a.AddKnowledge(grid.Cell{Row: 0, Col: 0}, 2)
	if !errors.Is(err, internalerr.ErrContradiction) {
		t.Errorf("Expected ErrContradiction, got %v", err)
	}
}

func TestContradictionSafeAndMine(t *testing.T) {
	a := NewAgent(1, 2)

	if err := a.AddKnowledge(grid.Cell{Row: 0, Col: 0}, 1); err != nil {
		t.Fatalf("AddKnowledge failed: %v", err)
	}
	if mines := a.Mines(); len(mines) != 1 || mines[0] != (grid.Cell{Row: 0, Col: 1}) {
		t.Fatalf("Expected (0, 1) proven a mine, got %v", mines)
	}

	// Revealing the proven mine as safe contradicts the knowledge base.
	err := a.AddKnowledge(grid.Cell{Row: 0, Col: 1}, 0)
	if !errors.Is(err, internalerr.ErrContradiction) {
		t.Errorf("Expected ErrContradiction, got %v", err)
	}
}

func TestSafeMoveDeterministic(t *testing.T) {
	a := NewAgent(8, 8)

	if err := a.AddKnowledge(grid.Cell{Row: 0, Col: 0}, 1); err != nil {
		t.Fatalf("AddKnowledge failed: %v", err)
	}
	if err := a.AddKnowledge(grid.Cell{Row: 0, Col: 1}, 1); err != nil {
		t.Fatalf("AddKnowledge failed: %v", err)
	}

	// Unvisited safes at this point are (0,2) and (1,2); lowest
	// (row, col) wins.
	move, ok := a.SafeMove()
	if !ok {
		t.Fatal("Expected a safe move")
	}
	if move != (grid.Cell{Row: 0, Col: 2}) {
		t.Errorf("Expected (0, 2), got %v", move)
	}

	again, ok := a.SafeMove()
	if !ok || again != move {
		t.Error("Expected SafeMove to be repeatable without mutating state")
	}
}

func TestSafeMoveNoneAvailable(t *testing.T) {
	a := NewAgent(2, 2)

	if _, ok := a.SafeMove(); ok {
		t.Error("Expected no safe move on a fresh agent")
	}
}

func TestRandomMoveSkipsKnownMines(t *testing.T) {
	a := NewAgent(1, 2)

	if err := a.AddKnowledge(grid.Cell{Row: 0, Col: 0}, 1); err != nil {
		t.Fatalf("AddKnowledge failed: %v", err)
	}

	// The only unrevealed cell is a proven mine.
	if c, ok := a.RandomMove(); ok {
		t.Errorf("Expected no candidate, got %v", c)
	}
}

func TestRandomMoveExhaustedBoard(t *testing.T) {
	a := NewAgent(1, 1)

	if err := a.AddKnowledge(grid.Cell{Row: 0, Col: 0}, 0); err != nil {
		t.Fatalf("AddKnowledge failed: %v", err)
	}

	if c, ok := a.RandomMove(); ok {
		t.Errorf("Expected no candidate on a fully revealed board, got %v", c)
	}
	if _, ok := a.SafeMove(); ok {
		t.Error("Expected no safe move on a fully revealed board")
	}
}

func TestRandomMoveSeeded(t *testing.T) {
	a := NewAgent(4, 4, rand.New(rand.NewSource(7)))
	b := NewAgent(4, 4, rand.New(rand.NewSource(7)))

	ca, ok := a.RandomMove()
	if !ok {
		t.Fatal("Expected a candidate on an empty board")
	}
	cb, ok := b.RandomMove()
	if !ok {
		t.Fatal("Expected a candidate on an empty board")
	}
	if ca != cb {
		t.Errorf("Expected identical picks for identical seeds, got %v and %v", ca, cb)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	a := NewAgent(3, 3)

	if err := a.AddKnowledge(grid.Cell{Row: 1, Col: 1}, 0); err != nil {
		t.Fatalf("AddKnowledge failed: %v", err)
	}

	safes := a.Safes()
	if len(safes) == 0 {
		t.Fatal("Expected safes")
	}
	safes[0] = grid.Cell{Row: 99, Col: 99}

	if containsCell(a.Safes(), grid.Cell{Row: 99, Col: 99}) {
		t.Error("Expected accessor to return a detached copy")
	}
}

func TestSentencesSnapshotDetached(t *testing.T) {
	a := NewAgent(8, 8)

	if err := a.AddKnowledge(grid.Cell{Row: 0, Col: 0}, 1); err != nil {
		t.Fatalf("AddKnowledge failed: %v", err)
	}

	snap := a.Sentences()
	if len(snap) != 1 {
		t.Fatalf("Expected one live sentence, got %d", len(snap))
	}
	snap[0].MarkSafe(grid.Cell{Row: 1, Col: 1})

	if a.Sentences()[0].Len() != 3 {
		t.Error("Expected mutating the snapshot to leave the agent untouched")
	}
}
