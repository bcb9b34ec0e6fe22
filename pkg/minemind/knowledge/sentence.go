package knowledge

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cognicore/minemind/pkg/minemind/grid"
)

// Sentence is a logical statement about the board: exactly Count of the
// cells in its cell set are mines. A cell leaves the set once it has been
// proven safe or proven a mine; the proof is recorded in the sentence's
// own derived-safes and derived-mines sets. Every Sentence owns its state
// independently, there is no sharing between instances.
type Sentence struct {
	cells map[grid.Cell]struct{}
	count int
	safes map[grid.Cell]struct{}
	mines map[grid.Cell]struct{}
}

// NewSentence builds a sentence over the given cells claiming that exactly
// count of them are mines.
func NewSentence(cells []grid.Cell, count int) *Sentence {
	s := &Sentence{
		cells: make(map[grid.Cell]struct{}, len(cells)),
		count: count,
		safes: make(map[grid.Cell]struct{}),
		mines: make(map[grid.Cell]struct{}),
	}
	for _, c := range cells {
		s.cells[c] = struct{}{}
	}
	return s
}

// Count returns the number of mines claimed among the undetermined cells.
func (s *Sentence) Count() int { return s.count }

// Len returns the number of undetermined cells.
func (s *Sentence) Len() int { return len(s.cells) }

// Empty reports whether the sentence has no undetermined cells left.
func (s *Sentence) Empty() bool { return len(s.cells) == 0 }

// Valid reports whether the count is within [0, len(cells)]. A sentence
// outside that range encodes contradictory observations.
func (s *Sentence) Valid() bool {
	return s.count >= 0 && s.count <= len(s.cells)
}

// Contains reports whether the cell is still undetermined in this sentence.
func (s *Sentence) Contains(c grid.Cell) bool {
	_, ok := s.cells[c]
	return ok
}

// Cells returns the undetermined cells in row-major order.
func (s *Sentence) Cells() []grid.Cell {
	return sortedCells(s.cells)
}

// KnownSafes returns the cells this sentence has proven safe, in row-major order.
func (s *Sentence) KnownSafes() []grid.Cell {
	return sortedCells(s.safes)
}

// KnownMines returns the cells this sentence has proven to be mines, in
// row-major order.
func (s *Sentence) KnownMines() []grid.Cell {
	return sortedCells(s.mines)
}

// MarkMine records that cell is a mine. If the cell is still undetermined
// here it is removed and the count drops by one. The caller asserts the
// fact; a count driven negative surfaces later as a contradiction via Valid.
func (s *Sentence) MarkMine(c grid.Cell) {
	if _, ok := s.cells[c]; ok {
		delete(s.cells, c)
		s.count--
	}
	s.mines[c] = struct{}{}
}

// MarkSafe records that cell is safe. The count is unaffected.
func (s *Sentence) MarkSafe(c grid.Cell) {
	delete(s.cells, c)
	s.safes[c] = struct{}{}
}

// ResolveTrivial applies certainty by exhaustion: with a count of zero
// every remaining cell is safe, with a count equal to the number of
// remaining cells every one is a mine. Returns true when the sentence
// fully resolved (it is empty afterwards).
func (s *Sentence) ResolveTrivial() bool {
	if s.count == 0 {
		for _, c := range s.Cells() {
			s.MarkSafe(c)
		}
		return true
	}
	if s.count > 0 && s.count == len(s.cells) {
		for _, c := range s.Cells() {
			s.MarkMine(c)
		}
		return true
	}
	return false
}

// subsetOf reports whether every undetermined cell of s is also
// undetermined in other. The empty set is a subset of everything.
func (s *Sentence) subsetOf(other *Sentence) bool {
	if len(s.cells) > len(other.cells) {
		return false
	}
	for c := range s.cells {
		if _, ok := other.cells[c]; !ok {
			return false
		}
	}
	return true
}

// ReduceWith applies the subset rule to the pair (s, other): when one cell
// set contains the other, the difference set must hold exactly the
// difference of the counts, so the larger sentence is rewritten to that
// strictly smaller constraint. The rewritten side is whichever sentence is
// the superset. Returns false when neither set contains the other, or when
// either sentence is already empty (a resolved sentence carries no new
// information).
func (s *Sentence) ReduceWith(other *Sentence) bool {
	if s.Empty() || other.Empty() {
		return false
	}
	if s.subsetOf(other) {
		for c := range s.cells {
			delete(other.cells, c)
		}
		other.count -= s.count
		return true
	}
	if other.subsetOf(s) {
		for c := range other.cells {
			delete(s.cells, c)
		}
		s.count -= other.count
		return true
	}
	return false
}

// Equal reports whether two sentences constrain the same cells with the
// same count.
func (s *Sentence) Equal(other *Sentence) bool {
	if s.count != other.count || len(s.cells) != len(other.cells) {
		return false
	}
	for c := range s.cells {
		if _, ok := other.cells[c]; !ok {
			return false
		}
	}
	return true
}

// String renders the sentence as "{(r, c), ...} = n" for diagnostics.
func (s *Sentence) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, c := range s.Cells() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.String())
	}
	fmt.Fprintf(&b, "} = %d", s.count)
	return b.String()
}

func sortedCells(set map[grid.Cell]struct{}) []grid.Cell {
	out := make([]grid.Cell, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return grid.Less(out[i], out[j])
	})
	return out
}
