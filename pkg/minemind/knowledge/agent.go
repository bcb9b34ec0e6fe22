package knowledge

import (
	"fmt"
	"math/rand"

	"github.com/cognicore/minemind/pkg/minemind/grid"
	"github.com/cognicore/minemind/pkg/minemind/internalerr"
)

// Agent is the knowledge base for one Minesweeper game. It owns the global
// sets of proven-safe and proven-mine cells, the moves already made, and
// the live sentences, and it drives the inference rules to a fixed point
// after every observation. All state is per-instance; agents never share
// containers. An Agent is not safe for concurrent use.
type Agent struct {
	size      grid.Size
	movesMade map[grid.Cell]struct{}
	safes     map[grid.Cell]struct{}
	mines     map[grid.Cell]struct{}
	sentences []*Sentence
	rng       *rand.Rand
}

// NewAgent creates an agent for a board of the given dimensions. An
// optional rand source controls guess selection; without one, RandomMove
// picks the first candidate in row-major order.
func NewAgent(height, width int, rng ...*rand.Rand) *Agent {
	a := &Agent{
		size:      grid.Size{Height: height, Width: width},
		movesMade: make(map[grid.Cell]struct{}),
		safes:     make(map[grid.Cell]struct{}),
		mines:     make(map[grid.Cell]struct{}),
	}
	if len(rng) > 0 {
		a.rng = rng[0]
	}
	return a
}

// Size returns the board dimensions the agent reasons over.
func (a *Agent) Size() grid.Size { return a.size }

// AddKnowledge feeds one observation into the knowledge base: the given
// cell was revealed and reported count mines among its neighbors. The new
// sentence is reduced against everything already known and the inference
// rules are then run to a fixed point. Any state that violates the
// knowledge invariants is reported as a contradiction, never repaired.
func (a *Agent) AddKnowledge(cell grid.Cell, count int) error {
	if !a.size.Contains(cell) {
		return fmt.Errorf("add knowledge %v: %w", cell, internalerr.ErrOutOfBounds)
	}

	a.movesMade[cell] = struct{}{}
	if err := a.markSafe(cell); err != nil {
		return err
	}

	// Start the new sentence in reduced form: apply every fact already
	// known before it enters the knowledge base.
	s := NewSentence(a.size.Neighbors(cell), count)
	for _, n := range s.Cells() {
		if _, ok := a.safes[n]; ok {
			s.MarkSafe(n)
		}
		if _, ok := a.mines[n]; ok {
			s.MarkMine(n)
		}
	}
	if !s.Valid() {
		return fmt.Errorf("add knowledge %v: sentence %v: %w", cell, s, internalerr.ErrContradiction)
	}

	s.ResolveTrivial()
	if _, err := a.absorb(s); err != nil {
		return err
	}
	if !s.Empty() {
		a.sentences = append(a.sentences, s)
	}

	return a.closure()
}

// SafeMove returns a proven-safe cell that has not been revealed yet,
// lowest (row, col) first for determinism. It does not modify any state.
func (a *Agent) SafeMove() (grid.Cell, bool) {
	var best grid.Cell
	found := false
	for c := range a.safes {
		if _, made := a.movesMade[c]; made {
			continue
		}
		if !found || grid.Less(c, best) {
			best = c
			found = true
		}
	}
	return best, found
}

// RandomMove returns a cell that has not been revealed and is not a proven
// mine. When the agent owns a rand source the pick is uniform over the
// candidates, otherwise the first candidate in row-major order is used.
// The second return is false once no candidate remains.
func (a *Agent) RandomMove() (grid.Cell, bool) {
	var candidates []grid.Cell
	for _, c := range a.size.Cells() {
		if _, made := a.movesMade[c]; made {
			continue
		}
		if _, mine := a.mines[c]; mine {
			continue
		}
		if a.rng == nil {
			return c, true
		}
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		return grid.Cell{}, false
	}
	return candidates[a.rng.Intn(len(candidates))], true
}

// Safes returns a sorted copy of all cells proven safe so far.
func (a *Agent) Safes() []grid.Cell { return sortedCells(a.safes) }

// Mines returns a sorted copy of all cells proven to be mines so far.
func (a *Agent) Mines() []grid.Cell { return sortedCells(a.mines) }

// MovesMade returns a sorted copy of all cells already revealed.
func (a *Agent) MovesMade() []grid.Cell { return sortedCells(a.movesMade) }

// Sentences returns a snapshot of the live sentences for diagnostics.
// The copies are detached from the knowledge base.
func (a *Agent) Sentences() []*Sentence {
	out := make([]*Sentence, len(a.sentences))
	for i, s := range a.sentences {
		out[i] = NewSentence(s.Cells(), s.Count())
	}
	return out
}

// markSafe records a safe cell globally and pushes the fact into every
// live sentence.
func (a *Agent) markSafe(c grid.Cell) error {
	if _, ok := a.mines[c]; ok {
		return fmt.Errorf("cell %v proven both safe and mine: %w", c, internalerr.ErrContradiction)
	}
	a.safes[c] = struct{}{}
	for _, s := range a.sentences {
		s.MarkSafe(c)
	}
	return nil
}

// markMine records a mine globally and pushes the fact into every live
// sentence.
func (a *Agent) markMine(c grid.Cell) error {
	if _, ok := a.safes[c]; ok {
		return fmt.Errorf("cell %v proven both safe and mine: %w", c, internalerr.ErrContradiction)
	}
	a.mines[c] = struct{}{}
	for _, s := range a.sentences {
		s.MarkMine(c)
	}
	return nil
}

// absorb pulls a sentence's derived facts into the global sets. Returns
// whether any global set grew.
func (a *Agent) absorb(s *Sentence) (bool, error) {
	changed := false
	for _, c := range s.KnownSafes() {
		if _, ok := a.safes[c]; ok {
			continue
		}
		if err := a.markSafe(c); err != nil {
			return changed, err
		}
		changed = true
	}
	for _, c := range s.KnownMines() {
		if _, ok := a.mines[c]; ok {
			continue
		}
		if err := a.markMine(c); err != nil {
			return changed, err
		}
		changed = true
	}
	return changed, nil
}

// sentenceView is an immutable snapshot of a sentence's constraint, used
// to compute a whole batch of pairwise reductions before applying any of
// them. Mutating live sentences while scanning pairs would invalidate the
// subset tests mid-pass.
type sentenceView struct {
	cells map[grid.Cell]struct{}
	count int
}

func snapshot(s *Sentence) sentenceView {
	v := sentenceView{
		cells: make(map[grid.Cell]struct{}, len(s.cells)),
		count: s.count,
	}
	for c := range s.cells {
		v.cells[c] = struct{}{}
	}
	return v
}

func (v sentenceView) subsetOf(o sentenceView) bool {
	if len(v.cells) > len(o.cells) {
		return false
	}
	for c := range v.cells {
		if _, ok := o.cells[c]; !ok {
			return false
		}
	}
	return true
}

func (v sentenceView) equal(o sentenceView) bool {
	return v.count == o.count && len(v.cells) == len(o.cells) && v.subsetOf(o)
}

// closure runs the inference rules to a fixed point: propagate global
// facts into every sentence, resolve trivial sentences, apply pairwise
// subset reductions over a snapshot, prune resolved sentences, and repeat
// while anything changed. Terminates because cell sets only shrink and the
// sentence count is bounded by the number of observations.
func (a *Agent) closure() error {
	for changed := true; changed; {
		changed = false

		if err := a.propagate(); err != nil {
			return err
		}

		for _, s := range a.sentences {
			s.ResolveTrivial()
			grew, err := a.absorb(s)
			if err != nil {
				return err
			}
			if grew {
				changed = true
			}
		}

		if a.reduce() {
			changed = true
		}

		if err := a.prune(); err != nil {
			return err
		}
	}
	return nil
}

// propagate applies every global fact to every live sentence and checks
// the count invariant afterwards.
func (a *Agent) propagate() error {
	for _, s := range a.sentences {
		for c := range a.safes {
			if s.Contains(c) {
				s.MarkSafe(c)
			}
		}
		for c := range a.mines {
			if s.Contains(c) {
				s.MarkMine(c)
			}
		}
		if !s.Valid() {
			return fmt.Errorf("sentence %v: count out of range: %w", s, internalerr.ErrContradiction)
		}
	}
	return nil
}

// reduce computes subset reductions over a snapshot of all live sentences
// and applies them as a batch, first proposal per target wins. Returns
// whether any sentence was rewritten.
func (a *Agent) reduce() bool {
	views := make([]sentenceView, len(a.sentences))
	for i, s := range a.sentences {
		views[i] = snapshot(s)
	}

	proposals := make(map[int]sentenceView)
	for i := range views {
		if len(views[i].cells) == 0 {
			continue
		}
		for j := range views {
			if i == j || len(views[j].cells) == 0 {
				continue
			}
			if !views[i].subsetOf(views[j]) {
				continue
			}
			// Duplicate sentences reduce each other to nothing; keep
			// the lower-indexed copy and clear only the other.
			if views[i].equal(views[j]) && j < i {
				continue
			}
			if _, taken := proposals[j]; taken {
				continue
			}
			rest := make(map[grid.Cell]struct{}, len(views[j].cells)-len(views[i].cells))
			for c := range views[j].cells {
				if _, ok := views[i].cells[c]; !ok {
					rest[c] = struct{}{}
				}
			}
			proposals[j] = sentenceView{cells: rest, count: views[j].count - views[i].count}
		}
	}

	for idx, v := range proposals {
		a.sentences[idx].cells = v.cells
		a.sentences[idx].count = v.count
	}
	return len(proposals) > 0
}

// prune drops fully resolved sentences. An empty sentence still claiming
// mines is a contradiction and is reported, not dropped.
func (a *Agent) prune() error {
	kept := a.sentences[:0]
	for _, s := range a.sentences {
		if !s.Empty() {
			kept = append(kept, s)
			continue
		}
		if s.Count() != 0 {
			return fmt.Errorf("empty sentence with count %d: %w", s.Count(), internalerr.ErrContradiction)
		}
	}
	a.sentences = kept
	return nil
}
