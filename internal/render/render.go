// Package render produces text views of a game in progress. The player
// frame shows only what the agent has revealed or flagged; the reveal view
// shows the ground truth and is meant for post-game output.
package render

import (
	"fmt"
	"strings"

	"github.com/cognicore/minemind/pkg/minemind/board"
	"github.com/cognicore/minemind/pkg/minemind/grid"
)

// Frame renders the player's view: revealed cells show their nearby-mine
// count ('.' for zero), flagged cells show 'F', everything else '-'.
func Frame(b *board.Board, moves, flags []grid.Cell) string {
	moveSet := toSet(moves)
	flagSet := toSet(flags)

	return render(b.Size(), func(c grid.Cell) string {
		if _, ok := flagSet[c]; ok {
			return "F"
		}
		if _, ok := moveSet[c]; !ok {
			return "-"
		}
		n, err := b.NearbyMines(c)
		if err != nil {
			return "?"
		}
		if n == 0 {
			return "."
		}
		return fmt.Sprintf("%d", n)
	})
}

// Reveal renders the ground truth: 'X' for mines, nearby counts elsewhere.
func Reveal(b *board.Board) string {
	mines := toSet(b.Mines())

	return render(b.Size(), func(c grid.Cell) string {
		if _, ok := mines[c]; ok {
			return "X"
		}
		n, err := b.NearbyMines(c)
		if err != nil {
			return "?"
		}
		if n == 0 {
			return "."
		}
		return fmt.Sprintf("%d", n)
	})
}

func render(size grid.Size, glyph func(grid.Cell) string) string {
	var sb strings.Builder

	sb.WriteString("   ")
	for col := 0; col < size.Width; col++ {
		fmt.Fprintf(&sb, "%d ", col%10)
	}
	sb.WriteString("\n")

	for row := 0; row < size.Height; row++ {
		fmt.Fprintf(&sb, "%d: ", row%10)
		for col := 0; col < size.Width; col++ {
			sb.WriteString(glyph(grid.Cell{Row: row, Col: col}))
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func toSet(cells []grid.Cell) map[grid.Cell]struct{} {
	set := make(map[grid.Cell]struct{}, len(cells))
	for _, c := range cells {
		set[c] = struct{}{}
	}
	return set
}
