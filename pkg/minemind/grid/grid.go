package grid

import "fmt"

// Cell is a single board position. Cells are value-comparable and are used
// as map keys throughout the knowledge engine.
type Cell struct {
	Row int
	Col int
}

// String returns the cell in (row, col) form.
func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

// Less orders cells row-major: by row, then by column.
func Less(a, b Cell) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}

// Size describes board dimensions.
type Size struct {
	Height int
	Width  int
}

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool {
	return s.Height > 0 && s.Width > 0
}

// Area returns the total number of cells.
func (s Size) Area() int {
	return s.Height * s.Width
}

// Contains reports whether the cell lies within the board bounds.
func (s Size) Contains(c Cell) bool {
	return c.Row >= 0 && c.Row < s.Height && c.Col >= 0 && c.Col < s.Width
}

// Neighbors returns the up-to-8 grid-adjacent in-bounds cells,
// in row-major order. The cell itself is excluded.
func (s Size) Neighbors(c Cell) []Cell {
	out := make([]Cell, 0, 8)
	for row := c.Row - 1; row <= c.Row+1; row++ {
		for col := c.Col - 1; col <= c.Col+1; col++ {
			n := Cell{Row: row, Col: col}
			if n == c {
				continue
			}
			if s.Contains(n) {
				out = append(out, n)
			}
		}
	}
	return out
}

// Cells enumerates every board cell in row-major order.
func (s Size) Cells() []Cell {
	out := make([]Cell, 0, s.Area())
	for row := 0; row < s.Height; row++ {
		for col := 0; col < s.Width; col++ {
			out = append(out, Cell{Row: row, Col: col})
		}
	}
	return out
}
