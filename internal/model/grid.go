package model

import (
	"fmt"
	"strings"
)

// Position identifies a cell on the grid
type Position struct {
	X int // 0-indexed from left
	Y int // 0-indexed from top
}

// Neighbor returns the adjacent position in the given direction
func (p Position) Neighbor(d Direction) Position {
	dx, dy := d.Offset()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Grid is a fixed-size container of optional pieces.
// It does not check whether placements are legal; that is the engine's job.
type Grid struct {
	width  int
	height int
	cells  [][]*Piece // Row-major: cells[y][x], nil means empty
}

// NewGrid creates an empty grid of the given dimensions
func NewGrid(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	cells := make([][]*Piece, height)
	for y := range cells {
		cells[y] = make([]*Piece, width)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  cells,
	}, nil
}

// Width returns the number of columns
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows
func (g *Grid) Height() int {
	return g.height
}

// Capacity returns the number of cells
func (g *Grid) Capacity() int {
	return g.width * g.height
}

// IsValid returns true if (x, y) lies on the grid
func (g *Grid) IsValid(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Cell returns the piece at (x, y), or nil if the cell is empty or off the grid
func (g *Grid) Cell(x, y int) *Piece {
	if !g.IsValid(x, y) {
		return nil
	}
	return g.cells[y][x]
}

// SetCell writes piece into (x, y) and returns the previous occupant.
// Passing nil clears the cell. Off-grid coordinates are ignored and return nil,
// since neighbour probes at the edges routinely fall outside.
func (g *Grid) SetCell(x, y int, piece *Piece) *Piece {
	if !g.IsValid(x, y) {
		return nil
	}
	old := g.cells[y][x]
	g.cells[y][x] = piece
	return old
}

// IsOccupied returns true if a piece sits at (x, y)
func (g *Grid) IsOccupied(x, y int) bool {
	return g.Cell(x, y) != nil
}

// IsFull returns true if every cell holds a piece
func (g *Grid) IsFull() bool {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y][x] == nil {
				return false
			}
		}
	}
	return true
}

// IsEmpty returns true if no cell holds a piece
func (g *Grid) IsEmpty() bool {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y][x] != nil {
				return false
			}
		}
	}
	return true
}

// PieceCount returns the number of occupied cells
func (g *Grid) PieceCount() int {
	count := 0
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y][x] != nil {
				count++
			}
		}
	}
	return count
}

// Clear empties every cell
func (g *Grid) Clear() {
	for y := range g.cells {
		clear(g.cells[y])
	}
}

// String returns one line per row with each cell's current sides, "." for empty
func (g *Grid) String() string {
	var sb strings.Builder
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			if p := g.cells[y][x]; p != nil {
				sb.WriteString(p.String())
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
