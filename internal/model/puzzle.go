package model

import (
	"slices"
	"time"
)

// PuzzleID uniquely identifies a puzzle session
type PuzzleID string

// PuzzleState represents the progress of a puzzle session
type PuzzleState string

const (
	PuzzleStateInProgress PuzzleState = "in_progress" // Pieces remain in the bank
	PuzzleStateComplete   PuzzleState = "complete"    // Every piece is on the grid
)

// NoPiece marks an empty grid cell or bank slot in a stored puzzle
const NoPiece PieceID = -1

// PieceState is the persisted form of a piece
type PieceState struct {
	ID       PieceID
	Sides    PieceSpec
	Rotation Rotation
}

// SolveSummary records the outcome of the most recent solve attempt
type SolveSummary struct {
	Solved       bool
	Permutations int // Permutations tried before stopping
	Duration     time.Duration
	AttemptedAt  time.Time
}

// Puzzle is a persisted snapshot of an engine: its catalog, grid and bank
type Puzzle struct {
	ID     PuzzleID
	State  PuzzleState
	Width  int
	Height int

	// Pieces is the catalog, indexed by PieceID
	Pieces []PieceState

	// Cells is row-major: Cells[y][x] is a PieceID or NoPiece
	Cells [][]PieceID

	// Bank holds one slot per catalog piece; empty slots are NoPiece
	Bank []PieceID

	LastSolve *SolveSummary // nil until solve is first requested

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PieceAt returns the piece ID at pos, or NoPiece if empty or off the grid
func (p *Puzzle) PieceAt(pos Position) PieceID {
	if pos.Y < 0 || pos.Y >= len(p.Cells) || pos.X < 0 || pos.X >= len(p.Cells[pos.Y]) {
		return NoPiece
	}
	return p.Cells[pos.Y][pos.X]
}

// BankCount returns the number of occupied bank slots
func (p *Puzzle) BankCount() int {
	count := 0
	for _, id := range p.Bank {
		if id != NoPiece {
			count++
		}
	}
	return count
}

// IsComplete returns true if every piece has left the bank
func (p *Puzzle) IsComplete() bool {
	return p.BankCount() == 0
}

// Clone returns a deep copy of the puzzle
func (p *Puzzle) Clone() *Puzzle {
	c := *p
	c.Pieces = slices.Clone(p.Pieces)
	c.Cells = make([][]PieceID, len(p.Cells))
	for y, row := range p.Cells {
		c.Cells[y] = slices.Clone(row)
	}
	c.Bank = slices.Clone(p.Bank)
	if p.LastSolve != nil {
		summary := *p.LastSolve
		c.LastSolve = &summary
	}
	return &c
}
