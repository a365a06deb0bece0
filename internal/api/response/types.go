package response

import (
	"time"

	"github.com/mcoot/edgepuzzle/internal/model"
)

// Piece represents a catalog piece in API responses
type Piece struct {
	ID       int    `json:"id"`
	Sides    [4]int `json:"sides"`  // unrotated north, east, south, west
	Facing   [4]int `json:"facing"` // after rotation
	Rotation int    `json:"rotation"`
}

// PieceFromModel converts a stored piece
func PieceFromModel(ps model.PieceState) Piece {
	piece := model.NewPiece(ps.ID, ps.Sides[model.North], ps.Sides[model.East], ps.Sides[model.South], ps.Sides[model.West])
	piece.SetRotation(ps.Rotation)

	return Piece{
		ID:       int(ps.ID),
		Sides:    sideCodes(ps.Sides),
		Facing:   sideCodes(piece.Facing()),
		Rotation: int(ps.Rotation),
	}
}

func sideCodes(sides [4]model.Side) [4]int {
	var out [4]int
	for i, s := range sides {
		out[i] = int(s)
	}
	return out
}

// SolveSummary represents the most recent solve attempt
type SolveSummary struct {
	Solved       bool      `json:"solved"`
	Permutations int       `json:"permutations"`
	DurationMS   int64     `json:"duration_ms"`
	AttemptedAt  time.Time `json:"attempted_at"`
}

// Puzzle represents a puzzle session. Cells and Bank hold piece IDs, -1 when empty.
type Puzzle struct {
	ID        string        `json:"id"`
	State     string        `json:"state"`
	Width     int           `json:"width"`
	Height    int           `json:"height"`
	Pieces    []Piece       `json:"pieces"`
	Cells     [][]int       `json:"cells"`
	Bank      []int         `json:"bank"`
	LastSolve *SolveSummary `json:"last_solve,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// PuzzleFromModel converts a model.Puzzle to a response Puzzle
func PuzzleFromModel(p *model.Puzzle) Puzzle {
	resp := Puzzle{
		ID:        string(p.ID),
		State:     string(p.State),
		Width:     p.Width,
		Height:    p.Height,
		Pieces:    make([]Piece, len(p.Pieces)),
		Cells:     make([][]int, len(p.Cells)),
		Bank:      make([]int, len(p.Bank)),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	for i, ps := range p.Pieces {
		resp.Pieces[i] = PieceFromModel(ps)
	}
	for y, row := range p.Cells {
		resp.Cells[y] = make([]int, len(row))
		for x, id := range row {
			resp.Cells[y][x] = int(id)
		}
	}
	for i, id := range p.Bank {
		resp.Bank[i] = int(id)
	}
	if p.LastSolve != nil {
		resp.LastSolve = &SolveSummary{
			Solved:       p.LastSolve.Solved,
			Permutations: p.LastSolve.Permutations,
			DurationMS:   p.LastSolve.Duration.Milliseconds(),
			AttemptedAt:  p.LastSolve.AttemptedAt,
		}
	}
	return resp
}

// PuzzleList is the response for listing puzzles
type PuzzleList struct {
	Puzzles []Puzzle `json:"puzzles"`
}

// PuzzleListFromModel converts a slice of puzzles
func PuzzleListFromModel(puzzles []*model.Puzzle) PuzzleList {
	list := PuzzleList{Puzzles: make([]Puzzle, len(puzzles))}
	for i, p := range puzzles {
		list.Puzzles[i] = PuzzleFromModel(p)
	}
	return list
}

// SolveResponse is the response for a solve request
type SolveResponse struct {
	Solved bool   `json:"solved"`
	Puzzle Puzzle `json:"puzzle"`
}

// Health is the response for the health check
type Health struct {
	Status string `json:"status"`
}
