package puzzle

import (
	"fmt"
	"log/slog"

	"github.com/mcoot/edgepuzzle/internal/dependencies/random"
	"github.com/mcoot/edgepuzzle/internal/model"
	"github.com/mcoot/edgepuzzle/internal/services/engine"
)

// toEngine rebuilds a live engine from a stored puzzle. Bank slot indices and
// piece rotations come back exactly as they were saved.
func toEngine(p *model.Puzzle, rnd random.Random, logger *slog.Logger) (*engine.Engine, error) {
	pieces := make([]*model.Piece, len(p.Pieces))
	for i, ps := range p.Pieces {
		if ps.ID != model.PieceID(i) {
			return nil, fmt.Errorf("%w: piece %d stored at index %d", model.ErrCorruptPuzzle, ps.ID, i)
		}
		for _, side := range ps.Sides {
			if err := model.ValidateSide(side); err != nil {
				return nil, fmt.Errorf("%w: piece %d: %v", model.ErrCorruptPuzzle, i, err)
			}
		}
		if !ps.Rotation.IsValid() {
			return nil, fmt.Errorf("%w: piece %d: %v", model.ErrCorruptPuzzle, i, model.ErrInvalidRotation)
		}
		piece := model.NewPiece(ps.ID, ps.Sides[model.North], ps.Sides[model.East], ps.Sides[model.South], ps.Sides[model.West])
		piece.SetRotation(ps.Rotation)
		pieces[i] = piece
	}

	lookup := func(id model.PieceID) (*model.Piece, error) {
		if id == model.NoPiece {
			return nil, nil
		}
		if id < 0 || int(id) >= len(pieces) {
			return nil, fmt.Errorf("%w: unknown piece %d", model.ErrCorruptPuzzle, id)
		}
		return pieces[id], nil
	}

	grid, err := model.NewGrid(p.Width, p.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrCorruptPuzzle, err)
	}
	if len(p.Cells) != p.Height {
		return nil, fmt.Errorf("%w: %d rows for height %d", model.ErrCorruptPuzzle, len(p.Cells), p.Height)
	}
	placed := 0
	for y, row := range p.Cells {
		if len(row) != p.Width {
			return nil, fmt.Errorf("%w: row %d has %d cells", model.ErrCorruptPuzzle, y, len(row))
		}
		for x, id := range row {
			piece, err := lookup(id)
			if err != nil {
				return nil, err
			}
			if piece != nil {
				grid.SetCell(x, y, piece)
				placed++
			}
		}
	}

	slots := make([]*model.Piece, len(p.Bank))
	banked := 0
	for i, id := range p.Bank {
		piece, err := lookup(id)
		if err != nil {
			return nil, err
		}
		if piece != nil {
			slots[i] = piece
			banked++
		}
	}

	if placed+banked != len(pieces) {
		return nil, fmt.Errorf("%w: %d pieces placed or banked, catalog has %d", model.ErrCorruptPuzzle, placed+banked, len(pieces))
	}

	e, err := engine.Restore(grid, slots, rnd, logger)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrCorruptPuzzle, err)
	}
	return e, nil
}

// Snapshot captures an engine's state as an unsaved puzzle with no ID
func Snapshot(e *engine.Engine) *model.Puzzle {
	p := &model.Puzzle{}
	fromEngine(e, p)
	return p
}

// fromEngine writes the engine's grid, bank and rotations back into p
func fromEngine(e *engine.Engine, p *model.Puzzle) {
	pieces := e.Pieces()
	p.Pieces = make([]model.PieceState, len(pieces))
	for i, piece := range pieces {
		p.Pieces[i] = model.PieceState{
			ID:       piece.ID(),
			Sides:    model.PieceSpec(piece.BaseSides()),
			Rotation: piece.Rotation(),
		}
	}

	grid := e.Grid()
	p.Width = grid.Width()
	p.Height = grid.Height()
	p.Cells = make([][]model.PieceID, grid.Height())
	for y := range p.Cells {
		p.Cells[y] = make([]model.PieceID, grid.Width())
		for x := range p.Cells[y] {
			p.Cells[y][x] = pieceID(grid.Cell(x, y))
		}
	}

	bank := e.Bank()
	p.Bank = make([]model.PieceID, len(bank))
	for i, piece := range bank {
		p.Bank[i] = pieceID(piece)
	}

	p.State = model.PuzzleStateInProgress
	if p.IsComplete() {
		p.State = model.PuzzleStateComplete
	}
}

func pieceID(p *model.Piece) model.PieceID {
	if p == nil {
		return model.NoPiece
	}
	return p.ID()
}
