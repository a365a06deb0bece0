package storage

import (
	"context"
	"slices"
	"strings"

	"github.com/mcoot/edgepuzzle/internal/model"
)

// Storage defines the interface for puzzle persistence.
// Implementations store copies: mutating a saved or loaded puzzle never
// changes what is stored.
type Storage interface {
	SavePuzzle(ctx context.Context, puzzle *model.Puzzle) error
	GetPuzzle(ctx context.Context, id model.PuzzleID) (*model.Puzzle, error)
	DeletePuzzle(ctx context.Context, id model.PuzzleID) error
	PuzzleExists(ctx context.Context, id model.PuzzleID) (bool, error)

	// ListPuzzles returns every stored puzzle, oldest first
	ListPuzzles(ctx context.Context) ([]*model.Puzzle, error)
}

// SortByCreation orders puzzles oldest first, breaking ties by ID
func SortByCreation(puzzles []*model.Puzzle) {
	slices.SortFunc(puzzles, func(a, b *model.Puzzle) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(string(a.ID), string(b.ID))
	})
}
