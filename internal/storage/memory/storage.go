package memory

import (
	"context"
	"sync"

	"github.com/mcoot/edgepuzzle/internal/model"
	"github.com/mcoot/edgepuzzle/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu      sync.RWMutex
	puzzles map[model.PuzzleID]*model.Puzzle
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		puzzles: make(map[model.PuzzleID]*model.Puzzle),
	}
}

var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SavePuzzle(ctx context.Context, puzzle *model.Puzzle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puzzles[puzzle.ID] = puzzle.Clone()
	return nil
}

func (s *Storage) GetPuzzle(ctx context.Context, id model.PuzzleID) (*model.Puzzle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	puzzle, ok := s.puzzles[id]
	if !ok {
		return nil, model.ErrPuzzleNotFound
	}
	return puzzle.Clone(), nil
}

func (s *Storage) DeletePuzzle(ctx context.Context, id model.PuzzleID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.puzzles, id)
	return nil
}

func (s *Storage) PuzzleExists(ctx context.Context, id model.PuzzleID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.puzzles[id]
	return ok, nil
}

func (s *Storage) ListPuzzles(ctx context.Context) ([]*model.Puzzle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*model.Puzzle, 0, len(s.puzzles))
	for _, p := range s.puzzles {
		result = append(result, p.Clone())
	}
	storage.SortByCreation(result)
	return result, nil
}
