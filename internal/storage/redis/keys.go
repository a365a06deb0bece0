package redis

import (
	"fmt"

	"github.com/mcoot/edgepuzzle/internal/model"
)

// puzzleKey returns the Redis key for a Puzzle
func (s *Storage) puzzleKey(id model.PuzzleID) string {
	return fmt.Sprintf("%s:puzzle:%s", s.cfg.KeyPrefix, id)
}

// puzzleIndexKey returns the Redis key for the SET of all puzzle keys
func (s *Storage) puzzleIndexKey() string {
	return fmt.Sprintf("%s:idx:puzzles", s.cfg.KeyPrefix)
}
