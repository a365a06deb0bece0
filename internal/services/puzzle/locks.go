package puzzle

import (
	"sync"

	"github.com/mcoot/edgepuzzle/internal/model"
)

// puzzleLocks hands out one mutex per puzzle ID and drops it once unused
type puzzleLocks struct {
	mu    sync.Mutex
	locks map[model.PuzzleID]*puzzleLock
}

type puzzleLock struct {
	sync.Mutex
	refs int
}

func newPuzzleLocks() *puzzleLocks {
	return &puzzleLocks{locks: make(map[model.PuzzleID]*puzzleLock)}
}

// lock blocks until the puzzle is free and returns the matching unlock
func (l *puzzleLocks) lock(id model.PuzzleID) func() {
	l.mu.Lock()
	pl, ok := l.locks[id]
	if !ok {
		pl = &puzzleLock{}
		l.locks[id] = pl
	}
	pl.refs++
	l.mu.Unlock()

	pl.Lock()
	return func() {
		pl.Unlock()
		l.mu.Lock()
		pl.refs--
		if pl.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

func (l *puzzleLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
