package engine

import (
	"iter"
	"log/slog"
	"slices"

	"github.com/mcoot/edgepuzzle/internal/model"
)

// rotationTrials is how many orientations are tried per piece
const rotationTrials = 4

// SolveStats describes the most recent Solve call
type SolveStats struct {
	Solved       bool
	Permutations int // Permutations started, including the successful one
	Trials       int // Placement attempts of the first piece across all permutations
}

// LastSolve returns statistics for the most recent Solve call
func (e *Engine) LastSolve() SolveStats {
	return e.lastSolve
}

// Solve tries to fill the grid with every piece.
//
// Every ordering of the bank is tried, last-generated first. For each
// ordering the first piece goes to (0,0) and each later piece k goes to
// (k mod width, k div height), taking the first of its four rotations that
// fits. A target cell off the grid, which the mapping produces when width
// exceeds height, counts as a cell no rotation fits. If a piece fits in no
// rotation the ordering is abandoned without
// revisiting earlier pieces, the grid is cleared and the first piece turns
// once; after four turns the next ordering starts.
//
// The search is incomplete: false means this policy found no arrangement,
// not that none exists. On failure the grid is empty and the bank holds the
// pieces in their pre-solve slot order.
func (e *Engine) Solve() bool {
	e.ReturnAllPieces()

	pieces := slices.Clone(e.bank)
	stats := SolveStats{}
	defer func() {
		e.lastSolve = stats
		e.logger.Debug("solve finished",
			slog.Bool("solved", stats.Solved),
			slog.Int("pieces", len(pieces)),
			slog.Int("permutations", stats.Permutations),
			slog.Int("trials", stats.Trials),
		)
	}()

	for perm := range reversePermutations(pieces) {
		stats.Permutations++
		for range rotationTrials {
			stats.Trials++
			e.Place(0, 0, perm[0])
			if e.placeSequence(perm) {
				stats.Solved = true
				return true
			}
			e.clear()
			perm[0].RotateClockwise()
		}
	}

	copy(e.bank, pieces)
	return false
}

// placeSequence places perm[1:] in linearised grid order, stopping at the
// first piece that fits in none of its rotations
func (e *Engine) placeSequence(perm []*model.Piece) bool {
	width, height := e.grid.Width(), e.grid.Height()
	for k := 1; k < len(perm); k++ {
		if !e.tryToPlace(k%width, k/height, perm[k]) {
			return false
		}
	}
	return true
}

// tryToPlace places p at (x, y) in the first of its four rotations that fits.
// A piece that never fits ends up back in its starting rotation.
func (e *Engine) tryToPlace(x, y int, p *model.Piece) bool {
	if p == nil {
		return false
	}
	for range rotationTrials {
		if e.Place(x, y, p) {
			return true
		}
		p.RotateClockwise()
	}
	return false
}

// reversePermutations yields every ordering of pieces in the reverse of the
// order produced by recursive insertion (each piece in turn placed in front
// of every ordering of the others). The yielded slice is reused between
// iterations.
func reversePermutations(pieces []*model.Piece) iter.Seq[[]*model.Piece] {
	return func(yield func([]*model.Piece) bool) {
		if len(pieces) == 0 {
			return
		}
		perm := make([]*model.Piece, len(pieces))
		var walk func(depth int, rest []*model.Piece) bool
		walk = func(depth int, rest []*model.Piece) bool {
			if len(rest) == 0 {
				return yield(perm)
			}
			for i := len(rest) - 1; i >= 0; i-- {
				perm[depth] = rest[i]
				smaller := make([]*model.Piece, 0, len(rest)-1)
				smaller = append(smaller, rest[:i]...)
				smaller = append(smaller, rest[i+1:]...)
				if !walk(depth+1, smaller) {
					return false
				}
			}
			return true
		}
		walk(0, pieces)
	}
}
