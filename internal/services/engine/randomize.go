package engine

import "slices"

// RandomizeBank returns every piece to the bank, shuffles the slot order and
// gives each piece a random number of clockwise turns. Both choices are
// uniform: each slot, filled from the end, takes a uniformly chosen remaining
// piece, and each piece turns 0 to 3 times with equal probability.
func (e *Engine) RandomizeBank() {
	e.ReturnAllPieces()

	remaining := slices.Clone(e.bank)
	for i := len(e.bank) - 1; i >= 0; i-- {
		idx := e.random.Intn(len(remaining))
		e.bank[i] = remaining[idx]
		remaining = slices.Delete(remaining, idx, idx+1)
	}

	for _, p := range e.bank {
		for range e.random.Intn(4) {
			p.RotateClockwise()
		}
	}
}
