package engine

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/mcoot/edgepuzzle/internal/dependencies/random"
	"github.com/mcoot/edgepuzzle/internal/model"
)

// Engine places pieces from a fixed-slot bank onto a grid, enforcing that
// every shared edge joins complementary sides. It owns both the grid and the
// bank; nothing else should mutate them.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	grid    *model.Grid
	bank    []*model.Piece // one slot per catalog piece, nil when empty
	catalog []*model.Piece // every piece, in catalog order
	random  random.Random
	logger  *slog.Logger

	lastSolve SolveStats
}

// New creates an engine with every catalog piece in the bank, in catalog order.
// The grid must be empty and large enough to hold the whole catalog.
func New(grid *model.Grid, catalog []*model.Piece, rnd random.Random, logger *slog.Logger) (*Engine, error) {
	if !grid.IsEmpty() {
		return nil, model.ErrGridNotEmpty
	}
	for i, p := range catalog {
		if p == nil {
			return nil, fmt.Errorf("%w: index %d", model.ErrNilPiece, i)
		}
	}
	return Restore(grid, catalog, rnd, logger)
}

// Restore creates an engine around a grid that may already hold pieces.
// slots is the bank's slot array and may contain nil entries; together the
// grid and the non-nil slots must hold every piece exactly once, and the
// bank capacity must equal the number of pieces.
func Restore(grid *model.Grid, slots []*model.Piece, rnd random.Random, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	seen := make(map[*model.Piece]bool, len(slots))
	var catalog []*model.Piece
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			if p := grid.Cell(x, y); p != nil {
				if seen[p] {
					return nil, fmt.Errorf("%w: piece %d on grid twice", model.ErrDuplicatePiece, p.ID())
				}
				seen[p] = true
				catalog = append(catalog, p)
			}
		}
	}
	for _, p := range slots {
		if p == nil {
			continue
		}
		if seen[p] {
			return nil, fmt.Errorf("%w: piece %d", model.ErrDuplicatePiece, p.ID())
		}
		seen[p] = true
		catalog = append(catalog, p)
	}

	if len(catalog) == 0 {
		return nil, model.ErrEmptyCatalog
	}
	if len(slots) != len(catalog) {
		return nil, fmt.Errorf("%w: %d slots for %d pieces", model.ErrBankCapacity, len(slots), len(catalog))
	}
	if len(catalog) > grid.Capacity() {
		return nil, fmt.Errorf("%w: %d pieces, %d cells", model.ErrCatalogTooLarge, len(catalog), grid.Capacity())
	}
	slices.SortStableFunc(catalog, func(a, b *model.Piece) int {
		return int(a.ID()) - int(b.ID())
	})

	return &Engine{
		grid:    grid,
		bank:    slices.Clone(slots),
		catalog: catalog,
		random:  rnd,
		logger:  logger,
	}, nil
}

// Grid returns the engine's grid. Callers must treat it as read-only.
func (e *Engine) Grid() *model.Grid {
	return e.grid
}

// Bank returns a copy of the bank's slots; empty slots are nil
func (e *Engine) Bank() []*model.Piece {
	return slices.Clone(e.bank)
}

// BankSlot returns the piece in the given slot, or nil if the slot is empty or out of range
func (e *Engine) BankSlot(slot int) *model.Piece {
	if slot < 0 || slot >= len(e.bank) {
		return nil
	}
	return e.bank[slot]
}

// SlotOf returns the bank slot holding p, or -1 if p is not in the bank
func (e *Engine) SlotOf(p *model.Piece) int {
	if p == nil {
		return -1
	}
	for i, b := range e.bank {
		if b == p {
			return i
		}
	}
	return -1
}

// Pieces returns every piece the engine owns, in catalog order
func (e *Engine) Pieces() []*model.Piece {
	return slices.Clone(e.catalog)
}

// CanPlace reports whether p fits at (x, y): the cell must be on the grid and
// empty, and each occupied neighbour must show the negation of p's side on
// the shared edge. Empty or off-grid neighbours impose no constraint.
func (e *Engine) CanPlace(x, y int, p *model.Piece) bool {
	if p == nil || !e.grid.IsValid(x, y) || e.grid.IsOccupied(x, y) {
		return false
	}
	pos := model.Position{X: x, Y: y}
	for _, d := range model.Directions {
		n := pos.Neighbor(d)
		neighbor := e.grid.Cell(n.X, n.Y)
		if neighbor == nil {
			continue
		}
		if !neighbor.SideFacing(d.Opposite()).Complements(p.SideFacing(d)) {
			return false
		}
	}
	return true
}

// Place moves p from the bank to (x, y) in its current rotation if it fits.
// Returns whether the piece was placed.
func (e *Engine) Place(x, y int, p *model.Piece) bool {
	if p == nil || !e.CanPlace(x, y, p) {
		return false
	}
	e.removeFromBank(p)
	e.grid.SetCell(x, y, p)
	return true
}

// Remove returns the piece at (x, y) to the first empty bank slot.
// Returns whether there was a piece to remove.
func (e *Engine) Remove(x, y int) bool {
	p := e.grid.SetCell(x, y, nil)
	if p == nil {
		return false
	}
	e.addToBank(p)
	return true
}

// ReturnAllPieces removes every piece from the grid in row-major order
func (e *Engine) ReturnAllPieces() {
	for y := 0; y < e.grid.Height(); y++ {
		for x := 0; x < e.grid.Width(); x++ {
			e.Remove(x, y)
		}
	}
}

// clear empties the grid without returning pieces to the bank. The caller
// must still hold references to the discarded pieces.
func (e *Engine) clear() {
	e.grid.Clear()
}

// removeFromBank empties the slot holding p, matching by identity
func (e *Engine) removeFromBank(p *model.Piece) {
	for i, b := range e.bank {
		if b == p {
			e.bank[i] = nil
			return
		}
	}
}

// addToBank puts p in the first empty slot
func (e *Engine) addToBank(p *model.Piece) {
	for i, b := range e.bank {
		if b == nil {
			e.bank[i] = p
			return
		}
	}
}
