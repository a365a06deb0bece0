package puzzle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcoot/edgepuzzle/internal/dependencies/clock"
	"github.com/mcoot/edgepuzzle/internal/dependencies/random"
	"github.com/mcoot/edgepuzzle/internal/model"
	"github.com/mcoot/edgepuzzle/internal/services/engine"
	"github.com/mcoot/edgepuzzle/internal/storage"
)

const (
	// PuzzleIDLength is the length of generated puzzle IDs
	PuzzleIDLength = 10
	// PuzzleIDAlphabet is the characters used in puzzle IDs (avoid confusing chars)
	PuzzleIDAlphabet = "abcdefghjkmnpqrstuvwxyz23456789"

	// DefaultWidth and DefaultHeight size the standard puzzle
	DefaultWidth  = 3
	DefaultHeight = 3

	// MaxGridCells caps width*height for puzzles created through the controller
	MaxGridCells = 100

	// MaxPieces caps the catalog size. Solve tries up to n! orderings, so
	// ten pieces is already several million.
	MaxPieces = 10

	maxIDAttempts = 10
)

// ErrIDExhausted is returned when no free puzzle ID could be generated
var ErrIDExhausted = errors.New("could not generate a unique puzzle id")

// EventPublisher receives an event after every successful command
type EventPublisher interface {
	Publish(event model.Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(model.Event) {}

// CreateOptions configures a new puzzle. Zero width and height select the
// standard 3x3 grid; nil Pieces selects the standard catalog.
type CreateOptions struct {
	Width     int
	Height    int
	Pieces    []model.PieceSpec
	Randomize bool
}

// Controller runs engine commands against stored puzzles
type Controller struct {
	storage   storage.Storage
	clock     clock.Clock
	random    random.Random
	publisher EventPublisher
	logger    *slog.Logger
	locks     *puzzleLocks
}

// NewController creates a new puzzle Controller. publisher may be nil.
func NewController(
	storage storage.Storage,
	clock clock.Clock,
	random random.Random,
	publisher EventPublisher,
	logger *slog.Logger,
) *Controller {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &Controller{
		storage:   storage,
		clock:     clock,
		random:    random,
		publisher: publisher,
		logger:    logger,
		locks:     newPuzzleLocks(),
	}
}

// CreatePuzzle builds a fresh engine, optionally shuffles its bank, and saves it
func (c *Controller) CreatePuzzle(ctx context.Context, opts CreateOptions) (*model.Puzzle, error) {
	width, height := opts.Width, opts.Height
	if width == 0 && height == 0 {
		width, height = DefaultWidth, DefaultHeight
	}
	specs := opts.Pieces
	if specs == nil {
		specs = model.StandardSpecs()
	}
	if err := checkSize(width, height, len(specs)); err != nil {
		return nil, err
	}

	grid, err := model.NewGrid(width, height)
	if err != nil {
		return nil, err
	}
	catalog, err := model.NewCatalog(specs)
	if err != nil {
		return nil, err
	}
	e, err := engine.New(grid, catalog, c.random, c.logger)
	if err != nil {
		return nil, err
	}

	// Generate unique puzzle ID
	var id model.PuzzleID
	for attempt := 0; ; attempt++ {
		if attempt == maxIDAttempts {
			return nil, ErrIDExhausted
		}
		id = model.PuzzleID(c.random.String(PuzzleIDLength, PuzzleIDAlphabet))
		exists, err := c.storage.PuzzleExists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	if opts.Randomize {
		e.RandomizeBank()
	}

	now := c.clock.Now()
	puzzle := &model.Puzzle{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
	}
	fromEngine(e, puzzle)

	if err := c.storage.SavePuzzle(ctx, puzzle); err != nil {
		c.logger.Error("failed to save puzzle",
			slog.String("puzzle_id", string(id)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("puzzle created",
		slog.String("puzzle_id", string(id)),
		slog.Int("width", width),
		slog.Int("height", height),
		slog.Int("pieces", len(specs)),
		slog.Bool("randomized", opts.Randomize),
	)
	c.publish(id, model.EventPuzzleCreated, nil)

	return puzzle, nil
}

// GetPuzzle retrieves a puzzle by ID
func (c *Controller) GetPuzzle(ctx context.Context, id model.PuzzleID) (*model.Puzzle, error) {
	return c.storage.GetPuzzle(ctx, id)
}

// ListPuzzles returns every puzzle, oldest first
func (c *Controller) ListPuzzles(ctx context.Context) ([]*model.Puzzle, error) {
	return c.storage.ListPuzzles(ctx)
}

// DeletePuzzle removes a puzzle
func (c *Controller) DeletePuzzle(ctx context.Context, id model.PuzzleID) error {
	unlock := c.locks.lock(id)
	defer unlock()

	exists, err := c.storage.PuzzleExists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrPuzzleNotFound
	}
	if err := c.storage.DeletePuzzle(ctx, id); err != nil {
		return err
	}

	c.logger.Info("puzzle deleted", slog.String("puzzle_id", string(id)))
	c.publish(id, model.EventPuzzleDeleted, nil)
	return nil
}

// PlacePiece moves the piece in a bank slot onto the grid
func (c *Controller) PlacePiece(ctx context.Context, id model.PuzzleID, slot int, pos model.Position) (*model.Puzzle, error) {
	return c.update(ctx, id, func(e *engine.Engine) (model.EventType, any, error) {
		piece, err := bankPiece(e, slot)
		if err != nil {
			return "", nil, err
		}
		if !e.Grid().IsValid(pos.X, pos.Y) {
			return "", nil, fmt.Errorf("%w: (%d, %d)", model.ErrInvalidPosition, pos.X, pos.Y)
		}
		if e.Grid().IsOccupied(pos.X, pos.Y) {
			return "", nil, fmt.Errorf("%w: (%d, %d) is occupied", model.ErrIllegalPlacement, pos.X, pos.Y)
		}
		if !e.Place(pos.X, pos.Y, piece) {
			return "", nil, model.ErrIllegalPlacement
		}
		return model.EventPiecePlaced, model.PiecePlacedPayload{
			PieceID:  piece.ID(),
			Slot:     slot,
			Position: pos,
			Rotation: piece.Rotation(),
		}, nil
	})
}

// RemovePiece lifts the piece at pos back into the first free bank slot
func (c *Controller) RemovePiece(ctx context.Context, id model.PuzzleID, pos model.Position) (*model.Puzzle, error) {
	return c.update(ctx, id, func(e *engine.Engine) (model.EventType, any, error) {
		if !e.Grid().IsValid(pos.X, pos.Y) {
			return "", nil, fmt.Errorf("%w: (%d, %d)", model.ErrInvalidPosition, pos.X, pos.Y)
		}
		piece := e.Grid().Cell(pos.X, pos.Y)
		if piece == nil || !e.Remove(pos.X, pos.Y) {
			return "", nil, fmt.Errorf("%w: (%d, %d)", model.ErrCellEmpty, pos.X, pos.Y)
		}
		return model.EventPieceRemoved, model.PieceRemovedPayload{
			PieceID:  piece.ID(),
			Position: pos,
			Slot:     e.SlotOf(piece),
		}, nil
	})
}

// RotatePiece turns a bank piece a quarter turn
func (c *Controller) RotatePiece(ctx context.Context, id model.PuzzleID, slot int, clockwise bool) (*model.Puzzle, error) {
	return c.update(ctx, id, func(e *engine.Engine) (model.EventType, any, error) {
		piece, err := bankPiece(e, slot)
		if err != nil {
			return "", nil, err
		}
		if clockwise {
			piece.RotateClockwise()
		} else {
			piece.RotateCounterclockwise()
		}
		return model.EventPieceRotated, model.PieceRotatedPayload{
			PieceID:  piece.ID(),
			Slot:     slot,
			Rotation: piece.Rotation(),
		}, nil
	})
}

// ReturnAllPieces empties the grid into the bank
func (c *Controller) ReturnAllPieces(ctx context.Context, id model.PuzzleID) (*model.Puzzle, error) {
	return c.update(ctx, id, func(e *engine.Engine) (model.EventType, any, error) {
		e.ReturnAllPieces()
		return model.EventPiecesReturned, nil, nil
	})
}

// RandomizeBank empties the grid, then shuffles and rotates the bank
func (c *Controller) RandomizeBank(ctx context.Context, id model.PuzzleID) (*model.Puzzle, error) {
	return c.update(ctx, id, func(e *engine.Engine) (model.EventType, any, error) {
		e.RandomizeBank()
		return model.EventBankRandomized, nil, nil
	})
}

// Solve runs the permutation search. A failed search is not an error: the
// puzzle is saved with the bank order it had before solving and solved is false.
func (c *Controller) Solve(ctx context.Context, id model.PuzzleID) (*model.Puzzle, bool, error) {
	var solved bool
	var summary model.SolveSummary
	puzzle, err := c.updateWith(ctx, id, func(e *engine.Engine, p *model.Puzzle) (model.EventType, any, error) {
		start := c.clock.Now()
		solved = e.Solve()
		stats := e.LastSolve()

		summary = model.SolveSummary{
			Solved:       solved,
			Permutations: stats.Permutations,
			Duration:     c.clock.Since(start),
			AttemptedAt:  start,
		}
		p.LastSolve = &summary

		payload := model.SolvePayload{Permutations: summary.Permutations, Duration: summary.Duration}
		if solved {
			return model.EventPuzzleSolved, payload, nil
		}
		return model.EventSolveFailed, payload, nil
	})
	if err != nil {
		return nil, false, err
	}

	msg := "solve failed"
	if solved {
		msg = "puzzle solved"
	}
	c.logger.Info(msg,
		slog.String("puzzle_id", string(id)),
		slog.Int("permutations", summary.Permutations),
		slog.Duration("duration", summary.Duration),
	)
	return puzzle, solved, nil
}

type command func(e *engine.Engine) (model.EventType, any, error)

type puzzleCommand func(e *engine.Engine, p *model.Puzzle) (model.EventType, any, error)

func (c *Controller) update(ctx context.Context, id model.PuzzleID, cmd command) (*model.Puzzle, error) {
	return c.updateWith(ctx, id, func(e *engine.Engine, _ *model.Puzzle) (model.EventType, any, error) {
		return cmd(e)
	})
}

// updateWith loads the puzzle under its lock, runs cmd on a live engine and
// saves the result. Nothing is saved or published if cmd fails.
func (c *Controller) updateWith(ctx context.Context, id model.PuzzleID, cmd puzzleCommand) (*model.Puzzle, error) {
	unlock := c.locks.lock(id)
	defer unlock()

	puzzle, err := c.storage.GetPuzzle(ctx, id)
	if err != nil {
		return nil, err
	}
	e, err := toEngine(puzzle, c.random, c.logger)
	if err != nil {
		c.logger.Error("failed to restore puzzle",
			slog.String("puzzle_id", string(id)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	wasComplete := puzzle.State == model.PuzzleStateComplete
	eventType, payload, err := cmd(e, puzzle)
	if err != nil {
		return nil, err
	}

	fromEngine(e, puzzle)
	puzzle.UpdatedAt = c.clock.Now()

	if err := c.storage.SavePuzzle(ctx, puzzle); err != nil {
		c.logger.Error("failed to save puzzle",
			slog.String("puzzle_id", string(id)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.publish(id, eventType, payload)
	if !wasComplete && puzzle.State == model.PuzzleStateComplete {
		c.logger.Info("puzzle completed", slog.String("puzzle_id", string(id)))
		c.publish(id, model.EventPuzzleCompleted, nil)
	}
	return puzzle, nil
}

func (c *Controller) publish(id model.PuzzleID, eventType model.EventType, payload any) {
	c.publisher.Publish(model.Event{
		Type:      eventType,
		Timestamp: c.clock.Now(),
		PuzzleID:  id,
		Payload:   payload,
	})
}

func bankPiece(e *engine.Engine, slot int) (*model.Piece, error) {
	if slot < 0 || slot >= len(e.Bank()) {
		return nil, fmt.Errorf("%w: %d", model.ErrInvalidSlot, slot)
	}
	piece := e.BankSlot(slot)
	if piece == nil {
		return nil, fmt.Errorf("%w: %d", model.ErrEmptySlot, slot)
	}
	return piece, nil
}

// checkSize rejects grids over MaxGridCells and catalogs over MaxPieces.
// Non-positive dimensions are left for model.NewGrid to report.
func checkSize(width, height, pieces int) error {
	if width > 0 && height > 0 {
		if width > MaxGridCells || height > MaxGridCells || width*height > MaxGridCells {
			return fmt.Errorf("%w: %dx%d grid has more than %d cells", model.ErrPuzzleTooLarge, width, height, MaxGridCells)
		}
	}
	if pieces > MaxPieces {
		return fmt.Errorf("%w: %d pieces, at most %d allowed", model.ErrPuzzleTooLarge, pieces, MaxPieces)
	}
	return nil
}

// ControllerInterface is implemented by Controller
type ControllerInterface interface {
	CreatePuzzle(ctx context.Context, opts CreateOptions) (*model.Puzzle, error)
	GetPuzzle(ctx context.Context, id model.PuzzleID) (*model.Puzzle, error)
	ListPuzzles(ctx context.Context) ([]*model.Puzzle, error)
	DeletePuzzle(ctx context.Context, id model.PuzzleID) error
	PlacePiece(ctx context.Context, id model.PuzzleID, slot int, pos model.Position) (*model.Puzzle, error)
	RemovePiece(ctx context.Context, id model.PuzzleID, pos model.Position) (*model.Puzzle, error)
	RotatePiece(ctx context.Context, id model.PuzzleID, slot int, clockwise bool) (*model.Puzzle, error)
	ReturnAllPieces(ctx context.Context, id model.PuzzleID) (*model.Puzzle, error)
	RandomizeBank(ctx context.Context, id model.PuzzleID) (*model.Puzzle, error)
	Solve(ctx context.Context, id model.PuzzleID) (*model.Puzzle, bool, error)
}

var _ ControllerInterface = (*Controller)(nil)
