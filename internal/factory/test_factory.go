package factory

import (
	"context"
	"time"

	"github.com/mcoot/edgepuzzle/internal/dependencies/mocks"
	"github.com/mcoot/edgepuzzle/internal/model"
	"github.com/mcoot/edgepuzzle/internal/services/puzzle"
	"github.com/mcoot/edgepuzzle/internal/storage/memory"
	"github.com/mcoot/edgepuzzle/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom

	// Logs holds everything the app logged
	Logs *testutil.LogBuffer
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	logger, logs := testutil.CaptureLogger()

	app := newWithDependencies(store, mockClock, mockRandom, logger)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		Logs:       logs,
	}
}

// CreatePuzzle creates a puzzle with a known ID. The ID is queued on
// MockRandom, so opts.Randomize still draws from the Intn queue.
func (t *TestApp) CreatePuzzle(ctx context.Context, id model.PuzzleID, opts puzzle.CreateOptions) (*model.Puzzle, error) {
	t.MockRandom.QueueString(string(id))
	return t.PuzzleController.CreatePuzzle(ctx, opts)
}

// CreateSolvable creates the 2x2 puzzle from testutil.SolvableSpecs
func (t *TestApp) CreateSolvable(ctx context.Context, id model.PuzzleID) (*model.Puzzle, error) {
	return t.CreatePuzzle(ctx, id, puzzle.CreateOptions{
		Width:  2,
		Height: 2,
		Pieces: testutil.SolvableSpecs(),
	})
}
