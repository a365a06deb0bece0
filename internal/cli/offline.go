package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mcoot/edgepuzzle/internal/api/response"
	"github.com/mcoot/edgepuzzle/internal/dependencies/clock"
	"github.com/mcoot/edgepuzzle/internal/dependencies/random"
	"github.com/mcoot/edgepuzzle/internal/model"
	"github.com/mcoot/edgepuzzle/internal/services/engine"
	"github.com/mcoot/edgepuzzle/internal/services/puzzle"
)

// OfflineResult is the outcome of a local solver run
type OfflineResult struct {
	Solved       bool            `json:"solved"`
	Permutations int             `json:"permutations"`
	Trials       int             `json:"trials"`
	DurationMS   int64           `json:"duration_ms"`
	Seed         *uint64         `json:"seed,omitempty"`
	Puzzle       response.Puzzle `json:"puzzle"`
}

type offlineOptions struct {
	width   int
	height  int
	pieces  []string
	shuffle bool
	seed    uint64
	seeded  bool

	// clock times the solve; nil uses the system clock
	clock clock.Clock
}

func newOfflineCmd() *cobra.Command {
	var opts offlineOptions

	cmd := &cobra.Command{
		Use:   "offline",
		Short: "Run the solver locally without a server",
		Long: `Build a puzzle in-process and run the solver on it.

By default the standard 3x3 puzzle is solved from its catalog order. Use
--shuffle to randomize the bank first and --seed to make the shuffle repeatable.`,
		Args: cobra.NoArgs,
		// No server needed
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.seeded = cmd.Flags().Changed("seed")

			var logger *slog.Logger
			if cfg.Verbose {
				logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
			}

			result, err := runOffline(opts, logger)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.width, "width", puzzle.DefaultWidth, "Grid width")
	cmd.Flags().IntVar(&opts.height, "height", puzzle.DefaultHeight, "Grid height")
	cmd.Flags().StringArrayVar(&opts.pieces, "piece", nil, `Piece sides, e.g. "C+,H+,D-,C-" (repeatable; default standard catalog)`)
	cmd.Flags().BoolVar(&opts.shuffle, "shuffle", false, "Randomize the bank before solving")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Seed for a repeatable shuffle")

	return cmd
}

func runOffline(opts offlineOptions, logger *slog.Logger) (OfflineResult, error) {
	specs, err := parsePieceSpecs(opts.pieces)
	if err != nil {
		return OfflineResult{}, err
	}
	if specs == nil {
		specs = model.StandardSpecs()
	}

	grid, err := model.NewGrid(opts.width, opts.height)
	if err != nil {
		return OfflineResult{}, err
	}
	catalog, err := model.NewCatalog(specs)
	if err != nil {
		return OfflineResult{}, err
	}

	var rnd random.Random = random.New()
	var seed *uint64
	if opts.seeded {
		rnd = random.NewSeeded(opts.seed)
		seed = &opts.seed
	}

	e, err := engine.New(grid, catalog, rnd, logger)
	if err != nil {
		return OfflineResult{}, err
	}
	if opts.shuffle {
		e.RandomizeBank()
	}

	clk := opts.clock
	if clk == nil {
		clk = clock.New()
	}
	start := clk.Now()
	solved := e.Solve()
	elapsed := clk.Since(start)
	stats := e.LastSolve()

	return OfflineResult{
		Solved:       solved,
		Permutations: stats.Permutations,
		Trials:       stats.Trials,
		DurationMS:   elapsed.Milliseconds(),
		Seed:         seed,
		Puzzle:       response.PuzzleFromModel(puzzle.Snapshot(e)),
	}, nil
}
