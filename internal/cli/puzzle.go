package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/edgepuzzle/internal/api/request"
	"github.com/mcoot/edgepuzzle/internal/api/response"
)

func newPuzzleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "puzzle",
		Short: "Puzzle commands",
	}

	cmd.AddCommand(newPuzzleCreateCmd())
	cmd.AddCommand(newPuzzleGetCmd())
	cmd.AddCommand(newPuzzleListCmd())
	cmd.AddCommand(newPuzzleDeleteCmd())
	cmd.AddCommand(newPuzzlePlaceCmd())
	cmd.AddCommand(newPuzzleRemoveCmd())
	cmd.AddCommand(newPuzzleRotateCmd())
	cmd.AddCommand(newPuzzleActionCmd("return", "Return every placed piece to the bank"))
	cmd.AddCommand(newPuzzleActionCmd("randomize", "Clear the grid, then shuffle and turn the bank"))
	cmd.AddCommand(newPuzzleSolveCmd())

	return cmd
}

func puzzlePath(id string, suffix ...string) string {
	path := "/api/v1/puzzles/" + id
	for _, s := range suffix {
		path += "/" + s
	}
	return path
}

func parseInts(names []string, args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", names[i], err)
		}
		out[i] = n
	}
	return out, nil
}

func newPuzzleCreateCmd() *cobra.Command {
	var (
		width     int
		height    int
		pieces    []string
		randomize bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new puzzle",
		Long: `Create a new puzzle. Without --piece the standard nine-piece catalog is used.

Each --piece gives four sides in north, east, south, west order:
  edgepuzzle puzzle create --width 2 --height 1 --piece "C+,D+,H-,S-" --piece "C-,S+,H+,D-"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			specs, err := parsePieceSpecs(pieces)
			if err != nil {
				return err
			}

			req := request.CreatePuzzleRequest{
				Width:     width,
				Height:    height,
				Randomize: randomize,
			}
			for _, spec := range specs {
				var sides [4]int
				for d, side := range spec {
					sides[d] = int(side)
				}
				req.Pieces = append(req.Pieces, sides)
			}

			var result response.Puzzle
			if err := client.Post(cmd.Context(), "/api/v1/puzzles", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "Grid width (default 3 with --height unset)")
	cmd.Flags().IntVar(&height, "height", 0, "Grid height (default 3 with --width unset)")
	cmd.Flags().StringArrayVar(&pieces, "piece", nil, `Piece sides, e.g. "C+,H+,D-,C-" (repeatable)`)
	cmd.Flags().BoolVar(&randomize, "randomize", false, "Shuffle and turn the bank after creating")

	return cmd
}

func newPuzzleGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a puzzle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Puzzle

			if err := client.Get(cmd.Context(), puzzlePath(args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newPuzzleListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List puzzles, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.PuzzleList

			if err := client.Get(cmd.Context(), "/api/v1/puzzles", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newPuzzleDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a puzzle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(cmd.Context(), puzzlePath(args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage("Puzzle deleted")
			return nil
		},
	}
}

func newPuzzlePlaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "place <id> <slot> <x> <y>",
		Short: "Place the piece in a bank slot onto the grid",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseInts([]string{"slot", "x", "y"}, args[1:])
			if err != nil {
				return err
			}

			req := request.PlaceRequest{Slot: n[0], X: n[1], Y: n[2]}
			var result response.Puzzle

			if err := client.Post(cmd.Context(), puzzlePath(args[0], "place"), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newPuzzleRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id> <x> <y>",
		Short: "Move a placed piece back to the bank",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseInts([]string{"x", "y"}, args[1:])
			if err != nil {
				return err
			}

			req := request.RemoveRequest{X: n[0], Y: n[1]}
			var result response.Puzzle

			if err := client.Post(cmd.Context(), puzzlePath(args[0], "remove"), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newPuzzleRotateCmd() *cobra.Command {
	var ccw bool

	cmd := &cobra.Command{
		Use:   "rotate <id> <slot>",
		Short: "Turn a bank piece a quarter turn",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseInts([]string{"slot"}, args[1:])
			if err != nil {
				return err
			}

			req := request.RotateRequest{Slot: n[0], Direction: request.DirectionClockwise}
			if ccw {
				req.Direction = request.DirectionCounterclockwise
			}
			var result response.Puzzle

			if err := client.Post(cmd.Context(), puzzlePath(args[0], "rotate"), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&ccw, "ccw", false, "Turn counter-clockwise")

	return cmd
}

// newPuzzleActionCmd builds a command that posts to a bodiless puzzle endpoint
func newPuzzleActionCmd(action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Puzzle

			if err := client.Post(cmd.Context(), puzzlePath(args[0], action), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newPuzzleSolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "solve <id>",
		Short: "Run the solver on a puzzle",
		Long: `Run the solver. It tries orderings of the bank and fills the grid
greedily without backtracking, so it can report no solution for a puzzle
that has one. A failed search leaves the bank as it was.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.SolveResponse

			if err := client.Post(cmd.Context(), puzzlePath(args[0], "solve"), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}
