package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/mcoot/edgepuzzle/internal/api/response"
	"github.com/mcoot/edgepuzzle/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == OutputJSON {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == OutputJSON {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Puzzle:
		o.printPuzzle(v)
	case response.PuzzleList:
		o.printPuzzleList(v)
	case response.SolveResponse:
		o.printSolveResponse(v)
	case OfflineResult:
		o.printOfflineResult(v)
	case response.Health:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printPuzzle(p response.Puzzle) {
	if p.ID != "" {
		fmt.Fprintf(o.w, "Puzzle: %s (%dx%d)\n", p.ID, p.Width, p.Height)
	} else {
		fmt.Fprintf(o.w, "Puzzle: %dx%d\n", p.Width, p.Height)
	}
	fmt.Fprintf(o.w, "State: %s\n\n", p.State)

	pieces := make(map[int]response.Piece, len(p.Pieces))
	for _, piece := range p.Pieces {
		pieces[piece.ID] = piece
	}
	fmt.Fprint(o.w, renderGrid(p.Cells, pieces))

	fmt.Fprintf(o.w, "\nBank (%d/%d):\n", bankCount(p.Bank), len(p.Bank))
	for slot, id := range p.Bank {
		if id < 0 {
			fmt.Fprintf(o.w, "  [%d] empty\n", slot)
			continue
		}
		piece := pieces[id]
		fmt.Fprintf(o.w, "  [%d] #%d %s %d°\n", slot, id, formatSides(piece.Facing), piece.Rotation)
	}

	if p.LastSolve != nil {
		outcome := "no solution"
		if p.LastSolve.Solved {
			outcome = "solved"
		}
		fmt.Fprintf(o.w, "\nLast solve: %s after %d permutations (%dms)\n",
			outcome, p.LastSolve.Permutations, p.LastSolve.DurationMS)
	}
}

func (o *Output) printPuzzleList(l response.PuzzleList) {
	if len(l.Puzzles) == 0 {
		fmt.Fprintln(o.w, "No puzzles")
		return
	}
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSIZE\tSTATE\tPLACED\tUPDATED")
	for _, p := range l.Puzzles {
		placed := len(p.Pieces) - bankCount(p.Bank)
		fmt.Fprintf(tw, "%s\t%dx%d\t%s\t%d/%d\t%s\n",
			p.ID, p.Width, p.Height, p.State, placed, len(p.Pieces),
			p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	_ = tw.Flush()
}

func (o *Output) printSolveResponse(r response.SolveResponse) {
	if r.Solved {
		fmt.Fprintln(o.w, "Solved!")
	} else {
		fmt.Fprintln(o.w, "No solution found")
	}
	fmt.Fprintln(o.w)
	o.printPuzzle(r.Puzzle)
}

func (o *Output) printOfflineResult(r OfflineResult) {
	if r.Seed != nil {
		fmt.Fprintf(o.w, "Seed: %d\n", *r.Seed)
	}
	if r.Solved {
		fmt.Fprintf(o.w, "Solved after %d permutations (%d trials, %dms)\n\n", r.Permutations, r.Trials, r.DurationMS)
	} else {
		fmt.Fprintf(o.w, "No solution found in %d permutations (%d trials, %dms)\n\n", r.Permutations, r.Trials, r.DurationMS)
	}
	o.printPuzzle(r.Puzzle)
}

func bankCount(bank []int) int {
	n := 0
	for _, id := range bank {
		if id >= 0 {
			n++
		}
	}
	return n
}

func sideString(code int) string {
	return model.Side(code).String()
}

func formatSides(sides [4]int) string {
	parts := make([]string, len(sides))
	for i, s := range sides {
		parts[i] = sideString(s)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

const cellWidth = 8

// renderGrid draws each cell as three lines: the north side, then west,
// piece ID and east, then south
func renderGrid(cells [][]int, pieces map[int]response.Piece) string {
	if len(cells) == 0 {
		return ""
	}
	width := len(cells[0])
	var sb strings.Builder

	// Column headers
	header := "    "
	for col := range width {
		header += fmt.Sprintf("%-*s", cellWidth+1, "   "+strconv.Itoa(col))
	}
	sb.WriteString(strings.TrimRight(header, " "))
	sb.WriteString("\n")

	border := "   +" + strings.Repeat(strings.Repeat("-", cellWidth)+"+", width) + "\n"
	sb.WriteString(border)

	for row, ids := range cells {
		lines := [3]string{"   |", fmt.Sprintf("%2d |", row), "   |"}
		for _, id := range ids {
			piece, ok := pieces[id]
			if id < 0 || !ok {
				lines[0] += strings.Repeat(" ", cellWidth) + "|"
				lines[1] += "   .    |"
				lines[2] += strings.Repeat(" ", cellWidth) + "|"
				continue
			}
			f := piece.Facing
			lines[0] += fmt.Sprintf("   %-2s   |", sideString(f[model.North]))
			lines[1] += fmt.Sprintf("%-2s %-3s%2s|", sideString(f[model.West]), "#"+strconv.Itoa(id), sideString(f[model.East]))
			lines[2] += fmt.Sprintf("   %-2s   |", sideString(f[model.South]))
		}
		for _, line := range lines {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		sb.WriteString(border)
	}
	return sb.String()
}
