package response

import (
	"time"

	"github.com/mcoot/edgepuzzle/internal/model"
)

// Event is the JSON body of a server-sent puzzle event
type Event struct {
	Type      string         `json:"type"`
	PuzzleID  string         `json:"puzzle_id"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data,omitempty"`
}

// EventFromModel converts a model.Event, flattening its payload
func EventFromModel(e model.Event) Event {
	resp := Event{
		Type:      string(e.Type),
		PuzzleID:  string(e.PuzzleID),
		Timestamp: e.Timestamp,
	}

	switch p := e.Payload.(type) {
	case model.PiecePlacedPayload:
		resp.Data = map[string]any{
			"piece_id": int(p.PieceID),
			"slot":     p.Slot,
			"x":        p.Position.X,
			"y":        p.Position.Y,
			"rotation": int(p.Rotation),
		}
	case model.PieceRemovedPayload:
		resp.Data = map[string]any{
			"piece_id": int(p.PieceID),
			"slot":     p.Slot,
			"x":        p.Position.X,
			"y":        p.Position.Y,
		}
	case model.PieceRotatedPayload:
		resp.Data = map[string]any{
			"piece_id": int(p.PieceID),
			"slot":     p.Slot,
			"rotation": int(p.Rotation),
		}
	case model.SolvePayload:
		resp.Data = map[string]any{
			"permutations": p.Permutations,
			"duration_ms":  p.Duration.Milliseconds(),
		}
	}
	return resp
}
