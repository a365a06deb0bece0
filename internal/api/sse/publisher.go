package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/mcoot/edgepuzzle/internal/api/response"
	"github.com/mcoot/edgepuzzle/internal/model"
)

// Publish broadcasts a puzzle event as JSON to everyone watching the puzzle.
// Events for puzzles nobody watches are dropped.
func (m *HubManager) Publish(event model.Event) {
	hub := m.GetHub(event.PuzzleID)
	if hub == nil {
		return
	}

	data, err := json.Marshal(response.EventFromModel(event))
	if err != nil {
		m.logger.Error("failed to encode event",
			slog.String("type", string(event.Type)),
			slog.String("error", err.Error()),
		)
		return
	}
	hub.BroadcastEvent(string(event.Type), string(data))
}
