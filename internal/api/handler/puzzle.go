package handler

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/edgepuzzle/internal/api/apierr"
	"github.com/mcoot/edgepuzzle/internal/api/request"
	"github.com/mcoot/edgepuzzle/internal/api/response"
	"github.com/mcoot/edgepuzzle/internal/api/sse"
	"github.com/mcoot/edgepuzzle/internal/model"
	"github.com/mcoot/edgepuzzle/internal/services/puzzle"
)

// PuzzleHandler handles puzzle endpoints
type PuzzleHandler struct {
	controller puzzle.ControllerInterface
	hubManager *sse.HubManager
}

// NewPuzzleHandler creates a new puzzle handler. hubManager may be nil, in
// which case the events endpoint is unavailable.
func NewPuzzleHandler(controller puzzle.ControllerInterface, hubManager *sse.HubManager) *PuzzleHandler {
	return &PuzzleHandler{
		controller: controller,
		hubManager: hubManager,
	}
}

func puzzleID(r *http.Request) model.PuzzleID {
	return model.PuzzleID(mux.Vars(r)["id"])
}

// Create handles POST /api/v1/puzzles
func (h *PuzzleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePuzzleRequest
	if err := decodeJSON(r, &req, true); err != nil {
		WriteError(w, err)
		return
	}

	opts := puzzle.CreateOptions{
		Width:     req.Width,
		Height:    req.Height,
		Randomize: req.Randomize,
	}
	if req.Pieces != nil {
		opts.Pieces = make([]model.PieceSpec, len(req.Pieces))
		for i, sides := range req.Pieces {
			for d, side := range sides {
				opts.Pieces[i][d] = model.Side(side)
			}
		}
	}

	p, err := h.controller.CreatePuzzle(r.Context(), opts)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, fmt.Sprintf("/api/v1/puzzles/%s", p.ID), response.PuzzleFromModel(p))
}

// List handles GET /api/v1/puzzles
func (h *PuzzleHandler) List(w http.ResponseWriter, r *http.Request) {
	puzzles, err := h.controller.ListPuzzles(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PuzzleListFromModel(puzzles))
}

// Get handles GET /api/v1/puzzles/{id}
func (h *PuzzleHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.controller.GetPuzzle(r.Context(), puzzleID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PuzzleFromModel(p))
}

// Delete handles DELETE /api/v1/puzzles/{id}
func (h *PuzzleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.DeletePuzzle(r.Context(), puzzleID(r)); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Place handles POST /api/v1/puzzles/{id}/place
func (h *PuzzleHandler) Place(w http.ResponseWriter, r *http.Request) {
	var req request.PlaceRequest
	if err := decodeJSON(r, &req, false); err != nil {
		WriteError(w, err)
		return
	}

	p, err := h.controller.PlacePiece(r.Context(), puzzleID(r), req.Slot, model.Position{X: req.X, Y: req.Y})
	h.writePuzzle(w, p, err)
}

// Remove handles POST /api/v1/puzzles/{id}/remove
func (h *PuzzleHandler) Remove(w http.ResponseWriter, r *http.Request) {
	var req request.RemoveRequest
	if err := decodeJSON(r, &req, false); err != nil {
		WriteError(w, err)
		return
	}

	p, err := h.controller.RemovePiece(r.Context(), puzzleID(r), model.Position{X: req.X, Y: req.Y})
	h.writePuzzle(w, p, err)
}

// Rotate handles POST /api/v1/puzzles/{id}/rotate
func (h *PuzzleHandler) Rotate(w http.ResponseWriter, r *http.Request) {
	var req request.RotateRequest
	if err := decodeJSON(r, &req, false); err != nil {
		WriteError(w, err)
		return
	}

	var clockwise bool
	switch req.Direction {
	case request.DirectionClockwise, "":
		clockwise = true
	case request.DirectionCounterclockwise:
		clockwise = false
	default:
		WriteError(w, apierr.NewInvalidRequestError(`direction must be "cw" or "ccw"`))
		return
	}

	p, err := h.controller.RotatePiece(r.Context(), puzzleID(r), req.Slot, clockwise)
	h.writePuzzle(w, p, err)
}

// Return handles POST /api/v1/puzzles/{id}/return
func (h *PuzzleHandler) Return(w http.ResponseWriter, r *http.Request) {
	p, err := h.controller.ReturnAllPieces(r.Context(), puzzleID(r))
	h.writePuzzle(w, p, err)
}

// Randomize handles POST /api/v1/puzzles/{id}/randomize
func (h *PuzzleHandler) Randomize(w http.ResponseWriter, r *http.Request) {
	p, err := h.controller.RandomizeBank(r.Context(), puzzleID(r))
	h.writePuzzle(w, p, err)
}

// Solve handles POST /api/v1/puzzles/{id}/solve. An unsolved search is
// still a 200 with solved=false.
func (h *PuzzleHandler) Solve(w http.ResponseWriter, r *http.Request) {
	p, solved, err := h.controller.Solve(r.Context(), puzzleID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SolveResponse{
		Solved: solved,
		Puzzle: response.PuzzleFromModel(p),
	})
}

// Events handles GET /api/v1/puzzles/{id}/events
func (h *PuzzleHandler) Events(w http.ResponseWriter, r *http.Request) {
	if h.hubManager == nil {
		WriteError(w, apierr.NewInternalError())
		return
	}

	id := puzzleID(r)
	if _, err := h.controller.GetPuzzle(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	sse.ServeSSE(w, r, h.hubManager.GetOrCreateHub(id))
}

func (h *PuzzleHandler) writePuzzle(w http.ResponseWriter, p *model.Puzzle, err error) {
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PuzzleFromModel(p))
}
