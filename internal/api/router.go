package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/edgepuzzle/internal/api/apierr"
	"github.com/mcoot/edgepuzzle/internal/api/handler"
	"github.com/mcoot/edgepuzzle/internal/api/response"
	"github.com/mcoot/edgepuzzle/internal/api/sse"
	"github.com/mcoot/edgepuzzle/internal/middleware"
	"github.com/mcoot/edgepuzzle/internal/services/puzzle"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger           *slog.Logger
	PuzzleController puzzle.ControllerInterface
	HubManager       *sse.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	puzzleHandler := handler.NewPuzzleHandler(cfg.PuzzleController, cfg.HubManager)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger, apiPanicHandler))
	api.Use(middleware.Logging(cfg.Logger))

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	puzzles := api.PathPrefix("/puzzles").Subrouter()
	puzzles.HandleFunc("", puzzleHandler.Create).Methods(http.MethodPost)
	puzzles.HandleFunc("", puzzleHandler.List).Methods(http.MethodGet)
	puzzles.HandleFunc("/{id}", puzzleHandler.Get).Methods(http.MethodGet)
	puzzles.HandleFunc("/{id}", puzzleHandler.Delete).Methods(http.MethodDelete)
	puzzles.HandleFunc("/{id}/place", puzzleHandler.Place).Methods(http.MethodPost)
	puzzles.HandleFunc("/{id}/remove", puzzleHandler.Remove).Methods(http.MethodPost)
	puzzles.HandleFunc("/{id}/rotate", puzzleHandler.Rotate).Methods(http.MethodPost)
	puzzles.HandleFunc("/{id}/return", puzzleHandler.Return).Methods(http.MethodPost)
	puzzles.HandleFunc("/{id}/randomize", puzzleHandler.Randomize).Methods(http.MethodPost)
	puzzles.HandleFunc("/{id}/solve", puzzleHandler.Solve).Methods(http.MethodPost)
	puzzles.HandleFunc("/{id}/events", puzzleHandler.Events).Methods(http.MethodGet)

	return r
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}
