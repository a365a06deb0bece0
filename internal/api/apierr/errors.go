package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/edgepuzzle/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeInvalidPuzzle    = "INVALID_PUZZLE"
	CodeInvalidPosition  = "INVALID_POSITION"
	CodeInvalidSlot      = "INVALID_SLOT"
	CodeEmptySlot        = "EMPTY_SLOT"
	CodeCellEmpty        = "CELL_EMPTY"
	CodeIllegalPlacement = "ILLEGAL_PLACEMENT"
	CodePuzzleNotFound   = "PUZZLE_NOT_FOUND"
	CodeCorruptPuzzle    = "CORRUPT_PUZZLE"
	CodeInternalError    = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError. Messages for client errors
// carry the wrapped detail, such as the offending coordinates.
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrPuzzleNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePuzzleNotFound, "Puzzle not found"}}
	case errors.Is(err, model.ErrInvalidPosition):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPosition, err.Error()}}
	case errors.Is(err, model.ErrInvalidSlot):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidSlot, err.Error()}}
	case errors.Is(err, model.ErrEmptySlot):
		return &httpError{http.StatusConflict, APIError{CodeEmptySlot, err.Error()}}
	case errors.Is(err, model.ErrCellEmpty):
		return &httpError{http.StatusConflict, APIError{CodeCellEmpty, err.Error()}}
	case errors.Is(err, model.ErrIllegalPlacement):
		return &httpError{http.StatusConflict, APIError{CodeIllegalPlacement, err.Error()}}

	// Corrupt state is checked before construction errors it may wrap
	case errors.Is(err, model.ErrCorruptPuzzle):
		return &httpError{http.StatusInternalServerError, APIError{CodeCorruptPuzzle, "Stored puzzle is inconsistent"}}

	case errors.Is(err, model.ErrInvalidDimensions),
		errors.Is(err, model.ErrInvalidSide),
		errors.Is(err, model.ErrEmptyCatalog),
		errors.Is(err, model.ErrCatalogTooLarge),
		errors.Is(err, model.ErrPuzzleTooLarge),
		errors.Is(err, model.ErrInvalidRotation):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPuzzle, err.Error()}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
