package model

import "errors"

// Common errors used across the application
var (
	// Construction errors
	ErrInvalidDimensions = errors.New("grid dimensions must be positive")
	ErrInvalidSide       = errors.New("side code must be a suit from 1 to 4, signed")
	ErrEmptyCatalog      = errors.New("piece catalog is empty")
	ErrNilPiece          = errors.New("piece catalog contains a nil piece")
	ErrDuplicatePiece    = errors.New("piece appears more than once")
	ErrCatalogTooLarge   = errors.New("piece catalog does not fit on the grid")
	ErrInvalidRotation   = errors.New("rotation must be 0, 90, 180 or 270")
	ErrGridNotEmpty      = errors.New("grid must start empty")
	ErrBankCapacity      = errors.New("bank capacity must equal the number of pieces")
	ErrPuzzleTooLarge    = errors.New("puzzle exceeds the size limit")

	// Placement errors
	ErrInvalidPosition  = errors.New("invalid grid position")
	ErrInvalidSlot      = errors.New("invalid bank slot")
	ErrEmptySlot        = errors.New("bank slot is empty")
	ErrCellEmpty        = errors.New("cell is empty")
	ErrIllegalPlacement = errors.New("piece does not fit at this position")

	// Puzzle errors
	ErrPuzzleNotFound = errors.New("puzzle not found")
	ErrCorruptPuzzle  = errors.New("stored puzzle is inconsistent")
)
