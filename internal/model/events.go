package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventPuzzleCreated   EventType = "puzzle_created"
	EventPiecePlaced     EventType = "piece_placed"
	EventPieceRemoved    EventType = "piece_removed"
	EventPieceRotated    EventType = "piece_rotated"
	EventPiecesReturned  EventType = "pieces_returned"
	EventBankRandomized  EventType = "bank_randomized"
	EventPuzzleSolved    EventType = "puzzle_solved"
	EventSolveFailed     EventType = "solve_failed"
	EventPuzzleCompleted EventType = "puzzle_completed"
	EventPuzzleDeleted   EventType = "puzzle_deleted"
)

// Event is emitted after every command that changes a puzzle
type Event struct {
	Type      EventType
	Timestamp time.Time
	PuzzleID  PuzzleID
	Payload   any // Type-specific data
}

// PiecePlacedPayload contains data for piece placed events
type PiecePlacedPayload struct {
	PieceID  PieceID
	Slot     int
	Position Position
	Rotation Rotation
}

// PieceRemovedPayload contains data for piece removed events
type PieceRemovedPayload struct {
	PieceID  PieceID
	Position Position
	Slot     int // Bank slot the piece returned to
}

// PieceRotatedPayload contains data for piece rotated events
type PieceRotatedPayload struct {
	PieceID  PieceID
	Slot     int
	Rotation Rotation
}

// SolvePayload contains data for solve events
type SolvePayload struct {
	Permutations int
	Duration     time.Duration
}
