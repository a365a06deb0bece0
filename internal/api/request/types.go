package request

// CreatePuzzleRequest is the request body for creating a puzzle. Omitted
// width and height select 3x3; omitted pieces select the standard catalog.
type CreatePuzzleRequest struct {
	Width     int      `json:"width,omitempty"`
	Height    int      `json:"height,omitempty"`
	Pieces    [][4]int `json:"pieces,omitempty"` // north, east, south, west side codes
	Randomize bool     `json:"randomize,omitempty"`
}

// PlaceRequest is the request body for placing a bank piece
type PlaceRequest struct {
	Slot int `json:"slot"`
	X    int `json:"x"`
	Y    int `json:"y"`
}

// RemoveRequest is the request body for removing a placed piece
type RemoveRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Rotation directions accepted by RotateRequest
const (
	DirectionClockwise        = "cw"
	DirectionCounterclockwise = "ccw"
)

// RotateRequest is the request body for rotating a bank piece
type RotateRequest struct {
	Slot      int    `json:"slot"`
	Direction string `json:"direction"`
}
