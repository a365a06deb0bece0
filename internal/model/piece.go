package model

import "fmt"

// Suit is the category a side belongs to, encoded as the magnitude of a Side
type Suit int

const (
	SuitClubs    Suit = 1
	SuitDiamonds Suit = 2
	SuitHearts   Suit = 3
	SuitSpades   Suit = 4
)

// String returns the suit name
func (s Suit) String() string {
	switch s {
	case SuitClubs:
		return "clubs"
	case SuitDiamonds:
		return "diamonds"
	case SuitHearts:
		return "hearts"
	case SuitSpades:
		return "spades"
	default:
		return fmt.Sprintf("suit(%d)", int(s))
	}
}

// Side is a signed side code: positive is "out", negative is "in",
// the magnitude is the suit
type Side int

// Side codes for every suit and direction
const (
	ClubsOut    Side = 1
	ClubsIn     Side = -1
	DiamondsOut Side = 2
	DiamondsIn  Side = -2
	HeartsOut   Side = 3
	HeartsIn    Side = -3
	SpadesOut   Side = 4
	SpadesIn    Side = -4
)

// Suit returns the suit encoded by the side's magnitude
func (s Side) Suit() Suit {
	if s < 0 {
		return Suit(-s)
	}
	return Suit(s)
}

// IsOut returns true if the side points out of the piece
func (s Side) IsOut() bool {
	return s > 0
}

// Complements returns true if the two sides are the same suit in opposite directions
func (s Side) Complements(other Side) bool {
	return s == -other
}

// String returns a compact form such as "C+" or "H-"
func (s Side) String() string {
	sign := "-"
	if s.IsOut() {
		sign = "+"
	}
	switch s.Suit() {
	case SuitClubs:
		return "C" + sign
	case SuitDiamonds:
		return "D" + sign
	case SuitHearts:
		return "H" + sign
	case SuitSpades:
		return "S" + sign
	default:
		return fmt.Sprintf("%d", int(s))
	}
}

// ValidateSide checks that a side encodes one of the four suits
func ValidateSide(s Side) error {
	suit := s.Suit()
	if suit < SuitClubs || suit > SuitSpades {
		return fmt.Errorf("%w: %d", ErrInvalidSide, int(s))
	}
	return nil
}

// Direction is an absolute compass direction on the grid
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists the four directions in clockwise order from North
var Directions = [4]Direction{North, East, South, West}

// Opposite returns the direction facing the other way
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Offset returns the (dx, dy) step toward the neighbouring cell
func (d Direction) Offset() (int, int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	default:
		return -1, 0
	}
}

// String returns the direction name
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Rotation is a piece orientation in degrees: 0, 90, 180 or 270
type Rotation int

const (
	Rotation0   Rotation = 0
	Rotation90  Rotation = 90
	Rotation180 Rotation = 180
	Rotation270 Rotation = 270
)

// IsValid returns true for the four quarter-turn orientations
func (r Rotation) IsValid() bool {
	return r == Rotation0 || r == Rotation90 || r == Rotation180 || r == Rotation270
}

// steps returns the number of clockwise quarter turns
func (r Rotation) steps() int {
	return int(r) / 90
}

// PieceID identifies a piece within its puzzle's catalog
type PieceID int

// Piece is a square tile with four fixed base sides and a mutable rotation.
// Pieces are tracked by pointer identity: two pieces with equal sides are
// still distinct.
type Piece struct {
	id       PieceID
	sides    [4]Side // indexed by Direction, unrotated
	rotation Rotation
}

// NewPiece creates a piece from its unrotated north, east, south and west sides
func NewPiece(id PieceID, north, east, south, west Side) *Piece {
	return &Piece{
		id:    id,
		sides: [4]Side{north, east, south, west},
	}
}

// ID returns the piece's catalog ID
func (p *Piece) ID() PieceID {
	return p.id
}

// BaseSides returns the unrotated sides in north, east, south, west order
func (p *Piece) BaseSides() [4]Side {
	return p.sides
}

// Rotation returns the current rotation in degrees
func (p *Piece) Rotation() Rotation {
	return p.rotation
}

// SetRotation restores a stored orientation. Invalid values are ignored.
func (p *Piece) SetRotation(r Rotation) {
	if r.IsValid() {
		p.rotation = r
	}
}

// RotateClockwise turns the piece a quarter turn clockwise
func (p *Piece) RotateClockwise() {
	p.rotation = (p.rotation + 90) % 360
}

// RotateCounterclockwise turns the piece a quarter turn counter-clockwise
func (p *Piece) RotateCounterclockwise() {
	p.rotation = (p.rotation + 270) % 360
}

// SideFacing returns the side currently facing the given direction.
// A clockwise turn brings the west side to the north, north to east, and so on.
func (p *Piece) SideFacing(d Direction) Side {
	base := (int(d) - p.rotation.steps() + 4) % 4
	return p.sides[base]
}

// Facing returns the current sides in north, east, south, west order
func (p *Piece) Facing() [4]Side {
	var out [4]Side
	for _, d := range Directions {
		out[d] = p.SideFacing(d)
	}
	return out
}

// String returns the current sides, e.g. "[C+ H+ D- C-]"
func (p *Piece) String() string {
	f := p.Facing()
	return fmt.Sprintf("[%s %s %s %s]", f[North], f[East], f[South], f[West])
}
