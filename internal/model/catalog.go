package model

import "fmt"

// PieceSpec describes a piece's unrotated sides in north, east, south, west order
type PieceSpec [4]Side

// StandardSpecs returns the nine pieces of the standard 3x3 puzzle
func StandardSpecs() []PieceSpec {
	return []PieceSpec{
		{ClubsOut, HeartsOut, DiamondsIn, ClubsIn},
		{SpadesOut, DiamondsOut, SpadesIn, HeartsIn},
		{HeartsOut, SpadesOut, SpadesIn, ClubsIn},
		{HeartsOut, DiamondsOut, ClubsIn, ClubsIn},
		{SpadesOut, SpadesOut, HeartsIn, ClubsIn},
		{HeartsOut, DiamondsOut, DiamondsIn, HeartsIn},
		{SpadesOut, DiamondsOut, HeartsIn, DiamondsIn},
		{ClubsOut, HeartsOut, SpadesIn, HeartsIn},
		{ClubsOut, ClubsIn, DiamondsIn, DiamondsOut},
	}
}

// NewCatalog builds pieces from specs, assigning IDs in order
func NewCatalog(specs []PieceSpec) ([]*Piece, error) {
	if len(specs) == 0 {
		return nil, ErrEmptyCatalog
	}
	pieces := make([]*Piece, len(specs))
	for i, spec := range specs {
		for _, side := range spec {
			if err := ValidateSide(side); err != nil {
				return nil, fmt.Errorf("piece %d: %w", i, err)
			}
		}
		pieces[i] = NewPiece(PieceID(i), spec[North], spec[East], spec[South], spec[West])
	}
	return pieces, nil
}

// StandardCatalog returns fresh pieces for the standard 3x3 puzzle
func StandardCatalog() []*Piece {
	pieces, err := NewCatalog(StandardSpecs())
	if err != nil {
		panic(err) // the standard specs are constant and valid
	}
	return pieces
}
