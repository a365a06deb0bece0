package testutil

import "github.com/mcoot/edgepuzzle/internal/model"

// SolvableSpecs returns four pieces that fill a 2x2 grid unrotated in
// catalog order: 0 and 1 on the top row, 2 and 3 below
func SolvableSpecs() []model.PieceSpec {
	return []model.PieceSpec{
		{model.ClubsOut, model.DiamondsOut, model.HeartsOut, model.SpadesOut},
		{model.ClubsOut, model.HeartsOut, model.SpadesOut, model.DiamondsIn},
		{model.HeartsIn, model.ClubsOut, model.DiamondsOut, model.SpadesOut},
		{model.SpadesIn, model.DiamondsOut, model.HeartsOut, model.ClubsIn},
	}
}
