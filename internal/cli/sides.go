package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mcoot/edgepuzzle/internal/model"
)

var suitLetters = map[byte]model.Suit{
	'C': model.SuitClubs,
	'D': model.SuitDiamonds,
	'H': model.SuitHearts,
	'S': model.SuitSpades,
}

// parseSide accepts a compact code such as "C+" or "h-", or a signed
// integer side code such as "-3"
func parseSide(s string) (model.Side, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		side := model.Side(n)
		return side, model.ValidateSide(side)
	}
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid side %q", s)
	}
	suit, ok := suitLetters[strings.ToUpper(s[:1])[0]]
	if !ok {
		return 0, fmt.Errorf("invalid suit in side %q", s)
	}
	switch s[1] {
	case '+':
		return model.Side(suit), nil
	case '-':
		return -model.Side(suit), nil
	default:
		return 0, fmt.Errorf("side %q must end in + or -", s)
	}
}

// parsePieceSpec parses four sides in north, east, south, west order,
// separated by commas or spaces: "C+,H+,D-,C-"
func parsePieceSpec(s string) (model.PieceSpec, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	if len(fields) != 4 {
		return model.PieceSpec{}, fmt.Errorf("piece %q needs 4 sides, got %d", s, len(fields))
	}
	var spec model.PieceSpec
	for d, field := range fields {
		side, err := parseSide(field)
		if err != nil {
			return model.PieceSpec{}, err
		}
		spec[d] = side
	}
	return spec, nil
}

func parsePieceSpecs(values []string) ([]model.PieceSpec, error) {
	if len(values) == 0 {
		return nil, nil
	}
	specs := make([]model.PieceSpec, len(values))
	for i, v := range values {
		spec, err := parsePieceSpec(v)
		if err != nil {
			return nil, err
		}
		specs[i] = spec
	}
	return specs, nil
}
