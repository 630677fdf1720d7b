// Package movement holds the per-variant move tables. It knows nothing about the
// board: destinations are plain offsets and may fall outside of it.
package movement

import "github.com/rocketscienceinc/gridskirmish-backend/internal/entity"

type Offset struct {
	Rows int
	Cols int
}

type table struct {
	tokens  []string
	offsets map[string]Offset
}

var rules = map[entity.Variant]table{
	entity.ShortRange: {
		tokens: []string{"L", "R", "F", "B"},
		offsets: map[string]Offset{
			"L": {0, -1},
			"R": {0, 1},
			"F": {-1, 0},
			"B": {1, 0},
		},
	},
	entity.LongRange: {
		tokens: []string{"L", "R", "F", "B"},
		offsets: map[string]Offset{
			"L": {0, -2},
			"R": {0, 2},
			"F": {-2, 0},
			"B": {2, 0},
		},
	},
	entity.DiagonalLongRange: {
		tokens: []string{"FL", "FR", "BL", "BR"},
		offsets: map[string]Offset{
			"FL": {-2, -2},
			"FR": {-2, 2},
			"BL": {2, -2},
			"BR": {2, 2},
		},
	},
}

// Destination - computes where a token takes a piece of the given variant.
// Returns false when the variant does not recognize the token.
func Destination(variant entity.Variant, from entity.Coordinate, token string) (entity.Coordinate, bool) {
	rule, ok := rules[variant]
	if !ok {
		return entity.Coordinate{}, false
	}

	offset, ok := rule.offsets[token]
	if !ok {
		return entity.Coordinate{}, false
	}

	return from.Offset(offset.Rows, offset.Cols), true
}

// Tokens - move tokens recognized by the variant, in a fixed order.
func Tokens(variant entity.Variant) []string {
	rule, ok := rules[variant]
	if !ok {
		return nil
	}

	tokens := make([]string, len(rule.tokens))
	copy(tokens, rule.tokens)

	return tokens
}
