package movement

import (
	"testing"

	"github.com/rocketscienceinc/gridskirmish-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDestination(t *testing.T) {
	from := entity.Coordinate{Row: 2, Col: 2}

	cases := []struct {
		name    string
		variant entity.Variant
		token   string
		want    entity.Coordinate
	}{
		{"short-range left", entity.ShortRange, "L", entity.Coordinate{Row: 2, Col: 1}},
		{"short-range right", entity.ShortRange, "R", entity.Coordinate{Row: 2, Col: 3}},
		{"short-range forward", entity.ShortRange, "F", entity.Coordinate{Row: 1, Col: 2}},
		{"short-range back", entity.ShortRange, "B", entity.Coordinate{Row: 3, Col: 2}},
		{"long-range left", entity.LongRange, "L", entity.Coordinate{Row: 2, Col: 0}},
		{"long-range right", entity.LongRange, "R", entity.Coordinate{Row: 2, Col: 4}},
		{"long-range forward", entity.LongRange, "F", entity.Coordinate{Row: 0, Col: 2}},
		{"long-range back", entity.LongRange, "B", entity.Coordinate{Row: 4, Col: 2}},
		{"diagonal forward-left", entity.DiagonalLongRange, "FL", entity.Coordinate{Row: 0, Col: 0}},
		{"diagonal forward-right", entity.DiagonalLongRange, "FR", entity.Coordinate{Row: 0, Col: 4}},
		{"diagonal back-left", entity.DiagonalLongRange, "BL", entity.Coordinate{Row: 4, Col: 0}},
		{"diagonal back-right", entity.DiagonalLongRange, "BR", entity.Coordinate{Row: 4, Col: 4}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// When: computing the destination
			to, ok := Destination(tc.variant, from, tc.token)

			// Then: the offset of the table should be applied
			require.True(t, ok)
			assert.Equal(t, tc.want, to)
		})
	}
}

func TestDestination_UnknownToken(t *testing.T) {
	from := entity.Coordinate{Row: 2, Col: 2}

	t.Run("Diagonal tokens are not known to straight variants", func(t *testing.T) {
		_, ok := Destination(entity.ShortRange, from, "FL")
		assert.False(t, ok)

		_, ok = Destination(entity.LongRange, from, "BR")
		assert.False(t, ok)
	})

	t.Run("Straight tokens are not known to the diagonal variant", func(t *testing.T) {
		_, ok := Destination(entity.DiagonalLongRange, from, "F")
		assert.False(t, ok)
	})

	t.Run("Tokens are case sensitive", func(t *testing.T) {
		_, ok := Destination(entity.ShortRange, from, "f")
		assert.False(t, ok)
	})

	t.Run("Unknown variant", func(t *testing.T) {
		_, ok := Destination(entity.Variant("rook"), from, "F")
		assert.False(t, ok)
	})
}

func TestDestination_DoesNotCheckBounds(t *testing.T) {
	// Given: a piece in the corner
	from := entity.Coordinate{Row: 0, Col: 0}

	// When: moving off the board
	to, ok := Destination(entity.DiagonalLongRange, from, "FL")

	// Then: the raw offset is still returned
	require.True(t, ok)
	assert.Equal(t, entity.Coordinate{Row: -2, Col: -2}, to)
	assert.False(t, to.InBounds())
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"L", "R", "F", "B"}, Tokens(entity.ShortRange))
	assert.Equal(t, []string{"L", "R", "F", "B"}, Tokens(entity.LongRange))
	assert.Equal(t, []string{"FL", "FR", "BL", "BR"}, Tokens(entity.DiagonalLongRange))
	assert.Nil(t, Tokens(entity.Variant("rook")))

	// the returned slice is a copy
	tokens := Tokens(entity.ShortRange)
	tokens[0] = "X"
	assert.Equal(t, "L", Tokens(entity.ShortRange)[0])
}
