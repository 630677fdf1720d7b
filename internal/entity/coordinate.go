package entity

import (
	"encoding/json"
	"errors"
	"fmt"
)

// BoardSize - side length of the square board.
const BoardSize = 5

var ErrInvalidCoordinate = errors.New("coordinate must be a [row, col] pair")

// Coordinate is a (row, col) pair. On the wire it is encoded as [row, col].
type Coordinate struct {
	Row int
	Col int
}

func (that Coordinate) InBounds() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

func (that Coordinate) Offset(rows, cols int) Coordinate {
	return Coordinate{Row: that.Row + rows, Col: that.Col + cols}
}

func (that Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

func (that Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{that.Row, that.Col})
}

func (that *Coordinate) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCoordinate, err)
	}

	if len(pair) != 2 {
		return fmt.Errorf("%w: got %d values", ErrInvalidCoordinate, len(pair))
	}

	that.Row, that.Col = pair[0], pair[1]

	return nil
}
