package entity

import "time"

// EmptyCell - marker sent to clients for a cell without a piece.
const EmptyCell = "."

// CellView is a copy of what occupies a cell. The zero value is an empty cell.
type CellView struct {
	Owner string `json:"owner,omitempty"`
	Name  string `json:"name,omitempty"`
}

func (that CellView) IsEmpty() bool {
	return that.Owner == "" && that.Name == ""
}

func (that CellView) String() string {
	if that.IsEmpty() {
		return EmptyCell
	}
	return that.Owner + "-" + that.Name
}

// BoardView is a read-only projection of the board.
type BoardView [BoardSize][BoardSize]CellView

func (that BoardView) At(at Coordinate) CellView {
	return that[at.Row][at.Col]
}

// Strings - wire form of the board, one "<owner>-<name>" or "." per cell.
func (that BoardView) Strings() [][]string {
	rows := make([][]string, BoardSize)
	for r := range that {
		rows[r] = make([]string, BoardSize)
		for c, cell := range that[r] {
			rows[r][c] = cell.String()
		}
	}
	return rows
}

// Snapshot is the journal entry written after each state change of a match.
type Snapshot struct {
	MatchID   string     `json:"match_id"`
	Turn      string     `json:"turn"`
	Board     [][]string `json:"board"`
	Moves     int        `json:"moves"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type MoveRecord struct {
	Seq    int        `json:"seq"`
	Player string     `json:"player"`
	Piece  string     `json:"piece"`
	Token  string     `json:"token"`
	From   Coordinate `json:"from"`
	To     Coordinate `json:"to"`
	At     time.Time  `json:"at"`
}

// LiveMatch describes a match bound to an open connection.
type LiveMatch struct {
	MatchID   string    `json:"match_id"`
	Remote    string    `json:"remote"`
	StartedAt time.Time `json:"started_at"`
}
