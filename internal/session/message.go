package session

import (
	"encoding/json"

	"github.com/rocketscienceinc/gridskirmish-backend/internal/entity"
	"github.com/rocketscienceinc/gridskirmish-backend/internal/match"
)

const (
	TypeInit   = "init"
	TypeJoin   = "join"
	TypeJoined = "joined"
	TypePlace  = "place"
	TypeMove   = "move"
	TypeHints  = "hints"
	TypeBoard  = "board"
	TypeError  = "error"
)

const (
	MessageNotYourTurn = "Not your turn"
	MessageInvalidMove = "Invalid move"
)

// Request is any message a client can send; fields not used by Type stay empty.
// Characters are kept raw so that one malformed entry does not spoil the batch.
type Request struct {
	Type       string            `json:"type"`
	Player     string            `json:"player"`
	Characters []json.RawMessage `json:"characters,omitempty"`
	Character  string            `json:"character,omitempty"`
	Move       string            `json:"move,omitempty"`
}

// Character is one entry of a "place" request; Type is the variant code.
type Character struct {
	Name     string             `json:"name"`
	Type     string             `json:"type"`
	Position *entity.Coordinate `json:"position"`
}

// Response is any message the server sends. Hints is a pointer so that a piece
// without moves still carries an empty list.
type Response struct {
	Type      string        `json:"type"`
	Match     string        `json:"match,omitempty"`
	Player    string        `json:"player,omitempty"`
	State     [][]string    `json:"state,omitempty"`
	Character string        `json:"character,omitempty"`
	Hints     *[]match.Hint `json:"hints,omitempty"`
	Message   string        `json:"message,omitempty"`
}
