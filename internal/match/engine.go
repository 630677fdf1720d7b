package match

import (
	"fmt"

	"github.com/rocketscienceinc/gridskirmish-backend/internal/apperror"
	"github.com/rocketscienceinc/gridskirmish-backend/internal/entity"
	"github.com/rocketscienceinc/gridskirmish-backend/internal/movement"
)

// Engine owns the board, the rosters and the turn of a single match.
// It is not safe for concurrent use; a session drives it one message at a time.
type Engine struct {
	board   [entity.BoardSize][entity.BoardSize]*entity.Piece
	rosters map[string][]*entity.Piece
	turn    string
	moves   int

	strictPlacement bool
	placementLock   bool
}

// Hint is a move a piece can make right now.
type Hint struct {
	Token       string            `json:"move"`
	Destination entity.Coordinate `json:"position"`
}

func NewEngine(opts ...Option) *Engine {
	engine := &Engine{
		rosters: make(map[string][]*entity.Piece),
		turn:    entity.PlayerA,
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine
}

// RegisterPlayer - creates an empty roster. Registering twice discards the
// previous roster together with its pieces on the board; resetting only the
// roster would leave orphaned pieces occupying cells.
func (that *Engine) RegisterPlayer(playerID string) {
	for _, piece := range that.rosters[playerID] {
		if piece.IsPlaced() && that.cell(*piece.Position) == piece {
			that.setCell(*piece.Position, nil)
		}
		piece.ClearPosition()
	}

	that.rosters[playerID] = []*entity.Piece{}
}

// PlacePiece - creates a piece and puts it on the board.
func (that *Engine) PlacePiece(playerID, name string, variant entity.Variant, at entity.Coordinate) error {
	if that.placementLock && that.moves > 0 {
		return apperror.ErrPlacementClosed
	}

	if !at.InBounds() {
		return fmt.Errorf("%w: %s is outside of the board", apperror.ErrInvalidPlacement, at)
	}

	occupant := that.cell(at)
	if occupant != nil {
		if that.strictPlacement {
			return fmt.Errorf("%w: %s is occupied by %s-%s", apperror.ErrInvalidPlacement, at, occupant.Owner, occupant.Name)
		}

		// the occupant stays in its roster but is no longer on the board
		occupant.ClearPosition()
	}

	piece := entity.NewPiece(name, playerID, variant)
	piece.SetPosition(at)

	that.setCell(at, piece)
	that.rosters[playerID] = append(that.rosters[playerID], piece)

	return nil
}

// MovePiece - moves a piece of the player by one token. The turn is not advanced.
func (that *Engine) MovePiece(playerID, name, token string) error {
	piece := that.findPiece(playerID, name)
	if piece == nil {
		return fmt.Errorf("%w: player %s has no piece %q", apperror.ErrMoveRejected, playerID, name)
	}

	to, err := that.destination(piece, token)
	if err != nil {
		return err
	}

	from := *piece.Position

	that.setCell(from, nil)
	that.setCell(to, piece)
	piece.SetPosition(to)
	that.moves++

	return nil
}

// MoveHints - tokens the piece could play now, with where each one lands.
func (that *Engine) MoveHints(playerID, name string) ([]Hint, error) {
	piece := that.findPiece(playerID, name)
	if piece == nil {
		return nil, fmt.Errorf("%w: player %s has no piece %q", apperror.ErrMoveRejected, playerID, name)
	}

	hints := []Hint{}
	for _, token := range movement.Tokens(piece.Variant) {
		to, err := that.destination(piece, token)
		if err != nil {
			continue
		}

		hints = append(hints, Hint{Token: token, Destination: to})
	}

	return hints, nil
}

func (that *Engine) destination(piece *entity.Piece, token string) (entity.Coordinate, error) {
	if !piece.IsPlaced() {
		return entity.Coordinate{}, fmt.Errorf("%w: piece %q is not on the board", apperror.ErrMoveRejected, piece.Name)
	}

	to, ok := movement.Destination(piece.Variant, *piece.Position, token)
	if !ok {
		return entity.Coordinate{}, fmt.Errorf("%w: unknown move %q for %s", apperror.ErrMoveRejected, token, piece.Variant)
	}

	if !to.InBounds() {
		return entity.Coordinate{}, fmt.Errorf("%w: %s is outside of the board", apperror.ErrMoveRejected, to)
	}

	if that.cell(to) != nil {
		return entity.Coordinate{}, fmt.Errorf("%w: %s is occupied", apperror.ErrMoveRejected, to)
	}

	return to, nil
}

// findPiece - first piece with the name in the player's roster.
func (that *Engine) findPiece(playerID, name string) *entity.Piece {
	for _, piece := range that.rosters[playerID] {
		if piece.Name == name {
			return piece
		}
	}
	return nil
}

// Position - where the named piece of the player is, false when it is off-board or unknown.
func (that *Engine) Position(playerID, name string) (entity.Coordinate, bool) {
	piece := that.findPiece(playerID, name)
	if piece == nil || !piece.IsPlaced() {
		return entity.Coordinate{}, false
	}
	return *piece.Position, true
}

func (that *Engine) Turn() string {
	return that.turn
}

// PassTurn - hands the turn to the other player.
func (that *Engine) PassTurn() {
	that.turn = entity.OtherPlayer(that.turn)
}

// Moves - number of successful moves so far.
func (that *Engine) Moves() int {
	return that.moves
}

// Pieces - copies of the player's roster in placement order.
func (that *Engine) Pieces(playerID string) []entity.Piece {
	roster := that.rosters[playerID]

	pieces := make([]entity.Piece, 0, len(roster))
	for _, piece := range roster {
		cp := *piece
		if piece.Position != nil {
			at := *piece.Position
			cp.Position = &at
		}
		pieces = append(pieces, cp)
	}

	return pieces
}

func (that *Engine) BoardView() entity.BoardView {
	var view entity.BoardView

	for r := range that.board {
		for c, piece := range that.board[r] {
			if piece != nil {
				view[r][c] = entity.CellView{Owner: piece.Owner, Name: piece.Name}
			}
		}
	}

	return view
}

func (that *Engine) cell(at entity.Coordinate) *entity.Piece {
	return that.board[at.Row][at.Col]
}

func (that *Engine) setCell(at entity.Coordinate, piece *entity.Piece) {
	that.board[at.Row][at.Col] = piece
}
