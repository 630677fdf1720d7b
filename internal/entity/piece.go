package entity

const (
	PlayerA = "A"
	PlayerB = "B"
)

// Variant is the movement category a piece gets at creation.
type Variant string

const (
	ShortRange        Variant = "short-range"
	LongRange         Variant = "long-range"
	DiagonalLongRange Variant = "diagonal-long-range"
)

// variantCodes maps the codes used by clients in "place" messages.
var variantCodes = map[string]Variant{
	"P":  ShortRange,
	"P2": ShortRange,
	"P3": ShortRange,
	"H1": LongRange,
	"H2": DiagonalLongRange,
}

// ParseVariant returns false for codes no variant is registered for.
func ParseVariant(code string) (Variant, bool) {
	variant, ok := variantCodes[code]
	return variant, ok
}

type Piece struct {
	Name     string      `json:"name"`
	Owner    string      `json:"owner"`
	Variant  Variant     `json:"variant"`
	Position *Coordinate `json:"position,omitempty"`
}

func NewPiece(name, owner string, variant Variant) *Piece {
	return &Piece{
		Name:    name,
		Owner:   owner,
		Variant: variant,
	}
}

func (that *Piece) IsPlaced() bool {
	return that.Position != nil
}

func (that *Piece) SetPosition(at Coordinate) {
	that.Position = &at
}

func (that *Piece) ClearPosition() {
	that.Position = nil
}

// OtherPlayer - returns the opponent of the given player.
func OtherPlayer(player string) string {
	if player == PlayerA {
		return PlayerB
	}
	return PlayerA
}
