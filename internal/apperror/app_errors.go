package apperror

import "errors"

var (
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrMoveRejected     = errors.New("move rejected")
	ErrInvalidPlacement = errors.New("invalid placement")
	ErrPlacementClosed  = errors.New("placement is closed once moves have started")
	ErrMatchNotFound    = errors.New("match not found")
)
