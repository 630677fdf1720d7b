package match

type Option func(*Engine)

// WithStrictPlacement - reject placements onto occupied cells instead of
// overwriting the occupant.
func WithStrictPlacement() Option {
	return func(e *Engine) {
		e.strictPlacement = true
	}
}

// WithPlacementLock - reject placements once the first move has been made.
func WithPlacementLock() Option {
	return func(e *Engine) {
		e.placementLock = true
	}
}

// WithFirstTurn - player holding the turn when the match starts.
func WithFirstTurn(player string) Option {
	return func(e *Engine) {
		e.turn = player
	}
}
