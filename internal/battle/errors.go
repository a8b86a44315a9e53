package battle

import "errors"

var (
	// ErrSpawnZone is returned when the position lies inside the reserved
	// team area and the requesting team is not the area's owner.
	ErrSpawnZone = errors.New("battle: position is inside a reserved team area")
	// ErrInsufficientFunds is returned when the budget cannot pay for a unit.
	ErrInsufficientFunds = errors.New("battle: insufficient resources")
	// ErrNotAvailable is returned when the budget has no price for a kind.
	ErrNotAvailable = errors.New("battle: unit kind not available")
	ErrUnknownKind  = errors.New("battle: unknown unit kind")
	ErrNotPaused    = errors.New("battle: operation requires a paused battle")
)
