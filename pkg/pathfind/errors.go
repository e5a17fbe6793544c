package pathfind

import "errors"

var (
	// ErrInvalidQuery is returned when the start or end position is not
	// on the walkable surface, or the agent radius is unusable.
	ErrInvalidQuery = errors.New("invalid path query")
	// ErrNotActive is returned when resuming a request that another
	// request has superseded on the same engine.
	ErrNotActive = errors.New("request is not the engine's active search")
)
