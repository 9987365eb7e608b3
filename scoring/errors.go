package scoring

import "errors"

var (
	// ErrNotFound reports an id that no fact references.
	ErrNotFound = errors.New("scoring: not found")

	// ErrInvariant reports a ranking group with zero plays. A victory rate
	// is undefined there, so the aggregation fails instead of emitting an
	// infinite or zeroed rate.
	ErrInvariant = errors.New("scoring: ranking group has zero plays")
)
