package geometry

import "errors"

// Configuration errors detected at construction. The per-tick path is
// infallible; anything wrong with the geometry must be caught here.
var (
	// ErrNonPositiveDimension indicates a width or height that is zero or negative.
	ErrNonPositiveDimension = errors.New("geometry: container dimension must be positive")

	// ErrDegenerateWall indicates a wall direction vector with zero length.
	ErrDegenerateWall = errors.New("geometry: wall direction vector has zero length")
)
