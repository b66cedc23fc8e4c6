package voronoi

import "errors"

var (
	// ErrSeedOverflow is returned by Pack when a seed set holds more seeds
	// than the buffer has slots for.
	ErrSeedOverflow = errors.New("voronoi: active seed count exceeds buffer capacity")

	// ErrInvalidCapacity is returned when a capacity is zero or negative.
	ErrInvalidCapacity = errors.New("voronoi: capacity must be positive")

	// ErrInvalidResolution is returned when a width or height is not positive.
	ErrInvalidResolution = errors.New("voronoi: invalid resolution")

	// ErrActiveCount is returned when an active count is outside [0, capacity].
	ErrActiveCount = errors.New("voronoi: active count out of range")

	// ErrMalformedBuffer is returned when raw bytes do not have the size of
	// a packed seed buffer.
	ErrMalformedBuffer = errors.New("voronoi: malformed packed buffer")
)
