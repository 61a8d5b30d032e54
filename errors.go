package mandel

import "errors"

var (
	// ErrStale is returned when scores are read before the current viewport
	// has been generated.
	ErrStale = errors.New("mandel: set has changed and requires regenerating")

	// ErrClosed is returned when scores are read from a closed session.
	ErrClosed = errors.New("mandel: session closed")

	// ErrMalformedView is returned when decoding bytes that do not hold a view.
	ErrMalformedView = errors.New("mandel: malformed view")
)
