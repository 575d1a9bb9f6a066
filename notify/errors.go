package notify

import "errors"

var (
	// ErrUnknownSurface is returned when a surface ID has never been seen.
	ErrUnknownSurface = errors.New("notify: unknown surface")

	// ErrUnknownMessage is returned when a message reference does not exist
	// on the surface.
	ErrUnknownMessage = errors.New("notify: unknown message reference")

	// ErrSurfaceArchived is returned when sending to an archived surface.
	ErrSurfaceArchived = errors.New("notify: surface is archived")
)
