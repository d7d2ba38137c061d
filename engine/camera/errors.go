package camera

import "errors"

var (
	// ErrDegenerateTransform is returned by New when the initial pose cannot be controlled.
	ErrDegenerateTransform = errors.New("camera: degenerate transform")

	// ErrUnknownMode is returned by ParseMode for names other than fps and orbit.
	ErrUnknownMode = errors.New("camera: unknown mode")
)
