package engine

import "errors"

var (
	// ErrNoActiveCamera is returned by ActiveCamera when no camera is selected.
	ErrNoActiveCamera = errors.New("engine: no active camera")

	// ErrUnknownCamera is returned when a handle does not name a registered camera.
	ErrUnknownCamera = errors.New("engine: unknown camera")

	// ErrDuplicateCamera is returned by AddCamera when the handle is already registered.
	ErrDuplicateCamera = errors.New("engine: duplicate camera")

	// ErrRunning is returned by Run when the engine is already running or has been quit.
	ErrRunning = errors.New("engine: already running or stopped")
)
