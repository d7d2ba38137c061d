package look

import "errors"

var (
	// ErrDegenerateRadius is returned when eye and target are closer than MinRadius.
	ErrDegenerateRadius = errors.New("eye and target coincide")

	// ErrUpParallel is returned when the up vector is parallel to the look direction.
	ErrUpParallel = errors.New("up vector is parallel to look direction")
)
