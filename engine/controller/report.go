package controller

// Report summarizes one controller update.
type Report struct {
	// Events is the number of events drained from the queue.
	Events int

	// Discarded is the number of drained events that were dropped because the controller is disabled.
	Discarded int

	// PitchClamped is set when the pole guard had to pull the pitch back.
	PitchClamped bool

	// RadiusClamped is set when the eye-to-target distance hit a radius bound.
	RadiusClamped bool
}
