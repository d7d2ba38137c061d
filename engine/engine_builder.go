package engine

import (
	"github.com/Carmen-Shannon/oxy-rig/engine/camera"
	"github.com/Carmen-Shannon/oxy-rig/engine/profiler"
	"github.com/rs/zerolog"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables periodic tick statistics.
//
// Parameters:
//   - enabled: if true, enables profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler, which logs once a second through the engine logger.
//
// Parameters:
//   - p: the profiler fed by every tick while profiling is enabled
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithTickRate sets the tick loop rate in ticks per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - hz: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(hz float64) EngineBuilderOption {
	return func(e *engine) {
		e.engineTickRate = tickDuration(hz)
	}
}

// WithWindow sets the window whose input callbacks feed the engine and whose message
// pump Run drives.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithLogger sets the engine logger.
//
// Parameters:
//   - logger: receives camera, overflow and clamp messages
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger zerolog.Logger) EngineBuilderOption {
	return func(e *engine) {
		e.logger = logger
	}
}

// WithQueueCapacity sets the capacity of each per-tick event queue.
// Values <= 0 are treated as controller.DefaultQueueCapacity.
//
// Parameters:
//   - capacity: maximum events per queue per tick
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithQueueCapacity(capacity int) EngineBuilderOption {
	return func(e *engine) {
		if capacity < 0 {
			capacity = 0
		}
		e.queueCapacity = capacity
	}
}

// WithCamera registers a camera during engine construction without activating it.
// A camera whose handle is already registered is ignored.
//
// Parameters:
//   - c: the camera to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(c camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		h := c.Handle()
		if _, ok := e.cameras[h]; ok {
			return
		}
		e.cameras[h] = c
		e.order = append(e.order, h)
	}
}

// WithActiveCamera registers a camera and makes it the active one.
//
// Parameters:
//   - c: the camera to register and activate
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithActiveCamera(c camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		WithCamera(c)(e)
		e.active = c.Handle()
	}
}
