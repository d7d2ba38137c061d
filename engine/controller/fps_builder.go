package controller

import "github.com/go-gl/mathgl/mgl32"

// FPSOption is a functional option for building an FPS config.
type FPSOption func(*FPS)

// NewFPS creates an FPS config from DefaultFPS with the options applied in order.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - FPS: the config
func NewFPS(options ...FPSOption) FPS {
	c := DefaultFPS()
	for _, option := range options {
		option(&c)
	}
	return c
}

// WithFPSEnabled sets whether the controller reacts to input.
//
// Parameters:
//   - enabled: false drops input and leaves the pose untouched
//
// Returns:
//   - FPSOption: functional option to set the enabled flag
func WithFPSEnabled(enabled bool) FPSOption {
	return func(c *FPS) {
		c.Enabled = enabled
	}
}

// WithFPSRotateSensitivity sets the per-axis pointer-to-radians scale.
//
// Parameters:
//   - sensitivity: x scales horizontal motion, y scales vertical motion
//
// Returns:
//   - FPSOption: functional option to set rotate sensitivity
func WithFPSRotateSensitivity(sensitivity mgl32.Vec2) FPSOption {
	return func(c *FPS) {
		c.MouseRotateSensitivity = sensitivity
	}
}

// WithTranslateSensitivity sets the distance moved per held key per tick.
//
// Parameters:
//   - sensitivity: world units per tick
//
// Returns:
//   - FPSOption: functional option to set translate sensitivity
func WithTranslateSensitivity(sensitivity float32) FPSOption {
	return func(c *FPS) {
		c.TranslateSensitivity = sensitivity
	}
}

// WithKeyBindings replaces the movement key table.
//
// Parameters:
//   - bindings: bindings in emission order; none disables keyboard movement
//
// Returns:
//   - FPSOption: functional option to set key bindings
func WithKeyBindings(bindings ...KeyBinding) FPSOption {
	return func(c *FPS) {
		c.Bindings = append([]KeyBinding{}, bindings...)
	}
}
