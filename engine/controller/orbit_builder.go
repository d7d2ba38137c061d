package controller

import "github.com/go-gl/mathgl/mgl32"

// OrbitOption is a functional option for building an Orbit config.
type OrbitOption func(*Orbit)

// NewOrbit creates an Orbit config from DefaultOrbit with the options applied in order.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - Orbit: the config
func NewOrbit(options ...OrbitOption) Orbit {
	c := DefaultOrbit()
	for _, option := range options {
		option(&c)
	}
	return c
}

// WithOrbitEnabled sets whether the controller reacts to input.
//
// Parameters:
//   - enabled: false drops input and leaves the pose untouched
//
// Returns:
//   - OrbitOption: functional option to set the enabled flag
func WithOrbitEnabled(enabled bool) OrbitOption {
	return func(c *Orbit) {
		c.Enabled = enabled
	}
}

// WithOrbitRotateSensitivity sets the per-axis pointer-to-radians scale for orbiting.
//
// Parameters:
//   - sensitivity: x scales horizontal motion, y scales vertical motion
//
// Returns:
//   - OrbitOption: functional option to set rotate sensitivity
func WithOrbitRotateSensitivity(sensitivity mgl32.Vec2) OrbitOption {
	return func(c *Orbit) {
		c.MouseRotateSensitivity = sensitivity
	}
}

// WithPanSensitivity sets the per-axis pointer-to-world-units scale for panning.
//
// Parameters:
//   - sensitivity: x scales horizontal motion, y scales vertical motion
//
// Returns:
//   - OrbitOption: functional option to set pan sensitivity
func WithPanSensitivity(sensitivity mgl32.Vec2) OrbitOption {
	return func(c *Orbit) {
		c.MouseTranslateSensitivity = sensitivity
	}
}

// WithZoomSensitivity sets the fraction of the radius removed per scroll-up unit.
//
// Parameters:
//   - sensitivity: zoom fraction per scroll unit
//
// Returns:
//   - OrbitOption: functional option to set zoom sensitivity
func WithZoomSensitivity(sensitivity float32) OrbitOption {
	return func(c *Orbit) {
		c.WheelZoomSensitivity = sensitivity
	}
}

// WithRadiusBounds sets the minimum and maximum orbit radius.
//
// Parameters:
//   - min: minimum zoom distance
//   - max: maximum zoom distance, 0 for unbounded
//
// Returns:
//   - OrbitOption: functional option to set radius bounds
func WithRadiusBounds(min, max float32) OrbitOption {
	return func(c *Orbit) {
		c.MinRadius = min
		c.MaxRadius = max
	}
}

// WithPanButton sets the pointer button that must be held to pan.
//
// Parameters:
//   - button: a pointer button code from common
//
// Returns:
//   - OrbitOption: functional option to set the pan button
func WithPanButton(button uint32) OrbitOption {
	return func(c *Orbit) {
		c.PanButton = button
	}
}
