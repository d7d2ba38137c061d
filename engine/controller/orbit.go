package controller

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/Carmen-Shannon/oxy-rig/engine/look"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	negX = mgl32.Vec3{-1, 0, 0}
	posY = mgl32.Vec3{0, 1, 0}
)

// Orbit configures a third-person controller that circles a target.
type Orbit struct {
	Enabled                   bool       `yaml:"enabled" mapstructure:"enabled"`
	MouseRotateSensitivity    mgl32.Vec2 `yaml:"mouse_rotate_sensitivity" mapstructure:"mouse_rotate_sensitivity"`
	MouseTranslateSensitivity mgl32.Vec2 `yaml:"mouse_translate_sensitivity" mapstructure:"mouse_translate_sensitivity"`
	WheelZoomSensitivity      float32    `yaml:"wheel_zoom_sensitivity" mapstructure:"wheel_zoom_sensitivity"`

	// MinRadius and MaxRadius bound the eye-to-target distance after a zoom.
	// MinRadius is raised to look.MinRadius; a MaxRadius of 0 means unbounded.
	MinRadius float32 `yaml:"min_radius" mapstructure:"min_radius"`
	MaxRadius float32 `yaml:"max_radius" mapstructure:"max_radius"`

	// PanButton is the pointer button that enables panning. It defaults to the middle button.
	PanButton uint32 `yaml:"pan_button" mapstructure:"pan_button"`
}

// DefaultOrbit returns an enabled Orbit config with the stock sensitivities and no radius bounds.
func DefaultOrbit() Orbit {
	return Orbit{
		Enabled:                   true,
		MouseRotateSensitivity:    mgl32.Vec2{0.006, 0.006},
		MouseTranslateSensitivity: mgl32.Vec2{0.008, 0.008},
		WheelZoomSensitivity:      0.15,
		PanButton:                 common.MouseButtonMiddle,
	}
}

// Validate reports non-finite sensitivities and inconsistent radius bounds.
//
// Returns:
//   - error: wraps ErrInvalidConfig, nil if the config is usable
func (c Orbit) Validate() error {
	values := []float32{
		c.MouseRotateSensitivity.X(), c.MouseRotateSensitivity.Y(),
		c.MouseTranslateSensitivity.X(), c.MouseTranslateSensitivity.Y(),
		c.WheelZoomSensitivity,
	}
	for _, v := range values {
		if !common.IsFinite(v) {
			return fmt.Errorf("orbit sensitivity %v: %w", v, ErrInvalidConfig)
		}
	}
	if !(c.MinRadius >= 0) || !(c.MaxRadius >= 0) {
		return fmt.Errorf("orbit radius bounds [%v, %v]: %w", c.MinRadius, c.MaxRadius, ErrInvalidConfig)
	}
	if c.MaxRadius > 0 && c.MaxRadius < c.MinRadius {
		return fmt.Errorf("orbit max radius %v below min radius %v: %w", c.MaxRadius, c.MinRadius, ErrInvalidConfig)
	}
	return nil
}

// clampRadius applies the configured bounds. NaN and negative radii land on the floor.
func (c Orbit) clampRadius(radius float32) (float32, bool) {
	floor := c.MinRadius
	if floor < look.MinRadius {
		floor = look.MinRadius
	}
	if !(radius >= floor) {
		return floor, true
	}
	if c.MaxRadius > 0 && radius > c.MaxRadius {
		return c.MaxRadius, true
	}
	return radius, false
}

// ZoomScalar folds a tick's scroll events into one distance multiplier, the product
// of (1 - wheel*sensitivity) over all events. No events yields 1.
//
// Parameters:
//   - wheel: scroll amounts in arrival order, positive is scroll up
//   - sensitivity: zoom fraction per scroll unit
//
// Returns:
//   - float32: the multiplier
func ZoomScalar(wheel []float32, sensitivity float32) float32 {
	scalar := float32(1)
	for _, y := range wheel {
		scalar *= 1 - y*sensitivity
	}
	return scalar
}

// MapOrbitInput turns one tick of input into Orbit events.
//
// One OrbitRotate and one OrbitZoom are always queued. An OrbitTranslateTarget is queued
// between them while the pan button is held. A disabled config queues nothing.
//
// Parameters:
//   - cfg: the controller config
//   - frame: this tick's input
//   - events: the queue UpdateOrbit will drain
//
// Returns:
//   - error: wraps ErrQueueFull if the queue overflowed; earlier events stay queued
func MapOrbitInput(cfg Orbit, frame input.Frame, events *EventQueue[OrbitEvent]) error {
	if !cfg.Enabled {
		return nil
	}

	delta := frame.PointerDelta()
	queued := []OrbitEvent{OrbitRotate{Delta: mul2(delta, cfg.MouseRotateSensitivity)}}
	if frame.Buttons.Held(cfg.PanButton) {
		queued = append(queued, OrbitTranslateTarget{Delta: mul2(delta, cfg.MouseTranslateSensitivity)})
	}
	queued = append(queued, OrbitZoom{Scalar: ZoomScalar(frame.Wheel, cfg.WheelZoomSensitivity)})

	for _, ev := range queued {
		if err := events.Send(ev); err != nil {
			return fmt.Errorf("map orbit input: %w", err)
		}
	}
	return nil
}

// UpdateOrbit drains the queue and applies the events to current.
//
// Yaw and pitch describe the eye as seen from the target. Panning moves the target along
// the camera's right and up axes taken from sceneRotation, so any roll on the camera
// carries into the pan. Zoom events multiply together and scale the radius measured at
// the start of the tick. After all events the pitch is clamped, the radius is bounded and
// the eye is placed around the target.
// When disabled, or when the queue is empty, current is returned unchanged.
//
// Parameters:
//   - cfg: the controller config
//   - current: the pose at the start of the tick
//   - sceneRotation: the camera's world rotation, camera forward along its local -Z
//   - events: the queue filled by MapOrbitInput; always empty on return
//
// Returns:
//   - look.Transform: the pose at the end of the tick
//   - Report: what the update did
func UpdateOrbit(cfg Orbit, current look.Transform, sceneRotation mgl32.Quat, events *EventQueue[OrbitEvent]) (look.Transform, Report) {
	drained := events.Drain()
	report := Report{Events: len(drained)}
	if !cfg.Enabled {
		report.Discarded = len(drained)
		return current, report
	}
	if len(drained) == 0 {
		return current, report
	}

	radius := current.Radius()
	forward := current.LookDirectionOr(look.DefaultForward)
	angles := look.AnglesFromVector(forward.Mul(-1))

	right := sceneRotation.Rotate(negX)
	up := sceneRotation.Rotate(posY)

	target := current.Target
	scalar := float32(1)
	for _, ev := range drained {
		switch e := ev.(type) {
		case OrbitRotate:
			angles.AddYaw(-e.Delta.X())
			angles.AddPitch(e.Delta.Y())
		case OrbitTranslateTarget:
			target = target.Add(right.Mul(e.Delta.X())).Add(up.Mul(e.Delta.Y()))
		case OrbitZoom:
			scalar *= e.Scalar
		}
	}
	report.PitchClamped = angles.ClampPitch()

	radius, report.RadiusClamped = cfg.clampRadius(scalar * radius)

	return look.Transform{
		Eye:    target.Add(angles.UnitVector().Mul(radius)),
		Target: target,
		Up:     current.Up,
	}, report
}
