package controller

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/Carmen-Shannon/oxy-rig/engine/look"
	"github.com/go-gl/mathgl/mgl32"
)

// KeyBinding maps a held key to a translation direction in rig-local axes.
type KeyBinding struct {
	Key       uint32
	Direction mgl32.Vec3
}

// DefaultKeyBindings returns the WASD layout with Space and Left Shift for vertical movement.
// The rig's +X is to the viewer's left, so A maps to +X and D to -X.
//
// Returns:
//   - []KeyBinding: bindings in the order their events are emitted
func DefaultKeyBindings() []KeyBinding {
	return []KeyBinding{
		{Key: common.KeyW, Direction: mgl32.Vec3{0, 0, 1}},
		{Key: common.KeyA, Direction: mgl32.Vec3{1, 0, 0}},
		{Key: common.KeyS, Direction: mgl32.Vec3{0, 0, -1}},
		{Key: common.KeyD, Direction: mgl32.Vec3{-1, 0, 0}},
		{Key: common.KeyLeftShift, Direction: mgl32.Vec3{0, -1, 0}},
		{Key: common.KeySpace, Direction: mgl32.Vec3{0, 1, 0}},
	}
}

// FPS configures a first-person free-look controller.
type FPS struct {
	Enabled                bool       `yaml:"enabled" mapstructure:"enabled"`
	MouseRotateSensitivity mgl32.Vec2 `yaml:"mouse_rotate_sensitivity" mapstructure:"mouse_rotate_sensitivity"`
	TranslateSensitivity   float32    `yaml:"translate_sensitivity" mapstructure:"translate_sensitivity"`

	// Bindings is the key table used by MapFPSInput. nil selects DefaultKeyBindings;
	// an empty non-nil slice disables keyboard movement.
	Bindings []KeyBinding `yaml:"-" mapstructure:"-"`
}

// DefaultFPS returns an enabled FPS config with the stock sensitivities.
func DefaultFPS() FPS {
	return FPS{
		Enabled:                true,
		MouseRotateSensitivity: mgl32.Vec2{0.002, 0.002},
		TranslateSensitivity:   0.5,
		Bindings:               DefaultKeyBindings(),
	}
}

// Validate reports sensitivities that are not finite.
//
// Returns:
//   - error: wraps ErrInvalidConfig, nil if the config is usable
func (c FPS) Validate() error {
	for _, v := range []float32{c.MouseRotateSensitivity.X(), c.MouseRotateSensitivity.Y(), c.TranslateSensitivity} {
		if !common.IsFinite(v) {
			return fmt.Errorf("fps sensitivity %v: %w", v, ErrInvalidConfig)
		}
	}
	return nil
}

func (c FPS) bindings() []KeyBinding {
	if c.Bindings == nil {
		return DefaultKeyBindings()
	}
	return c.Bindings
}

// MapFPSInput turns one tick of input into FPS events.
//
// One FPSRotate carrying the summed pointer motion is always queued, followed by one
// FPSTranslateEye per held bound key in binding order. A disabled config queues nothing.
//
// Parameters:
//   - cfg: the controller config
//   - frame: this tick's input
//   - events: the queue UpdateFPS will drain
//
// Returns:
//   - error: wraps ErrQueueFull if the queue overflowed; earlier events stay queued
func MapFPSInput(cfg FPS, frame input.Frame, events *EventQueue[FPSEvent]) error {
	if !cfg.Enabled {
		return nil
	}

	rotate := FPSRotate{Delta: mul2(frame.PointerDelta(), cfg.MouseRotateSensitivity)}
	if err := events.Send(rotate); err != nil {
		return fmt.Errorf("map fps input: %w", err)
	}

	for _, b := range cfg.bindings() {
		if !frame.Keys.Held(b.Key) {
			continue
		}
		if err := events.Send(FPSTranslateEye{Delta: b.Direction.Mul(cfg.TranslateSensitivity)}); err != nil {
			return fmt.Errorf("map fps input: %w", err)
		}
	}
	return nil
}

// UpdateFPS drains the queue and applies the events to current.
//
// Yaw and pitch are rebuilt from the look direction, and the level translation basis is
// taken from the yaw before any event is applied. After all events the pitch is clamped
// and the target is placed at the original radius in front of the new eye.
// When disabled, or when the queue is empty, current is returned unchanged.
//
// Parameters:
//   - cfg: the controller config
//   - current: the pose at the start of the tick
//   - events: the queue filled by MapFPSInput; always empty on return
//
// Returns:
//   - look.Transform: the pose at the end of the tick
//   - Report: what the update did
func UpdateFPS(cfg FPS, current look.Transform, events *EventQueue[FPSEvent]) (look.Transform, Report) {
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
	if current.IsDegenerate() {
		radius = look.MinRadius
		report.RadiusClamped = true
	}

	angles := look.AnglesFromVector(current.LookDirectionOr(look.DefaultForward))
	rigX, rigY, rigZ := angles.RigBasis()

	eye := current.Eye
	for _, ev := range drained {
		switch e := ev.(type) {
		case FPSRotate:
			angles.AddYaw(-e.Delta.X())
			angles.AddPitch(-e.Delta.Y())
		case FPSTranslateEye:
			eye = eye.Add(rigX.Mul(e.Delta.X())).Add(rigY.Mul(e.Delta.Y())).Add(rigZ.Mul(e.Delta.Z()))
		}
	}
	report.PitchClamped = angles.ClampPitch()

	return look.Transform{
		Eye:    eye,
		Target: eye.Add(angles.UnitVector().Mul(radius)),
		Up:     current.Up,
	}, report
}

func mul2(a, b mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{a.X() * b.X(), a.Y() * b.Y()}
}
