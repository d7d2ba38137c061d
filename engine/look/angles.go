package look

import (
	"math"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/go-gl/mathgl/mgl32"
)

// PoleEpsilon is the margin, in radians, kept between pitch and straight up or down.
const PoleEpsilon float32 = 0.01

// Pitch bounds enforced by ClampPitch. Neither bound reaches the pole.
const (
	MaxPitch float32 = math.Pi/2 - PoleEpsilon
	MinPitch float32 = -MaxPitch
)

var (
	axisX = mgl32.Vec3{1, 0, 0}
	axisY = mgl32.Vec3{0, 1, 0}
	axisZ = mgl32.Vec3{0, 0, 1}
)

// Angles is a yaw/pitch look orientation.
//
// Yaw 0 faces +Z and increases toward +X. Positive pitch looks toward +Y.
// AddYaw and AddPitch are unconstrained; ClampPitch restores the pole guard and is
// expected to run once after all mutations of a tick.
type Angles struct {
	yaw   float32
	pitch float32
}

// NewAngles creates Angles from yaw and pitch in radians. Pitch is clamped to the pole guard.
//
// Parameters:
//   - yaw: horizontal angle in radians
//   - pitch: vertical angle in radians
//
// Returns:
//   - Angles: the orientation
func NewAngles(yaw, pitch float32) Angles {
	a := Angles{yaw: yaw}
	a.SetPitch(pitch)
	return a
}

// AnglesFromVector derives yaw and pitch from a direction vector.
// The vector does not need to be normalized. A zero or non-finite vector yields
// the zero orientation. Vertical input is clamped to the pole guard rather than rejected.
//
// Parameters:
//   - direction: the look direction
//
// Returns:
//   - Angles: the orientation pointing along direction
func AnglesFromVector(direction mgl32.Vec3) Angles {
	length := direction.Len()
	if length == 0 || !common.IsFinite(length) {
		return Angles{}
	}

	var yaw float32
	if direction.X() != 0 || direction.Z() != 0 {
		yaw = common.Atan2(direction.X(), direction.Z())
	}

	a := Angles{
		yaw:   yaw,
		pitch: common.Asin(direction.Y() / length),
	}
	a.ClampPitch()
	return a
}

// Yaw returns the horizontal angle in radians.
func (a Angles) Yaw() float32 {
	return a.yaw
}

// Pitch returns the vertical angle in radians.
func (a Angles) Pitch() float32 {
	return a.pitch
}

// SetYaw sets the horizontal angle in radians.
func (a *Angles) SetYaw(yaw float32) {
	a.yaw = yaw
}

// SetPitch sets the vertical angle in radians, clamped to the pole guard.
func (a *Angles) SetPitch(pitch float32) {
	a.pitch = pitch
	a.ClampPitch()
}

// AddYaw adds delta to the yaw. Yaw is unbounded and wraps through trig periodicity.
func (a *Angles) AddYaw(delta float32) {
	a.yaw += delta
}

// AddPitch adds delta to the pitch without clamping.
func (a *Angles) AddPitch(delta float32) {
	a.pitch += delta
}

// ClampPitch pulls the pitch back inside [MinPitch, MaxPitch].
// A NaN pitch is reset to level.
//
// Returns:
//   - bool: true if the pitch had to be changed
func (a *Angles) ClampPitch() bool {
	switch {
	case math.IsNaN(float64(a.pitch)):
		a.pitch = 0
	case a.pitch > MaxPitch:
		a.pitch = MaxPitch
	case a.pitch < MinPitch:
		a.pitch = MinPitch
	default:
		return false
	}
	return true
}

// YawRotation returns the rotation about +Y by the current yaw.
func (a Angles) YawRotation() mgl32.Quat {
	return mgl32.QuatRotate(a.yaw, axisY)
}

// RigBasis returns the yaw-only rotated axes used for level translation.
// Pitch is ignored so that moving forward never climbs or dives.
//
// Returns:
//   - x: the rotated +X axis
//   - y: the rotated +Y axis (always world up)
//   - z: the rotated +Z axis (horizontal forward)
func (a Angles) RigBasis() (x, y, z mgl32.Vec3) {
	q := a.YawRotation()
	return q.Rotate(axisX), q.Rotate(axisY), q.Rotate(axisZ)
}

// UnitVector rebuilds the direction described by the angles.
// +Z is rotated by yaw about +Y, then pitched about the axis perpendicular to the
// result and +Y. This is the inverse of AnglesFromVector away from the poles.
//
// Returns:
//   - mgl32.Vec3: unit length direction
func (a Angles) UnitVector() mgl32.Vec3 {
	ray := a.YawRotation().Rotate(axisZ)
	pitchAxis := ray.Cross(axisY).Normalize()
	return mgl32.QuatRotate(a.pitch, pitchAxis).Rotate(ray).Normalize()
}
