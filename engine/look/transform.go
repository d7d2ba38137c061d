package look

import (
	"github.com/go-gl/mathgl/mgl32"
)

// MinRadius is the smallest eye-to-target distance the controllers will produce.
const MinRadius float32 = 1e-4

// parallelThreshold is the squared cross-product length below which two unit
// vectors are treated as parallel.
const parallelThreshold float32 = 1e-10

var (
	// DefaultUp is the world up reference.
	DefaultUp = mgl32.Vec3{0, 1, 0}

	// DefaultForward is used as the look direction whenever eye and target coincide.
	DefaultForward = mgl32.Vec3{0, 0, -1}
)

// Transform is an eye/target/up camera pose.
// It is a plain value; the owner is the only writer during a tick.
type Transform struct {
	Eye    mgl32.Vec3 `yaml:"eye"`
	Target mgl32.Vec3 `yaml:"target"`
	Up     mgl32.Vec3 `yaml:"up"`
}

// NewTransform creates a Transform looking from eye to target with DefaultUp.
//
// Parameters:
//   - eye: camera position
//   - target: point being looked at
//
// Returns:
//   - Transform: the pose
func NewTransform(eye, target mgl32.Vec3) Transform {
	return Transform{Eye: eye, Target: target, Up: DefaultUp}
}

// Radius returns the distance from eye to target.
func (t Transform) Radius() float32 {
	return t.Target.Sub(t.Eye).Len()
}

// IsDegenerate reports whether the radius is below MinRadius or not a number.
func (t Transform) IsDegenerate() bool {
	return !(t.Radius() >= MinRadius)
}

// LookDirection returns the normalized direction from eye to target.
//
// Returns:
//   - mgl32.Vec3: the unit look direction, or the zero vector when degenerate
//   - bool: false if eye and target coincide
func (t Transform) LookDirection() (mgl32.Vec3, bool) {
	if t.IsDegenerate() {
		return mgl32.Vec3{}, false
	}
	return t.Target.Sub(t.Eye).Normalize(), true
}

// LookDirectionOr returns LookDirection, or fallback when the transform is degenerate.
//
// Parameters:
//   - fallback: direction to use when eye and target coincide
//
// Returns:
//   - mgl32.Vec3: a usable look direction
func (t Transform) LookDirectionOr(fallback mgl32.Vec3) mgl32.Vec3 {
	if dir, ok := t.LookDirection(); ok {
		return dir
	}
	return fallback
}

// WithRadiusFloor returns a copy whose eye is pushed back from the target so the
// radius is at least floor. The current look direction is kept; DefaultForward is
// used when there is none.
//
// Parameters:
//   - floor: minimum radius, raised to MinRadius if smaller
//
// Returns:
//   - Transform: the adjusted pose
//   - bool: true if the eye was moved
func (t Transform) WithRadiusFloor(floor float32) (Transform, bool) {
	if floor < MinRadius {
		floor = MinRadius
	}
	if t.Radius() >= floor {
		return t, false
	}
	dir := t.LookDirectionOr(DefaultForward)
	t.Eye = t.Target.Sub(dir.Mul(floor))
	return t, true
}

// Validate checks the invariants the controllers rely on.
//
// Returns:
//   - error: ErrDegenerateRadius or ErrUpParallel, nil if the pose is usable
func (t Transform) Validate() error {
	dir, ok := t.LookDirection()
	if !ok {
		return ErrDegenerateRadius
	}
	up := t.Up
	if up.Len() == 0 {
		return ErrUpParallel
	}
	c := dir.Cross(up.Normalize())
	if c.Dot(c) < parallelThreshold {
		return ErrUpParallel
	}
	return nil
}

// Rotation returns the world rotation of a camera at Eye looking at Target,
// with the camera's forward along its local -Z and its up along local +Y.
// When Up is parallel to the look direction an arbitrary perpendicular is used.
//
// Returns:
//   - mgl32.Quat: the camera's world rotation
func (t Transform) Rotation() mgl32.Quat {
	forward := t.LookDirectionOr(DefaultForward)

	up := t.Up
	if up.Len() == 0 {
		up = DefaultUp
	}
	right := forward.Cross(up)
	if right.Dot(right) < parallelThreshold {
		right = forward.Cross(axisZ)
		if right.Dot(right) < parallelThreshold {
			right = forward.Cross(axisX)
		}
	}
	right = right.Normalize()
	camUp := right.Cross(forward)

	basis := mgl32.Mat3FromCols(right, camUp, forward.Mul(-1))
	return mgl32.Mat4ToQuat(basis.Mat4()).Normalize()
}

// Lerp blends eye and target toward to by weight. Up is taken from to.
// weight is expected in [0, 1]; the result never leaves the segment between the two poses.
//
// Parameters:
//   - to: the pose to blend toward
//   - weight: 0 keeps t, 1 yields to
//
// Returns:
//   - Transform: the blended pose
func (t Transform) Lerp(to Transform, weight float32) Transform {
	keep := 1 - weight
	return Transform{
		Eye:    t.Eye.Mul(keep).Add(to.Eye.Mul(weight)),
		Target: t.Target.Mul(keep).Add(to.Target.Mul(weight)),
		Up:     to.Up,
	}
}
