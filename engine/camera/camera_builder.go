package camera

import (
	"github.com/Carmen-Shannon/oxy-rig/engine/controller"
	"github.com/Carmen-Shannon/oxy-rig/engine/look"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraBuilderOption is a functional option for configuring a camera in New.
type CameraBuilderOption func(*cameraImpl)

// WithEye sets the initial camera position.
//
// Parameters:
//   - eye: world-space position
//
// Returns:
//   - CameraBuilderOption: functional option to set the eye
func WithEye(eye mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.transform.Eye = eye
	}
}

// WithTarget sets the initial look-at point.
//
// Parameters:
//   - target: world-space point
//
// Returns:
//   - CameraBuilderOption: functional option to set the target
func WithTarget(target mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.transform.Target = target
	}
}

// WithUp sets the world-up reference.
//
// Parameters:
//   - up: up vector, must not be parallel to the look direction
//
// Returns:
//   - CameraBuilderOption: functional option to set the up vector
func WithUp(up mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.transform.Up = up
	}
}

// WithTransform sets the whole initial pose.
//
// Parameters:
//   - t: the pose
//
// Returns:
//   - CameraBuilderOption: functional option to set the pose
func WithTransform(t look.Transform) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.transform = t
	}
}

// WithLagWeight sets the smoothing lag weight.
//
// Parameters:
//   - lagWeight: fraction of the previous pose kept per reference tick, 0 disables smoothing
//
// Returns:
//   - CameraBuilderOption: functional option to set the lag weight
func WithLagWeight(lagWeight float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.smoother.SetLagWeight(lagWeight)
	}
}

// WithFPSController sets the first-person controller config.
//
// Parameters:
//   - cfg: the config
//
// Returns:
//   - CameraBuilderOption: functional option to set the FPS config
func WithFPSController(cfg controller.FPS) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fps = cfg
	}
}

// WithOrbitController sets the orbit controller config.
//
// Parameters:
//   - cfg: the config
//
// Returns:
//   - CameraBuilderOption: functional option to set the Orbit config
func WithOrbitController(cfg controller.Orbit) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.orbit = cfg
	}
}

// WithHandle assigns a known handle instead of a random one, e.g. when restoring a session.
//
// Parameters:
//   - handle: the handle to use
//
// Returns:
//   - CameraBuilderOption: functional option to set the handle
func WithHandle(handle Handle) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.handle = handle
	}
}

// WithSceneRotation pins the world rotation used as the orbit pan basis.
//
// Parameters:
//   - q: the world rotation
//
// Returns:
//   - CameraBuilderOption: functional option to set the scene rotation
func WithSceneRotation(q mgl32.Quat) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.sceneRotation = q.Normalize()
		c.hasSceneRotation = true
	}
}
