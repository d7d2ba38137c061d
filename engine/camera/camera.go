package camera

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-rig/engine/controller"
	"github.com/Carmen-Shannon/oxy-rig/engine/look"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultLagWeight is the smoothing applied when no lag weight option is given.
const DefaultLagWeight float32 = 0.8

type cameraImpl struct {
	mu *sync.Mutex

	handle Handle
	mode   Mode

	transform look.Transform
	smoother  *look.Smoother
	smoothed  look.Transform

	sceneRotation    mgl32.Quat
	hasSceneRotation bool

	fps   controller.FPS
	orbit controller.Orbit
}

// Camera is a controllable eye/target rig.
//
// The raw transform is what the controllers write each tick; the smoothed transform
// trails it through the camera's Smoother and is what a renderer should draw from.
// Both controller configs are kept so the camera can switch modes without losing settings.
type Camera interface {
	// Handle returns the camera's identity.
	//
	// Returns:
	//   - Handle: the handle, never NilHandle
	Handle() Handle

	// Mode returns which controller drives the camera.
	//
	// Returns:
	//   - Mode: the current mode
	Mode() Mode

	// SetMode switches the driving controller. The pose is kept.
	//
	// Parameters:
	//   - mode: the new mode
	SetMode(mode Mode)

	// Transform returns the raw, unsmoothed pose.
	//
	// Returns:
	//   - look.Transform: the raw pose
	Transform() look.Transform

	// SetTransform replaces the raw pose. The smoother keeps blending from where it was,
	// so the visible camera glides to the new pose.
	//
	// Parameters:
	//   - t: the new pose
	SetTransform(t look.Transform)

	// Teleport replaces the raw pose and restarts the smoother from it so the visible camera jumps.
	//
	// Parameters:
	//   - t: the new pose
	Teleport(t look.Transform)

	// Smoothed returns the pose after smoothing. Before the first Advance it equals Transform.
	//
	// Returns:
	//   - look.Transform: the smoothed pose
	Smoothed() look.Transform

	// Advance stores next as the raw pose and feeds it through the smoother.
	// The tick driver calls this once per tick after the controller update.
	//
	// Parameters:
	//   - next: the pose produced by the controller update
	//   - dt: seconds since the previous tick
	//
	// Returns:
	//   - look.Transform: the smoothed pose
	Advance(next look.Transform, dt float32) look.Transform

	// LagWeight returns the smoothing lag weight.
	//
	// Returns:
	//   - float32: fraction of the previous pose kept per reference tick
	LagWeight() float32

	// SetLagWeight sets the smoothing lag weight, clamped to [0, look.MaxLagWeight].
	//
	// Parameters:
	//   - lagWeight: fraction of the previous pose kept per reference tick
	SetLagWeight(lagWeight float32)

	// SceneRotation returns the camera's world rotation used as the orbit pan basis.
	// A rotation set with SetSceneRotation wins; otherwise it is derived from the smoothed pose.
	//
	// Returns:
	//   - mgl32.Quat: the world rotation, camera forward along its local -Z
	SceneRotation() mgl32.Quat

	// SetSceneRotation pins the world rotation supplied by the host scene graph.
	//
	// Parameters:
	//   - q: the world rotation
	SetSceneRotation(q mgl32.Quat)

	// ClearSceneRotation goes back to deriving the world rotation from the smoothed pose.
	ClearSceneRotation()

	// FPS returns the first-person controller config.
	//
	// Returns:
	//   - controller.FPS: the config
	FPS() controller.FPS

	// SetFPS replaces the first-person controller config.
	//
	// Parameters:
	//   - cfg: the config
	SetFPS(cfg controller.FPS)

	// Orbit returns the orbit controller config.
	//
	// Returns:
	//   - controller.Orbit: the config
	Orbit() controller.Orbit

	// SetOrbit replaces the orbit controller config.
	//
	// Parameters:
	//   - cfg: the config
	SetOrbit(cfg controller.Orbit)

	// Enabled reports whether the controller for the current mode reacts to input.
	//
	// Returns:
	//   - bool: the enabled flag of the active controller
	Enabled() bool

	// SetEnabled sets the enabled flag of the controller for the current mode.
	//
	// Parameters:
	//   - enabled: false makes the controller drop input
	SetEnabled(enabled bool)

	// ViewMatrix returns the right-handed view matrix of the smoothed pose.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4
}

var _ Camera = &cameraImpl{}

// New creates a camera in the given mode. Without options it sits at (0, 0, 5) looking
// at the origin with DefaultLagWeight smoothing and the default controller configs.
//
// Parameters:
//   - mode: which controller drives the camera
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
//   - error: wraps ErrDegenerateTransform if the initial pose is unusable
func New(mode Mode, options ...CameraBuilderOption) (Camera, error) {
	c := &cameraImpl{
		mu:        &sync.Mutex{},
		handle:    NewHandle(),
		mode:      mode,
		transform: look.NewTransform(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}),
		smoother:  look.NewSmoother(DefaultLagWeight),
		fps:       controller.DefaultFPS(),
		orbit:     controller.DefaultOrbit(),
	}
	for _, option := range options {
		option(c)
	}
	if c.handle.IsNil() {
		c.handle = NewHandle()
	}
	if err := c.transform.Validate(); err != nil {
		return nil, fmt.Errorf("new %s camera: %w: %w", mode, ErrDegenerateTransform, err)
	}
	c.smoothed = c.smoother.Smooth(c.transform, 0)
	return c, nil
}

func (c *cameraImpl) Handle() Handle {
	return c.handle
}

func (c *cameraImpl) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *cameraImpl) SetMode(mode Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = mode
}

func (c *cameraImpl) Transform() look.Transform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transform
}

func (c *cameraImpl) SetTransform(t look.Transform) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transform = t
}

func (c *cameraImpl) Teleport(t look.Transform) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transform = t
	c.smoother.Reset()
	c.smoothed = c.smoother.Smooth(t, 0)
}

func (c *cameraImpl) Smoothed() look.Transform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.smoothed
}

func (c *cameraImpl) Advance(next look.Transform, dt float32) look.Transform {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transform = next
	c.smoothed = c.smoother.Smooth(next, dt)
	return c.smoothed
}

func (c *cameraImpl) LagWeight() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.smoother.LagWeight()
}

func (c *cameraImpl) SetLagWeight(lagWeight float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.smoother.SetLagWeight(lagWeight)
}

func (c *cameraImpl) SceneRotation() mgl32.Quat {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hasSceneRotation {
		return c.sceneRotation
	}
	return c.smoothed.Rotation()
}

func (c *cameraImpl) SetSceneRotation(q mgl32.Quat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sceneRotation = q.Normalize()
	c.hasSceneRotation = true
}

func (c *cameraImpl) ClearSceneRotation() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hasSceneRotation = false
}

func (c *cameraImpl) FPS() controller.FPS {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fps
}

func (c *cameraImpl) SetFPS(cfg controller.FPS) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fps = cfg
}

func (c *cameraImpl) Orbit() controller.Orbit {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orbit
}

func (c *cameraImpl) SetOrbit(cfg controller.Orbit) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orbit = cfg
}

func (c *cameraImpl) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == ModeOrbit {
		return c.orbit.Enabled
	}
	return c.fps.Enabled
}

func (c *cameraImpl) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == ModeOrbit {
		c.orbit.Enabled = enabled
		return
	}
	c.fps.Enabled = enabled
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.smoothed
	return mgl32.LookAtV(t.Eye, t.Target, t.Up)
}
