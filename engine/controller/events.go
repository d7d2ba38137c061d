package controller

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// FPSEvent is an input event consumed by UpdateFPS.
// The set of implementations is closed: FPSRotate and FPSTranslateEye.
type FPSEvent interface {
	fpsEvent()
	fmt.Stringer
}

// FPSRotate turns the view. X is horizontal pointer motion, Y is vertical, both already scaled.
type FPSRotate struct {
	Delta mgl32.Vec2
}

// FPSTranslateEye moves the eye in rig-local axes: +X left of a rig facing +Z, +Y up, +Z forward.
type FPSTranslateEye struct {
	Delta mgl32.Vec3
}

func (FPSRotate) fpsEvent()       {}
func (FPSTranslateEye) fpsEvent() {}

func (e FPSRotate) String() string {
	return fmt.Sprintf("Rotate(%g, %g)", e.Delta.X(), e.Delta.Y())
}

func (e FPSTranslateEye) String() string {
	return fmt.Sprintf("TranslateEye(%g, %g, %g)", e.Delta.X(), e.Delta.Y(), e.Delta.Z())
}

// OrbitEvent is an input event consumed by UpdateOrbit.
// The set of implementations is closed: OrbitRotate, OrbitTranslateTarget and OrbitZoom.
type OrbitEvent interface {
	orbitEvent()
	fmt.Stringer
}

// OrbitRotate swings the eye around the target.
type OrbitRotate struct {
	Delta mgl32.Vec2
}

// OrbitTranslateTarget pans the target in the camera's screen plane.
type OrbitTranslateTarget struct {
	Delta mgl32.Vec2
}

// OrbitZoom multiplies the eye-to-target distance by Scalar. 1 leaves it unchanged.
type OrbitZoom struct {
	Scalar float32
}

func (OrbitRotate) orbitEvent()          {}
func (OrbitTranslateTarget) orbitEvent() {}
func (OrbitZoom) orbitEvent()            {}

func (e OrbitRotate) String() string {
	return fmt.Sprintf("Orbit(%g, %g)", e.Delta.X(), e.Delta.Y())
}

func (e OrbitTranslateTarget) String() string {
	return fmt.Sprintf("TranslateTarget(%g, %g)", e.Delta.X(), e.Delta.Y())
}

func (e OrbitZoom) String() string {
	return fmt.Sprintf("Zoom(%g)", e.Scalar)
}
