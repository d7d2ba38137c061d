package controller

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/Carmen-Shannon/oxy-rig/engine/look"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapFPSInput(t *testing.T) {
	cfg := DefaultFPS()
	frame := input.Frame{
		PointerMotion: []mgl32.Vec2{{10, 0}, {5, -2}},
		Keys:          input.NewKeySet(common.KeyD, common.KeyW),
	}
	q := NewEventQueue[FPSEvent](0)
	require.NoError(t, MapFPSInput(cfg, frame, q))

	got := q.Drain()
	require.Len(t, got, 3)

	rotate, ok := got[0].(FPSRotate)
	require.True(t, ok, "rotate comes first")
	assert.InDelta(t, 0.03, rotate.Delta.X(), 1e-6)
	assert.InDelta(t, -0.004, rotate.Delta.Y(), 1e-6)

	assert.Equal(t, FPSTranslateEye{Delta: mgl32.Vec3{0, 0, 0.5}}, got[1], "W is emitted before D")
	assert.Equal(t, FPSTranslateEye{Delta: mgl32.Vec3{-0.5, 0, 0}}, got[2])
}

func TestMapFPSInput_AlwaysRotates(t *testing.T) {
	q := NewEventQueue[FPSEvent](0)
	require.NoError(t, MapFPSInput(DefaultFPS(), input.Frame{}, q))
	assert.Equal(t, []FPSEvent{FPSRotate{}}, q.Drain())
}

func TestMapFPSInput_AllKeys(t *testing.T) {
	frame := input.Frame{Keys: input.NewKeySet(
		common.KeyW, common.KeyA, common.KeyS, common.KeyD, common.KeyLeftShift, common.KeySpace,
	)}
	q := NewEventQueue[FPSEvent](0)
	require.NoError(t, MapFPSInput(NewFPS(WithTranslateSensitivity(2)), frame, q))

	got := q.Drain()
	require.Len(t, got, 7)
	want := []mgl32.Vec3{{0, 0, 2}, {2, 0, 0}, {0, 0, -2}, {-2, 0, 0}, {0, -2, 0}, {0, 2, 0}}
	for i, w := range want {
		assert.Equal(t, FPSTranslateEye{Delta: w}, got[i+1])
	}
}

func TestMapFPSInput_Disabled(t *testing.T) {
	frame := input.Frame{
		PointerMotion: []mgl32.Vec2{{3, 3}},
		Keys:          input.NewKeySet(common.KeyW),
	}
	q := NewEventQueue[FPSEvent](0)
	require.NoError(t, MapFPSInput(NewFPS(WithFPSEnabled(false)), frame, q))
	assert.Equal(t, 0, q.Len())
}

func TestMapFPSInput_CustomBindings(t *testing.T) {
	cfg := NewFPS(WithKeyBindings(KeyBinding{Key: common.KeyE, Direction: mgl32.Vec3{0, 1, 0}}))
	frame := input.Frame{Keys: input.NewKeySet(common.KeyW, common.KeyE)}
	q := NewEventQueue[FPSEvent](0)
	require.NoError(t, MapFPSInput(cfg, frame, q))

	got := q.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, FPSTranslateEye{Delta: mgl32.Vec3{0, 0.5, 0}}, got[1])

	cfg = NewFPS(WithKeyBindings())
	require.NoError(t, MapFPSInput(cfg, frame, q))
	assert.Len(t, q.Drain(), 1, "empty bindings disable movement")
}

func TestMapFPSInput_QueueFull(t *testing.T) {
	frame := input.Frame{Keys: input.NewKeySet(common.KeyW, common.KeyS)}
	q := NewEventQueue[FPSEvent](2)
	err := MapFPSInput(DefaultFPS(), frame, q)
	assert.ErrorIs(t, err, ErrQueueFull)
	assert.Equal(t, 2, q.Len(), "events queued before the overflow are kept")
}

func TestUpdateFPS_DisabledIsIdempotent(t *testing.T) {
	start := look.NewTransform(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{4, 2, -1})
	q := fpsQueue(
		FPSRotate{Delta: mgl32.Vec2{0.4, -0.3}},
		FPSTranslateEye{Delta: mgl32.Vec3{0, 0, 5}},
	)

	got, report := UpdateFPS(NewFPS(WithFPSEnabled(false)), start, q)
	assert.Equal(t, start, got)
	assert.Equal(t, Report{Events: 2, Discarded: 2}, report)
	assert.Equal(t, 0, q.Len(), "disabled updates still drain")
}

func TestUpdateFPS_EmptyQueue(t *testing.T) {
	start := look.NewTransform(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{4, 2, -1})
	got, report := UpdateFPS(DefaultFPS(), start, fpsQueue())
	assert.Equal(t, start, got)
	assert.Equal(t, Report{}, report)
}

func TestUpdateFPS_TranslateInRigAxes(t *testing.T) {
	testCases := map[string]struct {
		target  mgl32.Vec3
		delta   mgl32.Vec3
		wantEye mgl32.Vec3
	}{
		"ForwardFacingPlusZ":  {target: mgl32.Vec3{0, 0, 1}, delta: mgl32.Vec3{0, 0, 1}, wantEye: mgl32.Vec3{0, 0, 1}},
		"ForwardFacingMinusZ": {target: mgl32.Vec3{0, 0, -1}, delta: mgl32.Vec3{0, 0, 1}, wantEye: mgl32.Vec3{0, 0, -1}},
		"ForwardFacingPlusX":  {target: mgl32.Vec3{3, 0, 0}, delta: mgl32.Vec3{0, 0, 2}, wantEye: mgl32.Vec3{2, 0, 0}},
		"StrafeFacingPlusZ":   {target: mgl32.Vec3{0, 0, 1}, delta: mgl32.Vec3{1, 0, 0}, wantEye: mgl32.Vec3{1, 0, 0}},
		"ClimbIsWorldUp":      {target: mgl32.Vec3{1, 0, 1}, delta: mgl32.Vec3{0, 1, 0}, wantEye: mgl32.Vec3{0, 1, 0}},
		"ForwardStaysLevel":   {target: mgl32.Vec3{0, 1, 1}, delta: mgl32.Vec3{0, 0, 1}, wantEye: mgl32.Vec3{0, 0, 1}},
	}

	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			start := look.NewTransform(mgl32.Vec3{}, tt.target)
			got, report := UpdateFPS(DefaultFPS(), start, fpsQueue(FPSTranslateEye{Delta: tt.delta}))

			assertVecNear(t, tt.wantEye, got.Eye, 1e-5)
			assert.InDelta(t, start.Radius(), got.Radius(), 1e-4)
			dirBefore, _ := start.LookDirection()
			dirAfter, _ := got.LookDirection()
			assertVecNear(t, dirBefore, dirAfter, 1e-4, "translation does not turn the view")
			assert.False(t, report.PitchClamped)
		})
	}
}

func TestUpdateFPS_RotateSigns(t *testing.T) {
	start := look.NewTransform(mgl32.Vec3{}, mgl32.Vec3{0, 0, 1})

	got, _ := UpdateFPS(DefaultFPS(), start, fpsQueue(FPSRotate{Delta: mgl32.Vec2{0.2, 0}}))
	angles := look.AnglesFromVector(got.Target.Sub(got.Eye))
	assert.InDelta(t, -0.2, angles.Yaw(), 1e-5)
	assert.Less(t, got.Target.X(), float32(0), "positive horizontal motion turns toward -X")

	got, _ = UpdateFPS(DefaultFPS(), start, fpsQueue(FPSRotate{Delta: mgl32.Vec2{0, -0.3}}))
	angles = look.AnglesFromVector(got.Target.Sub(got.Eye))
	assert.InDelta(t, 0.3, angles.Pitch(), 1e-5)
	assert.Equal(t, start.Eye, got.Eye, "rotation never moves the eye")
}

// Eye at (0,0,5) looking at the origin, then one Rotate and one TranslateEye in the same tick.
func TestUpdateFPS_RotateThenTranslateScenario(t *testing.T) {
	start := look.NewTransform(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	yawBefore := look.AnglesFromVector(start.Target.Sub(start.Eye)).Yaw()

	got, report := UpdateFPS(DefaultFPS(), start, fpsQueue(
		FPSRotate{Delta: mgl32.Vec2{0.1, 0}},
		FPSTranslateEye{Delta: mgl32.Vec3{0, 0, 1}},
	))
	require.Equal(t, 2, report.Events)

	yawAfter := look.AnglesFromVector(got.Target.Sub(got.Eye)).Yaw()
	assert.InDelta(t, yawBefore-0.1, yawAfter, 1e-5)

	// the basis comes from the yaw at the start of the tick
	assertVecNear(t, mgl32.Vec3{0, 0, 4}, got.Eye, 1e-5)
	assert.InDelta(t, 5, got.Radius(), 1e-4)

	s, c := common.Sincos(0.1)
	assertVecNear(t, mgl32.Vec3{5 * s, 0, 4 - 5*c}, got.Target, 1e-4)
}

func TestUpdateFPS_PoleGuard(t *testing.T) {
	testCases := map[string]struct {
		delta float32
		pitch float32
	}{
		"LookUp":   {delta: -1000, pitch: look.MaxPitch},
		"LookDown": {delta: 1000, pitch: look.MinPitch},
	}

	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			current := look.NewTransform(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1, 1, 4})
			for i := 0; i < 5; i++ {
				var report Report
				current, report = UpdateFPS(DefaultFPS(), current, fpsQueue(FPSRotate{Delta: mgl32.Vec2{0, tt.delta}}))
				assert.True(t, report.PitchClamped)
			}

			for i := 0; i < 3; i++ {
				f := float64(current.Target[i])
				require.False(t, math.IsNaN(f) || math.IsInf(f, 0))
			}
			pitch := look.AnglesFromVector(current.Target.Sub(current.Eye)).Pitch()
			assert.InDelta(t, tt.pitch, pitch, 1e-3)
			assert.InDelta(t, 3, current.Radius(), 1e-4)
		})
	}
}

func TestUpdateFPS_DegenerateRadius(t *testing.T) {
	start := look.NewTransform(mgl32.Vec3{2, 0, 0}, mgl32.Vec3{2, 0, 0})
	got, report := UpdateFPS(DefaultFPS(), start, fpsQueue(FPSRotate{}))

	assert.True(t, report.RadiusClamped)
	assert.InDelta(t, look.MinRadius, got.Radius(), 1e-6)
	assert.Equal(t, start.Eye, got.Eye)
}

func TestFPS_Validate(t *testing.T) {
	assert.NoError(t, DefaultFPS().Validate())

	nan := float32(math.NaN())
	bad := NewFPS(WithFPSRotateSensitivity(mgl32.Vec2{nan, 0}))
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)
}
