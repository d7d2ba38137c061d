package look

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransform_RadiusAndDirection(t *testing.T) {
	tf := NewTransform(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0})

	assert.InDelta(t, 5, tf.Radius(), 1e-6)
	dir, ok := tf.LookDirection()
	require.True(t, ok)
	assertVecNear(t, mgl32.Vec3{0, 0, -1}, dir, 1e-6)
	assert.Equal(t, DefaultUp, tf.Up)
	assert.NoError(t, tf.Validate())
}

func TestTransform_Degenerate(t *testing.T) {
	tf := NewTransform(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{1, 2, 3})

	assert.True(t, tf.IsDegenerate())
	dir, ok := tf.LookDirection()
	assert.False(t, ok)
	assert.Equal(t, mgl32.Vec3{}, dir)
	assert.Equal(t, DefaultForward, tf.LookDirectionOr(DefaultForward))
	assert.ErrorIs(t, tf.Validate(), ErrDegenerateRadius)
}

func TestTransform_ValidateUpParallel(t *testing.T) {
	tf := Transform{
		Eye:    mgl32.Vec3{0, 0, 0},
		Target: mgl32.Vec3{0, 10, 0},
		Up:     mgl32.Vec3{0, 1, 0},
	}
	assert.ErrorIs(t, tf.Validate(), ErrUpParallel)

	tf.Up = mgl32.Vec3{}
	assert.ErrorIs(t, tf.Validate(), ErrUpParallel)
}

func TestTransform_WithRadiusFloor(t *testing.T) {
	testCases := map[string]struct {
		transform  Transform
		floor      float32
		moved      bool
		wantRadius float32
	}{
		"AlreadyFar": {
			transform:  NewTransform(mgl32.Vec3{0, 0, 3}, mgl32.Vec3{}),
			floor:      1,
			moved:      false,
			wantRadius: 3,
		},
		"TooClose": {
			transform:  NewTransform(mgl32.Vec3{0, 0, 0.5}, mgl32.Vec3{}),
			floor:      2,
			moved:      true,
			wantRadius: 2,
		},
		"Coincident": {
			transform:  NewTransform(mgl32.Vec3{4, 4, 4}, mgl32.Vec3{4, 4, 4}),
			floor:      0,
			moved:      true,
			wantRadius: MinRadius,
		},
	}

	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			got, moved := tt.transform.WithRadiusFloor(tt.floor)
			assert.Equal(t, tt.moved, moved)
			assert.InDelta(t, tt.wantRadius, got.Radius(), 1e-5)
			assert.Equal(t, tt.transform.Target, got.Target, "target is the pivot and must not move")
		})
	}
}

func TestTransform_WithRadiusFloorKeepsDirection(t *testing.T) {
	tf := NewTransform(mgl32.Vec3{0.1, 0, 0}, mgl32.Vec3{})
	got, moved := tf.WithRadiusFloor(1)
	require.True(t, moved)
	assertVecNear(t, mgl32.Vec3{1, 0, 0}, got.Eye, 1e-5)
}

func TestTransform_Rotation(t *testing.T) {
	testCases := map[string]Transform{
		"LookingDownMinusZ": NewTransform(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}),
		"LookingDownPlusX":  NewTransform(mgl32.Vec3{-2, 0, 0}, mgl32.Vec3{3, 0, 0}),
		"Oblique":           NewTransform(mgl32.Vec3{1, 4, -2}, mgl32.Vec3{-3, 0.5, 6}),
	}

	for name, tf := range testCases {
		tf := tf
		t.Run(name, func(t *testing.T) {
			q := tf.Rotation()
			forward, _ := tf.LookDirection()
			assertVecNear(t, forward, q.Rotate(mgl32.Vec3{0, 0, -1}), 1e-4)

			up := q.Rotate(mgl32.Vec3{0, 1, 0})
			assert.InDelta(t, 0, up.Dot(forward), 1e-4)
			assert.Greater(t, up.Y(), float32(0), "camera up stays on the world-up side")

			right := q.Rotate(mgl32.Vec3{1, 0, 0})
			assert.InDelta(t, 0, right.Y(), 1e-4, "no roll")
		})
	}

	q := NewTransform(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}).Rotation()
	assert.True(t, q.ApproxEqualThreshold(mgl32.QuatIdent(), 1e-5))
}

func TestTransform_RotationUpParallel(t *testing.T) {
	tf := Transform{Eye: mgl32.Vec3{0, 5, 0}, Target: mgl32.Vec3{}, Up: DefaultUp}
	q := tf.Rotation()
	assertFinite(t, q.V)
	assertVecNear(t, mgl32.Vec3{0, -1, 0}, q.Rotate(mgl32.Vec3{0, 0, -1}), 1e-4)
}

func TestTransform_Lerp(t *testing.T) {
	a := Transform{Eye: mgl32.Vec3{0, 0, 0}, Target: mgl32.Vec3{10, 0, 0}, Up: DefaultUp}
	b := Transform{Eye: mgl32.Vec3{2, 4, 6}, Target: mgl32.Vec3{0, 0, 0}, Up: mgl32.Vec3{1, 0, 0}}

	assert.Equal(t, a.Eye, a.Lerp(b, 0).Eye)
	assertVecNear(t, b.Eye, a.Lerp(b, 1).Eye, 1e-6)

	mid := a.Lerp(b, 0.5)
	assertVecNear(t, mgl32.Vec3{1, 2, 3}, mid.Eye, 1e-6)
	assertVecNear(t, mgl32.Vec3{5, 0, 0}, mid.Target, 1e-6)
	assert.Equal(t, b.Up, mid.Up)
}
