package controller

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventQueue_DefaultCapacity(t *testing.T) {
	assert.Equal(t, DefaultQueueCapacity, NewEventQueue[FPSEvent](0).Cap())
	assert.Equal(t, DefaultQueueCapacity, NewEventQueue[FPSEvent](-3).Cap())
	assert.Equal(t, 5, NewEventQueue[FPSEvent](5).Cap())
}

func TestEventQueue_DrainKeepsOrder(t *testing.T) {
	q := NewEventQueue[OrbitEvent](4)
	require.NoError(t, q.Send(OrbitRotate{Delta: mgl32.Vec2{1, 0}}))
	require.NoError(t, q.Send(OrbitTranslateTarget{Delta: mgl32.Vec2{0, 1}}))
	require.NoError(t, q.Send(OrbitZoom{Scalar: 0.5}))
	assert.Equal(t, 3, q.Len())

	got := q.Drain()
	assert.Equal(t, []OrbitEvent{
		OrbitRotate{Delta: mgl32.Vec2{1, 0}},
		OrbitTranslateTarget{Delta: mgl32.Vec2{0, 1}},
		OrbitZoom{Scalar: 0.5},
	}, got)
	assert.Equal(t, 0, q.Len())
	assert.Empty(t, q.Drain(), "a drained queue stays empty")
}

func TestEventQueue_DrainedSliceSurvivesSends(t *testing.T) {
	q := NewEventQueue[FPSEvent](4)
	require.NoError(t, q.Send(FPSRotate{Delta: mgl32.Vec2{1, 1}}))
	first := q.Drain()

	require.NoError(t, q.Send(FPSRotate{Delta: mgl32.Vec2{2, 2}}))
	assert.Equal(t, FPSRotate{Delta: mgl32.Vec2{1, 1}}, first[0])
}

func TestEventQueue_Full(t *testing.T) {
	q := NewEventQueue[FPSEvent](2)
	require.NoError(t, q.Send(FPSRotate{}))
	require.NoError(t, q.Send(FPSRotate{}))
	assert.ErrorIs(t, q.Send(FPSRotate{}), ErrQueueFull)
	assert.Equal(t, 2, q.Len())

	assert.Len(t, q.Drain(), 2)
	assert.NoError(t, q.Send(FPSRotate{}), "capacity is per tick")
}

func TestEventQueue_Discard(t *testing.T) {
	q := NewEventQueue[FPSEvent](4)
	require.NoError(t, q.Send(FPSRotate{}))
	require.NoError(t, q.Send(FPSTranslateEye{}))
	assert.Equal(t, 2, q.Discard())
	assert.Equal(t, 0, q.Len())
	assert.Empty(t, q.Drain())
}

func TestEvents_String(t *testing.T) {
	assert.Equal(t, "Rotate(1, -2)", FPSRotate{Delta: mgl32.Vec2{1, -2}}.String())
	assert.Equal(t, "TranslateEye(0, 0, 0.5)", FPSTranslateEye{Delta: mgl32.Vec3{0, 0, 0.5}}.String())
	assert.Equal(t, "Zoom(0.85)", OrbitZoom{Scalar: 0.85}.String())
}
