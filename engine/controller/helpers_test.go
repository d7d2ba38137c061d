package controller

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertVecNear(t *testing.T, want, got mgl32.Vec3, delta float64, msgAndArgs ...interface{}) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], delta, msgAndArgs...)
	}
}

func fpsQueue(events ...FPSEvent) *EventQueue[FPSEvent] {
	q := NewEventQueue[FPSEvent](0)
	for _, e := range events {
		_ = q.Send(e)
	}
	return q
}

func orbitQueue(events ...OrbitEvent) *EventQueue[OrbitEvent] {
	q := NewEventQueue[OrbitEvent](0)
	for _, e := range events {
		_ = q.Send(e)
	}
	return q
}
