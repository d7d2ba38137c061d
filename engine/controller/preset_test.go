package controller

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalPreset_PartialKeepsDefaults(t *testing.T) {
	doc := []byte(`
fps:
  translate_sensitivity: 2
orbit:
  enabled: false
  mouse_rotate_sensitivity: [0.01, 0.02]
  max_radius: 40
`)
	p, err := UnmarshalPreset(doc)
	require.NoError(t, err)

	assert.True(t, p.FPS.Enabled)
	assert.Equal(t, float32(2), p.FPS.TranslateSensitivity)
	assert.Equal(t, DefaultFPS().MouseRotateSensitivity, p.FPS.MouseRotateSensitivity)
	assert.Equal(t, DefaultKeyBindings(), p.FPS.Bindings)

	assert.False(t, p.Orbit.Enabled)
	assert.Equal(t, mgl32.Vec2{0.01, 0.02}, p.Orbit.MouseRotateSensitivity)
	assert.Equal(t, float32(40), p.Orbit.MaxRadius)
	assert.Equal(t, DefaultOrbit().WheelZoomSensitivity, p.Orbit.WheelZoomSensitivity)
}

func TestUnmarshalPreset_Errors(t *testing.T) {
	_, err := UnmarshalPreset([]byte("orbit:\n  min_radius: 10\n  max_radius: 1\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = UnmarshalPreset([]byte("fps: [not, a, map]"))
	assert.Error(t, err)

	_, err = UnmarshalPreset([]byte("orbit:\n  mouse_rotate_sensitivity: [1, 2, 3]\n"))
	assert.Error(t, err, "vectors have exactly two components")
}

func TestMarshalPreset_UsesSnakeCaseKeys(t *testing.T) {
	out, err := MarshalPreset(DefaultPreset())
	require.NoError(t, err)
	assert.Contains(t, string(out), "wheel_zoom_sensitivity: 0.15")
	assert.Contains(t, string(out), "translate_sensitivity: 0.5")
	assert.NotContains(t, string(out), "bindings")

	back, err := UnmarshalPreset(out)
	require.NoError(t, err)
	assert.Equal(t, DefaultPreset(), back)
}
