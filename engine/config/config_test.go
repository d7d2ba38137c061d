package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "oxyrig.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, float32(0.8), cfg.Smoothing.LagWeight)
	assert.Equal(t, 60.0, cfg.Engine.TickRate)
	assert.True(t, cfg.Orbit.Enabled)
	assert.True(t, cfg.FPS.Enabled)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
orbit:
  wheel_zoom_sensitivity: 0.3
  min_radius: 2
  max_radius: 50
  mouse_rotate_sensitivity: [0.01, 0.02]
fps:
  enabled: false
smoothing:
  lag_weight: 0.5
engine:
  tick_rate: 120
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, float32(0.3), cfg.Orbit.WheelZoomSensitivity)
	assert.Equal(t, float32(2), cfg.Orbit.MinRadius)
	assert.Equal(t, float32(50), cfg.Orbit.MaxRadius)
	assert.Equal(t, mgl32.Vec2{0.01, 0.02}, cfg.Orbit.MouseRotateSensitivity)
	assert.False(t, cfg.FPS.Enabled)
	assert.Equal(t, float32(0.5), cfg.Smoothing.LagWeight)
	assert.Equal(t, 120.0, cfg.Engine.TickRate)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// untouched keys keep their defaults
	def := DefaultConfig()
	assert.Equal(t, def.Orbit.MouseTranslateSensitivity, cfg.Orbit.MouseTranslateSensitivity)
	assert.Equal(t, def.Orbit.PanButton, cfg.Orbit.PanButton)
	assert.Equal(t, def.FPS.TranslateSensitivity, cfg.FPS.TranslateSensitivity)
	assert.Equal(t, def.Engine.QueueCapacity, cfg.Engine.QueueCapacity)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "orbit:\n  wheel_zoom_sensitivity: 0.3\n")
	t.Setenv("OXYRIG_ORBIT_WHEEL_ZOOM_SENSITIVITY", "0.05")
	t.Setenv("OXYRIG_FPS_MOUSE_ROTATE_SENSITIVITY", "0.004,0.001")
	t.Setenv("OXYRIG_ORBIT_MOUSE_TRANSLATE_SENSITIVITY", "0.5")
	t.Setenv("OXYRIG_ORBIT_PAN_BUTTON", "1")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, float32(0.05), cfg.Orbit.WheelZoomSensitivity)
	assert.Equal(t, mgl32.Vec2{0.004, 0.001}, cfg.FPS.MouseRotateSensitivity)
	assert.Equal(t, mgl32.Vec2{0.5, 0.5}, cfg.Orbit.MouseTranslateSensitivity)
	assert.Equal(t, uint32(common.MouseButtonRight), cfg.Orbit.PanButton)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("OXYRIG_SMOOTHING_LAG_WEIGHT", "0")
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, float32(0), cfg.Smoothing.LagWeight)
	assert.Equal(t, DefaultConfig().Orbit, cfg.Orbit)
}

func TestLoad_Errors(t *testing.T) {
	testCases := map[string]struct {
		body    string
		invalid bool
	}{
		"LagWeightOne":     {body: "smoothing:\n  lag_weight: 1\n", invalid: true},
		"NegativeLag":      {body: "smoothing:\n  lag_weight: -0.1\n", invalid: true},
		"ZeroTickRate":     {body: "engine:\n  tick_rate: 0\n", invalid: true},
		"NegativeCapacity": {body: "engine:\n  queue_capacity: -1\n", invalid: true},
		"InvertedBounds":   {body: "orbit:\n  min_radius: 10\n  max_radius: 1\n", invalid: true},
		"UnknownLevel":     {body: "logging:\n  level: chatty\n", invalid: true},
		"UnknownFormat":    {body: "logging:\n  format: xml\n", invalid: true},
		"BadVector":        {body: "orbit:\n  mouse_rotate_sensitivity: [1, 2, 3]\n"},
		"MalformedYAML":    {body: "orbit: [\n"},
		"VectorWrongType":  {body: "fps:\n  mouse_rotate_sensitivity: nope\n"},
	}

	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.body)
			_, err := Load(path)
			require.Error(t, err)
			if tt.invalid {
				assert.ErrorIs(t, err, ErrInvalidPreset)
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_SearchFallsBackToDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfig_Preset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Orbit.MaxRadius = 9
	p := cfg.Preset()
	assert.Equal(t, cfg.FPS, p.FPS)
	assert.Equal(t, float32(9), p.Orbit.MaxRadius)
}

func TestParseVec2(t *testing.T) {
	testCases := map[string]struct {
		input   string
		want    mgl32.Vec2
		wantErr bool
	}{
		"Pair":       {input: "1,2", want: mgl32.Vec2{1, 2}},
		"Spaced":     {input: "0.5 0.25", want: mgl32.Vec2{0.5, 0.25}},
		"Single":     {input: "3", want: mgl32.Vec2{3, 3}},
		"Empty":      {input: "", wantErr: true},
		"Three":      {input: "1,2,3", wantErr: true},
		"NotANumber": {input: "x,1", wantErr: true},
	}

	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			got, err := parseVec2(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_VectorLists(t *testing.T) {
	testCases := map[string]struct {
		body    string
		want    mgl32.Vec2
		wantErr bool
	}{
		"Pair":        {body: "orbit:\n  mouse_rotate_sensitivity: [0.01, 0.02]\n", want: mgl32.Vec2{0.01, 0.02}},
		"Single":      {body: "orbit:\n  mouse_rotate_sensitivity: [0.5]\n", want: mgl32.Vec2{0.5, 0.5}},
		"Integers":    {body: "orbit:\n  mouse_rotate_sensitivity: [1, 2]\n", want: mgl32.Vec2{1, 2}},
		"Three":       {body: "orbit:\n  mouse_rotate_sensitivity: [1, 2, 3]\n", wantErr: true},
		"Empty":       {body: "orbit:\n  mouse_rotate_sensitivity: []\n", wantErr: true},
		"NotANumber":  {body: "orbit:\n  mouse_rotate_sensitivity: [a, 1]\n", wantErr: true},
		"NestedLists": {body: "orbit:\n  mouse_rotate_sensitivity: [[1], 2]\n", wantErr: true},
	}

	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.body)
			var (
				cfg Config
				err error
			)
			require.NotPanics(t, func() { cfg, err = Load(path) })
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want.X(), cfg.Orbit.MouseRotateSensitivity.X(), 1e-6)
			assert.InDelta(t, tt.want.Y(), cfg.Orbit.MouseRotateSensitivity.Y(), 1e-6)
		})
	}
}

func TestWatch_SkipsOversizedVector(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "smoothing:\n  lag_weight: 0.5\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- watch(ctx, path, 10*time.Millisecond, zerolog.Nop(), func(c Config) { got <- c })
	}()
	time.Sleep(100 * time.Millisecond)

	writeConfig(t, dir, "orbit:\n  mouse_rotate_sensitivity: [1, 2, 3]\n")
	time.Sleep(100 * time.Millisecond)
	writeConfig(t, dir, "smoothing:\n  lag_weight: 0.3\n")

	select {
	case c := <-got:
		assert.Equal(t, float32(0.3), c.Smoothing.LagWeight)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after the oversized vector was skipped")
	}

	cancel()
	assert.NoError(t, <-done)
}

func TestWatch_Reloads(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "smoothing:\n  lag_weight: 0.5\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- watch(ctx, path, 10*time.Millisecond, zerolog.Nop(), func(c Config) { changes <- c })
	}()

	// give the watcher time to register the directory
	time.Sleep(100 * time.Millisecond)

	// an invalid write is skipped
	writeConfig(t, dir, "smoothing:\n  lag_weight: 7\n")
	select {
	case c := <-changes:
		t.Fatalf("invalid config delivered: %+v", c)
	case <-time.After(200 * time.Millisecond):
	}

	writeConfig(t, dir, "smoothing:\n  lag_weight: 0.25\n")
	select {
	case c := <-changes:
		assert.Equal(t, float32(0.25), c.Smoothing.LagWeight)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload after a valid write")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop on cancel")
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "gone", "oxyrig.yaml"), zerolog.Nop(), func(Config) {})
	assert.Error(t, err)
}
