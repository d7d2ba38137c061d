// Package config loads controller presets and engine settings with viper.
package config

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-rig/engine/controller"
	"github.com/Carmen-Shannon/oxy-rig/engine/logging"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. OXYRIG_ORBIT_WHEEL_ZOOM_SENSITIVITY.
const EnvPrefix = "OXYRIG"

// ErrInvalidPreset is returned when a loaded config fails validation.
var ErrInvalidPreset = errors.New("config: invalid preset")

// Config is everything the rig reads from file and environment.
type Config struct {
	FPS       controller.FPS   `mapstructure:"fps" yaml:"fps"`
	Orbit     controller.Orbit `mapstructure:"orbit" yaml:"orbit"`
	Smoothing Smoothing        `mapstructure:"smoothing" yaml:"smoothing"`
	Engine    Engine           `mapstructure:"engine" yaml:"engine"`
	Logging   logging.Config   `mapstructure:"logging" yaml:"logging"`
}

// Smoothing configures every camera's smoother.
type Smoothing struct {
	// LagWeight is the fraction of the previous pose kept per 1/60 s. 0 disables smoothing.
	LagWeight float32 `mapstructure:"lag_weight" yaml:"lag_weight"`
}

// Engine configures the tick driver.
type Engine struct {
	TickRate      float64 `mapstructure:"tick_rate" yaml:"tick_rate"`
	QueueCapacity int     `mapstructure:"queue_capacity" yaml:"queue_capacity"`
	Profiling     bool    `mapstructure:"profiling" yaml:"profiling"`
}

// DefaultConfig returns the stock controller presets, 0.8 lag at a 60 Hz tick and info logging.
func DefaultConfig() Config {
	return Config{
		FPS:       controller.DefaultFPS(),
		Orbit:     controller.DefaultOrbit(),
		Smoothing: Smoothing{LagWeight: 0.8},
		Engine: Engine{
			TickRate:      60,
			QueueCapacity: controller.DefaultQueueCapacity,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Preset returns the controller part of the config.
func (c Config) Preset() controller.Preset {
	return controller.Preset{FPS: c.FPS, Orbit: c.Orbit}
}

// Validate checks the controllers, smoothing, engine settings and logging.
//
// Returns:
//   - error: wraps ErrInvalidPreset, nil if the config is usable
func (c Config) Validate() error {
	if err := c.Preset().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPreset, err)
	}
	if !(c.Smoothing.LagWeight >= 0 && c.Smoothing.LagWeight < 1) {
		return fmt.Errorf("%w: lag weight %v outside [0, 1)", ErrInvalidPreset, c.Smoothing.LagWeight)
	}
	if !(c.Engine.TickRate > 0) {
		return fmt.Errorf("%w: tick rate %v", ErrInvalidPreset, c.Engine.TickRate)
	}
	if c.Engine.QueueCapacity < 0 {
		return fmt.Errorf("%w: queue capacity %d", ErrInvalidPreset, c.Engine.QueueCapacity)
	}
	if _, err := logging.New(c.Logging, io.Discard); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPreset, err)
	}
	return nil
}

// Load reads a config file, applies OXYRIG_ environment overrides on top, and validates.
//
// With an empty path it searches for oxyrig.{yaml,yml,json,toml} in the working directory
// and in $HOME/.config/oxyrig, and falls back to defaults when none exists. With an explicit
// path the file must exist.
//
// Parameters:
//   - path: config file path, or "" to search
//
// Returns:
//   - Config: the loaded config
//   - error: error if the file cannot be read or decoded, or wraps ErrInvalidPreset
func Load(path string) (Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("oxyrig")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/oxyrig")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	return decode(v)
}

// FromEnv builds a config from defaults and environment overrides only.
func FromEnv() (Config, error) {
	return decode(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v, DefaultConfig())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (Config, error) {
	cfg := DefaultConfig()
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		stringToVec2HookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override keys missing from the file.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("fps.enabled", d.FPS.Enabled)
	v.SetDefault("fps.mouse_rotate_sensitivity", vec2Slice(d.FPS.MouseRotateSensitivity))
	v.SetDefault("fps.translate_sensitivity", d.FPS.TranslateSensitivity)

	v.SetDefault("orbit.enabled", d.Orbit.Enabled)
	v.SetDefault("orbit.mouse_rotate_sensitivity", vec2Slice(d.Orbit.MouseRotateSensitivity))
	v.SetDefault("orbit.mouse_translate_sensitivity", vec2Slice(d.Orbit.MouseTranslateSensitivity))
	v.SetDefault("orbit.wheel_zoom_sensitivity", d.Orbit.WheelZoomSensitivity)
	v.SetDefault("orbit.min_radius", d.Orbit.MinRadius)
	v.SetDefault("orbit.max_radius", d.Orbit.MaxRadius)
	v.SetDefault("orbit.pan_button", d.Orbit.PanButton)

	v.SetDefault("smoothing.lag_weight", d.Smoothing.LagWeight)

	v.SetDefault("engine.tick_rate", d.Engine.TickRate)
	v.SetDefault("engine.queue_capacity", d.Engine.QueueCapacity)
	v.SetDefault("engine.profiling", d.Engine.Profiling)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.no_color", d.Logging.NoColor)
}

func vec2Slice(v mgl32.Vec2) []float32 {
	return []float32{v.X(), v.Y()}
}

// stringToVec2HookFunc decodes "x,y" (or a single "s" applied to both axes) into an mgl32.Vec2,
// which is how vectors arrive from environment variables. Lists from config files take the
// same one or two components.
func stringToVec2HookFunc() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(mgl32.Vec2{}) {
			return data, nil
		}
		switch from.Kind() {
		case reflect.String:
			return parseVec2(data.(string))
		case reflect.Slice, reflect.Array:
			return listToVec2(reflect.ValueOf(data))
		default:
			return data, nil
		}
	}
}

func listToVec2(list reflect.Value) (mgl32.Vec2, error) {
	var out mgl32.Vec2
	if n := list.Len(); n != 1 && n != 2 {
		return out, fmt.Errorf("vector %v: want 1 or 2 components", list.Interface())
	}
	for i := 0; i < list.Len(); i++ {
		f, err := toFloat32(list.Index(i))
		if err != nil {
			return out, fmt.Errorf("vector %v: %w", list.Interface(), err)
		}
		out[i] = f
	}
	if list.Len() == 1 {
		out[1] = out[0]
	}
	return out, nil
}

func toFloat32(v reflect.Value) (float32, error) {
	if v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return float32(v.Float()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float32(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float32(v.Uint()), nil
	case reflect.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 32)
		return float32(f), err
	default:
		return 0, fmt.Errorf("component %v is not a number", v)
	}
}

func parseVec2(s string) (mgl32.Vec2, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	var out mgl32.Vec2
	switch len(parts) {
	case 1:
		f, err := strconv.ParseFloat(parts[0], 32)
		if err != nil {
			return out, fmt.Errorf("vector %q: %w", s, err)
		}
		out = mgl32.Vec2{float32(f), float32(f)}
	case 2:
		for i, p := range parts {
			f, err := strconv.ParseFloat(p, 32)
			if err != nil {
				return out, fmt.Errorf("vector %q: %w", s, err)
			}
			out[i] = float32(f)
		}
	default:
		return out, fmt.Errorf("vector %q: want 1 or 2 components", s)
	}
	return out, nil
}
