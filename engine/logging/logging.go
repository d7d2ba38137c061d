// Package logging builds the zerolog loggers used across the rig.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Output formats accepted by Config.Format.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// ErrInvalidConfig is returned by New for an unknown level or format.
var ErrInvalidConfig = errors.New("logging: invalid config")

// Config selects the log level and output format.
type Config struct {
	Level   string `mapstructure:"level" yaml:"level"`
	Format  string `mapstructure:"format" yaml:"format"`
	NoColor bool   `mapstructure:"no_color" yaml:"no_color"`
}

// DefaultConfig returns info-level colored console logging.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: FormatConsole,
	}
}

// ParseLevel maps debug, info, warn (or warning), error and disabled to a zerolog level.
// An empty string is info.
//
// Parameters:
//   - s: the level name, case-insensitive
//
// Returns:
//   - zerolog.Level: the level
//   - error: wraps ErrInvalidConfig for unknown names
func ParseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return zerolog.InfoLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "disabled", "off":
		return zerolog.Disabled, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("log level %q: %w", s, ErrInvalidConfig)
	}
}

// New builds a logger writing to out, or to stderr when out is nil.
//
// Parameters:
//   - cfg: level and format
//   - out: destination writer
//
// Returns:
//   - zerolog.Logger: the logger, timestamped and filtered at cfg.Level
//   - error: wraps ErrInvalidConfig for an unknown level or format
func New(cfg Config, out io.Writer) (zerolog.Logger, error) {
	if out == nil {
		out = os.Stderr
	}
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	var w io.Writer
	switch strings.ToLower(cfg.Format) {
	case "", FormatConsole:
		w = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: "15:04:05",
			NoColor:    cfg.NoColor,
		}
	case FormatJSON:
		w = out
	default:
		return zerolog.Nop(), fmt.Errorf("log format %q: %w", cfg.Format, ErrInvalidConfig)
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

// Component returns a child logger tagged with component=name.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}
