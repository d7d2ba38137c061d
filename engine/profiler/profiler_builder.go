package profiler

import (
	"time"

	"github.com/rs/zerolog"
)

// ProfilerBuilderOption configures a Profiler.
type ProfilerBuilderOption func(*Profiler)

// WithLogger sets the logger that receives the interval summaries.
func WithLogger(logger zerolog.Logger) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.logger = logger
	}
}

// WithInterval sets how often stats are logged. Non-positive values are ignored.
func WithInterval(interval time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.interval = interval
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		if now != nil {
			p.now = now
		}
	}
}

// WithMemStats toggles the runtime.ReadMemStats call made once per interval.
func WithMemStats(enabled bool) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.readMem = enabled
	}
}
