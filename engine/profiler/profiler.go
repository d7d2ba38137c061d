// Package profiler aggregates per-tick rig statistics and logs them at a fixed interval.
package profiler

import (
	"runtime"
	"time"

	"github.com/rs/zerolog"
)

// Sample is what one tick contributes to the profile.
type Sample struct {
	Events        int
	Discarded     int
	PitchClamped  bool
	RadiusClamped bool
	Idle          bool
}

// Snapshot is the aggregate over one completed interval.
type Snapshot struct {
	Elapsed      time.Duration
	Ticks        int
	TickRate     float64
	Events       int
	Discarded    int
	PitchClamps  int
	RadiusClamps int
	IdleTicks    int
	HeapMB       float64
	AllocRateMB  float64
	SysMB        float64
	GCCount      uint32
	LastPauseUs  uint64
	MaxPauseUs   uint64
}

// Profiler tracks tick rate, controller activity and memory statistics.
// It is not safe for concurrent use; the tick driver owns it.
type Profiler struct {
	logger   zerolog.Logger
	interval time.Duration
	now      func() time.Time
	readMem  bool

	lastTime       time.Time
	current        Snapshot
	last           Snapshot
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// NewProfiler creates a Profiler. The interval defaults to 1 second and output is discarded
// unless a logger is supplied.
//
// Parameters:
//   - opts: variadic list of ProfilerBuilderOption functions
//
// Returns:
//   - *Profiler: the profiler, with its interval starting now
func NewProfiler(opts ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		logger:   zerolog.Nop(),
		interval: time.Second,
		now:      time.Now,
		readMem:  true,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick records one tick. When the interval has elapsed the aggregate is logged,
// stored as the last snapshot and reset.
//
// Parameters:
//   - s: the tick's contribution
//
// Returns:
//   - bool: true if stats were logged this tick
func (p *Profiler) Tick(s Sample) bool {
	p.current.Ticks++
	p.current.Events += s.Events
	p.current.Discarded += s.Discarded
	if s.PitchClamped {
		p.current.PitchClamps++
	}
	if s.RadiusClamped {
		p.current.RadiusClamps++
	}
	if s.Idle {
		p.current.IdleTicks++
	}

	now := p.now()
	elapsed := now.Sub(p.lastTime)
	if elapsed < p.interval || elapsed <= 0 {
		return false
	}

	snap := p.current
	snap.Elapsed = elapsed
	snap.TickRate = float64(snap.Ticks) / elapsed.Seconds()
	if p.readMem {
		p.fillMemory(&snap, elapsed)
	}

	p.logger.Info().
		Float64("tick_rate", snap.TickRate).
		Int("events", snap.Events).
		Int("discarded", snap.Discarded).
		Int("pitch_clamps", snap.PitchClamps).
		Int("radius_clamps", snap.RadiusClamps).
		Int("idle", snap.IdleTicks).
		Float64("heap_mb", snap.HeapMB).
		Float64("alloc_mb_s", snap.AllocRateMB).
		Uint32("gc", snap.GCCount).
		Uint64("gc_last_us", snap.LastPauseUs).
		Uint64("gc_max_us", snap.MaxPauseUs).
		Float64("sys_mb", snap.SysMB).
		Msg("profile")

	p.last = snap
	p.current = Snapshot{}
	p.lastTime = now
	return true
}

// Last returns the most recently completed interval, zero before the first one.
func (p *Profiler) Last() Snapshot {
	return p.last
}

func (p *Profiler) fillMemory(snap *Snapshot, elapsed time.Duration) {
	runtime.ReadMemStats(&p.memStats)
	snap.HeapMB = float64(p.memStats.Alloc) / 1024 / 1024
	snap.SysMB = float64(p.memStats.Sys) / 1024 / 1024
	snap.AllocRateMB = float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	snap.GCCount = gcCount
	if gcCount > 0 {
		// PauseNs is a ring of the last 256 pauses
		snap.LastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000
		start := p.lastGCCount
		if gcCount-start > 256 {
			start = gcCount - 256
		}
		for i := start; i < gcCount; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > snap.MaxPauseUs {
				snap.MaxPauseUs = pause
			}
		}
	}
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
}
