package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Carmen-Shannon/oxy-rig/engine"
	"github.com/Carmen-Shannon/oxy-rig/engine/camera"
	"github.com/Carmen-Shannon/oxy-rig/engine/config"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
)

type replayOptions struct {
	dt     float32
	json   bool
	script string
}

type tickRecord struct {
	Script        string     `json:"script,omitempty"`
	Tick          uint64     `json:"tick"`
	Mode          string     `json:"mode"`
	Eye           mgl32.Vec3 `json:"eye"`
	Target        mgl32.Vec3 `json:"target"`
	SmoothedEye   mgl32.Vec3 `json:"smoothed_eye"`
	SmoothedTgt   mgl32.Vec3 `json:"smoothed_target"`
	Events        int        `json:"events"`
	Discarded     int        `json:"discarded,omitempty"`
	PitchClamped  bool       `json:"pitch_clamped,omitempty"`
	RadiusClamped bool       `json:"radius_clamped,omitempty"`
	Overflow      bool       `json:"overflow,omitempty"`
}

// replay drives one camera through the plan and writes a record per tick.
func replay(out io.Writer, cfg config.Config, p plan, opts replayOptions, logger zerolog.Logger) error {
	lag := cfg.Smoothing.LagWeight
	if p.lagWeight != nil {
		lag = *p.lagWeight
	}
	cam, err := camera.New(p.mode,
		camera.WithTransform(p.transform),
		camera.WithLagWeight(lag),
		camera.WithFPSController(cfg.FPS),
		camera.WithOrbitController(cfg.Orbit),
	)
	if err != nil {
		return err
	}

	eng := engine.NewEngine(
		engine.WithActiveCamera(cam),
		engine.WithLogger(logger),
		engine.WithQueueCapacity(cfg.Engine.QueueCapacity),
		engine.WithProfiling(cfg.Engine.Profiling),
	)

	dt := resolveDT(opts.dt, p.dt, cfg.Engine.TickRate)
	enc := json.NewEncoder(out)
	for _, st := range p.steps {
		if st.switchTo != nil {
			cam.SetMode(*st.switchTo)
		}
		res := eng.TickFrame(st.frame, dt)
		rec := tickRecord{
			Script:        opts.script,
			Tick:          res.Tick,
			Mode:          res.Mode.String(),
			Eye:           res.Transform.Eye,
			Target:        res.Transform.Target,
			SmoothedEye:   res.Smoothed.Eye,
			SmoothedTgt:   res.Smoothed.Target,
			Events:        res.Report.Events,
			Discarded:     res.Report.Discarded,
			PitchClamped:  res.Report.PitchClamped,
			RadiusClamped: res.Report.RadiusClamped,
			Overflow:      res.Overflow,
		}
		if opts.json {
			if err := enc.Encode(rec); err != nil {
				return fmt.Errorf("write tick %d: %w", rec.Tick, err)
			}
			continue
		}
		if _, err := fmt.Fprintln(out, rec.text()); err != nil {
			return fmt.Errorf("write tick %d: %w", rec.Tick, err)
		}
	}
	return nil
}

// resolveDT prefers the flag, then the script, then the configured tick rate.
func resolveDT(flag, script float32, tickRate float64) float32 {
	switch {
	case flag > 0:
		return flag
	case script > 0:
		return script
	case tickRate > 0:
		return float32(1 / tickRate)
	default:
		return 1.0 / 60
	}
}

func (r tickRecord) text() string {
	s := fmt.Sprintf("%4d %-5s eye=%s target=%s smoothed=%s events=%d",
		r.Tick, r.Mode, fmtVec(r.Eye), fmtVec(r.Target), fmtVec(r.SmoothedEye), r.Events)
	if r.Discarded > 0 {
		s += fmt.Sprintf(" discarded=%d", r.Discarded)
	}
	if r.PitchClamped {
		s += " pitch-clamped"
	}
	if r.RadiusClamped {
		s += " radius-clamped"
	}
	if r.Overflow {
		s += " overflow"
	}
	return s
}

func fmtVec(v mgl32.Vec3) string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v.X(), v.Y(), v.Z())
}
