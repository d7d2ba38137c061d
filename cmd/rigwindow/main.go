// Command rigwindow opens a GLFW window and drives a camera from live input.
// Tab switches between FPS and orbit mode; Escape quits. Poses are logged as the
// camera moves.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine"
	"github.com/Carmen-Shannon/oxy-rig/engine/camera"
	"github.com/Carmen-Shannon/oxy-rig/engine/config"
	"github.com/Carmen-Shannon/oxy-rig/engine/logging"
	"github.com/Carmen-Shannon/oxy-rig/engine/window"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func init() {
	// GLFW calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		modeName   string
		watch      bool
		logEvery   time.Duration
	)

	cmd := &cobra.Command{
		Use:          "rigwindow",
		Short:        "Drive an FPS or orbit camera from a live window",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch && configPath == "" {
				return errors.New("--watch needs --config")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.Logging, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			mode, err := camera.ParseMode(modeName)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			watchFile := ""
			if watch {
				watchFile = configPath
			}
			return run(ctx, cfg, mode, watchFile, logEvery, logger)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (default: search ./oxyrig.yaml and ~/.config/oxyrig)")
	cmd.Flags().StringVarP(&modeName, "mode", "m", "orbit", "starting mode: fps or orbit")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the config file when it changes (requires --config)")
	cmd.Flags().DurationVar(&logEvery, "log-every", 250*time.Millisecond, "minimum time between pose log lines")
	return cmd
}

// modeSwitchWindow intercepts the mode key before input reaches the engine.
type modeSwitchWindow struct {
	window.Window
	onToggle func()
}

func (w *modeSwitchWindow) SetKeyDownCallback(callback func(key uint32)) {
	w.Window.SetKeyDownCallback(func(key uint32) {
		if key == common.KeyTab {
			w.onToggle()
			return
		}
		callback(key)
	})
}

func run(ctx context.Context, cfg config.Config, mode camera.Mode, watchFile string, logEvery time.Duration, logger zerolog.Logger) error {
	win, err := window.NewWindow(
		window.WithTitle("oxy-rig"),
		window.WithCursorCaptured(mode == camera.ModeFPS),
	)
	if err != nil {
		return err
	}
	defer win.Close()

	cam, err := camera.New(mode,
		camera.WithLagWeight(cfg.Smoothing.LagWeight),
		camera.WithFPSController(cfg.FPS),
		camera.WithOrbitController(cfg.Orbit),
	)
	if err != nil {
		return err
	}

	host := &modeSwitchWindow{Window: win}
	host.onToggle = func() {
		next := camera.ModeOrbit
		if cam.Mode() == camera.ModeOrbit {
			next = camera.ModeFPS
		}
		cam.SetMode(next)
		win.SetCursorCaptured(next == camera.ModeFPS)
		logger.Info().Stringer("mode", next).Msg("mode switched")
	}

	eng := engine.NewEngine(
		engine.WithWindow(host),
		engine.WithActiveCamera(cam),
		engine.WithTickRate(cfg.Engine.TickRate),
		engine.WithQueueCapacity(cfg.Engine.QueueCapacity),
		engine.WithProfiling(cfg.Engine.Profiling),
		engine.WithLogger(logging.Component(logger, "engine")),
	)

	var last time.Time
	eng.SetTickCallback(func(res engine.TickResult) {
		if res.Idle || res.Report.Events == 0 || time.Since(last) < logEvery {
			return
		}
		last = time.Now()
		logger.Debug().
			Stringer("mode", res.Mode).
			Str("eye", fmt.Sprint(res.Smoothed.Eye)).
			Str("target", fmt.Sprint(res.Smoothed.Target)).
			Float32("radius", res.Smoothed.Radius()).
			Msg("pose")
	})

	if watchFile != "" {
		watchLogger := logging.Component(logger, "config")
		go func() {
			err := config.Watch(ctx, watchFile, watchLogger, eng.ApplyConfig)
			if err != nil {
				watchLogger.Error().Err(err).Msg("config watch stopped")
			}
		}()
	}

	logger.Info().Stringer("camera", cam.Handle()).Stringer("mode", mode).Msg("rig running")
	if err := eng.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
