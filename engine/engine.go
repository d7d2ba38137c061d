// Package engine drives the camera rig: it owns the per-tick event queues, the
// camera registry and the fixed-rate tick loop.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/camera"
	"github.com/Carmen-Shannon/oxy-rig/engine/config"
	"github.com/Carmen-Shannon/oxy-rig/engine/controller"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/Carmen-Shannon/oxy-rig/engine/look"
	"github.com/Carmen-Shannon/oxy-rig/engine/profiler"
	"github.com/rs/zerolog"
)

// DefaultTickRate is the tick rate used when none is configured.
const DefaultTickRate = 60.0

// Window is the part of a host window the engine drives. The GLFW window in
// engine/window satisfies it.
type Window interface {
	SetUpdateCallback(callback func())
	SetKeyDownCallback(callback func(key uint32))
	SetKeyUpCallback(callback func(key uint32))
	SetMouseButtonDownCallback(callback func(button uint32))
	SetMouseButtonUpCallback(callback func(button uint32))
	SetCursorMoveCallback(callback func(x, y float64))
	SetScrollCallback(callback func(dy float32))
	SetFocusCallback(callback func(focused bool))

	// ProcessMessages pumps window events until the window closes.
	ProcessMessages()

	// RequestClose asks ProcessMessages to return.
	RequestClose()
}

// TickResult describes one tick.
type TickResult struct {
	// Tick counts ticks since the engine was created, starting at 1.
	Tick uint64

	// DT is the tick duration in seconds.
	DT float32

	// Camera and Mode identify the camera that was driven. Camera is NilHandle on idle ticks.
	Camera camera.Handle
	Mode   camera.Mode

	// Idle is set when no camera was active and all input was dropped.
	Idle bool

	// Overflow is set when the mapped input did not fit in the event queue.
	Overflow bool

	Report    controller.Report
	Transform look.Transform
	Smoothed  look.Transform
}

type engine struct {
	mu *sync.Mutex

	tickRateChannel chan time.Duration

	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once

	window Window
	logger zerolog.Logger

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(TickResult)

	input         input.Accumulator
	queueCapacity int
	fpsQueue      *controller.EventQueue[controller.FPSEvent]
	orbitQueue    *controller.EventQueue[controller.OrbitEvent]

	cameras map[camera.Handle]camera.Camera
	order   []camera.Handle
	active  camera.Handle
	idle    bool

	tick uint64
}

// Engine is the tick driver for a set of cameras.
//
// Each tick it flushes the input accumulator, maps the frame into the active camera's
// event queue, drains the queue through the matching controller update and feeds the
// result through the camera's smoother. Exactly one camera, or none, is active at a time.
type Engine interface {
	// Input returns the accumulator window callbacks and hosts feed raw input into.
	//
	// Returns:
	//   - input.Accumulator: the accumulator flushed by Tick
	Input() input.Accumulator

	// AddCamera registers a camera without activating it.
	//
	// Parameters:
	//   - c: the camera to register
	//
	// Returns:
	//   - error: wraps ErrDuplicateCamera if the handle is taken
	AddCamera(c camera.Camera) error

	// RemoveCamera unregisters a camera. Removing the active camera leaves none active.
	//
	// Parameters:
	//   - h: the camera's handle
	//
	// Returns:
	//   - error: wraps ErrUnknownCamera if nothing is registered under h
	RemoveCamera(h camera.Handle) error

	// Camera looks up a registered camera.
	//
	// Parameters:
	//   - h: the camera's handle
	//
	// Returns:
	//   - camera.Camera: the camera
	//   - error: wraps ErrUnknownCamera if nothing is registered under h
	Camera(h camera.Handle) (camera.Camera, error)

	// Cameras returns the registered cameras in the order they were added.
	//
	// Returns:
	//   - []camera.Camera: a copy of the registry
	Cameras() []camera.Camera

	// SetActiveCamera selects the camera driven by subsequent ticks.
	//
	// Parameters:
	//   - h: the camera's handle
	//
	// Returns:
	//   - error: wraps ErrUnknownCamera if nothing is registered under h
	SetActiveCamera(h camera.Handle) error

	// ClearActiveCamera deselects the active camera. Ticks then drop all input.
	ClearActiveCamera()

	// ActiveCamera returns the camera driven by the next tick.
	//
	// Returns:
	//   - camera.Camera: the active camera
	//   - error: ErrNoActiveCamera if none is selected
	ActiveCamera() (camera.Camera, error)

	// QueueFPS adds an event ahead of the next tick's mapped input.
	// It is discarded unless the next tick drives a camera in FPS mode.
	//
	// Parameters:
	//   - ev: the event
	//
	// Returns:
	//   - error: wraps controller.ErrQueueFull if the queue is full
	QueueFPS(ev controller.FPSEvent) error

	// QueueOrbit adds an event ahead of the next tick's mapped input.
	// It is discarded unless the next tick drives a camera in orbit mode.
	//
	// Parameters:
	//   - ev: the event
	//
	// Returns:
	//   - error: wraps controller.ErrQueueFull if the queue is full
	QueueOrbit(ev controller.OrbitEvent) error

	// Tick flushes the input accumulator and runs one tick.
	//
	// Parameters:
	//   - dt: seconds since the previous tick
	//
	// Returns:
	//   - TickResult: what the tick did
	Tick(dt float32) TickResult

	// TickFrame runs one tick on an explicit input frame. The accumulator is left alone.
	//
	// Parameters:
	//   - frame: the tick's input
	//   - dt: seconds since the previous tick
	//
	// Returns:
	//   - TickResult: what the tick did
	TickFrame(frame input.Frame, dt float32) TickResult

	// ApplyConfig pushes controller, smoothing and engine settings to the engine and
	// every registered camera. Logging settings are left to the host.
	//
	// Parameters:
	//   - cfg: a validated config
	ApplyConfig(cfg config.Config)

	// EnableProfiler enables periodic tick statistics in the log.
	EnableProfiler()

	// DisableProfiler disables periodic tick statistics.
	DisableProfiler()

	// SetTickRate sets the tick loop rate in ticks per second.
	//
	// Parameters:
	//   - hz: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(hz float64)

	// SetTickCallback registers the function called after each tick of the loop started by Run.
	//
	// Parameters:
	//   - callback: receives every tick's result on the tick goroutine
	SetTickCallback(callback func(TickResult))

	// Run starts the tick loop and blocks until Quit, ctx is done, or the window closes.
	// With a window, ProcessMessages runs on the calling goroutine.
	//
	// Parameters:
	//   - ctx: stops the engine when done
	//
	// Returns:
	//   - error: ErrRunning if called twice, ctx.Err() if ctx stopped the engine, nil otherwise
	Run(ctx context.Context) error

	// Quit signals the tick loop to stop. Safe to call multiple times.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates an Engine with no cameras. Window callbacks, when a window is
// supplied, are wired to the engine's input accumulator.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:              &sync.Mutex{},
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		logger:          zerolog.Nop(),
		engineTickRate:  tickDuration(DefaultTickRate),
		input:           input.NewAccumulator(),
		cameras:         make(map[camera.Handle]camera.Camera),
	}

	for _, opt := range options {
		opt(e)
	}

	e.queueCapacity = common.Coalesce(e.queueCapacity, controller.DefaultQueueCapacity)
	e.fpsQueue = controller.NewEventQueue[controller.FPSEvent](e.queueCapacity)
	e.orbitQueue = controller.NewEventQueue[controller.OrbitEvent](e.queueCapacity)
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	}

	if e.window != nil {
		e.wireWindow()
	}
	return e
}

func tickDuration(hz float64) time.Duration {
	if !(hz > 0) {
		hz = DefaultTickRate
	}
	return time.Duration(float64(time.Second) / hz)
}

func (e *engine) wireWindow() {
	in := e.input
	e.window.SetKeyDownCallback(in.KeyDown)
	e.window.SetKeyUpCallback(in.KeyUp)
	e.window.SetMouseButtonDownCallback(in.ButtonDown)
	e.window.SetMouseButtonUpCallback(in.ButtonUp)
	e.window.SetCursorMoveCallback(in.CursorMoved)
	e.window.SetScrollCallback(in.Scrolled)
	e.window.SetFocusCallback(func(focused bool) {
		if !focused {
			in.ReleaseAll()
		}
		in.ResetCursor()
	})
}

func (e *engine) Input() input.Accumulator {
	return e.input
}

func (e *engine) AddCamera(c camera.Camera) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	h := c.Handle()
	if _, ok := e.cameras[h]; ok {
		return fmt.Errorf("add camera %s: %w", h, ErrDuplicateCamera)
	}
	e.cameras[h] = c
	e.order = append(e.order, h)
	e.logger.Debug().Stringer("camera", h).Stringer("mode", c.Mode()).Msg("camera added")
	return nil
}

func (e *engine) RemoveCamera(h camera.Handle) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.cameras[h]; !ok {
		return fmt.Errorf("remove camera %s: %w", h, ErrUnknownCamera)
	}
	delete(e.cameras, h)
	for i, o := range e.order {
		if o == h {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	if e.active == h {
		e.active = camera.NilHandle
		e.logger.Info().Stringer("camera", h).Msg("active camera removed")
	}
	return nil
}

func (e *engine) Camera(h camera.Handle) (camera.Camera, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	c, ok := e.cameras[h]
	if !ok {
		return nil, fmt.Errorf("camera %s: %w", h, ErrUnknownCamera)
	}
	return c, nil
}

func (e *engine) Cameras() []camera.Camera {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]camera.Camera, 0, len(e.order))
	for _, h := range e.order {
		out = append(out, e.cameras[h])
	}
	return out
}

func (e *engine) SetActiveCamera(h camera.Handle) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	c, ok := e.cameras[h]
	if !ok {
		return fmt.Errorf("activate camera %s: %w", h, ErrUnknownCamera)
	}
	if e.active != h {
		e.active = h
		e.logger.Info().Stringer("camera", h).Stringer("mode", c.Mode()).Msg("camera active")
	}
	return nil
}

func (e *engine) ClearActiveCamera() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.active = camera.NilHandle
}

func (e *engine) ActiveCamera() (camera.Camera, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	c, ok := e.cameras[e.active]
	if !ok {
		return nil, ErrNoActiveCamera
	}
	return c, nil
}

func (e *engine) QueueFPS(ev controller.FPSEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fpsQueue.Send(ev)
}

func (e *engine) QueueOrbit(ev controller.OrbitEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.orbitQueue.Send(ev)
}

func (e *engine) Tick(dt float32) TickResult {
	return e.TickFrame(e.input.Flush(), dt)
}

func (e *engine) TickFrame(frame input.Frame, dt float32) TickResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.tick++
	res := TickResult{Tick: e.tick, DT: dt}

	cam, ok := e.cameras[e.active]
	if !ok {
		res.Idle = true
		res.Report.Discarded = e.fpsQueue.Discard() + e.orbitQueue.Discard()
		if !e.idle {
			e.logger.Debug().Msg("no active camera, dropping input")
			e.idle = true
		}
		e.sample(res)
		return res
	}
	e.idle = false

	res.Camera = cam.Handle()
	res.Mode = cam.Mode()
	current := cam.Transform()

	var err error
	switch res.Mode {
	case camera.ModeOrbit:
		stale := e.fpsQueue.Discard()
		cfg := cam.Orbit()
		err = controller.MapOrbitInput(cfg, frame, e.orbitQueue)
		res.Transform, res.Report = controller.UpdateOrbit(cfg, current, cam.SceneRotation(), e.orbitQueue)
		res.Report.Discarded += stale
	default:
		stale := e.orbitQueue.Discard()
		cfg := cam.FPS()
		err = controller.MapFPSInput(cfg, frame, e.fpsQueue)
		res.Transform, res.Report = controller.UpdateFPS(cfg, current, e.fpsQueue)
		res.Report.Discarded += stale
	}
	if err != nil {
		res.Overflow = true
		e.logger.Warn().Err(err).Uint64("tick", res.Tick).Msg("input overflowed event queue")
	}

	res.Smoothed = cam.Advance(res.Transform, dt)
	e.logReport(res)
	e.sample(res)
	return res
}

func (e *engine) logReport(res TickResult) {
	r := res.Report
	if !r.PitchClamped && !r.RadiusClamped && r.Discarded == 0 {
		return
	}
	e.logger.Debug().
		Uint64("tick", res.Tick).
		Stringer("camera", res.Camera).
		Stringer("mode", res.Mode).
		Bool("pitch_clamped", r.PitchClamped).
		Bool("radius_clamped", r.RadiusClamped).
		Int("discarded", r.Discarded).
		Msg("controller update")
}

func (e *engine) sample(res TickResult) {
	if !e.profilingEnabled {
		return
	}
	e.profiler.Tick(profiler.Sample{
		Events:        res.Report.Events,
		Discarded:     res.Report.Discarded,
		PitchClamped:  res.Report.PitchClamped,
		RadiusClamped: res.Report.RadiusClamped,
		Idle:          res.Idle,
	})
}

func (e *engine) ApplyConfig(cfg config.Config) {
	e.mu.Lock()
	cameras := len(e.order)
	for _, h := range e.order {
		c := e.cameras[h]
		c.SetFPS(cfg.FPS)
		c.SetOrbit(cfg.Orbit)
		c.SetLagWeight(cfg.Smoothing.LagWeight)
	}
	e.profilingEnabled = cfg.Engine.Profiling
	dropped := 0
	if capacity := common.Coalesce(cfg.Engine.QueueCapacity, controller.DefaultQueueCapacity); capacity != e.queueCapacity {
		e.queueCapacity = capacity
		var n int
		e.fpsQueue, n = resizeQueue(e.fpsQueue, capacity)
		dropped += n
		e.orbitQueue, n = resizeQueue(e.orbitQueue, capacity)
		dropped += n
	}
	e.mu.Unlock()

	e.SetTickRate(cfg.Engine.TickRate)
	e.logger.Info().Int("cameras", cameras).Float64("tick_rate", cfg.Engine.TickRate).Msg("config applied")
	if dropped > 0 {
		e.logger.Warn().Int("dropped", dropped).Msg("queued events did not fit the new queue capacity")
	}
}

// resizeQueue moves pending events into a queue of the new capacity, oldest first.
// It returns how many events did not fit.
func resizeQueue[E any](old *controller.EventQueue[E], capacity int) (*controller.EventQueue[E], int) {
	q := controller.NewEventQueue[E](capacity)
	dropped := 0
	for _, ev := range old.Drain() {
		if err := q.Send(ev); err != nil {
			dropped++
		}
	}
	return q, dropped
}

func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}

// SetTickRate sets the tick rate. If the loop is running the change takes effect immediately.
func (e *engine) SetTickRate(hz float64) {
	newRate := tickDuration(hz)

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		e.engineTickRate = newRate
		return
	}

	// replace any pending update
	select {
	case e.tickRateChannel <- newRate:
	default:
		select {
		case <-e.tickRateChannel:
		default:
		}
		e.tickRateChannel <- newRate
	}
}

func (e *engine) SetTickCallback(callback func(TickResult)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickCallback = callback
}

func (e *engine) Run(ctx context.Context) error {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return ErrRunning
	}
	select {
	case <-e.quitChannel:
		e.mu.Unlock()
		return ErrRunning
	default:
	}
	e.running = true
	e.mu.Unlock()

	e.wg.Add(2)
	go e.handleEngine()
	go e.handleQuit(ctx)

	if e.window != nil {
		e.window.SetUpdateCallback(func() {
			select {
			case <-e.quitChannel:
				e.window.RequestClose()
			default:
			}
		})
		e.window.ProcessMessages()
		e.signalQuit()
	}

	e.wg.Wait()
	return ctx.Err()
}

// Quit signals all engine goroutines to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// handleEngine runs the fixed-rate tick loop in its own goroutine.
// Listens for rate changes via tickRateChannel and exits when the quit channel is closed.
func (e *engine) handleEngine() {
	defer e.wg.Done()
	defer func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
	}()

	e.mu.Lock()
	rate := e.engineTickRate
	e.mu.Unlock()

	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	lastTick := time.Now()
	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			res := e.Tick(dt)

			e.mu.Lock()
			callback := e.tickCallback
			e.mu.Unlock()
			if callback != nil {
				callback(res)
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.mu.Lock()
			e.engineTickRate = newRate
			e.mu.Unlock()
		}
	}
}

// handleQuit turns ctx cancellation into a quit signal.
func (e *engine) handleQuit(ctx context.Context) {
	defer e.wg.Done()
	select {
	case <-ctx.Done():
		e.signalQuit()
	case <-e.quitChannel:
	}
}
