package input

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Accumulator collects raw window events between ticks and hands them out as a Frame.
// Window callbacks write to it from the event loop; the tick driver reads it once per tick.
type Accumulator interface {
	// KeyDown marks a key as held.
	//
	// Parameters:
	//   - key: the key code
	KeyDown(key uint32)

	// KeyUp marks a key as released.
	//
	// Parameters:
	//   - key: the key code
	KeyUp(key uint32)

	// ButtonDown marks a pointer button as held.
	//
	// Parameters:
	//   - button: the button code
	ButtonDown(button uint32)

	// ButtonUp marks a pointer button as released.
	//
	// Parameters:
	//   - button: the button code
	ButtonUp(button uint32)

	// CursorMoved records an absolute cursor position and queues the motion since the
	// previous position. The first position after creation or ResetCursor only sets the
	// reference point.
	//
	// Parameters:
	//   - x, y: cursor position in window coordinates
	CursorMoved(x, y float64)

	// MotionDelta queues a relative pointer motion directly.
	//
	// Parameters:
	//   - dx, dy: motion since the previous event
	MotionDelta(dx, dy float32)

	// Scrolled queues one scroll-wheel event. Positive is scroll up.
	//
	// Parameters:
	//   - dy: vertical scroll amount
	Scrolled(dy float32)

	// ResetCursor forgets the last cursor position, e.g. after the cursor is captured or warped.
	ResetCursor()

	// ReleaseAll clears every held key and button, e.g. when the window loses focus.
	ReleaseAll()

	// Flush returns everything received since the previous Flush and clears the queued
	// motion and scroll events. Held keys and buttons stay held.
	//
	// Returns:
	//   - Frame: this tick's input
	Flush() Frame
}

type accumulatorImpl struct {
	mu *sync.Mutex

	keys    KeySet
	buttons ButtonSet

	motion []mgl32.Vec2
	wheel  []float32

	lastCursor mgl32.Vec2
	hasCursor  bool
}

var _ Accumulator = &accumulatorImpl{}

// NewAccumulator creates an empty Accumulator.
//
// Returns:
//   - Accumulator: the accumulator with nothing held or queued
func NewAccumulator() Accumulator {
	return &accumulatorImpl{
		mu:      &sync.Mutex{},
		keys:    KeySet{},
		buttons: ButtonSet{},
	}
}

func (a *accumulatorImpl) KeyDown(key uint32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.keys[key] = struct{}{}
}

func (a *accumulatorImpl) KeyUp(key uint32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.keys, key)
}

func (a *accumulatorImpl) ButtonDown(button uint32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.buttons[button] = struct{}{}
}

func (a *accumulatorImpl) ButtonUp(button uint32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.buttons, button)
}

func (a *accumulatorImpl) CursorMoved(x, y float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	pos := mgl32.Vec2{float32(x), float32(y)}
	if a.hasCursor {
		if d := pos.Sub(a.lastCursor); d != (mgl32.Vec2{}) {
			a.motion = append(a.motion, d)
		}
	}
	a.lastCursor = pos
	a.hasCursor = true
}

func (a *accumulatorImpl) MotionDelta(dx, dy float32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.motion = append(a.motion, mgl32.Vec2{dx, dy})
}

func (a *accumulatorImpl) Scrolled(dy float32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.wheel = append(a.wheel, dy)
}

func (a *accumulatorImpl) ResetCursor() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hasCursor = false
}

func (a *accumulatorImpl) ReleaseAll() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.keys = KeySet{}
	a.buttons = ButtonSet{}
}

func (a *accumulatorImpl) Flush() Frame {
	a.mu.Lock()
	defer a.mu.Unlock()

	f := Frame{
		PointerMotion: a.motion,
		Wheel:         a.wheel,
		Keys:          make(KeySet, len(a.keys)),
		Buttons:       make(ButtonSet, len(a.buttons)),
	}
	for k := range a.keys {
		f.Keys[k] = struct{}{}
	}
	for b := range a.buttons {
		f.Buttons[b] = struct{}{}
	}
	a.motion = nil
	a.wheel = nil
	return f
}
