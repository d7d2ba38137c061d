// Package window is the GLFW host window: it turns platform input into the
// callbacks the rig engine consumes.
package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-rig/common"
)

// Window provides platform windowing and input event handling.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for vertical scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving the scroll delta, positive away from the user
	SetScrollCallback(callback func(dy float32))

	// SetKeyDownCallback sets the callback for key press events. Repeats are reported again.
	//
	// Parameters:
	//   - callback: function receiving the GLFW key code
	SetKeyDownCallback(callback func(key uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the GLFW key code
	SetKeyUpCallback(callback func(key uint32))

	// SetMouseButtonDownCallback sets the callback for mouse button presses.
	//
	// Parameters:
	//   - callback: function receiving the button index (common.MouseButtonLeft and friends)
	SetMouseButtonDownCallback(callback func(button uint32))

	// SetMouseButtonUpCallback sets the callback for mouse button releases.
	//
	// Parameters:
	//   - callback: function receiving the button index
	SetMouseButtonUpCallback(callback func(button uint32))

	// SetCursorMoveCallback sets the callback for cursor movement.
	//
	// Parameters:
	//   - callback: function receiving the cursor position in screen coordinates
	SetCursorMoveCallback(callback func(x, y float64))

	// SetFocusCallback sets the callback for focus changes.
	//
	// Parameters:
	//   - callback: function receiving true when the window gains focus
	SetFocusCallback(callback func(focused bool))

	// SetCursorCaptured hides and locks the cursor so motion is unbounded, or releases it.
	//
	// Parameters:
	//   - captured: true to capture
	SetCursorCaptured(captured bool)

	// IsRunning returns true if the window is still open.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// RequestClose makes ProcessMessages return after the current iteration.
	RequestClose()

	// Close destroys the window and releases platform resources.
	//
	// Returns:
	//   - error: error if the window was never created
	Close() error

	// ProcessMessages runs the window message loop on the calling goroutine, which must be
	// the main thread. Blocks until the window closes. Calls the update callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

type engineWindow struct {
	title string

	maxWidth  int
	maxHeight int
	minWidth  int
	minHeight int

	width  int
	height int

	// closeKey closes the window when pressed; 0 disables it.
	closeKey uint32
	captured bool

	// internalWindow holds the platform window (*glfwWindow).
	internalWindow any

	onUpdate     func()
	onResize     func(width, height int)
	onScroll     func(dy float32)
	onKeyDown    func(key uint32)
	onKeyUp      func(key uint32)
	onButtonDown func(button uint32)
	onButtonUp   func(button uint32)
	onCursorMove func(x, y float64)
	onFocus      func(focused bool)
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a window. It must be called on the main thread.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the open window
//   - error: error if GLFW or the window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:     "oxy-rig",
		maxWidth:  3840,
		maxHeight: 2160,
		minWidth:  320,
		minHeight: 200,
		width:     1280,
		height:    720,
		closeKey:  common.KeyEsc,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("create platform window: %w", err)
	}
	return w, nil
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(dy float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(key uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(key uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetMouseButtonDownCallback(callback func(button uint32)) {
	w.onButtonDown = callback
}

func (w *engineWindow) SetMouseButtonUpCallback(callback func(button uint32)) {
	w.onButtonUp = callback
}

func (w *engineWindow) SetCursorMoveCallback(callback func(x, y float64)) {
	w.onCursorMove = callback
}

func (w *engineWindow) SetFocusCallback(callback func(focused bool)) {
	w.onFocus = callback
}

func (w *engineWindow) SetCursorCaptured(captured bool) {
	w.captured = captured
	platformSetCursorCaptured(w, captured)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if ok := platformProcessMessages(w); !ok {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
