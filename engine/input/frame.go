package input

import (
	"strings"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/go-gl/mathgl/mgl32"
)

// KeySet is a set of held key codes, using the values in common.
type KeySet map[uint32]struct{}

// ButtonSet is a set of held pointer buttons, using the values in common.
type ButtonSet map[uint32]struct{}

// NewKeySet creates a KeySet holding the given keys.
func NewKeySet(keys ...uint32) KeySet {
	s := make(KeySet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Held reports whether key is in the set. A nil set holds nothing.
func (s KeySet) Held(key uint32) bool {
	_, ok := s[key]
	return ok
}

// NewButtonSet creates a ButtonSet holding the given buttons.
func NewButtonSet(buttons ...uint32) ButtonSet {
	s := make(ButtonSet, len(buttons))
	for _, b := range buttons {
		s[b] = struct{}{}
	}
	return s
}

// Held reports whether button is in the set. A nil set holds nothing.
func (s ButtonSet) Held(button uint32) bool {
	_, ok := s[button]
	return ok
}

// Frame is one tick's worth of decoded input.
//
// PointerMotion and Wheel hold every event received since the previous tick in
// arrival order. Keys and Buttons hold what is down at the moment the frame was taken.
type Frame struct {
	PointerMotion []mgl32.Vec2
	Wheel         []float32
	Keys          KeySet
	Buttons       ButtonSet
}

// PointerDelta returns the sum of all pointer motion in the frame.
//
// Returns:
//   - mgl32.Vec2: accumulated motion, zero when the pointer did not move
func (f Frame) PointerDelta() mgl32.Vec2 {
	var sum mgl32.Vec2
	for _, d := range f.PointerMotion {
		sum = sum.Add(d)
	}
	return sum
}

// Empty reports whether the frame carries no motion, no scroll and nothing held.
func (f Frame) Empty() bool {
	return len(f.PointerMotion) == 0 && len(f.Wheel) == 0 && len(f.Keys) == 0 && len(f.Buttons) == 0
}

var keyNames = map[string]uint32{
	"w":            common.KeyW,
	"a":            common.KeyA,
	"s":            common.KeyS,
	"d":            common.KeyD,
	"q":            common.KeyQ,
	"e":            common.KeyE,
	"r":            common.KeyR,
	"tab":          common.KeyTab,
	"space":        common.KeySpace,
	"backspace":    common.KeyBackspace,
	"esc":          common.KeyEsc,
	"1":            common.Key1,
	"2":            common.Key2,
	"lshift":       common.KeyLeftShift,
	"leftshift":    common.KeyLeftShift,
	"lctrl":        common.KeyLeftControl,
	"leftcontrol":  common.KeyLeftControl,
	"rshift":       common.KeyRightShift,
	"rightshift":   common.KeyRightShift,
	"rctrl":        common.KeyRightControl,
	"rightcontrol": common.KeyRightControl,
}

var buttonNames = map[string]uint32{
	"left":   common.MouseButtonLeft,
	"right":  common.MouseButtonRight,
	"middle": common.MouseButtonMiddle,
}

// KeyByName resolves a key name such as "w", "space" or "lshift" to its code.
// Matching is case-insensitive.
//
// Parameters:
//   - name: the key name
//
// Returns:
//   - uint32: the key code
//   - bool: false if the name is unknown
func KeyByName(name string) (uint32, bool) {
	k, ok := keyNames[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}

// ButtonByName resolves "left", "right" or "middle" to a pointer button code.
//
// Parameters:
//   - name: the button name
//
// Returns:
//   - uint32: the button code
//   - bool: false if the name is unknown
func ButtonByName(name string) (uint32, bool) {
	b, ok := buttonNames[strings.ToLower(strings.TrimSpace(name))]
	return b, ok
}
