package camera

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Handle identifies a camera within an engine.
type Handle uuid.UUID

// NilHandle is the zero Handle. No camera is ever assigned it.
var NilHandle Handle

// NewHandle returns a fresh random Handle.
func NewHandle() Handle {
	return Handle(uuid.New())
}

// ParseHandle parses the canonical UUID form of a Handle.
//
// Parameters:
//   - s: the handle text
//
// Returns:
//   - Handle: the parsed handle
//   - error: error if s is not a UUID
func ParseHandle(s string) (Handle, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return NilHandle, fmt.Errorf("parse camera handle %q: %w", s, err)
	}
	return Handle(id), nil
}

func (h Handle) String() string {
	return uuid.UUID(h).String()
}

// IsNil reports whether h is NilHandle.
func (h Handle) IsNil() bool {
	return h == NilHandle
}

// Mode selects which controller drives a camera.
type Mode int

const (
	// ModeFPS is first-person free-look.
	ModeFPS Mode = iota

	// ModeOrbit circles a target.
	ModeOrbit
)

func (m Mode) String() string {
	switch m {
	case ModeFPS:
		return "fps"
	case ModeOrbit:
		return "orbit"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "fps" or "orbit", case-insensitively.
//
// Parameters:
//   - s: the mode name
//
// Returns:
//   - Mode: the parsed mode
//   - error: ErrUnknownMode if s names no mode
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fps":
		return ModeFPS, nil
	case "orbit":
		return ModeOrbit, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownMode)
	}
}
