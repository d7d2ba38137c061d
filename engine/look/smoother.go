package look

import (
	"github.com/Carmen-Shannon/oxy-rig/common"
)

const (
	// ReferenceTick is the tick duration, in seconds, at which the lag weight applies unscaled.
	ReferenceTick float32 = 1.0 / 60.0

	// MaxLagWeight caps the lag weight below 1 so the output always moves.
	MaxLagWeight float32 = 0.999
)

// Smoother is an exponential-decay filter over a stream of transforms.
//
// Each call keeps lagWeight^(dt/ReferenceTick) of the previous output and takes the
// rest from the new raw value, so the visual lag is the same at any tick rate.
// Reset it whenever the camera jumps so the filter does not blend across the jump.
type Smoother struct {
	lagWeight float32
	current   Transform
	primed    bool
}

// NewSmoother creates a Smoother with the given lag weight, clamped to [0, MaxLagWeight].
//
// Parameters:
//   - lagWeight: fraction of the previous output retained per reference tick
//
// Returns:
//   - *Smoother: the filter, empty until the first sample
func NewSmoother(lagWeight float32) *Smoother {
	s := &Smoother{}
	s.SetLagWeight(lagWeight)
	return s
}

// LagWeight returns the lag weight.
func (s *Smoother) LagWeight() float32 {
	return s.lagWeight
}

// SetLagWeight sets the lag weight, clamped to [0, MaxLagWeight].
func (s *Smoother) SetLagWeight(lagWeight float32) {
	switch {
	case !(lagWeight > 0):
		lagWeight = 0
	case lagWeight > MaxLagWeight:
		lagWeight = MaxLagWeight
	}
	s.lagWeight = lagWeight
}

// Reset forgets the previous output. The next Smooth call passes its input through.
func (s *Smoother) Reset() {
	s.current = Transform{}
	s.primed = false
}

// Current returns the last smoothed output.
//
// Returns:
//   - Transform: the last output
//   - bool: false if nothing has been smoothed since creation or Reset
func (s *Smoother) Current() (Transform, bool) {
	return s.current, s.primed
}

// Smooth blends raw into the running output and returns the new output.
// The first sample after creation or Reset is returned unchanged, as is every
// sample when the lag weight is 0. A non-positive dt leaves the output where it is.
//
// Parameters:
//   - raw: the latest unsmoothed pose
//   - dt: seconds since the previous call
//
// Returns:
//   - Transform: the smoothed pose
func (s *Smoother) Smooth(raw Transform, dt float32) Transform {
	if !s.primed || s.lagWeight == 0 {
		s.current = raw
		s.primed = true
		return raw
	}
	if !(dt > 0) {
		return s.current
	}

	retain := common.Pow(s.lagWeight, dt/ReferenceTick)
	s.current = s.current.Lerp(raw, 1-retain)
	return s.current
}
