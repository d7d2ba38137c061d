package common

import (
	"math"
)

// Sincos returns the sine and cosine of a float32 angle.
// The trig is evaluated in float64 and narrowed once to limit rounding drift.
//
// Parameters:
//   - angle: angle in radians
//
// Returns:
//   - sin, cos: the sine and cosine of angle
func Sincos(angle float32) (sin, cos float32) {
	s, c := math.Sincos(float64(angle))
	return float32(s), float32(c)
}

// Atan2 returns the float32 arc tangent of y/x using the signs of both to pick the quadrant.
//
// Parameters:
//   - y: ordinate
//   - x: abscissa
//
// Returns:
//   - float32: angle in radians in [-Pi, Pi]
func Atan2(y, x float32) float32 {
	return float32(math.Atan2(float64(y), float64(x)))
}

// Asin returns the arc sine of v after clamping v into [-1, 1].
// Floating-point overshoot just outside the domain would otherwise produce NaN.
//
// Parameters:
//   - v: sine value, nominally in [-1, 1]
//
// Returns:
//   - float32: angle in radians in [-Pi/2, Pi/2]
func Asin(v float32) float32 {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return float32(math.Asin(float64(v)))
}

// Pow returns base**exp for float32 operands.
//
// Parameters:
//   - base: the base
//   - exp: the exponent
//
// Returns:
//   - float32: base raised to exp
func Pow(base, exp float32) float32 {
	return float32(math.Pow(float64(base), float64(exp)))
}

// IsFinite reports whether v is neither NaN nor an infinity.
//
// Parameters:
//   - v: value to check
//
// Returns:
//   - bool: true if v is a finite number
func IsFinite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
