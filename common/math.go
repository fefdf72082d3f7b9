package common

import "math"

// Clamp01 clamps v into the closed range [0, 1]. NaN maps to 0.
//
// Parameters:
//   - v: the value to clamp
//
// Returns:
//   - float64: v limited to [0, 1]
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Normalize divides v by extent and clamps the result into [0, 1].
// A non-positive extent yields 0 instead of dividing by zero.
//
// Parameters:
//   - v: the raw coordinate
//   - extent: the length of the axis v was measured along
//
// Returns:
//   - float64: the normalized coordinate in [0, 1]
func Normalize(v float64, extent uint32) float64 {
	if extent == 0 {
		return 0
	}
	return Clamp01(v / float64(extent))
}
