// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// ClampInt16 hard-limits a 32-bit accumulator to the signed 16-bit range.
// It clips; there is no soft knee.
func ClampInt16(v int32) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}

	return int16(v)
}

// RoundInt16 rounds x (already in int16 scale, not [-1,1]) to the nearest
// integer and saturates it.
func RoundInt16(x float32) int16 {
	if x >= math.MaxInt16 {
		return math.MaxInt16
	}
	if x <= math.MinInt16 {
		return math.MinInt16
	}
	if x < 0 {
		return int16(x - 0.5)
	}

	return int16(x + 0.5)
}
