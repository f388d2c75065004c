// SPDX-License-Identifier: EPL-2.0

package utils

// CubicInterpolate evaluates a Catmull-Rom spline through four consecutive
// points y[0..3] at fractional position x (0 <= x <= 1) between y[1] and y[2].
func CubicInterpolate(y [4]float32, x float32) float32 {
	a0 := -0.5*y[0] + 1.5*y[1] - 1.5*y[2] + 0.5*y[3]
	a1 := y[0] - 2.5*y[1] + 2*y[2] - 0.5*y[3]
	a2 := -0.5*y[0] + 0.5*y[2]

	// Horner form keeps the per-sample cost to three multiplies.
	return ((a0*x+a1)*x+a2)*x + y[1]
}
