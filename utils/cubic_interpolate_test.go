// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestCubicInterpolate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		y         [4]float32
		x         float32
		want      float32
		tolerance float32
	}{
		{
			name:      "interpolate at start (x=0)",
			y:         [4]float32{0, 1, 2, 3},
			x:         0,
			want:      1,
			tolerance: 0.001,
		},
		{
			name:      "interpolate at end (x=1)",
			y:         [4]float32{0, 1, 2, 3},
			x:         1,
			want:      2,
			tolerance: 0.001,
		},
		{
			name:      "linear data produces linear result",
			y:         [4]float32{1, 2, 3, 4},
			x:         0.25,
			want:      2.25,
			tolerance: 0.01,
		},
		{
			name:      "int16 scale samples",
			y:         [4]float32{-1000, 0, 1000, 2000},
			x:         0.5,
			want:      500,
			tolerance: 0.5,
		},
		{
			name:      "negative values",
			y:         [4]float32{-1, -0.5, 0.5, 1},
			x:         0.5,
			want:      0,
			tolerance: 0.1,
		},
		{
			name:      "zero values",
			y:         [4]float32{},
			x:         0.5,
			want:      0,
			tolerance: 0.001,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CubicInterpolate(tt.y, tt.x)
			diff := float32(math.Abs(float64(got - tt.want)))

			if diff > tt.tolerance {
				t.Errorf("CubicInterpolate() = %v, want %v (tolerance %v, diff %v)",
					got, tt.want, tt.tolerance, diff)
			}
		})
	}
}

// TestCubicInterpolateBounds verifies the spline passes through y1 and y2.
func TestCubicInterpolateBounds(t *testing.T) {
	t.Parallel()

	for i := range 100 {
		y := [4]float32{float32(i), float32(i + 1), float32(i + 3), float32(i + 2)}

		if got := CubicInterpolate(y, 0); got != y[1] {
			t.Errorf("x=0 should return y1=%v, got %v", y[1], got)
		}
		if got := CubicInterpolate(y, 1); math.Abs(float64(got-y[2])) > 1e-3 {
			t.Errorf("x=1 should return y2=%v, got %v", y[2], got)
		}
	}
}

func BenchmarkCubicInterpolate(b *testing.B) {
	var result float32
	y := [4]float32{0.5, 1.0, 0.8, 0.3}

	b.ReportAllocs()

	for range b.N {
		result = CubicInterpolate(y, 0.5)
	}

	_ = result
}

func TestCubicInterpolate_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	allocs := testing.AllocsPerRun(1000, func() {
		_ = CubicInterpolate([4]float32{0.5, 1.0, 0.8, 0.3}, 0.5)
	})

	if allocs > 0 {
		t.Errorf("CubicInterpolate allocated %v times, want 0", allocs)
	}
}
