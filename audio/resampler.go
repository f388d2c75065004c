// SPDX-License-Identifier: EPL-2.0

package audio

import "github.com/ik5/audtrig/utils"

// Resampler converts a stereo int16 stream between arbitrary sample rates
// using cubic interpolation. Input arrives in chunks of any size; the
// interpolation history carries across calls so chunk boundaries are
// inaudible. It adds two frames of latency.
//
// A one-pole low-pass filter is applied to the input when downsampling.
type Resampler struct {
	srcRate int
	dstRate int
	ratio   float64 // srcRate / dstRate - source frames per output frame

	// Per channel: hist[c][0] = t-1, [1] = t0, [2] = t+1, [3] = t+2
	hist   [2][4]float32
	primed bool

	// Position between hist[c][1] and hist[c][2], in source frames
	pos float64

	useFilter   bool
	filterAlpha float32
	filterState [2]float32
}

func NewResampler(srcRate, dstRate int) *Resampler {
	ratio := float64(srcRate) / float64(dstRate)

	r := &Resampler{
		srcRate:   srcRate,
		dstRate:   dstRate,
		ratio:     ratio,
		useFilter: ratio > 1.0,
	}
	if r.useFilter {
		r.filterAlpha = 0.5
	}

	return r
}

func (r *Resampler) SrcRate() int { return r.srcRate }
func (r *Resampler) DstRate() int { return r.dstRate }

// Reset drops the interpolation history.
func (r *Resampler) Reset() {
	r.primed = false
	r.pos = 0
	r.filterState = [2]float32{}
}

// Process consumes interleaved stereo frames from in and appends the
// resampled interleaved stereo frames to out, returning the extended slice.
// A trailing odd sample in `in` is ignored.
func (r *Resampler) Process(in []int16, out []int16) []int16 {
	for i := 0; i+1 < len(in); i += 2 {
		x := [2]float32{float32(in[i]), float32(in[i+1])}

		if !r.primed {
			for c := range 2 {
				r.hist[c] = [4]float32{x[c], x[c], x[c], x[c]}
			}
			r.filterState = x
			r.primed = true
			continue
		}

		if r.useFilter {
			for c := range 2 {
				x[c] = r.filterAlpha*x[c] + (1-r.filterAlpha)*r.filterState[c]
				r.filterState[c] = x[c]
			}
		}

		for c := range 2 {
			h := &r.hist[c]
			h[0], h[1], h[2], h[3] = h[1], h[2], h[3], x[c]
		}

		for r.pos < 1.0 {
			alpha := float32(r.pos)
			out = append(out,
				utils.RoundInt16(utils.CubicInterpolate(r.hist[0], alpha)),
				utils.RoundInt16(utils.CubicInterpolate(r.hist[1], alpha)),
			)
			r.pos += r.ratio
		}
		r.pos -= 1.0
	}

	return out
}
