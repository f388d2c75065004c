// SPDX-License-Identifier: EPL-2.0

package tone

import (
	"runtime"
	"sync/atomic"
)

// maxHz bounds sweep endpoints so the Q16 increment fits in 64 bits.
const maxHz = 1 << 15

// Generator produces a single linear frequency sweep ("chirp").
//
// Trigger is called from one producer goroutine at a time; Next is called
// from the mixer only. Every field is an atomic. Trigger deactivates the
// generator and waits until the mixer is outside Next before it rewrites the
// sweep, so the mixer never observes a half-written configuration.
type Generator struct {
	sampleRate int

	active atomic.Bool
	mixing atomic.Bool

	phase atomic.Uint32
	// Phase increments in Q16 fixed point: the upper bits are the 32-bit
	// per-sample phase step, the low 16 bits carry the fraction of the sweep.
	inc    atomic.Uint64
	target atomic.Uint64
	step   atomic.Int64

	remaining atomic.Int64
	volume    atomic.Int32
}

// New returns an idle generator for the given output sample rate.
func New(sampleRate int) *Generator {
	if sampleRate <= 0 {
		sampleRate = 44100
	}
	return &Generator{sampleRate: sampleRate}
}

func (g *Generator) SampleRate() int { return g.sampleRate }

// Active reports whether a sweep is playing.
func (g *Generator) Active() bool { return g.active.Load() }

// increment converts a frequency to a Q16 phase increment.
func (g *Generator) increment(hz int) uint64 {
	hz = min(max(hz, 0), maxHz)
	return uint64(hz) << 48 / uint64(g.sampleRate)
}

// Trigger starts a sweep from startHz to endHz over durationMs at volume
// (0-255), replacing any sweep in progress. A durationMs of zero or less
// does nothing.
func (g *Generator) Trigger(startHz, endHz, durationMs int, volume uint8) {
	if durationMs <= 0 {
		return
	}

	total := int64(durationMs) * int64(g.sampleRate) / 1000
	if total < 1 {
		total = 1
	}

	start := g.increment(startHz)
	target := g.increment(endHz)

	g.Stop()

	g.phase.Store(0)
	g.inc.Store(start)
	g.target.Store(target)
	g.step.Store((int64(target) - int64(start)) / total)
	g.remaining.Store(total)
	g.volume.Store(int32(volume))

	g.active.Store(true)
}

// Stop silences the generator and returns once the mixer is no longer
// reading its state.
func (g *Generator) Stop() {
	g.active.Store(false)
	for g.mixing.Load() {
		runtime.Gosched()
	}
}

// Next returns the next tone sample, already scaled by the volume, and
// advances the sweep. ok is false when no sweep is playing. It deactivates
// the generator after the last sample of the sweep. Mixer only.
func (g *Generator) Next() (sample int32, ok bool) {
	g.mixing.Store(true)

	if !g.active.Load() {
		g.mixing.Store(false)
		return 0, false
	}

	remaining := g.remaining.Load()
	if remaining <= 0 {
		g.active.Store(false)
		g.mixing.Store(false)
		return 0, false
	}

	phase := g.phase.Load()
	sample = int32(sine[phase>>24]) << 8
	sample = sample * g.volume.Load() >> 8

	inc := g.inc.Load()
	g.phase.Store(phase + uint32(inc>>16))

	target := g.target.Load()
	switch step := g.step.Load(); {
	case step > 0:
		inc += uint64(step)
		if inc > target {
			inc = target
		}
	case step < 0:
		if d := uint64(-step); inc < target+d {
			inc = target
		} else {
			inc -= d
		}
	}
	g.inc.Store(inc)

	remaining--
	g.remaining.Store(remaining)
	if remaining == 0 {
		g.active.Store(false)
	}

	g.mixing.Store(false)
	return sample, true
}
