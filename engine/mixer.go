// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ik5/audtrig/sink"
	"github.com/ik5/audtrig/tone"
	"github.com/ik5/audtrig/utils"
)

// Mixer is the consumer side of the engine. It combines every active stream
// and the tone into one stereo frame at a time.
type Mixer struct {
	streams    []*stream
	tone       *tone.Generator
	enabled    *atomic.Bool
	now        func() time.Time
	sampleRate int

	fadeNanos int64
	master    int32 // 0..256
}

func newMixer(streams []*stream, gen *tone.Generator, enabled *atomic.Bool, o Options) *Mixer {
	return &Mixer{
		streams:    streams,
		tone:       gen,
		enabled:    enabled,
		now:        o.Clock,
		sampleRate: o.SampleRate,
		fadeNanos:  int64(o.FadeIn),
		master:     int32(o.MasterAttenuation * 256 / 100),
	}
}

// MixFrame produces the next output frame. It never blocks, allocates or
// takes a lock.
func (m *Mixer) MixFrame() (l, r int16) {
	var accL, accR int32
	now := m.now().UnixNano()

	for _, s := range m.streams {
		s.mixing.Store(true)

		if s.active.Load() && s.ring.AvailableToRead() >= 2 {
			sl := int32(s.ring.Pop())
			sr := int32(s.ring.Pop())

			vol := int32(s.getGain() * 256)
			if elapsed := now - s.startNanos.Load(); m.fadeNanos > 0 && elapsed < m.fadeNanos {
				ramp := int32(max(elapsed, 0) * 256 / m.fadeNanos)
				vol = vol * ramp >> 8
			}
			g := vol * m.master >> 8

			accL += sl * g >> 8
			accR += sr * g >> 8
		}

		s.mixing.Store(false)
	}

	if t, ok := m.tone.Next(); ok {
		accL += t
		accR += t
	}

	return utils.ClampInt16(accL), utils.ClampInt16(accR)
}

// Run mixes frames into out until ctx is done. While audio is disabled it
// ends the sink and idles; when audio comes back it begins the sink again.
func (m *Mixer) Run(ctx context.Context, out sink.Sink) error {
	begun := false
	defer func() {
		if begun {
			_ = out.End()
		}
	}()

	done := ctx.Done()
	idle := time.NewTicker(time.Millisecond)
	defer idle.Stop()

	for {
		select {
		case <-done:
			return nil
		default:
		}

		if !m.enabled.Load() {
			if begun {
				begun = false
				if err := out.End(); err != nil {
					return fmt.Errorf("mixer: end sink: %w", err)
				}
			}
			select {
			case <-done:
				return nil
			case <-idle.C:
			}
			continue
		}

		if !begun {
			if err := out.Begin(m.sampleRate); err != nil {
				return fmt.Errorf("mixer: begin sink: %w", err)
			}
			begun = true
		}

		l, r := m.MixFrame()
		if err := out.WriteFrame(l, r); err != nil {
			return fmt.Errorf("mixer: write frame: %w", err)
		}
	}
}
