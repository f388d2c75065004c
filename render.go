// SPDX-License-Identifier: EPL-2.0

package audtrig

import (
	"fmt"
	"time"

	"github.com/ik5/audtrig/audio"
	"github.com/ik5/audtrig/engine"
	"github.com/ik5/audtrig/storage"
)

// Render plays path through a private engine without a sink and collects
// the mixed output as interleaved stereo 16-bit PCM at opts.SampleRate.
//
// The engine clock counts mixed frames instead of wall time, so the fade-in
// is exact and rendering runs as fast as the file can be read. maxFrames
// bounds the output; zero means unbounded.
func Render(media *storage.Router, codecs *audio.Registry, path string, opts engine.Options, maxFrames int) ([]int16, error) {
	var frames int64
	epoch := time.Unix(0, 0)

	o := opts
	if o.SampleRate == 0 {
		o.SampleRate = audio.OutputRate
	}
	rate := int64(o.SampleRate)
	o.Clock = func() time.Time {
		return epoch.Add(time.Duration(frames * int64(time.Second) / rate))
	}

	e, err := engine.New(media, codecs, o)
	if err != nil {
		return nil, err
	}
	defer e.Close()

	if err := e.Start(0, path); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	m := e.Mixer()
	pcm := make([]int16, 0, 2*o.SampleRate)

	for {
		e.Service()
		st, err := e.Status(0)
		if err != nil {
			return nil, err
		}
		if !st.Playing {
			return pcm, nil
		}

		for range st.Buffered {
			if maxFrames > 0 && int(frames) >= maxFrames {
				return pcm, nil
			}
			l, r := m.MixFrame()
			pcm = append(pcm, l, r)
			frames++
		}
	}
}
