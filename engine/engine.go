// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ik5/audtrig/audio"
	"github.com/ik5/audtrig/sink"
	"github.com/ik5/audtrig/storage"
	"github.com/ik5/audtrig/tone"
)

// AllStreams addresses every slot in SetVolume.
const AllStreams = -1

// Engine owns the stream slots, the decoder pool, the tone generator and
// the mixer.
//
// Start, Stop, Status, Service, TriggerTone and PlayAndWait form the
// producer side and are serialized by an internal lock. SetVolume and
// SetAudioEnabled only touch atomics. The mixer never takes the lock.
type Engine struct {
	opts   Options
	log    *slog.Logger
	media  *storage.Router
	codecs *audio.Registry

	mu      sync.Mutex
	streams []*stream
	pool    *DecoderPool
	chunk   []byte

	tone    *tone.Generator
	enabled atomic.Bool
	mixer   *Mixer
}

// New builds an engine reading from media. Files whose extension is in
// codecs are played as compressed streams; everything else is parsed as WAV.
func New(media *storage.Router, codecs *audio.Registry, opts Options) (*Engine, error) {
	o, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	if media == nil {
		media = &storage.Router{}
	}
	if codecs == nil {
		codecs = audio.NewRegistry()
	}

	e := &Engine{
		opts:    o,
		log:     o.Logger,
		media:   media,
		codecs:  codecs,
		streams: make([]*stream, o.Streams),
		pool:    NewDecoderPool(o.Decoders),
		chunk:   make([]byte, o.ChunkSize),
		tone:    tone.New(o.SampleRate),
	}
	for i := range e.streams {
		e.streams[i] = newStream(i, o)
	}
	e.enabled.Store(true)
	e.mixer = newMixer(e.streams, e.tone, &e.enabled, o)

	e.log.Debug("engine ready",
		"streams", o.Streams,
		"decoders", o.Decoders,
		"sampleRate", o.SampleRate,
		"ringSize", o.RingSize,
		"ratePolicy", o.RatePolicy,
		"formats", codecs.Formats(),
	)

	return e, nil
}

func (e *Engine) Options() Options { return e.opts }
func (e *Engine) Streams() int     { return len(e.streams) }
func (e *Engine) Mixer() *Mixer    { return e.mixer }

// SetAudioEnabled turns the output on or off. While off the mixer ends its
// sink and stops consuming; streams keep their buffered audio.
func (e *Engine) SetAudioEnabled(on bool) {
	if e.enabled.Swap(on) != on {
		e.log.Info("audio output", "enabled", on)
	}
}

func (e *Engine) AudioEnabled() bool { return e.enabled.Load() }

// Run drives the engine: a producer loop calling Service every
// ServiceInterval and the mixer writing to out. It returns when ctx is done
// or either loop fails.
func (e *Engine) Run(ctx context.Context, out sink.Sink) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ticker := time.NewTicker(e.opts.ServiceInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				e.Service()
			}
		}
	})

	g.Go(func() error {
		return e.mixer.Run(ctx, out)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	return nil
}

// Close stops every stream.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, s := range e.streams {
		e.stop(s)
	}
	e.tone.Stop()
}

func (e *Engine) slot(slot int) (*stream, error) {
	if slot < 0 || slot >= len(e.streams) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	return e.streams[slot], nil
}
