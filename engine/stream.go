// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"log/slog"
	"math"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/ik5/audtrig/audio"
	"github.com/ik5/audtrig/storage"
)

// Format is the kind of source a stream slot is playing.
type Format int32

const (
	Inactive Format = iota
	PCMFlash
	PCMCard
	CompressedCard
)

func (f Format) String() string {
	switch f {
	case Inactive:
		return "inactive"
	case PCMFlash:
		return "pcm-flash"
	case PCMCard:
		return "pcm-card"
	case CompressedCard:
		return "compressed-card"
	default:
		return "unknown"
	}
}

func (f Format) compressed() bool { return f == CompressedCard }

// stream is one playback slot. The atomics are shared with the mixer; every
// other field belongs to the producer and is only touched with the engine's
// producer lock held (or from a codec callback running inside a producer
// call).
type stream struct {
	slot int
	ring *audio.RingBuffer

	active        atomic.Bool
	format        atomic.Int32
	gain          atomic.Uint32 // float32 bits
	stopRequested atomic.Bool
	startNanos    atomic.Int64
	mixing        atomic.Bool

	decoder    int
	handle     *storage.Handle
	medium     *storage.Medium
	channels   int
	sampleRate int
	bitDepth   int
	remaining  int64 // payload bytes left, -1 when unbounded
	eof        bool
	attempted  bool
	rejected   bool
	path       string
	playback   uuid.UUID
	log        *slog.Logger
	norm       *audio.Normalizer
	emit       audio.PCMFunc
}

func newStream(slot int, o Options) *stream {
	s := &stream{
		slot:    slot,
		ring:    audio.NewRingBuffer(o.RingSize),
		decoder: -1,
		norm:    audio.NewNormalizer(o.SampleRate, o.RatePolicy),
		log:     o.Logger.With("slot", slot),
	}
	s.setGain(1)
	s.emit = s.onPCM
	return s
}

func (s *stream) setGain(g float32) { s.gain.Store(math.Float32bits(g)) }
func (s *stream) getGain() float32  { return math.Float32frombits(s.gain.Load()) }

func (s *stream) getFormat() Format { return Format(s.format.Load()) }

// prepare resets the producer state for a new playback of path.
func (s *stream) prepare(path string, maxPathLen int, base *slog.Logger) {
	if len(path) > maxPathLen-1 {
		path = path[:maxPathLen-1]
	}

	s.path = path
	s.playback = uuid.New()
	s.log = base.With("slot", s.slot, "playback", s.playback)
	s.channels = 2
	s.sampleRate = 0
	s.bitDepth = 16
	s.remaining = -1
	s.eof = false
	s.attempted = false
	s.rejected = false
	s.norm.Reset()
}

// onPCM receives decoded PCM from the stream's codec.
func (s *stream) onPCM(pcm []int16, channels, sampleRate int) {
	if s.sampleRate == 0 {
		s.sampleRate = sampleRate
		s.channels = min(max(channels, 1), 2)
		s.log.Debug("first decoded frame",
			"sampleRate", sampleRate,
			"channels", channels,
		)
	}

	if err := s.norm.Configure(channels, sampleRate); err != nil {
		if !s.rejected {
			s.rejected = true
			s.log.Warn("decoded stream rejected", "err", err)
		}
		s.stopRequested.Store(true)
		return
	}

	s.norm.Write(s.ring, pcm)
}
