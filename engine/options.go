// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ik5/audtrig/audio"
)

// Options configures an Engine. Zero fields take the value from
// DefaultOptions.
type Options struct {
	// SampleRate of the output; every stream is normalized to it.
	SampleRate int
	// Streams is the number of stream slots.
	Streams int
	// Decoders is the number of compressed streams that can play at once.
	Decoders int
	// RingSize is the per-stream ring capacity in samples.
	RingSize int
	// ChunkSize is how many bytes one fill step reads from storage.
	ChunkSize int
	// PCMMargin and CompressedMargin are the free ring space, in samples,
	// a stream needs before it is refilled. Compressed chunks expand by an
	// unknown factor, hence the larger margin.
	PCMMargin        int
	CompressedMargin int
	// FadeIn is the length of the gain ramp at the start of a stream.
	FadeIn time.Duration
	// MasterAttenuation scales the mix, in percent.
	MasterAttenuation int
	// RatePolicy handles sources that are neither at SampleRate nor half of it.
	RatePolicy audio.RatePolicy
	// ServiceInterval is the period of the producer loop in Run.
	ServiceInterval time.Duration
	// MaxPathLen bounds the stored path, terminator included.
	MaxPathLen int

	Logger *slog.Logger
	// Clock returns the current time. It is read by the mixer once per frame.
	Clock func() time.Time
}

func DefaultOptions() Options {
	return Options{
		SampleRate:        audio.OutputRate,
		Streams:           3,
		Decoders:          2,
		RingSize:          audio.DefaultRingSize,
		ChunkSize:         512,
		PCMMargin:         2048,
		CompressedMargin:  16384,
		FadeIn:            50 * time.Millisecond,
		MasterAttenuation: 97,
		RatePolicy:        audio.RateResample,
		ServiceInterval:   time.Millisecond,
		MaxPathLen:        64,
		Logger:            slog.Default(),
		Clock:             time.Now,
	}
}

// withDefaults fills zero fields and checks the result.
func (o Options) withDefaults() (Options, error) {
	d := DefaultOptions()

	if o.SampleRate == 0 {
		o.SampleRate = d.SampleRate
	}
	if o.Streams == 0 {
		o.Streams = d.Streams
	}
	if o.Decoders == 0 {
		o.Decoders = d.Decoders
	}
	if o.RingSize == 0 {
		o.RingSize = d.RingSize
	}
	if o.ChunkSize == 0 {
		o.ChunkSize = d.ChunkSize
	}
	if o.PCMMargin == 0 {
		o.PCMMargin = d.PCMMargin
	}
	if o.CompressedMargin == 0 {
		o.CompressedMargin = d.CompressedMargin
	}
	if o.FadeIn == 0 {
		o.FadeIn = d.FadeIn
	}
	if o.MasterAttenuation == 0 {
		o.MasterAttenuation = d.MasterAttenuation
	}
	if o.ServiceInterval == 0 {
		o.ServiceInterval = d.ServiceInterval
	}
	if o.MaxPathLen == 0 {
		o.MaxPathLen = d.MaxPathLen
	}
	if o.Logger == nil {
		o.Logger = d.Logger
	}
	if o.Clock == nil {
		o.Clock = d.Clock
	}

	switch {
	case o.SampleRate < 0:
		return o, fmt.Errorf("%w: sample rate %d", ErrInvalidOptions, o.SampleRate)
	case o.Streams < 0, o.Decoders < 0:
		return o, fmt.Errorf("%w: %d streams, %d decoders", ErrInvalidOptions, o.Streams, o.Decoders)
	case o.RingSize < 8:
		return o, fmt.Errorf("%w: ring size %d", ErrInvalidOptions, o.RingSize)
	case o.ChunkSize < 0:
		return o, fmt.Errorf("%w: chunk size %d", ErrInvalidOptions, o.ChunkSize)
	case o.PCMMargin < 0 || o.PCMMargin >= o.RingSize:
		return o, fmt.Errorf("%w: pcm margin %d for ring size %d", ErrInvalidOptions, o.PCMMargin, o.RingSize)
	case o.CompressedMargin < 0 || o.CompressedMargin >= o.RingSize:
		return o, fmt.Errorf("%w: compressed margin %d for ring size %d", ErrInvalidOptions, o.CompressedMargin, o.RingSize)
	case o.FadeIn < 0:
		return o, fmt.Errorf("%w: fade-in %v", ErrInvalidOptions, o.FadeIn)
	case o.MasterAttenuation < 0 || o.MasterAttenuation > 100:
		return o, fmt.Errorf("%w: master attenuation %d%%", ErrInvalidOptions, o.MasterAttenuation)
	case o.MaxPathLen < 2:
		return o, fmt.Errorf("%w: max path length %d", ErrInvalidOptions, o.MaxPathLen)
	}

	return o, nil
}
