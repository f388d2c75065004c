//go:build !headless

// SPDX-License-Identifier: EPL-2.0

package otosink

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/ik5/audtrig/audio"
)

var ErrRateMismatch = errors.New("otosink: sample rate differs from the device context")

// Speaker plays the output on the default audio device through oto.
//
// Frames go through a small ring: WriteFrame is the producer and oto's
// player goroutine is the consumer. WriteFrame sleeps while the ring is full,
// which paces the mixer at the device rate.
type Speaker struct {
	ctx  *oto.Context
	rate int
	ring *audio.RingBuffer

	mu     sync.Mutex
	player *oto.Player

	pollInterval time.Duration
}

// NewSpeaker opens the audio device. oto allows one context per process.
// latency sets both the device buffer and the depth of the frame ring.
func NewSpeaker(sampleRate int, latency time.Duration) (*Speaker, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   latency,
	})
	if err != nil {
		return nil, fmt.Errorf("otosink: open device: %w", err)
	}
	<-ready

	frames := max(int(latency*time.Duration(sampleRate)/time.Second), 64)

	return &Speaker{
		ctx:          ctx,
		rate:         sampleRate,
		ring:         audio.NewRingBuffer(2*frames + 1),
		pollInterval: time.Millisecond,
	}, nil
}

func (s *Speaker) Begin(sampleRate int) error {
	if sampleRate != s.rate {
		return fmt.Errorf("%w: %d != %d", ErrRateMismatch, sampleRate, s.rate)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player == nil {
		s.player = s.ctx.NewPlayer(s)
	}
	s.player.Play()
	return nil
}

func (s *Speaker) WriteFrame(l, r int16) error {
	for s.ring.AvailableToWrite() < 2 {
		time.Sleep(s.pollInterval)
	}
	s.ring.Push(l)
	s.ring.Push(r)
	return nil
}

// End pauses the device. Frames still in the ring play on the next Begin.
func (s *Speaker) End() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player != nil {
		s.player.Pause()
	}
	return nil
}

// Close releases the player.
func (s *Speaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player == nil {
		return nil
	}
	err := s.player.Close()
	s.player = nil
	return err
}

// Read feeds oto with interleaved 16-bit little-endian samples. Underruns
// are filled with silence.
func (s *Speaker) Read(p []byte) (int, error) {
	n := len(p) &^ 3
	for i := 0; i < n; i += 4 {
		var l, r int16
		if s.ring.AvailableToRead() >= 2 {
			l, r = s.ring.Pop(), s.ring.Pop()
		}
		p[i] = byte(l)
		p[i+1] = byte(uint16(l) >> 8)
		p[i+2] = byte(r)
		p[i+3] = byte(uint16(r) >> 8)
	}
	return n, nil
}
