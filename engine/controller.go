// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/ik5/audtrig/audio"
	"github.com/ik5/audtrig/formats/wav"
)

// Start plays path on slot, replacing whatever the slot was playing.
//
// Paths under storage.FlashPrefix are WAV files on the flash medium. Other
// paths are on the card: compressed when their extension has a codec,
// WAV otherwise. On error the slot is left idle.
func (e *Engine) Start(slot int, path string) error {
	s, err := e.slot(slot)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.start(s, path)
}

func (e *Engine) start(s *stream, path string) error {
	e.stop(s)

	medium, name, flash, ok := e.media.Resolve(path)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoMedium, path)
	}

	format := PCMCard
	var (
		codecName string
		factory   audio.CodecFactory
	)
	if flash {
		format = PCMFlash
	} else if ext, f, found := e.codecs.Lookup(path); found {
		format = CompressedCard
		codecName, factory = ext, f
	}
	compressed := format.compressed()

	s.prepare(path, e.opts.MaxPathLen, e.log)

	medium.Lock()
	h, err := medium.Open(name)
	if err != nil {
		medium.Unlock()
		s.log.Warn("open failed", "path", path, "err", err)
		return fmt.Errorf("start %s: %w", path, err)
	}

	var hdr wav.Header
	if !compressed {
		hdr, err = wav.ParseHeader(h)
		switch {
		case errors.Is(err, wav.ErrNoDataChunk):
			s.log.Warn("no data chunk, playing from end of header", "path", path, "offset", hdr.DataOffset)
		case err != nil:
			_ = h.Close()
			medium.Unlock()
			s.log.Warn("bad WAV header", "path", path, "err", err)
			return fmt.Errorf("start %s: %w", path, err)
		default:
			s.remaining = hdr.DataSize
		}
	}
	medium.Unlock()

	if compressed {
		dec, err := e.pool.Acquire(codecName, factory, s.emit)
		if err != nil {
			medium.Lock()
			_ = h.Close()
			medium.Unlock()
			s.log.Warn("no decoder for stream", "path", path, "err", err)
			return fmt.Errorf("start %s: %w", path, err)
		}
		s.decoder = dec
	} else {
		s.channels = min(max(hdr.Channels, 1), 2)
		s.sampleRate = hdr.SampleRate
		s.bitDepth = hdr.BitDepth
		if err := s.norm.Configure(s.channels, s.sampleRate); err != nil {
			medium.Lock()
			_ = h.Close()
			medium.Unlock()
			s.log.Warn("unsupported sample rate", "path", path, "sampleRate", hdr.SampleRate, "err", err)
			return fmt.Errorf("start %s: %w", path, err)
		}
	}

	s.handle = h
	s.medium = medium

	s.ring.Clear()
	s.startNanos.Store(e.opts.Clock().UnixNano())
	s.stopRequested.Store(false)
	s.format.Store(int32(format))
	s.active.Store(true)

	if compressed {
		s.log.Info("stream started",
			"path", path,
			"format", format,
			"codec", codecName,
			"decoder", s.decoder,
			"size", h.Size(),
		)
	} else {
		s.log.Info("stream started",
			"path", path,
			"format", format,
			"sampleRate", hdr.SampleRate,
			"channels", hdr.Channels,
			"bitDepth", hdr.BitDepth,
			"blockAlign", hdr.BlockAlign,
			"dataOffset", hdr.DataOffset,
		)
	}

	return nil
}

// Stop ends playback on slot. Stopping an idle slot does nothing.
func (e *Engine) Stop(slot int) error {
	s, err := e.slot(slot)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.stop(s)
	return nil
}

func (e *Engine) stop(s *stream) {
	if !s.active.Load() && s.getFormat() == Inactive {
		return
	}

	s.active.Store(false)
	for s.mixing.Load() {
		runtime.Gosched()
	}

	if s.decoder >= 0 {
		if err := e.pool.Release(s.decoder); err != nil {
			s.log.Debug("decoder end", "err", err)
		}
		s.decoder = -1
	}

	if s.handle != nil {
		s.medium.Lock()
		if err := s.handle.Close(); err != nil {
			s.log.Debug("close failed", "err", err)
		}
		s.medium.Unlock()
		s.handle = nil
		s.medium = nil
	}

	s.format.Store(int32(Inactive))
	s.ring.Clear()
	s.stopRequested.Store(false)

	played := time.Duration(e.opts.Clock().UnixNano() - s.startNanos.Load())
	s.log.Info("stream stopped",
		"path", s.path,
		"played", played.Round(time.Millisecond),
		"dropped", s.norm.Dropped(),
	)
}

// SetVolume sets the gain of slot, or of every slot with AllStreams, from a
// level between 0 and 99. It takes effect on the next mixed frame.
func (e *Engine) SetVolume(slot, level int) error {
	level = min(max(level, 0), 99)
	gain := float32(level) / 99

	if slot == AllStreams {
		for _, s := range e.streams {
			s.setGain(gain)
		}
		return nil
	}

	s, err := e.slot(slot)
	if err != nil {
		return err
	}
	s.setGain(gain)
	return nil
}

// TriggerTone starts a linear sweep from startHz to endHz lasting
// durationMs at volume (0-255), replacing any sweep in progress. A
// durationMs of zero or less does nothing. Concurrent calls are serialized
// with the producer side.
func (e *Engine) TriggerTone(startHz, endHz, durationMs int, volume uint8) {
	if durationMs <= 0 {
		return
	}

	e.mu.Lock()
	e.tone.Trigger(startHz, endHz, durationMs, volume)
	e.mu.Unlock()

	e.log.Debug("tone triggered",
		"startHz", startHz,
		"endHz", endHz,
		"durationMs", durationMs,
		"volume", volume,
	)
}

// NextAvailableSlot returns the first idle slot. When every slot is busy it
// returns 0, whose stream the next Start replaces.
func (e *Engine) NextAvailableSlot() int {
	for i, s := range e.streams {
		if !s.active.Load() {
			return i
		}
	}
	return 0
}

// Busy reports whether a compressed stream's ring is less than a quarter
// full, meaning the producer should be left to refill it.
func (e *Engine) Busy() bool {
	for _, s := range e.streams {
		if s.active.Load() && s.getFormat().compressed() &&
			s.ring.AvailableToRead() < s.ring.Cap()/4 {
			return true
		}
	}
	return false
}

// PlayAndWait plays path on slot and services the engine until the stream
// ends or ctx is done. Audio output is enabled for the duration and
// restored afterwards. The mixer must be running for the stream to drain.
func (e *Engine) PlayAndWait(ctx context.Context, slot int, path string) error {
	wasEnabled := e.enabled.Load()
	e.SetAudioEnabled(true)
	defer e.SetAudioEnabled(wasEnabled)

	if err := e.Start(slot, path); err != nil {
		return err
	}
	s := e.streams[slot]

	ticker := time.NewTicker(e.opts.ServiceInterval)
	defer ticker.Stop()

	for {
		e.Service()
		if !s.active.Load() {
			return nil
		}

		select {
		case <-ctx.Done():
			_ = e.Stop(slot)
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
