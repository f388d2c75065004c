// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"encoding/binary"
	"errors"
	"sync/atomic"

	"github.com/ik5/audtrig/audio"
)

var ErrCodecNotStarted = errors.New("audiotest: codec not started")

// Codec is a fake compressed codec: it treats the bytes written to it as
// 16-bit little-endian PCM at a fixed layout and emits them unchanged.
type Codec struct {
	Channels   int
	SampleRate int
	// WriteErr, when set, is returned by every Write.
	WriteErr error

	emit    audio.PCMFunc
	carry   []byte
	pcm     []int16
	running bool

	begins atomic.Int32
	ends   atomic.Int32
	writes atomic.Int32
}

// NewCodec returns a fake codec emitting stereo at 44.1kHz.
func NewCodec() *Codec {
	return &Codec{Channels: 2, SampleRate: 44100}
}

// Factory returns an audio.CodecFactory that hands out fresh fakes built by
// newCodec and records each one in created.
func Factory(newCodec func() *Codec, created *[]*Codec) audio.CodecFactory {
	return func() audio.Codec {
		c := newCodec()
		if created != nil {
			*created = append(*created, c)
		}
		return c
	}
}

func (c *Codec) Begin(emit audio.PCMFunc) error {
	c.emit = emit
	c.carry = c.carry[:0]
	c.running = true
	c.begins.Add(1)
	return nil
}

func (c *Codec) Write(p []byte) error {
	if !c.running {
		return ErrCodecNotStarted
	}
	c.writes.Add(1)
	if c.WriteErr != nil {
		return c.WriteErr
	}

	c.carry = append(c.carry, p...)
	whole := len(c.carry) &^ 1
	c.pcm = c.pcm[:0]
	for i := 0; i < whole; i += 2 {
		c.pcm = append(c.pcm, int16(binary.LittleEndian.Uint16(c.carry[i:])))
	}
	c.carry = append(c.carry[:0], c.carry[whole:]...)

	if len(c.pcm) > 0 && c.emit != nil {
		c.emit(c.pcm, c.Channels, c.SampleRate)
	}
	return nil
}

func (c *Codec) End() error {
	c.running = false
	c.emit = nil
	c.ends.Add(1)
	return nil
}

func (c *Codec) Running() bool { return c.running }
func (c *Codec) Begins() int   { return int(c.begins.Load()) }
func (c *Codec) Ends() int     { return int(c.ends.Load()) }
func (c *Codec) Writes() int   { return int(c.writes.Load()) }
