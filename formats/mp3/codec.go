// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/audtrig/audio"
)

var (
	ErrNotStarted = errors.New("mp3: codec not started")
	ErrClosed     = errors.New("mp3: decoder stopped")
)

// go-mp3 always produces interleaved stereo.
const outChannels = 2

// One MPEG-1 layer III frame: 1152 stereo samples.
const frameBytes = 1152 * outChannels * 2

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type openFunc func(io.Reader) (mp3Reader, error)

func openGoMP3(r io.Reader) (mp3Reader, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, err
	}
	return dec, nil
}

// Codec adapts the pull-based go-mp3 decoder to audio.Codec.
//
// Each Begin starts a decoding goroutine that reads from the bytes given to
// Write. Write hands its slice over and returns once the decoder has
// consumed all of it and is waiting for more, so every emit call for those
// bytes happens on the decoding goroutine while Write is blocked. From the
// caller's point of view emit runs synchronously inside Write or End.
type Codec struct {
	open openFunc
	s    *session
}

type session struct {
	in   chan []byte
	idle chan struct{}
	done chan struct{}
	err  error // valid once done is closed
}

// NewCodec returns an idle MP3 codec. It satisfies audio.CodecFactory.
func NewCodec() audio.Codec {
	return &Codec{open: openGoMP3}
}

func (c *Codec) Begin(emit audio.PCMFunc) error {
	if c.s != nil {
		_ = c.End()
	}

	s := &session{
		in:   make(chan []byte),
		idle: make(chan struct{}),
		done: make(chan struct{}),
	}
	c.s = s

	go c.run(s, emit)
	return nil
}

func (c *Codec) Write(p []byte) error {
	s := c.s
	if s == nil {
		return ErrNotStarted
	}
	if len(p) == 0 {
		return nil
	}

	select {
	case s.in <- p:
	case <-s.done:
		return s.closedErr()
	}

	select {
	case <-s.idle:
		return nil
	case <-s.done:
		return s.closedErr()
	}
}

// End signals end of input, waits for the remaining frames to be emitted and
// stops the decoding goroutine. A stream that never produced a frame reports
// the decoder's error.
func (c *Codec) End() error {
	s := c.s
	if s == nil {
		return nil
	}
	c.s = nil

	close(s.in)
	<-s.done

	return s.err
}

func (s *session) closedErr() error {
	if s.err != nil {
		return s.err
	}
	return ErrClosed
}

func (c *Codec) run(s *session, emit audio.PCMFunc) {
	defer close(s.done)

	f := &feed{in: s.in, idle: s.idle}

	dec, err := c.open(f)
	if err != nil {
		s.err = fmt.Errorf("mp3: open stream: %w", err)
		return
	}
	rate := dec.SampleRate()

	buf := make([]byte, frameBytes)
	pcm := make([]int16, frameBytes/2)
	keep := 0

	for {
		n, err := dec.Read(buf[keep:])
		n += keep

		whole := n &^ 3
		for i := 0; i < whole; i += 2 {
			pcm[i/2] = int16(binary.LittleEndian.Uint16(buf[i:]))
		}
		if whole > 0 && emit != nil {
			emit(pcm[:whole/2], outChannels, rate)
		}
		keep = copy(buf, buf[whole:n])

		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
				s.err = fmt.Errorf("mp3: decode: %w", err)
			}
			return
		}
	}
}

// feed is the io.Reader the decoder pulls from. It signals idle each time
// it has handed out the whole current chunk and needs another one.
type feed struct {
	in      <-chan []byte
	idle    chan<- struct{}
	cur     []byte
	pending bool
}

func (f *feed) Read(p []byte) (int, error) {
	for len(f.cur) == 0 {
		if f.pending {
			f.pending = false
			f.idle <- struct{}{}
		}

		chunk, ok := <-f.in
		if !ok {
			return 0, io.EOF
		}
		f.cur = chunk
		f.pending = true
	}

	n := copy(p, f.cur)
	f.cur = f.cur[n:]
	return n, nil
}
