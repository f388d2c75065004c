// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"errors"
	"io"
)

// Service runs one producer pass: every active stream with enough free ring
// space gets one chunk of input, then streams that have finished or asked
// to stop are stopped.
func (e *Engine) Service() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, s := range e.streams {
		if !s.active.Load() {
			continue
		}

		e.fill(s)

		if s.eof && s.attempted && s.ring.AvailableToRead() == 0 {
			s.stopRequested.Store(true)
		}
		if s.stopRequested.Load() {
			e.stop(s)
		}
	}
}

func (e *Engine) fill(s *stream) {
	if s.eof || s.stopRequested.Load() {
		return
	}

	format := s.getFormat()
	margin := e.opts.PCMMargin
	if format.compressed() {
		margin = e.opts.CompressedMargin
	}
	if s.ring.AvailableToWrite() <= margin {
		return
	}

	s.attempted = true

	buf := e.chunk
	if s.remaining >= 0 && int64(len(buf)) > s.remaining {
		buf = buf[:s.remaining]
	}

	s.medium.Lock()
	n, err := s.handle.Read(buf)
	more := s.handle.Available()
	s.medium.Unlock()

	if s.remaining >= 0 {
		s.remaining -= int64(n)
	}

	if err != nil && !errors.Is(err, io.EOF) {
		s.log.Warn("read failed, ending stream", "path", s.path, "err", err)
		s.eof = true
		return
	}

	if format.compressed() {
		if n == 0 {
			if !more {
				s.eof = true
				s.log.Debug("end of input", "path", s.path)
			} else {
				s.log.Debug("empty read with data left, retrying", "path", s.path)
			}
			return
		}

		if err := e.pool.Codec(s.decoder).Write(buf[:n]); err != nil {
			s.log.Warn("decode failed, ending stream", "path", s.path, "err", err)
			s.eof = true
		}
		return
	}

	if n == 0 {
		s.eof = true
		s.log.Debug("end of input", "path", s.path)
		return
	}
	s.norm.WriteLE(s.ring, buf[:n])
}
