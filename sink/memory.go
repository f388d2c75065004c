// SPDX-License-Identifier: EPL-2.0

package sink

import "sync"

// Frame is one stereo output sample pair.
type Frame struct {
	L, R int16
}

// Memory keeps every frame it is given. It never blocks, so a mixer writing
// to it runs as fast as the CPU allows.
type Memory struct {
	mu     sync.Mutex
	frames []Frame
	rate   int
	begins int
	ends   int
	open   bool
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Begin(sampleRate int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rate = sampleRate
	m.begins++
	m.open = true
	return nil
}

func (m *Memory) WriteFrame(l, r int16) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.open {
		return ErrNotStarted
	}
	m.frames = append(m.frames, Frame{l, r})
	return nil
}

func (m *Memory) End() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ends++
	m.open = false
	return nil
}

// Frames returns a copy of the frames written so far.
func (m *Memory) Frames() []Frame {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]Frame(nil), m.frames...)
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.frames)
}

func (m *Memory) SampleRate() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.rate
}

// Cycles reports how many times Begin and End were called.
func (m *Memory) Cycles() (begins, ends int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.begins, m.ends
}
