// SPDX-License-Identifier: EPL-2.0

package audio

import "sync/atomic"

// DefaultRingSize is the per-stream capacity in samples (not frames):
// 256Ki int16 values, about 2.9s of 44.1kHz stereo.
const DefaultRingSize = 256 * 1024

// RingBuffer is a fixed-capacity single-producer/single-consumer circular
// buffer of interleaved stereo int16 samples.
//
// The producer only stores write and the consumer only stores read. Each side
// loads the other's index before touching the backing array, so a Push is
// visible to the Pop that observes its index. One slot is always left empty to
// tell full from empty, so usable capacity is Cap()-1.
//
// Push and Pop never block and never allocate.
type RingBuffer struct {
	write atomic.Uint32
	_     [60]byte
	read  atomic.Uint32
	_     [60]byte

	buf  []int16
	size uint32
}

// NewRingBuffer allocates a ring holding size slots. size must be at least 2.
func NewRingBuffer(size int) *RingBuffer {
	if size < 2 {
		panic("audio: ring buffer size must be at least 2")
	}

	return &RingBuffer{
		buf:  make([]int16, size),
		size: uint32(size),
	}
}

// Cap returns the number of slots, one more than the usable capacity.
func (r *RingBuffer) Cap() int { return int(r.size) }

func (r *RingBuffer) level(w, rd uint32) uint32 {
	return (w - rd + r.size) % r.size
}

// AvailableToRead returns the number of samples that can be popped.
func (r *RingBuffer) AvailableToRead() int {
	return int(r.level(r.write.Load(), r.read.Load()))
}

// AvailableToWrite returns the number of samples that can be pushed.
func (r *RingBuffer) AvailableToWrite() int {
	return int(r.size - 1 - r.level(r.write.Load(), r.read.Load()))
}

// Push appends one sample. It returns false and drops the sample when the
// buffer is full. Producer only.
func (r *RingBuffer) Push(s int16) bool {
	w := r.write.Load()
	next := (w + 1) % r.size
	if next == r.read.Load() {
		return false
	}

	r.buf[w] = s
	r.write.Store(next)
	return true
}

// Pop removes the oldest sample. It returns 0 when the buffer is empty;
// callers check AvailableToRead first. Consumer only.
func (r *RingBuffer) Pop() int16 {
	rd := r.read.Load()
	if rd == r.write.Load() {
		return 0
	}

	s := r.buf[rd]
	r.read.Store((rd + 1) % r.size)
	return s
}

// Clear resets both indices to zero. The caller must guarantee the consumer
// is not inside Pop, see engine's mixing fence.
func (r *RingBuffer) Clear() {
	r.read.Store(0)
	r.write.Store(0)
}
