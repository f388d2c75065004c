// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"fmt"

	"github.com/ik5/audtrig/audio"
)

// DecoderPool bounds how many compressed streams decode at once. Each slot
// keeps the codec instances it has built, one per format, and reuses them
// across streams. It is used from the producer side only.
type DecoderPool struct {
	slots []decoderSlot
}

type decoderSlot struct {
	inUse  bool
	codecs map[string]audio.Codec
	cur    audio.Codec
}

func NewDecoderPool(size int) *DecoderPool {
	p := &DecoderPool{slots: make([]decoderSlot, size)}
	for i := range p.slots {
		p.slots[i].codecs = make(map[string]audio.Codec)
	}
	return p
}

func (p *DecoderPool) Size() int { return len(p.slots) }

// InUse returns how many slots are taken.
func (p *DecoderPool) InUse() int {
	n := 0
	for i := range p.slots {
		if p.slots[i].inUse {
			n++
		}
	}
	return n
}

// Acquire takes the first free slot, binds its codec for format to emit and
// returns the slot index. It returns ErrNoDecoder when every slot is taken.
func (p *DecoderPool) Acquire(format string, factory audio.CodecFactory, emit audio.PCMFunc) (int, error) {
	for i := range p.slots {
		s := &p.slots[i]
		if s.inUse {
			continue
		}

		c, ok := s.codecs[format]
		if !ok {
			c = factory()
			s.codecs[format] = c
		}
		if err := c.Begin(emit); err != nil {
			return -1, fmt.Errorf("begin %s decoder: %w", format, err)
		}

		s.inUse = true
		s.cur = c
		return i, nil
	}

	return -1, ErrNoDecoder
}

// Codec returns the codec bound to slot, or nil when the slot is free.
func (p *DecoderPool) Codec(slot int) audio.Codec {
	if slot < 0 || slot >= len(p.slots) || !p.slots[slot].inUse {
		return nil
	}
	return p.slots[slot].cur
}

// Release ends the codec bound to slot and frees it. Releasing a free or
// unknown slot does nothing.
func (p *DecoderPool) Release(slot int) error {
	if slot < 0 || slot >= len(p.slots) || !p.slots[slot].inUse {
		return nil
	}

	s := &p.slots[slot]
	err := s.cur.End()
	s.inUse = false
	s.cur = nil
	return err
}
