// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"fmt"
	"math"
)

// Status is a snapshot of one stream slot.
type Status struct {
	Slot    int
	Playing bool
	Format  Format
	Path    string
	// Volume is the gain as a level between 0 and 99.
	Volume int
	// Buffered is the number of stereo frames waiting in the ring.
	Buffered int
}

// String renders the status as "playing,<path>,<volume>" or "idle,,0".
func (st Status) String() string {
	if !st.Playing {
		return "idle,,0"
	}
	return fmt.Sprintf("playing,%s,%d", st.Path, st.Volume)
}

// Status reports what slot is playing.
func (e *Engine) Status(slot int) (Status, error) {
	s, err := e.slot(slot)
	if err != nil {
		return Status{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	st := Status{Slot: slot}
	if !s.active.Load() {
		return st, nil
	}

	st.Playing = true
	st.Format = s.getFormat()
	st.Path = s.path
	st.Volume = int(math.Round(float64(s.getGain()) * 99))
	st.Buffered = s.ring.AvailableToRead() / 2
	return st, nil
}
