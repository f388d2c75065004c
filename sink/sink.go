// SPDX-License-Identifier: EPL-2.0

package sink

import "errors"

var ErrNotStarted = errors.New("sink: not started")

// Sink receives the mixed 16-bit stereo output one frame at a time.
//
// WriteFrame may block; it is what paces the mixer. Begin and End bracket a
// period of output and may be repeated.
type Sink interface {
	Begin(sampleRate int) error
	WriteFrame(l, r int16) error
	End() error
}
