// SPDX-License-Identifier: EPL-2.0

package sink

import "time"

// Paced slows a non-blocking sink down to real time, sleeping every few
// milliseconds of audio until the wall clock catches up.
type Paced struct {
	Sink

	rate   int
	frames int64
	start  time.Time
	sleep  func(time.Duration)
	now    func() time.Time
}

// pacedBatch is how many frames are written between clock checks.
const pacedBatch = 256

func NewPaced(s Sink) *Paced {
	return &Paced{Sink: s, sleep: time.Sleep, now: time.Now}
}

func (p *Paced) Begin(sampleRate int) error {
	p.rate = sampleRate
	p.frames = 0
	p.start = p.now()
	return p.Sink.Begin(sampleRate)
}

func (p *Paced) WriteFrame(l, r int16) error {
	if err := p.Sink.WriteFrame(l, r); err != nil {
		return err
	}

	p.frames++
	if p.rate > 0 && p.frames%pacedBatch == 0 {
		due := p.start.Add(time.Duration(p.frames) * time.Second / time.Duration(p.rate))
		if d := due.Sub(p.now()); d > 0 {
			p.sleep(d)
		}
	}
	return nil
}
