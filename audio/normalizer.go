// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// OutputRate is the sample rate every stream is normalized to.
const OutputRate = 44100

// RatePolicy decides what happens to a source whose rate is neither the
// output rate nor exactly half of it.
type RatePolicy int

const (
	// RateResample converts the source with the cubic Resampler.
	RateResample RatePolicy = iota
	// RatePassthrough plays the source as if it were at the output rate.
	RatePassthrough
	// RateReject refuses the source with ErrUnsupportedRate.
	RateReject
)

func (p RatePolicy) String() string {
	switch p {
	case RateResample:
		return "resample"
	case RatePassthrough:
		return "passthrough"
	case RateReject:
		return "reject"
	default:
		return fmt.Sprintf("RatePolicy(%d)", int(p))
	}
}

// ParseRatePolicy parses the configuration spelling of a RatePolicy.
func ParseRatePolicy(s string) (RatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "resample":
		return RateResample, nil
	case "passthrough":
		return RatePassthrough, nil
	case "reject":
		return RateReject, nil
	default:
		return RateResample, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

type rateMode int

const (
	modeDirect rateMode = iota
	modeDouble
	modeResample
)

// Normalizer turns 16-bit PCM at a source channel count and rate into stereo
// frames at the output rate and writes them into a RingBuffer.
//
// Mono is duplicated to both channels. A source at half the output rate has
// each output frame written twice. Output frames are written as whole groups:
// when the ring lacks room for a group the group is dropped, so left and right
// never drift apart. It is owned by the producer side of one stream.
type Normalizer struct {
	outRate int
	policy  RatePolicy

	channels int
	rate     int
	mode     rateMode

	// Partial frame carried between WriteLE calls (at most 3 bytes)
	carry  [4]byte
	ncarry int

	samples []int16
	stereo  []int16
	out     []int16
	res     *Resampler

	dropped uint64
}

func NewNormalizer(outRate int, policy RatePolicy) *Normalizer {
	return &Normalizer{
		outRate:  outRate,
		policy:   policy,
		channels: 2,
		rate:     outRate,
		samples:  make([]int16, 0, 4096),
		stereo:   make([]int16, 0, 4096),
		out:      make([]int16, 0, 8192),
	}
}

func (n *Normalizer) Channels() int   { return n.channels }
func (n *Normalizer) SampleRate() int { return n.rate }

// Dropped reports how many output samples were discarded because the ring
// was full since the last Reset.
func (n *Normalizer) Dropped() uint64 { return n.dropped }

// Reset forgets the source format, any carried bytes and the drop counter.
func (n *Normalizer) Reset() {
	n.channels = 2
	n.rate = n.outRate
	n.mode = modeDirect
	n.ncarry = 0
	n.dropped = 0
	if n.res != nil {
		n.res.Reset()
	}
}

// Configure sets the source format. Channel counts other than 1 and 2 are
// treated as stereo; a zero rate is treated as the output rate. It returns
// ErrUnsupportedRate only under RateReject. Calling it again with the same
// format keeps the resampler history.
func (n *Normalizer) Configure(channels, rate int) error {
	if channels < 1 || channels > 2 {
		channels = 2
	}
	if rate <= 0 {
		rate = n.outRate
	}
	if channels == n.channels && rate == n.rate {
		return nil
	}

	mode := modeDirect
	switch {
	case rate == n.outRate:
	case rate*2 == n.outRate:
		mode = modeDouble
	default:
		switch n.policy {
		case RateReject:
			return fmt.Errorf("%w: %d Hz", ErrUnsupportedRate, rate)
		case RatePassthrough:
		default:
			mode = modeResample
			if n.res == nil || n.res.SrcRate() != rate {
				n.res = NewResampler(rate, n.outRate)
			} else {
				n.res.Reset()
			}
		}
	}

	n.channels = channels
	n.rate = rate
	n.mode = mode
	n.ncarry = 0
	return nil
}

// WriteLE interprets p as signed 16-bit little-endian samples and writes
// them. Bytes of an incomplete frame are carried into the next call.
// It returns the number of samples pushed.
func (n *Normalizer) WriteLE(rb *RingBuffer, p []byte) int {
	frameBytes := 2 * n.channels
	n.samples = n.samples[:0]

	if n.ncarry > 0 {
		take := min(frameBytes-n.ncarry, len(p))
		copy(n.carry[n.ncarry:], p[:take])
		n.ncarry += take
		p = p[take:]
		if n.ncarry < frameBytes {
			return 0
		}
		for i := 0; i < frameBytes; i += 2 {
			n.samples = append(n.samples, int16(binary.LittleEndian.Uint16(n.carry[i:])))
		}
		n.ncarry = 0
	}

	whole := len(p) - len(p)%frameBytes
	for i := 0; i < whole; i += 2 {
		n.samples = append(n.samples, int16(binary.LittleEndian.Uint16(p[i:])))
	}
	n.ncarry = copy(n.carry[:], p[whole:])

	return n.Write(rb, n.samples)
}

// Write pushes interleaved samples in the configured source format.
// A trailing partial frame is ignored. It returns the number of samples pushed.
func (n *Normalizer) Write(rb *RingBuffer, pcm []int16) int {
	pushed := 0

	if n.mode == modeResample {
		n.stereo = n.stereo[:0]
		if n.channels == 1 {
			for _, s := range pcm {
				n.stereo = append(n.stereo, s, s)
			}
		} else {
			n.stereo = append(n.stereo, pcm[:len(pcm)-len(pcm)%2]...)
		}
		n.out = n.res.Process(n.stereo, n.out[:0])
		for i := 0; i+1 < len(n.out); i += 2 {
			pushed += n.group(rb, n.out[i], n.out[i+1], 1)
		}
		return pushed
	}

	reps := 1
	if n.mode == modeDouble {
		reps = 2
	}

	if n.channels == 1 {
		for _, s := range pcm {
			pushed += n.group(rb, s, s, reps)
		}
		return pushed
	}

	for i := 0; i+1 < len(pcm); i += 2 {
		pushed += n.group(rb, pcm[i], pcm[i+1], reps)
	}
	return pushed
}

// group writes the frame (l, r) reps times, all or nothing.
func (n *Normalizer) group(rb *RingBuffer, l, r int16, reps int) int {
	need := 2 * reps
	if rb.AvailableToWrite() < need {
		n.dropped += uint64(need)
		return 0
	}

	written := 0
	for range reps {
		if !rb.Push(l) {
			break
		}
		written++
		if !rb.Push(r) {
			break
		}
		written++
	}
	n.dropped += uint64(need - written)
	return written
}
