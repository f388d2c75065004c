// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides PCM, WAV and codec fixtures for tests.
package audiotest

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/ik5/audtrig/formats/wav"
)

// Samples generates frames of interleaved PCM from waveform.
func Samples(channels, frames int, waveform func(frame, channel int) int16) []int16 {
	out := make([]int16, channels*frames)
	for f := range frames {
		for ch := range channels {
			out[f*channels+ch] = waveform(f, ch)
		}
	}
	return out
}

// Constant generates frames holding value on every channel.
func Constant(channels, frames int, value int16) []int16 {
	return Samples(channels, frames, func(int, int) int16 { return value })
}

// Sine generates a full-scale-ish sine at frequency on every channel.
func Sine(sampleRate, channels, frames int, frequency float64, amplitude int16) []int16 {
	return Samples(channels, frames, func(frame, _ int) int16 {
		t := float64(frame) / float64(sampleRate)
		return int16(float64(amplitude) * math.Sin(2*math.Pi*frequency*t))
	})
}

// LE encodes samples as signed 16-bit little-endian bytes.
func LE(samples []int16) []byte {
	b := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(b[2*i:], uint16(s))
	}
	return b
}

// Chunk is a raw RIFF chunk inserted by WAV.
type Chunk struct {
	ID   string
	Body []byte
}

// WAV builds a 16-bit PCM WAV file. Extra chunks are placed between the
// "fmt " and "data" chunks.
func WAV(sampleRate, channels int, samples []int16, extra ...Chunk) []byte {
	var buf bytes.Buffer
	if err := wav.WriteWAV16(&buf, sampleRate, channels, samples); err != nil {
		panic(err)
	}
	file := buf.Bytes()
	if len(extra) == 0 {
		return file
	}

	var mid bytes.Buffer
	for _, c := range extra {
		mid.WriteString(c.ID)
		_ = binary.Write(&mid, binary.LittleEndian, uint32(len(c.Body)))
		mid.Write(c.Body)
		if len(c.Body)%2 == 1 {
			mid.WriteByte(0)
		}
	}

	// 36 is the end of the canonical fmt chunk.
	out := make([]byte, 0, len(file)+mid.Len())
	out = append(out, file[:36]...)
	out = append(out, mid.Bytes()...)
	out = append(out, file[36:]...)
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(out)-8))
	return out
}

// WAVWithoutData builds a WAV file whose chunk list ends after "fmt " and
// the extra chunks.
func WAVWithoutData(sampleRate, channels int, extra ...Chunk) []byte {
	file := WAV(sampleRate, channels, nil, extra...)
	out := file[:len(file)-8]
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(out)-8))
	return out
}
