// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
)

// Header describes the PCM payload of a WAV container.
type Header struct {
	Format     uint16
	Channels   int
	SampleRate int
	BitDepth   int
	BlockAlign int

	// DataOffset is the byte offset of the first payload sample.
	DataOffset int64
	// DataSize is the payload length in bytes as declared by the data chunk.
	DataSize int64
}

func (h Header) String() string {
	return fmt.Sprintf("format=%d channels=%d rate=%d bits=%d align=%d",
		h.Format, h.Channels, h.SampleRate, h.BitDepth, h.BlockAlign)
}

// ParseHeader reads the RIFF chunks of rs until the start of the data chunk
// and leaves rs positioned on the first payload byte. Chunks other than
// "fmt " and "data" are skipped wherever they appear.
//
// When the file ends before a data chunk is found, the parsed header is
// returned together with ErrNoDataChunk and DataOffset set to where scanning
// stopped. Callers may treat that as an empty payload.
func ParseHeader(rs io.ReadSeeker) (Header, error) {
	d := wav.NewDecoder(rs)
	fwdErr := d.FwdToPCM()

	if d.NumChans == 0 {
		if err := d.Err(); err != nil {
			return Header{}, fmt.Errorf("%w: %w", ErrNotWavFile, err)
		}
		return Header{}, ErrNotWavFile
	}

	h := Header{
		Format:     d.WavAudioFormat,
		Channels:   int(d.NumChans),
		SampleRate: int(d.SampleRate),
		BitDepth:   int(d.BitDepth),
	}
	h.BlockAlign = h.Channels * ((h.BitDepth + 7) / 8)

	if (h.Format != formatPCM && h.Format != formatExtensible) || h.BitDepth != 16 {
		return h, fmt.Errorf("%w: format %d, %d bits", ErrOnlyPCM16bitSupported, h.Format, h.BitDepth)
	}

	off, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return h, fmt.Errorf("locate payload: %w", err)
	}
	h.DataOffset = off

	if fwdErr != nil || d.PCMChunk == nil {
		return h, ErrNoDataChunk
	}
	h.DataSize = int64(d.PCMSize)

	return h, nil
}
