// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ik5/audtrig/formats/wav"
)

// Example_parseHeader locates the payload of a WAV file.
func Example_parseHeader() {
	file := new(bytes.Buffer)
	if err := wav.WriteWAV16(file, 22050, 2, []int16{100, -100, 200, -200}); err != nil {
		fmt.Printf("Write error: %v\n", err)
		return
	}

	h, err := wav.ParseHeader(bytes.NewReader(file.Bytes()))
	if err != nil {
		fmt.Printf("Parse error: %v\n", err)
		return
	}

	fmt.Printf("Sample rate: %d Hz\n", h.SampleRate)
	fmt.Printf("Channels: %d\n", h.Channels)
	fmt.Printf("Payload: %d bytes at offset %d\n", h.DataSize, h.DataOffset)
	// Output:
	// Sample rate: 22050 Hz
	// Channels: 2
	// Payload: 8 bytes at offset 44
}

// Example_errorNotWAV shows handling of invalid WAV files.
func Example_errorNotWAV() {
	_, err := wav.ParseHeader(bytes.NewReader([]byte("This is not a WAV file")))

	if errors.Is(err, wav.ErrNotWavFile) {
		fmt.Println("Detected: Not a valid WAV file")
	} else if err != nil {
		fmt.Printf("Other error: %v\n", err)
	}
	// Output: Detected: Not a valid WAV file
}
