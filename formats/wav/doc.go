// SPDX-License-Identifier: EPL-2.0

// Package wav locates the 16-bit PCM payload of WAV files.
//
// ParseHeader walks the RIFF chunk list with github.com/go-audio/wav and
// stops on the first payload byte, so the caller can stream the samples
// straight from its own reader:
//
//	f, _ := fs.Open("/flash/beep.wav")
//	h, err := wav.ParseHeader(f)
//	if err != nil && !errors.Is(err, wav.ErrNoDataChunk) {
//	    return err
//	}
//	// f is now at h.DataOffset
//
// Chunks such as LIST, fact or JUNK may appear before or after "fmt ".
// Only PCM with 16 bits per sample is accepted.
//
// WriteWAV16 produces canonical files, mainly as fixtures.
package wav
