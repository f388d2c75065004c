// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG audio layer III streams pushed in small chunks.
//
// This package uses github.com/hajimehoshi/go-mp3, a pull decoder, behind
// the push-style audio.Codec contract: bytes go in through Write and decoded
// PCM comes back through the callback given to Begin.
//
//	codec := mp3.NewCodec()
//	codec.Begin(func(pcm []int16, channels, sampleRate int) {
//	    normalizer.Configure(channels, sampleRate)
//	    normalizer.Write(ring, pcm)
//	})
//	for each 512 byte chunk {
//	    codec.Write(chunk)
//	}
//	codec.End()
//
// # Output Format
//
//   - Sample format: signed 16-bit
//   - Channels: always 2
//   - Sample rate: that of the stream (32, 44.1 or 48kHz for MPEG-1;
//     16, 22.05 or 24kHz for MPEG-2)
//
// # Limitations
//
// A frame split across Write calls is decoded once its last byte arrives.
// A truncated final frame is dropped at End. Garbage input is only reported
// by End, after the decoder has searched all of it for a frame header.
package mp3
