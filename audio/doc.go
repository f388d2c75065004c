// SPDX-License-Identifier: EPL-2.0

// Package audio provides the sample-level building blocks of the engine.
//
// It contains:
//   - RingBuffer, a lock-free single-producer/single-consumer sample queue
//   - Normalizer, which turns decoded PCM into 44.1kHz stereo ring frames
//   - Resampler for arbitrary rate conversion
//   - Codec and Registry for push-style decoders selected by file extension
//
// # Ring Buffer
//
// Every stream owns one RingBuffer. The producer (file reader and decoder)
// pushes interleaved stereo samples, the mixer pops them:
//
//	rb := audio.NewRingBuffer(audio.DefaultRingSize)
//	rb.Push(l)
//	rb.Push(r)
//	if rb.AvailableToRead() >= 2 {
//	    l, r = rb.Pop(), rb.Pop()
//	}
//
// Push drops a sample when the ring is full and Pop returns silence when it
// is empty; neither blocks nor allocates.
//
// # Normalization
//
// A Normalizer is configured with the source layout and fed PCM:
//
//	n := audio.NewNormalizer(audio.OutputRate, audio.RateResample)
//	if err := n.Configure(1, 22050); err != nil {
//	    return err
//	}
//	n.WriteLE(rb, pcmBytes)
//
// Mono is duplicated to both channels and 22.05kHz sources have each frame
// written twice. Other rates follow the RatePolicy. Output is written in
// whole groups so left and right stay aligned when the ring fills up.
//
// # Codecs
//
// Compressed formats are decoded by a Codec. Bytes are pushed in with Write
// and decoded PCM comes back through the callback given to Begin:
//
//	reg := audio.NewRegistry()
//	reg.Register("mp3", mp3.NewCodec)
//	_, factory, ok := reg.Lookup("/music/intro.mp3")
//
// A codec instance is reused across streams; Begin resets it.
package audio
