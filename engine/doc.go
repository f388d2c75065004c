// SPDX-License-Identifier: EPL-2.0

// Package engine plays several audio streams at once from storage, mixes
// them with a synthesized tone and writes the result to a sink.
//
// Two sides share the stream slots. The producer (Start, Stop, Service)
// reads files in small chunks, decodes or parses them and fills each
// stream's ring buffer. The consumer (Mixer) pops one frame per stream per
// output frame, applies gain and a short fade-in, adds the tone and
// clips. The consumer never blocks on the producer: a stream whose ring is
// empty contributes silence.
//
// Stopping a stream clears its active flag and then waits for the mixer to
// leave that stream before its ring is reset, so the mixer never reads a
// ring being cleared.
//
//	e, _ := engine.New(router, codecs, engine.DefaultOptions())
//	go e.Run(ctx, speaker)
//	e.Start(0, "/flash/boot.wav")
//	e.TriggerTone(1000, 2000, 200, 128)
package engine
