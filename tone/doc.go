// SPDX-License-Identifier: EPL-2.0

// Package tone synthesizes the linear frequency sweep mixed on top of the
// streams.
//
// The generator is a 32-bit phase accumulator indexing a 256-entry sine
// table. The sweep moves the phase increment linearly from the start to the
// end frequency, one step per sample, and never overshoots the end:
//
//	g := tone.New(44100)
//	g.Trigger(1000, 2000, 1000, 200) // 1kHz to 2kHz over one second
//	for {
//	    s, ok := g.Next()
//	    if !ok {
//	        break
//	    }
//	    mix += s
//	}
package tone
