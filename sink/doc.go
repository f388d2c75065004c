// SPDX-License-Identifier: EPL-2.0

// Package sink provides destinations for the mixed output: an in-memory
// recorder for tests, a WAV file writer built on github.com/go-audio/wav and
// a real-time pacing wrapper. The speaker sink lives in sink/otosink.
package sink
