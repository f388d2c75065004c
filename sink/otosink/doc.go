// SPDX-License-Identifier: EPL-2.0

// Package otosink plays the mixed output on the host's audio device with
// github.com/ebitengine/oto/v3.
package otosink
