// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"path/filepath"
	"strings"
	"sync"
)

// PCMFunc receives interleaved signed 16-bit PCM produced by a Codec, along
// with the channel count and sample rate of that block. pcm is only valid for
// the duration of the call.
type PCMFunc func(pcm []int16, channels, sampleRate int)

// Codec is a push-style decoder for one compressed stream at a time.
type Codec interface {
	// Begin resets the decoder and binds the callback decoded PCM is delivered to.
	Begin(emit PCMFunc) error
	// Write feeds compressed bytes. Zero or more emit calls happen before it returns.
	Write(p []byte) error
	// End releases per-stream state. Begin may be called again afterwards.
	End() error
}

// CodecFactory constructs a fresh Codec instance.
type CodecFactory func() Codec

// Registry maps a format key (a lower-case file extension such as "mp3") to
// the factory of the codec that decodes it.
type Registry struct {
	codecs map[string]CodecFactory

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]CodecFactory),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, f CodecFactory) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[strings.ToLower(format)] = f
}

func (r *Registry) Get(format string) (CodecFactory, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	f, ok := r.codecs[strings.ToLower(format)]
	return f, ok
}

// Lookup resolves the codec for path by its extension, case-insensitively.
func (r *Registry) Lookup(path string) (string, CodecFactory, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", nil, false
	}

	f, ok := r.Get(ext)
	return strings.ToLower(ext), f, ok
}

// Formats lists the registered format keys.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	out := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		out = append(out, k)
	}
	return out
}
