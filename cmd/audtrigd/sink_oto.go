//go:build !headless

// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"time"

	"github.com/spf13/afero"

	"github.com/ik5/audtrig/internal/config"
	"github.com/ik5/audtrig/sink"
	"github.com/ik5/audtrig/sink/otosink"
)

const speakerLatency = 50 * time.Millisecond

func newSink(cfg *config.Config, sampleRate int) (sink.Sink, func(), error) {
	switch cfg.SinkKind {
	case "speaker":
		s, err := otosink.NewSpeaker(sampleRate, speakerLatency)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case "wav":
		return sink.NewPaced(sink.NewWAV(afero.NewOsFs(), cfg.SinkPath)), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown sink kind %q", cfg.SinkKind)
	}
}
