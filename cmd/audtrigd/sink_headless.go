//go:build headless

// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/ik5/audtrig/internal/config"
	"github.com/ik5/audtrig/sink"
)

func newSink(cfg *config.Config, _ int) (sink.Sink, func(), error) {
	switch cfg.SinkKind {
	case "wav":
		return sink.NewPaced(sink.NewWAV(afero.NewOsFs(), cfg.SinkPath)), func() {}, nil
	case "speaker":
		return nil, nil, fmt.Errorf("sink %q: built with the headless tag", cfg.SinkKind)
	default:
		return nil, nil, fmt.Errorf("unknown sink kind %q", cfg.SinkKind)
	}
}
