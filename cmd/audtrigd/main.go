// SPDX-License-Identifier: EPL-2.0

// Command audtrigd runs the audio engine against two directories standing
// in for the device's flash and card.
//
//	audtrigd [flags] [path...]
//
// With paths it plays each one in turn and exits. Without, it runs until
// interrupted.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/ik5/audtrig/audio"
	"github.com/ik5/audtrig/engine"
	"github.com/ik5/audtrig/formats/mp3"
	"github.com/ik5/audtrig/internal/config"
	"github.com/ik5/audtrig/storage"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "audtrigd:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("audtrigd", os.Args[1:])
	if err != nil {
		return err
	}

	logFile, err := config.ConfigureLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("configure logger: %w", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	opts, err := cfg.EngineOptions()
	if err != nil {
		return err
	}
	opts.Logger = slog.Default()

	media := &storage.Router{
		Flash: storage.NewDirMedium("flash", cfg.FlashDir),
		Card:  storage.NewDirMedium("card", cfg.CardDir),
	}

	codecs := audio.NewRegistry()
	codecs.Register("mp3", mp3.NewCodec)

	e, err := engine.New(media, codecs, opts)
	if err != nil {
		return err
	}
	defer e.Close()

	out, closeSink, err := newSink(cfg, e.Options().SampleRate)
	if err != nil {
		return err
	}
	defer closeSink()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("audtrigd started",
		"flash", cfg.FlashDir,
		"card", cfg.CardDir,
		"sink", cfg.SinkKind,
		"streams", opts.Streams,
	)

	if len(cfg.Paths) == 0 {
		return e.Run(ctx, out)
	}

	ctx, cancel := context.WithCancel(ctx)
	runErr := make(chan error, 1)
	go func() { runErr <- e.Run(ctx, out) }()

	for _, path := range cfg.Paths {
		slot := e.NextAvailableSlot()
		if err := e.PlayAndWait(ctx, slot, path); err != nil {
			if ctx.Err() != nil {
				break
			}
			slog.Warn("playback failed", "path", path, "err", err)
		}
	}

	cancel()
	return <-runErr
}
