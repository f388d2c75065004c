// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"io"
	"log/slog"
	"os"
)

var ErrLogLevel = errors.New("unexpected log level")

// ConfigureLogger installs the default slog logger for logLevel, one of
// "none", "error", "warn", "info" or "debug".
//
// With an empty logFile the logger writes text to stdout. Otherwise it
// writes JSON to logFile, truncating it, and the open file is returned so
// the caller can close it on exit:
//
//	f, err := config.ConfigureLogger("info", "audtrig.log")
//	if f != nil {
//		defer f.Close()
//	}
func ConfigureLogger(logLevel, logFile string) (*os.File, error) {
	var opts slog.HandlerOptions

	switch logLevel {
	case "none":
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return nil, nil
	case "error":
		opts.Level = slog.LevelError
	case "warn":
		opts.Level = slog.LevelWarn
	case "info":
		opts.Level = slog.LevelInfo
	case "debug":
		opts.Level = slog.LevelDebug
	default:
		return nil, ErrLogLevel
	}

	if logFile == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &opts)))
		return nil, nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(f, &opts)))
	return f, nil
}
