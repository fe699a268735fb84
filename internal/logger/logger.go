// Package logger builds the process [slog.Logger] from configuration.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options selects the level, destination and format of the logger.
type Options struct {
	Level  string // debug, info, warn or error; empty means info
	File   string // append logs to file; "" or "-" writes to the fallback writer
	Format string // text or json
}

func level(option string) (slog.Leveler, bool) {
	switch strings.ToLower(option) {
	case "":
		return nil, true
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return nil, false
	}
}

// New returns a logger for options. Output goes to fallback unless
// options.File names a file. Options that cannot be honored are reset
// to their defaults and a warning is logged through the resulting logger.
func New(options Options, fallback io.Writer) *slog.Logger {
	level, ok := level(options.Level)
	if !ok {
		bad := options.Level
		options.Level = ""
		logger := New(options, fallback)
		logger.Warn("could not parse logger level", "level", bad)
		return logger
	}
	opts := slog.HandlerOptions{Level: level}

	format := strings.ToLower(options.Format)
	if format != "" && format != "text" && format != "json" {
		bad := options.Format
		options.Format = "text"
		logger := New(options, fallback)
		logger.Warn("could not parse logger format", "format", bad)
		return logger
	}

	var output io.Writer
	switch options.File {
	case "", "-":
		output = fallback
	case os.DevNull:
		return slog.New(slog.DiscardHandler)
	default:
		var err error
		output, err = os.OpenFile(options.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			options.File = ""
			logger := New(options, fallback)
			logger.Warn("could not open logger file", "err", err)
			return logger
		}
	}

	if format == "json" {
		return slog.New(slog.NewJSONHandler(output, &opts))
	}
	return slog.New(slog.NewTextHandler(output, &opts))
}
