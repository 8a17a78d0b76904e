// Package logger configures the global zerolog logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options holds logging configuration.
type Options struct {
	Level  string // trace, debug, info, warn, error
	Format string // console, json
	Output string // stdout, stderr
	File   string // optional log file, written in addition to Output
}

// Setup initializes the global logger. When File is set the log is written
// both to the chosen stream and to the file, the file always in JSON.
func Setup(opts Options) error {
	level, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}
	zerolog.SetGlobalLevel(level)

	var stream io.Writer
	switch opts.Output {
	case "stdout":
		stream = os.Stdout
	default:
		stream = os.Stderr
	}

	if strings.ToLower(opts.Format) != "json" {
		stream = zerolog.ConsoleWriter{
			Out:        stream,
			TimeFormat: time.RFC3339,
		}
	}

	writer := stream
	if opts.File != "" {
		file, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		writer = zerolog.MultiLevelWriter(stream, file)
	}

	log.Logger = zerolog.New(writer).With().Timestamp().Logger()
	return nil
}

// WithComponent returns a logger tagged with a component field.
func WithComponent(component string) zerolog.Logger {
	return log.Logger.With().Str("component", component).Logger()
}
