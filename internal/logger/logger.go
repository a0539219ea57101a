// Package logger wraps zerolog with the field names and component
// sub-logger pattern used across this module. Adapted from
// qplay/internal/logger; the default sink is stderr, matching the CLI's
// convention of leaving stdout free for emitted output formats.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

type (
	Logger struct {
		zerolog.Logger
	}

	Options struct {
		Debug bool
	}

	logLevel string
)

const (
	DebugLevel logLevel = "DEBUG"
	InfoLevel  logLevel = "INFO"
	WarnLevel  logLevel = "WARN"
	ErrorLevel logLevel = "ERROR"
)

// New builds a root logger writing to stderr.
func New(options Options) *Logger {
	var output io.Writer = os.Stderr
	level := zerolog.InfoLevel
	if options.Debug {
		level = zerolog.DebugLevel
	}

	zerolog.TimestampFieldName = "T"
	zerolog.LevelFieldName = "L"
	zerolog.MessageFieldName = "M"
	zerolog.LevelDebugValue = string(DebugLevel)
	zerolog.LevelInfoValue = string(InfoLevel)
	zerolog.LevelWarnValue = string(WarnLevel)
	zerolog.LevelErrorValue = string(ErrorLevel)

	zl := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &Logger{zl}
}

// SpawnForComponent returns a child logger tagging every event with the
// given component name (parser, matrix, selector, extractor, emitter,
// server).
func (l *Logger) SpawnForComponent(component string) *Logger {
	return &Logger{l.With().Str("component", component).Logger()}
}

// SpawnForContext returns a child logger tagging every event with a
// request count and id, used by the optional HTTP service.
func (l *Logger) SpawnForContext(reqCount string, reqID string) *Logger {
	return &Logger{l.With().Str("reqCount", reqCount).Str("reqID", reqID).Logger()}
}

// Nop returns a logger that discards everything, for use in tests that
// don't want log noise on stderr.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}
