package app

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger interface and implementations
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

// ZeroLogger writes structured log lines with the component as a field.
type ZeroLogger struct{ log zerolog.Logger }

// NewZeroLogger builds a logger writing to w. level is one of debug, info,
// warn or error; empty means info. pretty selects the human-readable console
// format instead of JSON.
func NewZeroLogger(w io.Writer, level string, pretty bool) (ZeroLogger, error) {
	lvl := zerolog.InfoLevel
	switch level {
	case "":
	case "debug":
		lvl = zerolog.DebugLevel
	case "info":
		lvl = zerolog.InfoLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	default:
		return ZeroLogger{}, fmt.Errorf("unknown log level %q", level)
	}

	output := w
	if pretty {
		output = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	return ZeroLogger{log: zerolog.New(output).Level(lvl).With().Timestamp().Logger()}, nil
}

// OpenZeroLogger is NewZeroLogger writing to stderr, or appending to path
// when set. The returned func closes the log file.
func OpenZeroLogger(path, level string, pretty bool) (ZeroLogger, func(), error) {
	var w io.Writer = os.Stderr
	closeLog := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return ZeroLogger{}, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeLog = func() { _ = f.Close() }
	}
	logger, err := NewZeroLogger(w, level, pretty)
	if err != nil {
		closeLog()
		return ZeroLogger{}, nil, err
	}
	return logger, closeLog, nil
}

func (l ZeroLogger) Infof(component string, format string, args ...interface{}) {
	l.log.Info().Str("component", component).Msgf(format, args...)
}

func (l ZeroLogger) Errorf(component string, format string, args ...interface{}) {
	l.log.Error().Str("component", component).Msgf(format, args...)
}

// Zerolog exposes the underlying logger for callers that want fields.
func (l ZeroLogger) Zerolog() zerolog.Logger { return l.log }
