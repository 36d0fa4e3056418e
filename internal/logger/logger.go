// Package logger wraps zerolog with key/value helpers. Output goes to
// stderr so stdout stays free for command results.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Log is the global logger instance.
var Log = New(os.Stderr, zerolog.WarnLevel, "console")

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	z zerolog.Logger
}

// ParseLevel maps a level name to a zerolog level. An empty name means info.
func ParseLevel(level string) (zerolog.Level, error) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zerolog.DebugLevel, nil
	case "INFO", "":
		return zerolog.InfoLevel, nil
	case "WARN":
		return zerolog.WarnLevel, nil
	case "ERROR":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", level)
	}
}

// New builds a logger writing to w. format is "json" or "console".
func New(w io.Writer, level zerolog.Level, format string) *Logger {
	out := w
	if strings.ToLower(format) != "json" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	z := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return &Logger{z: z}
}

// Setup replaces the global logger. The previous logger stays in place
// when level or format is not recognized.
func Setup(level, format string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	switch strings.ToLower(format) {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	Log = New(os.Stderr, lvl, format)
	return nil
}

// Info logs at Info level with variadic key-value pairs.
func (l *Logger) Info(msg string, args ...any) {
	e := l.z.Info()
	addFields(e, args...)
	e.Msg(msg)
}

// Debug logs at Debug level with variadic key-value pairs.
func (l *Logger) Debug(msg string, args ...any) {
	e := l.z.Debug()
	addFields(e, args...)
	e.Msg(msg)
}

// Warn logs at Warn level with variadic key-value pairs.
func (l *Logger) Warn(msg string, args ...any) {
	e := l.z.Warn()
	addFields(e, args...)
	e.Msg(msg)
}

// Error logs at Error level with variadic key-value pairs.
func (l *Logger) Error(msg string, args ...any) {
	e := l.z.Error()
	addFields(e, args...)
	e.Msg(msg)
}

func addFields(e *zerolog.Event, args ...any) {
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", args[i])
		}
		if err, ok := args[i+1].(error); ok {
			e.AnErr(key, err)
			continue
		}
		e.Interface(key, args[i+1])
	}
}
