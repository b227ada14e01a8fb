package slogx

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/phsym/zeroslog"
	"github.com/rs/zerolog"
)

// Error returns a slog.Attr representing the provided error.
// The attribute key is "error" and the value is the error's message.
func Error(err error) slog.Attr {
	return slog.String("error", err.Error())
}

// Panic returns a slog.Attr describing a value recovered from a panic.
// Errors keep their message, anything else is formatted with %v.
func Panic(recovered any) slog.Attr {
	if err, ok := recovered.(error); ok {
		return slog.String("panic", err.Error())
	}
	return slog.String("panic", fmt.Sprintf("%v", recovered))
}

// Stringer creates a slog.Attr with the provided key and the string representation
// of the given fmt.Stringer value.
func Stringer(key string, value fmt.Stringer) slog.Attr {
	return slog.String(key, value.String())
}

const (
	// KeyLoggerName is the key for the logger name attribute.
	KeyLoggerName = "logger"
)

// LoggerName creates a slog.Attr with the provided logger name.
// The attribute key is defined by KeyLoggerName.
func LoggerName(name string) slog.Attr {
	return slog.String(KeyLoggerName, name)
}

// NewZerologHandler builds a slog.Handler that writes through a zerolog console
// writer. Pass noColor when w is not a terminal.
func NewZerologHandler(w io.Writer, level slog.Level, noColor bool) slog.Handler {
	output := zerolog.ConsoleWriter{Out: w, NoColor: noColor, TimeFormat: time.Stamp}
	log := zerolog.New(output).With().Timestamp().Logger()
	return zeroslog.NewHandler(log, &zeroslog.HandlerOptions{Level: level})
}

// ParseLevel maps a textual level (debug, info, warn, error) to a slog.Level.
// Unknown values fall back to info.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
