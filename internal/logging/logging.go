package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// New creates a console slog.Logger writing to stderr with provided level and format.
func New(level, format string) *slog.Logger {
	return NewWithWriter(os.Stderr, level, format)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, level, format string) *slog.Logger {
	handler := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           levelFromString(level),
		Formatter:       formatterFromString(format),
		ReportTimestamp: true,
	})
	return slog.New(handler)
}

func levelFromString(value string) charmlog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "error":
		return charmlog.ErrorLevel
	case "warn", "warning":
		return charmlog.WarnLevel
	case "info":
		return charmlog.InfoLevel
	default:
		return charmlog.DebugLevel
	}
}

func formatterFromString(value string) charmlog.Formatter {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "json":
		return charmlog.JSONFormatter
	case "logfmt":
		return charmlog.LogfmtFormatter
	default:
		return charmlog.TextFormatter
	}
}
