// Package logging builds the slog handlers used by the CLI.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// SetupHandlerText returns a charmbracelet/log handler writing to writer
// (stderr when nil). `trace` adds timestamps and callers on top of debug.
func SetupHandlerText(logLevel string, writer io.Writer) slog.Handler {
	if writer == nil {
		writer = os.Stderr
	}

	reportCaller := false
	reportTimestamp := false
	lvl := log.InfoLevel
	switch strings.ToLower(strings.TrimSpace(logLevel)) {
	case "trace":
		reportCaller = true
		reportTimestamp = true
		lvl = log.DebugLevel
	case "debug":
		reportTimestamp = true
		lvl = log.DebugLevel
	case "warn", "warning":
		lvl = log.WarnLevel
	case "error":
		lvl = log.ErrorLevel
	}

	return log.NewWithOptions(writer, log.Options{
		ReportTimestamp: reportTimestamp,
		ReportCaller:    reportCaller,
		Level:           lvl,
		Prefix:          "styleprops",
	})
}

// New returns a logger over SetupHandlerText.
func New(logLevel string, writer io.Writer) *slog.Logger {
	return slog.New(SetupHandlerText(logLevel, writer))
}

// SetupLogger installs the text handler as the default slog logger.
func SetupLogger(logLevel string) *slog.Logger {
	logger := New(logLevel, nil)
	slog.SetDefault(logger)
	return logger
}
