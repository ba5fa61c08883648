// Package logging holds the process-wide structured logger.
//
// Terminal-facing messages go through internal/ui; this logger carries the
// diagnostic trail (spawned commands, strategy decisions) and stays quiet
// unless QWEN_TTS_LOG_LEVEL or --verbose asks for more.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLevel names the environment variable read at startup.
const EnvLevel = "QWEN_TTS_LOG_LEVEL"

var defaultLogger *slog.Logger

func init() {
	defaultLogger = newLogger(os.Stderr, parseLevel(os.Getenv(EnvLevel)))
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		// warn keeps routine runs free of log lines
		return slog.LevelWarn
	}
}

// SetVerbose switches to debug-level logging when verbose is true.
func SetVerbose(verbose bool) {
	if verbose {
		defaultLogger = newLogger(os.Stderr, slog.LevelDebug)
	}
}

// SetOutput redirects the logger, keeping the given level.
func SetOutput(w io.Writer, level slog.Level) {
	defaultLogger = newLogger(w, level)
}

// Logger returns the current logger.
func Logger() *slog.Logger { return defaultLogger }

func Debug(msg string, args ...any) { defaultLogger.Debug(msg, args...) }
func Info(msg string, args ...any)  { defaultLogger.Info(msg, args...) }
func Warn(msg string, args ...any)  { defaultLogger.Warn(msg, args...) }
func Error(msg string, args ...any) { defaultLogger.Error(msg, args...) }
