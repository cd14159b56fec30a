// Package logger provides leveled console logging for the filekit tools.
//
// Diagnostics go to the logger (normally stderr) so that the tools' real
// output on stdout stays clean enough to pipe into other programs.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/harrison/filekit/internal/packer"
	"github.com/harrison/filekit/internal/units"
	"github.com/mattn/go-isatty"
)

// levelInfo describes one log level: its rank for filtering, the tag
// printed in brackets and the tag's color on a terminal.
type levelInfo struct {
	rank int
	tag  string
	attr color.Attribute
}

var levels = map[string]levelInfo{
	"trace": {0, "TRACE", color.FgHiBlack},
	"debug": {1, "DEBUG", color.FgCyan},
	"info":  {2, "INFO", color.FgBlue},
	"warn":  {3, "WARN", color.FgYellow},
	"error": {4, "ERROR", color.FgRed},
}

// Logger is the logging surface the commands depend on
type Logger interface {
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
}

// ConsoleLogger logs to a writer with timestamps and thread safety.
// All output is prefixed with [HH:MM:SS] timestamps.
// It supports log level filtering to control message verbosity.
// Color output is enabled when the writer is a terminal.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

var _ Logger = (*ConsoleLogger)(nil)

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal reports whether w is a TTY that should get colors.
// NO_COLOR (honored by fatih/color) turns colors off everywhere.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ValidLevel reports whether level names one of the supported log levels
func ValidLevel(level string) bool {
	_, ok := levels[strings.ToLower(strings.TrimSpace(level))]
	return ok
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
// Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	if ValidLevel(level) {
		return strings.ToLower(strings.TrimSpace(level))
	}
	return "info"
}

// shouldLog checks if a message at the given level should be logged.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return levels[messageLevel].rank >= levels[cl.logLevel].rank
}

// LogTrace logs a trace-level message (most verbose).
// Format: "[HH:MM:SS] [TRACE] <message>"
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("trace", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("debug", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("info", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("warn", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("error", message)
}

func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil || !cl.shouldLog(level) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	tag := levels[level].tag
	if cl.colorOutput {
		tag = color.New(levels[level].attr).Sprint(tag)
	}
	fmt.Fprintf(cl.writer, "[%s] [%s] %s\n", timestamp(), tag, message)
}

// LogPackSummary logs the outcome of a packing run at DEBUG level.
// Format: "[HH:MM:SS] [DEBUG] Packed disks: N, files: N, used: X, free: X (took 0s)"
func (cl *ConsoleLogger) LogPackSummary(stats packer.Stats, elapsed time.Duration) {
	if cl.writer == nil || !cl.shouldLog("debug") {
		return
	}

	metrics := []string{
		formatMetric("disks", stats.Disks, cl.colorOutput),
		formatMetric("files", stats.Files, cl.colorOutput),
		formatMetric("used", units.Humanize(stats.UsedBytes), cl.colorOutput),
		formatMetric("free", units.Humanize(stats.FreeBytes), cl.colorOutput),
	}
	cl.LogDebug(fmt.Sprintf("Packed %s (took %s)", strings.Join(metrics, ", "), formatDuration(elapsed)))
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// formatDuration renders d compactly: "12ms", "5s", "1m30s", "2h15m".
// Durations of a second or more are rounded to whole seconds.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	s := d.Round(time.Second).String()
	if strings.HasSuffix(s, "m0s") {
		s = strings.TrimSuffix(s, "0s")
	}
	if strings.HasSuffix(s, "h0m") {
		s = strings.TrimSuffix(s, "0m")
	}
	return s
}

// NoOpLogger is a Logger implementation that discards all log messages.
// Useful for testing or when logging is disabled.
type NoOpLogger struct{}

var _ Logger = (*NoOpLogger)(nil)

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (n *NoOpLogger) LogDebug(message string) {}
func (n *NoOpLogger) LogInfo(message string)  {}
func (n *NoOpLogger) LogWarn(message string)  {}
func (n *NoOpLogger) LogError(message string) {}
