package admin

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// Log levels
const (
	LevelDebug = "[\033[90mDEBUG\033[0m] "
	LevelInfo  = "[\033[94mINFO\033[0m] "
	LevelWarn  = "[\033[93mWARN\033[0m] "
	LevelError = "[\033[91mERROR\033[0m] "
)

// Logger wraps the standard library logger with additional formatting
type Logger struct {
	*log.Logger
	component  string
	dateFormat string
	debug      *atomic.Bool
}

func NewLogger(component string) *Logger {
	return &Logger{
		Logger:     log.New(os.Stdout, "", 0),
		component:  component,
		dateFormat: "2006-01-02 15:04:05.000 -07:00",
		debug:      new(atomic.Bool),
	}
}

// Named returns a logger sharing output and debug switch, tagged with another component name.
func (l *Logger) Named(component string) *Logger {
	return &Logger{
		Logger:     l.Logger,
		component:  component,
		dateFormat: l.dateFormat,
		debug:      l.debug,
	}
}

// getCallerInfo returns the file name and line number of the caller
func (l *Logger) getCallerInfo(skipFrames int) string {
	_, file, line, ok := runtime.Caller(skipFrames)
	if !ok {
		return "???:0"
	}

	parts := strings.Split(file, "/")
	file = parts[len(parts)-1]

	return file + ":" + strconv.Itoa(line)
}

// formatLogEntry creates a formatted log entry
func (l *Logger) formatLogEntry(level, caller, format string, args ...interface{}) string {
	timestamp := time.Now().Format(l.dateFormat)
	message := fmt.Sprintf(format, args...)
	if l.component == "" {
		return fmt.Sprintf("[%s] %s %s: %s", timestamp, level, caller, message)
	}
	return fmt.Sprintf("[%s] %s %s %s: %s", timestamp, level, l.component, caller, message)
}

// SetOutput changes the output destination
func (l *Logger) SetOutput(w io.Writer) {
	l.Logger.SetOutput(w)
}

// SetDateFormat changes the date format for log timestamps
func (l *Logger) SetDateFormat(format string) {
	l.dateFormat = format
}

// SetDebug enables or disables debug entries for this logger and every logger derived from it.
func (l *Logger) SetDebug(enabled bool) {
	l.debug.Store(enabled)
}

// Debug logs a detail message, only when debug is enabled
func (l *Logger) Debug(format string, args ...any) {
	if !l.debug.Load() {
		return
	}
	l.Println(l.formatLogEntry(LevelDebug, l.getCallerInfo(2), format, args...))
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...any) {
	l.Println(l.formatLogEntry(LevelInfo, l.getCallerInfo(2), format, args...))
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...any) {
	l.Println(l.formatLogEntry(LevelWarn, l.getCallerInfo(2), format, args...))
}

// Error logs an error message
func (l *Logger) Error(format string, args ...any) {
	l.Println(l.formatLogEntry(LevelError, l.getCallerInfo(2), format, args...))
}
