package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fadedpez/handtracker/internal/types"
)

// Level represents a logging level
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var charmLevels = map[Level]log.Level{
	DEBUG: log.DebugLevel,
	INFO:  log.InfoLevel,
	WARN:  log.WarnLevel,
	ERROR: log.ErrorLevel,
}

// ParseLevel converts a level name such as "debug" or "WARN" to a Level
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return DEBUG, nil
	case "", "info":
		return INFO, nil
	case "warn", "warning":
		return WARN, nil
	case "error":
		return ERROR, nil
	default:
		return INFO, fmt.Errorf("unknown log level %q", name)
	}
}

// Logger is a leveled printf-style logger
type Logger struct {
	base  *log.Logger
	level Level
}

// NewLogger creates a new logger writing to stderr
func NewLogger(level Level) *Logger {
	return NewLoggerWithWriter(os.Stderr, level)
}

// NewLoggerWithWriter creates a new logger writing to w
func NewLoggerWithWriter(w io.Writer, level Level) *Logger {
	base := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05.000",
		ReportCaller:    true,
		CallerOffset:    1,
		Level:           charmLevels[level],
	})
	return &Logger{base: base, level: level}
}

// With returns a logger that attaches keyvals to every line
func (l *Logger) With(keyvals ...interface{}) *Logger {
	return &Logger{base: l.base.With(keyvals...), level: l.level}
}

// Level returns the minimum level the logger emits
func (l *Logger) Level() Level {
	return l.level
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...interface{}) {
	l.base.Debugf(format, v...)
}

// Info logs an info message
func (l *Logger) Info(format string, v ...interface{}) {
	l.base.Infof(format, v...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, v ...interface{}) {
	l.base.Warnf(format, v...)
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	l.base.Errorf(format, v...)
}

// LogError logs a HandError with its code and hand context
func (l *Logger) LogError(err error) {
	var handErr *types.HandError
	if !types.As(err, &handErr) {
		l.base.Error("unexpected error", "err", err)
		return
	}

	keyvals := []interface{}{"code", handErr.Code}
	if handErr.HandID != 0 {
		keyvals = append(keyvals, "hand", handErr.HandID)
	}
	if handErr.Seat != types.NoSeat {
		keyvals = append(keyvals, "seat", handErr.Seat)
	}
	if handErr.Err != nil {
		keyvals = append(keyvals, "cause", handErr.Err)
	}
	l.base.Error(handErr.Message, keyvals...)
}

// Default logger instance
var Default = NewLogger(INFO)
