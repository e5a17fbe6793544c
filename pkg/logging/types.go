// Package logging is the structured JSON logger used across the navmesh
// packages. Library code takes a Logger and defaults to NopLogger; binaries
// use DefaultLogger, whose level comes from NAVMESH_LOG_LEVEL.
package logging

import (
	"strings"
	"time"
)

// Level represents a log level
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// String returns the string representation of a log level
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name to a Level. Unknown names map to
// InfoLevel.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Field is a key-value pair attached to a log line.
type Field struct {
	Key   string
	Value any
}

// Logger is the interface for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	// With returns a child logger with fields pre-set
	With(fields ...Field) Logger
	SetLevel(level Level)
	GetLevel() Level
	// Enabled reports whether a message at level would be written
	Enabled(level Level) bool
}

// entry is one JSON log line.
type entry struct {
	Time    string         `json:"time"`
	Level   string         `json:"level"`
	Message string         `json:"msg"`
	Fields  map[string]any `json:"fields,omitempty"`
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, ...Field)     {}
func (NopLogger) Info(string, ...Field)      {}
func (NopLogger) Warn(string, ...Field)      {}
func (NopLogger) Error(string, ...Field)     {}
func (n NopLogger) With(...Field) Logger     { return n }
func (NopLogger) SetLevel(Level)             {}
func (NopLogger) GetLevel() Level            { return ErrorLevel + 1 }
func (NopLogger) Enabled(level Level) bool   { return false }

// OrNop returns l, or a NopLogger when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return NopLogger{}
	}
	return l
}

// TimedOperation measures the duration of one operation.
type TimedOperation struct {
	logger Logger
	msg    string
	start  time.Time
	fields []Field
}
