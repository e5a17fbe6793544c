package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// LevelEnv names the environment variable read by DefaultLogger.
const LevelEnv = "NAVMESH_LOG_LEVEL"

// JSONLogger writes one JSON object per line. Children created by With
// share the parent's writer lock.
type JSONLogger struct {
	out    *lockedWriter
	level  Level
	fields []Field
	mu     sync.RWMutex
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewJSONLogger creates a JSON logger writing to w.
func NewJSONLogger(w io.Writer, level Level) *JSONLogger {
	return &JSONLogger{
		out:   &lockedWriter{w: w},
		level: level,
	}
}

func (l *JSONLogger) Enabled(level Level) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return level >= l.level
}

func (l *JSONLogger) write(level Level, msg string, fields []Field) {
	if !l.Enabled(level) {
		return
	}

	e := entry{
		Time:    time.Now().UTC().Format(time.RFC3339Nano),
		Level:   level.String(),
		Message: msg,
	}
	if n := len(l.fields) + len(fields); n > 0 {
		e.Fields = make(map[string]any, n)
		for _, f := range l.fields {
			e.Fields[f.Key] = f.Value
		}
		for _, f := range fields {
			e.Fields[f.Key] = f.Value
		}
	}

	data, err := json.Marshal(e)
	if err != nil {
		data = []byte(fmt.Sprintf(`{"level":"ERROR","msg":"unencodable log entry","error":%q}`, err.Error()))
	}
	data = append(data, '\n')

	l.out.mu.Lock()
	_, _ = l.out.w.Write(data)
	l.out.mu.Unlock()
}

func (l *JSONLogger) Debug(msg string, fields ...Field) { l.write(DebugLevel, msg, fields) }
func (l *JSONLogger) Info(msg string, fields ...Field)  { l.write(InfoLevel, msg, fields) }
func (l *JSONLogger) Warn(msg string, fields ...Field)  { l.write(WarnLevel, msg, fields) }
func (l *JSONLogger) Error(msg string, fields ...Field) { l.write(ErrorLevel, msg, fields) }

// With creates a child logger with the given fields pre-set
func (l *JSONLogger) With(fields ...Field) Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()

	merged := make([]Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)

	return &JSONLogger{out: l.out, level: l.level, fields: merged}
}

func (l *JSONLogger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

func (l *JSONLogger) GetLevel() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

var (
	defaultLogger Logger
	defaultOnce   sync.Once
)

// DefaultLogger returns the process-wide logger writing to stderr.
func DefaultLogger() Logger {
	defaultOnce.Do(func() {
		if defaultLogger == nil {
			defaultLogger = NewJSONLogger(os.Stderr, ParseLevel(os.Getenv(LevelEnv)))
		}
	})
	return defaultLogger
}

// SetDefaultLogger replaces the process-wide logger.
func SetDefaultLogger(logger Logger) {
	defaultOnce.Do(func() {})
	defaultLogger = logger
}

// StartTimer begins timing an operation
func StartTimer(logger Logger, msg string, fields ...Field) *TimedOperation {
	return &TimedOperation{
		logger: OrNop(logger),
		msg:    msg,
		start:  time.Now(),
		fields: fields,
	}
}

// Elapsed returns the time since the timer started.
func (t *TimedOperation) Elapsed() time.Duration {
	return time.Since(t.start)
}

// End logs the operation at info level with its latency and any extra
// fields.
func (t *TimedOperation) End(extra ...Field) {
	t.logger.Info(t.msg, t.collect(extra)...)
}

// EndDebug logs the operation at debug level.
func (t *TimedOperation) EndDebug(extra ...Field) {
	if t.logger.Enabled(DebugLevel) {
		t.logger.Debug(t.msg, t.collect(extra)...)
	}
}

// EndError logs the operation as failed.
func (t *TimedOperation) EndError(err error, extra ...Field) {
	t.logger.Error(t.msg, t.collect(append(extra, Error(err)))...)
}

func (t *TimedOperation) collect(extra []Field) []Field {
	out := make([]Field, 0, len(t.fields)+len(extra)+1)
	out = append(out, t.fields...)
	out = append(out, extra...)
	return append(out, Latency(t.Elapsed()))
}
