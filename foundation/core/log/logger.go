// File: logger.go
// Title: Structured Logger
// Description: Logger with levels, persistent context fields and pluggable
//              formatters. Loggers are immutable; With* methods return copies.

package log

import (
	"errors"
	"io"
	"os"
	"sync"

	wisherror "github.com/msto63/wishbrick/foundation/core/error"
)

// Logger writes structured entries to an output.
type Logger struct {
	level     Level
	formatter Formatter
	name      string
	requestID string
	fields    Fields

	// mu guards writes to out; shared between copies created by With*.
	mu  *sync.Mutex
	out io.Writer
}

// Config configures a Logger.
type Config struct {
	Level  Level
	Format Format
	Output io.Writer
	Name   string
}

// New creates an info-level JSON logger writing to stdout.
func New() *Logger {
	return NewWithConfig(Config{Level: LevelInfo, Format: FormatJSON})
}

// NewWithConfig creates a logger from cfg. A nil Output means stdout.
func NewWithConfig(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	return &Logger{
		level:     cfg.Level,
		formatter: NewFormatter(cfg.Format),
		name:      cfg.Name,
		fields:    make(Fields),
		mu:        &sync.Mutex{},
		out:       out,
	}
}

func (l *Logger) clone() *Logger {
	c := *l
	c.fields = l.fields.Merge(nil)
	return &c
}

// WithName returns a copy of l with a different logger name.
func (l *Logger) WithName(name string) *Logger {
	c := l.clone()
	c.name = name
	return c
}

// WithLevel returns a copy of l with a different minimum level.
func (l *Logger) WithLevel(level Level) *Logger {
	c := l.clone()
	c.level = level
	return c
}

// WithField returns a copy of l that adds key=value to every entry.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	c := l.clone()
	c.fields[key] = value
	return c
}

// WithFields returns a copy of l that adds fields to every entry.
func (l *Logger) WithFields(fields Fields) *Logger {
	c := l.clone()
	c.fields = c.fields.Merge(fields)
	return c
}

// WithRequestID returns a copy of l that tags entries with a request id.
func (l *Logger) WithRequestID(id string) *Logger {
	c := l.clone()
	c.requestID = id
	return c
}

func (l *Logger) Trace(msg string, fields ...Fields) { l.log(LevelTrace, msg, nil, fields) }
func (l *Logger) Debug(msg string, fields ...Fields) { l.log(LevelDebug, msg, nil, fields) }
func (l *Logger) Info(msg string, fields ...Fields)  { l.log(LevelInfo, msg, nil, fields) }
func (l *Logger) Warn(msg string, fields ...Fields)  { l.log(LevelWarn, msg, nil, fields) }
func (l *Logger) Error(msg string, fields ...Fields) { l.log(LevelError, msg, nil, fields) }

// Fatal logs at fatal level and exits with status 1.
func (l *Logger) Fatal(msg string, fields ...Fields) {
	l.log(LevelFatal, msg, nil, fields)
	os.Exit(1)
}

// ErrorWithErr logs msg at error level with err attached.
func (l *Logger) ErrorWithErr(msg string, err error, fields ...Fields) {
	l.log(LevelError, msg, err, fields)
}

// LogError logs err at a level derived from its severity, with the code,
// operation and details of a *wisherror.Error as fields.
func (l *Logger) LogError(err error) {
	if err == nil {
		return
	}
	var werr *wisherror.Error
	if !errors.As(err, &werr) {
		l.log(LevelError, err.Error(), err, nil)
		return
	}

	fields := Fields{
		"error_code":     werr.Code().String(),
		"error_category": werr.Code().Category(),
	}
	if op := werr.Operation(); op != "" {
		fields["error_operation"] = op
	}
	for k, v := range werr.Details() {
		fields["error_"+k] = v
	}

	level := LevelError
	switch werr.Severity() {
	case wisherror.SeverityLow:
		level = LevelInfo
	case wisherror.SeverityMedium:
		level = LevelWarn
	}
	l.log(level, err.Error(), err, []Fields{fields})
}

// Enabled reports whether level passes the logger's minimum level.
func (l *Logger) Enabled(level Level) bool {
	return level.Enabled(l.level)
}

// Level returns the minimum level.
func (l *Logger) Level() Level {
	return l.level
}

func (l *Logger) log(level Level, msg string, err error, fields []Fields) {
	if !level.Enabled(l.level) {
		return
	}

	entry := NewEntry(level, msg)
	entry.Logger = l.name
	entry.RequestID = l.requestID
	entry.Error = err
	for k, v := range l.fields {
		entry.Fields[k] = v
	}
	for _, set := range fields {
		for k, v := range set {
			entry.Fields[k] = v
		}
	}

	line, ferr := l.formatter.Format(entry)
	if ferr != nil {
		return
	}
	l.mu.Lock()
	_, _ = l.out.Write(line)
	l.mu.Unlock()
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = New()
)

// Default returns the process-wide logger.
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defaultLogger = l
	defaultMu.Unlock()
}
