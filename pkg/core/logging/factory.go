// ============================================================================
// Wish Upon a Brick (wishbrick)
// ============================================================================
//
// Package:     logging
// Description: Factory functions for Foundation loggers used by the client
//              and the workers
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"
	"sync"

	wishlog "github.com/msto63/wishbrick/foundation/core/log"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service name, used as the logger name
	ServiceName string

	// Log level (trace, debug, info, warn, error)
	Level string

	// Output format: "json", "text" or "console" (default: json)
	Format string

	// Output writer (default: stdout)
	Output io.Writer
}

var (
	defaultsMu sync.RWMutex
	defaults   = LoggerConfig{Level: "info", Format: "json"}
)

// SetDefaults changes the level, format and output used by New.
// The interactive client calls this to move logs off the terminal.
func SetDefaults(cfg LoggerConfig) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	if cfg.Level != "" {
		defaults.Level = cfg.Level
	}
	if cfg.Format != "" {
		defaults.Format = cfg.Format
	}
	if cfg.Output != nil {
		defaults.Output = cfg.Output
	}
}

// DefaultLoggerConfig returns the current defaults for serviceName
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	cfg := defaults
	cfg.ServiceName = serviceName
	return cfg
}

// NewLogger creates a Foundation logger from cfg
func NewLogger(cfg LoggerConfig) *wishlog.Logger {
	level, _ := wishlog.ParseLevel(cfg.Level)
	format, _ := wishlog.ParseFormat(cfg.Format)

	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	return wishlog.NewWithConfig(wishlog.Config{
		Level:  level,
		Format: format,
		Output: output,
		Name:   cfg.ServiceName,
	})
}

// Logger wraps the Foundation logger with key-value pair methods
type Logger struct {
	*wishlog.Logger
	name string
}

// New creates a logger named name with the process defaults
func New(name string) *Logger {
	return &Logger{
		Logger: NewLogger(DefaultLoggerConfig(name)),
		name:   name,
	}
}

// Wrap adapts an existing Foundation logger
func Wrap(l *wishlog.Logger, name string) *Logger {
	return &Logger{Logger: l, name: name}
}

// Name returns the logger name
func (l *Logger) Name() string {
	return l.name
}

// With returns a logger that adds the key-value pairs to every entry
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{
		Logger: l.Logger.WithFields(toFields(keysAndValues...)),
		name:   l.name,
	}
}

// WithRequestID returns a logger that tags entries with a request id
func (l *Logger) WithRequestID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.WithRequestID(id),
		name:   l.name,
	}
}

// Debug logs a debug message with key-value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.Logger.Debug(msg, toFields(keysAndValues...))
}

// Info logs an info message with key-value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.Logger.Info(msg, toFields(keysAndValues...))
}

// Warn logs a warning message with key-value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.Logger.Warn(msg, toFields(keysAndValues...))
}

// Error logs an error message with key-value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.Logger.Error(msg, toFields(keysAndValues...))
}

// toFields converts key-value pairs to wishlog.Fields.
// Non-string keys and a trailing odd value are dropped.
func toFields(keysAndValues ...interface{}) wishlog.Fields {
	if len(keysAndValues) == 0 {
		return nil
	}

	fields := make(wishlog.Fields)
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
