// File: entry.go
// Title: Log Entry
// Description: A single log record and the Fields helpers used to build it.

package log

import (
	"sort"
	"time"
)

// Fields are key/value pairs attached to a log entry.
type Fields map[string]interface{}

// Field creates a single field set.
func Field(key string, value interface{}) Fields {
	return Fields{key: value}
}

// Err creates an error field.
func Err(err error) Fields {
	return Fields{"error": err}
}

// Merge returns a new Fields holding f overlaid with other.
func (f Fields) Merge(other Fields) Fields {
	out := make(Fields, len(f)+len(other))
	for k, v := range f {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// keys returns the field names sorted, so text output is stable.
func (f Fields) keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Entry is one log record.
type Entry struct {
	Timestamp time.Time
	Level     Level
	Message   string
	Logger    string
	RequestID string
	Fields    Fields
	Error     error
}

// NewEntry creates an entry stamped with the current time.
func NewEntry(level Level, message string) *Entry {
	return &Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		Fields:    make(Fields),
	}
}
