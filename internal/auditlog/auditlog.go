// Package auditlog keeps a bounded, append-only record of session events.
//
// The log is purely observational: nothing in the pipeline consults it for
// control decisions. Entries are kept newest-first and the log is truncated
// to a fixed capacity, oldest evicted first.
package auditlog

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/harrison/curator/internal/filelock"
)

// DefaultCapacity is the number of entries retained when no capacity is
// configured.
const DefaultCapacity = 100

// Severity levels for audit entries.
const (
	SeverityInfo  = "info"
	SeverityWarn  = "warn"
	SeverityError = "error"
)

// Entry is one recorded session event.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
}

// Log is a bounded newest-first event log.
type Log struct {
	capacity int
	entries  []Entry
}

// New creates a Log holding at most capacity entries; a non-positive
// capacity falls back to DefaultCapacity.
func New(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{capacity: capacity}
}

// Append inserts a newly timestamped entry at the front and truncates the
// log to its capacity.
func (l *Log) Append(severity, message string) {
	entry := Entry{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Severity:  severity,
		Message:   message,
	}
	l.entries = append([]Entry{entry}, l.entries...)
	if len(l.entries) > l.capacity {
		l.entries = l.entries[:l.capacity]
	}
}

// Appendf formats and appends an entry.
func (l *Log) Appendf(severity, format string, args ...interface{}) {
	l.Append(severity, fmt.Sprintf(format, args...))
}

// Entries returns a snapshot of the log, newest first.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of retained entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// ExportJSON writes the current entries to path as indented JSON, atomically.
func (l *Log) ExportJSON(path string) error {
	data, err := json.MarshalIndent(l.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode audit log: %w", err)
	}
	if err := filelock.AtomicWrite(path, data); err != nil {
		return fmt.Errorf("export audit log: %w", err)
	}
	return nil
}
