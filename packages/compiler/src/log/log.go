// Package log is the compiler's warning facade. Every recoverable condition
// in the compiler (ambiguity fallbacks, superseded bindings, legend merge
// conflicts) is reported here as a warning; nothing in the library prints
// directly.
package log

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

var (
	mu     sync.Mutex
	logger = slog.Default()
)

// Set replaces the destination logger and returns the previous one.
func Set(l *slog.Logger) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	prev := logger
	logger = l
	return prev
}

// Warn reports a non-fatal compile condition in printf style.
func Warn(format string, args ...interface{}) {
	mu.Lock()
	l := logger
	mu.Unlock()
	l.Warn(fmt.Sprintf(format, args...))
}

// Debug reports compiler-internal detail in printf style.
func Debug(format string, args ...interface{}) {
	mu.Lock()
	l := logger
	mu.Unlock()
	l.Debug(fmt.Sprintf(format, args...))
}

// Recorder is a slog.Handler that captures warning messages, for tests.
type Recorder struct {
	mu       sync.Mutex
	Messages []string
}

// NewRecorder installs a fresh Recorder as the active logger and returns it
// along with a restore function.
func NewRecorder() (*Recorder, func()) {
	r := &Recorder{}
	prev := Set(slog.New(r))
	return r, func() { Set(prev) }
}

// Enabled implements slog.Handler.
func (r *Recorder) Enabled(context.Context, slog.Level) bool { return true }

// Handle implements slog.Handler.
func (r *Recorder) Handle(_ context.Context, record slog.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Messages = append(r.Messages, record.Message)
	return nil
}

// WithAttrs implements slog.Handler.
func (r *Recorder) WithAttrs([]slog.Attr) slog.Handler { return r }

// WithGroup implements slog.Handler.
func (r *Recorder) WithGroup(string) slog.Handler { return r }
