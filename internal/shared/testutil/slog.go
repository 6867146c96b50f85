package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

// LogRecord is one captured log record.
type LogRecord struct {
	Time    time.Time
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// CaptureHandler is a slog.Handler that buffers records so tests can
// assert on what was logged. All levels are captured.
type CaptureHandler struct {
	mu      sync.Mutex
	records []LogRecord
	base    []slog.Attr
	t       *testing.T
}

// NewCaptureHandler creates a capture handler. When t is non-nil every
// record is echoed to the test log as well.
func NewCaptureHandler(t *testing.T) *CaptureHandler {
	return &CaptureHandler{t: t}
}

// NewTestLogger returns a logger wired to a fresh capture handler.
func NewTestLogger(t *testing.T) (*slog.Logger, *CaptureHandler) {
	h := NewCaptureHandler(t)
	return slog.New(h), h
}

func (h *CaptureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *CaptureHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, r.NumAttrs()+len(h.base))
	for _, a := range h.base {
		attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	h.mu.Lock()
	h.records = append(h.records, LogRecord{
		Time:    r.Time,
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
	})
	h.mu.Unlock()

	if h.t != nil {
		h.t.Logf("[%s] %s %v", r.Level, r.Message, attrs)
	}
	return nil
}

func (h *CaptureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	base := append(append([]slog.Attr{}, h.base...), attrs...)
	return &sharedCapture{parent: h, base: base}
}

func (h *CaptureHandler) WithGroup(string) slog.Handler { return h }

// sharedCapture routes a derived logger's records into the parent
// handler's buffer while carrying the derived attrs.
type sharedCapture struct {
	parent *CaptureHandler
	base   []slog.Attr
}

func (s *sharedCapture) Enabled(context.Context, slog.Level) bool { return true }

func (s *sharedCapture) Handle(ctx context.Context, r slog.Record) error {
	clone := r.Clone()
	for _, a := range s.base {
		clone.AddAttrs(a)
	}
	return s.parent.Handle(ctx, clone)
}

func (s *sharedCapture) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &sharedCapture{parent: s.parent, base: append(append([]slog.Attr{}, s.base...), attrs...)}
}

func (s *sharedCapture) WithGroup(string) slog.Handler { return s }

// Records returns a copy of everything captured so far.
func (h *CaptureHandler) Records() []LogRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]LogRecord, len(h.records))
	copy(out, h.records)
	return out
}

// Count returns the number of captured records.
func (h *CaptureHandler) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.records)
}

// ContainsMessage reports whether any record's message contains the
// given substring.
func (h *CaptureHandler) ContainsMessage(substr string) bool {
	for _, r := range h.Records() {
		if strings.Contains(r.Message, substr) {
			return true
		}
	}
	return false
}

// ContainsAttr reports whether any record carries key=value.
func (h *CaptureHandler) ContainsAttr(key string, value any) bool {
	for _, r := range h.Records() {
		if v, ok := r.Attrs[key]; ok && v == value {
			return true
		}
	}
	return false
}

// AssertLogged fails the test when no record at the level contains the
// message substring.
func AssertLogged(t *testing.T, h *CaptureHandler, level slog.Level, substr string) {
	t.Helper()
	for _, r := range h.Records() {
		if r.Level == level && strings.Contains(r.Message, substr) {
			return
		}
	}
	t.Errorf("no %s log containing %q", level, substr)
	for _, r := range h.Records() {
		t.Logf("  captured: [%s] %s", r.Level, r.Message)
	}
}

// AssertNoErrors fails the test when any error-level record was logged.
func AssertNoErrors(t *testing.T, h *CaptureHandler) {
	t.Helper()
	for _, r := range h.Records() {
		if r.Level >= slog.LevelError {
			t.Errorf("unexpected error log: %s %v", r.Message, r.Attrs)
		}
	}
}
