package integration

import (
	"strings"
	"testing"

	"github.com/zoobzio/stacklog"
)

// MockSink wraps a Recorder with assertion helpers.
type MockSink struct {
	*stacklog.Recorder
	t *testing.T
}

// NewMockSink creates a sink for testing.
func NewMockSink(t *testing.T) *MockSink {
	return &MockSink{
		Recorder: stacklog.NewRecorder(),
		t:        t,
	}
}

// AssertLines verifies the exact sequence of emitted lines.
func (m *MockSink) AssertLines(expected ...string) {
	m.t.Helper()

	got := m.Messages()
	if len(got) != len(expected) {
		m.t.Errorf("Expected %d lines, got %d:\n%s", len(expected), len(got), strings.Join(got, "\n"))
		return
	}
	for i := range expected {
		if got[i] != expected[i] {
			m.t.Errorf("Line %d: expected %q, got %q", i, expected[i], got[i])
		}
	}
}

// AssertLinePrefix verifies line i starts with prefix.
func (m *MockSink) AssertLinePrefix(i int, prefix string) {
	m.t.Helper()
	got := m.Messages()
	if i >= len(got) {
		m.t.Errorf("Line %d not emitted, only %d lines", i, len(got))
		return
	}
	if !strings.HasPrefix(got[i], prefix) {
		m.t.Errorf("Line %d: expected prefix %q, got %q", i, prefix, got[i])
	}
}

// Scope is a reusable scope body for pattern tests.
type Scope struct {
	Name string
	Body func() error
}

// RunAll runs each scope under its own Logger on sink.
// Errors are collected in order.
func RunAll(sink stacklog.Sink, scopes []Scope, conditions ...stacklog.Condition) []error {
	errs := make([]error, 0, len(scopes))
	for _, s := range scopes {
		l := stacklog.New(sink, s.Name).WithConditions(conditions...)
		errs = append(errs, l.Run(s.Body))
	}
	return errs
}
