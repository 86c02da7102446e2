package stacklog

import (
	"sync"
	"time"

	"github.com/zoobzio/clockz"
)

// Entry is one line received by a Recorder.
type Entry struct {
	Time    time.Time `json:"time"`
	Message string    `json:"message"`
	Args    []any     `json:"args,omitempty"`
}

// Recorder is a Sink that buffers lines for later export.
// Safe for concurrent use by multiple goroutines, so several Loggers may share one.
type Recorder struct {
	clock   clockz.Clock
	entries []Entry
	mu      sync.Mutex
}

// NewRecorder creates an empty recorder using the real clock.
func NewRecorder() *Recorder {
	return &Recorder{
		clock:   clockz.RealClock,
		entries: make([]Entry, 0, 8),
	}
}

// WithClock returns a new recorder stamping entries with clock.
func (*Recorder) WithClock(clock clockz.Clock) *Recorder {
	return &Recorder{
		clock:   clock,
		entries: make([]Entry, 0, 8),
	}
}

// Log implements Sink.
func (r *Recorder) Log(msg string, args ...any) {
	entry := Entry{
		Time:    r.clock.Now(),
		Message: msg,
	}
	// Copy so later changes by the caller don't leak in.
	if len(args) > 0 {
		entry.Args = append([]any(nil), args...)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

// Export returns all buffered entries and clears the buffer.
func (r *Recorder) Export() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.entries) == 0 {
		return nil
	}

	result := make([]Entry, len(r.entries))
	copy(result, r.entries)
	r.entries = r.entries[:0]
	return result
}

// Messages returns the buffered lines without clearing them.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	messages := make([]string, len(r.entries))
	for i, e := range r.entries {
		messages[i] = e.Message
	}
	return messages
}

// Count returns the number of buffered entries.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Reset clears the buffer.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = r.entries[:0]
}
