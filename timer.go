package stacklog

import (
	"fmt"
	"time"

	"github.com/zoobzio/clockz"
)

// Timer is a Logger that appends the scope's duration to the success line:
//
//	Running...
//	Running...DONE in 1.52 s
//
// Start and end times belong to the Timer; a Timer reused by a wrapped
// function restarts on every call.
type Timer struct {
	*Logger
	clock clockz.Clock
	start time.Time
	end   time.Time
	unit  Unit
}

// NewTimer creates a Timer printing durations in unit.
// Returns ErrUnknownUnit if unit has no formatter.
func NewTimer(sink Sink, message string, unit Unit, args ...any) (*Timer, error) {
	if !unit.valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUnit, string(unit))
	}

	t := &Timer{
		Logger: New(sink, message, args...),
		clock:  clockz.RealClock,
		unit:   unit,
	}

	t.OnEnter(t.markStart)
	t.OnExit(t.markEnd)
	t.OnSuccess(t.succeed)

	return t, nil
}

// WithClock sets the clock used for timestamps.
// Enables clock injection for deterministic testing.
func (t *Timer) WithClock(clock clockz.Clock) *Timer {
	t.clock = clock
	return t
}

// Unit returns the unit durations are printed in.
func (t *Timer) Unit() Unit {
	return t.unit
}

// Duration returns the time between start and end, or between start and
// now while the scope is still open. Zero before the scope starts.
func (t *Timer) Duration() time.Duration {
	if t.start.IsZero() {
		return 0
	}
	if t.end.IsZero() {
		return t.clock.Since(t.start)
	}
	return t.end.Sub(t.start)
}

// ElapsedSeconds returns Duration in seconds.
func (t *Timer) ElapsedSeconds() float64 {
	return t.Duration().Seconds()
}

// Elapsed returns Duration formatted in the timer's unit, or "" before the scope starts.
func (t *Timer) Elapsed() string {
	if t.start.IsZero() {
		return ""
	}
	// unit was validated by NewTimer
	s, _ := FormatDuration(t.unit, t.ElapsedSeconds())
	return s
}

func (t *Timer) markStart(*Logger) {
	t.start = t.clock.Now()
	t.end = time.Time{}
}

func (t *Timer) markEnd(*Logger) {
	if t.start.IsZero() {
		return
	}
	t.end = t.clock.Now()
}

func (t *Timer) succeed(l *Logger) {
	if t.start.IsZero() || t.end.IsZero() {
		l.Log(SuffixDone)
		return
	}
	l.Log(SuffixDone + " in " + t.Elapsed())
}
