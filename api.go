// Package stacklog wraps a unit of work with begin, success, failure and
// custom-condition log lines.
//
// stacklog is not a logging framework. It composes one line per lifecycle
// signal and hands it to a caller-supplied Sink, so any logger that accepts a
// message and trailing arguments can be used.
//
// Core Components:
//   - Logger: Fires lifecycle signals around one scope.
//   - Timer: Logger that also reports how long the scope took.
//   - Condition: Custom suffix for a specific class of failure.
//   - Recorder: Sink that buffers lines for tests and export.
//
// Basic Usage:
//
//	err := stacklog.New(stacklog.SinkFunc(slog.Info), "Running migrations").Run(func() error {
//		return migrate(ctx)
//	})
//
// Produces:
//
//	Running migrations...
//	Running migrations...DONE
//
// Guard Usage:
//
//	func build() (err error) {
//		defer stacklog.New(sink, "Building").Enter().Close(&err)
//		return compile()
//	}
//
// Close also observes panics: the failure is logged and the panic continues.
//
// Conditions:
//
//	l := stacklog.New(sink, "Syncing").WithConditions(
//		stacklog.Is(ErrNotImplemented, "SKIPPED"),
//	)
//
// A failure matching ErrNotImplemented logs "Syncing...SKIPPED" instead of
// "Syncing...FAILURE". The error is still returned to the caller; conditions
// only change what is logged. When several conditions match, the one
// registered last wins.
//
// Signals:
//
// ENTER and EXIT accept any number of callbacks which fire in registration
// order. BEGIN, SUCCESS and FAILURE hold a single callback; registering a new
// one replaces the old.
//
// Thread Safety:
//
// A Logger is NOT safe for concurrent use. Each concurrent scope needs its
// own Logger. Register callbacks before entering the scope.
package stacklog

// Separator joins the message and the suffix of every emitted line.
const Separator = "..."

// Default suffixes.
const (
	SuffixDone    = "DONE"
	SuffixFailure = "FAILURE"
)

// Signal names a lifecycle event of a scope.
type Signal string

// Lifecycle signals.
const (
	SignalEnter   Signal = "enter"
	SignalBegin   Signal = "begin"
	SignalExit    Signal = "exit"
	SignalSuccess Signal = "success"
	SignalFailure Signal = "failure"
)

// accumulates reports whether callbacks for the signal stack up instead of
// replacing each other.
func (s Signal) accumulates() bool {
	return s == SignalEnter || s == SignalExit
}

func (s Signal) valid() bool {
	switch s {
	case SignalEnter, SignalBegin, SignalExit, SignalSuccess, SignalFailure:
		return true
	}
	return false
}
