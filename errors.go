package stacklog

import (
	"errors"
	"fmt"
)

var (
	// ErrNilSink is raised when a line is emitted through a Logger without a sink.
	ErrNilSink = errors.New("stacklog: sink is nil")

	// ErrUnknownUnit is returned for a duration unit that has no formatter.
	ErrUnknownUnit = errors.New("stacklog: unknown unit")

	// ErrInvalidCondition is raised when a condition shortcut cannot match anything.
	ErrInvalidCondition = errors.New("stacklog: invalid condition")
)

// PanicError carries a recovered panic value that was not itself an error.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}
