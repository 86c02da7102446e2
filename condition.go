package stacklog

import (
	"errors"
	"fmt"
	"reflect"
)

// Failure describes why a scope ended abnormally.
// Type is the dynamic type of Err. Stack is only set for recovered panics.
type Failure struct {
	Type  reflect.Type
	Err   error
	Stack []byte
}

func newFailure(err error, stack []byte) Failure {
	if err == nil {
		return Failure{}
	}
	return Failure{
		Type:  reflect.TypeOf(err),
		Err:   err,
		Stack: stack,
	}
}

// Arity is the number of leading Failure values a matcher or handler accepts.
type Arity int

// Arities, in the order the values are supplied: type, error, stack.
const (
	ArityNone Arity = iota
	ArityType
	ArityValue
	ArityTrace
)

// Matcher decides whether a failure belongs to a condition.
type Matcher interface {
	Arity() Arity
	Match(f Failure) bool
}

// Handler logs a matched failure.
type Handler interface {
	Arity() Arity
	Handle(l *Logger, f Failure)
}

// MatchAny is a matcher that ignores the failure details.
type MatchAny func() bool

// Arity implements Matcher.
func (MatchAny) Arity() Arity { return ArityNone }

// Match implements Matcher.
func (m MatchAny) Match(Failure) bool { return m() }

// MatchType is a matcher over the failure's type.
type MatchType func(t reflect.Type) bool

// Arity implements Matcher.
func (MatchType) Arity() Arity { return ArityType }

// Match implements Matcher.
func (m MatchType) Match(f Failure) bool { return m(f.Type) }

// MatchValue is a matcher over the failure's type and error.
type MatchValue func(t reflect.Type, err error) bool

// Arity implements Matcher.
func (MatchValue) Arity() Arity { return ArityValue }

// Match implements Matcher.
func (m MatchValue) Match(f Failure) bool { return m(f.Type, f.Err) }

// MatchTrace is a matcher over the failure's type, error and stack.
type MatchTrace func(t reflect.Type, err error, stack []byte) bool

// Arity implements Matcher.
func (MatchTrace) Arity() Arity { return ArityTrace }

// Match implements Matcher.
func (m MatchTrace) Match(f Failure) bool { return m(f.Type, f.Err, f.Stack) }

// HandleAny is a handler that only needs the Logger.
type HandleAny func(l *Logger)

// Arity implements Handler.
func (HandleAny) Arity() Arity { return ArityNone }

// Handle implements Handler.
func (h HandleAny) Handle(l *Logger, _ Failure) { h(l) }

// HandleType is a handler that receives the failure's type.
type HandleType func(l *Logger, t reflect.Type)

// Arity implements Handler.
func (HandleType) Arity() Arity { return ArityType }

// Handle implements Handler.
func (h HandleType) Handle(l *Logger, f Failure) { h(l, f.Type) }

// HandleValue is a handler that receives the failure's type and error.
type HandleValue func(l *Logger, t reflect.Type, err error)

// Arity implements Handler.
func (HandleValue) Arity() Arity { return ArityValue }

// Handle implements Handler.
func (h HandleValue) Handle(l *Logger, f Failure) { h(l, f.Type, f.Err) }

// HandleTrace is a handler that receives the full failure.
type HandleTrace func(l *Logger, t reflect.Type, err error, stack []byte)

// Arity implements Handler.
func (HandleTrace) Arity() Arity { return ArityTrace }

// Handle implements Handler.
func (h HandleTrace) Handle(l *Logger, f Failure) { h(l, f.Type, f.Err, f.Stack) }

// Condition pairs a matcher with the handler that logs it.
type Condition struct {
	Match  Matcher
	Handle Handler
}

// Is returns a condition logging suffix for failures where errors.Is(err, target).
// Panics with ErrInvalidCondition if target is nil.
func Is(target error, suffix string) Condition {
	if target == nil {
		panic(fmt.Errorf("%w: nil target for suffix %q", ErrInvalidCondition, suffix))
	}
	return Condition{
		Match: MatchValue(func(_ reflect.Type, err error) bool {
			return err != nil && errors.Is(err, target)
		}),
		Handle: Suffix(suffix),
	}
}

// As returns a condition logging suffix for failures whose chain holds a T.
// T may be an interface, in which case any error implementing it matches.
func As[T error](suffix string) Condition {
	return Condition{
		Match: MatchValue(func(_ reflect.Type, err error) bool {
			if err == nil {
				return false
			}
			var target T
			return errors.As(err, &target)
		}),
		Handle: Suffix(suffix),
	}
}

// Suffix returns a handler that logs the message with the given suffix.
func Suffix(suffix string) Handler {
	return HandleAny(func(l *Logger) {
		l.Log(suffix)
	})
}
