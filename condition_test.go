package stacklog

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type timeoutError struct{ op string }

func (e *timeoutError) Error() string { return e.op + ": timeout" }
func (e *timeoutError) Timeout() bool { return true }

type timeout interface {
	error
	Timeout() bool
}

func TestConditionShortcuts(t *testing.T) {
	t.Run("is matches wrapped sentinel", func(t *testing.T) {
		rec := NewRecorder()
		l := New(rec, "Reading").WithConditions(Is(fs.ErrNotExist, "MISSING"))

		err := l.Run(func() error { return fmt.Errorf("open config: %w", fs.ErrNotExist) })

		assert.ErrorIs(t, err, fs.ErrNotExist)
		assert.Equal(t, []string{"Reading...", "Reading...MISSING"}, rec.Messages())
	})

	t.Run("as matches concrete type", func(t *testing.T) {
		rec := NewRecorder()
		l := New(rec, "Calling").WithConditions(As[*timeoutError]("TIMEOUT"))

		_ = l.Run(func() error { return fmt.Errorf("call: %w", &timeoutError{op: "dial"}) })

		assert.Equal(t, []string{"Calling...", "Calling...TIMEOUT"}, rec.Messages())
	})

	t.Run("as matches interface", func(t *testing.T) {
		rec := NewRecorder()
		l := New(rec, "Calling").WithConditions(As[timeout]("TIMEOUT"))

		_ = l.Run(func() error { return &timeoutError{op: "read"} })

		assert.Equal(t, []string{"Calling...", "Calling...TIMEOUT"}, rec.Messages())
	})

	t.Run("is with nil target panics at registration", func(t *testing.T) {
		defer func() {
			r := recover()
			require.NotNil(t, r)
			err, ok := r.(error)
			require.True(t, ok)
			assert.ErrorIs(t, err, ErrInvalidCondition)
		}()
		_ = Is(nil, "NEVER")
	})
}

func TestConditionPrecedence(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", errNotImplemented)

	t.Run("later construction entry wins", func(t *testing.T) {
		rec := NewRecorder()
		l := New(rec, "Precedence").WithConditions(
			As[error]("GENERIC"),
			Is(errNotImplemented, "SKIPPED"),
		)

		_ = l.Run(func() error { return wrapped })

		assert.Equal(t, "Precedence...SKIPPED", rec.Messages()[1])
		assert.Equal(t, 0, l.Matched())
	})

	t.Run("most recent registration wins", func(t *testing.T) {
		rec := NewRecorder()
		l := New(rec, "Precedence")
		l.OnCondition(Is(errNotImplemented, "SKIPPED").Match, Suffix("SKIPPED"))
		l.OnCondition(As[error]("GENERIC").Match, Suffix("GENERIC"))

		_ = l.Run(func() error { return wrapped })

		assert.Equal(t, []string{"Precedence...", "Precedence...GENERIC"}, rec.Messages())
	})

	t.Run("earlier condition still matches when later does not", func(t *testing.T) {
		rec := NewRecorder()
		l := New(rec, "Precedence").WithConditions(
			Is(errNotImplemented, "SKIPPED"),
			Is(fs.ErrPermission, "DENIED"),
		)

		_ = l.Run(func() error { return wrapped })

		assert.Equal(t, "Precedence...SKIPPED", rec.Messages()[1])
		assert.Equal(t, 1, l.Matched())
	})

	t.Run("only one handler fires", func(t *testing.T) {
		fired := 0
		l := New(NewRecorder(), "Once")
		for i := 0; i < 3; i++ {
			l.OnCondition(MatchAny(func() bool { return true }), HandleAny(func(*Logger) { fired++ }))
		}
		l.OnFailure(func(*Logger) { t.Error("failure fired alongside a condition") })

		_ = l.Run(func() error { return errValue })

		assert.Equal(t, 1, fired)
	})
}

func TestConditionArity(t *testing.T) {
	boom := &timeoutError{op: "boom"}

	tests := []struct {
		name    string
		matcher Matcher
		arity   Arity
	}{
		{
			name:    "none",
			matcher: MatchAny(func() bool { return true }),
			arity:   ArityNone,
		},
		{
			name: "type",
			matcher: MatchType(func(typ reflect.Type) bool {
				return typ == reflect.TypeOf(boom)
			}),
			arity: ArityType,
		},
		{
			name: "value",
			matcher: MatchValue(func(_ reflect.Type, err error) bool {
				return err == boom
			}),
			arity: ArityValue,
		},
		{
			name: "trace",
			matcher: MatchTrace(func(_ reflect.Type, _ error, stack []byte) bool {
				return len(stack) > 0
			}),
			arity: ArityTrace,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewRecorder()
			l := New(rec, "Arity")
			l.OnCondition(tt.matcher, Suffix("MATCHED"))

			assert.Equal(t, tt.arity, tt.matcher.Arity())
			assert.Panics(t, func() {
				_ = l.Run(func() error { panic(boom) })
			})
			assert.Equal(t, "Arity...MATCHED", rec.Messages()[1])
		})
	}

	t.Run("returned errors carry no stack", func(t *testing.T) {
		rec := NewRecorder()
		l := New(rec, "Arity")
		l.OnCondition(MatchTrace(func(_ reflect.Type, _ error, stack []byte) bool {
			return stack != nil
		}), Suffix("MATCHED"))

		_ = l.Run(func() error { return boom })

		assert.Equal(t, "Arity...FAILURE", rec.Messages()[1])
	})

	t.Run("handlers receive leading values", func(t *testing.T) {
		var (
			gotType  reflect.Type
			gotErr   error
			gotStack []byte
		)
		handlers := []Handler{
			HandleAny(func(l *Logger) { l.Log("any") }),
			HandleType(func(l *Logger, typ reflect.Type) { gotType = typ; l.Log("type") }),
			HandleValue(func(l *Logger, _ reflect.Type, err error) { gotErr = err; l.Log("value") }),
			HandleTrace(func(l *Logger, _ reflect.Type, _ error, stack []byte) { gotStack = stack; l.Log("trace") }),
		}
		want := []Arity{ArityNone, ArityType, ArityValue, ArityTrace}

		for i, h := range handlers {
			assert.Equal(t, want[i], h.Arity())

			rec := NewRecorder()
			l := New(rec, "Handled")
			l.OnCondition(MatchAny(func() bool { return true }), h)
			assert.Panics(t, func() {
				_ = l.Run(func() error { panic(boom) })
			})
			require.Len(t, rec.Messages(), 2)
		}

		assert.Equal(t, reflect.TypeOf(boom), gotType)
		assert.Same(t, boom, gotErr)
		assert.NotEmpty(t, gotStack)
	})
}

func TestConditionNilFailure(t *testing.T) {
	called := false
	l := New(NewRecorder(), "Nil")
	l.OnCondition(MatchAny(func() bool { called = true; return true }), Suffix("NEVER"))

	assert.False(t, l.match(Failure{}))
	assert.False(t, called)
	assert.Equal(t, -1, l.Matched())

	// shortcut matchers are safe to call speculatively
	assert.False(t, Is(errValue, "X").Match.Match(Failure{}))
	assert.False(t, As[error]("X").Match.Match(Failure{}))
}

func TestNewFailure(t *testing.T) {
	assert.Equal(t, Failure{}, newFailure(nil, []byte("ignored")))

	f := newFailure(errValue, nil)
	assert.Equal(t, reflect.TypeOf(errValue), f.Type)
	assert.True(t, errors.Is(f.Err, errValue))
	assert.Nil(t, f.Stack)
}
