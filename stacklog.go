package stacklog

import (
	"context"
	"runtime/debug"
)

// Callback reacts to a lifecycle signal.
type Callback func(l *Logger)

// Logger fires lifecycle signals around one scope and logs them through a Sink.
// NOT safe for concurrent use.
//
//nolint:govet // Field order follows the lifecycle, not memory layout
type Logger struct {
	sink    Sink
	message string
	args    []any

	// BEGIN, SUCCESS and FAILURE hold one callback each.
	single map[Signal]Callback
	// ENTER and EXIT keep every callback in registration order.
	multi map[Signal][]Callback

	// Most recently registered first.
	conditions []Condition

	matched int
	failure Failure
}

// New creates a Logger that emits message through sink.
// Args are forwarded to the sink after the composed line on every emission.
func New(sink Sink, message string, args ...any) *Logger {
	l := &Logger{
		sink:    sink,
		message: message,
		args:    args,
		single:  make(map[Signal]Callback, 3),
		multi:   make(map[Signal][]Callback, 2),
		matched: -1,
	}

	l.OnBegin(begin)
	l.OnSuccess(succeed)
	l.OnFailure(fail)

	return l
}

// WithConditions registers conditions in order, so a later entry takes
// precedence over an earlier one when both match.
func (l *Logger) WithConditions(conditions ...Condition) *Logger {
	for _, c := range conditions {
		l.OnCondition(c.Match, c.Handle)
	}
	return l
}

// Message returns the base text of every emitted line.
func (l *Logger) Message() string {
	return l.message
}

// Log emits message + Separator + suffix through the sink.
func (l *Logger) Log(suffix string) {
	if l.sink == nil {
		panic(ErrNilSink)
	}
	l.sink.Log(l.message+Separator+suffix, l.args...)
}

// On registers cb for signal. ENTER and EXIT callbacks accumulate;
// any other signal keeps only the latest callback. Unknown signals are ignored.
func (l *Logger) On(signal Signal, cb Callback) {
	if cb == nil || !signal.valid() {
		return
	}
	if signal.accumulates() {
		l.multi[signal] = append(l.multi[signal], cb)
		return
	}
	l.single[signal] = cb
}

// OnBegin replaces the callback fired when the scope begins.
func (l *Logger) OnBegin(cb Callback) { l.On(SignalBegin, cb) }

// OnSuccess replaces the callback fired when the scope ends without failure.
func (l *Logger) OnSuccess(cb Callback) { l.On(SignalSuccess, cb) }

// OnFailure replaces the callback fired when no condition matches a failure.
func (l *Logger) OnFailure(cb Callback) { l.On(SignalFailure, cb) }

// OnEnter adds a callback fired before BEGIN.
func (l *Logger) OnEnter(cb Callback) { l.On(SignalEnter, cb) }

// OnExit adds a callback fired before the outcome is evaluated.
func (l *Logger) OnExit(cb Callback) { l.On(SignalExit, cb) }

// OnCondition registers a condition ahead of all existing ones.
func (l *Logger) OnCondition(match Matcher, handle Handler) {
	if match == nil || handle == nil {
		return
	}
	l.conditions = append([]Condition{{Match: match, Handle: handle}}, l.conditions...)
}

// Matched returns the index of the condition that handled the last failure,
// counting from the most recently registered, or -1.
func (l *Logger) Matched() int {
	return l.matched
}

// Err returns the failure being evaluated. Set before EXIT callbacks fire.
func (l *Logger) Err() error {
	return l.failure.Err
}

// Enter opens the scope: ENTER callbacks fire in order, then BEGIN.
func (l *Logger) Enter() *Logger {
	l.matched = -1
	l.failure = Failure{}

	l.signal(SignalEnter)
	l.signal(SignalBegin)
	return l
}

// Exit closes the scope with err and returns err unchanged.
func (l *Logger) Exit(err error) error {
	l.exit(newFailure(err, nil))
	return err
}

// Close is the deferred form of Exit. It reads the scope's error from errp
// and observes panics, which are re-raised after logging.
func (l *Logger) Close(errp *error) {
	if r := recover(); r != nil {
		err, ok := r.(error)
		if !ok {
			err = &PanicError{Value: r}
		}
		l.exit(newFailure(err, debug.Stack()))
		panic(r)
	}

	var err error
	if errp != nil {
		err = *errp
	}
	l.exit(newFailure(err, nil))
}

// Run executes fn as one scope and returns its error.
func (l *Logger) Run(fn func() error) (err error) {
	defer l.Enter().Close(&err)
	return fn()
}

// RunContext executes fn as one scope and returns its error.
func (l *Logger) RunContext(ctx context.Context, fn func(context.Context) error) (err error) {
	defer l.Enter().Close(&err)
	return fn(ctx)
}

// Wrap returns fn with every call logged as a scope.
func (l *Logger) Wrap(fn func() error) func() error {
	return func() error {
		return l.Run(fn)
	}
}

// WrapContext returns fn with every call logged as a scope.
func (l *Logger) WrapContext(fn func(context.Context) error) func(context.Context) error {
	return func(ctx context.Context) error {
		return l.RunContext(ctx, fn)
	}
}

// WrapFunc returns fn with every call logged as a scope.
func WrapFunc[T any](l *Logger, fn func() (T, error)) func() (T, error) {
	return func() (result T, err error) {
		defer l.Enter().Close(&err)
		return fn()
	}
}

func (l *Logger) exit(f Failure) {
	l.failure = f
	l.signal(SignalExit)

	switch {
	case f.Err == nil:
		l.signal(SignalSuccess)
	case l.match(f):
		l.conditions[l.matched].Handle.Handle(l, f)
	default:
		l.signal(SignalFailure)
	}
}

// match records the first condition accepting f. A failure without a type never matches.
func (l *Logger) match(f Failure) bool {
	if f.Type == nil {
		return false
	}
	for i, c := range l.conditions {
		if c.Match.Match(f) {
			l.matched = i
			return true
		}
	}
	return false
}

func (l *Logger) signal(signal Signal) {
	if signal.accumulates() {
		for _, cb := range l.multi[signal] {
			cb(l)
		}
		return
	}
	if cb := l.single[signal]; cb != nil {
		cb(l)
	}
}

func begin(l *Logger) {
	l.Log("")
}

func succeed(l *Logger) {
	l.Log(SuffixDone)
}

func fail(l *Logger) {
	l.Log(SuffixFailure)
}
