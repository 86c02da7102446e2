package stacklog

import (
	"context"
	"log/slog"
)

// Sink receives composed lines. Args are the extra arguments given to New.
type Sink interface {
	Log(msg string, args ...any)
}

// SinkFunc adapts a function such as slog.Info to Sink.
type SinkFunc func(msg string, args ...any)

// Log implements Sink.
func (f SinkFunc) Log(msg string, args ...any) {
	f(msg, args...)
}

// SlogSink returns a Sink logging at level through logger.
// Extra arguments become attributes, following slog's key/value rules.
func SlogSink(logger *slog.Logger, level slog.Level) Sink {
	return &slogSink{logger: logger, level: level}
}

type slogSink struct {
	logger *slog.Logger
	level  slog.Level
}

func (s *slogSink) Log(msg string, args ...any) {
	s.logger.Log(context.Background(), s.level, msg, args...)
}
