package stacklog

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSinkFunc(t *testing.T) {
	var got []string
	sink := SinkFunc(func(msg string, args ...any) {
		got = append(got, msg)
		assert.Equal(t, []any{"attempt", 1}, args)
	})

	_ = New(sink, "Func", "attempt", 1).Run(func() error { return nil })

	assert.Equal(t, []string{"Func...", "Func...DONE"}, got)
}

func TestSlogSink(t *testing.T) {
	t.Run("writes at level with attributes", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.Attr{}
				}
				return a
			},
		}))

		err := New(SlogSink(logger, slog.LevelWarn), "Migrating", "table", "users").Run(func() error { return nil })
		require.NoError(t, err)

		assert.Equal(t,
			"level=WARN msg=Migrating... table=users\n"+
				"level=WARN msg=Migrating...DONE table=users\n",
			buf.String())
	})

	t.Run("respects handler level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError}))

		_ = New(SlogSink(logger, slog.LevelInfo), "Quiet").Run(func() error { return nil })

		assert.Empty(t, buf.String())
	})
}
