package log

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { _ = SetLevel("info") })

	tests := []struct {
		in      string
		want    log.Level
		wantErr bool
	}{
		{in: "debug", want: log.DebugLevel},
		{in: "warn", want: log.WarnLevel},
		{in: "error", want: log.ErrorLevel},
		{in: "info", want: log.InfoLevel},
		{in: "verbose", want: log.InfoLevel, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			err := SetLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, Level())
		})
	}
}

func TestFromContext(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))

	l := New("test")
	ctx := IntoContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
}

func TestSubLoggerPrefix(t *testing.T) {
	sub := SubLogger(New("dashboard"), "events")

	cl, ok := sub.Handler().(*log.Logger)
	require.True(t, ok)
	assert.Equal(t, "dashboard/events", cl.GetPrefix())

	bare := SubLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), "events")
	cl, ok = bare.Handler().(*log.Logger)
	require.True(t, ok)
	assert.Equal(t, "events", cl.GetPrefix())
}

func TestHandlerRespectsLevel(t *testing.T) {
	require.NoError(t, SetLevel("warn"))
	t.Cleanup(func() { _ = SetLevel("info") })

	var buf bytes.Buffer
	l := slog.New(newHandler(&buf, "test"))

	l.Info("hidden")
	assert.Empty(t, buf.String())

	l.Warn("shown", "key", "value")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "key=value")
}
