package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/dasdy/gridfit/logging"
	"github.com/stretchr/testify/assert"
)

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(logging.ContextHandler{Handler: slog.NewTextHandler(buf, &slog.HandlerOptions{})})
}

func TestContextHandler(t *testing.T) {
	t.Run("adds package from context", func(t *testing.T) {
		var buf bytes.Buffer

		newLogger(&buf).InfoContext(logging.PackageCtx("watch"), "hello")

		assert.Contains(t, buf.String(), "package=watch")
	})

	t.Run("keeps wrapping after With", func(t *testing.T) {
		var buf bytes.Buffer

		ctx := logging.AppendCtx(logging.PackageCtx("db"), slog.Int("attempt", 2))
		newLogger(&buf).With("screen", "squad/overview").InfoContext(ctx, "hello")

		out := buf.String()
		assert.Contains(t, out, "screen=squad/overview")
		assert.Contains(t, out, "package=db")
		assert.Contains(t, out, "attempt=2")
	})

	t.Run("sibling contexts do not leak attributes", func(t *testing.T) {
		var buf bytes.Buffer

		parent := logging.AppendCtx(context.Background(), slog.String("a", "1"))
		parent = logging.AppendCtx(parent, slog.String("b", "2"))
		left := logging.AppendCtx(parent, slog.String("side", "left"))
		_ = logging.AppendCtx(parent, slog.String("side", "right"))

		newLogger(&buf).InfoContext(left, "hello")

		assert.Contains(t, buf.String(), "side=left")
		assert.NotContains(t, buf.String(), "side=right")
	})
}

func TestLevelFromEnv(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  slog.Level
	}{
		{"unset", "", slog.LevelInfo},
		{"debug", "debug", slog.LevelDebug},
		{"upper case", "WARN", slog.LevelWarn},
		{"garbage", "loud", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GRIDFIT_TEST_LEVEL", tt.value)

			assert.Equal(t, tt.want, logging.LevelFromEnv("GRIDFIT_TEST_LEVEL", slog.LevelInfo))
		})
	}
}
