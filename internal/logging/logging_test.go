package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNopHandler(t *testing.T) {
	h := nopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(context.Background(), level) {
			t.Errorf("nopHandler.Enabled(%v) = true, want false", level)
		}
	}
	if err := h.Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("nopHandler.Handle() = %v, want nil", err)
	}
	if _, ok := h.WithAttrs([]slog.Attr{slog.String("k", "v")}).(nopHandler); !ok {
		t.Error("WithAttrs should return nopHandler")
	}
	if _, ok := h.WithGroup("g").(nopHandler); !ok {
		t.Error("WithGroup should return nopHandler")
	}
}

func TestDefaultSilent(t *testing.T) {
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should be disabled")
	}
}

func TestSet(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { Set(orig) })

	var buf bytes.Buffer
	Set(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	Logger().Debug("expand", "passes", 3)
	if !strings.Contains(buf.String(), "passes=3") {
		t.Errorf("log output = %q, want passes=3", buf.String())
	}

	Set(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("Set(nil) should restore the silent logger")
	}
}
