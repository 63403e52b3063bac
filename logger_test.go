package cogwheel

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/cogwheel/lsystem"
)

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger should not be enabled for %v", level)
		}
	}
}

func TestSetLoggerNilRestoresSilent(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	SetLogger(slog.Default())
	SetLogger(nil)

	l := Logger()
	if l == nil {
		t.Fatal("SetLogger(nil) should set nop logger, not nil")
	}
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should produce a disabled logger")
	}
}

func TestSetLoggerReachesSubpackages(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	// A runaway grammar is reported by lsystem at error level.
	rt := lsystem.NewRuleTable()
	rt.MaxPasses = 2
	rt.Add(lsystem.Cylinder, lsystem.Rule{
		Condition:  lsystem.Condition{Op: lsystem.OpGreater, Remaining: -1e9},
		Successors: []lsystem.Successor{{Kind: lsystem.PlainRing}},
	})
	gen := New(WithRules(rt), WithSeed(1))
	if _, err := gen.Expand(CylinderGear(GearSpec{OuterRadius: 1, Teeth: 3})); err == nil {
		t.Fatal("expected fixpoint error")
	}
	if out := buf.String(); !strings.Contains(out, "level=ERROR") || !strings.Contains(out, "fixpoint") {
		t.Errorf("log output = %q", out)
	}
}
