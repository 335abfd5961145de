package common

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerDefaultsToSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() = nil, want a logger")
	}
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger is enabled, want silent")
	}
}

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	Logger().Info("surface configured", "width", 800)

	out := buf.String()
	if !strings.Contains(out, "surface configured") || !strings.Contains(out, "width=800") {
		t.Errorf("log output = %q, want the message and attribute", out)
	}
}

func TestSetLoggerNilRestoresSilence(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	SetLogger(nil)

	Logger().Error("should be dropped")
	if buf.Len() != 0 {
		t.Errorf("log output after SetLogger(nil) = %q, want empty", buf.String())
	}
}

func TestNopHandlerPropagates(t *testing.T) {
	h := nopHandler{}.WithAttrs([]slog.Attr{slog.String("k", "v")}).WithGroup("g")
	if h.Enabled(context.Background(), slog.LevelError) {
		t.Error("derived nop handler is enabled, want disabled")
	}
}
