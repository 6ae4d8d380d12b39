package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, json := range []bool{false, true} {
		l, err := New(json, true)
		if err != nil {
			t.Fatalf("New(%v) error: %v", json, err)
		}
		if !l.Core().Enabled(zapcore.DebugLevel) {
			t.Errorf("New(%v, true) should enable debug", json)
		}
	}

	l, err := New(false, false)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if l.Core().Enabled(zapcore.DebugLevel) {
		t.Error("New(false, false) should not enable debug")
	}
}

func TestWithFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	l := zap.New(core)

	WithFields(l, zap.String(FieldProgramID, "wohngeld")).Info("evaluated")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()[FieldProgramID]; got != "wohngeld" {
		t.Fatalf("program_id = %v, want wohngeld", got)
	}

	if WithFields(nil, zap.String("a", "b")) == nil {
		t.Fatal("expected fallback logger when nil provided")
	}
	if OrNop(nil) == nil {
		t.Fatal("expected no-op logger")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"  Wohngeld  ", 20, "Wohngeld"},
		{"Kinderzuschlag", 6, "Kinder..."},
		{"Bürgergeld", 3, "Bür..."},
		{"x", 0, ""},
	}

	for _, tt := range tests {
		if got := Truncate(tt.in, tt.limit); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}
