package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestStripper_RemovesEscapes(t *testing.T) {
	t.Parallel()
	s := NewStripper()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "editor", "editor"},
		{"color", "\x1b[31mred\x1b[0m", "red"},
		{"cursor", "a\x1b[2Jb", "ab"},
		{"title", "\x1b]0;pwned\x07name", "name"},
		{"hyperlink", "\x1b]8;;http://x\x1b\\link", "link"},
		{"bell and backspace", "a\x07\x08b", "ab"},
		{"keeps newline and tab", "a\tb\nc", "a\tb\nc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Strip(tt.input); got != tt.want {
				t.Errorf("Strip(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStripper_AddPattern(t *testing.T) {
	t.Parallel()
	s := NewStripper()
	if err := s.AddPattern(`secret`); err != nil {
		t.Fatalf("AddPattern: %v", err)
	}
	if got := s.Strip("a secret b"); got != "a  b" {
		t.Errorf("got %q", got)
	}
	if err := s.AddPattern(`(`); err == nil {
		t.Error("expected error for invalid pattern")
	}
}

func TestNew_JSONFormat(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := New(Config{Level: "debug", Format: "json", Output: &buf})

	logger.WithContainer("c1").WithView("\x1b[1mleft").Debug("resized", "size", 40)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if entry["container_id"] != "c1" {
		t.Errorf("container_id = %v", entry["container_id"])
	}
	if entry["view"] != "left" {
		t.Errorf("view = %v, want escapes stripped", entry["view"])
	}
	if entry["size"] != float64(40) {
		t.Errorf("size = %v", entry["size"])
	}
}

func TestNew_TextFormatRespectsLevel(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := New(Config{Level: "warn", Format: "text", Output: &buf})

	logger.Info("hidden")
	logger.Warn("shown", "free", -20)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info should be filtered: %s", out)
	}
	if !strings.Contains(out, "free=-20") {
		t.Errorf("missing attr: %s", out)
	}
}

func TestNew_AutoFormatFallsBackToJSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	New(Config{Output: &buf}).Info("hello")

	if !strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Errorf("expected json for non-terminal output, got %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if ValidLevel("bogus") || !ValidLevel("Warning") {
		t.Error("ValidLevel mismatch")
	}
}

func TestPrettyHandler(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, slog.LevelInfo)
	logger := slog.New(h).With("container_id", "c1").WithGroup("drag")

	logger.Debug("skipped")
	logger.Warn("moved", "delta", 3)

	out := buf.String()
	if strings.Contains(out, "skipped") {
		t.Errorf("debug should be filtered: %s", out)
	}
	for _, want := range []string{"WRN", "moved", "container_id", "drag.delta", "=3"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestPrettyHandler_WithGroupDoesNotAlias(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	base := NewPrettyHandler(&buf, slog.LevelInfo).WithGroup("a")
	_ = base.WithGroup("b")
	slog.New(base.WithGroup("c")).Info("x", "k", 1)

	if !strings.Contains(buf.String(), "a.c.k") {
		t.Errorf("got %q", buf.String())
	}
}

func TestNewNop(t *testing.T) {
	t.Parallel()
	logger := NewNop()
	logger.Info("discarded")
	if logger.Slog() == nil {
		t.Fatal("nil slog logger")
	}
	if logger.WithComponent("tui").With("k", "v") == nil {
		t.Fatal("nil derived logger")
	}
}
