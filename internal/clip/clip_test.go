package clip

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
)

func failing(string) error { return errors.New("unavailable") }

func TestCopy_Native(t *testing.T) {
	var got string
	c := &Clipboard{Native: func(s string) error { got = s; return nil }}

	res, err := c.Copy("left=40 right=60")
	if err != nil {
		t.Fatalf("Copy() error = %v", err)
	}
	if res.Method != MethodNative || got != "left=40 right=60" {
		t.Errorf("res = %+v, got %q", res, got)
	}
	if res.String() != "copied (native)" {
		t.Errorf("String() = %q", res.String())
	}
}

func TestCopy_OSC52(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"plain", nil, "\x1b]52;c;"},
		{"tmux", map[string]string{"TMUX": "1"}, "\x1bPtmux;"},
		{"screen", map[string]string{"STY": "1"}, "\x1bP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			c := &Clipboard{
				Native:     failing,
				Terminal:   &buf,
				IsTerminal: func(io.Writer) bool { return true },
				Getenv:     func(k string) string { return tt.env[k] },
			}

			res, err := c.Copy("sizes")
			if err != nil {
				t.Fatalf("Copy() error = %v", err)
			}
			if res.Method != MethodOSC52 {
				t.Fatalf("Method = %q, want osc52", res.Method)
			}
			if !strings.HasPrefix(buf.String(), tt.want) {
				t.Errorf("sequence %q does not start with %q", buf.String(), tt.want)
			}
		})
	}
}

func TestCopy_FileFallback(t *testing.T) {
	dir := t.TempDir()
	c := &Clipboard{
		Native:     failing,
		Terminal:   io.Discard,
		IsTerminal: func(io.Writer) bool { return false },
		TempDir:    dir,
	}

	res, err := c.Copy("fallback content")
	if err != nil {
		t.Fatalf("Copy() error = %v", err)
	}
	if res.Method != MethodFile || !strings.HasPrefix(res.FilePath, dir) {
		t.Fatalf("res = %+v", res)
	}
	data, err := os.ReadFile(res.FilePath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "fallback content" {
		t.Errorf("file content = %q", data)
	}
	if !strings.HasPrefix(res.String(), "saved to ") {
		t.Errorf("String() = %q", res.String())
	}
}

func TestCopy_OSC52Limits(t *testing.T) {
	var buf bytes.Buffer
	c := &Clipboard{
		Terminal:   &buf,
		IsTerminal: func(io.Writer) bool { return true },
		TempDir:    t.TempDir(),
	}

	res, err := c.Copy(strings.Repeat("x", osc52LimitBytes+1))
	if err != nil {
		t.Fatal(err)
	}
	if res.Method != MethodFile || buf.Len() != 0 {
		t.Errorf("oversized text should fall back to a file, got %+v", res)
	}

	res, err = c.Copy("")
	if err != nil {
		t.Fatal(err)
	}
	if res.Method != MethodFile {
		t.Errorf("empty text should skip OSC52, got %+v", res)
	}
}

func TestCopy_AllFail(t *testing.T) {
	c := &Clipboard{Native: failing, TempDir: "/nonexistent/splitview"}
	if _, err := c.Copy("x"); err == nil {
		t.Fatal("expected error when every method fails")
	}
}

func TestNew(t *testing.T) {
	c := New()
	if c.Native == nil || c.Terminal != os.Stderr || c.IsTerminal == nil || c.Getenv == nil {
		t.Errorf("New() = %+v", c)
	}
	if isTTY(&bytes.Buffer{}) {
		t.Error("buffer is not a tty")
	}
}
