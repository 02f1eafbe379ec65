// Package clip copies text out of the terminal UI: the system clipboard
// when reachable, the terminal's OSC52 clipboard otherwise, and a temp
// file as the last resort.
package clip

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	atotto "github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
	"golang.org/x/term"
)

// Method is the mechanism that made the text available.
type Method string

const (
	MethodNative Method = "native" // system clipboard
	MethodOSC52  Method = "osc52"  // terminal clipboard escape sequence
	MethodFile   Method = "file"   // temp file fallback
)

// Result reports how the text was copied.
type Result struct {
	Method   Method
	FilePath string // only set when Method == MethodFile
}

func (r Result) String() string {
	if r.Method == MethodFile {
		return "saved to " + r.FilePath
	}
	return "copied (" + string(r.Method) + ")"
}

// osc52LimitBytes is a conservative default; terminals can have strict limits.
const osc52LimitBytes = 100_000

// Clipboard tries each method in turn.
type Clipboard struct {
	// Native writes to the system clipboard.
	Native func(string) error
	// Terminal receives OSC52 sequences. Stderr keeps them away from the
	// bubbletea renderer on stdout.
	Terminal io.Writer
	// IsTerminal reports whether Terminal is attached to a TTY.
	IsTerminal func(io.Writer) bool
	// TempDir hosts fallback files; empty uses os.TempDir.
	TempDir string
	// Getenv reads TMUX and STY to wrap OSC52 for multiplexers.
	Getenv func(string) string
}

// New returns a clipboard wired to the process environment.
func New() *Clipboard {
	return &Clipboard{
		Native:     atotto.WriteAll,
		Terminal:   os.Stderr,
		IsTerminal: isTTY,
		Getenv:     os.Getenv,
	}
}

func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Copy makes text available, preferring the system clipboard.
func (c *Clipboard) Copy(text string) (Result, error) {
	if c.Native != nil {
		if err := c.Native(text); err == nil {
			return Result{Method: MethodNative}, nil
		}
	}
	if err := c.writeOSC52(text); err == nil {
		return Result{Method: MethodOSC52}, nil
	}

	path, err := c.writeTempFile(text)
	if err != nil {
		return Result{}, fmt.Errorf("copying %d bytes: %w", len(text), err)
	}
	return Result{Method: MethodFile, FilePath: path}, nil
}

func (c *Clipboard) writeOSC52(text string) error {
	switch {
	case text == "":
		return errors.New("empty clipboard text")
	case c.Terminal == nil || c.IsTerminal == nil || !c.IsTerminal(c.Terminal):
		return errors.New("no terminal for OSC52")
	case len(text) > osc52LimitBytes:
		return fmt.Errorf("text too large for OSC52 (%d bytes > %d)", len(text), osc52LimitBytes)
	}

	seq := osc52.New(text).Limit(osc52LimitBytes)
	if c.Getenv != nil {
		if c.Getenv("TMUX") != "" {
			seq = seq.Tmux()
		} else if c.Getenv("STY") != "" {
			seq = seq.Screen()
		}
	}
	_, err := seq.WriteTo(c.Terminal)
	return err
}

func (c *Clipboard) writeTempFile(text string) (path string, err error) {
	f, err := os.CreateTemp(c.TempDir, "splitview-layout-*.txt")
	if err != nil {
		return "", err
	}
	path = f.Name()
	defer func() {
		_ = f.Close()
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	if _, err = f.WriteString(text); err != nil {
		return "", err
	}
	if err = f.Close(); err != nil {
		return "", err
	}
	return filepath.Clean(path), nil
}
