package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents the output mode.
type OutputMode int

const (
	// ModeTUI runs the interactive bubbletea program.
	ModeTUI OutputMode = iota

	// ModePlain prints the layout as text and keeps the container headless.
	ModePlain

	// ModeJSON prints the layout as JSON.
	ModeJSON
)

// String returns the string representation of the output mode.
func (m OutputMode) String() string {
	switch m {
	case ModeTUI:
		return "tui"
	case ModePlain:
		return "plain"
	case ModeJSON:
		return "json"
	default:
		return "unknown"
	}
}

// Detector determines the appropriate output mode.
type Detector struct {
	forceMode *OutputMode
	getenv    func(string) string
	isTTY     func() bool
}

// NewDetector creates a detector reading the process environment and
// stdout.
func NewDetector() *Detector {
	return &Detector{
		getenv: os.Getenv,
		isTTY:  func() bool { return term.IsTerminal(int(os.Stdout.Fd())) },
	}
}

// ForceMode forces a specific output mode.
func (d *Detector) ForceMode(mode OutputMode) *Detector {
	d.forceMode = &mode
	return d
}

// Detect determines the appropriate output mode.
func (d *Detector) Detect() OutputMode {
	if d.forceMode != nil {
		return *d.forceMode
	}

	if d.getenv("CI") != "" || d.getenv("GITHUB_ACTIONS") != "" {
		return ModePlain
	}

	if mode := d.getenv("SPLITVIEW_OUTPUT"); mode != "" {
		return ParseOutputMode(mode)
	}

	if !d.isTTY() {
		return ModePlain
	}

	return ModeTUI
}

// TerminalSize returns terminal dimensions.
func TerminalSize() (width, height int) {
	fd := int(os.Stdout.Fd())
	w, h, err := term.GetSize(fd)
	if err != nil {
		return 80, 24 // Default
	}
	return w, h
}

// ParseOutputMode parses an output mode from string.
func ParseOutputMode(s string) OutputMode {
	switch s {
	case "plain":
		return ModePlain
	case "json":
		return ModeJSON
	default:
		return ModeTUI
	}
}
