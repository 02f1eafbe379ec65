package tui

import (
	"time"

	"github.com/hugo-lorenzo-mato/splitview/internal/clip"
)

// FrameMsg advances the container's frame scheduler.
type FrameMsg struct {
	Time time.Time
}

// ResetRequestedMsg asks the model to equalize every view.
type ResetRequestedMsg struct {
	ViewName string
}

// LayoutChangedMsg reports a size change made outside the model, for
// example through the HTTP API.
type LayoutChangedMsg struct {
	ViewName string
	Size     int
}

// ConfigReloadedMsg reports that the configuration file changed.
type ConfigReloadedMsg struct {
	Path string
}

// LogMsg carries a log record to the status bar.
type LogMsg struct {
	Time    time.Time
	Level   string
	Message string
}

// ClipboardMsg carries the outcome of a copy.
type ClipboardMsg struct {
	Result clip.Result
	Err    error
}
