package tui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// LogHandler is a slog.Handler that turns records into LogMsg values for
// the status bar. Records are dropped when the model falls behind; it
// never blocks the caller, which may be the model itself.
type LogHandler struct {
	ch     chan LogMsg
	level  slog.Level
	attrs  []slog.Attr
	groups []string
}

// NewLogHandler creates a handler for records at level and above.
func NewLogHandler(level slog.Level) *LogHandler {
	return &LogHandler{
		ch:    make(chan LogMsg, 64),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *LogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle queues the record as a LogMsg.
func (h *LogHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Message)

	for _, a := range h.attrs {
		b.WriteString(" " + a.Key + "=" + a.Value.String())
	}
	r.Attrs(func(a slog.Attr) bool {
		b.WriteString(" " + h.qualify(a.Key) + "=" + a.Value.String())
		return true
	})

	msg := LogMsg{Time: r.Time, Level: levelToString(r.Level), Message: b.String()}
	if msg.Time.IsZero() {
		msg.Time = time.Now()
	}
	select {
	case h.ch <- msg:
	default:
	}
	return nil
}

// WithAttrs returns a new Handler with the given attributes added. Keys
// are qualified with the groups open at the time of the call.
func (h *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append([]slog.Attr{}, h.attrs...)
	for _, a := range attrs {
		clone.attrs = append(clone.attrs, slog.Attr{Key: h.qualify(a.Key), Value: a.Value})
	}
	return &clone
}

func (h *LogHandler) qualify(key string) string {
	if len(h.groups) == 0 {
		return key
	}
	return strings.Join(h.groups, ".") + "." + key
}

// WithGroup returns a new Handler with the given group appended.
func (h *LogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}

// Messages returns the queued log messages.
func (h *LogHandler) Messages() <-chan LogMsg {
	return h.ch
}

func waitForLog(ch <-chan LogMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func levelToString(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "error"
	case level >= slog.LevelWarn:
		return "warn"
	case level >= slog.LevelInfo:
		return "info"
	default:
		return "debug"
	}
}
