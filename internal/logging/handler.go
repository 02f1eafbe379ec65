package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// StrippingHandler wraps another handler and strips control sequences
// from string attributes and the message.
type StrippingHandler struct {
	handler  slog.Handler
	stripper *Stripper
}

// NewStrippingHandler creates a new stripping handler.
func NewStrippingHandler(handler slog.Handler, stripper *Stripper) *StrippingHandler {
	return &StrippingHandler{handler: handler, stripper: stripper}
}

// Enabled reports whether the handler handles records at the given level.
func (h *StrippingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle strips the record and passes it to the underlying handler.
func (h *StrippingHandler) Handle(ctx context.Context, r slog.Record) error {
	out := slog.NewRecord(r.Time, r.Level, h.stripper.Strip(r.Message), r.PC)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.stripAttr(a))
		return true
	})
	return h.handler.Handle(ctx, out)
}

// WithAttrs returns a new handler with stripped attrs.
func (h *StrippingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	stripped := make([]slog.Attr, len(attrs))
	for i, attr := range attrs {
		stripped[i] = h.stripAttr(attr)
	}
	return &StrippingHandler{handler: h.handler.WithAttrs(stripped), stripper: h.stripper}
}

// WithGroup returns a new handler with a group.
func (h *StrippingHandler) WithGroup(name string) slog.Handler {
	return &StrippingHandler{handler: h.handler.WithGroup(name), stripper: h.stripper}
}

func (h *StrippingHandler) stripAttr(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		return slog.String(a.Key, h.stripper.Strip(a.Value.String()))
	case slog.KindGroup:
		attrs := a.Value.Group()
		stripped := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			stripped[i] = h.stripAttr(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(stripped...)}
	default:
		return a
	}
}

// PrettyHandler provides colorized console output for TTY.
type PrettyHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	level  slog.Level
	attrs  []slog.Attr
	groups []string
}

// NewPrettyHandler creates a new pretty handler.
func NewPrettyHandler(w io.Writer, level slog.Level) *PrettyHandler {
	return &PrettyHandler{mu: &sync.Mutex{}, w: w, level: level}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle formats and writes the log record.
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Time.Format("15:04:05"))
	b.WriteByte(' ')
	b.WriteString(formatLevel(r.Level))
	b.WriteByte(' ')
	b.WriteString(r.Message)

	for _, attr := range h.attrs {
		h.writeAttr(&b, attr)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&b, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

// WithAttrs returns a new handler with attrs.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &next
}

// WithGroup returns a new handler with a group.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	next := *h
	next.groups = append(append([]string(nil), h.groups...), name)
	return &next
}

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

func formatLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return colorRed + "ERR" + colorReset
	case level >= slog.LevelWarn:
		return colorYellow + "WRN" + colorReset
	case level >= slog.LevelInfo:
		return colorBlue + "INF" + colorReset
	default:
		return colorGray + "DBG" + colorReset
	}
}

func (h *PrettyHandler) writeAttr(b *strings.Builder, a slog.Attr) {
	if a.Value.Kind() == slog.KindGroup {
		for _, attr := range a.Value.Group() {
			h.writeAttr(b, attr)
		}
		return
	}

	key := a.Key
	if len(h.groups) > 0 {
		key = strings.Join(h.groups, ".") + "." + key
	}
	fmt.Fprintf(b, " %s%s%s=%v", colorCyan, key, colorReset, a.Value.Any())
}
