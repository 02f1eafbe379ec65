package tui

import (
	"sync/atomic"

	"github.com/hugo-lorenzo-mato/splitview/internal/splitview"
)

// Host is the pane area of the terminal. The model sets it from window
// size messages and the container reads it once per frame.
type Host struct {
	width  atomic.Int64
	height atomic.Int64
}

// NewHost creates a host of the given size.
func NewHost(width, height int) *Host {
	h := &Host{}
	h.Set(width, height)
	return h
}

// Size implements splitview.Host.
func (h *Host) Size() splitview.Size {
	return splitview.Size{Width: int(h.width.Load()), Height: int(h.height.Load())}
}

// Set updates the host size. Negative values are stored as zero.
func (h *Host) Set(width, height int) {
	h.width.Store(int64(max(width, 0)))
	h.height.Store(int64(max(height, 0)))
}
