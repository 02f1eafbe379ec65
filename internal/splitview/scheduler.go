package splitview

import (
	"sort"
	"sync"
	"time"
)

// FrameScheduler runs a callback once on the next frame, like a browser's
// animation-frame request. The container re-requests a frame from inside
// every callback while it is mounted.
type FrameScheduler interface {
	RequestFrame(fn func()) (cancel func())
}

// DefaultFrameInterval approximates one frame at 60Hz.
const DefaultFrameInterval = 16 * time.Millisecond

// TickerScheduler schedules frames on a fixed interval using timers.
type TickerScheduler struct {
	Interval time.Duration
}

// RequestFrame implements FrameScheduler.
func (s TickerScheduler) RequestFrame(fn func()) func() {
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	t := time.AfterFunc(interval, fn)
	return func() { t.Stop() }
}

// ManualScheduler only runs frames when Advance is called. Hosts that
// already own a render loop use it to drive polling from their own tick.
type ManualScheduler struct {
	mu      sync.Mutex
	nextID  int
	pending map[int]func()
}

// NewManualScheduler creates an idle manual scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{pending: make(map[int]func())}
}

// RequestFrame implements FrameScheduler.
func (s *ManualScheduler) RequestFrame(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.pending[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.pending, id)
	}
}

// Advance runs every callback requested before the call, in request order.
// Callbacks requested while advancing wait for the next Advance.
func (s *ManualScheduler) Advance() {
	s.mu.Lock()
	ids := make([]int, 0, len(s.pending))
	for id := range s.pending {
		ids = append(ids, id)
	}
	fns := make([]func(), 0, len(ids))
	sort.Ints(ids)
	for _, id := range ids {
		fns = append(fns, s.pending[id])
		delete(s.pending, id)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Pending returns the number of frames waiting to run.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
