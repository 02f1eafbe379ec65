package splitview

// EventKind names a container notification.
type EventKind string

const (
	// EventViewSizeChange fires for every view whose size changed in a
	// committed operation.
	EventViewSizeChange EventKind = "view-size-change"
	// EventContainerSizeChange fires when the host size changed between two
	// frames and the views were redistributed.
	EventContainerSizeChange EventKind = "container-size-change"
	// EventRequestReset fires when a handle asks the host to reset sizes
	// (a double-click in pointer-driven hosts).
	EventRequestReset EventKind = "request-reset"
)

// Event is the payload delivered to listeners.
type Event struct {
	Kind      EventKind
	Container *Container
	// View is the affected view; nil for container-size-change.
	View *View
	// Size is the new view size, or the host size along the main axis for
	// container-size-change.
	Size int
}

// Listener receives container events.
type Listener func(Event)

type subscription struct {
	id       int
	kinds    map[EventKind]bool // empty means all kinds
	listener Listener
}

func (s subscription) wants(kind EventKind) bool {
	return len(s.kinds) == 0 || s.kinds[kind]
}

// Subscribe registers l for the given kinds, or for every kind when none
// are given. The returned function removes the subscription; calling it
// more than once is harmless.
func (c *Container) Subscribe(l Listener, kinds ...EventKind) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextSubID++
	sub := subscription{
		id:       c.nextSubID,
		kinds:    make(map[EventKind]bool, len(kinds)),
		listener: l,
	}
	for _, k := range kinds {
		sub.kinds[k] = true
	}
	c.subs = append(c.subs, sub)

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, s := range c.subs {
			if s.id == sub.id {
				c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

func dispatch(subs []subscription, events []Event) {
	for _, ev := range events {
		for _, s := range subs {
			if s.wants(ev.Kind) {
				s.listener(ev)
			}
		}
	}
}
