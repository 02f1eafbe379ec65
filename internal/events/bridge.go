package events

import (
	"github.com/hugo-lorenzo-mato/splitview/internal/splitview"
)

// FromLayout converts a container notification into a bus event. It
// returns nil for kinds the bus does not carry.
func FromLayout(ev splitview.Event) Event {
	id := ev.Container.ID()
	switch ev.Kind {
	case splitview.EventViewSizeChange:
		return NewViewSizeChangedEvent(id, ev.View.ID(), ev.View.Name(), ev.Size)
	case splitview.EventContainerSizeChange:
		return NewContainerSizeChangedEvent(id, ev.Size)
	case splitview.EventRequestReset:
		return NewResetRequestedEvent(id, ev.View.ID(), ev.View.Name())
	default:
		return nil
	}
}

// Forward publishes every notification of c on bus until the returned
// function is called. Reset requests are published with priority so a
// slow consumer cannot lose them.
func Forward(c *splitview.Container, bus *EventBus) (stop func()) {
	return c.Subscribe(func(ev splitview.Event) {
		out := FromLayout(ev)
		if out == nil {
			return
		}
		if ev.Kind == splitview.EventRequestReset {
			bus.PublishPriority(out)
			return
		}
		bus.Publish(out)
	})
}
