package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hugo-lorenzo-mato/splitview/internal/events"
)

// EventBusAdapter bridges EventBus events to Bubbletea messages.
type EventBusAdapter struct {
	bus        *events.EventBus
	eventCh    <-chan events.Event
	priorityCh <-chan events.Event
	msgCh      chan tea.Msg
	closeCh    chan struct{}
	mu         sync.Mutex
	closed     bool
}

// NewEventBusAdapter creates a new adapter.
func NewEventBusAdapter(bus *events.EventBus) *EventBusAdapter {
	adapter := &EventBusAdapter{
		bus: bus,
		eventCh: bus.Subscribe(
			events.TypeViewSizeChanged,
			events.TypeConfigReloaded,
		),
		priorityCh: bus.SubscribePriority(events.TypeResetRequested),
		msgCh:      make(chan tea.Msg, 100),
		closeCh:    make(chan struct{}),
	}

	go adapter.run()
	return adapter
}

// MsgChannel returns the channel for Bubbletea to read from.
func (a *EventBusAdapter) MsgChannel() <-chan tea.Msg {
	return a.msgCh
}

// Close shuts down the adapter and releases its subscriptions.
func (a *EventBusAdapter) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return
	}
	a.closed = true
	close(a.closeCh)
	a.bus.Unsubscribe(a.eventCh)
	a.bus.Unsubscribe(a.priorityCh)
}

func (a *EventBusAdapter) run() {
	defer close(a.msgCh)
	for {
		select {
		case <-a.closeCh:
			return

		case event, ok := <-a.priorityCh:
			if !ok {
				return
			}
			// Reset requests must reach the model.
			if msg := eventToMsg(event); msg != nil {
				select {
				case a.msgCh <- msg:
				case <-a.closeCh:
					return
				}
			}

		case event, ok := <-a.eventCh:
			if !ok {
				return
			}
			a.sendMsg(eventToMsg(event))
		}
	}
}

// sendMsg sends a message to the channel without blocking.
func (a *EventBusAdapter) sendMsg(msg tea.Msg) {
	if msg == nil {
		return
	}
	select {
	case a.msgCh <- msg:
	default:
		// Drop if full; the next frame redraws anyway.
	}
}

func eventToMsg(event events.Event) tea.Msg {
	switch e := event.(type) {
	case events.ResetRequestedEvent:
		return ResetRequestedMsg{ViewName: e.ViewName}
	case events.ViewSizeChangedEvent:
		return LayoutChangedMsg{ViewName: e.ViewName, Size: e.Size}
	case events.ConfigReloadedEvent:
		return ConfigReloadedMsg{Path: e.ConfigPath}
	default:
		return nil
	}
}

// waitForEventBusUpdate waits for the next message from the adapter.
func waitForEventBusUpdate(a *EventBusAdapter) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-a.MsgChannel()
		if !ok {
			return nil
		}
		return msg
	}
}
