package events

import (
	"sync"
	"testing"
	"time"
)

func receive(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for event")
		return nil
	}
}

func TestEventBus_Subscribe(t *testing.T) {
	bus := New(10)
	defer bus.Close()

	ch := bus.Subscribe()
	bus.Publish(NewViewSizeChangedEvent("c-1", "v-1", "left", 40))

	received := receive(t, ch)
	if received.EventType() != TypeViewSizeChanged {
		t.Errorf("expected %s, got %s", TypeViewSizeChanged, received.EventType())
	}
	if received.ContainerID() != "c-1" {
		t.Errorf("expected c-1, got %s", received.ContainerID())
	}
	if received.Timestamp().IsZero() {
		t.Error("timestamp not set")
	}
	if ev, ok := received.(ViewSizeChangedEvent); !ok || ev.Size != 40 || ev.ViewName != "left" {
		t.Errorf("unexpected payload %#v", received)
	}
}

func TestEventBus_SubscribeByType(t *testing.T) {
	bus := New(10)
	defer bus.Close()

	resizeCh := bus.Subscribe(TypeContainerSizeChanged)
	allCh := bus.Subscribe()

	bus.Publish(NewViewSizeChangedEvent("c-1", "v-1", "", 10))
	bus.Publish(NewContainerSizeChangedEvent("c-1", 80))

	receive(t, allCh)
	receive(t, allCh)

	if got := receive(t, resizeCh).EventType(); got != TypeContainerSizeChanged {
		t.Errorf("expected container_size_changed, got %s", got)
	}
	select {
	case ev := <-resizeCh:
		t.Errorf("unexpected event %s", ev.EventType())
	default:
	}
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := New(10)
	defer bus.Close()

	ch := bus.Subscribe()
	bus.Unsubscribe(ch)

	if _, ok := <-ch; ok {
		t.Error("channel should be closed after unsubscribe")
	}
	bus.Publish(NewContainerSizeChangedEvent("c-1", 80))
}

func TestEventBus_DropsOldestWhenFull(t *testing.T) {
	bus := New(2)
	defer bus.Close()

	ch := bus.Subscribe()
	for size := 1; size <= 4; size++ {
		bus.Publish(NewContainerSizeChangedEvent("c-1", size))
	}

	if bus.DroppedCount() != 2 {
		t.Errorf("DroppedCount() = %d, want 2", bus.DroppedCount())
	}
	first := receive(t, ch).(ContainerSizeChangedEvent)
	second := receive(t, ch).(ContainerSizeChangedEvent)
	if first.Size != 3 || second.Size != 4 {
		t.Errorf("kept sizes %d, %d; want 3, 4", first.Size, second.Size)
	}
}

func TestEventBus_PriorityNeverDrops(t *testing.T) {
	bus := New(1)
	defer bus.Close()

	prio := bus.SubscribePriority(TypeResetRequested)
	const n = 120

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			bus.PublishPriority(NewResetRequestedEvent("c-1", "v", ""))
		}
	}()

	for i := 0; i < n; i++ {
		receive(t, prio)
	}
	wg.Wait()
}

func TestEventBus_Close(t *testing.T) {
	bus := New(10)
	ch := bus.Subscribe()
	prio := bus.SubscribePriority()

	bus.Close()
	bus.Close()

	if _, ok := <-ch; ok {
		t.Error("regular channel should be closed")
	}
	if _, ok := <-prio; ok {
		t.Error("priority channel should be closed")
	}

	bus.Publish(NewContainerSizeChangedEvent("c-1", 1))
	if _, ok := <-bus.Subscribe(); ok {
		t.Error("subscribing to a closed bus should return a closed channel")
	}
}
