package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugo-lorenzo-mato/splitview/internal/splitview"
)

func mountedContainer(t *testing.T, width int, names ...string) (*splitview.Container, *splitview.ManualScheduler) {
	t.Helper()
	sched := splitview.NewManualScheduler()
	size := splitview.Size{Width: width, Height: 10}
	c := splitview.New(splitview.WithScheduler(sched))
	require.NoError(t, c.Mount(splitview.HostFunc(func() splitview.Size { return size })))
	t.Cleanup(c.Destroy)

	for _, name := range names {
		v, err := c.CreateView(splitview.WithName(name), splitview.WithMin(10))
		require.NoError(t, err)
		_, err = c.AppendView(v)
		require.NoError(t, err)
	}
	return c, sched
}

func TestForward(t *testing.T) {
	c, _ := mountedContainer(t, 100, "left", "right")
	bus := New(10)
	defer bus.Close()

	ch := bus.Subscribe(TypeViewSizeChanged)
	stop := Forward(c, bus)

	_, err := c.FirstView().SetSize(70)
	require.NoError(t, err)

	first := receive(t, ch).(ViewSizeChangedEvent)
	second := receive(t, ch).(ViewSizeChangedEvent)
	assert.Equal(t, "left", first.ViewName)
	assert.Equal(t, 70, first.Size)
	assert.Equal(t, "right", second.ViewName)
	assert.Equal(t, 30, second.Size)
	assert.Equal(t, c.ID(), first.ContainerID())

	stop()
	_, err = c.FirstView().SetSize(50)
	require.NoError(t, err)
	select {
	case ev := <-ch:
		t.Fatalf("event after stop: %v", ev.EventType())
	default:
	}
}

func TestForward_ResetIsPriority(t *testing.T) {
	c, _ := mountedContainer(t, 100, "left", "right")
	bus := New(10)
	defer bus.Close()

	prio := bus.SubscribePriority(TypeResetRequested)
	defer Forward(c, bus)()

	require.NoError(t, c.RequestReset(c.LastView()))
	ev := receive(t, prio).(ResetRequestedEvent)
	assert.Equal(t, c.LastView().ID(), ev.ViewID)
	assert.Equal(t, "right", ev.ViewName)
}

func TestFromLayout_ContainerSize(t *testing.T) {
	c, _ := mountedContainer(t, 100)
	ev := FromLayout(splitview.Event{Kind: splitview.EventContainerSizeChange, Container: c, Size: 120})
	require.IsType(t, ContainerSizeChangedEvent{}, ev)
	assert.Equal(t, 120, ev.(ContainerSizeChangedEvent).Size)

	assert.Nil(t, FromLayout(splitview.Event{Kind: "unknown", Container: c}))
}
