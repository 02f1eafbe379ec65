package splitview

import (
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugo-lorenzo-mato/splitview/internal/core"
)

func TestScenario_TwoViewsSplitEvenly(t *testing.T) {
	f := newFixture(t, 400, defaults(2)...)

	assert.Equal(t, []int{200, 200}, f.sizes())
	assert.Equal(t, 0, f.c.FreeSize())

	layout := f.c.Layout()
	require.Len(t, layout, 2)
	assert.Equal(t, 0, layout[0].Offset)
	assert.Equal(t, 200, layout[1].Offset)
	assert.Equal(t, Rect{X: 200, Y: 0, Width: 200, Height: 24}, layout[1].Rect)
	assert.False(t, layout[0].HandleVisible, "first handle has no predecessor")
	assert.True(t, layout[1].HandleVisible)
}

func TestScenario_SetSizeBelowMinimumClamps(t *testing.T) {
	f := newFixture(t, 400, defaults(2)...)

	remaining, err := f.views[0].SetSize(10)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)
	assert.Equal(t, []int{50, 350}, f.sizes())

	// Already at the clamped target.
	remaining, err = f.views[0].SetSize(10)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)
	assert.Equal(t, []int{50, 350}, f.sizes())
}

func TestScenario_RemoveOnlyResizableView(t *testing.T) {
	f := newFixture(t, 400,
		nil,
		[]ViewOption{WithMin(100), WithMax(100)},
	)
	require.True(t, f.c.Layout()[1].HandleVisible)

	_, err := f.c.RemoveView(f.views[0])
	require.NoError(t, err)

	assert.Equal(t, 1, f.c.Len())
	layout := f.c.Layout()
	require.Len(t, layout, 1)
	assert.Same(t, f.views[1], layout[0].View)
	assert.False(t, layout[0].HandleVisible)
	assert.Equal(t, 100, layout[0].Size)
	assert.Equal(t, 300, f.c.FreeSize())
}

func TestScenario_ShrinkBelowMinimums(t *testing.T) {
	logs := &syncBuffer{}
	host := newTestHost(400, 24)
	sched := NewManualScheduler()
	c := New(
		WithScheduler(sched),
		WithLogger(slog.New(slog.NewTextHandler(logs, nil))),
		WithWarnDelay(5*time.Millisecond),
	)
	require.NoError(t, c.Mount(host))
	defer c.Destroy()

	for i := 0; i < 2; i++ {
		v, err := c.CreateView()
		require.NoError(t, err)
		_, err = c.AppendView(v)
		require.NoError(t, err)
	}

	host.Set(80, 24)
	sched.Advance()

	for _, v := range c.Views() {
		assert.Equal(t, 50, v.Size())
	}
	assert.Equal(t, -20, c.FreeSize())
	assert.Eventually(t, func() bool {
		out := logs.String()
		return strings.Contains(out, "level=WARN") && strings.Contains(out, "free=-20")
	}, time.Second, 5*time.Millisecond)
}

func TestRedistribute_WarningIsDebounced(t *testing.T) {
	logs := &syncBuffer{}
	host := newTestHost(80, 24)
	sched := NewManualScheduler()
	c := New(
		WithScheduler(sched),
		WithLogger(slog.New(slog.NewTextHandler(logs, nil))),
		WithWarnDelay(50*time.Millisecond),
	)
	require.NoError(t, c.Mount(host))
	defer c.Destroy()

	v, err := c.CreateView(WithMax(60))
	require.NoError(t, err)
	_, err = c.AppendView(v)
	require.NoError(t, err)
	assert.Equal(t, 20, c.FreeSize())

	// Settling into a layout that fits cancels the pending warning.
	host.Set(60, 24)
	sched.Advance()
	assert.Equal(t, 0, c.FreeSize())

	time.Sleep(120 * time.Millisecond)
	assert.NotContains(t, logs.String(), "free space")
}

func TestRedistribute_FillsZeroSizeViews(t *testing.T) {
	f := newFixture(t, 100,
		[]ViewOption{WithMin(0), WithMax(50)},
		[]ViewOption{WithMin(10), WithMax(70)},
	)

	assert.Equal(t, []int{30, 70}, f.sizes())
	assert.Equal(t, 0, f.c.FreeSize())
}

func TestSnapshot(t *testing.T) {
	f := newFixture(t, 400, defaults(2)...)

	snap := f.c.Snapshot()
	assert.Equal(t, Row, snap.Direction)
	assert.Equal(t, Size{Width: 400, Height: 24}, snap.Host)
	assert.Equal(t, 400, snap.Size)
	assert.Equal(t, 0, snap.FreeSize)
	assert.False(t, snap.Resizing)
	assert.Equal(t, f.c.Layout(), snap.Placements)

	d, err := f.c.BeginDrag(f.views[1], Point{X: 200})
	require.NoError(t, err)
	assert.True(t, f.c.Snapshot().Resizing)
	d.End()
}

func TestSnapshot_ConsistentDuringResize(t *testing.T) {
	f := newFixture(t, 400, defaults(2)...)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			f.host.Set(300+(i%2)*100, 24)
			f.sched.Advance()
		}
	}()

	for {
		select {
		case <-done:
			return
		default:
		}
		snap := f.c.Snapshot()
		sum := 0
		for _, p := range snap.Placements {
			sum += p.Size
		}
		require.Equal(t, snap.Size, sum, "host size and placements come from different layouts")
		require.Equal(t, snap.Host.Width, snap.Size)
	}
}

func TestRedistribute_LeastSlackFirst(t *testing.T) {
	f := newFixture(t, 500,
		nil,
		[]ViewOption{WithMin(100), WithMax(100)},
	)

	assert.Equal(t, []int{400, 100}, f.sizes())
	assert.Equal(t, 0, f.c.FreeSize())
}

func TestRedistribute_Converges(t *testing.T) {
	tests := []struct {
		name  string
		width int
		views [][]ViewOption
	}{
		{
			name:  "mixed bounds",
			width: 400,
			views: [][]ViewOption{
				{WithMin(20), WithMax(200)},
				{WithMin(30)},
				{WithMin(40), WithMax(150)},
				{WithMin(50)},
			},
		},
		{
			name:  "zero minimums",
			width: 500,
			views: [][]ViewOption{
				{WithMin(0), WithMax(100)},
				{WithMin(0)},
			},
		},
		{
			name:  "exactly the minimums",
			width: 150,
			views: defaults(3),
		},
		{
			name:  "exactly the maximums",
			width: 300,
			views: [][]ViewOption{
				{WithMin(10), WithMax(100)},
				{WithMin(10), WithMax(200)},
			},
		},
		{
			name:  "odd width",
			width: 301,
			views: defaults(3),
		},
		{
			name:  "zero-size view before a capped one",
			width: 100,
			views: [][]ViewOption{
				{WithMin(0), WithMax(50)},
				{WithMin(10), WithMax(70)},
			},
		},
		{
			name:  "several zero-size views",
			width: 90,
			views: [][]ViewOption{
				{WithMin(0), WithMax(20)},
				{WithMin(0), WithMax(30)},
				{WithMin(5), WithMax(45)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.width, tt.views...)
			assert.Equal(t, 0, f.c.FreeSize())
			assert.Equal(t, tt.width, f.total())
			f.requireBounds(t)
		})
	}
}

func TestCreateView_Defaults(t *testing.T) {
	c := New()
	v, err := c.CreateView(WithName("editor"))
	require.NoError(t, err)

	assert.Equal(t, DefaultMin, v.Min())
	assert.Equal(t, DefaultMax, v.Max())
	assert.Equal(t, "editor", v.Name())
	assert.Equal(t, "editor", v.String())
	assert.NotEmpty(t, v.ID())
	assert.Same(t, c, v.Container())
	assert.False(t, v.Linked())
	assert.True(t, v.Resizable())
}

func TestCreateView_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []ViewOption
	}{
		{"negative min", []ViewOption{WithMin(-1)}},
		{"nan min", []ViewOption{WithMin(math.NaN())}},
		{"infinite min", []ViewOption{WithMin(math.Inf(1))}},
		{"max below min", []ViewOption{WithMin(100), WithMax(99)}},
		{"max below default min", []ViewOption{WithMax(10)}},
		{"infinite max", []ViewOption{WithMax(math.Inf(1))}},
		{"nan max", []ViewOption{WithMax(math.NaN())}},
	}

	c := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := c.CreateView(tt.opts...)
			require.Error(t, err)
			assert.Nil(t, v)
			assert.True(t, errors.Is(err, core.ErrValidation(core.CodeInvalidOptions, "")))
		})
	}
}

func TestCreateView_TruncatesToCells(t *testing.T) {
	c := New()
	v, err := c.CreateView(WithMin(10.9), WithMax(20.2))
	require.NoError(t, err)
	assert.Equal(t, 10, v.Min())
	assert.Equal(t, 20, v.Max())
}

func TestInsertBefore(t *testing.T) {
	f := newFixture(t, 600, defaults(3)...)
	v1, v2, v3 := f.views[0], f.views[1], f.views[2]

	_, err := f.c.InsertBefore(v3, v1)
	require.NoError(t, err)
	assert.Equal(t, []*View{v3, v1, v2}, f.c.Views())
	assert.Same(t, v3, f.c.FirstView())
	assert.Same(t, v2, f.c.LastView())
	assert.Nil(t, v3.PreviousSibling())
	assert.Same(t, v1, v3.NextSibling())
	assert.Nil(t, v2.NextSibling())

	v4, err := f.c.CreateView()
	require.NoError(t, err)
	_, err = f.c.InsertBefore(v4, nil)
	require.NoError(t, err)
	assert.Same(t, v4, f.c.LastView())
	assert.Equal(t, 600, f.total())

	_, err = f.c.InsertBefore(v4, v4)
	assert.True(t, errors.Is(err, core.ErrValidation(core.CodeInvalidArgument, "")))
}

func TestInsertBefore_Errors(t *testing.T) {
	f := newFixture(t, 400, defaults(2)...)
	other := New()
	foreign, err := other.CreateView()
	require.NoError(t, err)

	_, err = f.c.InsertBefore(foreign, f.views[0])
	assert.True(t, errors.Is(err, core.ErrValidation(core.CodeNotOwned, "")))

	loose, err := f.c.CreateView()
	require.NoError(t, err)
	_, err = f.c.InsertBefore(f.views[0], loose)
	assert.True(t, core.IsCategory(err, core.ErrCatNotFound))

	_, err = f.c.AppendView(foreign)
	assert.True(t, errors.Is(err, core.ErrValidation(core.CodeNotOwned, "")))

	_, err = f.c.AppendView(nil)
	assert.True(t, errors.Is(err, core.ErrValidation(core.CodeInvalidArgument, "")))
}

func TestAppendView_MovesLinkedView(t *testing.T) {
	f := newFixture(t, 600, defaults(3)...)

	_, err := f.c.AppendView(f.views[0])
	require.NoError(t, err)
	assert.Equal(t, []*View{f.views[1], f.views[2], f.views[0]}, f.c.Views())
	assert.Equal(t, 3, f.c.Len())
}

func TestRemoveView(t *testing.T) {
	f := newFixture(t, 600, defaults(3)...)
	v2 := f.views[1]

	_, err := f.c.RemoveView(v2)
	require.NoError(t, err)
	assert.False(t, v2.Linked())
	assert.Nil(t, v2.PreviousSibling())
	assert.Nil(t, v2.NextSibling())
	assert.Equal(t, []int{300, 300}, f.sizes())

	_, err = f.c.RemoveView(v2)
	assert.True(t, errors.Is(err, core.ErrNotFound("view", "")))

	other := New()
	foreign, err := other.CreateView()
	require.NoError(t, err)
	_, err = f.c.RemoveView(foreign)
	assert.True(t, errors.Is(err, core.ErrValidation(core.CodeNotOwned, "")))
}

func TestEmptyContainer(t *testing.T) {
	c := New()
	assert.Nil(t, c.FirstView())
	assert.Nil(t, c.LastView())
	assert.Empty(t, c.Views())
	assert.Equal(t, 0, c.Len())
	assert.False(t, c.Mounted())
}

func TestUnmountedContainer_KeepsMinimums(t *testing.T) {
	c := New()
	var fired int
	c.Subscribe(func(Event) { fired++ })

	v, err := c.CreateView(WithMin(30))
	require.NoError(t, err)
	_, err = c.AppendView(v)
	require.NoError(t, err)

	assert.Equal(t, 30, v.Size())
	assert.False(t, c.Layout()[0].HandleVisible)
	assert.Zero(t, fired)
}

func TestSetDirection(t *testing.T) {
	host := newTestHost(400, 120)
	c := New(WithScheduler(NewManualScheduler()), WithLogger(quietLogger()))
	require.NoError(t, c.Mount(host))
	defer c.Destroy()

	for i := 0; i < 2; i++ {
		v, err := c.CreateView()
		require.NoError(t, err)
		_, err = c.AppendView(v)
		require.NoError(t, err)
	}

	require.NoError(t, c.SetDirection(Column))
	assert.Equal(t, Column, c.Direction())
	assert.Equal(t, "row-resize", c.Axis().Cursor)

	layout := c.Layout()
	require.Len(t, layout, 2)
	assert.Equal(t, 60, layout[0].Size)
	assert.Equal(t, Rect{X: 0, Y: 60, Width: 400, Height: 60}, layout[1].Rect)

	err := c.SetDirection(Direction(5))
	assert.True(t, errors.Is(err, core.ErrValidation(core.CodeInvalidDirection, "")))
	assert.Equal(t, Column, c.Direction())
}

func TestSetDirection_SameValueKeepsSizes(t *testing.T) {
	f := newFixture(t, 400, defaults(2)...)
	_, err := f.views[0].SetSize(300)
	require.NoError(t, err)

	require.NoError(t, f.c.SetDirection(Row))
	assert.Equal(t, []int{300, 100}, f.sizes())
}

func TestMount_NilHost(t *testing.T) {
	c := New()
	err := c.Mount(nil)
	assert.True(t, errors.Is(err, core.ErrValidation(core.CodeInvalidArgument, "")))
}

func TestPolling_RedistributesOnHostResize(t *testing.T) {
	f := newFixture(t, 400, defaults(2)...)

	var got []Event
	f.c.Subscribe(func(ev Event) { got = append(got, ev) }, EventContainerSizeChange)

	f.sched.Advance()
	assert.Empty(t, got, "unchanged host size must not fire")
	assert.Equal(t, 1, f.sched.Pending())

	f.host.Set(600, 24)
	f.sched.Advance()

	assert.Equal(t, []int{300, 300}, f.sizes())
	require.Len(t, got, 1)
	assert.Equal(t, 600, got[0].Size)
	assert.Same(t, f.c, got[0].Container)
	assert.Nil(t, got[0].View)
	assert.Equal(t, Size{Width: 600, Height: 24}, f.c.HostSize())

	// A cross-axis change also counts as a container size change.
	f.host.Set(600, 30)
	f.sched.Advance()
	assert.Len(t, got, 2)
}

func TestDestroy_CancelsPollingAndDrag(t *testing.T) {
	f := newFixture(t, 600, defaults(3)...)

	d, err := f.c.BeginDrag(f.views[1], Point{X: 200})
	require.NoError(t, err)
	require.True(t, f.c.Resizing())

	f.c.Destroy()

	assert.False(t, f.c.Mounted())
	assert.False(t, f.c.Resizing())
	assert.False(t, d.Active())
	assert.Zero(t, f.sched.Pending())

	d.Move(Point{X: 300})
	assert.Equal(t, []int{200, 200, 200}, f.sizes())

	f.host.Set(900, 24)
	f.sched.Advance()
	assert.Equal(t, []int{200, 200, 200}, f.sizes())

	// Mounting again resumes.
	require.NoError(t, f.c.Mount(f.host))
	assert.Equal(t, []int{300, 300, 300}, f.sizes())
	assert.Equal(t, 1, f.sched.Pending())
}

func TestSubscribe_EventsAfterCommit(t *testing.T) {
	f := newFixture(t, 400, defaults(2)...)

	type seen struct {
		view   *View
		size   int
		actual int
	}
	var got []seen
	unsubscribe := f.c.Subscribe(func(ev Event) {
		// Reading back through the facade must not deadlock and must see
		// the committed value.
		got = append(got, seen{view: ev.View, size: ev.Size, actual: ev.View.Size()})
	}, EventViewSizeChange)

	_, err := f.views[0].SetSize(250)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, seen{f.views[0], 250, 250}, got[0])
	assert.Equal(t, seen{f.views[1], 150, 150}, got[1])

	unsubscribe()
	unsubscribe()
	_, err = f.views[0].SetSize(200)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSubscribe_ListenerCanMutate(t *testing.T) {
	f := newFixture(t, 400, defaults(2)...)

	f.c.Subscribe(func(ev Event) {
		_, _ = ev.View.SetSize(200)
	}, EventRequestReset)

	_, err := f.views[1].SetSize(100)
	require.NoError(t, err)
	require.NoError(t, f.c.RequestReset(f.views[1]))

	assert.Equal(t, []int{200, 200}, f.sizes())
}

func TestRequestReset(t *testing.T) {
	f := newFixture(t, 400, defaults(2)...)

	var kinds []EventKind
	var views []*View
	f.c.Subscribe(func(ev Event) {
		kinds = append(kinds, ev.Kind)
		views = append(views, ev.View)
	})

	require.NoError(t, f.c.RequestReset(f.views[1]))
	assert.Equal(t, []EventKind{EventRequestReset}, kinds)
	assert.Equal(t, []*View{f.views[1]}, views)

	loose, err := f.c.CreateView()
	require.NoError(t, err)
	assert.Error(t, f.c.RequestReset(loose))
}

func TestEqualize(t *testing.T) {
	f := newFixture(t, 500,
		nil,
		[]ViewOption{WithMin(100), WithMax(100)},
		nil,
	)
	_, err := f.views[0].SetSize(300)
	require.NoError(t, err)
	require.Equal(t, []int{300, 100, 100}, f.sizes())

	f.c.Equalize()
	assert.Equal(t, []int{200, 100, 200}, f.sizes())
	assert.Equal(t, 0, f.c.FreeSize())
}
