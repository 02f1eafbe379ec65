package splitview

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hugo-lorenzo-mato/splitview/internal/core"
)

// Host is the surface a container is mounted on. Size returns the content
// size in cells and is polled once per frame. It is called with the
// container lock held and must not call back into the container.
type Host interface {
	Size() Size
}

// HostFunc adapts a function to Host.
type HostFunc func() Size

// Size implements Host.
func (f HostFunc) Size() Size { return f() }

// Container owns one axis of sibling views and their handles.
type Container struct {
	mu sync.Mutex

	id        string
	chain     *chain
	direction Direction
	axis      Axis
	resizing  bool
	drag      *Drag

	host        Host
	hostSize    Size
	mounted     bool
	generation  int
	scheduler   FrameScheduler
	cancelFrame func()

	handleSize int
	freeSize   int
	warnDelay  time.Duration
	warnTimer  *time.Timer
	logger     *slog.Logger

	subs      []subscription
	nextSubID int

	// Per-operation bookkeeping, see mutate.
	before  []int
	pending []Event
}

// New creates an unmounted, empty container.
func New(opts ...Option) *Container {
	c := &Container{
		id:         uuid.NewString(),
		chain:      newChain(),
		direction:  Row,
		scheduler:  TickerScheduler{Interval: DefaultFrameInterval},
		handleSize: DefaultHandleSize,
		warnDelay:  DefaultWarnDelay,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.axis = AxisOf(c.direction)
	c.logger = c.logger.With("container_id", c.id)
	return c
}

// mutate runs fn under the container lock, then emits the events the
// operation produced after the lock is released.
func (c *Container) mutate(fn func() error) error {
	c.mu.Lock()
	c.begin()
	err := fn()
	events := c.commit()
	subs := c.subs
	c.mu.Unlock()

	dispatch(subs, events)
	return err
}

func (c *Container) begin() {
	c.before = c.before[:0]
	for _, n := range c.chain.nodes {
		c.before = append(c.before, n.size)
	}
}

func (c *Container) commit() []Event {
	c.chain.fixOffsets()

	var events []Event
	c.chain.each(head, SideNext, func(id nodeID, n *node) {
		if int(id) < len(c.before) && c.before[id] == n.size {
			return
		}
		events = append(events, Event{
			Kind:      EventViewSizeChange,
			Container: c,
			View:      n.view,
			Size:      n.size,
		})
	})
	events = append(events, c.pending...)
	c.pending = nil
	return events
}

func (c *Container) resolve(v *View) (nodeID, error) {
	if v == nil {
		return none, core.ErrValidation(core.CodeInvalidArgument, "view is nil")
	}
	if v.c != c {
		return none, core.ErrValidation(core.CodeNotOwned,
			"view "+v.String()+" does not belong to this container")
	}
	return v.id, nil
}

func (c *Container) resolveLinked(v *View) (nodeID, error) {
	id, err := c.resolve(v)
	if err != nil {
		return none, err
	}
	if !c.chain.at(id).linked {
		return none, core.ErrNotFound("view", v.String())
	}
	return id, nil
}

// ID returns the container's unique id.
func (c *Container) ID() string {
	return c.id
}

// CreateView creates a view owned by this container. The view is not part
// of the chain until it is appended or inserted.
func (c *Container) CreateView(opts ...ViewOption) (*View, error) {
	o, err := normalizeViewOptions(opts)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.chain.add(int(o.min), int(o.max))
	v := &View{c: c, id: id, uid: uuid.NewString(), name: o.name}
	c.chain.at(id).view = v
	return v, nil
}

// AppendView links v at the end of the chain. A view that is already
// linked is moved.
func (c *Container) AppendView(v *View) (*View, error) {
	err := c.mutate(func() error {
		id, err := c.resolve(v)
		if err != nil {
			return err
		}
		if c.chain.at(id).linked {
			c.chain.unlink(id)
		}
		c.chain.linkBefore(id, rear)
		c.relayout()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// InsertBefore links newView in front of ref, or at the end when ref is
// nil. A view that is already linked is moved.
func (c *Container) InsertBefore(newView, ref *View) (*View, error) {
	if ref == nil {
		return c.AppendView(newView)
	}

	err := c.mutate(func() error {
		id, err := c.resolve(newView)
		if err != nil {
			return err
		}
		refID, err := c.resolveLinked(ref)
		if err != nil {
			return err
		}
		if id == refID {
			return core.ErrValidation(core.CodeInvalidArgument, "a view cannot be inserted before itself")
		}
		if c.chain.at(id).linked {
			c.chain.unlink(id)
		}
		c.chain.linkBefore(id, refID)
		c.relayout()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return newView, nil
}

// RemoveView unlinks v from the chain. The handle stays valid for reading
// but must not be reused with another container.
func (c *Container) RemoveView(v *View) (*View, error) {
	err := c.mutate(func() error {
		id, err := c.resolveLinked(v)
		if err != nil {
			return err
		}
		c.chain.unlink(id)
		c.relayout()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Mount attaches the container to host, lays every view out and starts
// polling the host size once per frame. Mounting an already mounted
// container moves it to the new host.
func (c *Container) Mount(host Host) error {
	if host == nil {
		return core.ErrValidation(core.CodeInvalidArgument, "host is nil")
	}
	return c.mutate(func() error {
		c.stopObserving()
		c.host = host
		c.mounted = true
		c.generation++
		c.relayout()
		c.observe(c.generation)
		return nil
	})
}

// Destroy stops host polling and ends any drag in progress. View sizes are
// kept; the container can be mounted again.
func (c *Container) Destroy() {
	_ = c.mutate(func() error {
		if !c.mounted {
			return nil
		}
		c.stopObserving()
		c.endDrag()
		c.stopWarning()
		c.mounted = false
		c.host = nil
		return nil
	})
}

// Mounted reports whether the container is attached to a host.
func (c *Container) Mounted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mounted
}

// Relayout resets every view to its minimum and redistributes the host
// size. It is a no-op while unmounted.
func (c *Container) Relayout() {
	_ = c.mutate(func() error {
		c.relayout()
		return nil
	})
}

// Equalize gives every view an equal share of the host size, within its
// bounds. Hosts call it to answer a request-reset event.
func (c *Container) Equalize() {
	_ = c.mutate(func() error {
		c.endDrag()
		if !c.mounted {
			return nil
		}
		c.chain.each(head, SideNext, func(_ nodeID, n *node) { n.size = 0 })
		c.redistribute()
		return nil
	})
}

func (c *Container) relayout() {
	c.endDrag()
	if !c.mounted {
		return
	}

	c.hostSize = c.host.Size()
	c.chain.each(head, SideNext, func(_ nodeID, n *node) {
		n.handleVisible = c.chain.at(n.prev).resizable()
		n.size = n.min
	})
	c.redistribute()
}

func (c *Container) observe(gen int) {
	c.cancelFrame = c.scheduler.RequestFrame(func() { c.frame(gen) })
}

func (c *Container) stopObserving() {
	if c.cancelFrame != nil {
		c.cancelFrame()
		c.cancelFrame = nil
	}
}

func (c *Container) frame(gen int) {
	_ = c.mutate(func() error {
		if !c.mounted || c.generation != gen {
			return nil
		}
		size := c.host.Size()
		if size != c.hostSize {
			c.endDrag()
			c.hostSize = size
			c.redistribute()
			c.pending = append(c.pending, Event{
				Kind:      EventContainerSizeChange,
				Container: c,
				Size:      c.axis.Main(size),
			})
		}
		c.observe(gen)
		return nil
	})
}

// Direction returns the current main axis direction.
func (c *Container) Direction() Direction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.direction
}

// Axis returns the axis lookup for the current direction.
func (c *Container) Axis() Axis {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.axis
}

// SetDirection switches the main axis and relays out when it changes.
func (c *Container) SetDirection(d Direction) error {
	if !d.Valid() {
		return core.ErrValidation(core.CodeInvalidDirection, "unknown direction "+d.String())
	}
	return c.mutate(func() error {
		if d == c.direction {
			return nil
		}
		c.direction = d
		c.axis = AxisOf(d)
		c.relayout()
		return nil
	})
}

// FirstView returns the first linked view, or nil.
func (c *Container) FirstView() *View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.chain.at(c.chain.at(head).next).view
}

// LastView returns the last linked view, or nil.
func (c *Container) LastView() *View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.chain.at(c.chain.at(rear).prev).view
}

// Views returns the linked views in chain order.
func (c *Container) Views() []*View {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := c.chain.ids()
	views := make([]*View, len(ids))
	for i, id := range ids {
		views[i] = c.chain.at(id).view
	}
	return views
}

// Len returns the number of linked views.
func (c *Container) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.chain.len()
}

// Resizing reports whether a handle drag is in progress.
func (c *Container) Resizing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resizing
}

// HostSize returns the host size seen by the last layout or frame.
func (c *Container) HostSize() Size {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hostSize
}

// FreeSize returns the space left over (positive) or missing (negative)
// after the last redistribution.
func (c *Container) FreeSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.freeSize
}

// Placement is the resolved geometry of one view.
type Placement struct {
	View          *View
	Rect          Rect
	Offset        int
	Size          int
	HandleVisible bool
	HandleOffset  int
	Highlighted   bool
}

// Layout returns the geometry of every linked view in chain order.
func (c *Container) Layout() []Placement {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.placements()
}

// Snapshot is a consistent view of the container state.
type Snapshot struct {
	Direction Direction
	Host      Size
	// Size is the host size along the main axis.
	Size       int
	FreeSize   int
	Resizing   bool
	Placements []Placement
}

// Snapshot reads the direction, host size, free size, drag state and
// placements under one lock, so a concurrent frame or drag cannot mix
// values from before and after it.
func (c *Container) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Direction:  c.direction,
		Host:       c.hostSize,
		Size:       c.axis.Main(c.hostSize),
		FreeSize:   c.freeSize,
		Resizing:   c.resizing,
		Placements: c.placements(),
	}
}

func (c *Container) placements() []Placement {
	cross := c.axis.Cross(c.hostSize)
	var out []Placement
	c.chain.each(head, SideNext, func(_ nodeID, n *node) {
		out = append(out, Placement{
			View:          n.view,
			Rect:          c.axis.Rect(n.offset, n.size, cross),
			Offset:        n.offset,
			Size:          n.size,
			HandleVisible: n.handleVisible,
			HandleOffset:  n.offset - c.handleSize/2,
			Highlighted:   c.highlighted(n),
		})
	})
	return out
}
