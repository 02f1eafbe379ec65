package splitview

import (
	"github.com/hugo-lorenzo-mato/splitview/internal/core"
)

// Drag is an active handle resize. It moves Idle → Resizing on BeginDrag
// and back to Idle on End, on Destroy, or on any relayout.
type Drag struct {
	c      *Container
	view   *View
	id     nodeID
	origin int
	// plans[SideNext] pulls the node before the handle and pushes from the
	// handle owner onward; plans[SidePrev] pulls the owner and pushes the
	// nodes before it.
	plans [2]plan
}

// BeginDrag starts resizing through the handle at the leading edge of v,
// which sits between v's previous sibling and v. p is the pointer position
// when the drag starts.
func (c *Container) BeginDrag(v *View, p Point) (*Drag, error) {
	var d *Drag
	err := c.mutate(func() error {
		id, err := c.resolveLinked(v)
		if err != nil {
			return err
		}
		if !c.mounted {
			return core.ErrState(core.CodeNotMounted, "container is not mounted")
		}
		if c.drag != nil {
			return core.ErrConflict(core.CodeDragInProgress, "another handle is being dragged")
		}
		n := c.chain.at(id)
		if !n.handleVisible {
			return core.ErrValidation(core.CodeHandleDisabled,
				"view "+v.String()+" has no resizable predecessor")
		}

		n.resizing = true
		c.resizing = true
		c.chain.snapshot()

		d = &Drag{c: c, view: v, id: id, origin: c.axis.Coord(p)}
		d.plans[SideNext] = c.chain.plan(n.prev, SideNext)
		d.plans[SidePrev] = c.chain.plan(id, SidePrev)
		c.drag = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// View returns the view owning the dragged handle.
func (d *Drag) View() *View {
	return d.view
}

// Active reports whether the drag still drives the container.
func (d *Drag) Active() bool {
	d.c.mu.Lock()
	defer d.c.mu.Unlock()
	return d.c.drag == d
}

// Move applies the pointer position p. Sizes are restored from the
// snapshot taken by BeginDrag before the new delta is negotiated, so the
// result only depends on the snapshot and p. Moves after End are ignored.
func (d *Drag) Move(p Point) {
	c := d.c
	_ = c.mutate(func() error {
		if c.drag != d {
			return nil
		}
		delta := c.axis.Coord(p) - d.origin
		c.chain.restore()
		if delta != 0 {
			side := SideNext
			if delta < 0 {
				side = SidePrev
			}
			c.chain.negotiate(d.plans[side], abs(delta))
		}
		return nil
	})
}

// End finishes the drag, keeping the sizes of the last move.
func (d *Drag) End() {
	c := d.c
	_ = c.mutate(func() error {
		if c.drag == d {
			c.endDrag()
		}
		return nil
	})
}

func (c *Container) endDrag() {
	if c.drag == nil {
		return
	}
	c.chain.at(c.drag.id).resizing = false
	c.resizing = false
	c.drag = nil
}

// SetHover records whether the pointer is over v's handle.
func (c *Container) SetHover(v *View, hover bool) error {
	return c.mutate(func() error {
		id, err := c.resolveLinked(v)
		if err != nil {
			return err
		}
		c.chain.at(id).hover = hover
		return nil
	})
}

// HandleHighlighted reports whether v's handle should be drawn active:
// it is being dragged, or hovered while no drag is running.
func (c *Container) HandleHighlighted(v *View) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	id, err := c.resolveLinked(v)
	if err != nil {
		return false
	}
	return c.highlighted(c.chain.at(id))
}

func (c *Container) highlighted(n *node) bool {
	if !n.handleVisible {
		return false
	}
	return (n.resizing && c.resizing) || (n.hover && !c.resizing)
}

// Cursor returns the pointer style the host should show: the axis resize
// cursor while a handle is highlighted, "default" otherwise.
func (c *Container) Cursor() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	active := false
	c.chain.each(head, SideNext, func(_ nodeID, n *node) {
		if c.highlighted(n) {
			active = true
		}
	})
	if active {
		return c.axis.Cursor
	}
	return "default"
}

// HandleAt returns the view whose visible handle covers p.
func (c *Container) HandleAt(p Point) (*View, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	coord := c.axis.Coord(p)
	var found *View
	c.chain.each(head, SideNext, func(_ nodeID, n *node) {
		if found != nil || !n.handleVisible {
			return
		}
		start := n.offset - c.handleSize/2
		if coord >= start && coord < start+c.handleSize {
			found = n.view
		}
	})
	return found, found != nil
}

// ViewAt returns the view whose area covers p along the main axis.
func (c *Container) ViewAt(p Point) (*View, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	coord := c.axis.Coord(p)
	var found *View
	c.chain.each(head, SideNext, func(_ nodeID, n *node) {
		if found == nil && coord >= n.offset && coord < n.offset+n.size {
			found = n.view
		}
	})
	return found, found != nil
}

// RequestReset asks listeners to consider resetting sizes, on behalf of
// the handle at v's leading edge.
func (c *Container) RequestReset(v *View) error {
	return c.mutate(func() error {
		if _, err := c.resolveLinked(v); err != nil {
			return err
		}
		c.pending = append(c.pending, Event{
			Kind:      EventRequestReset,
			Container: c,
			View:      v,
			Size:      c.chain.at(v.id).size,
		})
		return nil
	})
}
