package splitview

import (
	"fmt"
	"math"

	"github.com/hugo-lorenzo-mato/splitview/internal/core"
)

// View is the handle to one view in a container. It only forwards to the
// container; all state lives in the container's chain.
type View struct {
	c    *Container
	id   nodeID
	uid  string
	name string
}

// ID returns the view's unique id.
func (v *View) ID() string { return v.uid }

// Name returns the label given with WithName.
func (v *View) Name() string { return v.name }

// Container returns the owning container.
func (v *View) Container() *Container { return v.c }

func (v *View) String() string {
	if v.name != "" {
		return v.name
	}
	return v.uid
}

// Size returns the current size in cells.
func (v *View) Size() int {
	v.c.mu.Lock()
	defer v.c.mu.Unlock()
	return v.c.chain.at(v.id).size
}

// Min returns the minimum size in cells.
func (v *View) Min() int {
	v.c.mu.Lock()
	defer v.c.mu.Unlock()
	return v.c.chain.at(v.id).min
}

// Max returns the maximum size in cells.
func (v *View) Max() int {
	v.c.mu.Lock()
	defer v.c.mu.Unlock()
	return v.c.chain.at(v.id).max
}

// Resizable reports whether min and max differ.
func (v *View) Resizable() bool {
	v.c.mu.Lock()
	defer v.c.mu.Unlock()
	return v.c.chain.at(v.id).resizable()
}

// Linked reports whether the view is part of the chain.
func (v *View) Linked() bool {
	v.c.mu.Lock()
	defer v.c.mu.Unlock()
	return v.c.chain.at(v.id).linked
}

// PreviousSibling returns the view before v, or nil.
func (v *View) PreviousSibling() *View {
	v.c.mu.Lock()
	defer v.c.mu.Unlock()

	n := v.c.chain.at(v.id)
	if !n.linked {
		return nil
	}
	return v.c.chain.at(n.prev).view
}

// NextSibling returns the view after v, or nil.
func (v *View) NextSibling() *View {
	v.c.mu.Lock()
	defer v.c.mu.Unlock()

	n := v.c.chain.at(v.id)
	if !n.linked {
		return nil
	}
	return v.c.chain.at(n.next).view
}

// SetSize asks for v to become value cells, clamped to [min, max]. Space
// is first taken from (or given to) the views after v, then from the views
// before it. It returns how far the achieved size is from the clamped
// target; 0 means fully satisfied. While a drag is in progress nothing
// changes and the current distance is returned.
func (v *View) SetSize(value float64) (int, error) {
	return v.c.setSize(v, value)
}

func (c *Container) setSize(v *View, value float64) (int, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, core.ErrValidation(core.CodeInvalidArgument,
			fmt.Sprintf("size must be a finite number, got %v", value))
	}

	var remaining int
	err := c.mutate(func() error {
		id, err := c.resolveLinked(v)
		if err != nil {
			return err
		}
		n := c.chain.at(id)
		target := clamp(int(math.Trunc(math.Max(math.Min(value, maxCells), -maxCells))), n.min, n.max)

		if c.resizing || target == n.size {
			remaining = abs(target - n.size)
			return nil
		}

		for _, pass := range setSizePasses(c.chain, id, target-n.size) {
			delta := target - n.size
			if delta == 0 {
				break
			}
			c.chain.snapshot()
			c.chain.negotiate(c.chain.plan(pass.pulled, pass.side), abs(delta))
		}

		remaining = abs(target - n.size)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return remaining, nil
}

type pull struct {
	pulled nodeID
	side   Side
}

// setSizePasses lists the two negotiations SetSize tries. Growing pulls
// the view itself, first against the views after it, then against the
// views before it. Shrinking pulls the next view toward the view, then
// the previous view toward it.
func setSizePasses(ch *chain, id nodeID, delta int) [2]pull {
	n := ch.at(id)
	if delta > 0 {
		return [2]pull{{id, SideNext}, {id, SidePrev}}
	}
	return [2]pull{{n.next, SidePrev}, {n.prev, SideNext}}
}
