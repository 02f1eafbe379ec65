package splitview

// nodeID indexes the chain arena. Ids are never reused.
type nodeID int

const (
	head nodeID = 0
	rear nodeID = 1
	none nodeID = -1
)

// Side selects the walking direction along the chain.
type Side uint8

const (
	SidePrev Side = iota // toward the head sentinel
	SideNext             // toward the rear sentinel
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideNext {
		return SidePrev
	}
	return SideNext
}

func (s Side) String() string {
	if s == SideNext {
		return "next"
	}
	return "prev"
}

// node is one sizing unit in the chain.
type node struct {
	min, max int
	size     int
	snapshot int
	offset   int

	resizing      bool
	hover         bool
	handleVisible bool

	prev, next nodeID
	linked     bool

	view *View // nil for sentinels
}

func (n *node) resizable() bool {
	return n.max != n.min
}

func (n *node) step(side Side) nodeID {
	if side == SideNext {
		return n.next
	}
	return n.prev
}

// chain is an arena-backed doubly-linked list bounded by two sentinels.
type chain struct {
	nodes []*node
}

func newChain() *chain {
	c := &chain{nodes: make([]*node, 2, 8)}
	c.nodes[head] = &node{prev: none, next: rear, linked: true}
	c.nodes[rear] = &node{prev: head, next: none, linked: true}
	return c
}

func (c *chain) add(min, max int) nodeID {
	id := nodeID(len(c.nodes))
	c.nodes = append(c.nodes, &node{
		min:  min,
		max:  max,
		size: min,
		prev: none,
		next: none,
	})
	return id
}

func (c *chain) at(id nodeID) *node {
	return c.nodes[id]
}

// each visits the nodes after id toward side, stopping before the sentinel.
func (c *chain) each(id nodeID, side Side, fn func(nodeID, *node)) {
	sibling := c.nodes[id].step(side)
	for sibling != none {
		n := c.nodes[sibling]
		following := n.step(side)
		if following == none {
			return
		}
		fn(sibling, n)
		sibling = following
	}
}

// ids returns the linked view nodes in chain order.
func (c *chain) ids() []nodeID {
	ids := make([]nodeID, 0, len(c.nodes)-2)
	c.each(head, SideNext, func(id nodeID, _ *node) {
		ids = append(ids, id)
	})
	return ids
}

func (c *chain) len() int {
	count := 0
	c.each(head, SideNext, func(nodeID, *node) { count++ })
	return count
}

// linkBefore links an unlinked node in front of ref.
func (c *chain) linkBefore(id, ref nodeID) {
	n, r := c.nodes[id], c.nodes[ref]
	n.prev = r.prev
	n.next = ref
	c.nodes[r.prev].next = id
	r.prev = id
	n.linked = true
}

func (c *chain) unlink(id nodeID) {
	n := c.nodes[id]
	c.nodes[n.prev].next = n.next
	c.nodes[n.next].prev = n.prev
	n.prev, n.next = none, none
	n.linked = false
	n.handleVisible = false
	n.hover = false
	n.resizing = false
}

func (c *chain) snapshot() {
	c.each(head, SideNext, func(_ nodeID, n *node) { n.snapshot = n.size })
}

func (c *chain) restore() {
	c.each(head, SideNext, func(_ nodeID, n *node) { n.size = n.snapshot })
}

func (c *chain) total() int {
	sum := 0
	c.each(head, SideNext, func(_ nodeID, n *node) { sum += n.size })
	return sum
}

// fixOffsets recomputes every view offset from its predecessor.
func (c *chain) fixOffsets() {
	c.each(head, SideNext, func(_ nodeID, n *node) {
		p := c.nodes[n.prev]
		n.offset = p.offset + p.size
	})
}
