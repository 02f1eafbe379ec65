package splitview

// bounds pairs a value for the pulled node with one for the pushed side.
type bounds struct {
	pull, push int
}

// plan is the negotiation record for one pull direction. It is computed
// from the chain as it is when the plan is made.
type plan struct {
	side   Side
	pulled nodeID
	// limit.pull is the largest size the pulled node may reach, limit.push
	// the sum of minimums on the pushed side.
	limit bounds
	// origin.pull is the pulled size, origin.push the sum of sizes on the
	// pushed side.
	origin bounds
}

func (c *chain) plan(pulled nodeID, side Side) plan {
	p := c.nodes[pulled]
	pl := plan{
		side:   side,
		pulled: pulled,
		limit:  bounds{pull: p.max},
		origin: bounds{pull: p.size},
	}
	c.each(pulled, side, func(_ nodeID, n *node) {
		pl.limit.push += n.min
		pl.origin.push += n.size
	})
	return pl
}

// negotiate grows the pulled node by up to delta cells and takes the same
// amount from the nodes toward pl.side, nearest first, never pushing a node
// below its minimum. It returns the amount granted to the pulled node.
//
// The chain must hold the sizes pl was computed from.
func (c *chain) negotiate(pl plan, delta int) int {
	if delta <= 0 {
		return 0
	}

	size := min(
		pl.limit.pull,
		pl.origin.pull+pl.origin.push-pl.limit.push,
		pl.origin.pull+delta,
	)
	if size <= pl.origin.pull {
		return 0
	}

	c.nodes[pl.pulled].size = size
	free := size - pl.origin.pull
	granted := free

	c.each(pl.pulled, pl.side, func(_ nodeID, n *node) {
		if free == 0 {
			return
		}
		take := free
		if n.size-free <= n.min {
			take = n.size - n.min
		}
		n.size -= take
		free -= take
	})

	return granted
}
