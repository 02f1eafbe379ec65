package splitview

import (
	"math"
	"sort"
	"time"
)

// redistribute spreads the host's main size over the linked views. Views
// with the least slack (max-min) are served first so that greedier
// neighbours cannot starve them. Each view receives a share of the space
// still free proportional to its current size among the views not yet
// served, clamped to its bounds. A view of size 0 gets no proportional
// share, so whatever the walk leaves over is then handed to views that
// still have room, in the same order. What cannot be placed is kept in
// freeSize and reported by a debounced warning.
func (c *Container) redistribute() int {
	ids := c.chain.ids()
	sort.SliceStable(ids, func(i, j int) bool {
		a, b := c.chain.at(ids[i]), c.chain.at(ids[j])
		return a.max-a.min < b.max-b.min
	})

	free := c.axis.Main(c.hostSize)
	for i, id := range ids {
		n := c.chain.at(id)

		total := 0
		for _, rest := range ids[i:] {
			total += c.chain.at(rest).size
		}

		var share float64
		if total > 0 {
			share = float64(n.size) / float64(total) * float64(free)
		} else {
			share = float64(free) / float64(len(ids)-i)
		}

		n.size = clamp(roundHalfUp(share), n.min, n.max)
		free -= n.size
	}
	free = c.fill(ids, free)

	c.freeSize = free
	c.stopWarning()
	if free != 0 && len(ids) > 0 {
		c.warnFreeSize(free)
	}
	return free
}

// fill moves free into the views of ids, each up to its max (or down to
// its min when free is negative), and returns what is still left.
func (c *Container) fill(ids []nodeID, free int) int {
	for _, id := range ids {
		if free == 0 {
			break
		}
		n := c.chain.at(id)
		if free > 0 {
			d := min(free, n.max-n.size)
			n.size += d
			free -= d
		} else {
			d := min(-free, n.size-n.min)
			n.size -= d
			free += d
		}
	}
	return free
}

func (c *Container) warnFreeSize(free int) {
	logger := c.logger
	c.warnTimer = time.AfterFunc(c.warnDelay, func() {
		logger.Warn("splitview: free space after redistribution", "free", free)
	})
}

func (c *Container) stopWarning() {
	if c.warnTimer != nil {
		c.warnTimer.Stop()
		c.warnTimer = nil
	}
}

// roundHalfUp rounds x to the nearest integer, halves toward +Inf.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
