package storyteller

import "time"

// gate admits at most one sample per interval. A zero interval admits all.
// It is not safe for concurrent use; the engine guards it.
type gate struct {
	interval time.Duration
	last     time.Time
	armed    bool
}

func (g *gate) allow(now time.Time) bool {
	if g.armed && g.interval > 0 && now.Sub(g.last) < g.interval {
		return false
	}
	g.last = now
	g.armed = true
	return true
}
