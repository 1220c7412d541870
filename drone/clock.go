package drone

import (
	"sync"
	"time"
)

// Clock produces strictly increasing event timestamps, adapted from
// core/clock.Clock.GetCurrentTimeUnique. Used to annotate debug log lines
// with a sequence number so two events falling within the same wall-clock
// tick can still be ordered by a log reader.
type Clock struct {
	mu         sync.Mutex
	lastUnique int64
	nowFn      func() int64
}

// NewClock creates a Clock backed by the system clock.
func NewClock() *Clock {
	return &Clock{
		nowFn: func() int64 { return time.Now().UnixNano() },
	}
}

// Now returns a strictly increasing nanosecond timestamp: if the wall
// clock hasn't advanced past the last value handed out, the internal
// counter is bumped by 1 instead of returning a duplicate.
func (c *Clock) Now() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.nowFn()
	if t <= c.lastUnique {
		c.lastUnique++
		return c.lastUnique
	}
	c.lastUnique = t
	return t
}
