package drone

import (
	"sync"
	"time"

	"github.com/Rusteze-AP/drone-sim/packet"
)

// NeighborHealth is a non-authoritative last-seen tracker over a drone's
// neighbor table. Adapted from device/connection.Manager, it is purely
// observational: unlike that type, it never removes a neighbor on
// timeout — only an explicit RemoveSender command may do that, since a
// background eviction here would let something other than the SC mutate
// the routing table. Exposed through Drone.NeighborLastSeen for external
// observability.
type NeighborHealth struct {
	mu       sync.Mutex
	lastSeen map[packet.NodeId]time.Time
	nowFn    func() time.Time
}

// NewNeighborHealth creates an empty tracker using the system clock.
func NewNeighborHealth() *NeighborHealth {
	return &NeighborHealth{
		lastSeen: make(map[packet.NodeId]time.Time),
		nowFn:    time.Now,
	}
}

// Touch records that a packet was just routed to id as its next hop.
func (h *NeighborHealth) Touch(id packet.NodeId) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastSeen[id] = h.nowFn()
}

// Remove drops any tracked activity for id. Called when RemoveSender
// removes the neighbor from the routing table, so health data doesn't
// outlive the neighbor it describes.
func (h *NeighborHealth) Remove(id packet.NodeId) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.lastSeen, id)
}

// LastSeen reports when id was last observed, if ever.
func (h *NeighborHealth) LastSeen(id packet.NodeId) (time.Time, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	t, ok := h.lastSeen[id]
	return t, ok
}
