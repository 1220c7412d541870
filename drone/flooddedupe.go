package drone

import "github.com/Rusteze-AP/drone-sim/packet"

type floodKey struct {
	initiator packet.NodeId
	floodID   uint64
}

// floodDedupe tracks (initiator_id, flood_id) pairs already seen by this
// drone: entries accumulate monotonically and are never removed. Adapted
// from core/dedupe.PacketDeduplicator's New()/HasSeen API shape, but keyed
// on the pair rather than a packet-content hash, and unbounded rather than
// a circular buffer.
type floodDedupe struct {
	seen map[floodKey]struct{}
}

func newFloodDedupe() *floodDedupe {
	return &floodDedupe{seen: make(map[floodKey]struct{})}
}

// Insert records (initiator, floodID) if not already present. It returns
// true if the pair was already present (a known flood), false if this call
// newly inserted it.
func (f *floodDedupe) Insert(initiator packet.NodeId, floodID uint64) bool {
	key := floodKey{initiator: initiator, floodID: floodID}
	if _, ok := f.seen[key]; ok {
		return true
	}
	f.seen[key] = struct{}{}
	return false
}

// Len reports how many distinct floods this drone has recorded.
func (f *floodDedupe) Len() int {
	return len(f.seen)
}
