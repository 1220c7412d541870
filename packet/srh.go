// Package packet defines the wire contract carried over a drone's channels:
// the source-routing header, the packet envelope, and its payload variants.
// No byte encoding is defined here — channels in this module carry Go values
// directly (spec §6).
package packet

import (
	"fmt"
	"strings"
)

// NodeId names a drone, client, or server uniquely within a simulation.
type NodeId uint8

// SRH is a source-routing header: an ordered path of hops plus a cursor
// pointing at the node that currently holds the packet.
type SRH struct {
	HopIndex int
	Hops     []NodeId
}

// NewSRH builds a source routing header with the given hops and hop index.
func NewSRH(hopIndex int, hops ...NodeId) SRH {
	h := make([]NodeId, len(hops))
	copy(h, hops)
	return SRH{HopIndex: hopIndex, Hops: h}
}

// CurrentHop returns the hop the cursor points at, or false if the cursor
// is out of range.
func (s SRH) CurrentHop() (NodeId, bool) {
	if s.HopIndex < 0 || s.HopIndex >= len(s.Hops) {
		return 0, false
	}
	return s.Hops[s.HopIndex], true
}

// IncreaseHopIndex advances the cursor by one.
func (s *SRH) IncreaseHopIndex() {
	s.HopIndex++
}

// DecreaseHopIndex moves the cursor back by one.
func (s *SRH) DecreaseHopIndex() {
	s.HopIndex--
}

// SubRoute returns the prefix hops[0..k), or false if k exceeds len(hops).
func (s SRH) SubRoute(k int) (SRH, bool) {
	if k < 0 || k > len(s.Hops) {
		return SRH{}, false
	}
	hops := make([]NodeId, k)
	copy(hops, s.Hops[:k])
	return SRH{HopIndex: s.HopIndex, Hops: hops}, true
}

// Reversed returns a copy of the header with its hops in reverse order.
// HopIndex is left unchanged; callers set it explicitly per spec §4.4.
func (s SRH) Reversed() SRH {
	hops := make([]NodeId, len(s.Hops))
	for i, h := range s.Hops {
		hops[len(s.Hops)-1-i] = h
	}
	return SRH{HopIndex: s.HopIndex, Hops: hops}
}

// Clone returns a deep copy of the header.
func (s SRH) Clone() SRH {
	hops := make([]NodeId, len(s.Hops))
	copy(hops, s.Hops)
	return SRH{HopIndex: s.HopIndex, Hops: hops}
}

func (s SRH) String() string {
	parts := make([]string, len(s.Hops))
	for i, h := range s.Hops {
		parts[i] = fmt.Sprintf("%d", h)
	}
	return fmt.Sprintf("hop_index:%d hops:[%s]", s.HopIndex, strings.Join(parts, ","))
}
