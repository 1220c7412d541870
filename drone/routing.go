package drone

import (
	"github.com/Rusteze-AP/drone-sim/controller"
	"github.com/Rusteze-AP/drone-sim/packet"
)

// getSender looks up a neighbor's outbound sender in the routing table.
func (d *Drone) getSender(id packet.NodeId) (controller.PacketSender, error) {
	s, ok := d.packetSenders[id]
	if !ok {
		return nil, neighborNotFoundError(d.id, id)
	}
	return s, nil
}

// buildSendNack synthesizes a NACK by taking the sub-route hops[0..index),
// reversing it, and sending the result back along that reversed path
// (spec §4.4). index is the exclusive upper bound used to form the
// sub-route — callers pass hop_index or hop_index+1 depending on where in
// the dispatch pipeline the failure was detected.
func (d *Drone) buildSendNack(index int, srh packet.SRH, sessionID uint64, nack packet.Nack) error {
	sub, ok := srh.SubRoute(index)
	if !ok {
		return subRouteError(d.id, srh, index)
	}

	reversed := sub.Reversed()
	reversed.HopIndex = 1

	pkt := packet.NewNack(reversed, sessionID, nack)

	next, ok := reversed.CurrentHop()
	if !ok {
		return nackDestinationUnknownError(d.id)
	}
	sender, err := d.getSender(next)
	if err != nil {
		return err
	}
	return d.sendNack(sender, pkt)
}
