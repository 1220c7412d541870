package drone

import (
	"github.com/Rusteze-AP/drone-sim/controller"
	"github.com/Rusteze-AP/drone-sim/packet"
)

// handleFloodRequest is the flood handler (spec §4.5). Only reached in live
// mode (Gate 1 in dispatch.go already filtered out terminated drones).
func (d *Drone) handleFloodRequest(pkt *packet.Packet) error {
	req := pkt.FloodRequestPayload
	req.PathTrace = append(req.PathTrace, packet.PathEntry{NodeID: d.id, NodeType: packet.Drone})

	if d.floodHistory.Insert(req.InitiatorID, req.FloodID) {
		// Already seen this (initiator, flood_id) pair: known flood.
		if d.metrics != nil {
			d.metrics.FloodDedupHits.Inc()
		}
		return d.respondToFlood(req)
	}

	if d.metrics != nil {
		d.metrics.FloodsSeen.Inc()
	}

	// No neighbors other than whoever just delivered this: treat like a
	// known flood and respond instead of propagating further.
	if len(d.packetSenders) == 1 {
		return d.respondToFlood(req)
	}

	predecessor := req.InitiatorID
	if len(req.PathTrace) >= 2 {
		predecessor = req.PathTrace[len(req.PathTrace)-2].NodeID
	}

	return d.forwardFloodRequest(req, predecessor)
}

// forwardFloodRequest re-broadcasts the (now-mutated) flood request to
// every neighbor except predecessor, each as a fresh packet with an empty
// SRH — flood requests do not use source routing. Send errors are
// aggregated; a failure to one neighbor never aborts propagation to the
// others.
func (d *Drone) forwardFloodRequest(req *packet.FloodRequest, predecessor packet.NodeId) error {
	var errs []error
	for id, sender := range d.packetSenders {
		if id == predecessor {
			continue
		}

		fwd := packet.NewFloodRequest(packet.SRH{}, packet.FloodResponseSessionID, packet.FloodRequest{
			FloodID:     req.FloodID,
			InitiatorID: req.InitiatorID,
			PathTrace:   append([]packet.PathEntry(nil), req.PathTrace...),
		})

		if err := sender.Send(fwd); err != nil {
			errs = append(errs, neighborSendError(d.id, id, err))
			continue
		}
		if d.metrics != nil {
			d.metrics.FloodsForwarded.Inc()
		}
		d.emitPacketSent(fwd)
	}
	if len(errs) > 0 {
		return joinAll(errs)
	}
	return nil
}

// respondToFlood builds and sends a FloodResponse for a known (or
// leaf-terminated) flood.
func (d *Drone) respondToFlood(req *packet.FloodRequest) error {
	dest, resp := d.buildFloodResponse(req)
	if d.metrics != nil {
		d.metrics.FloodsAnswered.Inc()
	}
	return d.deliverFloodResponse(dest, resp)
}

// buildFloodResponse reverses the path trace into a new SRH with
// hop_index = 1, per spec §4.5. If the reversed path is degenerate
// (length < 2), the destination is reported as 0 and the neighbor lookup
// in deliverFloodResponse will fail — the SC shortcut handles that case.
func (d *Drone) buildFloodResponse(req *packet.FloodRequest) (packet.NodeId, *packet.Packet) {
	resp := req.GenerateResponse(packet.FloodResponseSessionID) // hop_index = 0
	resp.RoutingHeader.IncreaseHopIndex()                       // now 1

	dest, ok := resp.RoutingHeader.CurrentHop()
	if !ok {
		return 0, resp
	}
	return dest, resp
}

// deliverFloodResponse sends a synthesized FloodResponse to dest, falling
// back to the SC shortcut both when the direct send fails AND when dest
// has no registered neighbor at all (spec §4.5's degenerate-path note).
func (d *Drone) deliverFloodResponse(dest packet.NodeId, pkt *packet.Packet) error {
	sender, err := d.getSender(dest)
	if err != nil {
		d.log.Warn("no neighbor for flood response destination, trying SC shortcut", "dest", dest)
		if scErr := d.sendControllerEvent(controller.NewControllerShortcut(pkt)); scErr != nil {
			return forwardFailedError(d.id, scErr)
		}
		if d.metrics != nil {
			d.metrics.ControllerShortcuts.Inc()
		}
		d.emitPacketSent(pkt)
		return nil
	}

	if err := d.sendFloodResponse(sender, pkt); err != nil {
		return err
	}
	d.emitPacketSent(pkt)
	return nil
}
