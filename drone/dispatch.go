package drone

import (
	"errors"

	"github.com/Rusteze-AP/drone-sim/controller"
	"github.com/Rusteze-AP/drone-sim/packet"
)

// dispatch is the packet dispatcher (spec §4.2). It is called once per
// packet taken by value off PacketRecv.
func (d *Drone) dispatch(pkt *packet.Packet) {
	// Gate 1: a terminated drone discovering new topology would poison it.
	if d.terminated && pkt.Kind == packet.KindFloodRequest {
		d.log.Warn("drone is terminated, ignoring flood request", "packet", pkt)
		return
	}

	// Gate 2: flood requests skip the generic header check entirely — they
	// don't carry a source route.
	if pkt.Kind == packet.KindFloodRequest {
		if err := d.handleFloodRequest(pkt); err != nil {
			d.log.Error(err.Error())
		}
		return
	}

	sender, handled, err := d.genericPacketCheck(pkt)
	if err != nil {
		d.log.Error(err.Error())
		return
	}
	if handled {
		// Delivered via SC shortcut during the header check itself (a
		// missing next-hop neighbor for a non-fragment packet).
		d.emitPacketSent(pkt)
		return
	}

	var fwdErr error
	switch pkt.Kind {
	case packet.KindAck:
		fwdErr = d.sendAck(sender, pkt)
	case packet.KindNack:
		fwdErr = d.sendNack(sender, pkt)
	case packet.KindFloodResponse:
		fwdErr = d.sendFloodResponse(sender, pkt)
	case packet.KindFragment:
		if d.terminated {
			nack := packet.Nack{
				FragmentIndex: pkt.GetFragmentIndex(),
				Type:          packet.ErrorInRouting,
				Node:          d.id,
			}
			fwdErr = d.buildSendNack(pkt.RoutingHeader.HopIndex, pkt.RoutingHeader, pkt.SessionID, nack)
		} else {
			fwdErr = d.sendFragment(sender, pkt)
		}
	}

	if fwdErr != nil {
		if errors.Is(fwdErr, errFragmentDropped) {
			d.log.Warn(fwdErr.Error())
		} else {
			d.log.Error(fwdErr.Error())
		}
		return
	}

	d.emitPacketSent(pkt)
}

// genericPacketCheck is the routing-header validation common to every
// non-flood-request packet (spec §4.2 step 3). It returns the outbound
// sender to the next hop, or handled=true if the packet was already
// delivered via the SC shortcut during the check (the degenerate
// non-fragment, missing-neighbor case), or an error if the packet must be
// dropped.
func (d *Drone) genericPacketCheck(pkt *packet.Packet) (sender controller.PacketSender, handled bool, err error) {
	current, ok := pkt.RoutingHeader.CurrentHop()
	if !ok {
		err = d.failMalformedHeader(pkt, packet.Nack{
			FragmentIndex: pkt.GetFragmentIndex(),
			Type:          packet.UnexpectedRecipient,
			Node:          d.id,
		}, pkt.RoutingHeader.HopIndex, noCurrentHopError(d.id, pkt.RoutingHeader))
		return nil, false, err
	}
	return d.checkNextHop(current, pkt)
}

// checkNextHop is step 3b-3d of the generic header check.
func (d *Drone) checkNextHop(current packet.NodeId, pkt *packet.Packet) (sender controller.PacketSender, handled bool, err error) {
	if current != d.id {
		err = d.failMalformedHeader(pkt, packet.Nack{
			FragmentIndex: pkt.GetFragmentIndex(),
			Type:          packet.UnexpectedRecipient,
			Node:          d.id,
		}, pkt.RoutingHeader.HopIndex+1, wrongRecipientError(d.id, current))
		return nil, false, err
	}

	pkt.RoutingHeader.IncreaseHopIndex()
	next, ok := pkt.RoutingHeader.CurrentHop()
	if !ok {
		err = d.failMalformedHeader(pkt, packet.Nack{
			FragmentIndex: pkt.GetFragmentIndex(),
			Type:          packet.DestinationIsDrone,
		}, pkt.RoutingHeader.HopIndex, noNextHopError(d.id))
		return nil, false, err
	}

	s, lookupErr := d.getSender(next)
	if lookupErr != nil {
		return d.failNeighborLookup(pkt, next, lookupErr)
	}
	d.health.Touch(next)
	return s, false, nil
}

// failMalformedHeader handles steps 3a/3b/3c: malformed headers are logged
// and dropped; fragments additionally get a synthesized NACK. Non-fragments
// are never shortcut here — only a missing next-hop neighbor (step 3d)
// attempts the SC shortcut, per spec §7's error table.
func (d *Drone) failMalformedHeader(pkt *packet.Packet, nack packet.Nack, nackIndex int, baseErr error) error {
	if pkt.Kind != packet.KindFragment {
		return baseErr
	}
	if nackErr := d.buildSendNack(nackIndex, pkt.RoutingHeader, pkt.SessionID, nack); nackErr != nil {
		return joinErrs(baseErr, nackErr)
	}
	return baseErr
}

// failNeighborLookup handles step 3d: the next hop named by the header has
// no registered sender. Fragments get a synthesized ErrorInRouting NACK.
// Non-fragments (Ack/Nack/FloodResponse) have no neighbor to retry, so they
// go straight to the SC shortcut.
func (d *Drone) failNeighborLookup(pkt *packet.Packet, next packet.NodeId, lookupErr error) (controller.PacketSender, bool, error) {
	if pkt.Kind == packet.KindFragment {
		nack := packet.Nack{
			FragmentIndex: pkt.GetFragmentIndex(),
			Type:          packet.ErrorInRouting,
			Node:          next,
		}
		if nackErr := d.buildSendNack(pkt.RoutingHeader.HopIndex, pkt.RoutingHeader, pkt.SessionID, nack); nackErr != nil {
			return nil, false, joinErrs(lookupErr, nackErr)
		}
		return nil, false, lookupErr
	}

	d.log.Warn("neighbor not in routing table, trying SC shortcut", "neighbor", next)
	if scErr := d.sendControllerEvent(controller.NewControllerShortcut(pkt)); scErr != nil {
		return nil, false, forwardFailedError(d.id, scErr)
	}
	if d.metrics != nil {
		d.metrics.ControllerShortcuts.Inc()
	}
	return nil, true, nil
}
