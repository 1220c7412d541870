package drone

import (
	"errors"

	"github.com/Rusteze-AP/drone-sim/controller"
	"github.com/Rusteze-AP/drone-sim/packet"
)

// errFragmentDropped is returned by sendFragment when the stochastic drop
// fired. It is a distinguished sentinel so the dispatcher logs it at
// warning level rather than error (spec §4.3 step 1.d, §7).
var errFragmentDropped = errors.New("fragment dropped")

// toDrop draws a uniform random value and compares it against the current
// drop rate. Uses only per-fragment randomness — no memory of past
// decisions (spec §4.3).
func (d *Drone) toDrop() bool {
	r := d.rng.Float32()
	return d.pdr > r
}

// sendFragment is the stochastic-drop fragment handler (spec §4.3). pkt's
// routing header is expected to already have its hop index advanced to the
// next hop (the dispatcher's generic header check did this before calling
// sendFragment).
func (d *Drone) sendFragment(sender controller.PacketSender, pkt *packet.Packet) error {
	if d.toDrop() {
		// Restore hop_index to the position where the drone received the
		// packet, for telemetry fidelity.
		pkt.RoutingHeader.DecreaseHopIndex()

		d.emitPacketDropped(pkt)

		nackIndex := pkt.RoutingHeader.HopIndex + 1
		nack := packet.Nack{
			FragmentIndex: pkt.GetFragmentIndex(),
			Type:          packet.Dropped,
		}
		if err := d.buildSendNack(nackIndex, pkt.RoutingHeader, pkt.SessionID, nack); err != nil {
			return err
		}
		return errFragmentDropped
	}

	return sender.Send(pkt)
}
