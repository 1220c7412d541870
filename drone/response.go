package drone

import (
	"github.com/Rusteze-AP/drone-sim/controller"
	"github.com/Rusteze-AP/drone-sim/packet"
)

// forwardWithShortcut implements the forward-with-shortcut policy of
// spec §4.4: Ack, Nack, and FloodResponse packets that fail their direct
// neighbor send get one more attempt via the SC's ControllerShortcut
// channel before the forward is reported as a terminal failure. Control-
// plane and error-reporting traffic must never be silently lost due to a
// single neighbor failure.
func (d *Drone) forwardWithShortcut(sender controller.PacketSender, pkt *packet.Packet) error {
	if err := sender.Send(pkt); err != nil {
		d.log.Warn("failed to forward packet to neighbor, trying SC shortcut", "error", err)
		if scErr := d.sendControllerEvent(controller.NewControllerShortcut(pkt)); scErr != nil {
			return forwardFailedError(d.id, scErr)
		}
		if d.metrics != nil {
			d.metrics.ControllerShortcuts.Inc()
		}
		d.log.Debug("forwarded via SC shortcut", "packet", pkt)
		return nil
	}
	return nil
}

// sendAck forwards an Ack packet with the shortcut policy.
func (d *Drone) sendAck(sender controller.PacketSender, pkt *packet.Packet) error {
	return d.forwardWithShortcut(sender, pkt)
}

// sendNack forwards a Nack packet with the shortcut policy.
func (d *Drone) sendNack(sender controller.PacketSender, pkt *packet.Packet) error {
	return d.forwardWithShortcut(sender, pkt)
}

// sendFloodResponse forwards a FloodResponse packet with the shortcut policy.
func (d *Drone) sendFloodResponse(sender controller.PacketSender, pkt *packet.Packet) error {
	return d.forwardWithShortcut(sender, pkt)
}
