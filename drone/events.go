package drone

import (
	"fmt"

	"github.com/Rusteze-AP/drone-sim/controller"
	"github.com/Rusteze-AP/drone-sim/packet"
)

// sendControllerEvent delivers an event to the SC. A closed controller
// channel would otherwise panic the dispatcher; that is reported as an
// error instead, consistent with controller.ChannelSender's Send contract.
func (d *Drone) sendControllerEvent(e controller.DroneEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("controller channel closed: %v", r)
		}
	}()
	d.controllerSend <- e
	return nil
}

// emitPacketSent reports a successful forward to the SC (spec §4.2 step 5,
// invariant 4: every successful forward is followed by exactly one
// PacketSent event carrying the same packet contents as delivered).
func (d *Drone) emitPacketSent(pkt *packet.Packet) {
	if err := d.sendControllerEvent(controller.NewPacketSent(pkt)); err != nil {
		d.log.Error("failed to send PacketSent event", "error", err)
		return
	}
	if d.metrics != nil {
		d.metrics.PacketsSent.Inc()
	}
	d.log.Debug("packet forwarded", "packet", pkt, "seq", d.clock.Now())
}

// emitPacketDropped reports a stochastic fragment drop to the SC, carrying
// the packet with its original (pre-increment) hop index.
func (d *Drone) emitPacketDropped(pkt *packet.Packet) {
	if err := d.sendControllerEvent(controller.NewPacketDropped(pkt)); err != nil {
		d.log.Error("failed to send PacketDropped event", "error", err)
		return
	}
	if d.metrics != nil {
		d.metrics.PacketsDropped.Inc()
	}
	d.log.Debug("packet dropped", "packet", pkt, "seq", d.clock.Now())
}
