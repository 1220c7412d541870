package drone

import (
	"github.com/Rusteze-AP/drone-sim/controller"
	"github.com/Rusteze-AP/drone-sim/packet"
)

// handleCommand is the command handler (spec §4.6). Run only calls it
// while d.terminated is false, and it ignores every command itself once
// terminated, matching the original command_dispatcher's
// `if !self.terminated` guard.
func (d *Drone) handleCommand(cmd controller.DroneCommand) {
	if d.terminated {
		d.log.Warn("drone is terminated, ignoring command", "command", cmd.Kind)
		return
	}
	switch cmd.Kind {
	case controller.CmdAddSender:
		if err := d.addSender(cmd.NodeID, cmd.Sender); err != nil {
			d.log.Error(err.Error())
			if d.metrics != nil {
				d.metrics.CommandErrors.Inc()
			}
		}
	case controller.CmdRemoveSender:
		if err := d.removeSender(cmd.NodeID); err != nil {
			d.log.Error(err.Error())
			if d.metrics != nil {
				d.metrics.CommandErrors.Inc()
			}
		}
	case controller.CmdSetPacketDropRate:
		d.setPdr(cmd.Pdr)
	case controller.CmdCrash:
		d.crash()
	}
}

func (d *Drone) addSender(id packet.NodeId, sender controller.PacketSender) error {
	if _, exists := d.packetSenders[id]; exists {
		return duplicateSenderError(d.id, id)
	}
	d.packetSenders[id] = sender
	d.log.Debug("sender added", "neighbor", id)
	return nil
}

func (d *Drone) removeSender(id packet.NodeId) error {
	if _, exists := d.packetSenders[id]; !exists {
		return unknownSenderError(d.id, id)
	}
	delete(d.packetSenders, id)
	d.health.Remove(id)
	d.log.Debug("sender removed", "neighbor", id)
	return nil
}

func (d *Drone) setPdr(pdr float32) {
	d.pdr = pdr
	d.log.Debug("packet drop rate set", "pdr", pdr)
}

// crash is the one-way Crash transition (spec §4.6, §5). It shifts Run
// into drain mode on the next iteration.
func (d *Drone) crash() {
	d.log.Debug("drone entered crash sequence, terminating")
	d.terminated = true
}
