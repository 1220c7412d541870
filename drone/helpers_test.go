package drone

import (
	"github.com/Rusteze-AP/drone-sim/controller"
	"github.com/Rusteze-AP/drone-sim/packet"
)

// newTestDrone builds a Drone wired for direct dispatch()/handleCommand()
// calls in tests, bypassing Run — no goroutine is needed to exercise the
// dispatch logic in isolation.
func newTestDrone(id packet.NodeId, pdr float32, neighbors map[packet.NodeId]*fakeSender) (*Drone, chan controller.DroneEvent) {
	events := make(chan controller.DroneEvent, 64)

	senders := make(map[packet.NodeId]controller.PacketSender, len(neighbors))
	for nid, s := range neighbors {
		senders[nid] = s
	}

	d := New(Config{
		ID:             id,
		ControllerSend: events,
		ControllerRecv: make(chan controller.DroneCommand),
		PacketRecv:     make(chan *packet.Packet),
		PacketSend:     senders,
		Pdr:            pdr,
	})
	return d, events
}

func fragmentSRH(hopIndex int) packet.SRH {
	return packet.NewSRH(hopIndex, 1, 11, 12, 21)
}

func drainEvents(ch chan controller.DroneEvent) []controller.DroneEvent {
	var out []controller.DroneEvent
	for {
		select {
		case e := <-ch:
			out = append(out, e)
		default:
			return out
		}
	}
}
