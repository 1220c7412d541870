package drone

// Run is the drone's event loop (spec §4.1). It selects between the
// controller channel and the packet channel, biased toward the controller
// whenever both have a message available — this ordering is load-bearing:
// it ensures SC commands (especially Crash and topology mutations) take
// effect before further data-plane work. Run blocks until either channel
// is permanently closed; once Crash has been processed it switches into
// drain mode, only reading from PacketRecv until it closes.
//
// This corresponds to the original Rust implementation's internal_run,
// translated from crossbeam's select_biased! into the non-blocking-poll
// emulation spec §9 describes for languages without native biased select.
func (d *Drone) Run() {
	for {
		if d.terminated {
			pkt, ok := <-d.packetRecv
			if !ok {
				d.log.Error("drone receiver disconnected, terminating thread")
				return
			}
			d.dispatch(pkt)
			continue
		}

		// Non-blocking poll of the controller channel first: if a command
		// is already waiting, serve it before considering any packet.
		select {
		case cmd, ok := <-d.controllerRecv:
			if !ok {
				d.log.Error("simulation controller receiver disconnected, terminating thread")
				return
			}
			d.handleCommand(cmd)
			continue
		default:
		}

		select {
		case cmd, ok := <-d.controllerRecv:
			if !ok {
				d.log.Error("simulation controller receiver disconnected, terminating thread")
				return
			}
			d.handleCommand(cmd)
		case pkt, ok := <-d.packetRecv:
			if !ok {
				d.log.Error("drone receiver disconnected, terminating thread")
				return
			}
			d.dispatch(pkt)
		}
	}
}
