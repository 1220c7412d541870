package drone

import (
	"errors"
	"fmt"

	"github.com/Rusteze-AP/drone-sim/packet"
)

// joinErrs combines a primary failure with a secondary one encountered
// while trying to report/recover from it (e.g. the NACK synthesis for an
// already-failed header check also failing).
func joinErrs(primary, secondary error) error {
	return errors.Join(primary, secondary)
}

func duplicateSenderError(self, id packet.NodeId) error {
	return fmt.Errorf("drone %d: sender with id %d already exists", self, id)
}

func unknownSenderError(self, id packet.NodeId) error {
	return fmt.Errorf("drone %d: sender with id %d not found", self, id)
}

func noCurrentHopError(self packet.NodeId, srh packet.SRH) error {
	return fmt.Errorf("drone %d: no current hop found, header %s", self, srh)
}

func wrongRecipientError(self, current packet.NodeId) error {
	return fmt.Errorf("drone %d: packet received by the wrong node (expected current hop %d)", self, current)
}

func noNextHopError(self packet.NodeId) error {
	return fmt.Errorf("drone %d: no next hop found", self)
}

func neighborNotFoundError(self, next packet.NodeId) error {
	return fmt.Errorf("drone %d: neighbor %d not in routing table", self, next)
}

func subRouteError(self packet.NodeId, srh packet.SRH, index int) error {
	return fmt.Errorf("drone %d: unable to build sub-route up to index %d from header %s", self, index, srh)
}

func nackDestinationUnknownError(self packet.NodeId) error {
	return fmt.Errorf("drone %d: no next hop for synthesized NACK", self)
}

func forwardFailedError(self packet.NodeId, err error) error {
	return fmt.Errorf("drone %d: unable to forward packet to neither next hop nor SC: %w", self, err)
}

func neighborSendError(self, neighbor packet.NodeId, err error) error {
	return fmt.Errorf("drone %d: error forwarding flood request to neighbor %d: %w", self, neighbor, err)
}

// joinAll aggregates independent send errors from a fan-out (spec §4.5:
// "Collect all send errors into a single aggregated report without
// aborting propagation").
func joinAll(errs []error) error {
	return errors.Join(errs...)
}
