// Package drone implements the core per-node state machine of the
// simulation: the packet dispatcher, the source-routing check, the
// stochastic-drop fragment path with NACK synthesis, the flood discovery
// protocol, and the interaction with Simulation Controller commands.
//
// Structured as a Config/New/*.go-per-concern package, one file per
// responsibility (dispatch, fragment, response, flood, command).
package drone

import (
	"log/slog"
	mathrand "math/rand"
	"time"

	"github.com/Rusteze-AP/drone-sim/controller"
	"github.com/Rusteze-AP/drone-sim/packet"
)

// Config configures a Drone. All channels are single-process; no wire
// format is defined here (spec §6).
type Config struct {
	// ID is this node's identity, immutable after construction.
	ID packet.NodeId

	// ControllerSend is the outbound channel to the Simulation Controller.
	ControllerSend chan<- controller.DroneEvent
	// ControllerRecv is the inbound command channel from the SC.
	ControllerRecv <-chan controller.DroneCommand
	// PacketRecv is this drone's inbound data-plane channel.
	PacketRecv <-chan *packet.Packet
	// PacketSend is the initial neighbor table: NodeId -> outbound sender.
	PacketSend map[packet.NodeId]controller.PacketSender

	// Pdr is the initial per-fragment drop probability, in [0.0, 1.0].
	Pdr float32

	// Logger receives routing/lifecycle log lines. Falls back to
	// slog.Default() if nil.
	Logger *slog.Logger

	// Metrics, if non-nil, is updated on every forwarding decision. Optional.
	Metrics *Metrics

	// Clock supplies the strictly increasing sequence numbers attached to
	// the debug log lines for sent and dropped packets; DroneEvents
	// themselves carry no timestamp. Defaults to a fresh NewClock() if nil.
	Clock *Clock

	// Rand is the per-drone PRNG used for the stochastic drop decision.
	// If nil, a source seeded deterministically from ID is created.
	// Exposed for deterministic tests.
	Rand *mathrand.Rand
}

// Drone is a single long-lived forwarding node. It owns its channel
// endpoints exclusively and is not safe for concurrent use — exactly one
// goroutine should call Run.
type Drone struct {
	id  packet.NodeId
	pdr float32

	packetSenders map[packet.NodeId]controller.PacketSender
	packetRecv    <-chan *packet.Packet

	controllerSend chan<- controller.DroneEvent
	controllerRecv <-chan controller.DroneCommand

	terminated bool

	floodHistory *floodDedupe
	health       *NeighborHealth

	log     *slog.Logger
	rng     *mathrand.Rand
	metrics *Metrics
	clock   *Clock
}

// New creates a Drone with the given configuration. It runs until either
// PacketRecv closes, or — in live mode — ControllerRecv closes, or a Crash
// command has been processed and PacketRecv has subsequently drained.
func New(cfg Config) *Drone {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	senders := make(map[packet.NodeId]controller.PacketSender, len(cfg.PacketSend))
	for id, s := range cfg.PacketSend {
		senders[id] = s
	}

	rng := cfg.Rand
	if rng == nil {
		rng = mathrand.New(mathrand.NewSource(int64(cfg.ID)*2654435761 + 1))
	}

	clk := cfg.Clock
	if clk == nil {
		clk = NewClock()
	}

	return &Drone{
		id:             cfg.ID,
		pdr:            cfg.Pdr,
		packetSenders:  senders,
		packetRecv:     cfg.PacketRecv,
		controllerSend: cfg.ControllerSend,
		controllerRecv: cfg.ControllerRecv,
		floodHistory:   newFloodDedupe(),
		health:         NewNeighborHealth(),
		log:            logger.With("drone_id", cfg.ID),
		rng:            rng,
		metrics:        cfg.Metrics,
		clock:          clk,
	}
}

// ID returns the drone's node identity.
func (d *Drone) ID() packet.NodeId {
	return d.id
}

// Terminated reports whether this drone has processed a Crash command.
// Once true, it never resets.
func (d *Drone) Terminated() bool {
	return d.terminated
}

// PacketDropRate returns the current per-fragment drop probability.
func (d *Drone) PacketDropRate() float32 {
	return d.pdr
}

// Neighbors returns a snapshot of the current neighbor table's keys.
func (d *Drone) Neighbors() []packet.NodeId {
	ids := make([]packet.NodeId, 0, len(d.packetSenders))
	for id := range d.packetSenders {
		ids = append(ids, id)
	}
	return ids
}

// NeighborLastSeen reports when this drone last selected the neighbor as
// the next hop for a routed packet, if ever. Purely observational.
func (d *Drone) NeighborLastSeen(id packet.NodeId) (time.Time, bool) {
	return d.health.LastSeen(id)
}
