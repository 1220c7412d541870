// Package beacon implements an optional periodic self-originated flood,
// supplementing the discovery protocol's handling of a FloodRequest on
// receipt with a way to originate one in the first place. Adapted from
// device/advert.Scheduler, generalized from firmware ADVERT packets to
// this module's FloodRequest/PathTrace model.
package beacon

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Rusteze-AP/drone-sim/controller"
	"github.com/Rusteze-AP/drone-sim/packet"
)

// DefaultInterval is deliberately infrequent: a flood is a network-wide
// broadcast, not a cheap operation.
const DefaultInterval = 12 * time.Hour

// Config configures a Beacon.
type Config struct {
	// ID is the originating node's identity.
	ID packet.NodeId

	// Neighbors is a snapshot of the outbound senders the beacon fans a
	// self-originated FloodRequest out to. The caller is responsible for
	// keeping this in step with the owning Drone's own routing table —
	// the beacon does not observe AddSender/RemoveSender commands.
	Neighbors map[packet.NodeId]controller.PacketSender

	// ControllerSend optionally reports a PacketSent event per neighbor
	// copy successfully dispatched, matching spec invariant 4. May be nil
	// if the caller doesn't need beacon traffic reflected to the SC.
	ControllerSend chan<- controller.DroneEvent

	// Interval between self-originated floods. Defaults to DefaultInterval.
	Interval time.Duration

	Logger *slog.Logger
}

// Beacon periodically originates a fresh FloodRequest from its own node,
// fanning it out to every configured neighbor.
type Beacon struct {
	id        packet.NodeId
	neighbors map[packet.NodeId]controller.PacketSender
	events    chan<- controller.DroneEvent
	interval  time.Duration
	log       *slog.Logger

	mu     sync.Mutex
	nextID uint64
	cancel context.CancelFunc
}

// New creates a Beacon. It does not start running until Start is called.
func New(cfg Config) *Beacon {
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Beacon{
		id:        cfg.ID,
		neighbors: cfg.Neighbors,
		events:    cfg.ControllerSend,
		interval:  interval,
		log:       logger.With("drone_id", cfg.ID, "component", "beacon"),
	}
}

// Start runs the beacon's periodic loop until ctx is cancelled. Intended
// to be run in its own goroutine, independent of the owning Drone's Run.
func (b *Beacon) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	b.mu.Lock()
	b.cancel = cancel
	b.mu.Unlock()

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.fire()
		}
	}
}

// Stop cancels the beacon's loop, if running.
func (b *Beacon) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
}

// Fire immediately originates one flood, outside the periodic schedule.
func (b *Beacon) Fire() {
	b.fire()
}

func (b *Beacon) fire() {
	b.mu.Lock()
	floodID := b.nextID
	b.nextID++
	b.mu.Unlock()

	req := packet.FloodRequest{
		FloodID:     floodID,
		InitiatorID: b.id,
		PathTrace:   []packet.PathEntry{{NodeID: b.id, NodeType: packet.Drone}},
	}

	for id, sender := range b.neighbors {
		pkt := packet.NewFloodRequest(packet.SRH{}, packet.FloodResponseSessionID, packet.FloodRequest{
			FloodID:     req.FloodID,
			InitiatorID: req.InitiatorID,
			PathTrace:   append([]packet.PathEntry(nil), req.PathTrace...),
		})
		if err := sender.Send(pkt); err != nil {
			b.log.Warn("failed to send self-originated flood", "neighbor", id, "error", err)
			continue
		}
		if b.events != nil {
			select {
			case b.events <- controller.NewPacketSent(pkt):
			default:
				b.log.Warn("controller channel full, dropping beacon PacketSent event")
			}
		}
	}
	b.log.Debug("originated flood", "flood_id", floodID)
}
