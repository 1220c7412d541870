package drone

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Rusteze-AP/drone-sim/packet"
)

// Metrics tracks per-drone Prometheus counters. Generalizes
// device/router.RouterCounters (a bare atomic struct) into named
// prometheus.Counters behind a nil-safe struct, registered into a
// caller-supplied prometheus.Registerer rather than the global
// DefaultRegisterer — a simulation can run many drones in one process, each
// needing its own labeled series.
type Metrics struct {
	PacketsSent         prometheus.Counter
	PacketsDropped      prometheus.Counter
	ControllerShortcuts prometheus.Counter
	FloodsSeen          prometheus.Counter
	FloodsForwarded     prometheus.Counter
	FloodsAnswered      prometheus.Counter
	FloodDedupHits      prometheus.Counter
	CommandErrors       prometheus.Counter
}

// NewMetrics creates and registers the counters for a single drone,
// labeled with its id. A nil reg is replaced by a fresh
// prometheus.NewRegistry(). Panics if registration fails (duplicate id
// registered against the same registerer), matching the pack's
// MustRegister convention for construction-time errors.
func NewMetrics(reg prometheus.Registerer, id packet.NodeId) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	labels := prometheus.Labels{"drone_id": strconv.Itoa(int(id))}

	m := &Metrics{
		PacketsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "drone_packets_sent_total",
			Help:        "Packets successfully forwarded to a neighbor or delivered via the SC shortcut.",
			ConstLabels: labels,
		}),
		PacketsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "drone_packets_dropped_total",
			Help:        "Fragments dropped by the stochastic packet drop rate.",
			ConstLabels: labels,
		}),
		ControllerShortcuts: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "drone_controller_shortcuts_total",
			Help:        "Packets delivered to the SC in place of a failed or missing neighbor send.",
			ConstLabels: labels,
		}),
		FloodsSeen: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "drone_floods_seen_total",
			Help:        "Distinct (initiator_id, flood_id) flood requests newly recorded.",
			ConstLabels: labels,
		}),
		FloodsForwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "drone_floods_forwarded_total",
			Help:        "Flood request copies successfully re-broadcast to a neighbor.",
			ConstLabels: labels,
		}),
		FloodsAnswered: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "drone_floods_answered_total",
			Help:        "Flood responses synthesized, either for a known flood or a leaf node.",
			ConstLabels: labels,
		}),
		FloodDedupHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "drone_flood_dedup_hits_total",
			Help:        "Flood requests recognized as already seen.",
			ConstLabels: labels,
		}),
		CommandErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "drone_command_errors_total",
			Help:        "SC commands that failed to apply (duplicate/unknown sender id).",
			ConstLabels: labels,
		}),
	}

	reg.MustRegister(
		m.PacketsSent,
		m.PacketsDropped,
		m.ControllerShortcuts,
		m.FloodsSeen,
		m.FloodsForwarded,
		m.FloodsAnswered,
		m.FloodDedupHits,
		m.CommandErrors,
	)

	return m
}
