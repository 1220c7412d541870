// Package controller defines the control-plane contract between a drone and
// the Simulation Controller (SC): the commands the SC issues and the events
// the drone reports back (spec §6).
package controller

import (
	"fmt"

	"github.com/Rusteze-AP/drone-sim/packet"
)

// CommandKind discriminates the DroneCommand tagged union.
type CommandKind int

const (
	CmdAddSender CommandKind = iota
	CmdRemoveSender
	CmdSetPacketDropRate
	CmdCrash
)

func (k CommandKind) String() string {
	switch k {
	case CmdAddSender:
		return "AddSender"
	case CmdRemoveSender:
		return "RemoveSender"
	case CmdSetPacketDropRate:
		return "SetPacketDropRate"
	case CmdCrash:
		return "Crash"
	default:
		return "Unknown"
	}
}

// PacketSender is the outbound handle a drone holds open to one neighbor.
// It is modeled as an interface, mirroring transport.Transport's
// SendPacket(pkt) error method, rather than a bare Go channel, so that a
// failed delivery (closed channel, crashed neighbor) is representable as a
// returned error instead of a panic or an indefinite block. See
// ChannelSender for the channel-backed implementation the SC clones and
// hands out at construction and via AddSender.
type PacketSender interface {
	Send(pkt *packet.Packet) error
}

// ChannelSender adapts a plain Go channel into a PacketSender. Send never
// blocks: per spec §5 channels are modeled as unbounded, so a full buffer
// is reported the same way a closed channel is — as a delivery failure the
// caller can fall back on, never a panic propagating out of the dispatcher.
type ChannelSender struct {
	ch chan<- *packet.Packet
}

// NewChannelSender wraps ch as a PacketSender.
func NewChannelSender(ch chan<- *packet.Packet) *ChannelSender {
	return &ChannelSender{ch: ch}
}

// Send attempts a non-blocking send on the wrapped channel.
func (c *ChannelSender) Send(pkt *packet.Packet) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("send on closed channel: %v", r)
		}
	}()
	select {
	case c.ch <- pkt:
		return nil
	default:
		return fmt.Errorf("channel send did not complete")
	}
}

// DroneCommand is a message from the SC to a drone.
type DroneCommand struct {
	Kind CommandKind

	// AddSender / RemoveSender
	NodeID NodeIDField
	Sender PacketSender

	// SetPacketDropRate
	Pdr float32
}

// NodeIDField aliases packet.NodeId so callers can read DroneCommand.NodeID
// without importing packet directly for the common case.
type NodeIDField = packet.NodeId

// NewAddSender builds an AddSender command.
func NewAddSender(id packet.NodeId, sender PacketSender) DroneCommand {
	return DroneCommand{Kind: CmdAddSender, NodeID: id, Sender: sender}
}

// NewRemoveSender builds a RemoveSender command.
func NewRemoveSender(id packet.NodeId) DroneCommand {
	return DroneCommand{Kind: CmdRemoveSender, NodeID: id}
}

// NewSetPacketDropRate builds a SetPacketDropRate command.
func NewSetPacketDropRate(pdr float32) DroneCommand {
	return DroneCommand{Kind: CmdSetPacketDropRate, Pdr: pdr}
}

// NewCrash builds a Crash command.
func NewCrash() DroneCommand {
	return DroneCommand{Kind: CmdCrash}
}

// EventKind discriminates the DroneEvent tagged union.
type EventKind int

const (
	EventPacketSent EventKind = iota
	EventPacketDropped
	EventControllerShortcut
)

func (k EventKind) String() string {
	switch k {
	case EventPacketSent:
		return "PacketSent"
	case EventPacketDropped:
		return "PacketDropped"
	case EventControllerShortcut:
		return "ControllerShortcut"
	default:
		return "Unknown"
	}
}

// DroneEvent is a message from a drone to the SC.
type DroneEvent struct {
	Kind   EventKind
	Packet *packet.Packet
}

func (e DroneEvent) String() string {
	return fmt.Sprintf("DroneEvent{%s %s}", e.Kind, e.Packet)
}

// NewPacketSent builds a PacketSent event.
func NewPacketSent(p *packet.Packet) DroneEvent {
	return DroneEvent{Kind: EventPacketSent, Packet: p}
}

// NewPacketDropped builds a PacketDropped event.
func NewPacketDropped(p *packet.Packet) DroneEvent {
	return DroneEvent{Kind: EventPacketDropped, Packet: p}
}

// NewControllerShortcut builds a ControllerShortcut event.
func NewControllerShortcut(p *packet.Packet) DroneEvent {
	return DroneEvent{Kind: EventControllerShortcut, Packet: p}
}
