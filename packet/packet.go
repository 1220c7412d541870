package packet

import "fmt"

// NodeType classifies an entrant in a flood's path trace.
type NodeType int

const (
	Client NodeType = iota
	Drone
	Server
)

func (t NodeType) String() string {
	switch t {
	case Client:
		return "Client"
	case Drone:
		return "Drone"
	case Server:
		return "Server"
	default:
		return "Unknown"
	}
}

// PathEntry is one hop recorded in a flood's path trace.
type PathEntry struct {
	NodeID   NodeId
	NodeType NodeType
}

// NackType is the reason a Nack was synthesized.
type NackType int

const (
	// ErrorInRouting means the next hop named by the header is not a
	// reachable neighbor.
	ErrorInRouting NackType = iota
	// DestinationIsDrone means the header's path ends at this drone.
	DestinationIsDrone
	// UnexpectedRecipient means this drone is not the header's current hop.
	UnexpectedRecipient
	// Dropped means the fragment was discarded by the stochastic drop.
	Dropped
)

func (t NackType) String() string {
	switch t {
	case ErrorInRouting:
		return "ErrorInRouting"
	case DestinationIsDrone:
		return "DestinationIsDrone"
	case UnexpectedRecipient:
		return "UnexpectedRecipient"
	case Dropped:
		return "Dropped"
	default:
		return "Unknown"
	}
}

// Nack carries the fragment index it refers to and the reason. Node is
// populated only for ErrorInRouting and UnexpectedRecipient.
type Nack struct {
	FragmentIndex uint64
	Type          NackType
	Node          NodeId
}

// Fragment is one piece of a fragmented message.
type Fragment struct {
	FragmentIndex   uint64
	TotalNFragments uint64
	Length          uint8
	Data            [128]byte
}

// Ack acknowledges receipt of a fragment.
type Ack struct {
	FragmentIndex uint64
}

// FloodRequest propagates network discovery from an initiator, accumulating
// a path trace as it travels.
type FloodRequest struct {
	FloodID     uint64
	InitiatorID NodeId
	PathTrace   []PathEntry
}

// FloodResponse reflects a FloodRequest's path trace back to its initiator.
type FloodResponse struct {
	FloodID   uint64
	PathTrace []PathEntry
}

// Kind discriminates the Packet tagged union.
type Kind int

const (
	KindFragment Kind = iota
	KindAck
	KindNack
	KindFloodRequest
	KindFloodResponse
)

func (k Kind) String() string {
	switch k {
	case KindFragment:
		return "Fragment"
	case KindAck:
		return "Ack"
	case KindNack:
		return "Nack"
	case KindFloodRequest:
		return "FloodRequest"
	case KindFloodResponse:
		return "FloodResponse"
	default:
		return "Unknown"
	}
}

// Packet is the envelope carried on every channel: a routing header, a
// session id, and exactly one payload variant selected by Kind.
type Packet struct {
	Kind          Kind
	RoutingHeader SRH
	SessionID     uint64

	FragmentPayload      *Fragment
	AckPayload           *Ack
	NackPayload          *Nack
	FloodRequestPayload  *FloodRequest
	FloodResponsePayload *FloodResponse
}

// GetFragmentIndex returns the fragment index for MsgFragment packets, or 0
// for every other variant.
func (p *Packet) GetFragmentIndex() uint64 {
	if p.Kind == KindFragment && p.FragmentPayload != nil {
		return p.FragmentPayload.FragmentIndex
	}
	return 0
}

// Clone returns a deep copy of the packet, safe to mutate independently of
// the original.
func (p *Packet) Clone() *Packet {
	c := &Packet{
		Kind:          p.Kind,
		RoutingHeader: p.RoutingHeader.Clone(),
		SessionID:     p.SessionID,
	}
	if p.FragmentPayload != nil {
		f := *p.FragmentPayload
		c.FragmentPayload = &f
	}
	if p.AckPayload != nil {
		a := *p.AckPayload
		c.AckPayload = &a
	}
	if p.NackPayload != nil {
		n := *p.NackPayload
		c.NackPayload = &n
	}
	if p.FloodRequestPayload != nil {
		fr := *p.FloodRequestPayload
		fr.PathTrace = append([]PathEntry(nil), p.FloodRequestPayload.PathTrace...)
		c.FloodRequestPayload = &fr
	}
	if p.FloodResponsePayload != nil {
		fr := *p.FloodResponsePayload
		fr.PathTrace = append([]PathEntry(nil), p.FloodResponsePayload.PathTrace...)
		c.FloodResponsePayload = &fr
	}
	return c
}

func (p *Packet) String() string {
	return fmt.Sprintf("Packet{kind:%s session:%d %s}", p.Kind, p.SessionID, p.RoutingHeader)
}

// NewFragment builds a MsgFragment packet.
func NewFragment(srh SRH, sessionID uint64, frag Fragment) *Packet {
	return &Packet{Kind: KindFragment, RoutingHeader: srh, SessionID: sessionID, FragmentPayload: &frag}
}

// NewAck builds an Ack packet.
func NewAck(srh SRH, sessionID uint64, ack Ack) *Packet {
	return &Packet{Kind: KindAck, RoutingHeader: srh, SessionID: sessionID, AckPayload: &ack}
}

// NewNack builds a Nack packet.
func NewNack(srh SRH, sessionID uint64, nack Nack) *Packet {
	return &Packet{Kind: KindNack, RoutingHeader: srh, SessionID: sessionID, NackPayload: &nack}
}

// NewFloodRequest builds a FloodRequest packet. Flood requests do not use
// source routing — srh is typically the zero value.
func NewFloodRequest(srh SRH, sessionID uint64, req FloodRequest) *Packet {
	return &Packet{Kind: KindFloodRequest, RoutingHeader: srh, SessionID: sessionID, FloodRequestPayload: &req}
}

// NewFloodResponse builds a FloodResponse packet.
func NewFloodResponse(srh SRH, sessionID uint64, res FloodResponse) *Packet {
	return &Packet{Kind: KindFloodResponse, RoutingHeader: srh, SessionID: sessionID, FloodResponsePayload: &res}
}

// FloodResponseSessionID is the session id used for synthesized flood
// responses. Fixed at 1 since a flood response never correlates to a
// caller-chosen session.
const FloodResponseSessionID uint64 = 1

// GenerateResponse builds a FloodResponse from this request's accumulated
// path trace, per spec §6. The returned packet's routing header has its
// hops set to the reversed path trace node ids, with HopIndex left at 0 —
// the caller (drone/flood.go) bumps it to 1 before use, matching the
// original's "generate_response returns hop_index = 0" contract.
func (r FloodRequest) GenerateResponse(sessionID uint64) *Packet {
	hops := make([]NodeId, len(r.PathTrace))
	for i, e := range r.PathTrace {
		hops[len(r.PathTrace)-1-i] = e.NodeID
	}
	trace := append([]PathEntry(nil), r.PathTrace...)
	return NewFloodResponse(SRH{HopIndex: 0, Hops: hops}, sessionID, FloodResponse{
		FloodID:   r.FloodID,
		PathTrace: trace,
	})
}
