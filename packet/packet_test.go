package packet

import "testing"

func TestPacket_GetFragmentIndex(t *testing.T) {
	frag := NewFragment(NewSRH(0, 1, 2), 7, Fragment{FragmentIndex: 4, TotalNFragments: 10})
	if got := frag.GetFragmentIndex(); got != 4 {
		t.Errorf("GetFragmentIndex() = %d, want 4", got)
	}

	ack := NewAck(NewSRH(0, 1, 2), 7, Ack{FragmentIndex: 9})
	if got := ack.GetFragmentIndex(); got != 0 {
		t.Errorf("GetFragmentIndex() on Ack = %d, want 0", got)
	}
}

func TestPacket_Clone_Independence(t *testing.T) {
	orig := NewFloodRequest(SRH{}, FloodResponseSessionID, FloodRequest{
		FloodID:     1,
		InitiatorID: 21,
		PathTrace:   []PathEntry{{NodeID: 21, NodeType: Client}},
	})

	clone := orig.Clone()
	clone.FloodRequestPayload.PathTrace = append(clone.FloodRequestPayload.PathTrace, PathEntry{NodeID: 11, NodeType: Drone})
	clone.RoutingHeader.Hops = append(clone.RoutingHeader.Hops, 99)

	if len(orig.FloodRequestPayload.PathTrace) != 1 {
		t.Fatalf("mutating clone's PathTrace affected original: %v", orig.FloodRequestPayload.PathTrace)
	}
	if len(orig.RoutingHeader.Hops) != 0 {
		t.Fatalf("mutating clone's RoutingHeader affected original: %v", orig.RoutingHeader.Hops)
	}
}

func TestFloodRequest_GenerateResponse(t *testing.T) {
	req := FloodRequest{
		FloodID:     5,
		InitiatorID: 21,
		PathTrace: []PathEntry{
			{NodeID: 21, NodeType: Client},
			{NodeID: 11, NodeType: Drone},
			{NodeID: 12, NodeType: Drone},
		},
	}

	resp := req.GenerateResponse(FloodResponseSessionID)

	if resp.Kind != KindFloodResponse {
		t.Fatalf("Kind = %s, want FloodResponse", resp.Kind)
	}
	if resp.RoutingHeader.HopIndex != 0 {
		t.Fatalf("HopIndex = %d, want 0 (caller advances it)", resp.RoutingHeader.HopIndex)
	}

	wantHops := []NodeId{12, 11, 21}
	if len(resp.RoutingHeader.Hops) != len(wantHops) {
		t.Fatalf("Hops = %v, want %v", resp.RoutingHeader.Hops, wantHops)
	}
	for i := range wantHops {
		if resp.RoutingHeader.Hops[i] != wantHops[i] {
			t.Fatalf("Hops = %v, want %v", resp.RoutingHeader.Hops, wantHops)
		}
	}
	if resp.FloodResponsePayload.FloodID != req.FloodID {
		t.Fatalf("FloodID = %d, want %d", resp.FloodResponsePayload.FloodID, req.FloodID)
	}
}
