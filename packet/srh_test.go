package packet

import "testing"

func TestSRH_CurrentHop(t *testing.T) {
	tests := []struct {
		name    string
		srh     SRH
		want    NodeId
		wantOk  bool
	}{
		{"middle", NewSRH(1, 1, 2, 3), 2, true},
		{"first", NewSRH(0, 1, 2, 3), 1, true},
		{"last", NewSRH(2, 1, 2, 3), 3, true},
		{"past end", NewSRH(3, 1, 2, 3), 0, false},
		{"negative", SRH{HopIndex: -1, Hops: []NodeId{1, 2}}, 0, false},
		{"empty", NewSRH(0), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.srh.CurrentHop()
			if ok != tt.wantOk || got != tt.want {
				t.Errorf("CurrentHop() = (%d, %t), want (%d, %t)", got, ok, tt.want, tt.wantOk)
			}
		})
	}
}

func TestSRH_IncreaseDecreaseHopIndex(t *testing.T) {
	s := NewSRH(1, 1, 2, 3)
	s.IncreaseHopIndex()
	if s.HopIndex != 2 {
		t.Fatalf("HopIndex = %d, want 2", s.HopIndex)
	}
	s.DecreaseHopIndex()
	s.DecreaseHopIndex()
	if s.HopIndex != 0 {
		t.Fatalf("HopIndex = %d, want 0", s.HopIndex)
	}
}

func TestSRH_SubRoute(t *testing.T) {
	s := NewSRH(2, 11, 12, 13, 21)

	sub, ok := s.SubRoute(3)
	if !ok {
		t.Fatal("SubRoute(3) returned ok=false")
	}
	want := []NodeId{11, 12, 13}
	if len(sub.Hops) != len(want) {
		t.Fatalf("SubRoute(3).Hops = %v, want %v", sub.Hops, want)
	}
	for i := range want {
		if sub.Hops[i] != want[i] {
			t.Fatalf("SubRoute(3).Hops = %v, want %v", sub.Hops, want)
		}
	}

	if _, ok := s.SubRoute(5); ok {
		t.Fatal("SubRoute(5) should fail: k exceeds len(hops)")
	}
	if _, ok := s.SubRoute(-1); ok {
		t.Fatal("SubRoute(-1) should fail")
	}
}

func TestSRH_Reversed(t *testing.T) {
	s := NewSRH(1, 11, 12, 13)
	r := s.Reversed()
	want := []NodeId{13, 12, 11}
	for i := range want {
		if r.Hops[i] != want[i] {
			t.Fatalf("Reversed().Hops = %v, want %v", r.Hops, want)
		}
	}
	if r.HopIndex != s.HopIndex {
		t.Fatalf("Reversed() changed HopIndex to %d, want unchanged %d", r.HopIndex, s.HopIndex)
	}

	// Mutating the reversed copy must not affect the original.
	r.Hops[0] = 99
	if s.Hops[len(s.Hops)-1] == 99 {
		t.Fatal("Reversed() shares backing array with original")
	}
}

func TestSRH_Clone(t *testing.T) {
	s := NewSRH(1, 1, 2)
	c := s.Clone()
	c.Hops[0] = 99
	if s.Hops[0] == 99 {
		t.Fatal("Clone() shares backing array with original")
	}
}
