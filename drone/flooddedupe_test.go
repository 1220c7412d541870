package drone

import "testing"

func TestFloodDedupe_InsertAndLen(t *testing.T) {
	f := newFloodDedupe()

	if f.Insert(1, 100) {
		t.Fatal("first Insert of a new pair should return false")
	}
	if !f.Insert(1, 100) {
		t.Fatal("second Insert of the same pair should return true")
	}
	if f.Insert(1, 101) {
		t.Fatal("a different flood_id for the same initiator should be new")
	}
	if f.Insert(2, 100) {
		t.Fatal("the same flood_id from a different initiator should be new")
	}

	if f.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", f.Len())
	}
}
