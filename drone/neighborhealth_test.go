package drone

import (
	"testing"
	"time"
)

func TestNeighborHealth_TouchAndRemove(t *testing.T) {
	h := NewNeighborHealth()

	if _, ok := h.LastSeen(12); ok {
		t.Fatal("untouched neighbor should report not-seen")
	}

	var now time.Time
	h.nowFn = func() time.Time { return now }

	now = time.Unix(100, 0)
	h.Touch(12)

	seen, ok := h.LastSeen(12)
	if !ok || !seen.Equal(now) {
		t.Fatalf("LastSeen(12) = (%v, %t), want (%v, true)", seen, ok, now)
	}

	h.Remove(12)
	if _, ok := h.LastSeen(12); ok {
		t.Fatal("Remove should clear the tracked neighbor")
	}
}
