package drone

import (
	"testing"

	"github.com/Rusteze-AP/drone-sim/controller"
	"github.com/Rusteze-AP/drone-sim/packet"
)

func TestAddSender_Duplicate(t *testing.T) {
	existing := &fakeSender{}
	d, _ := newTestDrone(11, 0.0, map[packet.NodeId]*fakeSender{12: existing})

	if err := d.addSender(12, &fakeSender{}); err == nil {
		t.Fatal("addSender should reject a duplicate id")
	}
	if _, err := d.getSender(12); err != nil {
		t.Fatal("the original sender for 12 should still be registered")
	}
}

func TestRemoveSender_Unknown(t *testing.T) {
	d, _ := newTestDrone(11, 0.0, nil)
	if err := d.removeSender(99); err == nil {
		t.Fatal("removeSender should reject an unknown id")
	}
}

func TestRemoveSender_ClearsHealth(t *testing.T) {
	d, _ := newTestDrone(11, 0.0, map[packet.NodeId]*fakeSender{12: {}})
	d.health.Touch(12)
	if _, ok := d.health.LastSeen(12); !ok {
		t.Fatal("health should have recorded neighbor 12")
	}

	if err := d.removeSender(12); err != nil {
		t.Fatalf("removeSender(12) = %v, want nil", err)
	}
	if _, ok := d.health.LastSeen(12); ok {
		t.Fatal("health entry for 12 should be cleared after RemoveSender")
	}
}

func TestSetPdr(t *testing.T) {
	d, _ := newTestDrone(11, 0.0, nil)
	d.handleCommand(controller.NewSetPacketDropRate(0.75))
	if d.PacketDropRate() != 0.75 {
		t.Fatalf("PacketDropRate() = %v, want 0.75", d.PacketDropRate())
	}
}

func TestCrash_Idempotent(t *testing.T) {
	d, _ := newTestDrone(11, 0.0, nil)
	d.handleCommand(controller.NewCrash())
	d.handleCommand(controller.NewCrash())
	if !d.Terminated() {
		t.Fatal("drone should be terminated after Crash")
	}
}
