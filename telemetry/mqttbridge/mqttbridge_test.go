package mqttbridge

import (
	"context"
	"sync"
	"testing"

	"github.com/Rusteze-AP/drone-sim/controller"
	"github.com/Rusteze-AP/drone-sim/drone"
	"github.com/Rusteze-AP/drone-sim/packet"
)

func TestNew_Defaults(t *testing.T) {
	b := New(Config{Broker: "tcp://localhost:1883", DroneID: 11})

	if b.cfg.TopicPrefix != DefaultTopicPrefix {
		t.Errorf("expected default topic prefix %q, got %q", DefaultTopicPrefix, b.cfg.TopicPrefix)
	}
	if b.log == nil {
		t.Error("expected logger to be set")
	}
}

func TestNew_CustomTopicPrefix(t *testing.T) {
	b := New(Config{Broker: "tcp://localhost:1883", DroneID: 11, TopicPrefix: "custom"})
	if b.cfg.TopicPrefix != "custom" {
		t.Errorf("expected topic prefix %q, got %q", "custom", b.cfg.TopicPrefix)
	}
}

func TestStart_MissingBroker(t *testing.T) {
	b := New(Config{DroneID: 11})
	if err := b.Start(context.Background()); err == nil {
		t.Fatal("expected error with empty broker")
	}
}

func TestPublish_NotConnected(t *testing.T) {
	b := New(Config{Broker: "tcp://localhost:1883", DroneID: 11})

	// publish is only reachable through Run; calling it directly with
	// connected==false confirms events are dropped rather than panicking
	// on a nil MQTT client.
	event := controller.NewPacketSent(packet.NewAck(packet.SRH{}, 1, packet.Ack{FragmentIndex: 1}))
	b.publish("drone-sim/11", event)
}

func TestPriorityOf_ShortcutOutranksTelemetry(t *testing.T) {
	shortcut := controller.NewControllerShortcut(packet.NewAck(packet.SRH{}, 1, packet.Ack{}))
	sent := controller.NewPacketSent(packet.NewAck(packet.SRH{}, 1, packet.Ack{}))
	dropped := controller.NewPacketDropped(packet.NewAck(packet.SRH{}, 1, packet.Ack{}))

	if got := priorityOf(shortcut); got != drone.PriorityShortcut {
		t.Errorf("priorityOf(shortcut) = %d, want %d", got, drone.PriorityShortcut)
	}
	if got := priorityOf(sent); got != drone.PriorityTelemetry {
		t.Errorf("priorityOf(sent) = %d, want %d", got, drone.PriorityTelemetry)
	}
	if got := priorityOf(dropped); got != drone.PriorityTelemetry {
		t.Errorf("priorityOf(dropped) = %d, want %d", got, drone.PriorityTelemetry)
	}
}

func TestRun_DrainsQueuedEventsAndStopsOnChannelClose(t *testing.T) {
	b := New(Config{Broker: "tcp://localhost:1883", DroneID: 11})

	var mu sync.Mutex
	var seen []controller.EventKind
	b.publishHook = func(e controller.DroneEvent) {
		mu.Lock()
		seen = append(seen, e.Kind)
		mu.Unlock()
	}

	events := make(chan controller.DroneEvent, 4)
	events <- controller.NewPacketSent(packet.NewAck(packet.SRH{}, 1, packet.Ack{}))
	events <- controller.NewControllerShortcut(packet.NewAck(packet.SRH{}, 2, packet.Ack{}))
	close(events)

	done := make(chan struct{})
	go func() {
		b.Run(context.Background(), events)
		close(done)
	}()

	<-done

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 2 {
		t.Fatalf("Run published %d events, want 2: %v", len(seen), seen)
	}
}

func TestRun_StopsOnContextCancellation(t *testing.T) {
	b := New(Config{Broker: "tcp://localhost:1883", DroneID: 11})

	events := make(chan controller.DroneEvent)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		b.Run(ctx, events)
		close(done)
	}()

	cancel()
	<-done
}
