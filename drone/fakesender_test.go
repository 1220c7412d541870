package drone

import (
	"errors"
	"sync"

	"github.com/Rusteze-AP/drone-sim/packet"
)

// fakeSender is a hand-rolled controller.PacketSender double, styled after
// device/router/router_test.go's mockTransport: it records every packet
// handed to it and can be told to fail on demand.
type fakeSender struct {
	mu   sync.Mutex
	sent []*packet.Packet
	fail bool
}

func (f *fakeSender) Send(pkt *packet.Packet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("simulated send failure")
	}
	f.sent = append(f.sent, pkt)
	return nil
}

func (f *fakeSender) last() *packet.Packet {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return nil
	}
	return f.sent[len(f.sent)-1]
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}
