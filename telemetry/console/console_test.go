package console

import (
	"bufio"
	"net"
	"strings"
	"testing"

	"github.com/Rusteze-AP/drone-sim/controller"
	"github.com/Rusteze-AP/drone-sim/drone"
	"github.com/Rusteze-AP/drone-sim/packet"
)

func testDrone(t *testing.T) *drone.Drone {
	t.Helper()
	return drone.New(drone.Config{
		ID:             11,
		ControllerSend: make(chan controller.DroneEvent, 1),
		ControllerRecv: make(chan controller.DroneCommand),
		PacketRecv:     make(chan *packet.Packet),
		PacketSend: map[packet.NodeId]controller.PacketSender{
			12: controller.NewChannelSender(make(chan *packet.Packet, 1)),
		},
		Pdr: 0.25,
	})
}

func TestConsole_StatusAndNeighborsAndPdr(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	c := New(Config{Drone: testDrone(t)})
	go c.serve(server)

	clientReader := bufio.NewReader(client)

	send := func(cmd string) string {
		if _, err := client.Write([]byte(cmd + "\n")); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		line, err := clientReader.ReadString('\n')
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		return line
	}

	status := send("status")
	if want := "id=11"; !strings.Contains(status, want) {
		t.Errorf("status response %q does not contain %q", status, want)
	}

	neighbors := send("neighbors")
	if want := "neighbors=12@never"; !strings.Contains(neighbors, want) {
		t.Errorf("neighbors response %q does not contain %q", neighbors, want)
	}

	pdr := send("pdr")
	if want := "pdr=0.250"; !strings.Contains(pdr, want) {
		t.Errorf("pdr response %q does not contain %q", pdr, want)
	}

	unknown := send("frobnicate")
	if want := "unknown command"; !strings.Contains(unknown, want) {
		t.Errorf("response %q does not contain %q", unknown, want)
	}
}

func TestConsole_IsConnected(t *testing.T) {
	c := New(Config{Drone: testDrone(t)})
	if c.IsConnected() {
		t.Error("console should report not connected before Start")
	}
}
