// Package mqttbridge publishes a drone's outbound DroneEvents to an
// external MQTT broker, for out-of-band dashboards observing a running
// simulation. It is pure telemetry: nothing it does feeds back into a
// drone's dispatch decisions. MQTT here only ever carries already-decided
// events out of the simulation, never core data-plane traffic.
package mqttbridge

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/Rusteze-AP/drone-sim/controller"
	"github.com/Rusteze-AP/drone-sim/drone"
	"github.com/Rusteze-AP/drone-sim/packet"
)

// DefaultTopicPrefix is the default MQTT topic prefix for telemetry.
const DefaultTopicPrefix = "drone-sim"

// Config holds the configuration for a telemetry bridge.
type Config struct {
	// Broker is the MQTT broker URL (e.g., "tcp://broker.example.com:1883").
	Broker string
	// Username / Password authenticate against the broker. Optional.
	Username string
	Password string
	// UseTLS enables TLS for the MQTT connection.
	UseTLS bool
	// ClientID is the MQTT client identifier. If empty, a random one is generated.
	ClientID string
	// TopicPrefix is the MQTT topic prefix (default: "drone-sim"). Events
	// for drone id N publish to "{TopicPrefix}/{N}".
	TopicPrefix string
	// DroneID identifies which drone this bridge instance reports for.
	DroneID packet.NodeId
	// Logger is the logger to use. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// event is the wire shape published to MQTT: a flattened, JSON-friendly
// view of a controller.DroneEvent.
type event struct {
	Kind      string `json:"kind"`
	SessionID uint64 `json:"session_id,omitempty"`
	Packet    string `json:"packet,omitempty"`
}

// Bridge relays DroneEvents read from a channel to an MQTT broker.
type Bridge struct {
	cfg       Config
	client    paho.Client
	log       *slog.Logger
	mu        sync.RWMutex
	connected bool

	// publishHook, if set, is called with every event handed to publish,
	// regardless of connection state. Exists for tests to observe the
	// order Run drains its EventQueue in without a real broker.
	publishHook func(controller.DroneEvent)
}

// New creates a telemetry bridge with the given configuration.
func New(cfg Config) *Bridge {
	if cfg.TopicPrefix == "" {
		cfg.TopicPrefix = DefaultTopicPrefix
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Bridge{
		cfg: cfg,
		log: cfg.Logger.With("drone_id", cfg.DroneID).WithGroup("mqttbridge"),
	}
}

// Start connects to the MQTT broker. Call Run afterward to begin relaying.
func (b *Bridge) Start(ctx context.Context) error {
	if b.cfg.Broker == "" {
		return errors.New("broker URL is required")
	}

	clientID := b.cfg.ClientID
	if clientID == "" {
		clientID = "drone-sim-" + randomString(16)
	}

	opts := paho.NewClientOptions().
		AddBroker(b.cfg.Broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetMaxReconnectInterval(2 * time.Minute).
		SetKeepAlive(60 * time.Second).
		SetPingTimeout(10 * time.Second).
		SetCleanSession(true).
		SetOnConnectHandler(b.onConnected).
		SetConnectionLostHandler(b.onConnectionLost)

	if b.cfg.Username != "" {
		opts.SetUsername(b.cfg.Username)
	}
	if b.cfg.Password != "" {
		opts.SetPassword(b.cfg.Password)
	}
	if b.cfg.UseTLS {
		opts.SetTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12})
	}

	b.client = paho.NewClient(opts)

	token := b.client.Connect()
	if !token.WaitTimeout(30 * time.Second) {
		return errors.New("connection timeout")
	}
	if token.Error() != nil {
		return fmt.Errorf("connecting to broker: %w", token.Error())
	}
	return nil
}

// Stop disconnects from the broker.
func (b *Bridge) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.client != nil {
		b.client.Disconnect(1000)
		b.connected = false
	}
}

// Run reads DroneEvents from events until the channel closes or ctx is
// cancelled, publishing each as JSON to this bridge's topic. Events are
// buffered through a drone.EventQueue so that, when publishing falls behind
// a burst of events, a backlogged ControllerShortcut is always flushed
// ahead of routine telemetry (PacketSent/PacketDropped) rather than simply
// publishing in arrival order.
func (b *Bridge) Run(ctx context.Context, events <-chan controller.DroneEvent) {
	topic := fmt.Sprintf("%s/%d", b.cfg.TopicPrefix, b.cfg.DroneID)

	queue := drone.NewEventQueue()
	notify := make(chan struct{}, 1)
	wake := func() {
		select {
		case notify <- struct{}{}:
		default:
		}
	}

	recvDone := make(chan struct{})
	go func() {
		defer close(recvDone)
		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-events:
				if !ok {
					return
				}
				queue.Push(e, priorityOf(e))
				wake()
			}
		}
	}()

	drainAll := func() {
		for {
			e, ok := queue.Pop()
			if !ok {
				return
			}
			b.publish(topic, e)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-recvDone:
			drainAll()
			return
		case <-notify:
			drainAll()
		}
	}
}

// priorityOf maps a DroneEvent to its EventQueue priority: control-plane
// shortcuts drain ahead of routine packet telemetry.
func priorityOf(e controller.DroneEvent) uint8 {
	if e.Kind == controller.EventControllerShortcut {
		return drone.PriorityShortcut
	}
	return drone.PriorityTelemetry
}

func (b *Bridge) publish(topic string, e controller.DroneEvent) {
	if b.publishHook != nil {
		b.publishHook(e)
	}

	b.mu.RLock()
	connected := b.connected
	b.mu.RUnlock()
	if !connected {
		b.log.Debug("dropping event, not connected", "event", e)
		return
	}

	payload, err := json.Marshal(event{
		Kind:      e.Kind.String(),
		SessionID: sessionIDOf(e.Packet),
		Packet:    e.Packet.String(),
	})
	if err != nil {
		b.log.Warn("failed to encode event", "error", err)
		return
	}

	token := b.client.Publish(topic, 0, false, payload)
	if !token.WaitTimeout(10 * time.Second) {
		b.log.Warn("timeout publishing telemetry event")
		return
	}
	if err := token.Error(); err != nil {
		b.log.Warn("failed to publish telemetry event", "error", err)
	}
}

func sessionIDOf(p *packet.Packet) uint64 {
	if p == nil {
		return 0
	}
	return p.SessionID
}

func (b *Bridge) onConnected(_ paho.Client) {
	b.mu.Lock()
	b.connected = true
	b.mu.Unlock()
	b.log.Info("connected to MQTT broker", "broker", b.cfg.Broker)
}

func (b *Bridge) onConnectionLost(_ paho.Client, err error) {
	b.mu.Lock()
	b.connected = false
	b.mu.Unlock()
	b.log.Error("MQTT connection lost", "error", err)
}

func randomString(n int) string {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}
