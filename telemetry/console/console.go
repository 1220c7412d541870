// Package console exposes a single drone's live state over a serial
// connection, for bench debugging. Keeps the Config/New/Start/Stop shape
// and go.bug.st/serial dependency of a firmware serial transport, but drops
// the RS232/Fletcher-16 framing entirely in favor of a plain line-oriented
// REPL: there is no wire packet format to frame here, only text commands a
// human operator types at a terminal.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"go.bug.st/serial"

	"github.com/Rusteze-AP/drone-sim/drone"
)

// DefaultBaudRate is the default baud rate for the debug console.
const DefaultBaudRate = 115200

// Config holds the configuration for a debug console.
type Config struct {
	// Port is the serial port path (e.g., "/dev/ttyUSB0" or "COM3").
	Port string
	// BaudRate is the serial baud rate. Defaults to 115200.
	BaudRate int
	// Drone is the node this console reports on (read-only).
	Drone *drone.Drone
	// Logger is the logger to use. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Console serves a line-oriented command REPL over a serial port.
type Console struct {
	cfg  Config
	port serial.Port
	log  *slog.Logger

	mu        sync.Mutex
	connected bool
}

// New creates a debug console with the given configuration.
func New(cfg Config) *Console {
	if cfg.BaudRate == 0 {
		cfg.BaudRate = DefaultBaudRate
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Console{
		cfg: cfg,
		log: cfg.Logger.With("drone_id", cfg.Drone.ID()).WithGroup("console"),
	}
}

// Start opens the serial port and begins serving commands. It blocks
// until ctx is cancelled or the port is closed; call it in a goroutine.
func (c *Console) Start(ctx context.Context) error {
	if c.cfg.Port == "" {
		return errors.New("serial port is required")
	}

	mode := &serial.Mode{BaudRate: c.cfg.BaudRate}
	port, err := serial.Open(c.cfg.Port, mode)
	if err != nil {
		return fmt.Errorf("opening serial port: %w", err)
	}

	c.mu.Lock()
	c.port = port
	c.connected = true
	c.mu.Unlock()

	c.log.Info("console attached", "port", c.cfg.Port, "baud", c.cfg.BaudRate)

	go func() {
		<-ctx.Done()
		_ = c.Stop()
	}()

	c.serve(port)
	return nil
}

// Stop closes the serial port, unblocking Start's serve loop.
func (c *Console) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.port == nil {
		return nil
	}
	c.connected = false
	err := c.port.Close()
	c.port = nil
	return err
}

// IsConnected reports whether the serial port is currently open.
func (c *Console) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// serve reads newline-terminated commands from rw and writes a response
// line for each. Returns when rw is closed or a read error other than a
// clean EOF occurs. Takes io.ReadWriter rather than serial.Port directly
// so tests can drive it over an in-memory pipe.
func (c *Console) serve(rw io.ReadWriter) {
	scanner := bufio.NewScanner(rw)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		reply := c.handle(line)
		if _, err := io.WriteString(rw, reply+"\n"); err != nil {
			c.log.Warn("console write failed", "error", err)
			return
		}
	}
	if err := scanner.Err(); err != nil {
		c.log.Warn("console read failed", "error", err)
	}
}

// handle dispatches one command line to a response line. Recognized
// commands: "status", "neighbors", "pdr".
func (c *Console) handle(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}

	switch fields[0] {
	case "status":
		return fmt.Sprintf("id=%d terminated=%t pdr=%.3f",
			c.cfg.Drone.ID(), c.cfg.Drone.Terminated(), c.cfg.Drone.PacketDropRate())
	case "neighbors":
		ids := c.cfg.Drone.Neighbors()
		parts := make([]string, len(ids))
		for i, id := range ids {
			if seen, ok := c.cfg.Drone.NeighborLastSeen(id); ok {
				parts[i] = strconv.Itoa(int(id)) + "@" + seen.Format("15:04:05")
			} else {
				parts[i] = strconv.Itoa(int(id)) + "@never"
			}
		}
		return "neighbors=" + strings.Join(parts, ",")
	case "pdr":
		return fmt.Sprintf("pdr=%.3f", c.cfg.Drone.PacketDropRate())
	default:
		return "unknown command: " + fields[0]
	}
}
