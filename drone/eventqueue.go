package drone

import (
	"sync"

	"github.com/Rusteze-AP/drone-sim/controller"
)

// EventQueue is a priority-ordered buffer for outbound DroneEvents,
// adapted from device/router.SendQueue's pattern of buffering outbound
// traffic across multiple consumers. The dispatcher's own default path
// (sendControllerEvent) still sends directly and synchronously to the SC
// channel, which is treated as unbounded; EventQueue instead serves
// downstream consumers that read off that channel and want to reorder a
// backlog rather than publish strictly in arrival order —
// telemetry/mqttbridge.Bridge.Run drains one to keep ControllerShortcut
// events ahead of routine telemetry during a burst.
//
// Lower priority values are drained first; ControllerShortcut events
// default to priority 0 (a dropped control-plane delivery matters more
// than routine telemetry), PacketSent/PacketDropped to priority 1.
type EventQueue struct {
	mu    sync.Mutex
	items []eventItem
}

type eventItem struct {
	event    controller.DroneEvent
	priority uint8
}

const (
	PriorityShortcut  uint8 = 0
	PriorityTelemetry uint8 = 1
)

// NewEventQueue creates an empty queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push enqueues e at the given priority.
func (q *EventQueue) Push(e controller.DroneEvent, priority uint8) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, eventItem{event: e, priority: priority})
}

// Pop removes and returns the highest-priority (lowest value) queued
// event. Among equal priorities, the earliest-pushed event wins. Returns
// false if the queue is empty.
func (q *EventQueue) Pop() (controller.DroneEvent, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return controller.DroneEvent{}, false
	}

	bestIdx := 0
	bestPri := q.items[0].priority
	for i, it := range q.items[1:] {
		if it.priority < bestPri {
			bestIdx = i + 1
			bestPri = it.priority
		}
	}

	e := q.items[bestIdx].event
	q.items = append(q.items[:bestIdx], q.items[bestIdx+1:]...)
	return e, true
}

// Len reports how many events are currently queued.
func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Drain pops every queued event, in priority order, and delivers each to
// sink. It returns once the queue is empty, and blocks on each send while
// sink has no room.
func (q *EventQueue) Drain(sink chan<- controller.DroneEvent) {
	for {
		e, ok := q.Pop()
		if !ok {
			return
		}
		sink <- e
	}
}
