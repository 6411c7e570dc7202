// sim/simulator.go
package sim

import (
	"container/heap"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Scheduler is the contract mobility models use to enqueue future work.
// ScheduleAfter guarantees the handler runs exactly once at Now()+delay, in
// non-decreasing simulated-time order relative to every other scheduled event.
type Scheduler interface {
	Now() float64
	ScheduleAfter(delay float64, h DeviceHandler, device int)
}

// queueEntry wraps an Event with a sequence ID for deterministic FIFO
// tie-breaking when timestamps are equal.
type queueEntry struct {
	event Event
	seqID int64
}

// EventQueue is a min-heap ordered by (Timestamp, seqID).
// Implements heap.Interface.
type EventQueue []queueEntry

func (eq EventQueue) Len() int { return len(eq) }

func (eq EventQueue) Less(i, j int) bool {
	if eq[i].event.Timestamp() != eq[j].event.Timestamp() {
		return eq[i].event.Timestamp() < eq[j].event.Timestamp()
	}
	return eq[i].seqID < eq[j].seqID
}

func (eq EventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(queueEntry))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}

// Simulator is the core object that holds simulation time and the event loop.
// It is single-threaded: handlers run one at a time in simulated-time order,
// so state they mutate is never observed half-updated.
type Simulator struct {
	Clock   float64
	Horizon float64
	// EventsProcessed counts executed events.
	EventsProcessed int64

	queue     EventQueue
	nextSeqID int64
}

// NewSimulator creates a Simulator that stops once the next event lies beyond horizon.
func NewSimulator(horizon float64) *Simulator {
	return &Simulator{
		Horizon: horizon,
		queue:   make(EventQueue, 0),
	}
}

// Now returns the current simulated time.
func (sim *Simulator) Now() float64 {
	return sim.Clock
}

// Schedule pushes an event into the simulator's queue.
func (sim *Simulator) Schedule(ev Event) {
	if ev.Timestamp() < sim.Clock {
		panic(fmt.Sprintf("Schedule: event at %f is before current clock %f", ev.Timestamp(), sim.Clock))
	}
	heap.Push(&sim.queue, queueEntry{event: ev, seqID: sim.nextSeqID})
	sim.nextSeqID++
}

// ScheduleAfter implements Scheduler.
func (sim *Simulator) ScheduleAfter(delay float64, h DeviceHandler, device int) {
	if delay < 0 {
		panic(fmt.Sprintf("ScheduleAfter: negative delay %f for device %d", delay, device))
	}
	sim.Schedule(NewDeviceEvent(sim.Clock+delay, h, device))
}

// Pending returns the number of queued events.
func (sim *Simulator) Pending() int {
	return len(sim.queue)
}

// PeekTime returns the timestamp of the next event, or false if the queue is empty.
func (sim *Simulator) PeekTime() (float64, bool) {
	if len(sim.queue) == 0 {
		return 0, false
	}
	return sim.queue[0].event.Timestamp(), true
}

// Run executes events until the queue drains or the next event lies past Horizon.
// Events left beyond the horizon stay queued.
func (sim *Simulator) Run() {
	logrus.Infof("[t=%.3f] Simulation started, horizon=%.3f, %d events queued", sim.Clock, sim.Horizon, len(sim.queue))
	for len(sim.queue) > 0 {
		if next, _ := sim.PeekTime(); next > sim.Horizon {
			break
		}
		entry := heap.Pop(&sim.queue).(queueEntry)
		sim.Clock = entry.event.Timestamp()
		logrus.Tracef("[t=%.3f] Executing %T", sim.Clock, entry.event)
		entry.event.Execute(sim)
		sim.EventsProcessed++
	}
	logrus.Infof("[t=%.3f] Simulation ended after %d events", sim.Clock, sim.EventsProcessed)
}
