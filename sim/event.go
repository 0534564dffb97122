package sim

import "fmt"

// EventKind identifies what happens when an event is processed.
type EventKind int

const (
	// EventArrival is a customer arriving at the system.
	EventArrival EventKind = iota
	// EventEndOfService is the in-service customer leaving the server.
	EventEndOfService
	eventKindCount
)

func (k EventKind) String() string {
	switch k {
	case EventArrival:
		return "Arrival"
	case EventEndOfService:
		return "EndOfService"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is a scheduled state change at simulation time Time.
type Event struct {
	Kind EventKind
	Time float64
}

// calendar holds the pending events. At most one event of each kind is ever
// pending, so it is a fixed slot per kind and next() is a linear scan.
// On equal timestamps the lower kind (Arrival) wins.
type calendar struct {
	slots   [eventKindCount]float64
	pending [eventKindCount]bool
}

// schedule adds ev. Panics if an event of the same kind is already pending.
func (c *calendar) schedule(ev Event) {
	if ev.Kind < 0 || ev.Kind >= eventKindCount {
		panic(fmt.Sprintf("calendar: unknown event kind %d", int(ev.Kind)))
	}
	if c.pending[ev.Kind] {
		panic(fmt.Sprintf("calendar: %s already pending at %.6f", ev.Kind, c.slots[ev.Kind]))
	}
	c.slots[ev.Kind] = ev.Time
	c.pending[ev.Kind] = true
}

// next removes and returns the earliest pending event.
// Panics if the calendar is empty.
func (c *calendar) next() Event {
	ev, ok := c.peek()
	if !ok {
		panic("calendar: next event requested from an empty calendar")
	}
	c.pending[ev.Kind] = false
	return ev
}

// peek returns the earliest pending event without removing it.
func (c *calendar) peek() (Event, bool) {
	best := EventKind(-1)
	for k := EventKind(0); k < eventKindCount; k++ {
		if c.pending[k] && (best < 0 || c.slots[k] < c.slots[best]) {
			best = k
		}
	}
	if best < 0 {
		return Event{}, false
	}
	return Event{Kind: best, Time: c.slots[best]}, true
}

// Len returns the number of pending events (0, 1 or 2).
func (c *calendar) Len() int {
	n := 0
	for _, p := range c.pending {
		if p {
			n++
		}
	}
	return n
}
