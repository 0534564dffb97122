// Defines the Customer record that moves through the waiting line and the server.
// Tracks the start/end timestamp of each phase and the round that admitted it.

package sim

import (
	"fmt"
)

// Phase names one stage of a customer's stay in the system.
type Phase int

const (
	PhaseWaiting Phase = iota // time spent in the waiting line
	PhaseService              // time spent at the server
	phaseCount
)

func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhaseService:
		return "service"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

type phaseMark struct {
	start, end       float64
	hasStart, hasEnd bool
}

// Customer models a single customer's lifecycle in the simulation.
type Customer struct {
	ID          int64   // Sequence number assigned at arrival
	ServiceTime float64 // Service duration, drawn when the customer arrives

	// Generation is the engine's round id when the customer was admitted.
	// Only customers admitted in the active round are sampled at departure,
	// so customers straddling a round boundary are never counted twice.
	Generation int

	marks [phaseCount]phaseMark
}

// MarkStart records the start of phase p at time t.
func (c *Customer) MarkStart(p Phase, t float64) {
	c.marks[p].start = t
	c.marks[p].hasStart = true
}

// MarkEnd records the end of phase p at time t.
func (c *Customer) MarkEnd(p Phase, t float64) {
	c.marks[p].end = t
	c.marks[p].hasEnd = true
}

// Duration returns how long phase p lasted.
// Panics if the phase has not been both started and ended.
func (c *Customer) Duration(p Phase) float64 {
	m := c.marks[p]
	if !m.hasStart || !m.hasEnd {
		panic(fmt.Sprintf("Customer %d: phase %s must be started and ended before measuring it", c.ID, p))
	}
	return m.end - m.start
}

// Wait is the time the customer spent in the waiting line.
func (c *Customer) Wait() float64 { return c.Duration(PhaseWaiting) }

// Sojourn is the total time in the system: wait plus service.
func (c *Customer) Sojourn() float64 {
	return c.Duration(PhaseWaiting) + c.Duration(PhaseService)
}

// This method returns a human-readable string representation of a Customer.
func (c Customer) String() string {
	return fmt.Sprintf("Customer: (ID: %d, ServiceTime: %.4f, Generation: %d)", c.ID, c.ServiceTime, c.Generation)
}
