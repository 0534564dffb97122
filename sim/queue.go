// Implements the WaitQueue, which holds all customers waiting for the server.
// Customers are always enqueued at the back; the discipline picks the end they leave from.

package sim

import (
	"fmt"
	"strings"
)

// Discipline selects which waiting customer is served next.
type Discipline string

const (
	// FCFS serves the oldest waiting customer first.
	FCFS Discipline = "fcfs"
	// LCFS serves the newest waiting customer first.
	LCFS Discipline = "lcfs"
)

// validDisciplines maps accepted discipline strings.
var validDisciplines = map[Discipline]bool{
	FCFS: true,
	LCFS: true,
}

// IsValidDiscipline returns true if the given string is a recognized discipline.
func IsValidDiscipline(name string) bool {
	return validDisciplines[Discipline(strings.ToLower(name))]
}

// ParseDiscipline converts a case-insensitive name into a Discipline.
func ParseDiscipline(name string) (Discipline, error) {
	d := Discipline(strings.ToLower(strings.TrimSpace(name)))
	if !validDisciplines[d] {
		return "", fmt.Errorf("unknown discipline %q (want %q or %q)", name, FCFS, LCFS)
	}
	return d, nil
}

// WaitQueue represents the line of customers waiting for the server.
// Insertion is always at the back; Dequeue removes from the front (FCFS)
// or the back (LCFS).
type WaitQueue struct {
	queue []*Customer
}

// Enqueue adds a customer to the back of the wait queue.
func (wq *WaitQueue) Enqueue(c *Customer) {
	if c == nil {
		panic("Enqueue: customer must not be nil")
	}
	wq.queue = append(wq.queue, c)
}

func (wq *WaitQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, c := range wq.queue {
		fmt.Fprintf(&sb, "%d", c.ID)
		if i < len(wq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of customers in the queue.
func (wq *WaitQueue) Len() int {
	return len(wq.queue)
}

// Items returns the queue contents, oldest first.
// The returned slice is the queue's internal storage; callers MUST NOT modify it.
func (wq *WaitQueue) Items() []*Customer {
	return wq.queue
}

// Dequeue removes the next customer according to d.
// Panics if the queue is empty or d is not a known discipline.
func (wq *WaitQueue) Dequeue(d Discipline) *Customer {
	n := len(wq.queue)
	if n == 0 {
		panic("Dequeue: next customer requested from an empty wait queue")
	}
	var c *Customer
	switch d {
	case FCFS:
		c = wq.queue[0]
		wq.queue[0] = nil
		wq.queue = wq.queue[1:]
	case LCFS:
		c = wq.queue[n-1]
		wq.queue[n-1] = nil
		wq.queue = wq.queue[:n-1]
	default:
		panic(fmt.Sprintf("Dequeue: unknown discipline %q", d))
	}
	return c
}
