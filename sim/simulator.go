// sim/simulator.go
package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

const (
	// WarmupTolerance is the relative distance between observed and target
	// utilization the warm-up detector accepts.
	WarmupTolerance = 0.01
	// WarmupWindow is how many consecutive events must stay within tolerance.
	WarmupWindow = 500
)

// Simulator is the single-server queue engine: it holds simulation time, the
// waiting line, the in-service customer and the event calendar.
//
// Clock, WaitQ and InService persist across rounds; a round boundary only
// changes where samples are collected.
type Simulator struct {
	Clock float64
	// Utilization is the arrival rate λ; the service rate is 1.
	Utilization float64
	Discipline  Discipline
	// WaitQ aka customers waiting for the server
	WaitQ *WaitQueue
	// InService is the customer at the server, nil when idle.
	InService *Customer

	calendar  calendar
	durations DurationSource

	// generation is the id of the active round; 0 during warm-up.
	generation int
	nextID     int64
	busyTime   float64
	eventCount int64

	// round collects samples while a round is running, nil otherwise.
	round *RoundStats
}

// NewSimulator creates an empty system and schedules the first arrival.
func NewSimulator(utilization float64, discipline Discipline, durations DurationSource) *Simulator {
	if durations == nil {
		panic("NewSimulator: durations must not be nil")
	}
	if !validDisciplines[discipline] {
		panic(fmt.Sprintf("NewSimulator: unknown discipline %q", discipline))
	}
	s := &Simulator{
		Utilization: utilization,
		Discipline:  discipline,
		WaitQ:       &WaitQueue{},
		durations:   durations,
	}
	s.calendar.schedule(Event{Kind: EventArrival, Time: s.durations.NextInterarrival()})
	return s
}

// Occupancy is the number of customers in the system.
func (s *Simulator) Occupancy() int {
	if s.InService != nil {
		return s.WaitQ.Len() + 1
	}
	return s.WaitQ.Len()
}

// QueueLength is the number of customers waiting for the server.
func (s *Simulator) QueueLength() int {
	return s.WaitQ.Len()
}

// Busy reports whether a customer is being served.
func (s *Simulator) Busy() bool {
	return s.InService != nil
}

// BusyTime is the cumulative simulated time the server has been busy.
func (s *Simulator) BusyTime() float64 {
	return s.busyTime
}

// EventCount is the number of events processed so far.
func (s *Simulator) EventCount() int64 {
	return s.eventCount
}

// Generation is the id of the current round (0 before the first round).
func (s *Simulator) Generation() int {
	return s.generation
}

// NextEvent returns the earliest pending event without processing it.
func (s *Simulator) NextEvent() (Event, bool) {
	return s.calendar.peek()
}

// schedule pushes an event delay time units from now.
func (s *Simulator) schedule(kind EventKind, delay float64) {
	s.calendar.schedule(Event{Kind: kind, Time: s.Clock + delay})
}

// step processes the next event and returns it, together with the departing
// customer when the event was an end of service.
func (s *Simulator) step() (Event, *Customer) {
	ev := s.calendar.next()
	if s.InService != nil {
		s.busyTime += ev.Time - s.Clock
	}
	s.Clock = ev.Time
	s.eventCount++
	logrus.Debugf("[t=%.6f] Executing %s (queue=%d, busy=%t)", s.Clock, ev.Kind, s.WaitQ.Len(), s.Busy())

	switch ev.Kind {
	case EventArrival:
		s.handleArrival()
		return ev, nil
	case EventEndOfService:
		return ev, s.handleEndOfService()
	default:
		panic(fmt.Sprintf("Simulator: unknown event kind %d", int(ev.Kind)))
	}
}

func (s *Simulator) handleArrival() {
	s.schedule(EventArrival, s.durations.NextInterarrival())

	s.nextID++
	c := &Customer{
		ID:          s.nextID,
		ServiceTime: s.durations.NextService(),
		Generation:  s.generation,
	}
	c.MarkStart(PhaseWaiting, s.Clock)

	if s.InService == nil && s.WaitQ.Len() == 0 {
		c.MarkEnd(PhaseWaiting, s.Clock)
		s.startService(c)
	} else {
		s.WaitQ.Enqueue(c)
	}
	s.recordLevels()
}

// handleEndOfService releases the in-service customer and starts the next one.
// Returns the departed customer.
func (s *Simulator) handleEndOfService() *Customer {
	done := s.InService
	if done == nil {
		panic("Simulator: end of service with an idle server")
	}
	s.InService = nil
	done.MarkEnd(PhaseService, s.Clock)

	if s.round != nil && done.Generation == s.generation {
		wait := done.Wait()
		s.round.Wait.Append(wait)
		s.round.Service.Append(done.ServiceTime)
		s.round.Sojourn.Append(wait + done.ServiceTime)
	}

	if s.WaitQ.Len() > 0 {
		next := s.WaitQ.Dequeue(s.Discipline)
		next.MarkEnd(PhaseWaiting, s.Clock)
		s.startService(next)
	}
	s.recordLevels()
	return done
}

func (s *Simulator) startService(c *Customer) {
	c.MarkStart(PhaseService, s.Clock)
	s.InService = c
	s.schedule(EventEndOfService, c.ServiceTime)
}

// recordLevels appends the current occupancy and queue length to the active round.
func (s *Simulator) recordLevels() {
	if s.round == nil {
		return
	}
	s.round.Occupancy.Append(s.Clock, s.Occupancy())
	s.round.QueueLength.Append(s.Clock, s.QueueLength())
}

// RunRound simulates until n customers admitted in this round have departed
// and returns their samples. Ownership of the returned batch moves to the caller.
func (s *Simulator) RunRound(n int) *RoundStats {
	if n <= 0 {
		panic(fmt.Sprintf("RunRound: round size must be positive, got %d", n))
	}
	s.generation++
	s.round = newRoundStats(n)
	s.recordLevels()

	completed := 0
	for completed < n {
		if _, departed := s.step(); departed != nil && departed.Generation == s.generation {
			completed++
		}
	}

	stats := s.round
	s.round = nil
	logrus.Debugf("[t=%.6f] Round %d done: %d departures, E[W]=%.5f, E[Nq]=%.5f",
		s.Clock, s.generation, n, stats.Wait.Mean(), stats.QueueLength.Mean())
	return stats
}

// Advance processes exactly n events without collecting samples.
func (s *Simulator) Advance(n int) {
	for i := 0; i < n; i++ {
		s.step()
	}
}

// Warmup processes events until the observed utilization busy/elapsed stays
// within WarmupTolerance of the target for WarmupWindow consecutive events,
// and returns the number of events consumed. maxEvents > 0 caps the search.
func (s *Simulator) Warmup(maxEvents int) int {
	stable := 0
	for n := 1; maxEvents <= 0 || n <= maxEvents; n++ {
		s.step()
		if s.Clock > 0 && relativeDifference(s.busyTime/s.Clock, s.Utilization) < WarmupTolerance {
			stable++
			if stable >= WarmupWindow {
				logrus.Debugf("[t=%.6f] Warm-up ended after %d events", s.Clock, n)
				return n
			}
		} else {
			stable = 0
		}
	}
	logrus.Warnf("Warm-up did not stabilize within %d events (ρ=%g, observed=%.5f)",
		maxEvents, s.Utilization, s.busyTime/s.Clock)
	return maxEvents
}

func relativeDifference(observed, target float64) float64 {
	return math.Abs(observed-target) / target
}
