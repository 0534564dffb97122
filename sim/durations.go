package sim

import "fmt"

// DurationSource supplies the inter-arrival and service durations consumed by
// the Simulator's arrival handler. The random source drives measurements; the
// scheduled source replays a fixed cycle for hand-checkable runs.
type DurationSource interface {
	// NextInterarrival returns the time until the next arrival.
	NextInterarrival() float64
	// NextService returns the service duration of a newly admitted customer.
	NextService() float64
}

// RandomDurations draws Exp(arrivalRate) inter-arrival times and Exp(1)
// service times from independent RNG subsystems.
type RandomDurations struct {
	arrivalRate float64
	arrivals    *ExponentialVariate
	service     *ExponentialVariate
}

// NewRandomDurations builds the measurement-path source for utilization
// arrivalRate (service rate is fixed at 1).
func NewRandomDurations(key SimulationKey, arrivalRate float64) *RandomDurations {
	rng := NewPartitionedRNG(key)
	return &RandomDurations{
		arrivalRate: arrivalRate,
		arrivals:    NewExponentialVariate(rng.ForSubsystem(SubsystemArrivals)),
		service:     NewExponentialVariate(rng.ForSubsystem(SubsystemService)),
	}
}

func (d *RandomDurations) NextInterarrival() float64 {
	return d.arrivals.Next(d.arrivalRate)
}

func (d *RandomDurations) NextService() float64 {
	return d.service.Next(1.0)
}

// ScheduledDurations cycles through fixed inter-arrival and service lists.
type ScheduledDurations struct {
	interarrivals []float64
	services      []float64
	nextArrival   int
	nextService   int
}

// NewScheduledDurations returns a source that repeats the given lists forever.
// Both lists must be non-empty.
func NewScheduledDurations(interarrivals, services []float64) *ScheduledDurations {
	if len(interarrivals) == 0 || len(services) == 0 {
		panic(fmt.Sprintf("NewScheduledDurations: empty cycle (interarrivals=%d, services=%d)",
			len(interarrivals), len(services)))
	}
	return &ScheduledDurations{
		interarrivals: append([]float64(nil), interarrivals...),
		services:      append([]float64(nil), services...),
	}
}

// SelfCheckDurations is the canonical self-check cycle: three customers arrive
// at offsets 0, 1, 2 of a period of 6 with service times 3, 1, 1. The first
// arrival happens at t=4.
//
// Per period: waits are {0, 2, 2} under FCFS and {0, 3, 1} under LCFS; the
// queue length is 1, 2, 1 over three consecutive unit intervals and 0 otherwise.
func SelfCheckDurations() *ScheduledDurations {
	return NewScheduledDurations([]float64{4, 1, 1}, []float64{3, 1, 1})
}

func (d *ScheduledDurations) NextInterarrival() float64 {
	v := d.interarrivals[d.nextArrival]
	d.nextArrival = (d.nextArrival + 1) % len(d.interarrivals)
	return v
}

func (d *ScheduledDurations) NextService() float64 {
	v := d.services[d.nextService]
	d.nextService = (d.nextService + 1) % len(d.services)
	return v
}
