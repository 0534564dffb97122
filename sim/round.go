package sim

import "fmt"

// Metric names a measured quantity.
type Metric int

const (
	MetricWait        Metric = iota // time in the waiting line
	MetricService                   // time at the server
	MetricSojourn                   // wait + service
	MetricOccupancy                 // customers in the system (time-weighted)
	MetricQueueLength               // customers in the waiting line (time-weighted)
	metricCount
)

// AllMetrics lists every Metric in declaration order.
var AllMetrics = [metricCount]Metric{MetricWait, MetricService, MetricSojourn, MetricOccupancy, MetricQueueLength}

func (m Metric) String() string {
	switch m {
	case MetricWait:
		return "W"
	case MetricService:
		return "X"
	case MetricSojourn:
		return "T"
	case MetricOccupancy:
		return "N"
	case MetricQueueLength:
		return "Nq"
	default:
		return fmt.Sprintf("Metric(%d)", int(m))
	}
}

// RoundStats is the batch one round hands to the driver.
type RoundStats struct {
	Wait        *Sample
	Service     *Sample
	Sojourn     *Sample
	Occupancy   *TimeWeightedSample
	QueueLength *TimeWeightedSample
}

func newRoundStats(departures int) *RoundStats {
	// Level samples are recorded roughly twice per departure.
	return &RoundStats{
		Wait:        NewSample(departures),
		Service:     NewSample(departures),
		Sojourn:     NewSample(departures),
		Occupancy:   NewTimeWeightedSample(2*departures + 1),
		QueueLength: NewTimeWeightedSample(2*departures + 1),
	}
}

// Moments returns the round mean and variance of m.
func (rs *RoundStats) Moments(m Metric) (mean, variance float64) {
	switch m {
	case MetricWait:
		return rs.Wait.Mean(), rs.Wait.Variance()
	case MetricService:
		return rs.Service.Mean(), rs.Service.Variance()
	case MetricSojourn:
		return rs.Sojourn.Mean(), rs.Sojourn.Variance()
	case MetricOccupancy:
		return rs.Occupancy.Mean(), rs.Occupancy.Variance()
	case MetricQueueLength:
		return rs.QueueLength.Mean(), rs.QueueLength.Variance()
	default:
		panic(fmt.Sprintf("RoundStats: unknown metric %d", int(m)))
	}
}
