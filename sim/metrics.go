// Sample accumulators fed by the Simulator: independent scalar observations and
// time-weighted step functions.

package sim

import (
	"gonum.org/v1/gonum/stat"
)

// Sample is an append-only collection of scalar observations.
type Sample struct {
	values []float64
}

// NewSample creates an empty Sample with room for capacity observations.
func NewSample(capacity int) *Sample {
	return &Sample{values: make([]float64, 0, max(capacity, 0))}
}

// Append adds one observation.
func (s *Sample) Append(v float64) {
	s.values = append(s.values, v)
}

// Len returns the number of observations.
func (s *Sample) Len() int {
	return len(s.values)
}

// Values returns the observations in insertion order. Callers MUST NOT modify it.
func (s *Sample) Values() []float64 {
	return s.values
}

// Mean is the arithmetic average; 0 for an empty sample.
func (s *Sample) Mean() float64 {
	if len(s.values) == 0 {
		return 0
	}
	return stat.Mean(s.values, nil)
}

// Variance is the unbiased sample variance (n-1); 0 with fewer than two observations.
func (s *Sample) Variance() float64 {
	if len(s.values) < 2 {
		return 0
	}
	return stat.Variance(s.values, nil)
}

// TimeWeightedSample records (time, level) pairs of a right-continuous step
// function: level i holds from times[i] until times[i+1].
type TimeWeightedSample struct {
	times  []float64
	levels []float64
}

// NewTimeWeightedSample creates an empty sample with room for capacity points.
func NewTimeWeightedSample(capacity int) *TimeWeightedSample {
	capacity = max(capacity, 0)
	return &TimeWeightedSample{
		times:  make([]float64, 0, capacity),
		levels: make([]float64, 0, capacity),
	}
}

// Append records that the process moved to level at time t.
func (s *TimeWeightedSample) Append(t float64, level int) {
	s.times = append(s.times, t)
	s.levels = append(s.levels, float64(level))
}

// Len returns the number of recorded points.
func (s *TimeWeightedSample) Len() int {
	return len(s.times)
}

// Elapsed is the time between the first and last recorded points.
func (s *TimeWeightedSample) Elapsed() float64 {
	if len(s.times) < 2 {
		return 0
	}
	return s.times[len(s.times)-1] - s.times[0]
}

// holdTimes returns how long each level except the last was held.
func (s *TimeWeightedSample) holdTimes() []float64 {
	dt := make([]float64, len(s.times)-1)
	for i := range dt {
		dt[i] = s.times[i+1] - s.times[i]
	}
	return dt
}

// Mean is the time-weighted average level: sum(level*dt) / elapsed.
// 0 with fewer than two points or no elapsed time.
func (s *TimeWeightedSample) Mean() float64 {
	if s.Elapsed() <= 0 {
		return 0
	}
	return stat.Mean(s.levels[:len(s.levels)-1], s.holdTimes())
}

// Variance is the time-weighted second moment minus the squared mean.
// 0 with fewer than two points or no elapsed time.
func (s *TimeWeightedSample) Variance() float64 {
	if s.Elapsed() <= 0 {
		return 0
	}
	dt := s.holdTimes()
	levels := s.levels[:len(s.levels)-1]
	squares := make([]float64, len(levels))
	for i, l := range levels {
		squares[i] = l * l
	}
	mean := stat.Mean(levels, dt)
	return stat.Mean(squares, dt) - mean*mean
}
