package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScheduledDurations_CyclesBothLists(t *testing.T) {
	// GIVEN lists of different lengths
	d := NewScheduledDurations([]float64{1, 2}, []float64{5, 6, 7})

	// WHEN both are drawn past their length
	var arrivals, services []float64
	for i := 0; i < 5; i++ {
		arrivals = append(arrivals, d.NextInterarrival())
		services = append(services, d.NextService())
	}

	// THEN each repeats independently
	assert.Equal(t, []float64{1, 2, 1, 2, 1}, arrivals)
	assert.Equal(t, []float64{5, 6, 7, 5, 6}, services)
}

func TestScheduledDurations_EmptyCycle_Panics(t *testing.T) {
	assert.Panics(t, func() { NewScheduledDurations(nil, []float64{1}) })
	assert.Panics(t, func() { NewScheduledDurations([]float64{1}, []float64{}) })
}

func TestScheduledDurations_CopiesInput(t *testing.T) {
	in := []float64{3}
	d := NewScheduledDurations(in, in)
	in[0] = 100
	assert.Equal(t, 3.0, d.NextInterarrival())
}

func TestRandomDurations_SameKey_SameStreams(t *testing.T) {
	a := NewRandomDurations(NewSimulationKey(11), 0.5)
	b := NewRandomDurations(NewSimulationKey(11), 0.5)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.NextInterarrival(), b.NextInterarrival())
		assert.Equal(t, a.NextService(), b.NextService())
	}
}

func TestRandomDurations_ServiceStreamIndependentOfRate(t *testing.T) {
	// GIVEN two sources on the same key but different arrival rates
	low := NewRandomDurations(NewSimulationKey(5), 0.1)
	high := NewRandomDurations(NewSimulationKey(5), 0.9)

	// WHEN service times are drawn interleaved with arrivals
	for i := 0; i < 20; i++ {
		low.NextInterarrival()
		high.NextInterarrival()
		// THEN the service stream does not depend on λ
		assert.Equal(t, low.NextService(), high.NextService())
	}
}
