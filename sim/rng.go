package sim

import (
	"hash/fnv"
	"math"
	"math/rand/v2"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two engines with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical event sequences and samples.
type SimulationKey uint64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed uint64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemArrivals is the RNG subsystem for inter-arrival times.
	SubsystemArrivals = "arrivals"

	// SubsystemService is the RNG subsystem for service durations.
	SubsystemService = "service"
)

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula: each subsystem gets a PCG source seeded with
// (masterSeed, masterSeed XOR fnv1a64(subsystemName)).
//
// Drawing from one subsystem never perturbs another, so the arrival stream
// is identical across disciplines and utilizations for the same key.
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	seed := uint64(p.key)
	rng := rand.New(rand.NewPCG(seed, seed^fnv1a64(name)))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

// === ExponentialVariate ===

// ExponentialVariate draws exponentially distributed durations from a seeded source.
type ExponentialVariate struct {
	rng *rand.Rand
}

// NewExponentialVariate wraps rng. rng must not be nil.
func NewExponentialVariate(rng *rand.Rand) *ExponentialVariate {
	if rng == nil {
		panic("NewExponentialVariate: rng must not be nil")
	}
	return &ExponentialVariate{rng: rng}
}

// Next returns a sample of Exp(rate) by inversion.
// U is drawn from (0, 1] so the logarithm is always finite.
func (v *ExponentialVariate) Next(rate float64) float64 {
	u := 1.0 - v.rng.Float64()
	return -math.Log(u) / rate
}
