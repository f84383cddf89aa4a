package sim

import (
	"hash/fnv"
	"math/rand"
)

// SimulationKey identifies a reproducible synthetic workload.
// The same key and generator spec produce byte-identical command files.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// RNG subsystems used by the workload generator.
const (
	// SubsystemArrivals drives inter-arrival times and class selection.
	SubsystemArrivals = "arrivals"
	// SubsystemResources drives memory and device requests.
	SubsystemResources = "resources"
	// SubsystemService drives service-time requests.
	SubsystemService = "service"
)

// PartitionedRNG hands out one independent, deterministically seeded
// *rand.Rand per subsystem, so that adding draws to one subsystem does not
// shift the sequence seen by another.
//
// Derivation: masterSeed XOR fnv1a64(subsystemName).
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

// ForSubsystem returns the RNG for the named subsystem, creating it on first use.
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(int64(p.key) ^ fnv1a64(name)))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
