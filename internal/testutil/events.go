// Package testutil provides deterministic event fixtures for tests.
package testutil

import (
	"math/rand/v2"
	"sync"

	"github.com/roach88/decaychain/internal/event"
	"github.com/roach88/decaychain/internal/particle"
)

// decayModes lists the two-body decays the generator draws from, keyed by
// parent PDG code. Types without an entry are stable.
var decayModes = map[int32][][2]int32{
	particle.TypeHiggs: {{5, -5}, {24, -24}, {23, 23}, {15, -15}, {4, -4}},
	24:                 {{-11, 12}, {-13, 14}, {2, -1}},
	-24:                {{11, -12}, {13, -14}, {1, -2}},
	23:                 {{11, -11}, {13, -13}, {12, -12}},
	15:                 {{16, -24}},
	-15:                {{-16, 24}},
}

// charges holds the PDG charge (in units of e) of the charged types used.
var charges = map[int32]int32{
	24: 1, -24: -1, 15: -1, -15: 1, 11: -1, -11: 1, 13: -1, -13: 1,
}

// Record returns a minimal record of type typ with the given parents.
func Record(typ int32, parents ...particle.Index) particle.Record {
	return particle.Record{Type: typ, Status: 1, Charge: charges[typ], Parents: parents}
}

// EventGenerator produces reproducible events: one or more Higgs bosons
// decaying through random two-body chains, plus unrelated gluons.
//
// The same seed always yields the same sequence of events. Momenta are
// whole numbers so they survive any float round trip exactly.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type EventGenerator struct {
	mu     sync.Mutex
	seed   uint64
	rng    *rand.Rand
	number int64
}

// NewEventGenerator creates a generator for seed. The first event is number 1.
func NewEventGenerator(seed uint64) *EventGenerator {
	g := &EventGenerator{seed: seed}
	g.Reset()
	return g
}

// Reset rewinds the generator to its first event.
func (g *EventGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rng = rand.New(rand.NewPCG(g.seed, g.seed^0x9e3779b97f4a7c15))
	g.number = 0
}

// Next returns the next event.
func (g *EventGenerator) Next() event.Event {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.number++
	return event.New(event.WithNumber(g.number), event.WithParticles(g.collection()))
}

// Events returns the next n events.
func (g *EventGenerator) Events(n int) []event.Event {
	events := make([]event.Event, n)
	for i := range events {
		events[i] = g.Next()
	}
	return events
}

// Source returns the next n events as an in-memory source.
func (g *EventGenerator) Source(n int) *event.MemorySource {
	return event.NewMemorySource(g.Events(n)...)
}

func (g *EventGenerator) collection() particle.Collection {
	var c particle.Collection

	higgs := 1 + g.rng.IntN(2)
	for range higgs {
		c = append(c, g.record(particle.TypeHiggs, 22, 125))
		if g.rng.IntN(4) == 0 {
			c = append(c, g.record(21, 23, 0))
		}
	}

	// Decay unstable particles in index order; appended products are
	// visited by the same loop.
	for i := 0; i < len(c); i++ {
		modes := decayModes[c[i].Type]
		if len(modes) == 0 {
			continue
		}
		mode := modes[g.rng.IntN(len(modes))]
		c[i].Status = 62
		for _, typ := range mode {
			child := g.record(typ, 23, 0)
			child.Parents = []particle.Index{particle.Index(i)}
			c = append(c, child)
		}
	}
	return c
}

func (g *EventGenerator) record(typ, status int32, mass float64) particle.Record {
	return particle.Record{
		Type:   typ,
		Status: status,
		Charge: charges[typ],
		P4: particle.Vector{
			Px:   float64(g.rng.IntN(201) - 100),
			Py:   float64(g.rng.IntN(201) - 100),
			Pz:   float64(g.rng.IntN(401) - 200),
			Mass: mass,
		},
	}
}
