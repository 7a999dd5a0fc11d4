package chains

import (
	"github.com/roach88/decaychain/internal/config"
	"github.com/roach88/decaychain/internal/decay"
	"github.com/roach88/decaychain/internal/event"
	"github.com/roach88/decaychain/internal/particle"
)

// Product is one decay product of a root.
type Product struct {
	Index  particle.Index  `json:"index"`
	Depth  int             `json:"depth"`
	Record particle.Record `json:"record"`
}

// Chain is a root particle and everything it decays into.
type Chain struct {
	Index          particle.Index  `json:"index"`
	Record         particle.Record `json:"record"`
	DirectProducts int             `json:"direct_products"`
	Products       []Product       `json:"products"`
}

// EventReport is the analysis result for one event.
type EventReport struct {
	// Entry is the event's position in its source.
	Entry int `json:"entry"`

	// Number is the event-info number, nil when the event has none.
	Number *int64 `json:"number,omitempty"`

	// HasParticles is false when the event carries no particle collection.
	HasParticles bool `json:"has_particles"`

	Particles particle.Collection `json:"particles,omitempty"`
	Chains    []Chain             `json:"chains"`
}

// Processor analyzes one event at a time. It is not safe for concurrent use.
type Processor struct {
	builder  *decay.Builder
	selector particle.Predicate
	maxDepth int
}

// NewProcessor returns a processor selecting roots of cfg.RootTypes.
func NewProcessor(cfg config.Config) *Processor {
	return &Processor{
		builder:  decay.NewBuilder(),
		selector: particle.OfType(cfg.RootTypes...),
		maxDepth: cfg.MaxDepth,
	}
}

// Builder exposes the processor's graph builder.
func (p *Processor) Builder() *decay.Builder {
	return p.builder
}

// Process builds the event's decay graph and collects the chains of every
// selected root. The graph stays populated until Clear is called.
func (p *Processor) Process(entry int, ev event.Event) (EventReport, error) {
	report := EventReport{Entry: entry, Chains: []Chain{}}
	if n, ok := ev.Number(); ok {
		report.Number = &n
	}

	particles, ok := ev.Particles()
	if !ok {
		return report, nil
	}
	report.HasParticles = true
	report.Particles = particles

	if err := p.builder.Build(particles); err != nil {
		return report, err
	}

	for _, root := range p.builder.Select(p.selector) {
		descendants, err := p.builder.Walk(root, p.maxDepth)
		if err != nil {
			return report, err
		}

		chain := Chain{
			Index:          root.ID(),
			Record:         *root.Value(),
			DirectProducts: len(root.Children()),
			Products:       make([]Product, 0, len(descendants)),
		}
		for _, d := range descendants {
			chain.Products = append(chain.Products, Product{
				Index:  d.Node.ID(),
				Depth:  d.Depth,
				Record: *particles.At(d.Node.ID()),
			})
		}
		report.Chains = append(report.Chains, chain)
	}
	return report, nil
}

// Clear discards the current event's graph.
func (p *Processor) Clear() {
	p.builder.Clear()
}
