// Package event defines one unit of input (an event) and the Source
// interface every event-file backend implements.
package event

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/decaychain/internal/particle"
)

// ErrEventOutOfRange is returned by Source.Event for an index outside [0, Entries).
var ErrEventOutOfRange = errors.New("event: index out of range")

// Event is one independent record: optional event info plus an optional
// generated-particle collection. Both may be missing from a file; the
// accessors report presence explicitly.
type Event struct {
	number       int64
	hasNumber    bool
	particles    particle.Collection
	hasParticles bool
}

// New builds an event from opts; omitted parts are absent.
func New(opts ...Option) Event {
	var ev Event
	for _, opt := range opts {
		opt(&ev)
	}
	return ev
}

// Option sets one part of an Event.
type Option func(*Event)

// WithNumber sets the event-info number.
func WithNumber(n int64) Option {
	return func(ev *Event) {
		ev.number = n
		ev.hasNumber = true
	}
}

// WithParticles attaches the generated-particle collection. A nil collection
// still counts as present (and empty).
func WithParticles(c particle.Collection) Option {
	return func(ev *Event) {
		if c == nil {
			c = particle.Collection{}
		}
		ev.particles = c
		ev.hasParticles = true
	}
}

// Number returns the event-info number, if the event carries one.
func (e Event) Number() (int64, bool) {
	return e.number, e.hasNumber
}

// Particles returns the generated-particle collection, if present.
func (e Event) Particles() (particle.Collection, bool) {
	return e.particles, e.hasParticles
}

// Source supplies events in file order.
type Source interface {
	// Entries returns the number of events.
	Entries(ctx context.Context) (int, error)

	// Event returns event i, 0 <= i < Entries.
	Event(ctx context.Context, i int) (Event, error)

	// Close releases any underlying file handles.
	Close() error
}

// MemorySource serves events from a slice.
type MemorySource struct {
	events []Event
}

// NewMemorySource returns a source over events.
func NewMemorySource(events ...Event) *MemorySource {
	return &MemorySource{events: events}
}

// Entries implements Source.
func (m *MemorySource) Entries(context.Context) (int, error) {
	return len(m.events), nil
}

// Event implements Source.
func (m *MemorySource) Event(_ context.Context, i int) (Event, error) {
	if i < 0 || i >= len(m.events) {
		return Event{}, fmt.Errorf("%w: %d not in [0, %d)", ErrEventOutOfRange, i, len(m.events))
	}
	return m.events[i], nil
}

// Close implements Source.
func (m *MemorySource) Close() error {
	return nil
}

// ReadAll loads every event from src.
func ReadAll(ctx context.Context, src Source) ([]Event, error) {
	n, err := src.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("count entries: %w", err)
	}
	events := make([]Event, 0, n)
	for i := 0; i < n; i++ {
		ev, err := src.Event(ctx, i)
		if err != nil {
			return nil, fmt.Errorf("read event %d: %w", i, err)
		}
		events = append(events, ev)
	}
	return events, nil
}
