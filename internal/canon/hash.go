package canon

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/roach88/decaychain/internal/decay"
	"github.com/roach88/decaychain/internal/event"
	"github.com/roach88/decaychain/internal/particle"
)

// Domain prefixes. The version suffix allows the encoding to change later.
const (
	DomainEvent  = "decaychain/event/v1"
	DomainSource = "decaychain/source/v1"
	DomainGraph  = "decaychain/graph/v1"
)

// hashWithDomain computes SHA256(domain || 0x00 || data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// RecordValue is the canonical form of one particle record.
func RecordValue(r particle.Record) map[string]any {
	parents := make([]int64, len(r.Parents))
	for i, p := range r.Parents {
		parents[i] = int64(p)
	}
	return map[string]any{
		"type":    r.Type,
		"status":  r.Status,
		"charge":  r.Charge,
		"parents": parents,
		"p4": map[string]any{
			"px":   Float(r.P4.Px),
			"py":   Float(r.P4.Py),
			"pz":   Float(r.P4.Pz),
			"mass": Float(r.P4.Mass),
		},
	}
}

// EventValue is the canonical form of an event. An event without a particle
// collection differs from one with an empty collection.
func EventValue(ev event.Event) map[string]any {
	obj := map[string]any{}
	if num, ok := ev.Number(); ok {
		obj["number"] = num
	}
	if particles, ok := ev.Particles(); ok {
		list := make([]any, len(particles))
		for i, r := range particles {
			list[i] = RecordValue(r)
		}
		obj["particles"] = list
	}
	return obj
}

// EventFingerprint returns the content-addressed identifier of ev.
func EventFingerprint(ev event.Event) (string, error) {
	data, err := Marshal(EventValue(ev))
	if err != nil {
		return "", fmt.Errorf("EventFingerprint: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainEvent, data), nil
}

// SourceFingerprint identifies a whole ordered event sequence. Repeated
// events count each time, and order matters.
func SourceFingerprint(events []event.Event) (string, error) {
	ids := make([]string, len(events))
	for i, ev := range events {
		id, err := EventFingerprint(ev)
		if err != nil {
			return "", fmt.Errorf("SourceFingerprint: event %d: %w", i, err)
		}
		ids[i] = id
	}
	data, err := Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("SourceFingerprint: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainSource, data), nil
}

// GraphSnapshot is the canonical structural form of a built graph: for each
// node in ID order, its ID, particle type and child IDs.
func GraphSnapshot(g *decay.Graph) map[string]any {
	nodes := make([]any, 0, g.Len())
	for _, n := range g.Nodes() {
		children := make([]int64, len(n.Children()))
		for i, c := range n.Children() {
			children[i] = int64(c.ID())
		}
		nodes = append(nodes, map[string]any{
			"id":       int64(n.ID()),
			"type":     n.Value().Type,
			"children": children,
		})
	}
	return map[string]any{"nodes": nodes}
}

// GraphFingerprint hashes GraphSnapshot(g).
func GraphFingerprint(g *decay.Graph) (string, error) {
	data, err := Marshal(GraphSnapshot(g))
	if err != nil {
		return "", fmt.Errorf("GraphFingerprint: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainGraph, data), nil
}
