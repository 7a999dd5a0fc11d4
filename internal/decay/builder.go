package decay

import (
	"fmt"
	"slices"

	"github.com/roach88/decaychain/internal/particle"
	"github.com/roach88/decaychain/internal/traverse"
)

// Builder fills a Graph from one event's particle collection.
// The caller clears it between events.
type Builder struct {
	graph *Graph
}

// NewBuilder returns a builder with an empty graph.
func NewBuilder() *Builder {
	return &Builder{graph: &Graph{}}
}

// Graph returns the underlying graph.
func (b *Builder) Graph() *Graph {
	return b.graph
}

// Build creates one node per record, then wires every parent reference.
//
// Node IDs equal collection positions. Parent references may point anywhere
// in the collection; NoParent entries are skipped and a parent listed twice on
// the same record produces a single edge. An out-of-range or self reference
// fails the build with ErrMalformedReference.
//
// Build fails with ErrGraphNotEmpty unless the graph was cleared. On any
// failure the graph is left empty.
func (b *Builder) Build(particles particle.Collection) error {
	if b.graph.Len() != 0 {
		return &GraphError{
			Kind:    ErrGraphNotEmpty,
			Index:   particle.NoParent,
			Parent:  particle.NoParent,
			Message: fmt.Sprintf("graph holds %d nodes, call Clear first", b.graph.Len()),
		}
	}

	if err := b.build(particles); err != nil {
		b.graph.Clear()
		return err
	}
	return nil
}

func (b *Builder) build(particles particle.Collection) error {
	// Pass 1: nodes.
	for i := range particles {
		if _, err := b.graph.AddNode(particle.Index(i), particles.At(particle.Index(i))); err != nil {
			return err
		}
	}

	// Pass 2: edges, in record order then parent-reference order.
	for i := range particles {
		idx := particle.Index(i)
		parents := particles[i].Parents
		for j, ref := range parents {
			if ref == particle.NoParent {
				continue
			}
			if ref == idx {
				return malformedReference(idx, ref, "self reference")
			}
			if !particles.Valid(ref) {
				return malformedReference(idx, ref,
					fmt.Sprintf("out of range [0, %d)", len(particles)))
			}
			if slices.Contains(parents[:j], ref) {
				continue
			}

			parentNode, err := b.graph.GetNode(ref)
			if err != nil {
				return err
			}
			childNode, err := b.graph.GetNode(idx)
			if err != nil {
				return err
			}
			if err := b.graph.Connect(parentNode, childNode); err != nil {
				return err
			}
		}
	}
	return nil
}

// GetNode returns the node for the record at idx.
func (b *Builder) GetNode(idx particle.Index) (*Node, error) {
	return b.graph.GetNode(idx)
}

// Clear empties the graph for the next event.
func (b *Builder) Clear() {
	b.graph.Clear()
}

// Select returns the nodes whose record satisfies pred, in ID order.
func (b *Builder) Select(pred particle.Predicate) []*Node {
	var out []*Node
	for _, n := range b.graph.Nodes() {
		if pred(*n.Value()) {
			out = append(out, n)
		}
	}
	return out
}

// TraverseChildren returns every descendant of start in breadth-first order.
// start must belong to the current graph.
func (b *Builder) TraverseChildren(start *Node) ([]*Node, error) {
	if !b.graph.Contains(start) {
		return nil, nodeNotFound(nodeID(start), "traversal start does not belong to graph")
	}
	return slices.Collect(traverse.TraverseChildren(start)), nil
}

// Descendant is a node reached by Walk, with its distance from the start.
type Descendant struct {
	Node  *Node
	Depth int
}

// Walk is TraverseChildren with depths, limited to maxDepth levels when
// maxDepth > 0.
func (b *Builder) Walk(start *Node, maxDepth int) ([]Descendant, error) {
	if !b.graph.Contains(start) {
		return nil, nodeNotFound(nodeID(start), "traversal start does not belong to graph")
	}
	var out []Descendant
	for n, depth := range traverse.WithinDepth(traverse.Walk(start), maxDepth) {
		out = append(out, Descendant{Node: n, Depth: depth})
	}
	return out, nil
}
