package decay

import (
	"fmt"
	"slices"

	"github.com/roach88/decaychain/internal/particle"
)

// Node is one particle in the decay graph.
type Node struct {
	id       particle.Index
	value    *particle.Record
	children []*Node
}

// ID returns the node's identifier, equal to its record's collection index.
func (n *Node) ID() particle.Index {
	return n.id
}

// Value returns the record this node was created for. Callers must not modify it.
func (n *Node) Value() *particle.Record {
	return n.value
}

// Children returns the decay products in discovery order.
// The slice is owned by the node; do not modify it.
func (n *Node) Children() []*Node {
	return n.children
}

// Graph is an index-addressed decay graph for one event.
// The zero value is an empty graph ready for use.
type Graph struct {
	// slots[i] is the node with ID i, or nil if none was added.
	slots []*Node
	count int
}

// NewGraph returns an empty graph sized for n records.
func NewGraph(n int) *Graph {
	return &Graph{slots: make([]*Node, 0, n)}
}

// Clear drops every node. The backing storage is kept for the next event.
func (g *Graph) Clear() {
	clear(g.slots)
	g.slots = g.slots[:0]
	g.count = 0
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return g.count
}

// MaxNodes bounds node indices so a stray index cannot force a huge allocation.
const MaxNodes = 1 << 24

// AddNode creates the node for the record at idx. idx must be in [0, MaxNodes).
func (g *Graph) AddNode(idx particle.Index, rec *particle.Record) (*Node, error) {
	if idx < 0 {
		return nil, malformedReference(idx, particle.NoParent, "negative node index")
	}
	if idx >= MaxNodes {
		return nil, malformedReference(idx, particle.NoParent, fmt.Sprintf("node index beyond limit %d", MaxNodes))
	}
	if int(idx) < len(g.slots) && g.slots[idx] != nil {
		return nil, duplicateNode(idx)
	}
	if need := int(idx) + 1; need > len(g.slots) {
		g.slots = slices.Grow(g.slots, need-len(g.slots))[:need]
	}

	n := &Node{id: idx, value: rec}
	g.slots[idx] = n
	g.count++
	return n, nil
}

// GetNode returns the node previously added for idx.
func (g *Graph) GetNode(idx particle.Index) (*Node, error) {
	if idx < 0 || int(idx) >= len(g.slots) || g.slots[idx] == nil {
		return nil, nodeNotFound(idx, "")
	}
	return g.slots[idx], nil
}

// Contains reports whether n is a node of this graph (not just a node with the
// same ID from an earlier build).
func (g *Graph) Contains(n *Node) bool {
	if n == nil || n.id < 0 || int(n.id) >= len(g.slots) {
		return false
	}
	return g.slots[n.id] == n
}

// Connect appends child to parent's child list.
func (g *Graph) Connect(parent, child *Node) error {
	if !g.Contains(parent) {
		return nodeNotFound(nodeID(parent), "parent does not belong to graph")
	}
	if !g.Contains(child) {
		return nodeNotFound(nodeID(child), "child does not belong to graph")
	}
	parent.children = append(parent.children, child)
	return nil
}

// Nodes returns all nodes in identifier order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, g.count)
	for _, n := range g.slots {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

func nodeID(n *Node) particle.Index {
	if n == nil {
		return particle.NoParent
	}
	return n.id
}
