// Package traverse provides stateless breadth-first enumeration over any node
// type that exposes its ordered children.
//
// Each call returns a fresh iterator. The queue and visited set are created
// when iteration starts and discarded when it ends, so traversals of the same
// read-only structure may run repeatedly or concurrently.
//
// Revisits are suppressed by a visited set keyed on node identity, which
// bounds every traversal by the number of reachable nodes even when the input
// contains a cycle.
package traverse
