// Package decay builds and queries the decay graph of one event.
//
// A Graph holds one Node per particle record, addressed by the record's
// collection index. Edges point from a parent particle to each of its decay
// products. A Builder fills a Graph from a flat particle.Collection in two
// passes (nodes first, then edges) so parent references may point forwards or
// backwards in the collection.
//
// # Lifecycle
//
// A Graph is built once per event and cleared before the next one:
//
//	b := decay.NewBuilder()
//	for each event {
//		if err := b.Build(particles); err != nil { ... }
//		... select roots, traverse ...
//		b.Clear()
//	}
//
// Build refuses to run on a graph that still holds nodes, which catches a
// missing Clear between events instead of silently merging two events.
//
// # Errors
//
// Integrity problems are reported immediately and are never dropped:
//   - ErrDuplicateNode: the same index was added twice in one build
//   - ErrNodeNotFound: an index or node that does not belong to the graph
//   - ErrMalformedReference: a parent reference outside the collection or to itself
//   - ErrGraphNotEmpty: Build called without Clear
//
// All are wrapped in *GraphError; use errors.Is to test for them.
//
// Mutation (Build, Connect, Clear) is not synchronized. A fully built graph
// may be traversed from several goroutines at once.
package decay
