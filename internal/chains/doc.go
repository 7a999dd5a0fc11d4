// Package chains runs the per-event decay-chain analysis.
//
// For every event the Processor builds the decay graph of the generated
// particles, selects root particles by type, and lists each root's decay
// products in breadth-first order, resolved back to their records through the
// collection index. Run drives a Processor over an event.Source, clearing the
// graph after every event so no state crosses event boundaries.
//
// Output is delegated to a Sink. The first VerboseEvents events are reported
// in full; later events are still processed (and still fail fast on integrity
// errors) but only counted.
package chains
