// Package particle defines the generated-particle records that make up one
// event's collection.
//
// Records are addressed by their position in the collection. Parent links are
// positions too, typed as Index so they cannot be mixed with unrelated
// integers. NoParent marks an empty parent slot.
//
// Kinematic fields are payload: the decay graph never reads them. They exist
// for filtering, printing and comparison.
package particle
