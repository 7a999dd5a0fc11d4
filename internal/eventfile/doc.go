// Package eventfile reads and writes event documents.
//
// Two encodings are supported, both with the same shape:
//
//	events:
//	  - number: 1
//	    particles:
//	      - {type: 25, status: 22, p4: {px: 0, py: 0, pz: 10, mass: 125}}
//	      - {type: 4, p4: {...}, parents: [0]}
//
// YAML (and JSON, which YAML accepts) is decoded with unknown fields
// rejected. CUE documents are unified with an embedded schema before decoding,
// so type errors are reported with CUE positions.
//
// An event without a particles key has no particle collection; an explicit
// empty list is an empty collection.
package eventfile
