package particle

import (
	"fmt"
	"slices"
)

// Index is a record's position within its event's collection.
type Index int32

// NoParent is the parent-reference sentinel meaning "no parent".
const NoParent Index = -1

// Well-known PDG type codes used as default root selectors.
const (
	TypeCharm int32 = 4
	TypeHiggs int32 = 25
)

// Record is one generated particle.
type Record struct {
	Type    int32   `json:"type" yaml:"type"`
	Status  int32   `json:"status" yaml:"status"`
	Charge  int32   `json:"charge" yaml:"charge"`
	P4      Vector  `json:"p4" yaml:"p4"`
	Parents []Index `json:"parents,omitempty" yaml:"parents,omitempty"`
}

// String renders the record the way the read command prints it.
func (r Record) String() string {
	return fmt.Sprintf("particle ID %d e %s pt %s eta %s phi %s",
		r.Type,
		formatFloat(r.P4.E()),
		formatFloat(r.P4.Pt()),
		formatFloat(r.P4.Eta()),
		formatFloat(r.P4.Phi()))
}

// HasParent reports whether the record lists at least one real parent.
func (r Record) HasParent() bool {
	for _, p := range r.Parents {
		if p != NoParent {
			return true
		}
	}
	return false
}

// Collection is an ordered, index-addressed sequence of records for one event.
type Collection []Record

// Len returns the number of records.
func (c Collection) Len() int {
	return len(c)
}

// Valid reports whether i addresses a record in c.
func (c Collection) Valid(i Index) bool {
	return i >= 0 && int(i) < len(c)
}

// At returns a pointer to the record at i. Panics if i is out of range.
func (c Collection) At(i Index) *Record {
	return &c[i]
}

// Clone returns a deep copy; parent slices are not shared.
func (c Collection) Clone() Collection {
	if c == nil {
		return nil
	}
	out := make(Collection, len(c))
	for i, r := range c {
		r.Parents = slices.Clone(r.Parents)
		out[i] = r
	}
	return out
}

// Predicate selects records, typically to pick traversal roots.
type Predicate func(Record) bool

// OfType matches records whose type is one of codes.
func OfType(codes ...int32) Predicate {
	return func(r Record) bool {
		return slices.Contains(codes, r.Type)
	}
}

// Roots matches records with no parent.
func Roots() Predicate {
	return func(r Record) bool {
		return !r.HasParent()
	}
}
