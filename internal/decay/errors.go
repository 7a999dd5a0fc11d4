package decay

import (
	"errors"
	"fmt"

	"github.com/roach88/decaychain/internal/particle"
)

// Sentinel errors for graph construction and lookup.
var (
	// ErrDuplicateNode is returned when a node is added twice for one index.
	ErrDuplicateNode = errors.New("decay: duplicate node")

	// ErrNodeNotFound is returned for an index or node absent from the graph.
	ErrNodeNotFound = errors.New("decay: node not found")

	// ErrMalformedReference is returned for a parent reference that is out of
	// range or points at the record itself.
	ErrMalformedReference = errors.New("decay: malformed parent reference")

	// ErrGraphNotEmpty is returned when Build runs on a graph that was not cleared.
	ErrGraphNotEmpty = errors.New("decay: graph not empty")
)

// GraphError carries the index context of an integrity error.
type GraphError struct {
	// Kind is one of the sentinel errors above.
	Kind error

	// Index is the node the error concerns.
	Index particle.Index

	// Parent is the offending parent reference (MalformedReference only),
	// otherwise NoParent.
	Parent particle.Index

	// Message adds detail, may be empty.
	Message string
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	msg := fmt.Sprintf("%v (index=%d", e.Kind, e.Index)
	if e.Parent != particle.NoParent {
		msg += fmt.Sprintf(", parent=%d", e.Parent)
	}
	msg += ")"
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns the sentinel so errors.Is works.
func (e *GraphError) Unwrap() error {
	return e.Kind
}

func duplicateNode(idx particle.Index) error {
	return &GraphError{Kind: ErrDuplicateNode, Index: idx, Parent: particle.NoParent}
}

func nodeNotFound(idx particle.Index, msg string) error {
	return &GraphError{Kind: ErrNodeNotFound, Index: idx, Parent: particle.NoParent, Message: msg}
}

func malformedReference(idx, parent particle.Index, msg string) error {
	return &GraphError{Kind: ErrMalformedReference, Index: idx, Parent: parent, Message: msg}
}

// IsIntegrityError reports whether err is one of this package's sentinels.
func IsIntegrityError(err error) bool {
	return errors.Is(err, ErrDuplicateNode) ||
		errors.Is(err, ErrNodeNotFound) ||
		errors.Is(err, ErrMalformedReference) ||
		errors.Is(err, ErrGraphNotEmpty)
}
