package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/decaychain/internal/event"
	"github.com/roach88/decaychain/internal/particle"
)

// createTestStore creates a new store in a temporary directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// beginTestImport starts an import batch or fails the test.
func beginTestImport(t *testing.T, s *Store) string {
	t.Helper()
	id, err := s.BeginImport(context.Background(), "test")
	if err != nil {
		t.Fatalf("BeginImport() failed: %v", err)
	}
	return id
}

// createTestEvent is H -> c c̄ with the given event number.
func createTestEvent(number int64) event.Event {
	return event.New(
		event.WithNumber(number),
		event.WithParticles(particle.Collection{
			{Type: 25, Status: 22, P4: particle.Vector{Px: 0.25, Py: -1.5, Pz: 40, Mass: 125}},
			{Type: 4, Status: 23, Charge: 1, P4: particle.Vector{Px: 30.5, Py: 2, Pz: 11}, Parents: []particle.Index{0}},
			{Type: -4, Status: 23, Charge: -1, P4: particle.Vector{Px: -30.25, Py: -3.5, Pz: 29}, Parents: []particle.Index{0, particle.NoParent}},
		}),
	)
}
