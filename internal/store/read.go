package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/decaychain/internal/event"
	"github.com/roach88/decaychain/internal/particle"
)

var _ event.Source = (*Store)(nil)

// Entries returns the number of stored events. Implements event.Source.
func (s *Store) Entries(ctx context.Context) (int, error) {
	seqs, err := s.eventSeqs(ctx)
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return len(seqs), nil
}

// eventSeqs returns every event seq in file order, loading it once.
func (s *Store) eventSeqs(ctx context.Context) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seqs != nil {
		return s.seqs, nil
	}

	rows, err := s.db.QueryContext(ctx, `SELECT seq FROM events ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("query event seqs: %w", err)
	}
	defer rows.Close()

	seqs := []int64{}
	for rows.Next() {
		var seq int64
		if err := rows.Scan(&seq); err != nil {
			return nil, fmt.Errorf("scan event seq: %w", err)
		}
		seqs = append(seqs, seq)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event seqs: %w", err)
	}
	s.seqs = seqs
	return seqs, nil
}

// resetSeqs drops the cached seq list after a write.
func (s *Store) resetSeqs() {
	s.mu.Lock()
	s.seqs = nil
	s.mu.Unlock()
}

// Event returns the i-th event in file order. Implements event.Source.
func (s *Store) Event(ctx context.Context, i int) (event.Event, error) {
	seqs, err := s.eventSeqs(ctx)
	if err != nil {
		return event.Event{}, fmt.Errorf("read event %d: %w", i, err)
	}
	if i < 0 || i >= len(seqs) {
		return event.Event{}, fmt.Errorf("%w: %d", event.ErrEventOutOfRange, i)
	}
	seq := seqs[i]

	var (
		number       sql.NullInt64
		hasParticles bool
	)
	err = s.db.QueryRowContext(ctx, `
		SELECT number, has_particles
		FROM events
		WHERE seq = ?
	`, seq).Scan(&number, &hasParticles)
	if errors.Is(err, sql.ErrNoRows) {
		return event.Event{}, fmt.Errorf("%w: %d", event.ErrEventOutOfRange, i)
	}
	if err != nil {
		return event.Event{}, fmt.Errorf("read event %d: %w", i, err)
	}

	var opts []event.Option
	if number.Valid {
		opts = append(opts, event.WithNumber(number.Int64))
	}
	if hasParticles {
		particles, err := s.readParticles(ctx, seq)
		if err != nil {
			return event.Event{}, fmt.Errorf("read event %d: %w", i, err)
		}
		opts = append(opts, event.WithParticles(particles))
	}
	return event.New(opts...), nil
}

// readParticles returns an event's particles in collection order.
func (s *Store) readParticles(ctx context.Context, eventSeq int64) (particle.Collection, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT idx, type, status, charge, px, py, pz, mass, parents
		FROM particles
		WHERE event_seq = ?
		ORDER BY idx ASC
	`, eventSeq)
	if err != nil {
		return nil, fmt.Errorf("query particles: %w", err)
	}
	defer rows.Close()

	particles := particle.Collection{}
	for rows.Next() {
		var (
			idx     int
			p       particle.Record
			parents string
		)
		if err := rows.Scan(&idx, &p.Type, &p.Status, &p.Charge,
			&p.P4.Px, &p.P4.Py, &p.P4.Pz, &p.P4.Mass, &parents); err != nil {
			return nil, fmt.Errorf("scan particle: %w", err)
		}
		if idx != len(particles) {
			return nil, fmt.Errorf("particle index gap: got %d, want %d", idx, len(particles))
		}
		if p.Parents, err = unmarshalParents(parents); err != nil {
			return nil, fmt.Errorf("particle %d: %w", idx, err)
		}
		particles = append(particles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate particles: %w", err)
	}
	return particles, nil
}

// Imports lists import batches in import order with their event counts.
func (s *Store) Imports(ctx context.Context) ([]Import, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT i.id, i.source, i.seq, i.fingerprint, COUNT(e.seq)
		FROM imports i
		LEFT JOIN events e ON e.import_id = i.id
		GROUP BY i.id
		ORDER BY i.seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query imports: %w", err)
	}
	defer rows.Close()

	imports := []Import{}
	for rows.Next() {
		var (
			imp         Import
			fingerprint sql.NullString
		)
		if err := rows.Scan(&imp.ID, &imp.Source, &imp.Seq, &fingerprint, &imp.Events); err != nil {
			return nil, fmt.Errorf("scan import: %w", err)
		}
		imp.Fingerprint = fingerprint.String
		imports = append(imports, imp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate imports: %w", err)
	}
	return imports, nil
}
