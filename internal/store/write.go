package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/decaychain/internal/canon"
	"github.com/roach88/decaychain/internal/event"
)

// Import describes one import batch.
type Import struct {
	ID          string
	Source      string
	Seq         int64
	Fingerprint string // empty for streamed imports
	Events      int
}

// ImportResult reports the outcome of Import.
type ImportResult struct {
	ID          string
	Fingerprint string
	Events      int

	// Existing is true when the same content was imported before; ID then
	// names that earlier import and nothing was written.
	Existing bool
}

// execer is the subset of *sql.DB and *sql.Tx the writers need.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// Import writes events as one batch, in order, in a single transaction.
// Re-importing content whose fingerprint is already recorded is a no-op that
// returns the earlier import. Identical events within events are all kept.
func (s *Store) Import(ctx context.Context, source string, events []event.Event) (ImportResult, error) {
	fingerprint, err := canon.SourceFingerprint(events)
	if err != nil {
		return ImportResult{}, fmt.Errorf("import: %w", err)
	}
	result := ImportResult{Fingerprint: fingerprint, Events: len(events)}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportResult{}, fmt.Errorf("import: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	err = tx.QueryRowContext(ctx, `SELECT id FROM imports WHERE fingerprint = ?`, fingerprint).Scan(&result.ID)
	switch {
	case err == nil:
		result.Existing = true
		return result, nil
	case !errors.Is(err, sql.ErrNoRows):
		return ImportResult{}, fmt.Errorf("import: lookup existing: %w", err)
	}

	result.ID, err = insertImport(ctx, tx, source, sql.NullString{String: fingerprint, Valid: true})
	if err != nil {
		return ImportResult{}, fmt.Errorf("import: %w", err)
	}
	for i, ev := range events {
		if _, err := insertEvent(ctx, tx, result.ID, i, ev); err != nil {
			return ImportResult{}, fmt.Errorf("import: event %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return ImportResult{}, fmt.Errorf("import: commit: %w", err)
	}
	s.resetSeqs()
	return result, nil
}

// BeginImport records a new streamed import batch and returns its UUIDv7
// identifier. Streamed imports carry no fingerprint and are never deduplicated.
func (s *Store) BeginImport(ctx context.Context, source string) (string, error) {
	id, err := insertImport(ctx, s.db, source, sql.NullString{})
	if err != nil {
		return "", fmt.Errorf("begin import: %w", err)
	}
	return id, nil
}

// WriteEvent appends ev to the streamed import importID and returns its seq.
// The event row and all of its particles are written in one transaction.
func (s *Store) WriteEvent(ctx context.Context, importID string, ev event.Event) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("write event: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var position int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE import_id = ?`, importID).Scan(&position)
	if err != nil {
		return 0, fmt.Errorf("write event: next position: %w", err)
	}

	seq, err := insertEvent(ctx, tx, importID, position, ev)
	if err != nil {
		return 0, fmt.Errorf("write event: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("write event: commit: %w", err)
	}
	s.resetSeqs()
	return seq, nil
}

func insertImport(ctx context.Context, ex execer, source string, fingerprint sql.NullString) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	_, err = ex.ExecContext(ctx, `
		INSERT INTO imports (id, source, seq, fingerprint)
		VALUES (?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM imports), ?)
	`, id.String(), source, fingerprint)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// insertEvent writes one event row and its particles.
func insertEvent(ctx context.Context, ex execer, importID string, position int, ev event.Event) (int64, error) {
	fingerprint, err := canon.EventFingerprint(ev)
	if err != nil {
		return 0, err
	}

	var number sql.NullInt64
	if n, ok := ev.Number(); ok {
		number = sql.NullInt64{Int64: n, Valid: true}
	}
	particles, hasParticles := ev.Particles()

	result, err := ex.ExecContext(ctx, `
		INSERT INTO events (import_id, position, fingerprint, number, has_particles)
		VALUES (?, ?, ?, ?, ?)
	`, importID, position, fingerprint, number, hasParticles)
	if err != nil {
		return 0, err
	}
	seq, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	if len(particles) == 0 {
		return seq, nil
	}

	stmt, err := ex.PrepareContext(ctx, `
		INSERT INTO particles
		(event_seq, idx, type, status, charge, px, py, pz, mass, parents)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare particles: %w", err)
	}
	defer stmt.Close()

	for i, p := range particles {
		parents, err := marshalParents(p.Parents)
		if err != nil {
			return 0, fmt.Errorf("particle %d: %w", i, err)
		}
		_, err = stmt.ExecContext(ctx,
			seq, i, p.Type, p.Status, p.Charge,
			p.P4.Px, p.P4.Py, p.P4.Pz, p.P4.Mass,
			parents,
		)
		if err != nil {
			return 0, fmt.Errorf("particle %d: %w", i, err)
		}
	}
	return seq, nil
}
