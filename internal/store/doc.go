// Package store provides SQLite-backed storage for event files.
//
// A store holds one ordered sequence of events. Each event keeps its optional
// event-info number, whether it carries a generated-particle collection, and
// the particles themselves in collection order. Events are written in import
// batches; every batch gets a UUIDv7 so the origin of each event stays
// traceable.
//
// # Ordering
//
//   - Events are read back ORDER BY seq ASC (file order).
//   - Particles are read back ORDER BY idx ASC (collection order), so parent
//     indices remain valid after a round trip.
//
// # Idempotency
//
// Import records a whole source in one transaction under the source's content
// fingerprint (canon.SourceFingerprint). Importing a source whose fingerprint
// is already recorded is a no-op, so importing the same file twice does not
// duplicate it. Within a source every event is kept, identical ones included,
// at its original position.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// OpenReadOnly opens an existing store without pragmas, schema or migrations
// and rejects SQLite files that are not decaychain stores.
//
// Store implements event.Source.
package store
