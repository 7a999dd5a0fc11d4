// Package source opens an event file as an event.Source, choosing the
// backend from the file extension.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/decaychain/internal/event"
	"github.com/roach88/decaychain/internal/eventfile"
	"github.com/roach88/decaychain/internal/store"
)

// IsStore reports whether path names a SQLite event store.
func IsStore(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// Open opens an existing event file for reading. Stores are opened read-only
// and never modified.
//
//	.db .sqlite .sqlite3   SQLite event store
//	.yaml .yml .json       YAML document
//	.cue                   CUE document
func Open(path string) (event.Source, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if IsStore(path) {
		s, err := store.OpenReadOnly(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		return s, nil
	}
	src, err := eventfile.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return src, nil
}
