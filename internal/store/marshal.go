package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/decaychain/internal/canon"
	"github.com/roach88/decaychain/internal/particle"
)

// marshalParents stores parent indices as a canonical JSON array.
// A nil slice is stored as [].
func marshalParents(parents []particle.Index) (string, error) {
	ints := make([]int64, len(parents))
	for i, p := range parents {
		ints[i] = int64(p)
	}
	data, err := canon.Marshal(ints)
	if err != nil {
		return "", fmt.Errorf("marshal parents: %w", err)
	}
	return string(data), nil
}

// unmarshalParents is the inverse of marshalParents. [] reads back as nil so
// a round trip preserves records built without parents.
func unmarshalParents(data string) ([]particle.Index, error) {
	var parents []particle.Index
	if err := json.Unmarshal([]byte(data), &parents); err != nil {
		return nil, fmt.Errorf("unmarshal parents: %w", err)
	}
	if len(parents) == 0 {
		return nil, nil
	}
	return parents, nil
}
