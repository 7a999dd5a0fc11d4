package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/decaychain/internal/decay"
	"github.com/roach88/decaychain/internal/particle"
)

func TestEventGenerator_Deterministic(t *testing.T) {
	a := NewEventGenerator(42).Events(20)
	b := NewEventGenerator(42).Events(20)
	assert.Equal(t, a, b)
}

func TestEventGenerator_Reset(t *testing.T) {
	g := NewEventGenerator(7)
	first := g.Events(5)
	g.Reset()
	assert.Equal(t, first, g.Events(5))
}

func TestEventGenerator_Numbers(t *testing.T) {
	g := NewEventGenerator(1)
	for want := int64(1); want <= 3; want++ {
		n, ok := g.Next().Number()
		require.True(t, ok)
		assert.Equal(t, want, n)
	}
}

func TestEventGenerator_ProducesDecayTrees(t *testing.T) {
	g := NewEventGenerator(2024)
	b := decay.NewBuilder()

	for _, ev := range g.Events(200) {
		particles, ok := ev.Particles()
		require.True(t, ok)
		require.NoError(t, b.Build(particles))

		// Every particle with a parent descends from exactly one root.
		seen := make(map[particle.Index]int)
		for _, root := range b.Select(particle.Roots()) {
			nodes, err := b.TraverseChildren(root)
			require.NoError(t, err)
			for _, n := range nodes {
				seen[n.ID()]++
			}
		}
		for i, rec := range particles {
			if rec.HasParent() {
				assert.Equal(t, 1, seen[particle.Index(i)], "particle %d", i)
			} else {
				assert.Zero(t, seen[particle.Index(i)], "particle %d", i)
			}
		}
		b.Clear()
	}
}

func TestRecord(t *testing.T) {
	r := Record(-24, 0)
	assert.Equal(t, int32(-24), r.Type)
	assert.Equal(t, int32(-1), r.Charge)
	assert.Equal(t, []particle.Index{0}, r.Parents)
}
