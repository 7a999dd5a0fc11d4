package eventfile

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/decaychain/internal/event"
	"github.com/roach88/decaychain/internal/particle"
)

func expectedHiggs() particle.Collection {
	return particle.Collection{
		{Type: 25, Status: 22, P4: particle.Vector{Pz: 10, Mass: 125}},
		{Type: 4, Status: 23, Charge: 1, P4: particle.Vector{Px: 3, Py: 4}, Parents: []particle.Index{0}},
		{Type: -4, Status: 23, Charge: -1, P4: particle.Vector{Px: -3, Py: -4, Pz: 10}, Parents: []particle.Index{0, particle.NoParent}},
	}
}

func assertHiggsEvents(t *testing.T, events []event.Event) {
	t.Helper()
	require.Len(t, events, 2)

	n, ok := events[0].Number()
	require.True(t, ok)
	assert.Equal(t, int64(1), n)
	p, ok := events[0].Particles()
	require.True(t, ok)
	assert.Equal(t, expectedHiggs(), p)

	n, ok = events[1].Number()
	require.True(t, ok)
	assert.Equal(t, int64(2), n)
	_, ok = events[1].Particles()
	assert.False(t, ok, "missing particles key means no collection")
}

func TestLoad_AllFormatsAgree(t *testing.T) {
	for _, name := range []string{"higgs.yaml", "higgs.json", "higgs.cue"} {
		t.Run(name, func(t *testing.T) {
			events, err := Load(filepath.Join("testdata", name))
			require.NoError(t, err)
			assertHiggsEvents(t, events)
		})
	}
}

func TestFormatFor(t *testing.T) {
	f, err := FormatFor("a/b/events.YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = FormatFor("events.cue")
	require.NoError(t, err)
	assert.Equal(t, FormatCUE, f)

	_, err = FormatFor("events.root")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestDecodeYAML_RejectsUnknownFields(t *testing.T) {
	_, err := DecodeYAML([]byte("events:\n  - number: 1\n    particle: []\n"))
	assert.ErrorContains(t, err, "particle")
}

func TestDecodeYAML_EmptyDocument(t *testing.T) {
	doc, err := DecodeYAML(nil)
	require.NoError(t, err)
	assert.Empty(t, doc.ToEvents())
}

func TestDecodeYAML_ExplicitEmptyCollection(t *testing.T) {
	doc, err := DecodeYAML([]byte("events:\n  - particles: []\n"))
	require.NoError(t, err)

	events := doc.ToEvents()
	require.Len(t, events, 1)
	p, ok := events[0].Particles()
	assert.True(t, ok)
	assert.Empty(t, p)
	_, ok = events[0].Number()
	assert.False(t, ok)
}

func TestDecodeCUE_SchemaViolation(t *testing.T) {
	src := []byte(`events: [{particles: [{type: "higgs", p4: {px: 0, py: 0, pz: 0, mass: 0}}]}]`)
	_, err := DecodeCUE("bad.cue", src)
	require.Error(t, err)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Contains(t, decodeErr.Message, "type")
}

func TestDecodeCUE_ClosedDocument(t *testing.T) {
	_, err := DecodeCUE("extra.cue", []byte(`events: [], extra: 1`))
	assert.Error(t, err)
}

func TestDecodeCUE_IncompleteValue(t *testing.T) {
	_, err := DecodeCUE("incomplete.cue", []byte(`events: [{particles: [{type: 25, p4: {px: 0, py: 0, pz: 0}}]}]`))
	assert.Error(t, err, "mass is required")
}

func TestDecodeCUE_SyntaxErrorHasPosition(t *testing.T) {
	_, err := DecodeCUE("broken.cue", []byte("events: [\n"))
	require.Error(t, err)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.True(t, decodeErr.Pos.IsValid())
	assert.Contains(t, err.Error(), "broken.cue")
}

func TestEncodeYAML_RoundTrip(t *testing.T) {
	events, err := Load(filepath.Join("testdata", "higgs.yaml"))
	require.NoError(t, err)
	events = append(events, event.New(event.WithParticles(nil)))

	var buf bytes.Buffer
	require.NoError(t, EncodeYAML(&buf, events))

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	back, err := Load(path)
	require.NoError(t, err)
	require.Len(t, back, 3)
	assertHiggsEvents(t, back[:2])

	p, ok := back[2].Particles()
	assert.True(t, ok)
	assert.Empty(t, p)
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to read event file")
}
