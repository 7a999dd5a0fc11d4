package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/decaychain/internal/chains"
	"github.com/roach88/decaychain/internal/particle"
)

func TestReadText(t *testing.T) {
	path := writeFile(t, "higgs.yaml", higgsYAML)

	out, _, err := execute(NewReadCommand, "text", path, "--progress-every", "0")
	require.NoError(t, err)

	assert.Contains(t, out, "event number 7\n")
	assert.Contains(t, out, "particle collection:\n")
	assert.Contains(t, out, "\n[0] particle ID 25 e 125 pt 0 eta 0 phi 0\n")
	assert.Contains(t, out, "\tdirect decay products: 2\n")
	assert.Contains(t, out, "\t[1] particle ID 5 e 5 pt 5 eta 0 phi 0.927295\n")
	assert.Contains(t, out, "event entry 1\nno particle collection\n")
}

func TestReadJSON(t *testing.T) {
	path := writeFile(t, "higgs.yaml", higgsYAML)

	out, _, err := execute(NewReadCommand, "json", path)
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   ReadResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, chains.Summary{Events: 2, WithParticles: 1, Roots: 1, Products: 2}, resp.Data.Summary)

	require.Len(t, resp.Data.Events, 2)
	ev := resp.Data.Events[0]
	require.NotNil(t, ev.Number)
	assert.Equal(t, int64(7), *ev.Number)
	require.Len(t, ev.Chains, 1)
	assert.Equal(t, particle.Index(0), ev.Chains[0].Index)
	assert.Equal(t, 2, ev.Chains[0].DirectProducts)
	assert.False(t, resp.Data.Events[1].HasParticles)
}

func TestReadVerboseEventsLimit(t *testing.T) {
	path := writeFile(t, "higgs.yaml", higgsYAML)

	out, _, err := execute(NewReadCommand, "text", path, "--verbose-events", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "event number 7")
	assert.NotContains(t, out, "event entry 1")
}

func TestReadConfigFileAndFlagOverride(t *testing.T) {
	path := writeFile(t, "higgs.yaml", higgsYAML)
	cfgPath := writeFile(t, "decaychain.yaml", "root_types: [5]\nprogress_every: 0\n")

	out, _, err := execute(NewReadCommand, "text", path, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "\n[1] particle ID 5 ")
	assert.NotContains(t, out, "\n[0] particle ID 25 ")

	out, _, err = execute(NewReadCommand, "text", path, "--config", cfgPath, "--root-type", "25")
	require.NoError(t, err)
	assert.Contains(t, out, "\n[0] particle ID 25 ")
	assert.NotContains(t, out, "\n[1] particle ID 5 ")
}

func TestReadInvalidConfig(t *testing.T) {
	path := writeFile(t, "higgs.yaml", higgsYAML)
	cfgPath := writeFile(t, "decaychain.yaml", "max_depth: -1\n")

	_, errOut, err := execute(NewReadCommand, "text", path, "--config", cfgPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, errOut, "Error [E004]")
}

func TestReadMalformedEvent(t *testing.T) {
	path := writeFile(t, "broken.yaml", brokenYAML)

	_, errOut, err := execute(NewReadCommand, "text", path, "--progress-every", "0")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, errOut, "Error [E005]")

	var evErr *chains.EventError
	require.ErrorAs(t, err, &evErr)
	assert.Equal(t, 0, evErr.Entry)
}

func TestReadMissingFile(t *testing.T) {
	_, errOut, err := execute(NewReadCommand, "text", "/nonexistent/events.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, errOut, "Error [E002]")
}

func TestReadUnknownExtension(t *testing.T) {
	path := writeFile(t, "events.root", "not an event file")

	_, errOut, err := execute(NewReadCommand, "text", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, errOut, "Error [E003]")
}
