package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// higgsYAML holds an H -> b bbar event followed by an event with no
// particle collection.
const higgsYAML = `events:
  - number: 7
    particles:
      - {type: 25, status: 22, p4: {px: 0, py: 0, pz: 0, mass: 125}}
      - {type: 5, status: 23, charge: 0, p4: {px: 3, py: 4, pz: 0, mass: 0}, parents: [0]}
      - {type: -5, status: 23, charge: 0, p4: {px: -3, py: -4, pz: 0, mass: 0}, parents: [0]}
  - {}
`

// brokenYAML has a parent reference past the end of the collection.
const brokenYAML = `events:
  - number: 1
    particles:
      - {type: 25, p4: {px: 0, py: 0, pz: 0, mass: 125}}
      - {type: 5, p4: {px: 1, py: 0, pz: 0, mass: 0}, parents: [5]}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// execute runs a subcommand built by newCmd and returns stdout and stderr.
func execute(newCmd func(*RootOptions) *cobra.Command, format string, args ...string) (string, string, error) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := newCmd(&RootOptions{Format: format})
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}
