package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/decaychain/internal/event"
	"github.com/roach88/decaychain/internal/eventfile"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Output string
}

// ExportResult is the payload of the export command when writing to a file.
type ExportResult struct {
	Source string `json:"source"`
	Output string `json:"output"`
	Events int    `json:"events"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write events as a YAML event document",
		Long: `Write every event of an event file (typically a SQLite store) as a YAML
event document that "decaychain read" accepts.

Without --output the document is written to stdout.

Examples:
  decaychain export events.db
  decaychain export events.db -o events.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func runExport(cmd *cobra.Command, opts *ExportOptions, path string) error {
	f := opts.formatter(cmd)

	src, err := openSource(f, path)
	if err != nil {
		return err
	}
	defer src.Close()

	events, err := event.ReadAll(cmd.Context(), src)
	if err != nil {
		return fail(f, ExitFailure, ErrCodeFormat, "cannot read "+path, err)
	}

	if opts.Output == "" {
		if err := eventfile.EncodeYAML(cmd.OutOrStdout(), events); err != nil {
			return fail(f, ExitFailure, ErrCodeWriteFailed, "cannot write document", err)
		}
		return nil
	}

	var buf bytes.Buffer
	if err := eventfile.EncodeYAML(&buf, events); err != nil {
		return fail(f, ExitFailure, ErrCodeWriteFailed, "cannot encode document", err)
	}
	if err := os.WriteFile(opts.Output, buf.Bytes(), 0o644); err != nil {
		return fail(f, ExitFailure, ErrCodeWriteFailed, "cannot write "+opts.Output, err)
	}

	result := ExportResult{Source: path, Output: opts.Output, Events: len(events)}
	if f.JSON() {
		return f.Success(result)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "exported %d events from %s to %s\n", result.Events, result.Source, result.Output)
	return err
}
