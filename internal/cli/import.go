package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/decaychain/internal/event"
	"github.com/roach88/decaychain/internal/store"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	DBPath string
}

// ImportResult is the payload of the import command.
type ImportResult struct {
	ImportID    string `json:"import_id"`
	Source      string `json:"source"`
	DB          string `json:"db"`
	Events      int    `json:"events"`
	Fingerprint string `json:"fingerprint"`

	// Existing is true when the same content was already in the store.
	Existing bool `json:"existing"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Copy events into a SQLite event store",
		Long: `Copy every event of an event file into a SQLite event store, creating the
store if needed. Every event is kept at its position, repeated events
included. A file whose content is already in the store is not imported
again, so importing the same file twice is harmless.

Examples:
  decaychain import events.yaml --db events.db
  decaychain import events.cue --db events.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "SQLite store to write (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runImport(cmd *cobra.Command, opts *ImportOptions, path string) error {
	f := opts.formatter(cmd)
	ctx := cmd.Context()

	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose).Named("import")
	defer func() { _ = logger.Sync() }()

	src, err := openSource(f, path)
	if err != nil {
		return err
	}
	defer src.Close()

	st, err := store.Open(opts.DBPath)
	if err != nil {
		return fail(f, ExitCommandError, ErrCodeWriteFailed, "cannot open store "+opts.DBPath, err)
	}
	defer st.Close()

	events, err := event.ReadAll(ctx, src)
	if err != nil {
		return fail(f, ExitFailure, ErrCodeFormat, "cannot read "+path, err)
	}

	imp, err := st.Import(ctx, path, events)
	if err != nil {
		return fail(f, ExitFailure, ErrCodeWriteFailed, "cannot import events", err)
	}
	logger.Debug("import finished",
		zap.String("import_id", imp.ID),
		zap.String("fingerprint", imp.Fingerprint),
		zap.Int("events", imp.Events),
		zap.Bool("existing", imp.Existing))

	result := ImportResult{
		ImportID:    imp.ID,
		Source:      path,
		DB:          opts.DBPath,
		Events:      imp.Events,
		Fingerprint: imp.Fingerprint,
		Existing:    imp.Existing,
	}
	if f.JSON() {
		return f.Success(result)
	}
	if result.Existing {
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s already stored in %s (import %s), nothing written\n",
			result.Source, result.DB, result.ImportID)
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d events from %s into %s (import %s)\n",
		result.Events, result.Source, result.DB, result.ImportID)
	return err
}
