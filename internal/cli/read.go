package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/decaychain/internal/chains"
	"github.com/roach88/decaychain/internal/config"
)

// ReadOptions holds flags for the read command.
type ReadOptions struct {
	*RootOptions
	ConfigPath    string
	RootTypes     []int32
	MaxDepth      int
	VerboseEvents int
	ProgressEvery int
}

// ReadResult is the JSON payload of the read command.
type ReadResult struct {
	File    string               `json:"file"`
	Summary chains.Summary       `json:"summary"`
	Events  []chains.EventReport `json:"events"`
}

// NewReadCommand creates the read command.
func NewReadCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReadOptions{RootOptions: rootOpts}
	defaults := config.Default()

	cmd := &cobra.Command{
		Use:   "read <file>",
		Short: "Print the decay chains of selected particles",
		Long: `Read every event of an event file, build its decay graph and print the
decay products of each selected root particle (Higgs bosons by default).

The first events are printed in full; later events are processed and
counted but not printed. A malformed event stops the run.

Examples:
  decaychain read events.yaml
  decaychain read events.db --root-type 25 --root-type 6 --max-depth 2
  decaychain read events.cue --config decaychain.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRead(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "YAML config file")
	cmd.Flags().Int32SliceVar(&opts.RootTypes, "root-type", defaults.RootTypes, "PDG code of root particles (repeatable)")
	cmd.Flags().IntVar(&opts.MaxDepth, "max-depth", defaults.MaxDepth, "decay levels to list (0 for all)")
	cmd.Flags().IntVar(&opts.VerboseEvents, "verbose-events", defaults.VerboseEvents, "number of leading events printed in full")
	cmd.Flags().IntVar(&opts.ProgressEvery, "progress-every", defaults.ProgressEvery, "log progress every N events (0 disables)")

	return cmd
}

// resolveConfig layers explicitly set flags over the config file (or defaults).
func (o *ReadOptions) resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if o.ConfigPath != "" {
		loaded, err := config.Load(o.ConfigPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("root-type") {
		cfg.RootTypes = o.RootTypes
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = o.MaxDepth
	}
	if flags.Changed("verbose-events") {
		cfg.VerboseEvents = o.VerboseEvents
	}
	if flags.Changed("progress-every") {
		cfg.ProgressEvery = o.ProgressEvery
	}
	return cfg, cfg.Validate()
}

func runRead(cmd *cobra.Command, opts *ReadOptions, path string) error {
	f := opts.formatter(cmd)

	cfg, err := opts.resolveConfig(cmd)
	if err != nil {
		return fail(f, ExitCommandError, ErrCodeConfig, "invalid configuration", err)
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)
	defer func() { _ = logger.Sync() }()

	src, err := openSource(f, path)
	if err != nil {
		return err
	}
	defer src.Close()

	var (
		sink    chains.Sink
		collect *chains.CollectSink
	)
	if f.JSON() {
		collect = &chains.CollectSink{}
		sink = collect
	} else {
		sink = &chains.TextSink{W: cmd.OutOrStdout()}
	}

	summary, err := chains.NewRunner(cfg, sink, logger.Named("read")).Run(cmd.Context(), src)
	if err != nil {
		return fail(f, ExitFailure, errCodeFor(err), "reading "+path+" failed", err)
	}

	if !f.JSON() {
		return nil
	}
	events := collect.Reports
	if events == nil {
		events = []chains.EventReport{}
	}
	return f.Success(ReadResult{File: path, Summary: summary, Events: events})
}
