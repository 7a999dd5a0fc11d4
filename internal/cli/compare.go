package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/decaychain/internal/compare"
)

// CompareOptions holds flags for the compare command.
type CompareOptions struct {
	*RootOptions
	MaxDetails int
}

// NewCompareCommand creates the compare command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompareOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compare <file1> <file2>",
		Short: "Compare two event files value by value",
		Long: `Compare two event files event by event: collection presence and size,
every particle's type, status, charge, four-momentum and parents, and
the shape of each event's decay graph.

Exits with code 1 when the files differ.

Examples:
  decaychain compare before.yaml after.db
  decaychain compare a.yaml b.yaml --max-details 10 --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, opts, args[0], args[1])
		},
	}

	cmd.Flags().IntVar(&opts.MaxDetails, "max-details", compare.DefaultMaxDetails, "maximum mismatch details to list")

	return cmd
}

func runCompare(cmd *cobra.Command, opts *CompareOptions, pathA, pathB string) error {
	f := opts.formatter(cmd)
	if opts.MaxDetails <= 0 {
		return fail(f, ExitCommandError, ErrCodeConfig, "--max-details must be positive", nil)
	}

	a, err := openSource(f, pathA)
	if err != nil {
		return err
	}
	defer a.Close()

	b, err := openSource(f, pathB)
	if err != nil {
		return err
	}
	defer b.Close()

	c := &compare.Comparer{MaxDetails: opts.MaxDetails}
	report, err := c.Compare(cmd.Context(), a, b)
	if err != nil {
		return fail(f, ExitFailure, errCodeFor(err), "comparison failed", err)
	}

	if f.JSON() {
		if err := f.Success(report); err != nil {
			return err
		}
	} else {
		if err := report.WriteText(cmd.OutOrStdout(), true); err != nil {
			return fail(f, ExitFailure, ErrCodeWriteFailed, "cannot write report", err)
		}
	}

	if !report.Equal() {
		return NewExitError(ExitFailure, fmt.Sprintf("%s: files differ (%d mismatches)", ErrCodeMismatch, report.Mismatches))
	}
	return nil
}
