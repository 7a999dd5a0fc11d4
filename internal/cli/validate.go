package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/decaychain/internal/decay"
)

// ValidateResult is the payload of the validate command.
type ValidateResult struct {
	File          string `json:"file"`
	Events        int    `json:"events"`
	WithParticles int    `json:"with_particles"`
	Particles     int    `json:"particles"`
	Valid         bool   `json:"valid"`
	FailedEvent   *int   `json:"failed_event,omitempty"`
	Error         string `json:"error,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check that every event forms a valid decay graph",
		Long: `Build the decay graph of every event and report the first event whose
parent references are malformed (out of range, negative or
self-referencing).

Exits with code 1 when an event is invalid.

Examples:
  decaychain validate events.yaml
  decaychain validate events.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, rootOpts, args[0])
		},
	}
	return cmd
}

func runValidate(cmd *cobra.Command, opts *RootOptions, path string) error {
	f := opts.formatter(cmd)
	ctx := cmd.Context()

	src, err := openSource(f, path)
	if err != nil {
		return err
	}
	defer src.Close()

	n, err := src.Entries(ctx)
	if err != nil {
		return fail(f, ExitFailure, ErrCodeFormat, "cannot read "+path, err)
	}

	result := ValidateResult{File: path, Valid: true}
	b := decay.NewBuilder()
	for i := 0; i < n; i++ {
		ev, err := src.Event(ctx, i)
		if err != nil {
			return fail(f, ExitFailure, ErrCodeFormat, "cannot read "+path, err)
		}
		result.Events++

		particles, ok := ev.Particles()
		if !ok {
			continue
		}
		result.WithParticles++
		result.Particles += particles.Len()

		err = b.Build(particles)
		b.Clear()
		if err != nil {
			entry := i
			result.Valid = false
			result.FailedEvent = &entry
			result.Error = err.Error()
			break
		}
	}

	if err := writeValidate(f, cmd, result); err != nil {
		return err
	}
	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("event %d: %s", *result.FailedEvent, result.Error))
	}
	return nil
}

func writeValidate(f *OutputFormatter, cmd *cobra.Command, r ValidateResult) error {
	if f.JSON() {
		return f.Success(r)
	}
	w := cmd.OutOrStdout()
	if r.Valid {
		_, err := fmt.Fprintf(w, "%s: %d events (%d with particles, %d particles) valid\n",
			r.File, r.Events, r.WithParticles, r.Particles)
		return err
	}
	_, err := fmt.Fprintf(w, "%s: event %d invalid: %s\n", r.File, *r.FailedEvent, r.Error)
	return err
}
