package chains

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/roach88/decaychain/internal/config"
	"github.com/roach88/decaychain/internal/event"
)

// Sink receives event reports in source order.
type Sink interface {
	Report(r EventReport, verbose bool) error
}

// Summary counts what a run processed.
type Summary struct {
	Events        int `json:"events"`
	WithParticles int `json:"with_particles"`
	Roots         int `json:"roots"`
	Products      int `json:"products"`
}

// EventError attaches the failing event's position to a processing error.
type EventError struct {
	Entry int
	Err   error
}

func (e *EventError) Error() string {
	return fmt.Sprintf("event %d: %v", e.Entry, e.Err)
}

func (e *EventError) Unwrap() error {
	return e.Err
}

// Runner drives a Processor over a source.
type Runner struct {
	Processor *Processor
	Sink      Sink
	Logger    *zap.Logger

	VerboseEvents int
	ProgressEvery int
}

// NewRunner wires a processor for cfg to sink. A nil logger disables logging.
func NewRunner(cfg config.Config, sink Sink, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		Processor:     NewProcessor(cfg),
		Sink:          sink,
		Logger:        logger,
		VerboseEvents: cfg.VerboseEvents,
		ProgressEvery: cfg.ProgressEvery,
	}
}

// Run processes every event of src in order. The first integrity error stops
// the run and is returned as an *EventError.
func (r *Runner) Run(ctx context.Context, src event.Source) (Summary, error) {
	var summary Summary

	n, err := src.Entries(ctx)
	if err != nil {
		return summary, fmt.Errorf("count events: %w", err)
	}
	r.Logger.Debug("starting run", zap.Int("entries", n))

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if r.ProgressEvery > 0 && i%r.ProgressEvery == 0 {
			r.Logger.Info("reading event", zap.Int("event", i))
		}

		ev, err := src.Event(ctx, i)
		if err != nil {
			return summary, &EventError{Entry: i, Err: err}
		}

		report, err := r.Processor.Process(i, ev)
		r.Processor.Clear()
		if err != nil {
			r.Logger.Error("decay graph build failed", zap.Int("event", i), zap.Error(err))
			return summary, &EventError{Entry: i, Err: err}
		}

		summary.Events++
		if report.HasParticles {
			summary.WithParticles++
		}
		summary.Roots += len(report.Chains)
		for _, c := range report.Chains {
			summary.Products += len(c.Products)
		}

		if err := r.Sink.Report(report, i < r.VerboseEvents); err != nil {
			return summary, fmt.Errorf("write report for event %d: %w", i, err)
		}
	}

	r.Logger.Debug("run complete",
		zap.Int("events", summary.Events),
		zap.Int("roots", summary.Roots),
		zap.Int("products", summary.Products))
	return summary, nil
}
