// Package compare checks two event sources for equality, event by event and
// particle by particle, and tallies the differences per category.
package compare

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/roach88/decaychain/internal/canon"
	"github.com/roach88/decaychain/internal/decay"
	"github.com/roach88/decaychain/internal/event"
	"github.com/roach88/decaychain/internal/particle"
)

// Mismatch categories.
const (
	CategoryEvents     = "events"
	CategoryEventInfo  = "event_info"
	CategoryCollection = "collection"
	CategorySize       = "size"
	CategoryType       = "type"
	CategoryStatus     = "status"
	CategoryCharge     = "charge"
	CategoryP4         = "p4"
	CategoryParents    = "parents"
	CategoryDecayGraph = "decay_graph"
)

// DefaultMaxDetails caps Report.Details.
const DefaultMaxDetails = 100

// Mismatch is one difference. Index is NoParent for event-level findings;
// Entry is -1 for source-level findings.
type Mismatch struct {
	Entry    int            `json:"entry"`
	Index    particle.Index `json:"index"`
	Category string         `json:"category"`
	Message  string         `json:"message"`
}

// Report summarizes a comparison.
type Report struct {
	EventsA        int            `json:"events_a"`
	EventsB        int            `json:"events_b"`
	Mismatches     int            `json:"mismatches"`
	ValuesExamined int            `json:"values_examined"`
	PerCategory    map[string]int `json:"per_category"`
	Details        []Mismatch     `json:"details"`
	Truncated      bool           `json:"truncated,omitempty"`

	// IdenticalGraphs counts events whose decay graphs have equal canonical
	// fingerprints (same shape and particle types).
	IdenticalGraphs int `json:"identical_graphs"`
}

// Equal reports whether no mismatch was found.
func (r *Report) Equal() bool {
	return r.Mismatches == 0
}

// WriteText prints the summary line and per-category counts in category order.
// It returns the first write error.
func (r *Report) WriteText(w io.Writer, details bool) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d / %d have mismatches, per category:\n", r.Mismatches, r.ValuesExamined)
	for _, k := range slices.Sorted(maps.Keys(r.PerCategory)) {
		fmt.Fprintf(bw, "  %s: %d\n", k, r.PerCategory[k])
	}
	if details {
		for _, m := range r.Details {
			switch {
			case m.Entry < 0:
				fmt.Fprintf(bw, "  %s: %s\n", m.Category, m.Message)
			case m.Index == particle.NoParent:
				fmt.Fprintf(bw, "  event %d %s: %s\n", m.Entry, m.Category, m.Message)
			default:
				fmt.Fprintf(bw, "  event %d particle %d %s: %s\n", m.Entry, m.Index, m.Category, m.Message)
			}
		}
		if r.Truncated {
			fmt.Fprintln(bw, "  ...")
		}
	}
	return bw.Flush()
}

// Comparer compares event sources. The zero value uses DefaultMaxDetails.
type Comparer struct {
	MaxDetails int

	report *Report
	a, b   *decay.Builder
}

// Sources compares a and b with a zero Comparer.
func Sources(ctx context.Context, a, b event.Source) (*Report, error) {
	var c Comparer
	return c.Compare(ctx, a, b)
}

// Compare walks both sources in step. Events beyond the shorter source are
// counted once under CategoryEvents. An event whose particles do not form a
// valid decay graph aborts the comparison.
func (c *Comparer) Compare(ctx context.Context, a, b event.Source) (*Report, error) {
	na, err := a.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("count events (first): %w", err)
	}
	nb, err := b.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("count events (second): %w", err)
	}

	c.report = &Report{EventsA: na, EventsB: nb, PerCategory: map[string]int{}, Details: []Mismatch{}}
	c.a, c.b = decay.NewBuilder(), decay.NewBuilder()

	if na != nb {
		c.add(-1, particle.NoParent, CategoryEvents, fmt.Sprintf("%d vs %d events", na, nb))
	}

	for i := 0; i < min(na, nb); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		evA, err := a.Event(ctx, i)
		if err != nil {
			return nil, fmt.Errorf("read event %d (first): %w", i, err)
		}
		evB, err := b.Event(ctx, i)
		if err != nil {
			return nil, fmt.Errorf("read event %d (second): %w", i, err)
		}
		if err := c.compareEvent(i, evA, evB); err != nil {
			return nil, err
		}
	}
	return c.report, nil
}

func (c *Comparer) add(entry int, idx particle.Index, category, msg string) {
	r := c.report
	r.Mismatches++
	r.PerCategory[category]++

	limit := c.MaxDetails
	if limit <= 0 {
		limit = DefaultMaxDetails
	}
	if len(r.Details) < limit {
		r.Details = append(r.Details, Mismatch{Entry: entry, Index: idx, Category: category, Message: msg})
	} else {
		r.Truncated = true
	}
}

func (c *Comparer) compareEvent(entry int, a, b event.Event) error {
	numA, okA := a.Number()
	numB, okB := b.Number()
	if okA != okB || numA != numB {
		c.add(entry, particle.NoParent, CategoryEventInfo,
			fmt.Sprintf("number %s vs %s", optional(numA, okA), optional(numB, okB)))
	}

	pa, okA := a.Particles()
	pb, okB := b.Particles()
	if okA != okB {
		c.add(entry, particle.NoParent, CategoryCollection,
			fmt.Sprintf("collection present %t vs %t", okA, okB))
		return nil
	}
	if !okA {
		return nil
	}

	if len(pa) != len(pb) {
		c.add(entry, particle.NoParent, CategorySize, fmt.Sprintf("%d vs %d particles", len(pa), len(pb)))
	}
	for i := 0; i < min(len(pa), len(pb)); i++ {
		c.report.ValuesExamined++
		c.compareRecord(entry, particle.Index(i), pa[i], pb[i])
	}

	return c.compareGraphs(entry, pa, pb)
}

func (c *Comparer) compareRecord(entry int, idx particle.Index, a, b particle.Record) {
	if a.Type != b.Type {
		c.add(entry, idx, CategoryType, fmt.Sprintf("%d vs %d", a.Type, b.Type))
	}
	if a.Status != b.Status {
		c.add(entry, idx, CategoryStatus, fmt.Sprintf("%d vs %d", a.Status, b.Status))
	}
	if a.Charge != b.Charge {
		c.add(entry, idx, CategoryCharge, fmt.Sprintf("%d vs %d", a.Charge, b.Charge))
	}
	if a.P4 != b.P4 {
		c.add(entry, idx, CategoryP4, fmt.Sprintf("%+v vs %+v", a.P4, b.P4))
	}
	if !slices.Equal(a.Parents, b.Parents) {
		c.add(entry, idx, CategoryParents, fmt.Sprintf("%v vs %v", a.Parents, b.Parents))
	}
}

// compareGraphs builds both decay graphs. Equal canonical graph fingerprints
// mean identical structure; otherwise each node's child list is compared to
// locate the difference. Payload differences are already counted by
// compareRecord.
func (c *Comparer) compareGraphs(entry int, pa, pb particle.Collection) error {
	defer c.a.Clear()
	defer c.b.Clear()

	if err := c.a.Build(pa); err != nil {
		return fmt.Errorf("event %d (first): %w", entry, err)
	}
	if err := c.b.Build(pb); err != nil {
		return fmt.Errorf("event %d (second): %w", entry, err)
	}

	fa, err := canon.GraphFingerprint(c.a.Graph())
	if err != nil {
		return fmt.Errorf("event %d (first): %w", entry, err)
	}
	fb, err := canon.GraphFingerprint(c.b.Graph())
	if err != nil {
		return fmt.Errorf("event %d (second): %w", entry, err)
	}
	if fa == fb {
		c.report.IdenticalGraphs++
		return nil
	}

	nodesA, nodesB := c.a.Graph().Nodes(), c.b.Graph().Nodes()
	for i := 0; i < min(len(nodesA), len(nodesB)); i++ {
		ca, cb := childIDs(nodesA[i]), childIDs(nodesB[i])
		if !slices.Equal(ca, cb) {
			c.add(entry, particle.Index(i), CategoryDecayGraph, fmt.Sprintf("children %v vs %v", ca, cb))
		}
	}
	return nil
}

func childIDs(n *decay.Node) []particle.Index {
	ids := make([]particle.Index, len(n.Children()))
	for i, child := range n.Children() {
		ids[i] = child.ID()
	}
	return ids
}

func optional(n int64, ok bool) string {
	if !ok {
		return "absent"
	}
	return fmt.Sprint(n)
}
