package chains

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// TextSink prints verbose reports as they arrive.
type TextSink struct {
	W io.Writer
}

// Report implements Sink. It returns the first write error.
func (s *TextSink) Report(r EventReport, verbose bool) error {
	if !verbose {
		return nil
	}
	w := bufio.NewWriter(s.W)

	if r.Number != nil {
		fmt.Fprintf(w, "event number %d\n", *r.Number)
	} else {
		fmt.Fprintf(w, "event entry %d\n", r.Entry)
	}
	if !r.HasParticles {
		fmt.Fprintln(w, "no particle collection")
		return w.Flush()
	}

	fmt.Fprintln(w, "particle collection:")
	for i, p := range r.Particles {
		fmt.Fprintf(w, "\t[%d] %s\n", i, p)
	}
	for _, c := range r.Chains {
		fmt.Fprintf(w, "[%d] %s\n", c.Index, c.Record)
		fmt.Fprintf(w, "\tdirect decay products: %d\n", c.DirectProducts)
		fmt.Fprintln(w, "\tdecay products:")
		for _, p := range c.Products {
			fmt.Fprintf(w, "\t%s[%d] %s\n", strings.Repeat("  ", p.Depth-1), p.Index, p.Record)
		}
	}
	return w.Flush()
}

// CollectSink keeps verbose reports in memory.
type CollectSink struct {
	Reports []EventReport
}

// Report implements Sink.
func (s *CollectSink) Report(r EventReport, verbose bool) error {
	if verbose {
		s.Reports = append(s.Reports, r)
	}
	return nil
}
