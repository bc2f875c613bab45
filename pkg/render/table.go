// Package render formats observables as human-readable text, for log
// output and interactive inspection.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/awgn/contatori/pkg/counter"
)

// Table renders expanded counter entries as an aligned ASCII table with
// Name, Labels, Value and Kind columns.
type Table struct {
	title  string
	header bool
}

// TableOption customizes a Table.
type TableOption func(*Table)

// WithTitle prints a title line above the table.
func WithTitle(title string) TableOption {
	return func(t *Table) { t.title = title }
}

// WithoutHeader suppresses the column header row.
func WithoutHeader() TableOption {
	return func(t *Table) { t.header = false }
}

// NewTable returns a Table with the header enabled and no title.
func NewTable(opts ...TableOption) *Table {
	t := &Table{header: true}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Render writes one row per expanded entry of each source, in source
// order. Sources may be plain counters, adapters or groups.
func (t *Table) Render(w io.Writer, sources ...counter.Expander) error {
	if t.title != "" {
		if _, err := fmt.Fprintln(w, t.title); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if t.header {
		if _, err := fmt.Fprintln(tw, "NAME\tLABELS\tVALUE\tKIND"); err != nil {
			return err
		}
	}
	for _, src := range sources {
		for _, e := range src.Expand() {
			name := e.Observable.Name()
			if name == "" {
				name = "-"
			}
			_, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				name, formatLabels(e.Labels), e.Observable.Value(), e.Observable.Kind())
			if err != nil {
				return err
			}
		}
	}
	return tw.Flush()
}

func formatLabels(labels []counter.Label) string {
	if len(labels) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		parts = append(parts, l.Key+"="+l.Value)
	}
	return strings.Join(parts, ",")
}
