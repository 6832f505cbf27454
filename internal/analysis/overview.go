package analysis

import (
	"fmt"
	"io"
	"math"

	"github.com/KaramelBytes/databrief-cli/internal/dataset"
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Overview is the shape, dtype, and missingness summary of a table.
type Overview struct {
	Name      string
	SizeBytes int64
	Rows      int
	Cols      []ColumnOverview
}

// ColumnOverview describes one column's dtype and missing cells.
type ColumnOverview struct {
	Name    string
	DType   dataset.DType
	Missing int
	// MissingPct is Missing/Rows*100; NaN when the table has no rows.
	MissingPct float64
}

// NewOverview summarizes t in column order.
func NewOverview(t *dataset.Table) *Overview {
	o := &Overview{Name: t.Name, SizeBytes: t.SizeBytes, Rows: t.NumRows()}
	for _, c := range t.Columns {
		miss := c.Missing()
		pct := math.NaN()
		if o.Rows > 0 {
			pct = float64(miss) / float64(o.Rows) * 100
		}
		o.Cols = append(o.Cols, ColumnOverview{Name: c.Name, DType: c.DType, Missing: miss, MissingPct: pct})
	}
	return o
}

// Render prints the overview section.
func (o *Overview) Render(w io.Writer) {
	p := message.NewPrinter(language.English)
	p.Fprintln(w, "Data Overview:")
	if o.Name != "" {
		fmt.Fprintf(w, "File: %s (%s)\n", o.Name, humanize.Bytes(uint64(o.SizeBytes)))
	}
	p.Fprintf(w, "Number of rows: %d\n", o.Rows)
	p.Fprintf(w, "Number of columns: %d\n", len(o.Cols))

	fmt.Fprintln(w, "\nData Types:")
	types := newTable(w)
	types.AppendHeader(table.Row{"Column", "DType"})
	for _, c := range o.Cols {
		types.AppendRow(table.Row{c.Name, string(c.DType)})
	}
	types.Render()

	fmt.Fprintln(w, "\nMissing Values:")
	miss := newTable(w)
	miss.AppendHeader(table.Row{"Column", "Missing", "Missing %"})
	for _, c := range o.Cols {
		miss.AppendRow(table.Row{c.Name, c.Missing, fmtPct(c.MissingPct)})
	}
	miss.Render()
}
