package analysis

import (
	"fmt"
	"io"
	"sort"

	"github.com/KaramelBytes/databrief-cli/internal/dataset"
	"github.com/jedib0t/go-pretty/v6/table"
)

// CategoryShare is one distinct value with its count and share of the non-missing cells.
type CategoryShare struct {
	Value string
	Count int
	Share float64
}

// ColumnShares is the normalized value distribution of a categorical column.
type ColumnShares struct {
	Name    string
	NonNull int
	Values  []CategoryShare
}

// Imbalance computes value shares for every categorical column in column order.
func Imbalance(t *dataset.Table) []ColumnShares {
	var out []ColumnShares
	for _, c := range t.CategoricalColumns() {
		vals := c.Values()
		out = append(out, ColumnShares{Name: c.Name, NonNull: len(vals), Values: ValueCounts(vals)})
	}
	return out
}

// ValueCounts counts distinct values, most frequent first. Ties keep first-appearance order.
func ValueCounts(vals []string) []CategoryShare {
	idx := map[string]int{}
	var counts []CategoryShare
	for _, v := range vals {
		i, ok := idx[v]
		if !ok {
			i = len(counts)
			idx[v] = i
			counts = append(counts, CategoryShare{Value: v})
		}
		counts[i].Count++
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })
	for i := range counts {
		counts[i].Share = float64(counts[i].Count) / float64(len(vals))
	}
	return counts
}

// RenderImbalance prints each column's distribution. limit > 0 caps the values printed per column.
func RenderImbalance(w io.Writer, cols []ColumnShares, limit int) {
	for _, c := range cols {
		fmt.Fprintf(w, "\nColumn: %s\n", c.Name)
		if len(c.Values) == 0 {
			fmt.Fprintln(w, "(no values)")
			continue
		}
		shown := c.Values
		if limit > 0 && len(shown) > limit {
			shown = shown[:limit]
		}
		tw := newTable(w)
		tw.AppendHeader(table.Row{c.Name, "Proportion"})
		for _, v := range shown {
			tw.AppendRow(table.Row{v.Value, fmt.Sprintf("%.6f", v.Share)})
		}
		tw.Render()
		if hidden := len(c.Values) - len(shown); hidden > 0 {
			fmt.Fprintf(w, "... %d more distinct values not shown\n", hidden)
		}
	}
}
