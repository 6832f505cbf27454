package analysis

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/KaramelBytes/databrief-cli/internal/dataset"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
)

// NoNumericStatsMessage is printed instead of an empty statistics table.
const NoNumericStatsMessage = "No numeric columns available for descriptive statistics."

// NumericSummary holds the descriptive statistics of one numeric column.
// All fields except Count are NaN when the column has no values; Std is NaN below two values.
type NumericSummary struct {
	Name  string
	Count int
	Mean  float64
	Std   float64
	Min   float64
	Q25   float64
	Q50   float64
	Q75   float64
	Max   float64
}

// Stats is the descriptive statistics table for a dataset's numeric columns.
type Stats struct {
	Cols []NumericSummary
}

// Describe computes count, mean, sample std, min, quartiles and max per numeric column.
func Describe(t *dataset.Table) (*Stats, error) {
	s := &Stats{}
	for _, c := range t.NumericColumns() {
		sum, err := summarize(c.Name, c.Numbers())
		if err != nil {
			return nil, fmt.Errorf("describe %s: %w", c.Name, err)
		}
		s.Cols = append(s.Cols, sum)
	}
	return s, nil
}

func summarize(name string, vals []float64) (NumericSummary, error) {
	nan := math.NaN()
	s := NumericSummary{Name: name, Count: len(vals), Mean: nan, Std: nan, Min: nan, Q25: nan, Q50: nan, Q75: nan, Max: nan}
	if len(vals) == 0 {
		return s, nil
	}
	data := stats.Float64Data(vals)
	var err error
	if s.Mean, err = stats.Mean(data); err != nil {
		return s, err
	}
	if len(vals) > 1 {
		if s.Std, err = stats.StandardDeviationSample(data); err != nil {
			return s, err
		}
	}
	if s.Min, err = stats.Min(data); err != nil {
		return s, err
	}
	if s.Max, err = stats.Max(data); err != nil {
		return s, err
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	s.Q25 = quantile(sorted, 0.25)
	s.Q50 = quantile(sorted, 0.5)
	s.Q75 = quantile(sorted, 0.75)
	return s, nil
}

// Render prints the statistics with one row per statistic and one column per dataset column.
func (s *Stats) Render(w io.Writer) {
	fmt.Fprintln(w, "\nNumerical Column Statistics:")
	if len(s.Cols) == 0 {
		fmt.Fprintln(w, NoNumericStatsMessage)
		return
	}
	tw := newTable(w)
	header := table.Row{""}
	for _, c := range s.Cols {
		header = append(header, c.Name)
	}
	tw.AppendHeader(header)
	rows := []struct {
		label string
		get   func(NumericSummary) string
	}{
		{"count", func(c NumericSummary) string { return fmtStat(float64(c.Count)) }},
		{"mean", func(c NumericSummary) string { return fmtStat(c.Mean) }},
		{"std", func(c NumericSummary) string { return fmtStat(c.Std) }},
		{"min", func(c NumericSummary) string { return fmtStat(c.Min) }},
		{"25%", func(c NumericSummary) string { return fmtStat(c.Q25) }},
		{"50%", func(c NumericSummary) string { return fmtStat(c.Q50) }},
		{"75%", func(c NumericSummary) string { return fmtStat(c.Q75) }},
		{"max", func(c NumericSummary) string { return fmtStat(c.Max) }},
	}
	for _, r := range rows {
		row := table.Row{r.label}
		for _, c := range s.Cols {
			row = append(row, r.get(c))
		}
		tw.AppendRow(row)
	}
	tw.Render()
}

// quantile interpolates linearly between closest ranks of an ascending slice.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
