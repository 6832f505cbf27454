package analysis

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/KaramelBytes/databrief-cli/internal/dataset"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// NoNumericCorrMessage is printed when a table has nothing to correlate.
const NoNumericCorrMessage = "No numeric columns available for correlation analysis."

// CorrMatrix holds a symmetric Pearson correlation matrix across numeric columns.
type CorrMatrix struct {
	Columns []string
	Values  *mat.SymDense
}

// PairCorr is a simple correlation pair summary.
type PairCorr struct {
	A, B string
	R    float64
}

// Correlate computes pairwise Pearson r over rows where both columns are present.
// It returns nil when the table has no numeric columns. Entries are NaN when fewer than
// two rows overlap or either side is constant over the overlap.
func Correlate(t *dataset.Table) *CorrMatrix {
	cols := t.NumericColumns()
	if len(cols) == 0 {
		return nil
	}
	n := len(cols)
	m := &CorrMatrix{Columns: make([]string, n), Values: mat.NewSymDense(n, nil)}
	for i, c := range cols {
		m.Columns[i] = c.Name
	}
	for a := 0; a < n; a++ {
		for b := a; b < n; b++ {
			m.Values.SetSym(a, b, pearson(cols[a], cols[b], a == b))
		}
	}
	return m
}

func pearson(x, y *dataset.Column, diagonal bool) float64 {
	var xs, ys []float64
	for i := range x.Num {
		if x.Valid[i] && y.Valid[i] {
			xs = append(xs, x.Num[i])
			ys = append(ys, y.Num[i])
		}
	}
	if len(xs) < 2 || stat.Variance(xs, nil) == 0 || stat.Variance(ys, nil) == 0 {
		return math.NaN()
	}
	if diagonal {
		return 1
	}
	r := stat.Correlation(xs, ys, nil)
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r
}

// Size returns the number of columns in the matrix.
func (m *CorrMatrix) Size() int { return len(m.Columns) }

// At returns r for columns i and j.
func (m *CorrMatrix) At(i, j int) float64 { return m.Values.At(i, j) }

// TopPairs lists distinct column pairs ordered by |r|, strongest first; NaN entries are skipped.
// limit <= 0 returns every pair.
func (m *CorrMatrix) TopPairs(limit int) []PairCorr {
	var pairs []PairCorr
	n := m.Size()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := m.At(i, j)
			if math.IsNaN(r) {
				continue
			}
			pairs = append(pairs, PairCorr{A: m.Columns[i], B: m.Columns[j], R: r})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return math.Abs(pairs[i].R) > math.Abs(pairs[j].R)
	})
	if limit > 0 && len(pairs) > limit {
		pairs = pairs[:limit]
	}
	return pairs
}

// RenderPairs prints the strongest pairs below the heatmap.
func (m *CorrMatrix) RenderPairs(w io.Writer, limit int) {
	pairs := m.TopPairs(limit)
	if len(pairs) == 0 {
		return
	}
	fmt.Fprintln(w, "\nStrongest correlations:")
	for _, p := range pairs {
		fmt.Fprintf(w, "- %s ~ %s: r=%.3f\n", p.A, p.B, p.R)
	}
}

// Label returns the column name for row/column i.
func (m *CorrMatrix) Label(i int) string { return m.Columns[i] }
