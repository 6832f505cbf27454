package dataset

// DType classifies the values held by a column.
type DType string

const (
	DTypeInt      DType = "int64"
	DTypeFloat    DType = "float64"
	DTypeBool     DType = "bool"
	DTypeDatetime DType = "datetime64"
	DTypeObject   DType = "object"
)

// IsNumeric reports whether the dtype takes part in statistics and correlations.
func (d DType) IsNumeric() bool { return d == DTypeInt || d == DTypeFloat }

// IsCategorical reports whether the dtype is treated as text/categorical.
func (d DType) IsCategorical() bool { return d == DTypeObject }

// Column is a named, typed column. All slices have one entry per row.
type Column struct {
	Name  string
	DType DType
	// Text is the display form of every cell; empty for missing cells.
	Text []string
	// Num holds parsed values for numeric dtypes; nil otherwise.
	Num []float64
	// Valid is false for missing cells.
	Valid []bool
}

// Missing returns the number of missing cells.
func (c *Column) Missing() int {
	n := 0
	for _, ok := range c.Valid {
		if !ok {
			n++
		}
	}
	return n
}

// Numbers returns the non-missing numeric values in row order.
func (c *Column) Numbers() []float64 {
	if c.Num == nil {
		return nil
	}
	out := make([]float64, 0, len(c.Num))
	for i, v := range c.Num {
		if c.Valid[i] {
			out = append(out, v)
		}
	}
	return out
}

// Values returns the non-missing display values in row order.
func (c *Column) Values() []string {
	out := make([]string, 0, len(c.Text))
	for i, v := range c.Text {
		if c.Valid[i] {
			out = append(out, v)
		}
	}
	return out
}

// Table is an in-memory rectangular dataset. It is not modified after Load returns.
type Table struct {
	Name      string
	Path      string
	Format    Format
	SizeBytes int64
	Columns   []*Column
	rows      int
}

// NumRows returns the number of data rows (header excluded).
func (t *Table) NumRows() int { return t.rows }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.Columns) }

// Column looks up a column by exact name.
func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// NumericColumns returns the int64/float64 columns in column order.
func (t *Table) NumericColumns() []*Column {
	var out []*Column
	for _, c := range t.Columns {
		if c.DType.IsNumeric() {
			out = append(out, c)
		}
	}
	return out
}

// CategoricalColumns returns the object columns in column order.
func (t *Table) CategoricalColumns() []*Column {
	var out []*Column
	for _, c := range t.Columns {
		if c.DType.IsCategorical() {
			out = append(out, c)
		}
	}
	return out
}
