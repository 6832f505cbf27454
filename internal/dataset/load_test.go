package dataset

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeWorkbook(t *testing.T, name string, sheets map[string][][]any, order []string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, sheet := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", sheet))
		} else {
			_, err := f.NewSheet(sheet)
			require.NoError(t, err)
		}
		for r, row := range sheets[sheet] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(sheet, cell, &row))
		}
	}
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path string
		want Format
		err  bool
	}{
		{"data.csv", FormatCSV, false},
		{"book.xlsx", FormatExcel, false},
		{"legacy.xls", FormatExcel, false},
		{"records.json", FormatJSON, false},
		{"dir.d/records.json", FormatJSON, false},
		{"data.txt", FormatUnknown, true},
		{"DATA.CSV", FormatUnknown, true},
		{"data.csv.bak", FormatUnknown, true},
		{"", FormatUnknown, true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if tt.err {
				require.ErrorIs(t, err, ErrUnsupportedFormat)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadUnsupportedFormatReturnsNoTable(t *testing.T) {
	path := writeFile(t, "data.txt", "age,city\n1,x\n")
	tbl, err := Load(path, DefaultOptions())
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Nil(t, tbl)
	assert.Equal(t, "unsupported file format: please provide a CSV, Excel, or JSON file", err.Error())
}

func TestLoadCSVInfersTypesAndMissing(t *testing.T) {
	path := writeFile(t, "data.csv", "age,city,score,flag,note\n30,Paris,1.5,true,a\n,Rome,2,False,NA\n41,Paris,3e1,TRUE,c\n")
	tbl, err := Load(path, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "data.csv", tbl.Name)
	assert.Equal(t, FormatCSV, tbl.Format)
	assert.Positive(t, tbl.SizeBytes)
	require.Equal(t, 3, tbl.NumRows())
	require.Equal(t, 5, tbl.NumCols())

	age, ok := tbl.Column("age")
	require.True(t, ok)
	assert.Equal(t, DTypeFloat, age.DType, "integer column with a gap widens to float64")
	assert.Equal(t, 1, age.Missing())
	assert.Equal(t, []float64{30, 41}, age.Numbers())
	assert.True(t, math.IsNaN(age.Num[1]))

	city, _ := tbl.Column("city")
	assert.Equal(t, DTypeObject, city.DType)
	assert.Equal(t, []string{"Paris", "Rome", "Paris"}, city.Values())

	score, _ := tbl.Column("score")
	assert.Equal(t, DTypeFloat, score.DType)
	assert.Equal(t, []float64{1.5, 2, 30}, score.Numbers())

	flag, _ := tbl.Column("flag")
	assert.Equal(t, DTypeBool, flag.DType)

	note, _ := tbl.Column("note")
	assert.Equal(t, DTypeObject, note.DType)
	assert.Equal(t, 1, note.Missing())

	assert.Len(t, tbl.NumericColumns(), 2)
	assert.Len(t, tbl.CategoricalColumns(), 2)
}

func TestLoadCSVIntegerColumn(t *testing.T) {
	path := writeFile(t, "ints.csv", "x;y\n1;a\n2;b\n")
	opt := DefaultOptions()
	opt.Delimiter = ';'
	tbl, err := Load(path, opt)
	require.NoError(t, err)
	x, _ := tbl.Column("x")
	assert.Equal(t, DTypeInt, x.DType)
}

func TestLoadCSVHeaderNames(t *testing.T) {
	path := writeFile(t, "dup.csv", "a,a,,a\n1,2,3,4\n")
	tbl, err := Load(path, DefaultOptions())
	require.NoError(t, err)
	var names []string
	for _, c := range tbl.Columns {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"a", "a.1", "Unnamed: 2", "a.2"}, names)
}

func TestLoadCSVShortAndLongRows(t *testing.T) {
	path := writeFile(t, "short.csv", "a,b,c\n1,2\n3,4,5\n")
	tbl, err := Load(path, DefaultOptions())
	require.NoError(t, err)
	c, _ := tbl.Column("c")
	assert.Equal(t, 1, c.Missing())

	path = writeFile(t, "long.csv", "a,b\n1,2,3\n")
	_, err = Load(path, DefaultOptions())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadCSVErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"), DefaultOptions())
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "empty.csv", ""), DefaultOptions())
	require.Error(t, err)
}

func TestLoadCSVCustomNAValuesAndDates(t *testing.T) {
	path := writeFile(t, "dates.csv", "when,v\n2024-01-02,-\n2024-02-03,7\n")
	opt := DefaultOptions()
	opt.NAValues = []string{"-"}
	opt.ParseDates = true
	tbl, err := Load(path, opt)
	require.NoError(t, err)

	when, _ := tbl.Column("when")
	assert.Equal(t, DTypeDatetime, when.DType)
	v, _ := tbl.Column("v")
	assert.Equal(t, DTypeFloat, v.DType)
	assert.Equal(t, 1, v.Missing())
}

func TestLoadAllMissingColumnIsFloat(t *testing.T) {
	path := writeFile(t, "blank.csv", "a,b\n1,\n2,\n")
	tbl, err := Load(path, DefaultOptions())
	require.NoError(t, err)
	b, _ := tbl.Column("b")
	assert.Equal(t, DTypeFloat, b.DType)
	assert.Empty(t, b.Numbers())
}

func TestLoadJSONRecords(t *testing.T) {
	path := writeFile(t, "data.json", `[{"x":1,"name":"a"},{"x":2,"extra":true},{"x":3,"name":null}]`)
	tbl, err := Load(path, DefaultOptions())
	require.NoError(t, err)

	require.Equal(t, 3, tbl.NumRows())
	require.Equal(t, 3, tbl.NumCols())
	assert.Equal(t, "x", tbl.Columns[0].Name)
	assert.Equal(t, "name", tbl.Columns[1].Name)
	assert.Equal(t, "extra", tbl.Columns[2].Name)

	x := tbl.Columns[0]
	assert.Equal(t, DTypeInt, x.DType)
	assert.Equal(t, []float64{1, 2, 3}, x.Numbers())

	name := tbl.Columns[1]
	assert.Equal(t, DTypeObject, name.DType)
	assert.Equal(t, 2, name.Missing())

	extra := tbl.Columns[2]
	assert.Equal(t, DTypeObject, extra.DType, "booleans with gaps are object")
	assert.Equal(t, []string{"True"}, extra.Values())
}

func TestLoadJSONMixedAndFloat(t *testing.T) {
	path := writeFile(t, "mixed.json", `[{"a":1,"b":1.5},{"a":"two","b":null},{"a":{"k":1},"b":3}]`)
	tbl, err := Load(path, DefaultOptions())
	require.NoError(t, err)
	a, _ := tbl.Column("a")
	assert.Equal(t, DTypeObject, a.DType)
	assert.Equal(t, []string{"1", "two", `{"k":1}`}, a.Values())
	b, _ := tbl.Column("b")
	assert.Equal(t, DTypeFloat, b.DType)
	assert.Equal(t, []float64{1.5, 3}, b.Numbers())
}

func TestLoadJSONOtherShapes(t *testing.T) {
	tbl, err := Load(writeFile(t, "scalars.json", `[4, 5, 6]`), DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, 1, tbl.NumCols())
	assert.Equal(t, "0", tbl.Columns[0].Name)

	tbl, err = Load(writeFile(t, "cols.json", `{"a":[1,2],"b":["x","y"]}`), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, 2, tbl.NumCols())

	_, err = Load(writeFile(t, "ragged.json", `{"a":[1,2],"b":["x"]}`), DefaultOptions())
	require.Error(t, err)

	_, err = Load(writeFile(t, "scalar.json", `{"a":1}`), DefaultOptions())
	require.ErrorIs(t, err, errJSONShape)

	_, err = Load(writeFile(t, "bad.json", `[{"a":1},`), DefaultOptions())
	require.Error(t, err)
}

func TestLoadExcelFirstAndNamedSheet(t *testing.T) {
	path := writeWorkbook(t, "book.xlsx", map[string][][]any{
		"Data":  {{"age", "city"}, {30, "Paris"}, {nil, "Rome"}, {41, "Paris"}},
		"Other": {{"k"}, {"v"}},
	}, []string{"Data", "Other"})

	tbl, err := Load(path, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, FormatExcel, tbl.Format)
	require.Equal(t, 3, tbl.NumRows())
	require.Equal(t, 2, tbl.NumCols())
	age, _ := tbl.Column("age")
	assert.Equal(t, DTypeFloat, age.DType)
	assert.Equal(t, 1, age.Missing())

	opt := DefaultOptions()
	opt.Sheet = "other"
	tbl, err = Load(path, opt)
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.NumRows())
	assert.Equal(t, "k", tbl.Columns[0].Name)

	opt.Sheet = "Nope"
	_, err = Load(path, opt)
	require.ErrorContains(t, err, "Available sheets: Data, Other")
}

func TestLoadExcelCorruptFile(t *testing.T) {
	path := writeFile(t, "broken.xlsx", "not a zip")
	_, err := Load(path, DefaultOptions())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadExcelBoolCells(t *testing.T) {
	path := writeWorkbook(t, "flags.xlsx", map[string][][]any{
		"Data": {{"flag", "n"}, {true, 1}, {false, 0}, {true, 1}},
	}, []string{"Data"})

	tbl, err := Load(path, DefaultOptions())
	require.NoError(t, err)
	flag, ok := tbl.Column("flag")
	require.True(t, ok)
	assert.Equal(t, DTypeBool, flag.DType)
	assert.Equal(t, []string{"True", "False", "True"}, flag.Text)
	assert.Nil(t, flag.Numbers())

	n, _ := tbl.Column("n")
	assert.Equal(t, DTypeInt, n.DType, "numeric 0/1 cells stay numbers")
	require.Len(t, tbl.NumericColumns(), 1)
}

func TestLoadExcelCellsBeyondHeader(t *testing.T) {
	path := writeWorkbook(t, "wide.xlsx", map[string][][]any{
		"Data": {{"a"}, {1, "x"}, {2, "y"}},
	}, []string{"Data"})

	tbl, err := Load(path, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, 2, tbl.NumCols())
	assert.Equal(t, "Unnamed: 1", tbl.Columns[1].Name)
	assert.Equal(t, []string{"x", "y"}, tbl.Columns[1].Values())
}

func TestLoadCSVStripsByteOrderMark(t *testing.T) {
	path := writeFile(t, "bom.csv", "\ufeffage,city\r\n30,Paris\r\n,Rome\r\n")
	tbl, err := Load(path, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "age", tbl.Columns[0].Name)
	age, ok := tbl.Column("age")
	require.True(t, ok)
	assert.Equal(t, 1, age.Missing())
}
