package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// fromRecords builds a Table from a header and string rows, inferring a dtype per column.
func fromRecords(header []string, rows [][]string, opt Options) *Table {
	names := columnNames(header)
	na := opt.naSet()
	t := &Table{rows: len(rows), Columns: make([]*Column, len(names))}
	for j, name := range names {
		cells := make([]string, len(rows))
		valid := make([]bool, len(rows))
		for i, rec := range rows {
			if j >= len(rec) {
				continue
			}
			v := strings.TrimSpace(rec[j])
			if v == "" {
				continue
			}
			if _, ok := na[v]; ok {
				continue
			}
			cells[i] = v
			valid[i] = true
		}
		t.Columns[j] = inferColumn(name, cells, valid, opt)
	}
	return t
}

// columnNames fills blank headers and de-duplicates repeated ones ("a", "a.1", ...).
func columnNames(header []string) []string {
	out := make([]string, len(header))
	seen := map[string]int{}
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		}
		seen[name] = 0
		out[i] = name
	}
	return out
}

func inferColumn(name string, cells []string, valid []bool, opt Options) *Column {
	c := &Column{Name: name, Text: cells, Valid: valid}
	var present, ints, floats, bools, dates int
	nums := make([]float64, len(cells))
	for i, v := range cells {
		if !valid[i] {
			nums[i] = math.NaN()
			continue
		}
		present++
		if _, err := strconv.ParseInt(v, 10, 64); err == nil {
			ints++
		}
		if x, ok := parseNumeric(v); ok {
			floats++
			nums[i] = x
		}
		if isBoolToken(v) {
			bools++
		}
		if opt.ParseDates {
			if _, ok := parseTimeMaybe(v); ok {
				dates++
			}
		}
	}
	missing := present < len(cells)
	switch {
	case present == 0:
		// An all-missing column carries no type information; treat it as float64 of NaN.
		c.DType = DTypeFloat
		c.Num = nums
	case ints == present && !missing:
		c.DType = DTypeInt
		c.Num = nums
	case floats == present:
		c.DType = DTypeFloat
		c.Num = nums
	case bools == present && !missing:
		c.DType = DTypeBool
	case opt.ParseDates && dates == present:
		c.DType = DTypeDatetime
	default:
		c.DType = DTypeObject
	}
	return c
}

// parseNumeric accepts plain decimal and scientific notation, plus the inf/nan spellings ParseFloat knows.
func parseNumeric(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func isBoolToken(s string) bool {
	switch strings.ToLower(s) {
	case "true", "false":
		return true
	}
	return false
}

func parseTimeMaybe(s string) (time.Time, bool) {
	layouts := []string{
		time.RFC3339, "2006-01-02", "2006/01/02", "02/01/2006", "01/02/2006",
		"2006-01-02 15:04", "2006-01-02 15:04:05", "1/2/2006 15:04", "1/2/2006 15:04:05",
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
