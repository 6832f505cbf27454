package dataset

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/tidwall/gjson"
)

var errJSONShape = errors.New("expected an array of records or an object of columns")

// parseJSON reads an array of flat records, an array of scalars, or an object of column arrays.
func parseJSON(path string, _ Options) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read json: %w", err)
	}
	return readJSON(b)
}

func readJSON(b []byte) (*Table, error) {
	if !gjson.ValidBytes(b) {
		return nil, fmt.Errorf("parse json: invalid document")
	}
	doc := gjson.ParseBytes(b)
	switch {
	case doc.IsArray():
		return jsonRecords(doc.Array()), nil
	case doc.IsObject():
		return jsonColumns(doc)
	default:
		return nil, fmt.Errorf("parse json: %w", errJSONShape)
	}
}

// jsonRecords lays out records by key order of first appearance; absent keys are missing cells.
func jsonRecords(items []gjson.Result) *Table {
	var order []string
	index := map[string]int{}
	cells := map[string][]gjson.Result{}
	add := func(key string, row int, v gjson.Result) {
		if _, ok := index[key]; !ok {
			index[key] = len(order)
			order = append(order, key)
			cells[key] = make([]gjson.Result, len(items))
		}
		cells[key][row] = v
	}
	for i, item := range items {
		if !item.IsObject() {
			add("0", i, item)
			continue
		}
		item.ForEach(func(k, v gjson.Result) bool {
			add(k.String(), i, v)
			return true
		})
	}
	t := &Table{rows: len(items)}
	for _, key := range order {
		t.Columns = append(t.Columns, jsonColumn(key, cells[key]))
	}
	return t
}

func jsonColumns(doc gjson.Result) (*Table, error) {
	t := &Table{rows: -1}
	var err error
	doc.ForEach(func(k, v gjson.Result) bool {
		if !v.IsArray() {
			err = fmt.Errorf("parse json: column %q: %w", k.String(), errJSONShape)
			return false
		}
		vals := v.Array()
		if t.rows >= 0 && len(vals) != t.rows {
			err = fmt.Errorf("parse json: column %q has %d values, expected %d", k.String(), len(vals), t.rows)
			return false
		}
		t.rows = len(vals)
		t.Columns = append(t.Columns, jsonColumn(k.String(), vals))
		return true
	})
	if err != nil {
		return nil, err
	}
	if t.rows < 0 {
		t.rows = 0
	}
	return t, nil
}

// jsonColumn converts typed JSON values. A zero gjson.Result (absent key) counts as missing.
func jsonColumn(name string, vals []gjson.Result) *Column {
	c := &Column{Name: name, Text: make([]string, len(vals)), Valid: make([]bool, len(vals))}
	nums := make([]float64, len(vals))
	var present, numbers, ints, bools int
	for i, v := range vals {
		nums[i] = math.NaN()
		if !v.Exists() || v.Type == gjson.Null {
			continue
		}
		present++
		c.Valid[i] = true
		switch v.Type {
		case gjson.Number:
			numbers++
			nums[i] = v.Num
			c.Text[i] = v.Raw
			if !strings.ContainsAny(v.Raw, ".eE") {
				ints++
			}
		case gjson.True, gjson.False:
			bools++
			if v.Bool() {
				c.Text[i] = "True"
			} else {
				c.Text[i] = "False"
			}
		case gjson.String:
			c.Text[i] = v.Str
		default:
			c.Text[i] = v.Raw
		}
	}
	missing := present < len(vals)
	switch {
	case present > 0 && numbers == present:
		c.Num = nums
		c.DType = DTypeFloat
		if ints == present && !missing {
			c.DType = DTypeInt
		}
	case present > 0 && bools == present && !missing:
		c.DType = DTypeBool
	default:
		c.DType = DTypeObject
	}
	return c
}
