package dataset

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// parseExcel reads the selected sheet (first sheet by default) of a workbook.
// Cells are read raw so number formats do not leak into the parsed values.
func parseExcel(path string, opt Options) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook '%s' has no sheets", filepath.Base(path))
	}
	sheet := sheets[0]
	if opt.Sheet != "" {
		sheet = ""
		for _, s := range sheets {
			if strings.EqualFold(s, opt.Sheet) {
				sheet = s
				break
			}
		}
		if sheet == "" {
			return nil, fmt.Errorf("sheet '%s' not found in workbook '%s'.\nAvailable sheets: %s",
				opt.Sheet, filepath.Base(path), strings.Join(sheets, ", "))
		}
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read sheet %s: no columns to parse", sheet)
	}
	if err := markBoolCells(f, sheet, rows); err != nil {
		return nil, err
	}
	return fromRecords(padHeader(rows[0], rows[1:]), rows[1:], opt), nil
}

// markBoolCells rewrites raw boolean cells ("1"/"0") to True/False so they infer as bool.
// rows[i] is sheet row i+1.
func markBoolCells(f *excelize.File, sheet string, rows [][]string) error {
	for i := 1; i < len(rows); i++ {
		for j, v := range rows[i] {
			if v != "0" && v != "1" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			typ, err := f.GetCellType(sheet, cell)
			if err != nil {
				return fmt.Errorf("read cell %s: %w", cell, err)
			}
			if typ == excelize.CellTypeBool {
				if v == "1" {
					rows[i][j] = "True"
				} else {
					rows[i][j] = "False"
				}
			}
		}
	}
	return nil
}

// padHeader widens a header that excelize trimmed so cells under blank trailing
// header cells still get (unnamed) columns.
func padHeader(header []string, rows [][]string) []string {
	width := len(header)
	for _, r := range rows {
		width = max(width, len(r))
	}
	if width == len(header) {
		return header
	}
	out := make([]string, width)
	copy(out, header)
	return out
}
