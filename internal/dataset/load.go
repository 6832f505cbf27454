package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned by Load and DetectFormat for unrecognized file suffixes.
var ErrUnsupportedFormat = errors.New("unsupported file format: please provide a CSV, Excel, or JSON file")

// Format identifies the parser used for a file.
type Format int

const (
	FormatUnknown Format = iota
	FormatCSV
	FormatExcel
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatExcel:
		return "excel"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// Options controls how files are parsed into a Table.
type Options struct {
	// Delimiter for CSV. If 0, ',' is used.
	Delimiter rune
	// Sheet selects a workbook sheet by name; empty means the first sheet.
	Sheet string
	// NAValues are cell tokens treated as missing in CSV and spreadsheet input.
	// Nil means DefaultNAValues.
	NAValues []string
	// ParseDates enables the datetime64 dtype for text columns where every value is a date.
	ParseDates bool
}

// DefaultNAValues mirrors the usual spreadsheet/dataframe null markers.
var DefaultNAValues = []string{
	"NA", "N/A", "n/a", "NaN", "nan", "-NaN", "-nan",
	"null", "NULL", "None", "#N/A", "<NA>",
}

// DefaultOptions returns comma-delimited, first-sheet parsing with the default NA set.
func DefaultOptions() Options {
	return Options{Delimiter: ','}
}

type parseFunc func(path string, opt Options) (*Table, error)

var parsers = map[Format]parseFunc{
	FormatCSV:   parseCSV,
	FormatExcel: parseExcel,
	FormatJSON:  parseJSON,
}

var suffixes = []struct {
	suffix string
	format Format
}{
	{".csv", FormatCSV},
	{".xlsx", FormatExcel},
	{".xls", FormatExcel},
	{".json", FormatJSON},
}

// DetectFormat resolves the file format from its suffix. Matching is case-sensitive.
func DetectFormat(path string) (Format, error) {
	for _, s := range suffixes {
		if strings.HasSuffix(path, s.suffix) {
			return s.format, nil
		}
	}
	return FormatUnknown, ErrUnsupportedFormat
}

// Load parses the file at path into a Table using the parser for its format.
func Load(path string, opt Options) (*Table, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	t, err := parsers[format](path, opt)
	if err != nil {
		return nil, err
	}
	t.Name = filepath.Base(path)
	t.Path = path
	t.Format = format
	if fi, err := os.Stat(path); err == nil {
		t.SizeBytes = fi.Size()
	}
	return t, nil
}

func (o Options) naSet() map[string]struct{} {
	vals := o.NAValues
	if vals == nil {
		vals = DefaultNAValues
	}
	set := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		set[v] = struct{}{}
	}
	return set
}
