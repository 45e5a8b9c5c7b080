package format

import (
	"encoding/csv"
	"errors"
	"io"
	"sort"

	"github.com/gocarina/gocsv"
)

// CSV encodes structs as CSV with a header row, using `csv` struct tags.
// The zero value uses ',' as delimiter.
type CSV[T any] struct {
	Comma rune
}

func (CSV[T]) Name() string { return "csv" }

func (f CSV[T]) comma() rune {
	if f.Comma == 0 {
		return ','
	}
	return f.Comma
}

// Encode writes the header followed by one line per item.
func (f CSV[T]) Encode(w io.Writer, items []T) error {
	cw := csv.NewWriter(w)
	cw.Comma = f.comma()
	if items == nil {
		items = []T{}
	}
	return gocsv.MarshalCSV(items, gocsv.NewSafeCSVWriter(cw))
}

// Decode maps columns to fields by header name. A payload without any
// line decodes to an empty slice.
func (f CSV[T]) Decode(r io.Reader) ([]T, error) {
	cr := csv.NewReader(r)
	cr.Comma = f.comma()

	var out []T
	if err := gocsv.UnmarshalCSV(cr, &out); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return []T{}, nil
		}
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// CSVMap is a schema-less CSV format over header-keyed rows.
// The zero value uses ',' as delimiter.
type CSVMap struct {
	Comma rune
}

func (CSVMap) Name() string { return "csv" }

// Encode writes the sorted union of all keys as header.
func (f CSVMap) Encode(w io.Writer, items []map[string]string) error {
	seen := make(map[string]struct{})
	var header []string
	for _, item := range items {
		for k := range item {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				header = append(header, k)
			}
		}
	}
	sort.Strings(header)

	cw := csv.NewWriter(w)
	if f.Comma != 0 {
		cw.Comma = f.Comma
	}
	sw := gocsv.NewSafeCSVWriter(cw)
	if err := sw.Write(header); err != nil {
		return err
	}
	row := make([]string, len(header))
	for _, item := range items {
		for i, k := range header {
			row[i] = item[k]
		}
		if err := sw.Write(row); err != nil {
			return err
		}
	}
	sw.Flush()
	return sw.Error()
}

// Decode returns one map per data row, keyed by the header.
func (f CSVMap) Decode(r io.Reader) ([]map[string]string, error) {
	if f.Comma == 0 || f.Comma == ',' {
		return gocsv.CSVToMaps(r)
	}

	cr := csv.NewReader(r)
	cr.Comma = f.Comma
	lines, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, nil
	}

	header := lines[0]
	out := make([]map[string]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		row := make(map[string]string, len(header))
		for i, k := range header {
			if i < len(line) {
				row[k] = line[i]
			}
		}
		out = append(out, row)
	}
	return out, nil
}
