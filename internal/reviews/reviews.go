// Package reviews parses the exported book review table shown under the
// GoodReads dashboard.
package reviews

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Row is one record keyed by column header.
type Row map[string]string

// Parse reads a header row followed by records. Short records are padded
// with empty values; surrounding whitespace is trimmed from every cell.
func Parse(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read review header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read review row %d: %w", len(rows)+1, err)
		}
		row := make(Row, len(header))
		for i, h := range header {
			if i < len(rec) {
				row[h] = strings.TrimSpace(rec[i])
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Summary describes a numeric column.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64
}

// Summarize computes statistics over the numeric, non-zero values of field.
// A zero rating means "not rated" in the export and is left out.
func Summarize(rows []Row, field string) Summary {
	values := make([]float64, 0, len(rows))
	for _, r := range rows {
		v, err := strconv.ParseFloat(r[field], 64)
		if err != nil || v == 0 {
			continue
		}
		values = append(values, v)
	}

	s := Summary{Count: len(values)}
	switch len(values) {
	case 0:
	case 1:
		s.Mean = values[0]
	default:
		s.Mean, s.StdDev = stat.MeanStdDev(values, nil)
	}
	return s
}
