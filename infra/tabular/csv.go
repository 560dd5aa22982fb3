package tabular

import (
	"encoding/csv"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/kilianp07/confsched/core/assemble"
)

// ReadCSV parses comma-separated text. A UTF-8 or UTF-16 byte order mark is
// honoured and stripped; input without one is read as UTF-8.
func ReadCSV(r io.Reader) (assemble.Table, error) {
	dec := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	cr := csv.NewReader(dec)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return assemble.Table{}, err
	}
	if len(records) == 0 {
		return assemble.Table{}, nil
	}
	return assemble.Table{Header: records[0], Rows: records[1:]}, nil
}

// WriteCSV writes t as UTF-8 comma-separated text with a header line.
func WriteCSV(w io.Writer, t assemble.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}
