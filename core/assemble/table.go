// Package assemble converts between the tabular submissions file and the
// scheduler's records, and merges assignments back into the published table.
package assemble

import (
	"fmt"
	"strings"

	"github.com/kilianp07/confsched/core/model"
)

// Table is a header plus rows of cells. Rows may be ragged.
type Table struct {
	Header []string
	Rows   [][]string
}

// MissingColumnsError lists required columns absent from the input header.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing columns in input: %s", strings.Join(e.Columns, ", "))
}

// Index returns the position of the first column named name, or -1.
func (t Table) Index(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns row[col], or "" when the row is short or col is negative.
func Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// Validate checks that every column required by s is present. Names are
// matched exactly.
func Validate(t Table, s model.Schema) error {
	var missing []string
	for _, c := range s.Required() {
		if t.Index(c) < 0 {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Columns: missing}
	}
	return nil
}

type columns struct {
	theme, title, presenters, mentor int
}

func resolve(t Table, s model.Schema) columns {
	return columns{
		theme:      t.Index(s.Theme),
		title:      t.Index(s.Title),
		presenters: t.Index(s.Presenters),
		mentor:     t.Index(s.FacultyMentor),
	}
}

func (c columns) blank(row []string) bool {
	for _, i := range []int{c.theme, c.title, c.presenters, c.mentor} {
		if strings.TrimSpace(Cell(row, i)) != "" {
			return false
		}
	}
	return true
}

// Extract validates t and returns one presentation per non-blank row. Row
// is the index into t.Rows; cell values are trimmed.
func Extract(t Table, s model.Schema) ([]model.Presentation, error) {
	if err := Validate(t, s); err != nil {
		return nil, err
	}
	cols := resolve(t, s)
	out := make([]model.Presentation, 0, len(t.Rows))
	for i, row := range t.Rows {
		if cols.blank(row) {
			continue
		}
		out = append(out, model.Presentation{
			Row:           i,
			Theme:         strings.TrimSpace(Cell(row, cols.theme)),
			Title:         strings.TrimSpace(Cell(row, cols.title)),
			Presenters:    strings.TrimSpace(Cell(row, cols.presenters)),
			FacultyMentor: strings.TrimSpace(Cell(row, cols.mentor)),
		})
	}
	return out, nil
}
