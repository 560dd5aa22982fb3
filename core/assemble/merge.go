package assemble

import (
	"slices"
	"strconv"
	"strings"

	"github.com/kilianp07/confsched/core/model"
)

// Options controls the published table.
type Options struct {
	// SortBySession orders rows by track, session id and slot instead of
	// input order. Unassigned rows go last.
	SortBySession bool
	// TrackOrder ranks tracks when sorting; unknown tracks sort by name
	// after the listed ones.
	TrackOrder []string
}

type outRow struct {
	src   int
	a     model.Assignment
	ok    bool
	cells []string
}

// Merge projects t onto the published columns of s, filling the schedule
// columns from assignments keyed by row index. t itself is not modified.
// Blank rows skipped by Extract are skipped here too.
func Merge(t Table, s model.Schema, assignments map[int]model.Assignment, opts Options) Table {
	cols := resolve(t, s)
	rows := make([]outRow, 0, len(t.Rows))
	for i, row := range t.Rows {
		if cols.blank(row) {
			continue
		}
		a, ok := assignments[i]
		r := outRow{src: i, a: a, ok: ok, cells: make([]string, 0, 7)}
		if ok {
			r.cells = append(r.cells, a.Track, strconv.Itoa(a.SessionID), a.TimeSlot())
		} else {
			r.cells = append(r.cells, "", "", "")
		}
		r.cells = append(r.cells,
			strings.TrimSpace(Cell(row, cols.theme)),
			strings.TrimSpace(Cell(row, cols.title)),
			strings.TrimSpace(Cell(row, cols.presenters)),
			strings.TrimSpace(Cell(row, cols.mentor)),
		)
		rows = append(rows, r)
	}
	if opts.SortBySession {
		sortRows(rows, opts.TrackOrder)
	}
	out := Table{Header: s.OutputColumns(), Rows: make([][]string, 0, len(rows))}
	for _, r := range rows {
		out.Rows = append(out.Rows, r.cells)
	}
	return out
}

func sortRows(rows []outRow, order []string) {
	rank := make(map[string]int, len(order))
	for i, name := range order {
		rank[name] = i
	}
	trackKey := func(name string) (int, string) {
		if r, ok := rank[name]; ok {
			return r, ""
		}
		return len(order), name
	}
	slices.SortStableFunc(rows, func(x, y outRow) int {
		if x.ok != y.ok {
			if x.ok {
				return -1
			}
			return 1
		}
		if !x.ok {
			return x.src - y.src
		}
		xr, xn := trackKey(x.a.Track)
		yr, yn := trackKey(y.a.Track)
		if xr != yr {
			return xr - yr
		}
		if c := strings.Compare(xn, yn); c != 0 {
			return c
		}
		if x.a.SessionID != y.a.SessionID {
			return x.a.SessionID - y.a.SessionID
		}
		if c := x.a.Slot.Compare(y.a.Slot); c != 0 {
			return c
		}
		return x.src - y.src
	})
}
