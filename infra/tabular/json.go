package tabular

import (
	"encoding/json"
	"io"

	"github.com/kilianp07/confsched/core/assemble"
)

type jsonTable struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// WriteJSON writes t as {"columns": [...], "rows": [[...]]}, which keeps the
// published column order.
func WriteJSON(w io.Writer, t assemble.Table) error {
	rows := t.Rows
	if rows == nil {
		rows = [][]string{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonTable{Columns: t.Header, Rows: rows})
}
