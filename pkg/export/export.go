// Package export renders run history for other tools.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/kilianp07/confsched/core/runlog"
)

// WriteJSON writes one JSON object per run.
func WriteJSON(w io.Writer, runs []runlog.RunRecord) error {
	enc := json.NewEncoder(w)
	for _, r := range runs {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteCSV writes the run history with one row per run.
func WriteCSV(w io.Writer, runs []runlog.RunRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "timestamp", "mode", "input", "output", "records", "scheduled", "unassigned", "sessions", "rollovers", "days", "error"}); err != nil {
		return err
	}
	for _, r := range runs {
		s := r.Summary
		rec := []string{
			r.ID,
			r.Timestamp.Format(time.RFC3339),
			r.Mode,
			r.Input,
			r.Output,
			strconv.Itoa(s.Records),
			strconv.Itoa(s.Scheduled),
			strconv.Itoa(s.Unassigned),
			strconv.Itoa(s.Sessions),
			strconv.Itoa(s.Rollovers),
			strconv.Itoa(s.Days),
			r.Error,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
