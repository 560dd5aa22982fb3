package metrics

import (
	corelogger "github.com/kilianp07/confsched/core/logger"
	coremetrics "github.com/kilianp07/confsched/core/metrics"
)

// LogSink reports each run as log lines.
type LogSink struct {
	log corelogger.Logger
}

// NewLogSink returns a LogSink writing to l. A nil logger discards output.
func NewLogSink(l corelogger.Logger) *LogSink {
	return &LogSink{log: corelogger.OrNop(l)}
}

func (s *LogSink) RecordRun(ev coremetrics.RunEvent) error {
	if ev.Err != nil {
		s.log.Warnf("run %s (%s) failed after %s: %v", ev.RunID, ev.Mode, ev.Duration, ev.Err)
		return nil
	}
	sum := ev.Summary
	s.log.Infof("run %s (%s): %d/%d scheduled, %d sessions, %d rollovers, %d unassigned in %s",
		ev.RunID, ev.Mode, sum.Scheduled, sum.Records, sum.Sessions, sum.Rollovers, sum.Unassigned, ev.Duration)
	for _, t := range sum.PerTrack {
		s.log.Debugw("track summary", map[string]any{
			"run_id":    ev.RunID,
			"track":     t.Name,
			"records":   t.Records,
			"sessions":  t.Sessions,
			"rollovers": t.Rollovers,
			"days":      t.Days,
		})
	}
	return nil
}
