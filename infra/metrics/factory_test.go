package metrics

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	corelogger "github.com/kilianp07/confsched/core/logger"
	coremetrics "github.com/kilianp07/confsched/core/metrics"
	"github.com/kilianp07/confsched/core/scheduler"
	"github.com/kilianp07/confsched/infra/logger"
)

func TestNewSink(t *testing.T) {
	s, err := NewSink(coremetrics.Config{}, nil)
	require.NoError(t, err)
	assert.IsType(t, coremetrics.NopSink{}, s)

	s, err = NewSink(coremetrics.Config{Sinks: []string{coremetrics.SinkLog}}, nil)
	require.NoError(t, err)
	assert.IsType(t, &LogSink{}, s)

	_, err = NewSink(coremetrics.Config{Sinks: []string{"influx"}}, nil)
	assert.Error(t, err)
}

func TestNewSinkFansOut(t *testing.T) {
	textfile := filepath.Join(t.TempDir(), "confsched.prom")
	var buf bytes.Buffer
	cfg := coremetrics.Config{Sinks: []string{coremetrics.SinkPrometheus, coremetrics.SinkLog}, Textfile: textfile}
	s, err := NewSink(cfg, logger.NewWithWriter(&buf, "metrics"))
	require.NoError(t, err)
	multi, ok := s.(*coremetrics.MultiSink)
	require.True(t, ok)
	require.Len(t, multi.Sinks, 2)

	require.NoError(t, s.RecordRun(event()))
	require.NoError(t, multi.Flush())
	data, err := os.ReadFile(textfile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "confsched_runs_total")
	assert.Contains(t, buf.String(), "run-1")
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSink(logger.NewWithWriter(&buf, "metrics"))
	ev := coremetrics.RunEvent{
		RunID:    "run-7",
		Mode:     "poster",
		Duration: 3 * time.Millisecond,
		Summary:  scheduler.Summary{Records: 12, Scheduled: 12, Sessions: 2, Rollovers: 1},
	}
	require.NoError(t, s.RecordRun(ev))
	assert.Contains(t, buf.String(), "run run-7 (poster): 12/12 scheduled, 2 sessions, 1 rollovers, 0 unassigned")

	buf.Reset()
	ev.Err = errors.New("missing columns in input: Theme")
	require.NoError(t, s.RecordRun(ev))
	assert.Contains(t, buf.String(), "failed")
	assert.Contains(t, buf.String(), "missing columns in input: Theme")

	assert.NoError(t, NewLogSink(corelogger.Nop{}).RecordRun(ev))
}
