package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/confsched/core/model"
	"github.com/kilianp07/confsched/core/scheduler"
)

func withoutDotEnv(t *testing.T) {
	t.Helper()
	old := DotEnvFile
	DotEnvFile = filepath.Join(t.TempDir(), "absent.env")
	t.Cleanup(func() { DotEnvFile = old })
}

func TestLoad(t *testing.T) {
	withoutDotEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `schedule:
  mode: oral
  slot_minutes: 20
  max_per_session: 4
  num_tracks: 2
  base_date: "2025-04-11"
  grouping:
    type: mixed
    conf:
      seed: 9
  tracks:
    - name: "Main Hall"
      start: "09:00 AM"
      end: "12:00 PM"
io:
  input: submissions.xlsx
  output: schedule.csv
  schema: legacy
  sort_output: true
runlog:
  backend: sqlite
metrics:
  textfile: /tmp/confsched.prom
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"mode", cfg.Schedule.Mode, "oral"},
		{"slot_minutes", cfg.Schedule.SlotMinutes, 20},
		{"max_per_session", cfg.Schedule.MaxPerSession, 4},
		{"num_tracks", cfg.Schedule.NumTracks, 2},
		{"grouping", cfg.Schedule.Grouping.Type, "mixed"},
		{"track name", cfg.Schedule.Tracks[0].Name, "Main Hall"},
		{"session_ids default", cfg.Schedule.SessionIDs, "global"},
		{"input", cfg.IO.Input, "submissions.xlsx"},
		{"schema", cfg.IO.Schema, "legacy"},
		{"sort_output", cfg.IO.SortOutput, true},
		{"runlog backend", cfg.RunLog.Backend, "sqlite"},
		{"runlog path default", cfg.RunLog.Path, "confsched-runs.db"},
		{"textfile", cfg.Metrics.Textfile, "/tmp/confsched.prom"},
		{"metrics sinks default", cfg.Metrics.Sinks, []string{"prometheus", "log"}},
		{"level", cfg.Logging.Level, "debug"},
	}
	for _, c := range checks {
		assert.Equal(t, c.want, c.got, c.name)
	}

	p, err := cfg.Schedule.Params(nil)
	require.NoError(t, err)
	assert.Equal(t, scheduler.MixedGrouper{Seed: 9}, p.Grouper)
	assert.Equal(t, "Section 2", p.Tracks[1].Name)
}

func TestLoadJSONWithEnvOverrides(t *testing.T) {
	withoutDotEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"schedule":{"mode":"oral","slot_minutes":15}}`), 0o644))
	t.Setenv("CONFSCHED_SCHEDULE__SLOT_MINUTES", "30")
	t.Setenv("CONFSCHED_SCHEDULE__MODE", "poster")
	t.Setenv("CONFSCHED_IO__OUTPUT", "out.xlsx")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Schedule.SlotMinutes)
	assert.Equal(t, string(model.ModePoster), cfg.Schedule.Mode)
	assert.Equal(t, "per_track", cfg.Schedule.SessionIDs)
	assert.Equal(t, "out.xlsx", cfg.IO.Output)
	assert.Equal(t, "jsonl", cfg.RunLog.Backend)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	dotenv := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("CONFSCHED_LOGGING__LEVEL=warn\n"), 0o644))
	old := DotEnvFile
	DotEnvFile = dotenv
	t.Cleanup(func() {
		DotEnvFile = old
		_ = os.Unsetenv("CONFSCHED_LOGGING__LEVEL")
	})

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "oral", cfg.Schedule.Mode)
}

func TestLoadErrors(t *testing.T) {
	withoutDotEnv(t)
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "config.toml"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("io:\n  schema: xml\n"), 0o644))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "io:")

	lvl := filepath.Join(dir, "lvl.yaml")
	require.NoError(t, os.WriteFile(lvl, []byte("logging:\n  level: loud\n"), 0o644))
	_, err = Load(lvl)
	assert.ErrorContains(t, err, "logging:")

	ms := filepath.Join(dir, "ms.yaml")
	require.NoError(t, os.WriteFile(ms, []byte("metrics:\n  sinks: [prometheus, influx]\n"), 0o644))
	_, err = Load(ms)
	assert.ErrorContains(t, err, "metrics:")

	rl := filepath.Join(dir, "rl.yaml")
	require.NoError(t, os.WriteFile(rl, []byte("runlog:\n  backend: csv\n"), 0o644))
	_, err = Load(rl)
	assert.ErrorContains(t, err, "runlog:")
}

func TestApplyScheduleFile(t *testing.T) {
	withoutDotEnv(t)
	dir := t.TempDir()
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.IO.Input = "submissions.csv"

	path := filepath.Join(dir, "posters.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: poster\nposter_slot_minutes: 12\nnum_tracks: 2\n"), 0o644))
	require.NoError(t, cfg.ApplyScheduleFile(path))
	assert.Equal(t, "poster", cfg.Schedule.Mode)
	assert.Equal(t, 12, cfg.Schedule.PosterSlotMinutes)
	assert.Equal(t, 2, cfg.Schedule.NumTracks)
	assert.Equal(t, "per_track", cfg.Schedule.SessionIDs)
	assert.Equal(t, "submissions.csv", cfg.IO.Input)

	js := filepath.Join(dir, "oral.json")
	require.NoError(t, os.WriteFile(js, []byte(`{"slot_minutes": 20, "grouping": {"type": "sequential"}}`), 0o644))
	require.NoError(t, cfg.ApplyScheduleFile(js))
	assert.Equal(t, "oral", cfg.Schedule.Mode)
	assert.Equal(t, 20, cfg.Schedule.SlotMinutes)
	assert.Equal(t, "sequential", cfg.Schedule.Grouping.Type)

	assert.Error(t, cfg.ApplyScheduleFile(filepath.Join(dir, "missing.yaml")))
	bad := filepath.Join(dir, "params.toml")
	require.NoError(t, os.WriteFile(bad, []byte("mode = 1"), 0o644))
	assert.Error(t, cfg.ApplyScheduleFile(bad))
}
