package scheduler

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/confsched/core/model"
)

func TestConfigDefaults(t *testing.T) {
	p, err := Config{}.Params(nil)
	require.NoError(t, err)
	assert.Equal(t, model.ModeOral, p.Mode)
	assert.Equal(t, 15*time.Minute, p.SlotDuration)
	assert.Equal(t, 10*time.Minute, p.PosterSlotDuration)
	assert.Equal(t, 5, p.MaxPerSession)
	assert.Equal(t, NumberingGlobal, p.Numbering)
	require.Len(t, p.Tracks, 1)
	assert.Equal(t, window("Section 1", "09:00", "17:00"), p.Tracks[0])
	assert.Equal(t, "theme", p.Grouper.Name())
	assert.True(t, p.BaseDate.IsZero())
}

func TestConfigPosterDefaultsToPerTrackNumbering(t *testing.T) {
	p, err := Config{Mode: "poster", NumTracks: 2}.Params(nil)
	require.NoError(t, err)
	assert.Equal(t, NumberingPerTrack, p.Numbering)
	assert.Nil(t, p.Grouper)
	assert.Equal(t, "Section 2", p.Tracks[1].Name)
}

func TestConfigTracks(t *testing.T) {
	cfg := Config{
		NumTracks:     3,
		BaseDate:      "2025-04-11",
		DefaultWindow: WindowConfig{Start: "08:00 AM", End: "12:00 PM"},
		Tracks: []WindowConfig{
			{Name: "Main Hall", Start: "09:00", End: "11:00"},
			{Name: "Annex", End: "01:00 PM"},
		},
		Grouping: ModuleConfig{Type: "mixed", Conf: map[string]any{"seed": 5}},
	}
	p, err := cfg.Params(nil)
	require.NoError(t, err)
	require.Len(t, p.Tracks, 3)
	assert.Equal(t, window("Main Hall", "09:00", "11:00"), p.Tracks[0])
	assert.Equal(t, window("Annex", "08:00", "13:00"), p.Tracks[1])
	assert.Equal(t, window("Section 3", "08:00", "12:00"), p.Tracks[2])
	assert.Equal(t, base, p.BaseDate)
	assert.Equal(t, MixedGrouper{Seed: 5}, p.Grouper)
}

func TestConfigNumTracksFromTrackList(t *testing.T) {
	cfg := Config{Tracks: []WindowConfig{{Name: "A"}, {Name: "B"}}}
	p, err := cfg.Params(nil)
	require.NoError(t, err)
	assert.Len(t, p.Tracks, 2)
}

func TestConfigErrors(t *testing.T) {
	cases := map[string]Config{
		"mode":         {Mode: "workshop"},
		"slot":         {SlotMinutes: 90},
		"capacity":     {MaxPerSession: 2},
		"tracks":       {NumTracks: 6},
		"extra window": {NumTracks: 1, Tracks: []WindowConfig{{Name: "A"}, {Name: "B"}}},
		"bad time":     {Tracks: []WindowConfig{{Start: "morning"}}},
		"bad end":      {Tracks: []WindowConfig{{End: "25:00"}}},
		"base date":    {BaseDate: "11/04/2025"},
		"grouping":     {Grouping: ModuleConfig{Type: "random"}},
		"batch empty":  {Mode: "batch"},
		"batch count":  {Mode: "batch", PosterBatches: []BatchConfig{{Start: "12:00", Count: 500}}},
		"batch start":  {Mode: "batch", PosterBatches: []BatchConfig{{Start: "soon", Count: 5}}},
		"numbering":    {SessionIDs: "hourly"},
	}
	for name, cfg := range cases {
		_, err := cfg.Params(nil)
		assert.True(t, errors.Is(err, ErrInvalidConfig), "%s: %v", name, err)
	}
}

func TestConfigBatch(t *testing.T) {
	cfg := Config{Mode: "batch", PosterBatches: []BatchConfig{{Start: "12:00 PM", Count: 50}, {Start: "2:00 PM", Count: 40}}}
	p, err := cfg.Params(nil)
	require.NoError(t, err)
	assert.Equal(t, []Batch{{Start: model.TimeOfDay{Hour: 12}, Count: 50}, {Start: model.TimeOfDay{Hour: 14}, Count: 40}}, p.Batches)
}

func TestDecodeConfigYAML(t *testing.T) {
	data := `mode: oral
slot_minutes: 20
max_per_session: 4
num_tracks: 2
session_ids: per_track
grouping:
  type: mixed
  conf:
    seed: 11
tracks:
  - name: Section A
    start: "09:00 AM"
    end: "11:30 AM"
`
	cfg, err := DecodeConfig(bytes.NewBufferString(data), "yaml")
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.SlotMinutes)
	assert.Equal(t, "mixed", cfg.Grouping.Type)
	require.Len(t, cfg.Tracks, 1)
	assert.Equal(t, "11:30 AM", cfg.Tracks[0].End)

	p, err := cfg.Params(nil)
	require.NoError(t, err)
	assert.Equal(t, MixedGrouper{Seed: 11}, p.Grouper)
	assert.Equal(t, NumberingPerTrack, p.Numbering)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schedule.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"mode":"poster","poster_slot_minutes":12,"num_tracks":3}`), 0o644))
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "poster", cfg.Mode)
	assert.Equal(t, 12, cfg.PosterSlotMinutes)
	assert.Equal(t, 3, cfg.NumTracks)

	txt := filepath.Join(dir, "schedule.txt")
	require.NoError(t, os.WriteFile(txt, []byte("mode: oral"), 0o644))
	_, err = LoadConfig(txt)
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestDecodeErrors(t *testing.T) {
	_, err := DecodeConfig(bytes.NewBufferString("{}"), "toml")
	assert.Error(t, err)
	_, err = DecodeConfig(bytes.NewBufferString(":"), "yaml")
	assert.Error(t, err)
	_, err = DecodeConfig(bytes.NewBufferString("{"), "json")
	assert.Error(t, err)
}
