package scheduler

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/confsched/core/model"
)

// WindowConfig is the textual form of a Window. Times accept "13:30" or "01:30 PM".
type WindowConfig struct {
	Name  string `json:"name" yaml:"name"`
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// BatchConfig is the textual form of a Batch.
type BatchConfig struct {
	Start string `json:"start" yaml:"start"`
	Count int    `json:"count" yaml:"count"`
}

// Config holds the user-facing scheduling parameters.
type Config struct {
	Mode              string         `json:"mode" yaml:"mode"`
	SlotMinutes       int            `json:"slot_minutes" yaml:"slot_minutes"`
	PosterSlotMinutes int            `json:"poster_slot_minutes" yaml:"poster_slot_minutes"`
	MaxPerSession     int            `json:"max_per_session" yaml:"max_per_session"`
	NumTracks         int            `json:"num_tracks" yaml:"num_tracks"`
	Grouping          ModuleConfig   `json:"grouping" yaml:"grouping"`
	SessionIDs        string         `json:"session_ids" yaml:"session_ids"`
	BaseDate          string         `json:"base_date" yaml:"base_date"`
	DefaultWindow     WindowConfig   `json:"default_window" yaml:"default_window"`
	Tracks            []WindowConfig `json:"tracks" yaml:"tracks"`
	PosterBatches     []BatchConfig  `json:"poster_batches" yaml:"poster_batches"`
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.Mode == "" {
		c.Mode = string(model.ModeOral)
	}
	if c.SlotMinutes == 0 {
		c.SlotMinutes = 15
	}
	if c.PosterSlotMinutes == 0 {
		c.PosterSlotMinutes = int(DefaultPosterSlot / time.Minute)
	}
	if c.MaxPerSession == 0 {
		c.MaxPerSession = 5
	}
	if c.NumTracks == 0 {
		c.NumTracks = max(len(c.Tracks), 1)
	}
	if c.Grouping.Type == "" {
		c.Grouping.Type = "theme"
	}
	if c.DefaultWindow.Start == "" {
		c.DefaultWindow.Start = "09:00"
	}
	if c.DefaultWindow.End == "" {
		c.DefaultWindow.End = "17:00"
	}
	if c.SessionIDs == "" {
		if c.Mode == string(model.ModeOral) {
			c.SessionIDs = string(NumberingGlobal)
		} else {
			c.SessionIDs = string(NumberingPerTrack)
		}
	}
}

// Params resolves c into validated scheduler parameters. Strategies are
// looked up in reg; a nil reg uses DefaultRegistry.
func (c Config) Params(reg *Registry) (Params, error) {
	c.SetDefaults()
	mode, err := model.ParseMode(c.Mode)
	if err != nil {
		return Params{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if len(c.Tracks) > c.NumTracks {
		return Params{}, fmt.Errorf("%w: %d track windows configured for num_tracks %d", ErrInvalidConfig, len(c.Tracks), c.NumTracks)
	}
	p := Params{
		Mode:               mode,
		SlotDuration:       time.Duration(c.SlotMinutes) * time.Minute,
		PosterSlotDuration: time.Duration(c.PosterSlotMinutes) * time.Minute,
		MaxPerSession:      c.MaxPerSession,
		Numbering:          Numbering(c.SessionIDs),
	}
	if c.BaseDate != "" {
		d, err := time.Parse(time.DateOnly, c.BaseDate)
		if err != nil {
			return Params{}, fmt.Errorf("%w: base_date: %v", ErrInvalidConfig, err)
		}
		p.BaseDate = d
	}
	for i := 0; i < c.NumTracks; i++ {
		wc := WindowConfig{}
		if i < len(c.Tracks) {
			wc = c.Tracks[i]
		}
		w, err := c.resolveWindow(i, wc)
		if err != nil {
			return Params{}, err
		}
		p.Tracks = append(p.Tracks, w)
	}
	for i, bc := range c.PosterBatches {
		start, err := model.ParseTimeOfDay(bc.Start)
		if err != nil {
			return Params{}, fmt.Errorf("%w: poster_batches[%d]: %v", ErrInvalidConfig, i, err)
		}
		p.Batches = append(p.Batches, Batch{Start: start, Count: bc.Count})
	}
	if mode == model.ModeOral {
		if reg == nil {
			reg = DefaultRegistry()
		}
		g, err := reg.Create(c.Grouping)
		if err != nil {
			return Params{}, fmt.Errorf("%w: grouping: %w", ErrInvalidConfig, err)
		}
		p.Grouper = g
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

func (c Config) resolveWindow(i int, wc WindowConfig) (Window, error) {
	name := wc.Name
	if name == "" {
		name = fmt.Sprintf("Section %d", i+1)
	}
	startStr, endStr := wc.Start, wc.End
	if startStr == "" {
		startStr = c.DefaultWindow.Start
	}
	if endStr == "" {
		endStr = c.DefaultWindow.End
	}
	start, err := model.ParseTimeOfDay(startStr)
	if err != nil {
		return Window{}, fmt.Errorf("%w: track %q start: %v", ErrInvalidConfig, name, err)
	}
	end, err := model.ParseTimeOfDay(endStr)
	if err != nil {
		return Window{}, fmt.Errorf("%w: track %q end: %v", ErrInvalidConfig, name, err)
	}
	return Window{Name: name, Start: start, End: end}, nil
}

// LoadConfig loads a Config from a JSON or YAML file.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer func() { _ = f.Close() }()
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return DecodeConfig(f, ext)
}

// DecodeConfig reads a Config in the given format ("yaml", "yml" or "json").
func DecodeConfig(r io.Reader, format string) (Config, error) {
	var cfg Config
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && err != io.EOF {
			return cfg, err
		}
	case "json":
		if err := json.NewDecoder(r).Decode(&cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config format: %s", format)
	}
	return cfg, nil
}
