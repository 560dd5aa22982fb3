package scheduler

import (
	"errors"
	"fmt"
	"time"

	"github.com/kilianp07/confsched/core/model"
)

// ErrInvalidConfig wraps every parameter validation failure.
var ErrInvalidConfig = errors.New("invalid schedule config")

// Accepted parameter ranges.
const (
	MinSlotMinutes    = 5
	MaxSlotMinutes    = 60
	MinPerSession     = 3
	MaxPerSession     = 20
	MinTracks         = 1
	MaxTracks         = 5
	MaxBatchCount     = 200
	DefaultPosterSlot = 10 * time.Minute
)

// Window is a named track with its daily active window. An End before Start
// spans midnight.
type Window struct {
	Name  string
	Start model.TimeOfDay
	End   model.TimeOfDay
}

// Bounds returns the window on the given calendar day.
func (w Window) Bounds(day time.Time) (time.Time, time.Time) {
	start := w.Start.On(day)
	end := w.End.On(day)
	if w.End.Before(w.Start) {
		end = w.End.On(day.AddDate(0, 0, 1))
	}
	return start, end
}

// Length is the duration of one day's window.
func (w Window) Length() time.Duration {
	mins := w.End.Minutes() - w.Start.Minutes()
	if mins < 0 {
		mins += 24 * 60
	}
	return time.Duration(mins) * time.Minute
}

// Batch is a caller-defined poster session used by batch mode.
type Batch struct {
	Start model.TimeOfDay
	Count int
}

// Numbering selects how session ids are counted.
type Numbering string

const (
	// NumberingGlobal runs one counter across all tracks.
	NumberingGlobal Numbering = "global"
	// NumberingPerTrack restarts at 1 for every track.
	NumberingPerTrack Numbering = "per_track"
)

// Params is the fully resolved input of a run. The scheduler reads nothing
// else: no clock, no environment.
type Params struct {
	Mode               model.Mode
	SlotDuration       time.Duration
	PosterSlotDuration time.Duration
	MaxPerSession      int
	Tracks             []Window
	Grouper            Grouper
	Numbering          Numbering
	// BaseDate is day zero of the schedule; only its calendar date is used.
	BaseDate time.Time
	Batches  []Batch
}

// Validate checks the invariants the scheduler relies on.
func (p Params) Validate() error {
	switch p.Mode {
	case model.ModeOral, model.ModePoster, model.ModeBatch:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, p.Mode)
	}
	if len(p.Tracks) < MinTracks || len(p.Tracks) > MaxTracks {
		return fmt.Errorf("%w: num_tracks must be between %d and %d, got %d", ErrInvalidConfig, MinTracks, MaxTracks, len(p.Tracks))
	}
	seen := make(map[string]bool, len(p.Tracks))
	for _, w := range p.Tracks {
		if w.Name == "" {
			return fmt.Errorf("%w: track name is empty", ErrInvalidConfig)
		}
		if seen[w.Name] {
			return fmt.Errorf("%w: duplicate track %q", ErrInvalidConfig, w.Name)
		}
		seen[w.Name] = true
		if w.Start == w.End {
			return fmt.Errorf("%w: track %q: window %s-%s is empty", ErrInvalidConfig, w.Name, w.Start, w.End)
		}
	}
	switch p.Numbering {
	case NumberingGlobal, NumberingPerTrack:
	default:
		return fmt.Errorf("%w: unknown session numbering %q", ErrInvalidConfig, p.Numbering)
	}
	switch p.Mode {
	case model.ModeOral:
		if err := checkRange("slot_minutes", int(p.SlotDuration/time.Minute), MinSlotMinutes, MaxSlotMinutes); err != nil {
			return err
		}
		if p.SlotDuration%time.Minute != 0 {
			return fmt.Errorf("%w: slot duration %s is not a whole number of minutes", ErrInvalidConfig, p.SlotDuration)
		}
		if err := checkRange("max_per_session", p.MaxPerSession, MinPerSession, MaxPerSession); err != nil {
			return err
		}
		if p.Grouper == nil {
			return fmt.Errorf("%w: no grouping strategy", ErrInvalidConfig)
		}
	case model.ModePoster:
		if p.PosterSlotDuration <= 0 {
			return fmt.Errorf("%w: poster slot must be positive", ErrInvalidConfig)
		}
	case model.ModeBatch:
		if len(p.Tracks) > 1 {
			return fmt.Errorf("%w: batch mode places posters on a single track, got %d", ErrInvalidConfig, len(p.Tracks))
		}
		if len(p.Batches) == 0 {
			return fmt.Errorf("%w: batch mode needs at least one poster batch", ErrInvalidConfig)
		}
		for i, b := range p.Batches {
			if err := checkRange(fmt.Sprintf("poster_batches[%d].count", i), b.Count, 1, MaxBatchCount); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkRange(name string, v, lo, hi int) error {
	if v < lo || v > hi {
		return fmt.Errorf("%w: %s must be between %d and %d, got %d", ErrInvalidConfig, name, lo, hi, v)
	}
	return nil
}
