package model

import (
	"fmt"
	"time"
)

// Presentation is one submission row. Row is the zero-based index of the
// record in the input table and identifies it for the whole run.
type Presentation struct {
	Row           int    `json:"row"`
	Theme         string `json:"theme"`
	Title         string `json:"title"`
	Presenters    string `json:"presenters"`
	FacultyMentor string `json:"faculty_mentor"`
}

// Assignment is the scheduling outcome for a single presentation.
type Assignment struct {
	Track     string    `json:"track"`
	SessionID int       `json:"session_id"`
	Slot      time.Time `json:"slot"`
	// Day is the synthetic day offset from the run base date.
	Day int `json:"day"`
}

// TimeSlot returns the published 12-hour representation of the slot.
func (a Assignment) TimeSlot() string { return FormatSlot(a.Slot) }

// Mode selects how presentations are grouped and timed.
type Mode string

const (
	// ModeOral packs talks into capacity-bounded sessions.
	ModeOral Mode = "oral"
	// ModePoster gives every poster its own fixed-width slot inside the day window.
	ModePoster Mode = "poster"
	// ModeBatch fills caller-defined poster sessions of {start, count} in input order.
	ModeBatch Mode = "batch"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeOral, ModePoster, ModeBatch:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}
