package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidTimeOfDay is returned when a clock time cannot be parsed.
var ErrInvalidTimeOfDay = errors.New("invalid time of day")

// SlotLayout is the 12-hour layout used for published time slots.
const SlotLayout = "03:04 PM"

var timeOfDayLayouts = []string{
	"15:04",
	"15:04:05",
	"03:04 PM",
	"3:04 PM",
	"03:04PM",
	"3:04PM",
	"3PM",
	"3 PM",
}

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay accepts 24-hour ("13:30") and 12-hour ("01:30 PM") clock times.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range timeOfDayLayouts {
		t, err := time.Parse(layout, v)
		if err == nil {
			return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
}

// MustTimeOfDay is ParseTimeOfDay for literals; it panics on bad input.
func MustTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// On combines the clock time with the calendar day of date.
func (t TimeOfDay) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour, t.Minute, 0, 0, date.Location())
}

// Minutes returns the number of minutes since midnight.
func (t TimeOfDay) Minutes() int { return t.Hour*60 + t.Minute }

// Before reports whether t is earlier in the day than o.
func (t TimeOfDay) Before(o TimeOfDay) bool { return t.Minutes() < o.Minutes() }

func (t TimeOfDay) String() string { return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute) }

// MarshalText implements encoding.TextMarshaler.
func (t TimeOfDay) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TimeOfDay) UnmarshalText(b []byte) error {
	v, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// FormatSlot renders a slot the way it is published, e.g. "09:00 AM".
func FormatSlot(t time.Time) string { return t.Format(SlotLayout) }
