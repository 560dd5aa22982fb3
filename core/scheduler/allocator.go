package scheduler

import (
	"time"

	"github.com/kilianp07/confsched/core/model"
)

// Rollover decides when a track clock moves to the next day.
type Rollover int

const (
	// RolloverPerSession moves a whole session to the next day when it
	// would end after the window.
	RolloverPerSession Rollover = iota
	// RolloverPerRecord moves the clock once it has reached the window end.
	RolloverPerRecord
)

// Placement is one allocated session.
type Placement struct {
	Track     string
	SessionID int
	Day       int
	Records   []model.Presentation
	Slots     []time.Time
	// RolledOver is set when the session triggered a day rollover.
	RolledOver bool
}

// End returns the instant the last slot of the session finishes.
func (p Placement) End(slot time.Duration) time.Time {
	if len(p.Slots) == 0 {
		return time.Time{}
	}
	return p.Slots[len(p.Slots)-1].Add(slot)
}

// trackClock is the per-track cursor. Tracks never share one.
type trackClock struct {
	window    Window
	base      time.Time
	slot      time.Duration
	day       int
	cursor    time.Time
	rollovers int
}

func newTrackClock(w Window, base time.Time, slot time.Duration) *trackClock {
	c := &trackClock{window: w, base: base, slot: slot}
	c.cursor, _ = c.bounds()
	return c
}

func (c *trackClock) bounds() (time.Time, time.Time) {
	return c.window.Bounds(c.base.AddDate(0, 0, c.day))
}

func (c *trackClock) rollover() {
	c.day++
	c.rollovers++
	c.cursor, _ = c.bounds()
}

// reserve checks that n slots fit before the window end and rolls the
// clock over once when they do not. The session is never split.
func (c *trackClock) reserve(n int) bool {
	_, end := c.bounds()
	required := c.cursor.Add(time.Duration(n) * c.slot)
	if required.After(end) {
		c.rollover()
		return true
	}
	return false
}

// next hands out the slot at the cursor and advances it.
func (c *trackClock) next() time.Time {
	t := c.cursor
	c.cursor = c.cursor.Add(c.slot)
	return t
}

// sessionCounter issues session ids. A global counter is shared by every
// track of a run; a per-track one is reset before each track.
type sessionCounter struct {
	numbering Numbering
	next      int
}

func (s *sessionCounter) startTrack() {
	if s.numbering == NumberingPerTrack || s.next == 0 {
		s.next = 1
	}
}

func (s *sessionCounter) take() int {
	id := s.next
	s.next++
	return id
}

// allocateTrack walks the sessions of one track in order and assigns slots.
func allocateTrack(w Window, sessions [][]model.Presentation, base time.Time, slot time.Duration, policy Rollover, ids *sessionCounter) ([]Placement, int) {
	clock := newTrackClock(w, base, slot)
	ids.startTrack()
	out := make([]Placement, 0, len(sessions))
	for _, recs := range sessions {
		if len(recs) == 0 {
			continue
		}
		p := Placement{Track: w.Name, Records: recs, Slots: make([]time.Time, len(recs))}
		switch policy {
		case RolloverPerRecord:
			startDay := clock.day
			for i := range recs {
				if _, end := clock.bounds(); !clock.cursor.Before(end) {
					clock.rollover()
				}
				p.Slots[i] = clock.next()
			}
			p.RolledOver = clock.day != startDay
		default:
			p.RolledOver = clock.reserve(len(recs))
			for i := range recs {
				p.Slots[i] = clock.next()
			}
		}
		p.Day = clock.day
		p.SessionID = ids.take()
		out = append(out, p)
	}
	return out, clock.rollovers
}

// posterCapacity is the number of posters the per-record rule places in one
// day of w: ceil(window / slot), at least one.
func posterCapacity(w Window, slot time.Duration) int {
	if slot <= 0 {
		return 1
	}
	n := int((w.Length() + slot - 1) / slot)
	return max(n, 1)
}
