package scheduler

import (
	"fmt"
	"time"

	"github.com/kilianp07/confsched/core/logger"
	"github.com/kilianp07/confsched/core/model"
)

// Result holds the outcome of a run.
type Result struct {
	// Assignments is keyed by model.Presentation.Row.
	Assignments map[int]model.Assignment
	Placements  []Placement
	// Unassigned lists rows left without a slot. Only batch mode produces any.
	Unassigned []int
	Summary    Summary
}

// Scheduler runs one scheduling configuration over a set of presentations.
type Scheduler struct {
	params Params
	log    logger.Logger
}

// New validates p and returns a Scheduler. A nil logger discards output.
func New(p Params, log logger.Logger) (*Scheduler, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.BaseDate = dayOf(p.BaseDate)
	return &Scheduler{params: p, log: logger.OrNop(log)}, nil
}

// Params returns the parameters the scheduler was built with.
func (s *Scheduler) Params() Params { return s.params }

// Run partitions, groups and times recs. Rows must be unique.
func (s *Scheduler) Run(recs []model.Presentation) (*Result, error) {
	seen := make(map[int]bool, len(recs))
	for _, r := range recs {
		if seen[r.Row] {
			return nil, fmt.Errorf("duplicate row %d", r.Row)
		}
		seen[r.Row] = true
	}
	var res *Result
	if s.params.Mode == model.ModeBatch {
		res = s.runBatch(recs)
	} else {
		res = s.runTracks(recs)
	}
	res.Summary = summarize(s.params, res, len(recs))
	s.log.Infof("scheduled %d/%d presentations in %d sessions across %d tracks (%d rollovers, %d days)",
		res.Summary.Scheduled, res.Summary.Records, res.Summary.Sessions, res.Summary.Tracks, res.Summary.Rollovers, res.Summary.Days)
	return res, nil
}

func (s *Scheduler) runTracks(recs []model.Presentation) *Result {
	p := s.params
	res := &Result{Assignments: make(map[int]model.Assignment, len(recs))}
	ids := &sessionCounter{numbering: p.Numbering}
	chunks := Partition(recs, len(p.Tracks))
	for i, w := range p.Tracks {
		sessions, slot, policy := s.plan(w, chunks[i])
		placements, rollovers := allocateTrack(w, sessions, p.BaseDate, slot, policy, ids)
		if rollovers > 0 {
			s.log.Infof("track %q rolled over %d time(s)", w.Name, rollovers)
		}
		for _, pl := range placements {
			s.log.Debugw("session allocated", map[string]any{
				"track":       pl.Track,
				"session_id":  pl.SessionID,
				"day":         pl.Day,
				"size":        len(pl.Records),
				"start":       model.FormatSlot(pl.Slots[0]),
				"end":         model.FormatSlot(pl.End(slot)),
				"rolled_over": pl.RolledOver,
			})
			for j, r := range pl.Records {
				res.Assignments[r.Row] = model.Assignment{Track: pl.Track, SessionID: pl.SessionID, Slot: pl.Slots[j], Day: pl.Day}
			}
		}
		res.Placements = append(res.Placements, placements...)
	}
	return res
}

// plan groups one track according to the mode.
func (s *Scheduler) plan(w Window, recs []model.Presentation) ([][]model.Presentation, time.Duration, Rollover) {
	if s.params.Mode == model.ModePoster {
		slot := s.params.PosterSlotDuration
		return chunk(recs, posterCapacity(w, slot)), slot, RolloverPerRecord
	}
	return s.params.Grouper.Group(recs, s.params.MaxPerSession), s.params.SlotDuration, RolloverPerSession
}

// runBatch fills the configured poster batches in input order. Every poster
// of a batch shares the batch start time; records beyond the last batch stay
// unassigned.
func (s *Scheduler) runBatch(recs []model.Presentation) *Result {
	p := s.params
	track := p.Tracks[0].Name
	res := &Result{Assignments: make(map[int]model.Assignment, len(recs))}
	idx := 0
	for i, b := range p.Batches {
		if idx >= len(recs) {
			break
		}
		end := min(idx+b.Count, len(recs))
		start := b.Start.On(p.BaseDate)
		pl := Placement{Track: track, SessionID: i + 1, Records: recs[idx:end], Slots: make([]time.Time, end-idx)}
		for j, r := range pl.Records {
			pl.Slots[j] = start
			res.Assignments[r.Row] = model.Assignment{Track: track, SessionID: pl.SessionID, Slot: start}
		}
		res.Placements = append(res.Placements, pl)
		idx = end
	}
	for _, r := range recs[idx:] {
		res.Unassigned = append(res.Unassigned, r.Row)
	}
	if len(res.Unassigned) > 0 {
		s.log.Warnf("%d presentation(s) exceed the configured poster batches and were not assigned", len(res.Unassigned))
	}
	return res
}

func dayOf(t time.Time) time.Time {
	if t.IsZero() {
		return DefaultBaseDate
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DefaultBaseDate is day zero when the caller provides none.
var DefaultBaseDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
