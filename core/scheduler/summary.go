package scheduler

import (
	"gonum.org/v1/gonum/stat"
)

// TrackSummary describes the load of one track.
type TrackSummary struct {
	Name      string `json:"name"`
	Records   int    `json:"records"`
	Sessions  int    `json:"sessions"`
	Rollovers int    `json:"rollovers"`
	Days      int    `json:"days"`
}

// Summary aggregates a run.
type Summary struct {
	Tracks     int            `json:"tracks"`
	Records    int            `json:"records"`
	Scheduled  int            `json:"scheduled"`
	Unassigned int            `json:"unassigned"`
	Sessions   int            `json:"sessions"`
	Rollovers  int            `json:"rollovers"`
	Days       int            `json:"days"`
	MeanSize   float64        `json:"mean_session_size"`
	StdDevSize float64        `json:"stddev_session_size"`
	PerTrack   []TrackSummary `json:"per_track"`
}

func summarize(p Params, res *Result, total int) Summary {
	sum := Summary{
		Tracks:     len(p.Tracks),
		Records:    total,
		Scheduled:  len(res.Assignments),
		Unassigned: len(res.Unassigned),
		Sessions:   len(res.Placements),
	}
	byTrack := make(map[string]*TrackSummary, len(p.Tracks))
	for _, w := range p.Tracks {
		ts := TrackSummary{Name: w.Name}
		sum.PerTrack = append(sum.PerTrack, ts)
	}
	for i := range sum.PerTrack {
		byTrack[sum.PerTrack[i].Name] = &sum.PerTrack[i]
	}
	sizes := make([]float64, 0, len(res.Placements))
	for _, pl := range res.Placements {
		sizes = append(sizes, float64(len(pl.Records)))
		ts := byTrack[pl.Track]
		ts.Records += len(pl.Records)
		ts.Sessions++
		if pl.RolledOver {
			ts.Rollovers++
		}
		ts.Days = max(ts.Days, pl.Day+1)
	}
	for _, ts := range sum.PerTrack {
		sum.Rollovers += ts.Rollovers
		sum.Days = max(sum.Days, ts.Days)
	}
	switch len(sizes) {
	case 0:
	case 1:
		sum.MeanSize = sizes[0]
	default:
		sum.MeanSize, sum.StdDevSize = stat.MeanStdDev(sizes, nil)
	}
	return sum
}
