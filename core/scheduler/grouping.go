package scheduler

import (
	"math/rand"

	"github.com/kilianp07/confsched/core/model"
)

// Grouper splits the records of one track into ordered sessions of at most
// capacity records. Every record lands in exactly one session and no session
// is empty.
type Grouper interface {
	Name() string
	Group(recs []model.Presentation, capacity int) [][]model.Presentation
}

// ThemeGrouper keeps each session to a single theme. A theme block is cut
// into full sessions followed by at most one partial session.
type ThemeGrouper struct{}

func (ThemeGrouper) Name() string { return "theme" }

func (ThemeGrouper) Group(recs []model.Presentation, capacity int) [][]model.Presentation {
	var out [][]model.Presentation
	for _, g := range groupByTheme(recs) {
		out = append(out, chunk(g, capacity)...)
	}
	return out
}

// MixedGrouper keeps large themes together and pools the small ones.
// Themes with at least capacity records are grouped as ThemeGrouper does.
// The remaining records are shuffled with a fixed seed and re-chunked, so
// repeated runs produce the same sessions.
type MixedGrouper struct {
	Seed int64 `json:"seed"`
}

func (MixedGrouper) Name() string { return "mixed" }

func (g MixedGrouper) Group(recs []model.Presentation, capacity int) [][]model.Presentation {
	var out [][]model.Presentation
	var pool []model.Presentation
	for _, grp := range groupByTheme(recs) {
		if capacity > 0 && len(grp) >= capacity {
			out = append(out, chunk(grp, capacity)...)
			continue
		}
		pool = append(pool, grp...)
	}
	rng := rand.New(rand.NewSource(g.Seed))
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return append(out, chunk(pool, capacity)...)
}

// SequentialGrouper ignores themes and cuts the track in record order.
type SequentialGrouper struct{}

func (SequentialGrouper) Name() string { return "sequential" }

func (SequentialGrouper) Group(recs []model.Presentation, capacity int) [][]model.Presentation {
	return chunk(recs, capacity)
}

// groupByTheme buckets records by theme in order of first appearance.
// The buckets are fresh slices and may be modified by the caller.
func groupByTheme(recs []model.Presentation) [][]model.Presentation {
	idx := make(map[string]int)
	var groups [][]model.Presentation
	for _, r := range recs {
		i, ok := idx[r.Theme]
		if !ok {
			i = len(groups)
			idx[r.Theme] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], r)
	}
	return groups
}

// chunk cuts recs into consecutive slices of size. A non-positive size
// yields a single chunk.
func chunk(recs []model.Presentation, size int) [][]model.Presentation {
	if len(recs) == 0 {
		return nil
	}
	if size <= 0 {
		size = len(recs)
	}
	out := make([][]model.Presentation, 0, (len(recs)+size-1)/size)
	for start := 0; start < len(recs); start += size {
		end := min(start+size, len(recs))
		out = append(out, recs[start:end:end])
	}
	return out
}
