package scheduler

import (
	"math"
	"slices"
	"strings"

	"github.com/kilianp07/confsched/core/model"
)

// SortByTheme returns a copy of recs ordered by theme. Records sharing a
// theme keep their input order.
func SortByTheme(recs []model.Presentation) []model.Presentation {
	sorted := slices.Clone(recs)
	slices.SortStableFunc(sorted, func(a, b model.Presentation) int {
		return strings.Compare(a.Theme, b.Theme)
	})
	return sorted
}

// Boundaries returns the n+1 split indices round(i*total/n). Halves round to
// even, so consecutive chunk sizes never differ by more than one.
func Boundaries(total, n int) []int {
	b := make([]int, n+1)
	for i := range b {
		b[i] = int(math.RoundToEven(float64(i*total) / float64(n)))
	}
	return b
}

// Partition sorts recs by theme and cuts them into n contiguous chunks.
// Chunks may be empty when n exceeds the record count.
func Partition(recs []model.Presentation, n int) [][]model.Presentation {
	if n < 1 {
		n = 1
	}
	sorted := SortByTheme(recs)
	bounds := Boundaries(len(sorted), n)
	chunks := make([][]model.Presentation, n)
	for i := 0; i < n; i++ {
		chunks[i] = sorted[bounds[i]:bounds[i+1]]
	}
	return chunks
}
