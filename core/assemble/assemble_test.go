package assemble

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/confsched/core/model"
)

func submissions() Table {
	return Table{
		Header: []string{"Faculty Mentor", "Title", "Theme", "Presenter(s)", "Notes"},
		Rows: [][]string{
			{"Dr. Lee", "Cells", "Bio ", "Ana", "x"},
			{"Dr. Kim", "Graphs", "CS", "Ben"},
			{"", "", "", "", "note only"},
			{"Dr. Lee", "Enzymes", "Bio", "Cara, Dan", ""},
		},
	}
}

func TestValidateMissingColumns(t *testing.T) {
	tbl := Table{Header: []string{"Title", "theme", "Presenters"}}
	err := Validate(tbl, model.ThemeSchema)
	var mc *MissingColumnsError
	require.True(t, errors.As(err, &mc))
	assert.Equal(t, []string{"Theme", "Presenter(s)", "Faculty Mentor"}, mc.Columns)
	assert.Contains(t, err.Error(), "Theme, Presenter(s), Faculty Mentor")

	_, err = Extract(tbl, model.ThemeSchema)
	assert.True(t, errors.As(err, &mc))
}

func TestValidateLegacy(t *testing.T) {
	tbl := Table{Header: []string{"Major", "Presenters", "Faculty Mentor", "Title"}}
	assert.NoError(t, Validate(tbl, model.LegacySchema))
	assert.Error(t, Validate(tbl, model.ThemeSchema))
}

func TestExtract(t *testing.T) {
	recs, err := Extract(submissions(), model.ThemeSchema)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, model.Presentation{Row: 0, Theme: "Bio", Title: "Cells", Presenters: "Ana", FacultyMentor: "Dr. Lee"}, recs[0])
	assert.Equal(t, 1, recs[1].Row)
	assert.Equal(t, 3, recs[2].Row)
	assert.Equal(t, "Cara, Dan", recs[2].Presenters)
}

func TestExtractEmptyTable(t *testing.T) {
	recs, err := Extract(Table{Header: model.ThemeSchema.Required()}, model.ThemeSchema)
	require.NoError(t, err)
	assert.Empty(t, recs)

	out := Merge(Table{Header: model.ThemeSchema.Required()}, model.ThemeSchema, nil, Options{})
	assert.Equal(t, model.ThemeSchema.OutputColumns(), out.Header)
	assert.Empty(t, out.Rows)
}

func TestMerge(t *testing.T) {
	day := time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC)
	asn := map[int]model.Assignment{
		0: {Track: "Section 1", SessionID: 2, Slot: day.Add(9*time.Hour + 15*time.Minute)},
		3: {Track: "Section 1", SessionID: 1, Slot: day.Add(13 * time.Hour)},
	}
	in := submissions()
	out := Merge(in, model.ThemeSchema, asn, Options{})

	assert.Equal(t, []string{"Section", "Session ID", "Time Slot", "Theme", "Title", "Presenter(s)", "Faculty Mentor"}, out.Header)
	require.Len(t, out.Rows, 3)
	assert.Equal(t, []string{"Section 1", "2", "09:15 AM", "Bio", "Cells", "Ana", "Dr. Lee"}, out.Rows[0])
	assert.Equal(t, []string{"", "", "", "CS", "Graphs", "Ben", "Dr. Kim"}, out.Rows[1])
	assert.Equal(t, []string{"Section 1", "1", "01:00 PM", "Bio", "Enzymes", "Cara, Dan", "Dr. Lee"}, out.Rows[2])
	// input untouched
	assert.Equal(t, "Bio ", in.Rows[0][2])
	assert.Len(t, in.Header, 5)
}

func TestMergeSorted(t *testing.T) {
	day := time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC)
	tbl := Table{
		Header: model.LegacySchema.Required(),
		Rows: [][]string{
			{"Bio", "A", "Dr", "t0"},
			{"Bio", "B", "Dr", "t1"},
			{"CS", "C", "Dr", "t2"},
			{"CS", "D", "Dr", "t3"},
			{"CS", "E", "Dr", "t4"},
		},
	}
	asn := map[int]model.Assignment{
		0: {Track: "West", SessionID: 1, Slot: day.Add(10 * time.Hour)},
		1: {Track: "East", SessionID: 2, Slot: day.Add(9 * time.Hour)},
		2: {Track: "East", SessionID: 1, Slot: day.Add(9*time.Hour + 15*time.Minute)},
		4: {Track: "East", SessionID: 1, Slot: day.Add(9 * time.Hour)},
	}
	out := Merge(tbl, model.LegacySchema, asn, Options{SortBySession: true, TrackOrder: []string{"East", "West"}})
	var titles []string
	for _, r := range out.Rows {
		titles = append(titles, r[4])
	}
	assert.Equal(t, []string{"t4", "t2", "t1", "t0", "t3"}, titles)
	assert.Equal(t, "Session", out.Header[0])
	assert.Equal(t, "Major", out.Header[3])
}
