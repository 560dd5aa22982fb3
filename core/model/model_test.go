package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in   string
		want TimeOfDay
	}{
		{"09:00", TimeOfDay{9, 0}},
		{"9:05", TimeOfDay{9, 5}},
		{"17:30:00", TimeOfDay{17, 30}},
		{"09:00 AM", TimeOfDay{9, 0}},
		{"9:00 am", TimeOfDay{9, 0}},
		{"12:00 PM", TimeOfDay{12, 0}},
		{"12:15 AM", TimeOfDay{0, 15}},
		{"01:45PM", TimeOfDay{13, 45}},
		{" 3 PM ", TimeOfDay{15, 0}},
	}
	for _, c := range cases {
		got, err := ParseTimeOfDay(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestParseTimeOfDayInvalid(t *testing.T) {
	for _, in := range []string{"", "noon", "25:00", "9:75"} {
		_, err := ParseTimeOfDay(in)
		assert.True(t, errors.Is(err, ErrInvalidTimeOfDay), in)
	}
}

func TestTimeOfDayOnAndFormat(t *testing.T) {
	day := time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC)
	ts := MustTimeOfDay("13:05").On(day)
	assert.Equal(t, time.Date(2025, 4, 12, 13, 5, 0, 0, time.UTC), ts)
	assert.Equal(t, "01:05 PM", FormatSlot(ts))
	assert.Equal(t, "09:00 AM", Assignment{Slot: MustTimeOfDay("9:00").On(day)}.TimeSlot())
}

func TestTimeOfDayText(t *testing.T) {
	var tod TimeOfDay
	require.NoError(t, tod.UnmarshalText([]byte("2:30 PM")))
	b, err := tod.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "14:30", string(b))
	assert.Error(t, tod.UnmarshalText([]byte("later")))
}

func TestSchemas(t *testing.T) {
	s, err := SchemaByName("")
	require.NoError(t, err)
	assert.Equal(t, []string{"Theme", "Title", "Presenter(s)", "Faculty Mentor"}, s.Required())
	assert.Equal(t, []string{"Section", "Session ID", "Time Slot", "Theme", "Title", "Presenter(s)", "Faculty Mentor"}, s.OutputColumns())

	l, err := SchemaByName("legacy")
	require.NoError(t, err)
	assert.Equal(t, []string{"Major", "Presenters", "Faculty Mentor", "Title"}, l.Required())
	assert.Equal(t, "Session", l.OutputColumns()[0])
	assert.Equal(t, "Major", l.OutputColumns()[3])

	_, err = SchemaByName("xml")
	assert.Error(t, err)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("poster")
	require.NoError(t, err)
	assert.Equal(t, ModePoster, m)
	_, err = ParseMode("workshop")
	assert.Error(t, err)
}
