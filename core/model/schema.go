package model

import "fmt"

// Output column headers shared by every schema.
const (
	ColSessionID     = "Session ID"
	ColTimeSlot      = "Time Slot"
	ColTitle         = "Title"
	ColPresenters    = "Presenter(s)"
	ColFacultyMentor = "Faculty Mentor"
)

// Schema maps the columns of an input table onto presentation fields and
// names the variable headers of the published table.
type Schema struct {
	Name string

	Theme         string
	Title         string
	Presenters    string
	FacultyMentor string

	TrackHeader string
	ThemeHeader string
}

var (
	// ThemeSchema is the current submission format.
	ThemeSchema = Schema{
		Name:          "theme",
		Theme:         "Theme",
		Title:         ColTitle,
		Presenters:    ColPresenters,
		FacultyMentor: ColFacultyMentor,
		TrackHeader:   "Section",
		ThemeHeader:   "Theme",
	}
	// LegacySchema is the older export that groups by major.
	LegacySchema = Schema{
		Name:          "legacy",
		Theme:         "Major",
		Title:         ColTitle,
		Presenters:    "Presenters",
		FacultyMentor: ColFacultyMentor,
		TrackHeader:   "Session",
		ThemeHeader:   "Major",
	}
)

// SchemaByName returns the schema registered under name. An empty name
// selects ThemeSchema.
func SchemaByName(name string) (Schema, error) {
	switch name {
	case "", ThemeSchema.Name:
		return ThemeSchema, nil
	case LegacySchema.Name:
		return LegacySchema, nil
	}
	return Schema{}, fmt.Errorf("unknown schema %q", name)
}

// Required lists the input columns that must be present, in the order they
// are reported when missing.
func (s Schema) Required() []string {
	if s.Name == LegacySchema.Name {
		return []string{s.Theme, s.Presenters, s.FacultyMentor, s.Title}
	}
	return []string{s.Theme, s.Title, s.Presenters, s.FacultyMentor}
}

// OutputColumns is the published column order.
func (s Schema) OutputColumns() []string {
	return []string{s.TrackHeader, ColSessionID, ColTimeSlot, s.ThemeHeader, ColTitle, ColPresenters, ColFacultyMentor}
}
