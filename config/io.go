package config

import "github.com/kilianp07/confsched/core/model"

// IOConfig locates the submissions file and the published schedule.
type IOConfig struct {
	Input string `json:"input"`
	// InputFormat overrides the format implied by the input extension.
	InputFormat string `json:"input_format"`
	Output      string `json:"output"`
	// Format overrides the format implied by the output extension.
	Format string `json:"format"`
	// Sheet selects the worksheet to read and names the one written.
	Sheet string `json:"sheet"`
	// Schema is "theme" or "legacy".
	Schema string `json:"schema"`
	// SortOutput orders published rows by track, session and slot.
	SortOutput bool `json:"sort_output"`
}

// Validate checks the schema name.
func (c IOConfig) Validate() error {
	_, err := model.SchemaByName(c.Schema)
	return err
}
