// Package tabular reads submission tables and writes published schedules.
// It is the file boundary of the tool: the scheduling core only ever sees
// assemble.Table values.
package tabular

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/kilianp07/confsched/core/assemble"
)

// ErrUnsupportedFormat is returned for unknown or read-only formats.
var ErrUnsupportedFormat = errors.New("unsupported table format")

// Format is a table encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// ResolveFormat returns override when set, otherwise the format implied by
// the file extension.
func ResolveFormat(path, override string) (Format, error) {
	name := strings.ToLower(override)
	if name == "" {
		name = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	switch name {
	case "csv", "txt":
		return FormatCSV, nil
	case "xlsx", "xlsm":
		return FormatXLSX, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// ReadFile loads a table from fs. sheet selects the worksheet of a workbook;
// empty means the first one.
func ReadFile(fs afero.Fs, path string, format Format, sheet string) (assemble.Table, error) {
	f, err := fs.Open(path)
	if err != nil {
		return assemble.Table{}, err
	}
	defer func() { _ = f.Close() }()
	var t assemble.Table
	switch format {
	case FormatCSV:
		t, err = ReadCSV(f)
	case FormatXLSX:
		t, err = ReadXLSX(f, sheet)
	default:
		return assemble.Table{}, fmt.Errorf("%w for input: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return assemble.Table{}, fmt.Errorf("read %s: %w", path, err)
	}
	return t, nil
}

// Write encodes t to w in the given format.
func Write(w io.Writer, format Format, t assemble.Table, sheet string) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, t)
	case FormatXLSX:
		return WriteXLSX(w, t, sheet)
	case FormatJSON:
		return WriteJSON(w, t)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// WriteFile encodes t fully in memory before touching path, so a failed
// encode never leaves a partial file behind.
func WriteFile(fs afero.Fs, path string, format Format, t assemble.Table, sheet string) error {
	var buf bytes.Buffer
	if err := Write(&buf, format, t, sheet); err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return afero.WriteFile(fs, path, buf.Bytes(), 0o644)
}
