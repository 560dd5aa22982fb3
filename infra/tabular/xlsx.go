package tabular

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/kilianp07/confsched/core/assemble"
)

// DefaultSheet names the worksheet of exported workbooks.
const DefaultSheet = "Schedule"

// ReadXLSX loads one worksheet. The first row is the header.
func ReadXLSX(r io.Reader, sheet string) (assemble.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return assemble.Table{}, err
	}
	defer func() { _ = f.Close() }()
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return assemble.Table{}, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return assemble.Table{}, fmt.Errorf("sheet %q not found", sheet)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return assemble.Table{}, err
	}
	if len(rows) == 0 {
		return assemble.Table{}, nil
	}
	return assemble.Table{Header: rows[0], Rows: rows[1:]}, nil
}

// WriteXLSX writes t to a single-sheet workbook.
func WriteXLSX(w io.Writer, t assemble.Table, sheet string) error {
	if sheet == "" {
		sheet = DefaultSheet
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	all := append([][]string{t.Header}, t.Rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return f.Write(w)
}
