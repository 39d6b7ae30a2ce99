package catalog

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// AppendRow adds a manually created task to the plan workbook so the catalog
// stays the source of truth for future rotations. An absent workbook is a
// no-op. The documentation column is left blank, matching the manual-entry
// form.
func AppendRow(path, sheet string, r Row) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("open plan workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("sheet %q has no header row", sheet)
	}

	header := rows[0]
	newRow := make([]interface{}, len(header))
	setCol := func(field string, value string) {
		for i, h := range header {
			if normalizeHeader(h) == field {
				newRow[i] = value
				return
			}
		}
	}

	setCol(colLine, r.Line)
	setCol(colMachine, r.Machine)
	setCol(colTask, r.Description)
	setCol(colTaskPlain, r.Description)
	setCol(colFrequency, r.Frequency)
	setCol(colRoleHint, r.RoleHint)

	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &newRow); err != nil {
		return fmt.Errorf("append plan row: %w", err)
	}
	return f.Save()
}
