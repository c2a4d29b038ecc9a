package xlsx

import (
	"fmt"

	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/a1"
	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/driver"
	"github.com/xuri/excelize/v2"
)

// Read returns the values inside r.
func (d *Driver) Read(sheet string, r driver.Region) ([][]any, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.hasSheet(sheet) {
		return nil, driver.SheetNotFound(sheet)
	}
	r = r.Clamp()
	result := driver.NewGrid(r.NumRows, r.NumCols)
	if r.Empty() {
		return result, nil
	}

	rows, err := d.f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, driver.NewStorageError("read", sheet, err)
	}
	for i := range r.NumRows {
		rowIdx := r.StartRow - 1 + i
		if rowIdx >= len(rows) {
			break
		}
		row := rows[rowIdx]
		for j := range r.NumCols {
			colIdx := r.StartCol - 1 + j
			if colIdx >= len(row) || row[colIdx] == "" {
				continue
			}
			v, err := d.cellValue(sheet, rowIdx+1, colIdx+1, row[colIdx])
			if err != nil {
				return nil, driver.NewStorageError("read", sheet, err)
			}
			result[i][j] = v
		}
	}
	return result, nil
}

// cellValue types a raw cell value by the cell's stored type.
func (d *Driver) cellValue(sheet string, row, col int, raw string) (any, error) {
	typ, err := d.f.GetCellType(sheet, a1.CellName(row, col))
	if err != nil {
		return nil, err
	}
	switch typ {
	case excelize.CellTypeBool:
		return raw == "1" || raw == "TRUE" || raw == "true", nil
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		return driver.ParseNumber(raw), nil
	default:
		return raw, nil
	}
}

// Write sets values with the top-left corner at (row, col). Every value is
// checked before the workbook is touched, so a rejected call changes nothing.
func (d *Driver) Write(sheet string, row, col int, values [][]any) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.hasSheet(sheet) {
		return driver.SheetNotFound(sheet)
	}

	type pending struct {
		cell  string
		value any
	}
	var batch []pending
	for i, rowValues := range values {
		for j, v := range rowValues {
			cell, err := excelize.CoordinatesToCellName(col+j, row+i)
			if err != nil {
				return fmt.Errorf("write %s: %w", sheet, err)
			}
			v, err = cellInput(v)
			if err != nil {
				return fmt.Errorf("write %s at %s: %w", sheet, cell, err)
			}
			batch = append(batch, pending{cell: cell, value: v})
		}
	}

	for _, p := range batch {
		if err := d.f.SetCellValue(sheet, p.cell, p.value); err != nil {
			return driver.NewStorageError("write", sheet, err)
		}
	}
	d.logger.Debug("wrote cells", "sheet", sheet, "row", row, "col", col, "cells", len(batch))
	return nil
}

// cellInput converts a cell value into something excelize stores natively.
// Blank strings become empty cells and composite values are stored as JSON.
func cellInput(v any) (any, error) {
	switch t := v.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		if driver.IsBlank(t) {
			return nil, nil
		}
		return t, nil
	default:
		text, err := driver.EncodeValue(v)
		if err != nil {
			return nil, err
		}
		return text, nil
	}
}

// Clear empties every cell inside r.
func (d *Driver) Clear(sheet string, r driver.Region) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.hasSheet(sheet) {
		return nil
	}
	r = r.Clamp()
	if r.Empty() {
		return nil
	}

	lastRow, lastCol, err := d.boundsLocked(sheet)
	if err != nil {
		return err
	}
	endRow := min(r.EndRow(), lastRow+1)
	endCol := min(r.EndCol(), lastCol+1)
	for row := r.StartRow; row < endRow; row++ {
		for col := r.StartCol; col < endCol; col++ {
			if err := d.f.SetCellValue(sheet, a1.CellName(row, col), nil); err != nil {
				return driver.NewStorageError("clear", sheet, err)
			}
		}
	}
	return nil
}

// LastRow returns the highest row holding a value, or 0.
func (d *Driver) LastRow(sheet string) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.hasSheet(sheet) {
		return 0, nil
	}
	row, _, err := d.boundsLocked(sheet)
	return row, err
}

// LastColumn returns the highest column holding a value, or 0.
func (d *Driver) LastColumn(sheet string) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.hasSheet(sheet) {
		return 0, nil
	}
	_, col, err := d.boundsLocked(sheet)
	return col, err
}

func (d *Driver) boundsLocked(sheet string) (lastRow, lastCol int, err error) {
	rows, err := d.f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return 0, 0, driver.NewStorageError("bounds", sheet, err)
	}
	maxRow, maxCol := findDataBounds(rows)
	return maxRow + 1, maxCol + 1, nil
}

// findDataBounds finds the zero-based last row and column holding a
// non-empty value, or -1 when there is none.
func findDataBounds(rows [][]string) (maxRow, maxCol int) {
	maxRow, maxCol = -1, -1
	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell == "" {
				continue
			}
			maxRow = max(maxRow, rowIdx)
			maxCol = max(maxCol, colIdx)
		}
	}
	return
}
