package transfer

import (
	"strconv"

	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/a1"
	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/driver"
	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/models"
)

// Snapshot reads every sheet of src into a WorkbookData.
func Snapshot(src driver.Driver, bookName string, opts Options) (*models.WorkbookData, error) {
	names, err := src.SheetNames()
	if err != nil {
		return nil, err
	}

	wb := &models.WorkbookData{
		BookName:   bookName,
		SheetOrder: names,
		Sheets:     make(map[string]models.SheetData, len(names)),
	}
	for _, name := range names {
		sheet, err := SnapshotSheet(src, name, opts)
		if err != nil {
			return nil, err
		}
		wb.Sheets[name] = *sheet
	}
	return wb, nil
}

// SnapshotSheet reads a single sheet of src.
func SnapshotSheet(src driver.Driver, name string, opts Options) (*models.SheetData, error) {
	grid, lastRow, lastCol, err := readAll(src, name)
	if err != nil {
		return nil, err
	}

	sheet := &models.SheetData{
		Name:       name,
		DataRange:  a1.Format(1, 1, max(lastRow, 1), max(lastCol, 1)),
		LastRow:    lastRow,
		LastColumn: lastCol,
		Rows:       cellRows(grid),
	}
	if opts.DetectTables {
		sheet.TableCandidates = DetectTables(grid, opts.tableParams())
	}
	return sheet, nil
}

// readAll reads the sheet from A1 to its last occupied cell.
func readAll(src driver.Driver, name string) (grid [][]any, lastRow, lastCol int, err error) {
	if lastRow, err = src.LastRow(name); err != nil {
		return nil, 0, 0, err
	}
	if lastCol, err = src.LastColumn(name); err != nil {
		return nil, 0, 0, err
	}
	if lastRow == 0 || lastCol == 0 {
		return nil, lastRow, lastCol, nil
	}
	grid, err = src.Read(name, driver.Region{StartRow: 1, StartCol: 1, NumRows: lastRow, NumCols: lastCol})
	if err != nil {
		return nil, 0, 0, err
	}
	return grid, lastRow, lastCol, nil
}

// cellRows converts a grid starting at A1 into its non-empty rows.
func cellRows(grid [][]any) []models.CellRow {
	var result []models.CellRow
	for rowIdx, row := range grid {
		cells := make(map[string]any)
		for colIdx, v := range row {
			if driver.IsBlank(v) {
				continue
			}
			cells[strconv.Itoa(colIdx+1)] = v
		}
		if len(cells) > 0 {
			result = append(result, models.CellRow{R: rowIdx + 1, C: cells})
		}
	}
	return result
}
