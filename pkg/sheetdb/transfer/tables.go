package transfer

import (
	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/a1"
	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/driver"
)

// TableParams holds parameters for table detection.
type TableParams struct {
	DensityMin       float64
	MinNonemptyCells int
}

// DefaultTableParams returns default table detection parameters.
func DefaultTableParams() TableParams {
	return TableParams{
		DensityMin:       0.04,
		MinNonemptyCells: 3,
	}
}

// DetectTables returns the bounding range of the non-empty cells in grid
// when it is dense enough to look like a table. grid starts at A1.
func DetectTables(grid [][]any, params TableParams) []string {
	minRow, maxRow, minCol, maxCol := findDataBounds(grid)
	if minRow < 0 {
		return nil
	}

	nonEmpty := countNonEmptyCells(grid, minRow, maxRow, minCol, maxCol)
	if nonEmpty < params.MinNonemptyCells {
		return nil
	}
	total := (maxRow - minRow + 1) * (maxCol - minCol + 1)
	if float64(nonEmpty)/float64(total) < params.DensityMin {
		return nil
	}

	return []string{a1.Format(minRow+1, minCol+1, maxRow-minRow+1, maxCol-minCol+1)}
}

// findDataBounds finds the zero-based bounding box of non-empty cells.
// All four results are -1 when the grid is blank.
func findDataBounds(grid [][]any) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range grid {
		for colIdx, cell := range row {
			if driver.IsBlank(cell) {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			maxRow = max(maxRow, rowIdx)
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			maxCol = max(maxCol, colIdx)
		}
	}
	return
}

func countNonEmptyCells(grid [][]any, minRow, maxRow, minCol, maxCol int) int {
	count := 0
	for rowIdx := minRow; rowIdx <= maxRow && rowIdx < len(grid); rowIdx++ {
		row := grid[rowIdx]
		for colIdx := minCol; colIdx <= maxCol && colIdx < len(row); colIdx++ {
			if !driver.IsBlank(row[colIdx]) {
				count++
			}
		}
	}
	return count
}
