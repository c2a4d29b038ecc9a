package sheetdb

import (
	"fmt"
	"strconv"

	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/a1"
	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/driver"
)

// Range is a rectangular view into a sheet. It owns no data.
type Range struct {
	sheet  *Sheet
	region driver.Region
}

// Sheet returns the sheet the range belongs to.
func (r *Range) Sheet() *Sheet {
	return r.sheet
}

// Region returns the addressed rectangle.
func (r *Range) Region() driver.Region {
	return r.region
}

// Row returns the first row.
func (r *Range) Row() int { return r.region.StartRow }

// Column returns the first column.
func (r *Range) Column() int { return r.region.StartCol }

// NumRows returns the number of rows.
func (r *Range) NumRows() int { return r.region.NumRows }

// NumColumns returns the number of columns.
func (r *Range) NumColumns() int { return r.region.NumCols }

// LastRow returns the last row covered by the range.
func (r *Range) LastRow() int { return r.region.StartRow + r.region.NumRows - 1 }

// LastColumn returns the last column covered by the range.
func (r *Range) LastColumn() int { return r.region.StartCol + r.region.NumCols - 1 }

// A1Notation returns the range in A1 notation.
func (r *Range) A1Notation() string {
	return a1.Format(r.region.StartRow, r.region.StartCol, r.region.NumRows, r.region.NumCols)
}

// Values returns the range's values; empty cells read as "".
func (r *Range) Values() ([][]any, error) {
	return r.driver().Read(r.sheet.name, r.region)
}

// SetValues replaces the range's values. values must have exactly as many
// rows as the range, and its first row as many columns.
func (r *Range) SetValues(values [][]any) error {
	gotCols := r.region.NumCols
	if len(values) > 0 {
		gotCols = len(values[0])
	}
	if len(values) != r.region.NumRows || gotCols != r.region.NumCols {
		return &DimensionError{
			Range:    r.A1Notation(),
			WantRows: r.region.NumRows,
			WantCols: r.region.NumCols,
			GotRows:  len(values),
			GotCols:  gotCols,
		}
	}
	return r.driver().Write(r.sheet.name, r.region.StartRow, r.region.StartCol, values)
}

// SetValue writes v to the range's top-left cell.
func (r *Range) SetValue(v any) error {
	if r.sheet.client.opts.StrictSetValue && (r.region.NumRows != 1 || r.region.NumCols != 1) {
		return &DimensionError{
			Range:    r.A1Notation(),
			WantRows: r.region.NumRows,
			WantCols: r.region.NumCols,
			GotRows:  1,
			GotCols:  1,
		}
	}
	return r.driver().Write(r.sheet.name, r.region.StartRow, r.region.StartCol, [][]any{{v}})
}

// Clear removes every value in the range.
func (r *Range) Clear() error {
	return r.driver().Clear(r.sheet.name, r.region)
}

// SetBackground sets the fill color, e.g. "#ffff00". "" removes it.
func (r *Range) SetBackground(color string) error {
	return r.sheet.format(r.region, driver.FormatBackground, color)
}

// SetFontWeight sets the font weight, "bold" or "normal".
func (r *Range) SetFontWeight(weight string) error {
	if weight != "bold" && weight != "normal" {
		return fmt.Errorf("font weight must be bold or normal, got %q", weight)
	}
	return r.sheet.format(r.region, driver.FormatFontWeight, weight)
}

// SetBorder draws or removes a thin border around every cell.
func (r *Range) SetBorder(on bool) error {
	return r.sheet.format(r.region, driver.FormatBorder, strconv.FormatBool(on))
}

// SetWrap turns text wrapping on or off.
func (r *Range) SetWrap(on bool) error {
	return r.sheet.format(r.region, driver.FormatWrap, strconv.FormatBool(on))
}

func (r *Range) driver() driver.Driver {
	return r.sheet.client.driver
}
