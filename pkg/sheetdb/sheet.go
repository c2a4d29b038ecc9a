package sheetdb

import (
	"fmt"
	"strconv"

	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/a1"
	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/driver"
)

// Sheet is a view of one named sheet.
type Sheet struct {
	client *Client
	name   string
}

// Name returns the sheet name.
func (s *Sheet) Name() string {
	return s.name
}

// Range resolves ref against the sheet. Notation that leaves rows or
// columns open ("B:B", "1:1") extends to the sheet's current last row or
// column.
func (s *Sheet) Range(ref RangeRef) (*Range, error) {
	switch ref.Kind {
	case RefNotation:
		return s.rangeByNotation(ref.Notation)
	case RefCoordinates:
		if ref.Row < 1 || ref.Col < 1 {
			return nil, fmt.Errorf("%w: got row %d, column %d", ErrInvalidCoordinates, ref.Row, ref.Col)
		}
		return s.newRange(ref.Row, ref.Col, ref.NumRows, ref.NumCols), nil
	default:
		return nil, fmt.Errorf("unknown range reference kind %d", ref.Kind)
	}
}

// RangeA1 is shorthand for Range(ByNotation(text)).
func (s *Sheet) RangeA1(text string) (*Range, error) {
	return s.Range(ByNotation(text))
}

// RangeAt is shorthand for Range(ByCoordinates(row, col, numRows, numCols)).
func (s *Sheet) RangeAt(row, col, numRows, numCols int) (*Range, error) {
	return s.Range(ByCoordinates(row, col, numRows, numCols))
}

func (s *Sheet) rangeByNotation(text string) (*Range, error) {
	p, err := a1.Parse(text)
	if err != nil {
		return nil, err
	}

	var numRows, numCols int
	if p.NumRows != nil {
		numRows = *p.NumRows
	} else {
		last, err := s.LastRow()
		if err != nil {
			return nil, err
		}
		numRows = last - p.StartRow + 1
	}
	if p.NumCols != nil {
		numCols = *p.NumCols
	} else {
		last, err := s.LastColumn()
		if err != nil {
			return nil, err
		}
		numCols = last - p.StartCol + 1
	}
	return s.newRange(p.StartRow, p.StartCol, numRows, numCols), nil
}

func (s *Sheet) newRange(row, col, numRows, numCols int) *Range {
	return &Range{
		sheet: s,
		region: driver.Region{
			StartRow: row,
			StartCol: col,
			NumRows:  max(numRows, 0),
			NumCols:  max(numCols, 0),
		},
	}
}

// LastRow returns the highest occupied row, or 0 for an empty sheet.
func (s *Sheet) LastRow() (int, error) {
	return s.client.driver.LastRow(s.name)
}

// LastColumn returns the highest occupied column, or 0 for an empty sheet.
func (s *Sheet) LastColumn() (int, error) {
	return s.client.driver.LastColumn(s.name)
}

// AppendRow writes values as a new row below the last occupied row.
func (s *Sheet) AppendRow(values []any) error {
	last, err := s.LastRow()
	if err != nil {
		return err
	}
	return s.client.driver.Write(s.name, last+1, 1, [][]any{values})
}

// Clear removes every value on the sheet. The sheet itself remains.
func (s *Sheet) Clear() error {
	lastRow, lastCol, err := s.bounds()
	if err != nil {
		return err
	}
	if lastRow == 0 || lastCol == 0 {
		return nil
	}
	return s.client.driver.Clear(s.name, driver.Region{StartRow: 1, StartCol: 1, NumRows: lastRow, NumCols: lastCol})
}

// DataRange returns the range from A1 to the last occupied cell. An empty
// sheet yields A1.
func (s *Sheet) DataRange() (*Range, error) {
	lastRow, lastCol, err := s.bounds()
	if err != nil {
		return nil, err
	}
	return s.newRange(1, 1, max(lastRow, 1), max(lastCol, 1)), nil
}

// SetFrozenRows freezes the top n rows where the driver supports it.
func (s *Sheet) SetFrozenRows(n int) error {
	r := driver.Region{StartRow: 1, StartCol: 1, NumRows: max(n, 0)}
	return s.format(r, driver.FormatFrozenRows, strconv.Itoa(max(n, 0)))
}

// AutoResizeColumns fits the width of num columns starting at start to
// their contents where the driver supports it.
func (s *Sheet) AutoResizeColumns(start, num int) error {
	lastRow, err := s.LastRow()
	if err != nil {
		return err
	}
	r := driver.Region{StartRow: 1, StartCol: start, NumRows: lastRow, NumCols: max(num, 0)}
	return s.format(r, driver.FormatAutoResize, "true")
}

func (s *Sheet) bounds() (lastRow, lastCol int, err error) {
	if lastRow, err = s.LastRow(); err != nil {
		return 0, 0, err
	}
	if lastCol, err = s.LastColumn(); err != nil {
		return 0, 0, err
	}
	return lastRow, lastCol, nil
}

// format forwards a cosmetic setting to drivers that record formats and
// drops it otherwise.
func (s *Sheet) format(r driver.Region, key, value string) error {
	f, ok := s.client.driver.(driver.Formatter)
	if !ok {
		s.client.logger.Debug("format ignored by driver", "sheet", s.name, "key", key)
		return nil
	}
	return f.SetFormat(s.name, r, key, value)
}
