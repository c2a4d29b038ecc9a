package xlsx

import (
	"strconv"
	"unicode/utf8"

	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/a1"
	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/driver"
	"github.com/xuri/excelize/v2"
)

const (
	minColWidth = 8.43
	maxColWidth = 255
)

// SetFormat applies a cosmetic setting to a region. Cell styles are merged
// with whatever style each cell already has. Unknown keys are ignored.
func (d *Driver) SetFormat(sheet string, r driver.Region, key, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.hasSheet(sheet) {
		return driver.SheetNotFound(sheet)
	}

	var err error
	switch key {
	case driver.FormatBackground:
		err = d.restyle(sheet, r, func(s *excelize.Style) {
			if value == "" {
				s.Fill = excelize.Fill{}
				return
			}
			s.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{value}}
		})
	case driver.FormatFontWeight:
		err = d.restyle(sheet, r, func(s *excelize.Style) {
			if s.Font == nil {
				s.Font = &excelize.Font{}
			}
			s.Font.Bold = value == "bold"
		})
	case driver.FormatBorder:
		err = d.restyle(sheet, r, func(s *excelize.Style) {
			s.Border = nil
			if on, _ := strconv.ParseBool(value); on {
				for _, side := range []string{"left", "top", "right", "bottom"} {
					s.Border = append(s.Border, excelize.Border{Type: side, Color: "000000", Style: 1})
				}
			}
		})
	case driver.FormatWrap:
		err = d.restyle(sheet, r, func(s *excelize.Style) {
			if s.Alignment == nil {
				s.Alignment = &excelize.Alignment{}
			}
			s.Alignment.WrapText, _ = strconv.ParseBool(value)
		})
	case driver.FormatFrozenRows:
		err = d.freezeRows(sheet, value)
	case driver.FormatAutoResize:
		err = d.autoResize(sheet, r)
	default:
		return nil
	}
	if err != nil {
		return driver.NewStorageError("format", sheet, err)
	}
	return nil
}

// restyle rewrites the style of every cell in r. Cells sharing a style
// share the derived style as well.
func (d *Driver) restyle(sheet string, r driver.Region, edit func(*excelize.Style)) error {
	r = r.Clamp()
	derived := make(map[int]int)
	for row := r.StartRow; row < r.EndRow(); row++ {
		for col := r.StartCol; col < r.EndCol(); col++ {
			cell := a1.CellName(row, col)
			current, err := d.f.GetCellStyle(sheet, cell)
			if err != nil {
				return err
			}
			next, ok := derived[current]
			if !ok {
				style, err := d.f.GetStyle(current)
				if err != nil {
					return err
				}
				edit(style)
				if next, err = d.f.NewStyle(style); err != nil {
					return err
				}
				derived[current] = next
			}
			if err := d.f.SetCellStyle(sheet, cell, cell, next); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *Driver) freezeRows(sheet, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	if n <= 0 {
		return d.f.SetPanes(sheet, &excelize.Panes{Freeze: false, Split: false})
	}
	top := a1.CellName(n+1, 1)
	return d.f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      n,
		TopLeftCell: top,
		ActivePane:  "bottomLeft",
		Selection:   []excelize.Selection{{SQRef: top, ActiveCell: top, Pane: "bottomLeft"}},
	})
}

// autoResize sizes each column of r to its longest value.
func (d *Driver) autoResize(sheet string, r driver.Region) error {
	rows, err := d.f.GetRows(sheet)
	if err != nil {
		return err
	}
	for col := r.StartCol; col < r.EndCol(); col++ {
		width := minColWidth
		for _, row := range rows {
			if col-1 < len(row) {
				width = max(width, float64(utf8.RuneCountInString(row[col-1]))+2)
			}
		}
		name := a1.IndexToColumn(col)
		if err := d.f.SetColWidth(sheet, name, name, min(width, maxColWidth)); err != nil {
			return err
		}
	}
	return nil
}
