package xlsx

import (
	"fmt"

	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/driver"
)

// SheetNames lists the sheets in workbook order.
func (d *Driver) SheetNames() ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.f.GetSheetList(), nil
}

// SheetCount returns the number of sheets.
func (d *Driver) SheetCount() (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.f.GetSheetList()), nil
}

// CreateSheet adds a sheet at the 1-based position; 0 appends. Existing
// sheets are left untouched.
func (d *Driver) CreateSheet(name string, position int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.hasSheet(name) {
		return nil
	}
	before := d.f.GetSheetList()
	if _, err := d.f.NewSheet(name); err != nil {
		return driver.NewStorageError("create", name, err)
	}
	if position > 0 && position <= len(before) {
		if err := d.f.MoveSheet(name, before[position-1]); err != nil {
			return driver.NewStorageError("create", name, err)
		}
	}
	d.logger.Debug("created sheet", "sheet", name, "position", position)
	return nil
}

// DeleteSheet removes a sheet. Missing sheets are ignored; the last
// remaining sheet cannot be removed.
func (d *Driver) DeleteSheet(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.hasSheet(name) {
		return nil
	}
	if len(d.f.GetSheetList()) == 1 {
		return fmt.Errorf("delete %q: %w", name, ErrLastSheet)
	}
	if err := d.f.DeleteSheet(name); err != nil {
		return driver.NewStorageError("delete", name, err)
	}
	d.logger.Debug("deleted sheet", "sheet", name)
	return nil
}
