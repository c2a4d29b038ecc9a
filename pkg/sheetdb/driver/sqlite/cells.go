package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/driver"
)

// errEncode marks value encoding failures so they are not reported as
// storage failures.
var errEncode = errors.New("encode cell value")

// Read returns the values inside r. Cells that were never written read as "".
func (d *Driver) Read(sheet string, r driver.Region) ([][]any, error) {
	r = r.Clamp()
	result := driver.NewGrid(r.NumRows, r.NumCols)
	if r.Empty() {
		return result, nil
	}

	rows, err := d.db.Query(`
		SELECT row, col, value FROM cells
		WHERE sheet_name = ? AND row >= ? AND row < ? AND col >= ? AND col < ?`,
		sheet, r.StartRow, r.EndRow(), r.StartCol, r.EndCol())
	if err != nil {
		return nil, driver.NewStorageError("read", sheet, err)
	}
	defer rows.Close()

	for rows.Next() {
		var row, col int
		var value sql.NullString
		if err := rows.Scan(&row, &col, &value); err != nil {
			return nil, driver.NewStorageError("read", sheet, err)
		}
		if !value.Valid {
			continue
		}
		result[row-r.StartRow][col-r.StartCol] = driver.DecodeValue(value.String)
	}
	if err := rows.Err(); err != nil {
		return nil, driver.NewStorageError("read", sheet, err)
	}
	return result, nil
}

// Write upserts values with the top-left corner at (row, col), creating the
// sheet if needed. Writing "" removes the cell.
func (d *Driver) Write(sheet string, row, col int, values [][]any) error {
	var written, removed int
	err := d.inTx(func(tx *sql.Tx) error {
		if err := ensureSheet(tx, sheet); err != nil {
			return err
		}

		upsert, err := tx.Prepare(`
			INSERT INTO cells (sheet_name, row, col, value) VALUES (?, ?, ?, ?)
			ON CONFLICT (sheet_name, row, col) DO UPDATE SET value = excluded.value`)
		if err != nil {
			return err
		}
		defer upsert.Close()

		remove, err := tx.Prepare(`DELETE FROM cells WHERE sheet_name = ? AND row = ? AND col = ?`)
		if err != nil {
			return err
		}
		defer remove.Close()

		for i, rowValues := range values {
			for j, v := range rowValues {
				if driver.IsBlank(v) {
					if _, err := remove.Exec(sheet, row+i, col+j); err != nil {
						return err
					}
					removed++
					continue
				}
				text, err := driver.EncodeValue(v)
				if err != nil {
					return fmt.Errorf("%w at row %d, column %d: %w", errEncode, row+i, col+j, err)
				}
				if _, err := upsert.Exec(sheet, row+i, col+j, text); err != nil {
					return err
				}
				written++
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errEncode) {
			return err
		}
		return driver.NewStorageError("write", sheet, err)
	}
	d.logger.Debug("wrote cells", "sheet", sheet, "row", row, "col", col, "written", written, "removed", removed)
	return nil
}

// Clear removes every cell inside r.
func (d *Driver) Clear(sheet string, r driver.Region) error {
	r = r.Clamp()
	if r.Empty() {
		return nil
	}
	res, err := d.db.Exec(`
		DELETE FROM cells
		WHERE sheet_name = ? AND row >= ? AND row < ? AND col >= ? AND col < ?`,
		sheet, r.StartRow, r.EndRow(), r.StartCol, r.EndCol())
	if err != nil {
		return driver.NewStorageError("clear", sheet, err)
	}
	n, _ := res.RowsAffected()
	d.logger.Debug("cleared cells", "sheet", sheet, "region", r, "removed", n)
	return nil
}

// LastRow returns the highest occupied row of sheet, or 0.
func (d *Driver) LastRow(sheet string) (int, error) {
	return d.bound(sheet, `SELECT COALESCE(MAX(row), 0) FROM cells WHERE sheet_name = ?`)
}

// LastColumn returns the highest occupied column of sheet, or 0.
func (d *Driver) LastColumn(sheet string) (int, error) {
	return d.bound(sheet, `SELECT COALESCE(MAX(col), 0) FROM cells WHERE sheet_name = ?`)
}

func (d *Driver) bound(sheet, query string) (int, error) {
	var n int
	if err := d.db.QueryRow(query, sheet).Scan(&n); err != nil {
		return 0, driver.NewStorageError("bounds", sheet, err)
	}
	return n, nil
}
