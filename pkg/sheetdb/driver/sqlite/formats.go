package sqlite

import (
	"database/sql"

	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/driver"
)

// FormatRecord is a cosmetic setting recorded for a region.
type FormatRecord struct {
	Region driver.Region
	Key    string
	Value  string
}

// SetFormat records a cosmetic setting for a region. The setting is kept as
// metadata only and never changes what Read returns.
func (d *Driver) SetFormat(sheet string, r driver.Region, key, value string) error {
	err := d.inTx(func(tx *sql.Tx) error {
		if err := ensureSheet(tx, sheet); err != nil {
			return err
		}
		_, err := tx.Exec(`
			INSERT INTO formats (sheet_name, start_row, start_col, num_rows, num_cols, key, value)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (sheet_name, start_row, start_col, num_rows, num_cols, key)
			DO UPDATE SET value = excluded.value`,
			sheet, r.StartRow, r.StartCol, r.NumRows, r.NumCols, key, value)
		return err
	})
	if err != nil {
		return driver.NewStorageError("format", sheet, err)
	}
	return nil
}

// Formats lists the cosmetic settings recorded for sheet.
func (d *Driver) Formats(sheet string) ([]FormatRecord, error) {
	rows, err := d.db.Query(`
		SELECT start_row, start_col, num_rows, num_cols, key, value FROM formats
		WHERE sheet_name = ? ORDER BY rowid`, sheet)
	if err != nil {
		return nil, driver.NewStorageError("format", sheet, err)
	}
	defer rows.Close()

	var records []FormatRecord
	for rows.Next() {
		var f FormatRecord
		if err := rows.Scan(&f.Region.StartRow, &f.Region.StartCol, &f.Region.NumRows, &f.Region.NumCols, &f.Key, &f.Value); err != nil {
			return nil, driver.NewStorageError("format", sheet, err)
		}
		records = append(records, f)
	}
	if err := rows.Err(); err != nil {
		return nil, driver.NewStorageError("format", sheet, err)
	}
	return records, nil
}
