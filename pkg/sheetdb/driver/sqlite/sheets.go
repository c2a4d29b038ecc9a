package sqlite

import (
	"database/sql"
	"errors"

	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/driver"
)

// SheetNames lists the sheets in position order.
func (d *Driver) SheetNames() ([]string, error) {
	rows, err := d.db.Query(`SELECT name FROM sheets ORDER BY position, rowid`)
	if err != nil {
		return nil, driver.NewStorageError("list", "", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, driver.NewStorageError("list", "", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, driver.NewStorageError("list", "", err)
	}
	return names, nil
}

// SheetCount returns the number of sheets.
func (d *Driver) SheetCount() (int, error) {
	var n int
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM sheets`).Scan(&n); err != nil {
		return 0, driver.NewStorageError("list", "", err)
	}
	return n, nil
}

// CreateSheet adds a sheet at the 1-based position, shifting later sheets
// back. Position 0, or one past the end, appends. Existing names are left
// where they are.
func (d *Driver) CreateSheet(name string, position int) error {
	err := d.inTx(func(tx *sql.Tx) error {
		exists, err := sheetExists(tx, name)
		if err != nil || exists {
			return err
		}

		var count int
		if err := tx.QueryRow(`SELECT COUNT(*) FROM sheets`).Scan(&count); err != nil {
			return err
		}
		if position <= 0 || position > count {
			return ensureSheet(tx, name)
		}

		if _, err := tx.Exec(`UPDATE sheets SET position = position + 1 WHERE position >= ?`, position); err != nil {
			return err
		}
		_, err = tx.Exec(`INSERT INTO sheets (name, position) VALUES (?, ?)`, name, position)
		return err
	})
	if err != nil {
		return driver.NewStorageError("create", name, err)
	}
	d.logger.Debug("created sheet", "sheet", name, "position", position)
	return nil
}

// DeleteSheet removes a sheet with its cells and formats. Unknown names are
// ignored.
func (d *Driver) DeleteSheet(name string) error {
	err := d.inTx(func(tx *sql.Tx) error {
		var position int
		err := tx.QueryRow(`SELECT position FROM sheets WHERE name = ?`, name).Scan(&position)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}

		if _, err := tx.Exec(`DELETE FROM formats WHERE sheet_name = ?`, name); err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM cells WHERE sheet_name = ?`, name); err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM sheets WHERE name = ?`, name); err != nil {
			return err
		}
		_, err = tx.Exec(`UPDATE sheets SET position = position - 1 WHERE position > ?`, position)
		return err
	})
	if err != nil {
		return driver.NewStorageError("delete", name, err)
	}
	d.logger.Debug("deleted sheet", "sheet", name)
	return nil
}

func sheetExists(tx *sql.Tx, name string) (bool, error) {
	var one int
	err := tx.QueryRow(`SELECT 1 FROM sheets WHERE name = ?`, name).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// ensureSheet appends the sheet if it does not exist yet.
func ensureSheet(tx *sql.Tx, name string) error {
	_, err := tx.Exec(`
		INSERT OR IGNORE INTO sheets (name, position)
		VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM sheets))`, name)
	return err
}
