// Package sqlite implements a disk-backed sheet store on SQLite.
//
// Cells are kept sparsely, one row per (sheet, row, column), with the value
// stored as JSON text. Multi-cell writes run in a single transaction, so a
// write either lands completely or not at all.
package sqlite

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/driver"
	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Driver stores sheets in a SQLite database file.
type Driver struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger for the driver.
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.logger = l
		}
	}
}

var _ driver.Driver = (*Driver)(nil)
var _ driver.Formatter = (*Driver)(nil)

// Open opens (creating if needed) the database at path and applies the schema.
func Open(path string, opts ...Option) (*Driver, error) {
	d := &Driver{
		path:   path,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}

	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, driver.NewStorageError("open", "", err)
	}
	// One connection keeps :memory: databases shared and writes serialised.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, driver.NewStorageError("open", "", fmt.Errorf("apply schema: %w", err))
	}
	d.db = db
	d.logger.Debug("opened sheet store", "path", path)
	return d, nil
}

// Path returns the path the driver was opened with.
func (d *Driver) Path() string {
	return d.path
}

// Close closes the database.
func (d *Driver) Close() error {
	if err := d.db.Close(); err != nil {
		return driver.NewStorageError("close", "", err)
	}
	return nil
}

// inTx runs fn inside a transaction, rolling back if fn or the commit fails.
func (d *Driver) inTx(fn func(tx *sql.Tx) error) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
