// Package xlsx implements the sheet store contract over an Excel workbook.
//
// It behaves like a live spreadsheet host: reads and writes addressed at a
// sheet that does not exist fail with driver.ErrSheetNotFound instead of
// creating it, while clearing or deleting an unknown sheet does nothing and
// its bounds are 0. Cosmetic settings are applied as real cell styles.
package xlsx

import (
	"errors"
	"log/slog"
	"os"
	"sync"

	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/driver"
	"github.com/xuri/excelize/v2"
)

// ErrLastSheet indicates an attempt to delete the only sheet of a workbook.
var ErrLastSheet = errors.New("a workbook must keep at least one sheet")

// Driver stores sheets in an in-memory workbook, optionally saved to a file.
type Driver struct {
	mu     sync.Mutex
	f      *excelize.File
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

// Open opens the workbook at path, or starts a new one with a single
// "Sheet1" when the file does not exist. Close saves it back to path.
// An empty path keeps the workbook in memory only.
func Open(path string, opts ...Option) (*Driver, error) {
	var f *excelize.File
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			f, err = excelize.OpenFile(path)
			if err != nil {
				return nil, driver.NewStorageError("open", "", err)
			}
		} else if !os.IsNotExist(err) {
			return nil, driver.NewStorageError("open", "", err)
		}
	}
	if f == nil {
		f = excelize.NewFile()
	}
	return New(f, path, opts...), nil
}

// New wraps an already opened workbook. Close saves it to path unless
// path is empty.
func New(f *excelize.File, path string, opts ...Option) *Driver {
	d := &Driver{
		f:      f,
		path:   path,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// File returns the underlying workbook.
func (d *Driver) File() *excelize.File {
	return d.f
}

// Save writes the workbook to its path. It is a no-op for in-memory workbooks.
func (d *Driver) Save() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.saveLocked()
}

func (d *Driver) saveLocked() error {
	if d.path == "" {
		return nil
	}
	if err := d.f.SaveAs(d.path); err != nil {
		return driver.NewStorageError("save", "", err)
	}
	d.logger.Debug("saved workbook", "path", d.path)
	return nil
}

// Close saves the workbook and releases it.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	saveErr := d.saveLocked()
	if err := d.f.Close(); err != nil && saveErr == nil {
		return driver.NewStorageError("close", "", err)
	}
	return saveErr
}

func (d *Driver) hasSheet(sheet string) bool {
	idx, err := d.f.GetSheetIndex(sheet)
	return err == nil && idx >= 0
}
