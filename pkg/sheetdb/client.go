package sheetdb

import (
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/a1"
	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/driver"
	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/driver/sqlite"
	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/driver/xlsx"
)

// Client is the entry point to a spreadsheet backed by a driver.
type Client struct {
	driver driver.Driver
	opts   Options
	logger *slog.Logger
}

// New creates a client over d.
func New(d driver.Driver, opts Options) *Client {
	return &Client{
		driver: d,
		opts:   opts,
		logger: opts.logger(),
	}
}

// Open opens the store at path. Paths ending in .xlsx open a workbook;
// anything else is treated as a SQLite database.
func Open(path string, opts Options) (*Client, error) {
	var (
		d   driver.Driver
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		d, err = xlsx.Open(path, xlsx.WithLogger(opts.Logger))
	} else {
		d, err = sqlite.Open(path, sqlite.WithLogger(opts.Logger))
	}
	if err != nil {
		return nil, err
	}
	return New(d, opts), nil
}

// Driver returns the driver behind the client.
func (c *Client) Driver() driver.Driver {
	return c.driver
}

// Close closes the driver.
func (c *Client) Close() error {
	return c.driver.Close()
}

// SheetByName returns the named sheet, or nil if there is none.
func (c *Client) SheetByName(name string) (*Sheet, error) {
	names, err := c.driver.SheetNames()
	if err != nil {
		return nil, err
	}
	if !slices.Contains(names, name) {
		return nil, nil
	}
	return c.sheet(name), nil
}

// Sheets returns every sheet in the driver's order.
func (c *Client) Sheets() ([]*Sheet, error) {
	names, err := c.driver.SheetNames()
	if err != nil {
		return nil, err
	}
	sheets := make([]*Sheet, 0, len(names))
	for _, name := range names {
		sheets = append(sheets, c.sheet(name))
	}
	return sheets, nil
}

// InsertSheet adds a sheet after the existing ones. Inserting an existing
// name returns that sheet unchanged.
func (c *Client) InsertSheet(name string) (*Sheet, error) {
	return c.InsertSheetAt(name, 0)
}

// InsertSheetAt adds a sheet at the 1-based position; 0 appends.
func (c *Client) InsertSheetAt(name string, position int) (*Sheet, error) {
	if err := c.driver.CreateSheet(name, position); err != nil {
		return nil, err
	}
	c.logger.Debug("inserted sheet", "sheet", name, "position", position)
	return c.sheet(name), nil
}

// DeleteSheet removes the sheet and all of its cells.
func (c *Client) DeleteSheet(s *Sheet) error {
	if err := c.driver.DeleteSheet(s.name); err != nil {
		return err
	}
	c.logger.Debug("deleted sheet", "sheet", s.name)
	return nil
}

// SheetCount returns the number of sheets.
func (c *Client) SheetCount() (int, error) {
	return c.driver.SheetCount()
}

// Range resolves a possibly sheet-qualified reference such as
// "Sheet1!A1:B2" or "'My Sheet'!C:C". Unqualified references address the
// first sheet.
func (c *Client) Range(ref string) (*Range, error) {
	name, rng := a1.SplitSheet(ref)
	var s *Sheet
	if name == "" {
		sheets, err := c.Sheets()
		if err != nil {
			return nil, err
		}
		if len(sheets) == 0 {
			return nil, driver.SheetNotFound(name)
		}
		s = sheets[0]
	} else {
		var err error
		if s, err = c.SheetByName(name); err != nil {
			return nil, err
		}
		if s == nil {
			return nil, driver.SheetNotFound(name)
		}
	}
	return s.Range(ByNotation(rng))
}

func (c *Client) sheet(name string) *Sheet {
	return &Sheet{client: c, name: name}
}
