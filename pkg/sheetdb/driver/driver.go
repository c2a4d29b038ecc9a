// Package driver defines the sparse cell store contract that backs a
// spreadsheet, along with the value encoding shared by its implementations.
package driver

// Region is a rectangle of cells. StartRow and StartCol are 1-based; the
// extents may be zero for an empty region.
type Region struct {
	StartRow int
	StartCol int
	NumRows  int
	NumCols  int
}

// EndRow returns the first row after the region.
func (r Region) EndRow() int { return r.StartRow + r.NumRows }

// EndCol returns the first column after the region.
func (r Region) EndCol() int { return r.StartCol + r.NumCols }

// Empty reports whether the region addresses no cells.
func (r Region) Empty() bool { return r.NumRows <= 0 || r.NumCols <= 0 }

// Clamp returns the region with negative extents raised to zero.
func (r Region) Clamp() Region {
	r.NumRows = max(r.NumRows, 0)
	r.NumCols = max(r.NumCols, 0)
	return r
}

// Driver is the capability set every sheet store implements. Coordinates are
// 1-based and every operation is scoped to a named sheet. Drivers do not
// validate shapes; that is left to callers.
type Driver interface {
	// Read returns a NumRows x NumCols grid; cells never written read as "".
	Read(sheet string, r Region) ([][]any, error)
	// Write upserts values with its top-left corner at (row, col).
	// All cells of one call land together or not at all.
	Write(sheet string, row, col int, values [][]any) error
	// Clear removes every cell inside r.
	Clear(sheet string, r Region) error
	// LastRow returns the highest occupied row, or 0.
	LastRow(sheet string) (int, error)
	// LastColumn returns the highest occupied column, or 0.
	LastColumn(sheet string) (int, error)
	// SheetNames lists sheets in a stable order.
	SheetNames() ([]string, error)
	// CreateSheet adds a sheet at the 1-based position (0 appends).
	// Creating an existing sheet is a no-op.
	CreateSheet(name string, position int) error
	// DeleteSheet removes a sheet and all of its cells. Missing sheets are ignored.
	DeleteSheet(name string) error
	// SheetCount returns the number of sheets.
	SheetCount() (int, error)
	// Close releases the underlying store.
	Close() error
}

// Formatter is implemented by drivers that understand cosmetic settings.
// Formats never affect what Read returns.
type Formatter interface {
	SetFormat(sheet string, r Region, key, value string) error
}

// Cosmetic format keys.
const (
	FormatBackground = "background"
	FormatFontWeight = "fontWeight"
	FormatBorder     = "border"
	FormatWrap       = "wrap"
	FormatFrozenRows = "frozenRows"
	FormatAutoResize = "autoResize"
)

// NewGrid returns a rows x cols grid filled with "".
func NewGrid(rows, cols int) [][]any {
	rows, cols = max(rows, 0), max(cols, 0)
	grid := make([][]any, rows)
	for i := range grid {
		grid[i] = make([]any, cols)
		for j := range grid[i] {
			grid[i][j] = ""
		}
	}
	return grid
}
