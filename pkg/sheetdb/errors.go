package sheetdb

import (
	"errors"
	"fmt"

	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/a1"
	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/driver"
)

// ErrInvalidNotation indicates malformed range notation. It is reported
// before any storage access.
var ErrInvalidNotation = a1.ErrInvalidNotation

// ErrSheetNotFound indicates the addressed sheet does not exist.
var ErrSheetNotFound = driver.ErrSheetNotFound

// ErrStorage indicates the backing store failed. Match it with errors.Is;
// the concrete error is a *driver.StorageError.
var ErrStorage = driver.ErrStorage

// ErrDimensionMismatch indicates a values array does not match a range's shape.
var ErrDimensionMismatch = errors.New("the number of rows or columns in the data does not match the range")

// ErrInvalidCoordinates indicates a row or column below 1.
var ErrInvalidCoordinates = errors.New("row and column must be 1 or greater")

// DimensionError reports the shape a range expected and the shape it got.
type DimensionError struct {
	Range    string
	WantRows int
	WantCols int
	GotRows  int
	GotCols  int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%v: range %s is %dx%d, data is %dx%d",
		ErrDimensionMismatch, e.Range, e.WantRows, e.WantCols, e.GotRows, e.GotCols)
}

func (e *DimensionError) Unwrap() error {
	return ErrDimensionMismatch
}
