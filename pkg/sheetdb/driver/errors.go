package driver

import (
	"errors"
	"fmt"
)

// ErrSheetNotFound indicates an operation addressed a sheet that does not
// exist and the driver requires it to.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrStorage indicates the backing store failed to complete an operation.
var ErrStorage = errors.New("storage failure")

// StorageError represents a failure of the backing store.
type StorageError struct {
	Op    string // "read", "write", "clear", "bounds", "create", "delete", "list", "format", "open"
	Sheet string
	Err   error
}

func (e *StorageError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage failure during %s of sheet %q: %v", e.Op, e.Sheet, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is makes every StorageError match ErrStorage.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// NewStorageError creates a new StorageError.
func NewStorageError(op, sheet string, err error) *StorageError {
	return &StorageError{
		Op:    op,
		Sheet: sheet,
		Err:   err,
	}
}

// SheetNotFound returns ErrSheetNotFound annotated with the sheet name.
func SheetNotFound(sheet string) error {
	return fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
}
