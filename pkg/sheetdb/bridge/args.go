package bridge

import (
	"encoding/json"
	"fmt"

	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/driver"
)

// arg decodes the i-th argument into a T.
func arg[T any](args []json.RawMessage, i int) (T, error) {
	var v T
	if i >= len(args) {
		return v, fmt.Errorf("missing argument %d", i+1)
	}
	if err := json.Unmarshal(args[i], &v); err != nil {
		return v, fmt.Errorf("argument %d: %w", i+1, err)
	}
	return v, nil
}

// optArg is like arg but returns def when the argument is absent or null.
func optArg[T any](args []json.RawMessage, i int, def T) (T, error) {
	if i >= len(args) || string(args[i]) == "null" {
		return def, nil
	}
	return arg[T](args, i)
}

// valueArg decodes the i-th argument as a cell value, keeping integral
// numbers as int64.
func valueArg(args []json.RawMessage, i int) (any, error) {
	if i >= len(args) {
		return nil, fmt.Errorf("missing argument %d", i+1)
	}
	return driver.DecodeValue(string(args[i])), nil
}

// rowArg decodes the i-th argument as one row of cell values.
func rowArg(args []json.RawMessage, i int) ([]any, error) {
	v, err := valueArg(args, i)
	if err != nil {
		return nil, err
	}
	row, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("argument %d: expected an array, got %T", i+1, v)
	}
	return row, nil
}

// gridArg decodes the i-th argument as a two-dimensional array of cell values.
func gridArg(args []json.RawMessage, i int) ([][]any, error) {
	v, err := valueArg(args, i)
	if err != nil {
		return nil, err
	}
	rows, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("argument %d: expected an array of rows, got %T", i+1, v)
	}
	grid := make([][]any, len(rows))
	for r, row := range rows {
		cells, ok := row.([]any)
		if !ok {
			return nil, fmt.Errorf("argument %d: row %d is %T, not an array", i+1, r+1, row)
		}
		grid[r] = cells
	}
	return grid, nil
}
