// Package a1 parses and formats A1-style range notation.
//
// Columns are written as base-26 letter sequences without a zero digit
// ("A" is 1, "Z" is 26, "AA" is 27) and rows as 1-based integers. Besides
// single cells and rectangles, open bands such as "B:B" (whole columns) and
// "1:1" (whole rows) are accepted; the open extent is reported as omitted
// and must be resolved by the caller against the sheet's current bounds.
package a1

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidNotation indicates the text does not match the range grammar.
var ErrInvalidNotation = errors.New("invalid range notation")

var rangePattern = regexp.MustCompile(`^([A-Za-z]*)([0-9]*)(?::([A-Za-z]*)([0-9]*))?$`)

// Parsed is the structured form of a range notation.
// Nil extents mean the notation left that axis open.
type Parsed struct {
	// StartRow is the first row (1-based).
	StartRow int
	// StartCol is the first column (1-based).
	StartCol int
	// EndRow is the last row (1-based, inclusive), if given.
	EndRow *int
	// EndCol is the last column (1-based, inclusive), if given.
	EndCol *int
	// NumRows is the row count, if the notation fixes it.
	NumRows *int
	// NumCols is the column count, if the notation fixes it.
	NumCols *int
}

// Parse parses a range notation such as "A1", "B2:D10", "C:C" or "5:5".
func Parse(text string) (Parsed, error) {
	m := rangePattern.FindStringSubmatch(text)
	if m == nil {
		return Parsed{}, invalid(text)
	}
	col1, row1, col2, row2 := m[1], m[2], m[3], m[4]

	p := Parsed{StartRow: 1, StartCol: 1}
	if col1 != "" {
		n, ok := columnIndex(col1)
		if !ok {
			return Parsed{}, invalid(text)
		}
		p.StartCol = n
	}
	if row1 != "" {
		n, ok := rowNumber(row1)
		if !ok {
			return Parsed{}, invalid(text)
		}
		p.StartRow = n
	}

	if col2 == "" && row2 == "" {
		p.NumRows = intPtr(1)
		p.NumCols = intPtr(1)
		return p, nil
	}

	switch {
	case col2 != "":
		n, ok := columnIndex(col2)
		if !ok {
			return Parsed{}, invalid(text)
		}
		p.EndCol = intPtr(n)
	case col1 != "":
		p.EndCol = intPtr(p.StartCol)
	}
	switch {
	case row2 != "":
		n, ok := rowNumber(row2)
		if !ok {
			return Parsed{}, invalid(text)
		}
		p.EndRow = intPtr(n)
	case row1 != "":
		p.EndRow = intPtr(p.StartRow)
	}

	if p.EndRow != nil {
		p.NumRows = intPtr(*p.EndRow - p.StartRow + 1)
	}
	if p.EndCol != nil {
		p.NumCols = intPtr(*p.EndCol - p.StartCol + 1)
	}
	return p, nil
}

// ColumnToIndex converts column letters ("A", "ab") to a 1-based index.
func ColumnToIndex(letters string) (int, error) {
	if letters == "" {
		return 0, invalid(letters)
	}
	for i := 0; i < len(letters); i++ {
		if !isLetter(letters[i]) {
			return 0, invalid(letters)
		}
	}
	n, ok := columnIndex(letters)
	if !ok {
		return 0, invalid(letters)
	}
	return n, nil
}

// columnIndex reports false when the letters name a column beyond math.MaxInt.
func columnIndex(letters string) (int, bool) {
	index := 0
	for _, c := range strings.ToUpper(letters) {
		if index > (math.MaxInt-26)/26 {
			return 0, false
		}
		index = index*26 + int(c-'A'+1)
	}
	return index, true
}

// rowNumber parses a row; row 0 and values that overflow int are rejected.
func rowNumber(digits string) (int, bool) {
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// IndexToColumn converts a 1-based column index to its letters.
// It returns "" for indexes below 1.
func IndexToColumn(index int) string {
	var buf []byte
	for index > 0 {
		rem := (index - 1) % 26
		buf = append(buf, byte('A'+rem))
		index = (index - 1) / 26
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// CellName returns the A1 name of a single cell, e.g. CellName(2, 3) == "C2".
func CellName(row, col int) string {
	return IndexToColumn(col) + strconv.Itoa(row)
}

// Format serialises a rectangle. A 1x1 rectangle is written as a single
// cell; empty rectangles are written as their origin cell.
func Format(row, col, numRows, numCols int) string {
	start := CellName(row, col)
	if numRows <= 1 && numCols <= 1 {
		return start
	}
	return start + ":" + CellName(row+max(numRows, 1)-1, col+max(numCols, 1)-1)
}

// SplitSheet splits a sheet-qualified reference like 'My Sheet'!$A$1:$B$2
// into the sheet name and range text. Absolute markers are removed from the
// range part. The sheet is "" when the reference is not qualified.
func SplitSheet(ref string) (sheet, rng string) {
	rng = ref
	if idx := strings.LastIndex(ref, "!"); idx >= 0 {
		sheet = ref[:idx]
		rng = ref[idx+1:]
		if len(sheet) >= 2 && strings.HasPrefix(sheet, "'") && strings.HasSuffix(sheet, "'") {
			sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
		}
	}
	return sheet, strings.ReplaceAll(rng, "$", "")
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func invalid(text string) error {
	return fmt.Errorf("%w: %q", ErrInvalidNotation, text)
}

func intPtr(n int) *int {
	return &n
}
