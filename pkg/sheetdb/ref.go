package sheetdb

// RefKind discriminates the ways a range can be addressed.
type RefKind int

const (
	// RefNotation addresses a range with A1 notation.
	RefNotation RefKind = iota + 1
	// RefCoordinates addresses a range with a 1-based origin and a size.
	RefCoordinates
)

// RangeRef selects a range on a sheet, either by notation or by coordinates.
// Build one with ByNotation or ByCoordinates.
type RangeRef struct {
	Kind     RefKind
	Notation string
	Row      int
	Col      int
	NumRows  int
	NumCols  int
}

// ByNotation addresses a range such as "A1", "B2:D10", "C:C" or "5:5".
func ByNotation(text string) RangeRef {
	return RangeRef{Kind: RefNotation, Notation: text}
}

// ByCoordinates addresses the range at (row, col). The optional size gives
// the number of rows and then columns; each defaults to 1.
func ByCoordinates(row, col int, size ...int) RangeRef {
	ref := RangeRef{Kind: RefCoordinates, Row: row, Col: col, NumRows: 1, NumCols: 1}
	if len(size) > 0 {
		ref.NumRows = size[0]
	}
	if len(size) > 1 {
		ref.NumCols = size[1]
	}
	return ref
}
