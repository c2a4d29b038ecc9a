package models

// SheetData represents the contents of a single sheet.
type SheetData struct {
	// Name is the sheet name.
	Name string `json:"name"`
	// DataRange is the A1 range from A1 to the last occupied cell.
	DataRange string `json:"data_range"`
	// LastRow is the highest occupied row, or 0.
	LastRow int `json:"last_row"`
	// LastColumn is the highest occupied column, or 0.
	LastColumn int `json:"last_column"`
	// Rows contains the non-empty rows.
	Rows []CellRow `json:"rows,omitempty"`
	// TableCandidates contains cell ranges likely representing tables.
	TableCandidates []string `json:"table_candidates,omitempty"`
}
