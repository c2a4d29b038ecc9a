package models

// WorkbookData represents every sheet of a store.
type WorkbookData struct {
	// BookName is the store file name (no path).
	BookName string `json:"book_name"`
	// SheetOrder lists sheet names in the store's order.
	SheetOrder []string `json:"sheet_order"`
	// Sheets maps sheet name to SheetData.
	Sheets map[string]SheetData `json:"sheets"`
}
