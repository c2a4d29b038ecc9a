// Package output serializes store snapshots.
package output

import (
	"encoding/json"

	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/models"
)

// ToJSON serializes a workbook snapshot.
func ToJSON(wb *models.WorkbookData, pretty bool) ([]byte, error) {
	return marshal(wb, pretty)
}

// SheetToJSON serializes a single sheet snapshot.
func SheetToJSON(sheet *models.SheetData, pretty bool) ([]byte, error) {
	return marshal(sheet, pretty)
}

// ValuesToJSON serializes a grid of cell values, as returned by Range.Values.
func ValuesToJSON(values [][]any, pretty bool) ([]byte, error) {
	if values == nil {
		values = [][]any{}
	}
	return marshal(values, pretty)
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
