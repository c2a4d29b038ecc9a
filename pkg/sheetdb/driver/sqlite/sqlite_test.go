package sqlite

import (
	"errors"
	"path/filepath"
	"reflect"
	"slices"
	"testing"

	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/driver"
)

func openTestDriver(t *testing.T) *Driver {
	t.Helper()
	d, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func region(row, col, numRows, numCols int) driver.Region {
	return driver.Region{StartRow: row, StartCol: col, NumRows: numRows, NumCols: numCols}
}

func TestWriteAndRead(t *testing.T) {
	d := openTestDriver(t)

	values := [][]any{
		{"Name", "Age"},
		{"Alice", int64(30)},
		{"Bob", 25.5},
		{true, nil},
	}
	if err := d.Write("Sheet1", 1, 1, values); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	result, err := d.Read("Sheet1", region(1, 1, 4, 2))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !reflect.DeepEqual(result, values) {
		t.Errorf("Read = %v, expected %v", result, values)
	}
}

func TestReadFillsGaps(t *testing.T) {
	d := openTestDriver(t)
	if err := d.Write("Sheet1", 2, 2, [][]any{{"x"}}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	result, err := d.Read("Sheet1", region(1, 1, 2, 3))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	expected := [][]any{{"", "", ""}, {"", "x", ""}}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Read = %v, expected %v", result, expected)
	}
}

func TestReadDegenerate(t *testing.T) {
	d := openTestDriver(t)

	tests := []struct {
		r        driver.Region
		expected [][]any
	}{
		{region(1, 1, 0, 0), [][]any{}},
		{region(1, 1, 0, 5), [][]any{}},
		{region(1, 1, -2, 1), [][]any{}},
		{region(1, 1, 2, 0), [][]any{{}, {}}},
	}
	for _, tt := range tests {
		result, err := d.Read("Nope", tt.r)
		if err != nil {
			t.Errorf("Read(%+v) failed: %v", tt.r, err)
			continue
		}
		if !reflect.DeepEqual(result, tt.expected) {
			t.Errorf("Read(%+v) = %v, expected %v", tt.r, result, tt.expected)
		}
	}
}

func TestLastRowAndColumn(t *testing.T) {
	d := openTestDriver(t)

	if err := d.Write("Sheet1", 5, 3, [][]any{{"Data"}}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	assertBounds(t, d, "Sheet1", 5, 3)
	assertBounds(t, d, "Unknown", 0, 0)

	if err := d.Clear("Sheet1", region(1, 1, 5, 3)); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	assertBounds(t, d, "Sheet1", 0, 0)

	names, _ := d.SheetNames()
	if !slices.Contains(names, "Sheet1") {
		t.Errorf("clearing all cells removed the sheet: %v", names)
	}
}

func assertBounds(t *testing.T, d *Driver, sheet string, row, col int) {
	t.Helper()
	lastRow, err := d.LastRow(sheet)
	if err != nil {
		t.Fatalf("LastRow(%q) failed: %v", sheet, err)
	}
	lastCol, err := d.LastColumn(sheet)
	if err != nil {
		t.Fatalf("LastColumn(%q) failed: %v", sheet, err)
	}
	if lastRow != row || lastCol != col {
		t.Errorf("bounds of %q = (%d, %d), expected (%d, %d)", sheet, lastRow, lastCol, row, col)
	}
}

func TestClearIsHalfOpen(t *testing.T) {
	d := openTestDriver(t)
	grid := [][]any{
		{int64(1), int64(2), int64(3)},
		{int64(4), int64(5), int64(6)},
		{int64(7), int64(8), int64(9)},
	}
	if err := d.Write("S", 1, 1, grid); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := d.Clear("S", region(1, 1, 2, 2)); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	result, _ := d.Read("S", region(1, 1, 3, 3))
	expected := [][]any{
		{"", "", int64(3)},
		{"", "", int64(6)},
		{int64(7), int64(8), int64(9)},
	}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Read after Clear = %v, expected %v", result, expected)
	}
}

func TestWriteOverwrites(t *testing.T) {
	d := openTestDriver(t)
	d.Write("S", 1, 1, [][]any{{"old"}})
	d.Write("S", 1, 1, [][]any{{"new"}})

	result, _ := d.Read("S", region(1, 1, 1, 1))
	if result[0][0] != "new" {
		t.Errorf("cell = %v, expected new", result[0][0])
	}
}

func TestWriteBlankRemovesCell(t *testing.T) {
	d := openTestDriver(t)
	d.Write("S", 1, 1, [][]any{{"a"}, {"b"}})
	if err := d.Write("S", 2, 1, [][]any{{""}}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	assertBounds(t, d, "S", 1, 1)
}

func TestWriteIsAtomic(t *testing.T) {
	d := openTestDriver(t)

	err := d.Write("Fresh", 1, 1, [][]any{{"ok", make(chan int)}})
	if err == nil {
		t.Fatal("Write with unencodable value succeeded")
	}
	if errors.Is(err, driver.ErrStorage) {
		t.Errorf("encoding failure reported as storage failure: %v", err)
	}

	names, _ := d.SheetNames()
	if slices.Contains(names, "Fresh") {
		t.Error("failed write still created the sheet")
	}
	assertBounds(t, d, "Fresh", 0, 0)
}

func TestRawStringFallback(t *testing.T) {
	d := openTestDriver(t)
	d.CreateSheet("S", 0)
	if _, err := d.db.Exec(`INSERT INTO cells (sheet_name, row, col, value) VALUES ('S', 1, 1, 'not json')`); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	result, err := d.Read("S", region(1, 1, 1, 1))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if result[0][0] != "not json" {
		t.Errorf("cell = %v, expected raw text", result[0][0])
	}
}

func TestMultipleSheets(t *testing.T) {
	d := openTestDriver(t)
	d.CreateSheet("Sheet1", 0)
	d.CreateSheet("Sheet2", 0)

	d.Write("Sheet1", 1, 1, [][]any{{"S1"}})
	d.Write("Sheet2", 1, 1, [][]any{{"S2"}})

	for sheet, want := range map[string]string{"Sheet1": "S1", "Sheet2": "S2"} {
		result, _ := d.Read(sheet, region(1, 1, 1, 1))
		if result[0][0] != want {
			t.Errorf("%s A1 = %v, expected %s", sheet, result[0][0], want)
		}
	}
}

func TestCreateSheetIdempotent(t *testing.T) {
	d := openTestDriver(t)
	for i := 0; i < 2; i++ {
		if err := d.CreateSheet("Once", 0); err != nil {
			t.Fatalf("CreateSheet failed: %v", err)
		}
	}
	count, _ := d.SheetCount()
	if count != 1 {
		t.Errorf("SheetCount = %d, expected 1", count)
	}
}

func TestCreateSheetPosition(t *testing.T) {
	d := openTestDriver(t)
	d.CreateSheet("A", 0)
	d.CreateSheet("C", 0)
	d.CreateSheet("B", 2)
	d.CreateSheet("First", 1)
	d.CreateSheet("Last", 99)
	d.Write("Implicit", 1, 1, [][]any{{"x"}})

	names, err := d.SheetNames()
	if err != nil {
		t.Fatalf("SheetNames failed: %v", err)
	}
	expected := []string{"First", "A", "B", "C", "Last", "Implicit"}
	if !reflect.DeepEqual(names, expected) {
		t.Errorf("SheetNames = %v, expected %v", names, expected)
	}

	d.DeleteSheet("B")
	d.CreateSheet("B2", 3)
	names, _ = d.SheetNames()
	expected = []string{"First", "A", "B2", "C", "Last", "Implicit"}
	if !reflect.DeepEqual(names, expected) {
		t.Errorf("SheetNames after delete = %v, expected %v", names, expected)
	}
}

func TestDeleteSheetWithCells(t *testing.T) {
	d := openTestDriver(t)
	grid := make([][]any, 10)
	for i := range grid {
		grid[i] = make([]any, 10)
		for j := range grid[i] {
			grid[i][j] = int64(i*10 + j)
		}
	}
	if err := d.Write("Big", 1, 1, grid); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	d.SetFormat("Big", region(1, 1, 1, 10), driver.FormatFontWeight, "bold")

	if err := d.DeleteSheet("Big"); err != nil {
		t.Fatalf("DeleteSheet failed: %v", err)
	}

	names, _ := d.SheetNames()
	if slices.Contains(names, "Big") {
		t.Errorf("SheetNames still contains Big: %v", names)
	}
	assertBounds(t, d, "Big", 0, 0)

	var orphans int
	d.db.QueryRow(`SELECT COUNT(*) FROM cells WHERE sheet_name = 'Big'`).Scan(&orphans)
	if orphans != 0 {
		t.Errorf("%d orphaned cells left", orphans)
	}
	formats, _ := d.Formats("Big")
	if len(formats) != 0 {
		t.Errorf("%d orphaned formats left", len(formats))
	}
}

func TestDeleteMissingSheet(t *testing.T) {
	d := openTestDriver(t)
	if err := d.DeleteSheet("Missing"); err != nil {
		t.Errorf("DeleteSheet(Missing) = %v, expected nil", err)
	}
}

func TestFormatsAreMetadataOnly(t *testing.T) {
	d := openTestDriver(t)
	d.Write("S", 1, 1, [][]any{{"v"}})

	r := region(1, 1, 1, 1)
	d.SetFormat("S", r, driver.FormatBackground, "#ff0000")
	d.SetFormat("S", r, driver.FormatBackground, "#00ff00")
	d.SetFormat("S", r, driver.FormatWrap, "true")

	formats, err := d.Formats("S")
	if err != nil {
		t.Fatalf("Formats failed: %v", err)
	}
	expected := []FormatRecord{
		{Region: r, Key: driver.FormatBackground, Value: "#00ff00"},
		{Region: r, Key: driver.FormatWrap, Value: "true"},
	}
	if !reflect.DeepEqual(formats, expected) {
		t.Errorf("Formats = %+v, expected %+v", formats, expected)
	}

	result, _ := d.Read("S", r)
	if result[0][0] != "v" {
		t.Errorf("formatting changed the value to %v", result[0][0])
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")
	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	d.Write("Keep", 1, 1, [][]any{{"SeatNo"}, {int64(1)}})
	d.Close()

	d, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer d.Close()

	result, _ := d.Read("Keep", region(1, 1, 2, 1))
	expected := [][]any{{"SeatNo"}, {int64(1)}}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Read after reopen = %v, expected %v", result, expected)
	}
}

func TestMemoryDatabase(t *testing.T) {
	d, err := Open(MemoryPath)
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer d.Close()

	d.Write("M", 3, 4, [][]any{{"x"}})
	assertBounds(t, d, "M", 3, 4)
}
