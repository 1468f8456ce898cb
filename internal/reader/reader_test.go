package reader

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetectHeaderRowAnchor(t *testing.T) {
	grid := [][]string{
		{"2023년 상반기 매각", "", ""},
		{"", "", ""},
		{"일련번호", "차주일련번호", "차주명"},
		{"1", "R-0001", "테스트"},
	}
	if got := DetectHeaderRow(grid); got != 2 {
		t.Errorf("DetectHeaderRow = %d, want 2", got)
	}
}

func TestDetectHeaderRowFallback(t *testing.T) {
	grid := [][]string{
		{"title", ""},
		{"a", "b", "c", "d"},
		{"1", "2", "3", "4"},
	}
	// No anchor token anywhere: densest row within the window wins.
	if got := DetectHeaderRow(grid); got != 1 {
		t.Errorf("DetectHeaderRow = %d, want 1", got)
	}
}

func TestGridToRows(t *testing.T) {
	grid := [][]string{
		{"차주일련번호", "차주명", ""},
		{"R-0001", "가나다", "x"},
		{"", "", ""},
		{"R-0002", "라마바"},
	}
	headers, rows := gridToRows(grid, 0)
	if len(headers) != 3 {
		t.Fatalf("headers = %v", headers)
	}
	if headers[2] != "Column3" {
		t.Errorf("blank header name = %q, want Column3", headers[2])
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2 (empty row dropped)", len(rows))
	}
	if rows[1]["차주일련번호"].String() != "R-0002" {
		t.Errorf("row value = %q", rows[1]["차주일련번호"].String())
	}
	// Short row is padded with empty cells.
	if !rows[1]["Column3"].IsEmpty() {
		t.Error("short row not padded with empty cell")
	}
}

func TestOpenXLSMissingFile(t *testing.T) {
	_, err := OpenXLS(filepath.Join(t.TempDir(), "gone.xls"))
	if err == nil {
		t.Fatal("want error for missing file")
	}
}

func TestOpenXLSNotAWorkbook(t *testing.T) {
	// A file that opens but is not a compound document must fail at the
	// parse step and release its handle.
	path := filepath.Join(t.TempDir(), "junk.xls")
	if err := os.WriteFile(path, []byte("not an xls"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenXLS(path); err == nil {
		t.Fatal("want error for malformed workbook")
	}
}
