package reader

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MaxHeaderSearchRows caps how deep we scan a sheet for its header row.
// Some disks place a title block above the real header.
var MaxHeaderSearchRows = 20

// headerAnchors are tokens that only ever appear in a disk header row.
// Matching is done on whitespace-stripped cell text.
var headerAnchors = []string{
	"차주일련번호",
	"차주번호",
	"차주명",
	"대출일련번호",
	"물건번호",
	"일련번호",
}

// SheetMeta describes one worksheet without its data rows.
type SheetMeta struct {
	Name      string
	Index     int
	HeaderRow int
	RowCount  int
	Headers   []string
}

// Workbook yields worksheets as header lists plus header-keyed rows.
// Implementations exist for .xlsx (excelize) and legacy .xls files.
type Workbook interface {
	SheetNames() []string
	Sheets() ([]SheetMeta, error)
	ReadSheet(name string) (headers []string, rows []map[string]CellValue, err error)
	Close() error
}

// Open dispatches on the file extension.
func Open(path string) (Workbook, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return OpenXLSX(path)
	case ".xls":
		return OpenXLS(path)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
}

// DetectHeaderRow finds the 0-based header row in a grid of raw strings.
// A row containing an anchor token wins outright; otherwise the first row
// within the search window with the most non-empty cells is used.
func DetectHeaderRow(grid [][]string) int {
	limit := len(grid)
	if limit > MaxHeaderSearchRows {
		limit = MaxHeaderSearchRows
	}

	for i := 0; i < limit; i++ {
		for _, cell := range grid[i] {
			stripped := stripSpace(cell)
			if stripped == "" {
				continue
			}
			for _, anchor := range headerAnchors {
				if strings.Contains(stripped, anchor) {
					return i
				}
			}
		}
	}

	best, bestCount := 0, 0
	for i := 0; i < limit; i++ {
		count := 0
		for _, cell := range grid[i] {
			if strings.TrimSpace(cell) != "" {
				count++
			}
		}
		if count > bestCount {
			best, bestCount = i, count
		}
	}
	return best
}

// gridToRows converts a raw string grid into header-keyed cell rows starting
// below headerRow. Blank header cells get positional names; fully empty data
// rows are dropped.
func gridToRows(grid [][]string, headerRow int) (headers []string, rows []map[string]CellValue) {
	if headerRow >= len(grid) {
		return nil, nil
	}

	for i, cell := range grid[headerRow] {
		name := strings.TrimSpace(cell)
		if name == "" {
			name = fmt.Sprintf("Column%d", i+1)
		}
		headers = append(headers, name)
	}

	for _, raw := range grid[headerRow+1:] {
		row := make(map[string]CellValue, len(headers))
		hasData := false
		for j, h := range headers {
			if j < len(raw) {
				cell := CellFromString(raw[j])
				row[h] = cell
				if !cell.IsEmpty() {
					hasData = true
				}
			} else {
				row[h] = EmptyCell()
			}
		}
		if hasData {
			rows = append(rows, row)
		}
	}
	return headers, rows
}

func stripSpace(s string) string {
	replacer := strings.NewReplacer(" ", "", "\r", "", "\n", "", "\t", "")
	return replacer.Replace(s)
}
