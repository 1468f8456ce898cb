package reader

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

type xlsxWorkbook struct {
	f *excelize.File
}

// OpenXLSX opens a .xlsx/.xlsm workbook.
func OpenXLSX(path string) (Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %v", err)
	}
	return &xlsxWorkbook{f: f}, nil
}

func (w *xlsxWorkbook) SheetNames() []string {
	return w.f.GetSheetList()
}

func (w *xlsxWorkbook) Sheets() ([]SheetMeta, error) {
	var metas []SheetMeta
	for idx, name := range w.f.GetSheetList() {
		grid, err := w.f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %v", name, err)
		}
		headerRow := DetectHeaderRow(grid)
		headers, rows := gridToRows(grid, headerRow)
		metas = append(metas, SheetMeta{
			Name:      name,
			Index:     idx,
			HeaderRow: headerRow,
			RowCount:  len(rows),
			Headers:   headers,
		})
	}
	return metas, nil
}

func (w *xlsxWorkbook) ReadSheet(name string) ([]string, []map[string]CellValue, error) {
	grid, err := w.f.GetRows(name)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %v", name, err)
	}
	if len(grid) == 0 {
		return nil, nil, fmt.Errorf("sheet %q is empty", name)
	}
	headers, rows := gridToRows(grid, DetectHeaderRow(grid))
	return headers, rows, nil
}

func (w *xlsxWorkbook) Close() error {
	return w.f.Close()
}
