package reader

import (
	"fmt"
	"io"
	"os"

	"github.com/extrame/xls"
)

type xlsWorkbook struct {
	wb     *xls.WorkBook
	closer io.Closer
}

// OpenXLS opens a legacy .xls workbook. Older bank disks still arrive in
// this format. The file handle stays open for the life of the workbook.
func OpenXLS(path string) (Workbook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open xls workbook: %v", err)
	}
	wb, err := xls.OpenReader(f, "utf-8")
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open xls workbook: %v", err)
	}
	return &xlsWorkbook{wb: wb, closer: f}, nil
}

func (w *xlsWorkbook) SheetNames() []string {
	var names []string
	for i := 0; i < w.wb.NumSheets(); i++ {
		if sheet := w.wb.GetSheet(i); sheet != nil {
			names = append(names, sheet.Name)
		}
	}
	return names
}

func (w *xlsWorkbook) Sheets() ([]SheetMeta, error) {
	var metas []SheetMeta
	for i := 0; i < w.wb.NumSheets(); i++ {
		sheet := w.wb.GetSheet(i)
		if sheet == nil {
			continue
		}
		grid := sheetGrid(sheet)
		headerRow := DetectHeaderRow(grid)
		headers, rows := gridToRows(grid, headerRow)
		metas = append(metas, SheetMeta{
			Name:      sheet.Name,
			Index:     i,
			HeaderRow: headerRow,
			RowCount:  len(rows),
			Headers:   headers,
		})
	}
	return metas, nil
}

func (w *xlsWorkbook) ReadSheet(name string) ([]string, []map[string]CellValue, error) {
	for i := 0; i < w.wb.NumSheets(); i++ {
		sheet := w.wb.GetSheet(i)
		if sheet == nil || sheet.Name != name {
			continue
		}
		grid := sheetGrid(sheet)
		if len(grid) == 0 {
			return nil, nil, fmt.Errorf("sheet %q is empty", name)
		}
		headers, rows := gridToRows(grid, DetectHeaderRow(grid))
		return headers, rows, nil
	}
	return nil, nil, fmt.Errorf("sheet %q not found", name)
}

func (w *xlsWorkbook) Close() error {
	if w.closer != nil {
		return w.closer.Close()
	}
	return nil
}

func sheetGrid(sheet *xls.WorkSheet) [][]string {
	var grid [][]string
	for r := 0; r <= int(sheet.MaxRow); r++ {
		row := sheet.Row(r)
		if row == nil {
			grid = append(grid, nil)
			continue
		}
		var cells []string
		for c := 0; c <= row.LastCol(); c++ {
			cells = append(cells, row.Col(c))
		}
		grid = append(grid, cells)
	}
	return grid
}
