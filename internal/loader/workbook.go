package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/san-kum/pyramid/internal/dataset"
	"github.com/xuri/excelize/v2"
)

// WorkbookLoader reads one sheet of an xlsx file and renders its rows in
// the dataset dialect, so spreadsheets exported by census offices can be
// used without conversion.
type WorkbookLoader struct {
	Dir   string
	Sheet string
}

func (l WorkbookLoader) LoadText(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &LoadError{Name: name, Err: err}
	}
	p := name
	if !filepath.IsAbs(p) {
		p = filepath.Join(l.Dir, p)
	}

	f, err := excelize.OpenFile(p)
	if err != nil {
		return "", &LoadError{Name: name, Err: err}
	}
	defer f.Close()

	sheet := l.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return "", &LoadError{Name: name, Err: fmt.Errorf("workbook has no sheets")}
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return "", &LoadError{Name: name, Err: err}
	}
	return RowsToText(rows), nil
}

// RowsToText joins spreadsheet rows into dialect text, one line per row.
func RowsToText(rows [][]string) string {
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = dataset.FormatRow(row)
	}
	return strings.Join(lines, "\n")
}
