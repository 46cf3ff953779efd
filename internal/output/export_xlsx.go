package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/genshinsim/gcsim/apps/damage_table/internal/table"

	"github.com/xuri/excelize/v2"
)

// Each result column spans three sheet columns.
var cellHeaders = []string{"Non-crit", "Crit", "Expectation"}

// Sheet is one exported table.
type Sheet struct {
	Name  string
	Table table.Table
}

func colName(n int) string {
	// 1-indexed: 1 -> A, 26 -> Z, 27 -> AA
	if n <= 0 {
		return ""
	}
	out := ""
	for n > 0 {
		n--
		out = string(rune('A'+(n%26))) + out
		n /= 26
	}
	return out
}

// resultStartCol is the first sheet column of result column i (0-indexed).
func resultStartCol(i int) int {
	return 2 + i*len(cellHeaders)
}

func sheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" {
		name = "Sheet"
	}
	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}
	return name
}

// DefaultXLSXPath is output/damage_table/<yyyymmdd>_damage_table_<name>.xlsx under appRoot.
func DefaultXLSXPath(appRoot, name string) string {
	timestamp := time.Now().Format("20060102")
	return filepath.Join(appRoot, "output", "damage_table", fmt.Sprintf("%s_damage_table_%s.xlsx", timestamp, name))
}

// ExportTablesXLSX writes one sheet per table and saves to path.
func ExportTablesXLSX(path string, sheets []Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("export xlsx: no tables")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	headerStyleID, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	numStyleID, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return err
	}

	used := make(map[string]struct{}, len(sheets))
	for i, s := range sheets {
		name := sheetName(s.Name)
		if _, ok := used[name]; ok {
			return fmt.Errorf("export xlsx: duplicate sheet name %q", name)
		}
		used[name] = struct{}{}

		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return err
		}
		if err := writeTable(f, name, s.Table, headerStyleID, numStyleID); err != nil {
			return fmt.Errorf("export xlsx: sheet %q: %w", name, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func writeTable(f *excelize.File, sheet string, t table.Table, headerStyleID, numStyleID int) error {
	// Headers (2 rows):
	// Row 1: label header (merged down) and result column names (merged across 3 columns)
	// Row 2: Non-crit / Crit / Expectation
	if err := f.SetCellValue(sheet, "A1", t.LabelName); err != nil {
		return err
	}
	if err := f.MergeCell(sheet, "A1", "A2"); err != nil {
		return err
	}
	for i, c := range t.Columns {
		start := resultStartCol(i)
		if err := f.MergeCell(sheet, fmt.Sprintf("%s1", colName(start)), fmt.Sprintf("%s1", colName(start+len(cellHeaders)-1))); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("%s1", colName(start)), c); err != nil {
			return err
		}
		for j, h := range cellHeaders {
			if err := f.SetCellValue(sheet, fmt.Sprintf("%s2", colName(start+j)), h); err != nil {
				return err
			}
		}
	}

	lastCol := colName(resultStartCol(len(t.Columns)) - 1)
	if len(t.Columns) == 0 {
		lastCol = "A"
	}
	if err := f.SetCellStyle(sheet, "A1", fmt.Sprintf("%s2", lastCol), headerStyleID); err != nil {
		return err
	}

	for rowIdx, r := range t.Rows {
		row := rowIdx + 3
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.Label); err != nil {
			return err
		}
		for i, c := range r.Cells {
			start := resultStartCol(i)
			for j, v := range []float64{c.NonCritical, c.Critical, c.Expectation} {
				if err := f.SetCellValue(sheet, fmt.Sprintf("%s%d", colName(start+j), row), v); err != nil {
					return err
				}
			}
		}
	}

	if len(t.Rows) > 0 && len(t.Columns) > 0 {
		lastRow := len(t.Rows) + 2
		if err := f.SetCellStyle(sheet, "B3", fmt.Sprintf("%s%d", lastCol, lastRow), numStyleID); err != nil {
			return err
		}
	}
	return nil
}
