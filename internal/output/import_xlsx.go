package output

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/genshinsim/gcsim/apps/damage_table/internal/damage"
	"github.com/genshinsim/gcsim/apps/damage_table/internal/table"

	"github.com/xuri/excelize/v2"
)

func parseFloatCell(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	// Handle comma decimal separator.
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ImportTableXLSX reads a table written by ExportTablesXLSX.
// An empty sheet name selects the first sheet.
func ImportTableXLSX(path, sheet string) (table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return table.Table{}, fmt.Errorf("open xlsx %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return table.Table{}, fmt.Errorf("xlsx %q: no sheets", filepath.Base(path))
		}
		sheet = list[0]
	} else if idx, _ := f.GetSheetIndex(sheet); idx == -1 {
		return table.Table{}, fmt.Errorf("xlsx %q: missing sheet %q", filepath.Base(path), sheet)
	}

	raw := excelize.Options{RawCellValue: true}
	get := func(cell string) string {
		v, _ := f.GetCellValue(sheet, cell, raw)
		return strings.TrimSpace(v)
	}

	t := table.Table{LabelName: get("A1")}
	for i := 0; ; i++ {
		name := get(fmt.Sprintf("%s1", colName(resultStartCol(i))))
		if name == "" {
			break
		}
		t.Columns = append(t.Columns, name)
	}

	for row := 3; ; row++ {
		label := get(fmt.Sprintf("A%d", row))
		if label == "" {
			break
		}
		cells := make([]damage.Result, len(t.Columns))
		for i := range t.Columns {
			start := resultStartCol(i)
			var vals [3]float64
			for j := range vals {
				cell := fmt.Sprintf("%s%d", colName(start+j), row)
				v, ok := parseFloatCell(get(cell))
				if !ok {
					return table.Table{}, fmt.Errorf("xlsx %q: sheet %q cell %s: expected a number, got %q", filepath.Base(path), sheet, cell, get(cell))
				}
				vals[j] = v
			}
			cells[i] = damage.Result{NonCritical: vals[0], Critical: vals[1], Expectation: vals[2]}
		}
		t.Rows = append(t.Rows, table.Row{Label: label, Cells: cells})
	}
	return t, nil
}
