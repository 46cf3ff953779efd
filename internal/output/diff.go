package output

import (
	"math"

	"github.com/genshinsim/gcsim/apps/damage_table/internal/table"
)

// Delta is a changed expectation between two tables.
type Delta struct {
	Row     string
	Column  string
	Base    float64
	Current float64
}

// Ratio is Current / Base, or +Inf when Base is 0.
func (d Delta) Ratio() float64 {
	if d.Base == 0 {
		return math.Inf(1)
	}
	return d.Current / d.Base
}

// DiffTables compares expectations of cells present in both tables (matched by
// row label and column name) and returns the ones that differ by more than eps,
// in current-table order.
func DiffTables(base, current table.Table, eps float64) []Delta {
	baseRows := make(map[string]table.Row, len(base.Rows))
	for _, r := range base.Rows {
		baseRows[r.Label] = r
	}

	var out []Delta
	for _, r := range current.Rows {
		br, ok := baseRows[r.Label]
		if !ok {
			continue
		}
		for j, col := range current.Columns {
			bi := base.ColumnIndex(col)
			if bi == -1 {
				continue
			}
			b := br.Cells[bi].Expectation
			c := r.Cells[j].Expectation
			if math.Abs(b-c) <= eps {
				continue
			}
			out = append(out, Delta{Row: r.Label, Column: col, Base: b, Current: c})
		}
	}
	return out
}
