// Package table zips per-skill result columns into a row table.
package table

import (
	"errors"
	"fmt"

	"github.com/genshinsim/gcsim/apps/damage_table/internal/damage"
)

var (
	ErrColumnLength    = errors.New("column length mismatch")
	ErrDuplicateColumn = errors.New("duplicate column")
)

// Labels is the display-label column.
type Labels struct {
	Name   string
	Values []string
}

type Column struct {
	Name   string
	Values []damage.Result
}

type Row struct {
	Label string
	Cells []damage.Result
}

// Table is row-major: Rows[i].Cells[j] belongs to Columns[j].
type Table struct {
	LabelName string
	Columns   []string
	Rows      []Row
}

// Merge zips labels and cols by row index.
func Merge(labels Labels, cols ...Column) (Table, error) {
	seen := map[string]struct{}{labels.Name: {}}
	names := make([]string, 0, len(cols))
	for _, c := range cols {
		if _, ok := seen[c.Name]; ok {
			return Table{}, fmt.Errorf("%w: %q", ErrDuplicateColumn, c.Name)
		}
		seen[c.Name] = struct{}{}
		if len(c.Values) != len(labels.Values) {
			return Table{}, fmt.Errorf("%w: %q has %d rows, %q has %d", ErrColumnLength, c.Name, len(c.Values), labels.Name, len(labels.Values))
		}
		names = append(names, c.Name)
	}

	rows := make([]Row, len(labels.Values))
	for i, label := range labels.Values {
		cells := make([]damage.Result, len(cols))
		for j, c := range cols {
			cells[j] = c.Values[i]
		}
		rows[i] = Row{Label: label, Cells: cells}
	}
	return Table{LabelName: labels.Name, Columns: names, Rows: rows}, nil
}

// Header returns the label column name followed by the result column names.
func (t Table) Header() []string {
	return append([]string{t.LabelName}, t.Columns...)
}

// ColumnIndex returns the index of name in Columns, or -1.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns the values of the named column.
func (t Table) Column(name string) ([]damage.Result, bool) {
	idx := t.ColumnIndex(name)
	if idx == -1 {
		return nil, false
	}
	out := make([]damage.Result, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Cells[idx]
	}
	return out, true
}

// Cell returns the cell at row i, column name.
func (t Table) Cell(i int, name string) (damage.Result, bool) {
	idx := t.ColumnIndex(name)
	if idx == -1 || i < 0 || i >= len(t.Rows) {
		return damage.Result{}, false
	}
	return t.Rows[i].Cells[idx], true
}
