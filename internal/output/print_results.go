package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/genshinsim/gcsim/apps/damage_table/internal/formula"
	"github.com/genshinsim/gcsim/apps/damage_table/internal/table"

	"github.com/mattn/go-runewidth"
)

const cellWidth = 12

// PrintTable writes t as an aligned text table: one line per row,
// expectation / crit / non-crit per column.
func PrintTable(w io.Writer, title string, t table.Table) {
	if title != "" {
		fmt.Fprintln(w, title)
	}
	if len(t.Rows) == 0 {
		fmt.Fprintln(w, "No results")
		return
	}

	// Labels are mostly CJK, so pad by display width rather than rune count.
	labelWidth := runewidth.StringWidth(t.LabelName)
	for _, r := range t.Rows {
		labelWidth = max(labelWidth, runewidth.StringWidth(r.Label))
	}

	var sb strings.Builder
	sb.WriteString(runewidth.FillRight(t.LabelName, labelWidth))
	for _, c := range t.Columns {
		sb.WriteString("  ")
		sb.WriteString(runewidth.FillRight(c, cellWidth*3+2))
	}
	fmt.Fprintln(w, strings.TrimRight(sb.String(), " "))

	for _, r := range t.Rows {
		sb.Reset()
		sb.WriteString(runewidth.FillRight(r.Label, labelWidth))
		for _, c := range r.Cells {
			fmt.Fprintf(&sb, "  %*.1f %*.1f %*.1f", cellWidth, c.Expectation, cellWidth, c.Critical, cellWidth, c.NonCritical)
		}
		fmt.Fprintln(w, sb.String())
	}
}

// PrintDeltas writes one line per changed cell.
func PrintDeltas(w io.Writer, deltas []Delta) {
	if len(deltas) == 0 {
		fmt.Fprintln(w, "No differences")
		return
	}
	for _, d := range deltas {
		if d.Base == 0 {
			fmt.Fprintf(w, "- %s / %s: %.1f -> %.1f (new)\n", d.Row, d.Column, d.Base, d.Current)
			continue
		}
		fmt.Fprintf(w, "- %s / %s: %.1f -> %.1f (%+.2f%%)\n", d.Row, d.Column, d.Base, d.Current, (d.Ratio()-1)*100)
	}
}

// PrintScore writes one line per term followed by the total.
func PrintScore(w io.Writer, s formula.Score) {
	for _, t := range s.Terms {
		fmt.Fprintf(w, "- %s [%s]: %.1f x %.2f = %.1f\n", t.Slot, strings.Join(t.Keys, ", "), t.Damage, t.Scale, t.Score)
	}
	fmt.Fprintf(w, "total: %.1f\n", s.Total)
}
