package output

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/genshinsim/gcsim/apps/damage_table/internal/damage"
	"github.com/genshinsim/gcsim/apps/damage_table/internal/domain"
	"github.com/genshinsim/gcsim/apps/damage_table/internal/formula"
	"github.com/genshinsim/gcsim/apps/damage_table/internal/table"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/xuri/excelize/v2"
)

func sampleTable() table.Table {
	return table.Table{
		LabelName: "chs",
		Columns:   []string{"normal", "normalMelt"},
		Rows: []table.Row{
			{Label: "蹦蹦炸弹伤害", Cells: []damage.Result{
				{NonCritical: 1000.5, Critical: 2001, Expectation: 1500.75},
				{NonCritical: 2001, Critical: 4002, Expectation: 3001.5},
			}},
			{Label: "诡雷伤害", Cells: []damage.Result{
				{NonCritical: 300, Critical: 600, Expectation: 450},
				{NonCritical: 600, Critical: 1200, Expectation: 900},
			}},
		},
	}
}

func TestColName(t *testing.T) {
	cases := map[int]string{0: "", 1: "A", 2: "B", 26: "Z", 27: "AA", 52: "AZ", 53: "BA", 702: "ZZ", 703: "AAA"}
	for n, want := range cases {
		if got := colName(n); got != want {
			t.Fatalf("colName(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestSheetName(t *testing.T) {
	if got := sheetName(" klee/e:hilichurl "); got != "klee_e_hilichurl" {
		t.Fatalf("unexpected sheet name %q", got)
	}
	if got := sheetName(""); got != "Sheet" {
		t.Fatalf("expected fallback name, got %q", got)
	}
	if got := []rune(sheetName(strings.Repeat("蹦", 40))); len(got) != 31 {
		t.Fatalf("expected sheet name capped at 31 runes, got %d", len(got))
	}
}

func TestExportImportXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.xlsx")
	want := sampleTable()
	other := sampleTable()
	other.Rows = other.Rows[:1]

	err := ExportTablesXLSX(path, []Sheet{{Name: "hilichurl", Table: want}, {Name: "ruin_guard", Table: other}})
	if err != nil {
		t.Fatalf("ExportTablesXLSX: %v", err)
	}

	got, err := ImportTableXLSX(path, "")
	if err != nil {
		t.Fatalf("ImportTableXLSX: %v", err)
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Fatalf("unexpected first sheet (-want +got):\n%s", diff)
	}

	second, err := ImportTableXLSX(path, "ruin_guard")
	if err != nil {
		t.Fatalf("ImportTableXLSX: %v", err)
	}
	if len(second.Rows) != 1 || second.Rows[0].Label != "蹦蹦炸弹伤害" {
		t.Fatalf("unexpected second sheet: %#v", second)
	}

	if _, err := ImportTableXLSX(path, "missing"); err == nil {
		t.Fatalf("expected missing sheet error")
	}
}

func TestExportXLSX_Errors(t *testing.T) {
	dir := t.TempDir()
	if err := ExportTablesXLSX(filepath.Join(dir, "a.xlsx"), nil); err == nil {
		t.Fatalf("expected error for no tables")
	}
	s := Sheet{Name: "same", Table: sampleTable()}
	if err := ExportTablesXLSX(filepath.Join(dir, "b.xlsx"), []Sheet{s, s}); err == nil {
		t.Fatalf("expected duplicate sheet name error")
	}
}

func TestDefaultXLSXPath(t *testing.T) {
	got := DefaultXLSXPath("/app", "klee_e")
	if filepath.Dir(got) != filepath.Join("/app", "output", "damage_table") {
		t.Fatalf("unexpected dir: %s", got)
	}
	if !strings.HasSuffix(got, "_damage_table_klee_e.xlsx") {
		t.Fatalf("unexpected file name: %s", got)
	}
}

func TestParseFloatCell(t *testing.T) {
	if v, ok := parseFloatCell(" 12,5 "); !ok || v != 12.5 {
		t.Fatalf("expected 12.5, got %v ok=%v", v, ok)
	}
	if _, ok := parseFloatCell(""); ok {
		t.Fatalf("expected empty cell to be rejected")
	}
	if _, ok := parseFloatCell("abc"); ok {
		t.Fatalf("expected text cell to be rejected")
	}
}

func TestDiffTables(t *testing.T) {
	base := sampleTable()
	current := sampleTable()
	current.Rows[1].Cells[1].Expectation = 990
	current.Rows[0].Cells[0].Expectation += 0.01
	current.Rows = append(current.Rows, table.Row{Label: "new", Cells: make([]damage.Result, 2)})

	got := DiffTables(base, current, 0.05)
	want := []Delta{{Row: "诡雷伤害", Column: "normalMelt", Base: 900, Current: 990}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected deltas (-want +got):\n%s", diff)
	}
	if r := got[0].Ratio(); r < 1.0999 || r > 1.1001 {
		t.Fatalf("expected ratio 1.1, got %v", r)
	}
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, "klee.e vs dummy", sampleTable())
	out := buf.String()

	for _, s := range []string{"klee.e vs dummy", "chs", "normalMelt", "蹦蹦炸弹伤害", "诡雷伤害", "450.0", "3001.5"} {
		if !strings.Contains(out, s) {
			t.Fatalf("expected output to contain %q:\n%s", s, out)
		}
	}
	if lines := strings.Split(strings.TrimSpace(out), "\n"); len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), out)
	}

	buf.Reset()
	PrintTable(&buf, "", table.Table{LabelName: "chs"})
	if strings.TrimSpace(buf.String()) != "No results" {
		t.Fatalf("unexpected empty output: %q", buf.String())
	}

	buf.Reset()
	PrintDeltas(&buf, nil)
	if strings.TrimSpace(buf.String()) != "No differences" {
		t.Fatalf("unexpected empty deltas output: %q", buf.String())
	}
	buf.Reset()
	PrintDeltas(&buf, []Delta{{Row: "诡雷伤害", Column: "normal", Base: 100, Current: 110}})
	if !strings.Contains(buf.String(), "+10.00%") {
		t.Fatalf("unexpected deltas output: %q", buf.String())
	}
}

func TestImportXLSX_RejectsNonNumericCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := ExportTablesXLSX(path, []Sheet{{Name: "hilichurl", Table: sampleTable()}}); err != nil {
		t.Fatalf("ExportTablesXLSX: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := f.SetCellValue("hilichurl", "B3", "abc"); err != nil {
		t.Fatalf("SetCellValue: %v", err)
	}
	if err := f.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	_ = f.Close()

	_, err = ImportTableXLSX(path, "")
	if err == nil || !strings.Contains(err.Error(), "cell B3") || !strings.Contains(err.Error(), `"abc"`) {
		t.Fatalf("expected non-numeric cell error, got %v", err)
	}
}

func TestPrintDeltas_FromZero(t *testing.T) {
	var buf bytes.Buffer
	PrintDeltas(&buf, []Delta{{Row: "频率超限回路", Column: "normal", Base: 0, Current: 1200}})
	out := buf.String()
	if !strings.Contains(out, "0.0 -> 1200.0 (new)") || strings.Contains(out, "Inf") {
		t.Fatalf("unexpected deltas output: %q", out)
	}
}

func TestPrintScore(t *testing.T) {
	var buf bytes.Buffer
	PrintScore(&buf, formula.Score{
		Target: "ineffa_default",
		Total:  1700,
		Terms: []formula.TermScore{
			{Slot: domain.SlotSkill, Keys: []string{"dmg", "overclock"}, Damage: 1000, Scale: 1.44, Score: 1440},
			{Slot: domain.SlotBurst, Keys: []string{"dmg"}, Damage: 433.3, Scale: 0.6, Score: 260},
		},
	})
	want := "- e [dmg, overclock]: 1000.0 x 1.44 = 1440.0\n- q [dmg]: 433.3 x 0.60 = 260.0\ntotal: 1700.0\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("unexpected score output (-want +got):\n%s", diff)
	}
}
