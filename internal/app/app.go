package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/genshinsim/gcsim/apps/damage_table/internal/attribute"
	"github.com/genshinsim/gcsim/apps/damage_table/internal/config"
	"github.com/genshinsim/gcsim/apps/damage_table/internal/domain"
	"github.com/genshinsim/gcsim/apps/damage_table/internal/engine"
	"github.com/genshinsim/gcsim/apps/damage_table/internal/formula"
	"github.com/genshinsim/gcsim/apps/damage_table/internal/output"

	"go.uber.org/zap"
)

type Options struct {
	// ConfigPath overrides the damage_table.yaml lookup.
	ConfigPath string
	// XLSXPath overrides output.xlsx_path.
	XLSXPath string
	// BasePath is the previous export compared against (compare only).
	BasePath  string
	BaseSheet string
	// Parallel overrides the config's batch parallelism when > 0.
	Parallel int
	// Target overrides target.name (score only).
	Target string
	// Params override target params (score only).
	Params map[string]float64

	Stdout io.Writer
	Logger *zap.Logger
}

type session struct {
	appRoot   string
	cfg       domain.Config
	formula   formula.Formula
	registry  *formula.Registry
	evaluator *formula.Evaluator
	out       io.Writer
	log       *zap.Logger
}

func newSession(opts Options) (*session, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}

	configPath := opts.ConfigPath
	var appRoot string
	if strings.TrimSpace(configPath) == "" {
		root, err := FindRoot()
		if err != nil {
			return nil, err
		}
		appRoot = root
		configPath = filepath.Join(root, ConfigFileName)
	} else {
		abs, err := filepath.Abs(configPath)
		if err != nil {
			return nil, err
		}
		configPath = abs
		appRoot = filepath.Dir(abs)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	slot, err := config.FormulaSlot(cfg)
	if err != nil {
		return nil, err
	}
	reg := formula.Default()
	f, err := reg.Lookup(cfg.Formula.Character, slot)
	if err != nil {
		return nil, err
	}
	catalog, err := engine.LoadCatalog()
	if err != nil {
		return nil, fmt.Errorf("load engine data: %w", err)
	}

	log.Debug("session ready",
		zap.String("config", configPath),
		zap.String("formula", formula.Key{Character: f.Character, Slot: f.Slot}.String()),
		zap.Int("enemies", len(cfg.Enemies)),
	)
	return &session{
		appRoot:   appRoot,
		cfg:       cfg,
		formula:   f,
		registry:  reg,
		evaluator: formula.NewEvaluator(catalog, log),
		out:       out,
		log:       log,
	}, nil
}

func (s *session) xlsxPath(override string) string {
	p := strings.TrimSpace(override)
	if p == "" {
		p = strings.TrimSpace(s.cfg.Output.XLSXPath)
	}
	if p == "" {
		return ""
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(s.appRoot, p)
	}
	return p
}

func (s *session) title(enemy domain.Enemy) string {
	return fmt.Sprintf("%s vs %s (lv%d)", formula.Key{Character: s.formula.Character, Slot: s.formula.Slot}, enemy.Name, enemy.Level)
}

// runCalc evaluates the configured formula against the first enemy.
func runCalc(opts Options) error {
	s, err := newSession(opts)
	if err != nil {
		return err
	}
	enemy := s.cfg.Enemies[0]
	t, err := s.evaluator.Evaluate(s.formula, s.cfg.Artifacts, s.cfg.ConfigObject(), enemy)
	if err != nil {
		return err
	}
	output.PrintTable(s.out, s.title(enemy), t)

	if path := s.xlsxPath(opts.XLSXPath); path != "" {
		if err := output.ExportTablesXLSX(path, []output.Sheet{{Name: enemy.Name, Table: t}}); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Exported results to", path)
	}
	return nil
}

// runBatch evaluates the configured formula against every enemy and always exports xlsx.
func runBatch(ctx context.Context, opts Options) error {
	start := time.Now()
	s, err := newSession(opts)
	if err != nil {
		return err
	}
	parallel := s.cfg.Parallel
	if opts.Parallel > 0 {
		parallel = opts.Parallel
	}

	tables, err := s.evaluator.EvaluateEnemies(ctx, s.formula, s.cfg.Artifacts, s.cfg.ConfigObject(), s.cfg.Enemies, parallel)
	if err != nil {
		return err
	}

	sheets := make([]output.Sheet, len(tables))
	for i, t := range tables {
		enemy := s.cfg.Enemies[i]
		output.PrintTable(s.out, s.title(enemy), t)
		fmt.Fprintln(s.out)
		sheets[i] = output.Sheet{Name: enemy.Name, Table: t}
	}

	path := s.xlsxPath(opts.XLSXPath)
	if path == "" {
		path = output.DefaultXLSXPath(s.appRoot, s.cfg.Output.Name)
	}
	if err := output.ExportTablesXLSX(path, sheets); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Exported results to", path)
	s.log.Info("batch finished",
		zap.Int("enemies", len(tables)),
		zap.Int("parallel", parallel),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// runCompare evaluates against the first enemy and diffs with a previous export.
func runCompare(opts Options) error {
	if strings.TrimSpace(opts.BasePath) == "" {
		return ExitWithError(2, fmt.Errorf("compare: --base is required"))
	}
	s, err := newSession(opts)
	if err != nil {
		return err
	}
	base, err := output.ImportTableXLSX(opts.BasePath, opts.BaseSheet)
	if err != nil {
		return err
	}
	enemy := s.cfg.Enemies[0]
	t, err := s.evaluator.Evaluate(s.formula, s.cfg.Artifacts, s.cfg.ConfigObject(), enemy)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, s.title(enemy))
	deltas := output.DiffTables(base, t, 0.05)
	output.PrintDeltas(s.out, deltas)
	if len(deltas) > 0 {
		return Exit(1)
	}
	return nil
}

// runScore evaluates the configured target against the first enemy.
func runScore(opts Options) error {
	s, err := newSession(opts)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(opts.Target)
	if name == "" {
		name = strings.TrimSpace(s.cfg.Target.Name)
	}
	if name == "" {
		return ExitWithError(2, fmt.Errorf("score: no target (set target.name or pass --target)"))
	}
	target, err := s.registry.LookupTarget(name)
	if err != nil {
		return ExitWithError(2, err)
	}
	if target.Character != s.cfg.Character.Name {
		return ExitWithError(2, fmt.Errorf("score: target %s is for %s, config character is %s", target.Name, target.Character, s.cfg.Character.Name))
	}

	params := make(map[string]float64, len(s.cfg.Target.Params)+len(opts.Params))
	for k, v := range s.cfg.Target.Params {
		params[k] = v
	}
	for k, v := range opts.Params {
		params[k] = v
	}

	enemy := s.cfg.Enemies[0]
	score, err := s.evaluator.Score(s.registry, target, s.cfg.Artifacts, s.cfg.ConfigObject(), enemy, params)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s vs %s (lv%d)\n", target.Name, enemy.Name, enemy.Level)
	output.PrintScore(s.out, score)
	return nil
}

// runList prints every registered formula and target, then the known buffs and sets.
func runList(w io.Writer) {
	reg := formula.Default()
	fmt.Fprintln(w, "formulas:")
	for _, k := range reg.Keys() {
		f, err := reg.Lookup(k.Character, k.Slot)
		if err != nil {
			continue
		}
		cols := make([]string, len(f.Columns))
		for i, c := range f.Columns {
			cols[i] = c.Name
		}
		fmt.Fprintf(w, "  %s: %s [%s]\n", k, strings.Join(f.Labels(), ", "), strings.Join(cols, ", "))
	}
	fmt.Fprintln(w, "targets:")
	for _, name := range reg.TargetNames() {
		t, err := reg.LookupTarget(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "  %s (%s)\n", t.Name, t.Character)
	}
	fmt.Fprintf(w, "buffs: %s\n", strings.Join(attribute.BuffNames(), ", "))
	fmt.Fprintf(w, "sets: %s\n", strings.Join(attribute.SetNames(), ", "))
}
