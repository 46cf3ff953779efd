package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/genshinsim/gcsim/apps/damage_table/internal/domain"

	"gopkg.in/yaml.v3"
)

const (
	defaultLevel       = "90"
	defaultTalentLevel = 10
	defaultEnemyLevel  = 90
	defaultParallel    = 4
)

// Load reads a damage_table.yaml and fills in defaults.
func Load(path string) (domain.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Config{}, fmt.Errorf("read config (%s): %w", path, err)
	}
	return Parse(b)
}

func Parse(b []byte) (domain.Config, error) {
	var cfg domain.Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(&cfg)
	for i := range cfg.Enemies {
		if err := cfg.Enemies[i].NormalizeResistances(); err != nil {
			return domain.Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	return cfg, nil
}

func applyDefaults(cfg *domain.Config) {
	if strings.TrimSpace(cfg.Character.Level) == "" {
		cfg.Character.Level = defaultLevel
	}
	for _, lvl := range []*int{&cfg.Character.Skill.A, &cfg.Character.Skill.E, &cfg.Character.Skill.Q} {
		if *lvl == 0 {
			*lvl = defaultTalentLevel
		}
	}
	if strings.TrimSpace(cfg.Weapon.Level) == "" {
		cfg.Weapon.Level = defaultLevel
	}
	if cfg.Weapon.Refine == 0 {
		cfg.Weapon.Refine = 1
	}

	if strings.TrimSpace(cfg.Formula.Character) == "" {
		cfg.Formula.Character = cfg.Character.Name
	}
	if strings.TrimSpace(cfg.Formula.Skill) == "" {
		cfg.Formula.Skill = string(domain.SlotSkill)
	}

	if len(cfg.Enemies) == 0 {
		cfg.Enemies = []domain.Enemy{{}}
	}
	for i := range cfg.Enemies {
		e := &cfg.Enemies[i]
		if strings.TrimSpace(e.Name) == "" {
			e.Name = fmt.Sprintf("enemy%d", i+1)
		}
		if e.Level == 0 {
			e.Level = defaultEnemyLevel
		}
	}

	if cfg.Parallel <= 0 {
		cfg.Parallel = defaultParallel
	}
	if strings.TrimSpace(cfg.Output.Name) == "" {
		cfg.Output.Name = cfg.Formula.Character + "_" + cfg.Formula.Skill
	}
}

// FormulaSlot parses the configured skill slot.
func FormulaSlot(cfg domain.Config) (domain.SkillSlot, error) {
	slot, err := domain.ParseSkillSlot(cfg.Formula.Skill)
	if err != nil {
		return "", fmt.Errorf("formula.skill: %w", err)
	}
	return slot, nil
}
