package formula

import (
	"github.com/genshinsim/gcsim/apps/damage_table/internal/attribute"
	"github.com/genshinsim/gcsim/apps/damage_table/internal/damage"
	"github.com/genshinsim/gcsim/apps/damage_table/internal/domain"
	"github.com/genshinsim/gcsim/apps/damage_table/internal/engine"
	"github.com/genshinsim/gcsim/apps/damage_table/internal/table"

	"go.uber.org/zap"
)

// LabelColumn is the name of the display-label column in every formula table.
const LabelColumn = "chs"

// Column is one result column. A column without a reaction is the plain hit.
type Column struct {
	Name     string
	Reaction domain.Reaction
}

// Formula is the static description of one character skill's damage table.
type Formula struct {
	Character string
	Slot      domain.SkillSlot
	SkillKeys []domain.SkillKey
	Columns   []Column
}

// Labels returns the chs label of every skill key, in order.
func (f Formula) Labels() []string {
	out := make([]string, len(f.SkillKeys))
	for i, k := range f.SkillKeys {
		out[i] = k.Chs
	}
	return out
}

// AttributeResolver is the getAttribute collaborator.
type AttributeResolver interface {
	Resolve(artifacts domain.Artifacts, character domain.Character, weapon domain.Weapon, buffs []domain.Buff) (attribute.Attribute, error)
}

// DamageTable computes one column of results per call, one Result per skill key.
type DamageTable interface {
	TableNormal(attr attribute.Attribute, cfg domain.ConfigObject, enemy domain.Enemy, keys []domain.SkillKey, slot domain.SkillSlot) ([]damage.Result, error)
	TableReaction(r domain.Reaction, attr attribute.Attribute, cfg domain.ConfigObject, enemy domain.Enemy, keys []domain.SkillKey, slot domain.SkillSlot) ([]damage.Result, error)
}

// Evaluator runs formulas. It holds no mutable state.
type Evaluator struct {
	Attributes AttributeResolver
	Damage     DamageTable
}

// NewEvaluator wires the catalog-backed resolver and calculator.
func NewEvaluator(catalog *engine.Catalog, log *zap.Logger) *Evaluator {
	return &Evaluator{
		Attributes: attribute.NewResolver(catalog, log),
		Damage:     damage.NewCalculator(catalog, log),
	}
}

// Evaluate builds the damage table of f. Collaborator errors are returned as-is.
func (e *Evaluator) Evaluate(f Formula, artifacts domain.Artifacts, cfg domain.ConfigObject, enemy domain.Enemy) (table.Table, error) {
	attr, err := e.Attributes.Resolve(artifacts, cfg.Character, cfg.Weapon, cfg.Buffs)
	if err != nil {
		return table.Table{}, err
	}

	cols := make([]table.Column, 0, len(f.Columns))
	for _, c := range f.Columns {
		var values []damage.Result
		if c.Reaction == domain.NoReaction {
			values, err = e.Damage.TableNormal(attr, cfg, enemy, f.SkillKeys, f.Slot)
		} else {
			values, err = e.Damage.TableReaction(c.Reaction, attr, cfg, enemy, f.SkillKeys, f.Slot)
		}
		if err != nil {
			return table.Table{}, err
		}
		cols = append(cols, table.Column{Name: c.Name, Values: values})
	}

	return table.Merge(table.Labels{Name: LabelColumn, Values: f.Labels()}, cols...)
}
