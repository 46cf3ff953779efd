package damage

import (
	"math"

	"github.com/genshinsim/gcsim/apps/damage_table/internal/attribute"
	"github.com/genshinsim/gcsim/apps/damage_table/internal/domain"
	"github.com/genshinsim/gcsim/apps/damage_table/internal/engine"

	"go.uber.org/zap"
)

// Result is the damage of one hit.
type Result struct {
	Critical    float64
	NonCritical float64
	Expectation float64
}

// Hit describes a single ATK-scaling damage instance.
type Hit struct {
	Ratio    float64
	Element  domain.Element
	Slot     domain.SkillSlot
	Reaction domain.Reaction
}

// Compute returns the damage of h dealt by attr against enemy.
func Compute(h Hit, attr attribute.Attribute, enemy domain.Enemy) (Result, error) {
	amp, err := AmplifyingMultiplier(h.Reaction, h.Element, attr.ElementalMastery, attr.ReactionBonus[h.Reaction])
	if err != nil {
		return Result{}, err
	}

	base := h.Ratio * attr.ATK()
	bonus := 1 + attr.BonusFor(h.Element, h.Slot)
	def := DefenseMultiplier(attr.Level, enemy.Level, attr.DefShred)
	res := ResistanceMultiplier(enemy.Resistance(h.Element) - attr.ResShred[h.Element])

	nonCrit := base * bonus * def * res * amp
	crit := nonCrit * (1 + attr.CritDamage)
	cr := math.Max(0, math.Min(1, attr.CritRate))
	return Result{
		Critical:    crit,
		NonCritical: nonCrit,
		Expectation: nonCrit * (1 + cr*attr.CritDamage),
	}, nil
}

// Calculator builds per-skill damage tables from catalog multipliers.
type Calculator struct {
	catalog *engine.Catalog
	log     *zap.Logger
}

// NewCalculator returns a Calculator reading multipliers from catalog. A nil log discards debug output.
func NewCalculator(catalog *engine.Catalog, log *zap.Logger) *Calculator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Calculator{catalog: catalog, log: log}
}

// TableNormal returns the non-reactive damage of every key, in key order.
func (c *Calculator) TableNormal(attr attribute.Attribute, cfg domain.ConfigObject, enemy domain.Enemy, keys []domain.SkillKey, slot domain.SkillSlot) ([]Result, error) {
	return c.table(domain.NoReaction, attr, cfg, enemy, keys, slot)
}

// TableReaction returns the damage of every key when it triggers r.
func (c *Calculator) TableReaction(r domain.Reaction, attr attribute.Attribute, cfg domain.ConfigObject, enemy domain.Enemy, keys []domain.SkillKey, slot domain.SkillSlot) ([]Result, error) {
	return c.table(r, attr, cfg, enemy, keys, slot)
}

func (c *Calculator) table(r domain.Reaction, attr attribute.Attribute, cfg domain.ConfigObject, enemy domain.Enemy, keys []domain.SkillKey, slot domain.SkillSlot) ([]Result, error) {
	level, err := cfg.Character.Skill.Level(slot)
	if err != nil {
		return nil, err
	}

	out := make([]Result, 0, len(keys))
	for _, k := range keys {
		if k.Option != "" && !cfg.Character.Option(k.Option) {
			out = append(out, Result{})
			continue
		}
		ratio, err := c.catalog.SkillMultiplier(cfg.Character.Name, slot, k.Key, level)
		if err != nil {
			return nil, err
		}
		res, err := Compute(Hit{Ratio: ratio, Element: k.Element, Slot: slot, Reaction: r}, attr, enemy)
		if err != nil {
			return nil, err
		}
		c.log.Debug("damage",
			zap.String("character", cfg.Character.Name),
			zap.String("key", k.Key),
			zap.String("reaction", string(r)),
			zap.Float64("ratio", ratio),
			zap.Float64("expectation", res.Expectation),
		)
		out = append(out, res)
	}
	return out, nil
}
