package attribute

import (
	"fmt"

	"github.com/genshinsim/gcsim/apps/damage_table/internal/domain"
)

// Attribute is a character's resolved combat stats.
type Attribute struct {
	Character  string
	Element    domain.Element
	WeaponType string
	Level      int

	BaseHP  float64
	BaseATK float64
	BaseDEF float64

	HPPercent  float64
	HPFlat     float64
	ATKPercent float64
	ATKFlat    float64
	DEFPercent float64
	DEFFlat    float64

	ElementalMastery float64
	CritRate         float64
	CritDamage       float64
	Recharge         float64
	HealingBonus     float64

	// DamageBonus applies to every hit.
	DamageBonus   float64
	ElementBonus  map[domain.Element]float64
	SkillBonus    map[domain.SkillSlot]float64
	ReactionBonus map[domain.Reaction]float64

	// ResShred and DefShred are applied to the enemy.
	ResShred map[domain.Element]float64
	DefShred float64
}

func newAttribute() Attribute {
	return Attribute{
		CritRate:      0.05,
		CritDamage:    0.5,
		Recharge:      1,
		ElementBonus:  make(map[domain.Element]float64),
		SkillBonus:    make(map[domain.SkillSlot]float64),
		ReactionBonus: make(map[domain.Reaction]float64),
		ResShred:      make(map[domain.Element]float64),
	}
}

func (a Attribute) HP() float64  { return a.BaseHP*(1+a.HPPercent) + a.HPFlat }
func (a Attribute) ATK() float64 { return a.BaseATK*(1+a.ATKPercent) + a.ATKFlat }
func (a Attribute) DEF() float64 { return a.BaseDEF*(1+a.DEFPercent) + a.DEFFlat }

// Total returns the total value of a convertible stat.
func (a Attribute) Total(s domain.Stat) float64 {
	switch s {
	case domain.StatHP:
		return a.HP()
	case domain.StatATK:
		return a.ATK()
	case domain.StatDEF:
		return a.DEF()
	case domain.StatEM:
		return a.ElementalMastery
	case domain.StatER:
		return a.Recharge
	}
	return 0
}

// BonusFor is the additive damage bonus for a hit of element e from slot.
func (a Attribute) BonusFor(e domain.Element, slot domain.SkillSlot) float64 {
	return a.DamageBonus + a.ElementBonus[e] + a.SkillBonus[slot]
}

// Add applies v to stat s.
func (a *Attribute) Add(s domain.Stat, v float64) error {
	switch s {
	case domain.StatHP:
		a.HPFlat += v
	case domain.StatHPP:
		a.HPPercent += v
	case domain.StatATK:
		a.ATKFlat += v
	case domain.StatATKP:
		a.ATKPercent += v
	case domain.StatDEF:
		a.DEFFlat += v
	case domain.StatDEFP:
		a.DEFPercent += v
	case domain.StatEM:
		a.ElementalMastery += v
	case domain.StatER:
		a.Recharge += v
	case domain.StatCR:
		a.CritRate += v
	case domain.StatCD:
		a.CritDamage += v
	case domain.StatHeal:
		a.HealingBonus += v
	case domain.StatDmgP:
		a.DamageBonus += v
	case domain.StatElementalP:
		for _, e := range domain.Elements {
			if e != domain.Physical {
				a.ElementBonus[e] += v
			}
		}
	default:
		e, ok := s.BonusElement()
		if !ok {
			return fmt.Errorf("%w: %q", domain.ErrUnknownStat, s)
		}
		a.ElementBonus[e] += v
	}
	return nil
}

// AddNamed parses name and applies v.
func (a *Attribute) AddNamed(name string, v float64) error {
	s, err := domain.ParseStat(name)
	if err != nil {
		return err
	}
	return a.Add(s, v)
}
