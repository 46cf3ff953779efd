package attribute

import (
	"errors"
	"fmt"
	"sort"

	"github.com/genshinsim/gcsim/apps/damage_table/internal/domain"
)

var (
	ErrUnknownBuff      = errors.New("unknown buff")
	ErrInvalidBuffParam = errors.New("invalid buff param")
)

type buffFunc func(a *Attribute, b domain.Buff) error

var buffs = map[string]buffFunc{
	// Bennett burst: flat ATK from Bennett's base ATK.
	"bennett_q": func(a *Attribute, b domain.Buff) error {
		a.ATKFlat += b.Param("ratio", 1.19) * b.Param("base_atk", 800)
		return nil
	},
	"noblesse4": func(a *Attribute, _ domain.Buff) error {
		a.ATKPercent += 0.2
		return nil
	},
	"instructor4": func(a *Attribute, _ domain.Buff) error {
		a.ElementalMastery += 120
		return nil
	},
	"sucrose_a1": func(a *Attribute, _ domain.Buff) error {
		a.ElementalMastery += 50
		return nil
	},
	"zhongli_shield": func(a *Attribute, _ domain.Buff) error {
		for _, e := range domain.Elements {
			a.ResShred[e] += 0.2
		}
		return nil
	},
	"lisa_a4": func(a *Attribute, _ domain.Buff) error {
		a.DefShred += 0.15
		return nil
	},
	"mona_q": func(a *Attribute, b domain.Buff) error {
		a.DamageBonus += b.Param("bonus", 0.6)
		return nil
	},
	"vv4": func(a *Attribute, b domain.Buff) error {
		e, err := buffElement(b)
		if err != nil {
			return err
		}
		a.ResShred[e] += 0.4
		return nil
	},
	// Kazuha A4: 0.04% elemental bonus per point of Kazuha's EM.
	"kazuha_a4": func(a *Attribute, b domain.Buff) error {
		e, err := buffElement(b)
		if err != nil {
			return err
		}
		a.ElementBonus[e] += 0.0004 * b.Param("em", 800)
		return nil
	},
	// custom applies every param as a stat ("atk%": 0.2, "cr": 0.1, ...).
	"custom": func(a *Attribute, b domain.Buff) error {
		keys := make([]string, 0, len(b.Params))
		for k := range b.Params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := a.AddNamed(k, b.Params[k]); err != nil {
				return err
			}
		}
		return nil
	},
}

func buffElement(b domain.Buff) (domain.Element, error) {
	if b.Element == "" {
		return "", fmt.Errorf("%w: %s requires element", ErrInvalidBuffParam, b.Name)
	}
	e, err := domain.ParseElement(b.Element)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrInvalidBuffParam, b.Name, err)
	}
	return e, nil
}

func applyBuff(a *Attribute, b domain.Buff) error {
	f, ok := buffs[b.Name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownBuff, b.Name)
	}
	if err := f(a, b); err != nil {
		return fmt.Errorf("buff %s: %w", b.Name, err)
	}
	return nil
}

// BuffNames lists the supported buffs, sorted.
func BuffNames() []string {
	out := make([]string, 0, len(buffs))
	for k := range buffs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
