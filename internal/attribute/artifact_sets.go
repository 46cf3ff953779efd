package attribute

import (
	"fmt"
	"math"
	"sort"

	"github.com/genshinsim/gcsim/apps/damage_table/internal/domain"
)

type setEffect struct {
	two  func(a *Attribute)
	four func(a *Attribute)
	// final runs after conversions, for 4pc effects that read totals.
	final func(a *Attribute)
}

var artifactSets = map[string]setEffect{
	"crimsonwitchofflames": {
		two: func(a *Attribute) { a.ElementBonus[domain.Pyro] += 0.15 },
		four: func(a *Attribute) {
			a.ReactionBonus[domain.Melt] += 0.15
			a.ReactionBonus[domain.Vaporize] += 0.15
		},
	},
	"gladiatorsfinale": {
		two: func(a *Attribute) { a.ATKPercent += 0.18 },
		four: func(a *Attribute) {
			switch a.WeaponType {
			case "sword", "claymore", "polearm":
				a.SkillBonus[domain.SlotNormal] += 0.35
			}
		},
	},
	"wandererstroupe": {
		two: func(a *Attribute) { a.ElementalMastery += 80 },
	},
	"gildeddreams": {
		two: func(a *Attribute) { a.ElementalMastery += 80 },
	},
	"thunderingfury": {
		two: func(a *Attribute) { a.ElementBonus[domain.Electro] += 0.15 },
	},
	"noblesseoblige": {
		two: func(a *Attribute) { a.SkillBonus[domain.SlotBurst] += 0.2 },
	},
	"shimenawasreminiscence": {
		two: func(a *Attribute) { a.ATKPercent += 0.18 },
	},
	"emblemofseveredfate": {
		two: func(a *Attribute) { a.Recharge += 0.2 },
		final: func(a *Attribute) {
			a.SkillBonus[domain.SlotBurst] += math.Min(0.25*a.Recharge, 0.75)
		},
	},
}

// applySetEffects applies 2pc/4pc bonuses and returns the deferred 4pc finalizers.
func applySetEffects(a *Attribute, counts map[string]int) ([]func(*Attribute), error) {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	var finals []func(*Attribute)
	for _, name := range names {
		eff, ok := artifactSets[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSet, name)
		}
		n := counts[name]
		if n >= 2 && eff.two != nil {
			eff.two(a)
		}
		if n >= 4 {
			if eff.four != nil {
				eff.four(a)
			}
			if eff.final != nil {
				finals = append(finals, eff.final)
			}
		}
	}
	return finals, nil
}

// SetNames lists the supported artifact sets, sorted.
func SetNames() []string {
	out := make([]string, 0, len(artifactSets))
	for k := range artifactSets {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
