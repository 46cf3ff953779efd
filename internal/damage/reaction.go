package damage

import (
	"errors"
	"fmt"

	"github.com/genshinsim/gcsim/apps/damage_table/internal/domain"
)

var ErrReactionNotApplicable = errors.New("reaction not applicable")

// amplifying holds the melt/vaporize multiplier per trigger element.
var amplifying = map[domain.Reaction]map[domain.Element]float64{
	domain.Melt: {
		domain.Pyro: 2.0,
		domain.Cryo: 1.5,
	},
	domain.Vaporize: {
		domain.Hydro: 2.0,
		domain.Pyro:  1.5,
	},
}

// AmplifyingMultiplier returns the melt/vaporize multiplier for a hit of element e,
// including the elemental mastery and flat reaction bonus.
// NoReaction returns 1.
func AmplifyingMultiplier(r domain.Reaction, e domain.Element, em, bonus float64) (float64, error) {
	if r == domain.NoReaction {
		return 1, nil
	}
	byElement, ok := amplifying[r]
	if !ok {
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownReaction, r)
	}
	base, ok := byElement[e]
	if !ok {
		return 0, fmt.Errorf("%w: %s cannot trigger %s", ErrReactionNotApplicable, e, r)
	}
	return base * (1 + EMBonus(em) + bonus), nil
}

// EMBonus is the amplifying-reaction bonus from elemental mastery.
func EMBonus(em float64) float64 {
	if em <= 0 {
		return 0
	}
	return 2.78 * em / (em + 1400)
}

// ResistanceMultiplier maps a (post-shred) resistance to a damage multiplier.
func ResistanceMultiplier(res float64) float64 {
	switch {
	case res < 0:
		return 1 - res/2
	case res < 0.75:
		return 1 - res
	default:
		return 1 / (4*res + 1)
	}
}

// DefenseMultiplier is the enemy defense multiplier for the given levels and defense shred.
func DefenseMultiplier(charLevel, enemyLevel int, defShred float64) float64 {
	if defShred > 1 {
		defShred = 1
	}
	c := float64(charLevel + 100)
	e := float64(enemyLevel+100) * (1 - defShred)
	return c / (c + e)
}
