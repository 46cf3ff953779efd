package attribute

import (
	"errors"
	"fmt"
	"strings"

	"github.com/genshinsim/gcsim/apps/damage_table/internal/domain"
	"github.com/genshinsim/gcsim/apps/damage_table/internal/engine"

	"go.uber.org/zap"
)

var (
	ErrMissingCharacter   = errors.New("missing character")
	ErrMissingWeapon      = errors.New("missing weapon")
	ErrWeaponTypeMismatch = errors.New("weapon type mismatch")
	ErrInvalidRefine      = errors.New("invalid refine")
	ErrUnknownOption      = errors.New("unknown character option")
	ErrUnknownSet         = errors.New("unknown artifact set")
)

// Resolver turns character, weapon, artifacts and buffs into an Attribute.
// It only reads the catalog and is safe for concurrent use.
type Resolver struct {
	catalog *engine.Catalog
	log     *zap.Logger
}

func NewResolver(catalog *engine.Catalog, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{catalog: catalog, log: log}
}

func (r *Resolver) Resolve(artifacts domain.Artifacts, character domain.Character, weapon domain.Weapon, buffs []domain.Buff) (Attribute, error) {
	if strings.TrimSpace(character.Name) == "" {
		return Attribute{}, ErrMissingCharacter
	}
	ch, err := r.catalog.Character(character.Name)
	if err != nil {
		return Attribute{}, err
	}
	for name := range character.Options {
		if !ch.HasOption(name) {
			return Attribute{}, fmt.Errorf("character %s: %w: %q", ch.Key, ErrUnknownOption, name)
		}
	}
	lvl, err := domain.ParseLevel(character.Level)
	if err != nil {
		return Attribute{}, fmt.Errorf("character %s: %w", ch.Key, err)
	}
	base, ok := ch.Levels[character.Level]
	if !ok {
		return Attribute{}, fmt.Errorf("character %s: %w: no data for level %q", ch.Key, domain.ErrUnknownLevel, character.Level)
	}

	attr := newAttribute()
	attr.Character = ch.Key
	attr.Element = ch.Element
	attr.WeaponType = ch.WeaponType
	attr.Level = lvl
	attr.BaseHP = base.HP
	attr.BaseATK = base.ATK
	attr.BaseDEF = base.DEF
	if err := attr.Add(ch.AscensionStat, base.Bonus); err != nil {
		return Attribute{}, fmt.Errorf("character %s: %w", ch.Key, err)
	}

	w, refine, err := r.applyWeapon(&attr, ch, weapon)
	if err != nil {
		return Attribute{}, err
	}

	for _, piece := range artifacts {
		if piece.MainStat.Name != "" {
			if err := attr.AddNamed(piece.MainStat.Name, piece.MainStat.Value); err != nil {
				return Attribute{}, fmt.Errorf("artifact %s main stat: %w", piece.Slot, err)
			}
		}
		for _, sub := range piece.SubStats {
			if err := attr.AddNamed(sub.Name, sub.Value); err != nil {
				return Attribute{}, fmt.Errorf("artifact %s sub stat: %w", piece.Slot, err)
			}
		}
	}
	finalizers, err := applySetEffects(&attr, artifacts.SetCounts())
	if err != nil {
		return Attribute{}, err
	}

	for _, b := range buffs {
		if err := applyBuff(&attr, b); err != nil {
			return Attribute{}, err
		}
	}

	// Conversions read totals, so they run after every flat and percent stat is in.
	for _, conv := range w.Conversions {
		applyConversion(&attr, engine.Conversion{From: conv.From, To: conv.To, Rate: conv.Rates[refine-1]})
	}
	for _, conv := range ch.Conversions {
		if conv.Option != "" && !character.Option(conv.Option) {
			continue
		}
		applyConversion(&attr, conv)
	}
	for _, f := range finalizers {
		f(&attr)
	}

	r.log.Debug("resolved attribute",
		zap.String("character", attr.Character),
		zap.String("weapon", w.Key),
		zap.Float64("atk", attr.ATK()),
		zap.Float64("hp", attr.HP()),
		zap.Float64("em", attr.ElementalMastery),
		zap.Float64("cr", attr.CritRate),
		zap.Float64("cd", attr.CritDamage),
	)
	return attr, nil
}

func (r *Resolver) applyWeapon(attr *Attribute, ch engine.Character, weapon domain.Weapon) (engine.Weapon, int, error) {
	if strings.TrimSpace(weapon.Name) == "" {
		return engine.Weapon{}, 0, ErrMissingWeapon
	}
	w, err := r.catalog.Weapon(weapon.Name)
	if err != nil {
		return engine.Weapon{}, 0, err
	}
	if w.Type != ch.WeaponType {
		return engine.Weapon{}, 0, fmt.Errorf("%w: %s uses %s, %s is a %s", ErrWeaponTypeMismatch, ch.Key, ch.WeaponType, w.Key, w.Type)
	}
	if weapon.Refine < 1 || weapon.Refine > 5 {
		return engine.Weapon{}, 0, fmt.Errorf("%w: weapon %s refine %d (expected 1..5)", ErrInvalidRefine, w.Key, weapon.Refine)
	}
	if _, err := domain.ParseLevel(weapon.Level); err != nil {
		return engine.Weapon{}, 0, fmt.Errorf("weapon %s: %w", w.Key, err)
	}
	wl, ok := w.Levels[weapon.Level]
	if !ok {
		return engine.Weapon{}, 0, fmt.Errorf("weapon %s: %w: no data for level %q", w.Key, domain.ErrUnknownLevel, weapon.Level)
	}

	attr.BaseATK += wl.ATK
	if err := attr.Add(w.SubStat, wl.Sub); err != nil {
		return engine.Weapon{}, 0, fmt.Errorf("weapon %s: %w", w.Key, err)
	}
	for _, p := range w.Passive {
		if err := attr.Add(p.Stat, p.Values[weapon.Refine-1]); err != nil {
			return engine.Weapon{}, 0, fmt.Errorf("weapon %s passive: %w", w.Key, err)
		}
	}
	return w, weapon.Refine, nil
}

func applyConversion(attr *Attribute, conv engine.Conversion) {
	v := attr.Total(conv.From) * conv.Rate
	if conv.Cap > 0 && v > conv.Cap {
		v = conv.Cap
	}
	// Targets are validated when the catalog loads.
	_ = attr.Add(conv.To, v)
}
