package attribute_test

import (
	"testing"

	"github.com/genshinsim/gcsim/apps/damage_table/internal/attribute"
	"github.com/genshinsim/gcsim/apps/damage_table/internal/domain"
	"github.com/genshinsim/gcsim/apps/damage_table/internal/engine"

	"github.com/stretchr/testify/require"
)

func newResolver(t *testing.T) *attribute.Resolver {
	t.Helper()
	cat, err := engine.LoadCatalog()
	require.NoError(t, err)
	return attribute.NewResolver(cat, nil)
}

var (
	klee90 = domain.Character{Name: "klee", Level: "90", Skill: domain.SkillLevels{A: 10, E: 10, Q: 10}}
	dodoco = domain.Weapon{Name: "dodocotales", Level: "90", Refine: 1}
)

func crimsonWitch(n int) domain.Artifacts {
	slots := []domain.ArtifactSlot{domain.Flower, domain.Feather, domain.Sand, domain.Goblet, domain.Head}
	out := make(domain.Artifacts, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.Artifact{Slot: slots[i], Set: "crimsonwitchofflames"})
	}
	return out
}

func TestResolve_CharacterAndWeapon(t *testing.T) {
	r := newResolver(t)

	attr, err := r.Resolve(nil, klee90, dodoco, nil)
	require.NoError(t, err)

	require.Equal(t, 90, attr.Level)
	require.Equal(t, domain.Pyro, attr.Element)
	require.InDelta(t, 311+454, attr.BaseATK, 1e-9)
	// weapon sub-stat + r1 passive
	require.InDelta(t, 0.551+0.08, attr.ATKPercent, 1e-9)
	require.InDelta(t, 765*(1+0.631), attr.ATK(), 1e-6)
	require.InDelta(t, 0.288, attr.ElementBonus[domain.Pyro], 1e-9)
	require.InDelta(t, 0.05, attr.CritRate, 1e-9)
	require.InDelta(t, 0.5, attr.CritDamage, 1e-9)
	require.InDelta(t, 1.0, attr.Recharge, 1e-9)
}

func TestResolve_ArtifactsAndSets(t *testing.T) {
	r := newResolver(t)

	arts := crimsonWitch(4)
	arts[3].MainStat = domain.StatValue{Name: "pyro%", Value: 0.466}
	arts[0].SubStats = []domain.StatValue{{Name: "cr", Value: 0.1}, {Name: "em", Value: 40}}

	attr, err := r.Resolve(arts, klee90, dodoco, nil)
	require.NoError(t, err)

	require.InDelta(t, 0.288+0.466+0.15, attr.ElementBonus[domain.Pyro], 1e-9)
	require.InDelta(t, 0.15, attr.CritRate, 1e-9)
	require.InDelta(t, 40, attr.ElementalMastery, 1e-9)
	require.InDelta(t, 0.15, attr.ReactionBonus[domain.Melt], 1e-9)
	require.InDelta(t, 0.15, attr.ReactionBonus[domain.Vaporize], 1e-9)

	two, err := r.Resolve(crimsonWitch(2), klee90, dodoco, nil)
	require.NoError(t, err)
	require.Zero(t, two.ReactionBonus[domain.Melt])
	require.InDelta(t, 0.288+0.15, two.ElementBonus[domain.Pyro], 1e-9)
}

func TestResolve_Buffs(t *testing.T) {
	r := newResolver(t)

	buffs := []domain.Buff{
		{Name: "bennett_q", Params: map[string]float64{"base_atk": 1000, "ratio": 1}},
		{Name: "noblesse4"},
		{Name: "vv4", Element: "fire"},
		{Name: "custom", Params: map[string]float64{"cd": 0.4}},
	}
	attr, err := r.Resolve(nil, klee90, dodoco, buffs)
	require.NoError(t, err)

	require.InDelta(t, 1000, attr.ATKFlat, 1e-9)
	require.InDelta(t, 0.631+0.2, attr.ATKPercent, 1e-9)
	require.InDelta(t, 0.4, attr.ResShred[domain.Pyro], 1e-9)
	require.InDelta(t, 0.9, attr.CritDamage, 1e-9)
}

func TestResolve_Conversions(t *testing.T) {
	r := newResolver(t)

	ineffa := domain.Character{Name: "ineffa", Level: "90", Skill: domain.SkillLevels{A: 10, E: 10, Q: 10}}
	homa := domain.Weapon{Name: "staffofhoma", Level: "90", Refine: 1}

	attr, err := r.Resolve(nil, ineffa, homa, nil)
	require.NoError(t, err)

	hp := 12613 * 1.2
	require.InDelta(t, hp, attr.HP(), 1e-6)
	// homa converts HP to flat ATK before Ineffa converts ATK to EM.
	require.InDelta(t, hp*0.008, attr.ATKFlat, 1e-6)
	require.InDelta(t, attr.ATK()*0.06, attr.ElementalMastery, 1e-6)
	require.InDelta(t, 0.05+0.192, attr.CritRate, 1e-9)
}

func TestResolve_Errors(t *testing.T) {
	r := newResolver(t)

	_, err := r.Resolve(nil, domain.Character{}, dodoco, nil)
	require.ErrorIs(t, err, attribute.ErrMissingCharacter)

	_, err = r.Resolve(nil, domain.Character{Name: "nobody", Level: "90"}, dodoco, nil)
	require.ErrorIs(t, err, engine.ErrUnknownCharacter)

	_, err = r.Resolve(nil, klee90, domain.Weapon{}, nil)
	require.ErrorIs(t, err, attribute.ErrMissingWeapon)

	_, err = r.Resolve(nil, klee90, domain.Weapon{Name: "stick", Level: "90", Refine: 1}, nil)
	require.ErrorIs(t, err, engine.ErrUnknownWeapon)

	_, err = r.Resolve(nil, klee90, domain.Weapon{Name: "staffofhoma", Level: "90", Refine: 1}, nil)
	require.ErrorIs(t, err, attribute.ErrWeaponTypeMismatch)

	_, err = r.Resolve(nil, klee90, domain.Weapon{Name: "dodocotales", Level: "90", Refine: 6}, nil)
	require.ErrorIs(t, err, attribute.ErrInvalidRefine)

	_, err = r.Resolve(nil, klee90, domain.Weapon{Name: "dodocotales", Level: "50", Refine: 1}, nil)
	require.ErrorIs(t, err, domain.ErrUnknownLevel)

	_, err = r.Resolve(nil, klee90, dodoco, []domain.Buff{{Name: "nope"}})
	require.ErrorIs(t, err, attribute.ErrUnknownBuff)

	_, err = r.Resolve(nil, klee90, dodoco, []domain.Buff{{Name: "vv4"}})
	require.ErrorIs(t, err, attribute.ErrInvalidBuffParam)

	bad := domain.Artifacts{{Slot: domain.Sand, MainStat: domain.StatValue{Name: "luck", Value: 1}}}
	_, err = r.Resolve(bad, klee90, dodoco, nil)
	require.ErrorIs(t, err, domain.ErrUnknownStat)
}

func TestBuffNames_Sorted(t *testing.T) {
	names := attribute.BuffNames()
	require.Contains(t, names, "bennett_q")
	require.IsNonDecreasing(t, names)
}

func pieces(sets ...string) domain.Artifacts {
	slots := []domain.ArtifactSlot{domain.Flower, domain.Feather, domain.Sand, domain.Goblet, domain.Head}
	out := make(domain.Artifacts, len(sets))
	for i, s := range sets {
		out[i] = domain.Artifact{Slot: slots[i], Set: s}
	}
	return out
}

func TestResolve_SetEffects(t *testing.T) {
	r := newResolver(t)
	ineffa := domain.Character{Name: "ineffa", Level: "90", Skill: domain.SkillLevels{A: 10, E: 10, Q: 10}}
	lance := domain.Weapon{Name: "deathmatch", Level: "90", Refine: 1}

	cases := []struct {
		name      string
		character domain.Character
		weapon    domain.Weapon
		artifacts domain.Artifacts
		buffs     []domain.Buff
		check     func(t *testing.T, a attribute.Attribute)
	}{
		{
			name:      "2+2 applies both 2pc bonuses and no 4pc",
			character: klee90, weapon: dodoco,
			artifacts: pieces("crimsonwitchofflames", "crimsonwitchofflames", "gladiatorsfinale", "gladiatorsfinale"),
			check: func(t *testing.T, a attribute.Attribute) {
				require.InDelta(t, 0.288+0.15, a.ElementBonus[domain.Pyro], 1e-9)
				require.InDelta(t, 0.631+0.18, a.ATKPercent, 1e-9)
				require.Zero(t, a.ReactionBonus[domain.Melt])
				require.Zero(t, a.SkillBonus[domain.SlotNormal])
			},
		},
		{
			name:      "gladiator 4pc skips catalysts",
			character: klee90, weapon: dodoco,
			artifacts: pieces("gladiatorsfinale", "gladiatorsfinale", "gladiatorsfinale", "gladiatorsfinale"),
			check: func(t *testing.T, a attribute.Attribute) {
				require.InDelta(t, 0.631+0.18, a.ATKPercent, 1e-9)
				require.Zero(t, a.SkillBonus[domain.SlotNormal])
			},
		},
		{
			name:      "gladiator 4pc boosts polearm normal attacks",
			character: ineffa, weapon: lance,
			artifacts: pieces("gladiatorsfinale", "gladiatorsfinale", "gladiatorsfinale", "gladiatorsfinale"),
			check: func(t *testing.T, a attribute.Attribute) {
				require.InDelta(t, 0.35, a.SkillBonus[domain.SlotNormal], 1e-9)
			},
		},
		{
			name:      "emblem 4pc reads recharge after buffs",
			character: klee90, weapon: dodoco,
			artifacts: pieces("emblemofseveredfate", "emblemofseveredfate", "emblemofseveredfate", "emblemofseveredfate"),
			buffs:     []domain.Buff{{Name: "custom", Params: map[string]float64{"er": 0.5}}},
			check: func(t *testing.T, a attribute.Attribute) {
				require.InDelta(t, 1.7, a.Recharge, 1e-9)
				require.InDelta(t, 0.25*1.7, a.SkillBonus[domain.SlotBurst], 1e-9)
			},
		},
		{
			name:      "emblem 4pc caps at 75%",
			character: klee90, weapon: dodoco,
			artifacts: pieces("emblemofseveredfate", "emblemofseveredfate", "emblemofseveredfate", "emblemofseveredfate"),
			buffs:     []domain.Buff{{Name: "custom", Params: map[string]float64{"er": 2}}},
			check: func(t *testing.T, a attribute.Attribute) {
				require.InDelta(t, 3.2, a.Recharge, 1e-9)
				require.InDelta(t, 0.75, a.SkillBonus[domain.SlotBurst], 1e-9)
			},
		},
		{
			name:      "emblem 2pc alone has no burst bonus",
			character: klee90, weapon: dodoco,
			artifacts: pieces("emblemofseveredfate", "emblemofseveredfate", "noblesseoblige", "noblesseoblige"),
			check: func(t *testing.T, a attribute.Attribute) {
				require.InDelta(t, 1.2, a.Recharge, 1e-9)
				require.InDelta(t, 0.2, a.SkillBonus[domain.SlotBurst], 1e-9)
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := r.Resolve(c.artifacts, c.character, c.weapon, c.buffs)
			require.NoError(t, err)
			c.check(t, a)
		})
	}
}

func TestResolve_RejectsUnknownSet(t *testing.T) {
	r := newResolver(t)

	_, err := r.Resolve(pieces("crimsonwitchofflame", "crimsonwitchofflame"), klee90, dodoco, nil)
	require.ErrorIs(t, err, attribute.ErrUnknownSet)

	require.Contains(t, attribute.SetNames(), "crimsonwitchofflames")
	require.IsNonDecreasing(t, attribute.SetNames())
}

func TestResolve_CharacterOptions(t *testing.T) {
	r := newResolver(t)
	homa := domain.Weapon{Name: "staffofhoma", Level: "90", Refine: 1}
	ineffa := domain.Character{Name: "ineffa", Level: "90", Skill: domain.SkillLevels{A: 10, E: 10, Q: 10}}

	on, err := r.Resolve(nil, ineffa, homa, nil)
	require.NoError(t, err)
	require.Greater(t, on.ElementalMastery, 0.0)

	ineffa.Options = map[string]bool{"em_bonus_active": false}
	off, err := r.Resolve(nil, ineffa, homa, nil)
	require.NoError(t, err)
	require.Zero(t, off.ElementalMastery)
	require.InDelta(t, on.ATK(), off.ATK(), 1e-9)

	ineffa.Options = map[string]bool{"em_bonus": false}
	_, err = r.Resolve(nil, ineffa, homa, nil)
	require.ErrorIs(t, err, attribute.ErrUnknownOption)

	kleeOpt := klee90
	kleeOpt.Options = map[string]bool{"em_bonus_active": true}
	_, err = r.Resolve(nil, kleeOpt, dodoco, nil)
	require.ErrorIs(t, err, attribute.ErrUnknownOption)
}
