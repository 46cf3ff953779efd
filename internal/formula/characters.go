package formula

import "github.com/genshinsim/gcsim/apps/damage_table/internal/domain"

// NormalColumn is the no-reaction column every formula starts with.
const NormalColumn = "normal"

var (
	amplifyingColumns = []Column{
		{Name: NormalColumn},
		{Name: "normalMelt", Reaction: domain.Melt},
		{Name: "normalVaporize", Reaction: domain.Vaporize},
	}
	plainColumns = []Column{
		{Name: NormalColumn},
	}
)

// KleeA is Klee's Kaboom! string and charged attack.
var KleeA = Formula{
	Character: "klee",
	Slot:      domain.SlotNormal,
	SkillKeys: []domain.SkillKey{
		{Key: "dmg1", Chs: "一段伤害", Skill: domain.SlotNormal, Element: domain.Pyro},
		{Key: "dmg2", Chs: "二段伤害", Skill: domain.SlotNormal, Element: domain.Pyro},
		{Key: "dmg3", Chs: "三段伤害", Skill: domain.SlotNormal, Element: domain.Pyro},
		{Key: "charged", Chs: "重击伤害", Skill: domain.SlotNormal, Element: domain.Pyro},
	},
	Columns: amplifyingColumns,
}

// KleeE is Klee's Jumpy Dumpty: the bomb hit and the mines it scatters.
var KleeE = Formula{
	Character: "klee",
	Slot:      domain.SlotSkill,
	SkillKeys: []domain.SkillKey{
		{Key: "dmg1", Chs: "蹦蹦炸弹伤害", Skill: domain.SlotSkill, Element: domain.Pyro},
		{Key: "dmg2", Chs: "诡雷伤害", Skill: domain.SlotSkill, Element: domain.Pyro},
	},
	Columns: amplifyingColumns,
}

var KleeQ = Formula{
	Character: "klee",
	Slot:      domain.SlotBurst,
	SkillKeys: []domain.SkillKey{
		{Key: "dmg1", Chs: "轰轰火花伤害", Skill: domain.SlotBurst, Element: domain.Pyro},
	},
	Columns: amplifyingColumns,
}

// IneffaA is Ineffa's physical attack string, charged attack and plunges.
var IneffaA = Formula{
	Character: "ineffa",
	Slot:      domain.SlotNormal,
	SkillKeys: []domain.SkillKey{
		{Key: "dmg1", Chs: "一段伤害", Skill: domain.SlotNormal, Element: domain.Physical},
		{Key: "dmg2", Chs: "二段伤害", Skill: domain.SlotNormal, Element: domain.Physical},
		{Key: "dmg3", Chs: "三段伤害", Skill: domain.SlotNormal, Element: domain.Physical},
		{Key: "dmg4", Chs: "四段伤害", Skill: domain.SlotNormal, Element: domain.Physical},
		{Key: "charged", Chs: "重击伤害", Skill: domain.SlotNormal, Element: domain.Physical},
		{Key: "plunging1", Chs: "下坠期间伤害", Skill: domain.SlotNormal, Element: domain.Physical},
		{Key: "plunging2", Chs: "低空坠地冲击伤害", Skill: domain.SlotNormal, Element: domain.Physical},
		{Key: "plunging3", Chs: "高空坠地冲击伤害", Skill: domain.SlotNormal, Element: domain.Physical},
	},
	Columns: plainColumns,
}

// IneffaE is Ineffa's skill hit plus the Overclocking Circuit follow-up (65% ATK),
// which only lands while overclocking_active is on.
var IneffaE = Formula{
	Character: "ineffa",
	Slot:      domain.SlotSkill,
	SkillKeys: []domain.SkillKey{
		{Key: "dmg", Chs: "技能伤害", Skill: domain.SlotSkill, Element: domain.Electro},
		{Key: "overclock", Chs: "频率超限回路", Skill: domain.SlotSkill, Element: domain.Electro, Option: "overclocking_active"},
	},
	Columns: plainColumns,
}

var IneffaQ = Formula{
	Character: "ineffa",
	Slot:      domain.SlotBurst,
	SkillKeys: []domain.SkillKey{
		{Key: "dmg", Chs: "技能伤害", Skill: domain.SlotBurst, Element: domain.Electro},
	},
	Columns: plainColumns,
}
