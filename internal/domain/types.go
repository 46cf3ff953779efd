package domain

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the calculation config read from damage_table.yaml.
type Config struct {
	// Formula selects the registered skill formula. Character defaults to
	// character.name and Skill defaults to "e".
	Formula   FormulaRef `yaml:"formula"`
	Character Character  `yaml:"character"`
	Weapon    Weapon     `yaml:"weapon"`
	Buffs     []Buff     `yaml:"buffs"`
	Artifacts Artifacts  `yaml:"artifacts"`
	// Enemies lists the enemies. calc uses the first one, batch uses all of them.
	Enemies []Enemy      `yaml:"enemies"`
	Output  OutputConfig `yaml:"output"`
	// Parallel bounds concurrent evaluations in batch mode.
	Parallel int `yaml:"parallel"`
	// Target selects the weighted score used by the score command.
	Target TargetConfig `yaml:"target"`
}

type FormulaRef struct {
	Character string `yaml:"character"`
	Skill     string `yaml:"skill"`
}

type TargetConfig struct {
	Name   string             `yaml:"name"`
	Params map[string]float64 `yaml:"params"`
}

type OutputConfig struct {
	// XLSXPath optionally sets the xlsx export path (relative to the app root).
	XLSXPath string `yaml:"xlsx_path"`
	// Name is used in the default export filename.
	Name string `yaml:"name"`
}

func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	if value != nil && value.Kind == yaml.MappingNode {
		allowed := map[string]struct{}{
			"formula":   {},
			"character": {},
			"weapon":    {},
			"buffs":     {},
			"artifacts": {},
			"enemies":   {},
			"output":    {},
			"parallel":  {},
			"target":    {},
		}

		for i := 0; i+1 < len(value.Content); i += 2 {
			k := value.Content[i]
			if k.Kind != yaml.ScalarNode {
				continue
			}
			if _, ok := allowed[k.Value]; !ok {
				return fmt.Errorf("config: unsupported key %q", k.Value)
			}
		}
	}

	type raw Config
	var tmp raw
	if err := value.Decode(&tmp); err != nil {
		return err
	}
	*c = Config(tmp)
	return nil
}

// ConfigObject returns the character/weapon/buff part of the config as passed to formulas.
func (c Config) ConfigObject() ConfigObject {
	return ConfigObject{Character: c.Character, Weapon: c.Weapon, Buffs: c.Buffs}
}

// ConfigObject is the selected character, weapon and active buffs.
type ConfigObject struct {
	Character Character
	Weapon    Weapon
	Buffs     []Buff
}

type Character struct {
	Name string `yaml:"name"`
	// Level is an ascension level key: "1", "20", "20+", ..., "80+", "90".
	Level         string      `yaml:"level"`
	Constellation int         `yaml:"constellation"`
	Skill         SkillLevels `yaml:"skill"`
	// Options switches character passives on or off by name (e.g. em_bonus_active).
	// Options left unset are on.
	Options map[string]bool `yaml:"options"`
}

// Option reports whether the named passive is active.
func (c Character) Option(name string) bool {
	if v, ok := c.Options[name]; ok {
		return v
	}
	return true
}

type SkillLevels struct {
	A int `yaml:"a"`
	E int `yaml:"e"`
	Q int `yaml:"q"`
}

// Level returns the talent level (1..15) configured for slot.
func (s SkillLevels) Level(slot SkillSlot) (int, error) {
	var lvl int
	switch slot {
	case SlotNormal:
		lvl = s.A
	case SlotSkill:
		lvl = s.E
	case SlotBurst:
		lvl = s.Q
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSlot, slot)
	}
	if lvl < 1 || lvl > 15 {
		return 0, fmt.Errorf("%w: slot %s level %d (expected 1..15)", ErrInvalidTalentLevel, slot, lvl)
	}
	return lvl, nil
}

type Weapon struct {
	Name   string `yaml:"name"`
	Level  string `yaml:"level"`
	Refine int    `yaml:"refine"`
}

// Buff is a named team/self buff. Element is only read by element-scoped buffs (e.g. vv4).
type Buff struct {
	Name    string             `yaml:"name"`
	Element string             `yaml:"element"`
	Params  map[string]float64 `yaml:"params"`
}

// Param returns Params[name] or def when unset.
func (b Buff) Param(name string, def float64) float64 {
	if v, ok := b.Params[name]; ok {
		return v
	}
	return def
}

type Enemy struct {
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`
	// Resistances is keyed by element name; "all" is the fallback.
	Resistances map[string]float64 `yaml:"resistances"`
}

const DefaultResistance = 0.1

// ResistanceAll is the resistance key applied to elements without their own entry.
const ResistanceAll = "all"

// NormalizeResistances rewrites resistance keys to canonical element names
// ("fire" -> "pyro") and rejects keys that name no element.
func (e *Enemy) NormalizeResistances() error {
	if len(e.Resistances) == 0 {
		return nil
	}
	out := make(map[string]float64, len(e.Resistances))
	for k, v := range e.Resistances {
		key := strings.ToLower(strings.TrimSpace(k))
		if key != ResistanceAll {
			el, err := ParseElement(key)
			if err != nil {
				return fmt.Errorf("enemy %s: resistances: %w", e.Name, err)
			}
			key = string(el)
		}
		if _, ok := out[key]; ok {
			return fmt.Errorf("enemy %s: resistances: %q set more than once", e.Name, key)
		}
		out[key] = v
	}
	e.Resistances = out
	return nil
}

// Resistance returns the enemy resistance to e.
func (e Enemy) Resistance(el Element) float64 {
	if v, ok := e.Resistances[string(el)]; ok {
		return v
	}
	if v, ok := e.Resistances[ResistanceAll]; ok {
		return v
	}
	return DefaultResistance
}

// SkillKey describes one damage instance of a skill.
type SkillKey struct {
	Key     string
	Chs     string
	Skill   SkillSlot
	Element Element
	// Option names the character option the hit depends on; the hit deals
	// nothing while that option is off.
	Option string
}
