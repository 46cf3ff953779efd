package engine

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"github.com/genshinsim/gcsim/apps/damage_table/internal/domain"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownCharacter = errors.New("unknown character")
	ErrUnknownWeapon    = errors.New("unknown weapon")
	ErrUnknownSkillKey  = errors.New("unknown skill key")
)

// SkillTableSize is the number of talent levels in every skill multiplier table.
const SkillTableSize = 15

//go:embed data/characters.yaml
var charactersYAML []byte

//go:embed data/weapons.yaml
var weaponsYAML []byte

type LevelStats struct {
	HP    float64 `yaml:"hp"`
	ATK   float64 `yaml:"atk"`
	DEF   float64 `yaml:"def"`
	Bonus float64 `yaml:"bonus"`
}

// Conversion adds Rate * total(From) to To, capped at Cap when Cap > 0.
// A conversion with an Option only applies while that character option is on.
type Conversion struct {
	From   domain.Stat `yaml:"from"`
	To     domain.Stat `yaml:"to"`
	Rate   float64     `yaml:"rate"`
	Cap    float64     `yaml:"cap"`
	Option string      `yaml:"option"`
}

type Character struct {
	Key           string
	Chs           string                `yaml:"chs"`
	Element       domain.Element        `yaml:"element"`
	WeaponType    string                `yaml:"weapon_type"`
	AscensionStat domain.Stat           `yaml:"ascension_stat"`
	Levels        map[string]LevelStats `yaml:"levels"`
	// Skills maps slot -> skill key -> multiplier per talent level.
	Skills      map[domain.SkillSlot]map[string][]float64 `yaml:"skills"`
	Conversions []Conversion                              `yaml:"conversions"`
	// Options are the passive switches a config may set for this character.
	Options []string `yaml:"options"`
}

// HasOption reports whether name is one of the character's options.
func (c Character) HasOption(name string) bool {
	for _, o := range c.Options {
		if o == name {
			return true
		}
	}
	return false
}

type WeaponLevel struct {
	ATK float64 `yaml:"atk"`
	Sub float64 `yaml:"sub"`
}

type RefineStat struct {
	Stat   domain.Stat `yaml:"stat"`
	Values []float64   `yaml:"values"`
}

type RefineConversion struct {
	From  domain.Stat `yaml:"from"`
	To    domain.Stat `yaml:"to"`
	Rates []float64   `yaml:"rates"`
}

type Weapon struct {
	Key         string
	Chs         string                 `yaml:"chs"`
	Type        string                 `yaml:"type"`
	SubStat     domain.Stat            `yaml:"sub_stat"`
	Levels      map[string]WeaponLevel `yaml:"levels"`
	Passive     []RefineStat           `yaml:"passive"`
	Conversions []RefineConversion     `yaml:"conversions"`
}

// Catalog is read-only after LoadCatalog and safe for concurrent use.
type Catalog struct {
	Characters map[string]Character
	Weapons    map[string]Weapon
}

// LoadCatalog parses the embedded character and weapon data.
func LoadCatalog() (*Catalog, error) {
	return ParseCatalog(charactersYAML, weaponsYAML)
}

func ParseCatalog(charactersData, weaponsData []byte) (*Catalog, error) {
	var chars map[string]Character
	if err := yaml.Unmarshal(charactersData, &chars); err != nil {
		return nil, fmt.Errorf("parse characters.yaml: %w", err)
	}
	var weapons map[string]Weapon
	if err := yaml.Unmarshal(weaponsData, &weapons); err != nil {
		return nil, fmt.Errorf("parse weapons.yaml: %w", err)
	}

	for key, c := range chars {
		c.Key = key
		el, err := domain.ParseElement(string(c.Element))
		if err != nil {
			return nil, fmt.Errorf("characters.yaml: %s: %w", key, err)
		}
		c.Element = el
		if err := validateCharacter(c); err != nil {
			return nil, fmt.Errorf("characters.yaml: %s: %w", key, err)
		}
		chars[key] = c
	}
	for key, w := range weapons {
		w.Key = key
		if err := validateWeapon(w); err != nil {
			return nil, fmt.Errorf("weapons.yaml: %s: %w", key, err)
		}
		weapons[key] = w
	}

	return &Catalog{Characters: chars, Weapons: weapons}, nil
}

func validateCharacter(c Character) error {
	if c.WeaponType == "" {
		return fmt.Errorf("missing weapon_type")
	}
	if _, err := domain.ParseStat(string(c.AscensionStat)); err != nil {
		return fmt.Errorf("ascension_stat: %w", err)
	}
	if len(c.Levels) == 0 {
		return fmt.Errorf("missing levels")
	}
	for lvl := range c.Levels {
		if _, err := domain.ParseLevel(lvl); err != nil {
			return err
		}
	}
	for slot, keys := range c.Skills {
		if _, err := domain.ParseSkillSlot(string(slot)); err != nil {
			return err
		}
		for k, table := range keys {
			if len(table) != SkillTableSize {
				return fmt.Errorf("skills.%s.%s: expected %d values, got %d", slot, k, SkillTableSize, len(table))
			}
		}
	}
	for i, conv := range c.Conversions {
		if err := validateConversion(conv.From, conv.To); err != nil {
			return fmt.Errorf("conversions[%d]: %w", i, err)
		}
		if conv.Option != "" && !c.HasOption(conv.Option) {
			return fmt.Errorf("conversions[%d]: option %q is not declared in options", i, conv.Option)
		}
	}
	return nil
}

func validateWeapon(w Weapon) error {
	if w.Type == "" {
		return fmt.Errorf("missing type")
	}
	if _, err := domain.ParseStat(string(w.SubStat)); err != nil {
		return fmt.Errorf("sub_stat: %w", err)
	}
	if len(w.Levels) == 0 {
		return fmt.Errorf("missing levels")
	}
	for lvl := range w.Levels {
		if _, err := domain.ParseLevel(lvl); err != nil {
			return err
		}
	}
	for i, p := range w.Passive {
		if _, err := domain.ParseStat(string(p.Stat)); err != nil {
			return fmt.Errorf("passive[%d]: %w", i, err)
		}
		if len(p.Values) != 5 {
			return fmt.Errorf("passive[%d]: expected 5 refine values, got %d", i, len(p.Values))
		}
	}
	for i, conv := range w.Conversions {
		if err := validateConversion(conv.From, conv.To); err != nil {
			return fmt.Errorf("conversions[%d]: %w", i, err)
		}
		if len(conv.Rates) != 5 {
			return fmt.Errorf("conversions[%d]: expected 5 refine rates, got %d", i, len(conv.Rates))
		}
	}
	return nil
}

func validateConversion(from, to domain.Stat) error {
	switch from {
	case domain.StatHP, domain.StatATK, domain.StatDEF, domain.StatEM, domain.StatER:
	default:
		return fmt.Errorf("conversion source %q must be a total stat (hp, atk, def, em, er)", from)
	}
	if _, err := domain.ParseStat(string(to)); err != nil {
		return err
	}
	return nil
}

func (c *Catalog) Character(name string) (Character, error) {
	ch, ok := c.Characters[name]
	if !ok {
		return Character{}, fmt.Errorf("%w: %q", ErrUnknownCharacter, name)
	}
	return ch, nil
}

func (c *Catalog) Weapon(name string) (Weapon, error) {
	w, ok := c.Weapons[name]
	if !ok {
		return Weapon{}, fmt.Errorf("%w: %q", ErrUnknownWeapon, name)
	}
	return w, nil
}

// SkillMultiplier returns the multiplier of key in slot at talent level (1..15).
func (c *Catalog) SkillMultiplier(character string, slot domain.SkillSlot, key string, level int) (float64, error) {
	ch, err := c.Character(character)
	if err != nil {
		return 0, err
	}
	table, ok := ch.Skills[slot][key]
	if !ok {
		return 0, fmt.Errorf("%w: %s.%s.%s", ErrUnknownSkillKey, character, slot, key)
	}
	if level < 1 || level > len(table) {
		return 0, fmt.Errorf("%w: %d", domain.ErrInvalidTalentLevel, level)
	}
	return table[level-1], nil
}

// CharacterNames returns catalog character keys, sorted.
func (c *Catalog) CharacterNames() []string {
	out := make([]string, 0, len(c.Characters))
	for k := range c.Characters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
