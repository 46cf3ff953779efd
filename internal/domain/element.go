package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownElement     = errors.New("unknown element")
	ErrUnknownReaction    = errors.New("unknown reaction")
	ErrUnknownSlot        = errors.New("unknown skill slot")
	ErrInvalidTalentLevel = errors.New("invalid talent level")
	ErrUnknownLevel       = errors.New("unknown level")
)

type Element string

const (
	Pyro     Element = "pyro"
	Hydro    Element = "hydro"
	Cryo     Element = "cryo"
	Electro  Element = "electro"
	Anemo    Element = "anemo"
	Geo      Element = "geo"
	Dendro   Element = "dendro"
	Physical Element = "physical"
)

// Elements lists every element in a stable order.
var Elements = []Element{Pyro, Hydro, Cryo, Electro, Anemo, Geo, Dendro, Physical}

var elementAliases = map[string]Element{
	"fire":    Pyro,
	"water":   Hydro,
	"ice":     Cryo,
	"thunder": Electro,
	"wind":    Anemo,
	"rock":    Geo,
	"grass":   Dendro,
	"phys":    Physical,
}

// ParseElement accepts canonical names and the calculator's legacy tags ("fire", "ice", ...).
func ParseElement(s string) (Element, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, e := range Elements {
		if string(e) == s {
			return e, nil
		}
	}
	if e, ok := elementAliases[s]; ok {
		return e, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownElement, s)
}

type Reaction string

const (
	NoReaction Reaction = ""
	Melt       Reaction = "melt"
	Vaporize   Reaction = "vaporize"
)

func ParseReaction(s string) (Reaction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return NoReaction, nil
	case "melt":
		return Melt, nil
	case "vaporize", "vape":
		return Vaporize, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownReaction, s)
}

type SkillSlot string

const (
	SlotNormal SkillSlot = "a"
	SlotSkill  SkillSlot = "e"
	SlotBurst  SkillSlot = "q"
)

func ParseSkillSlot(s string) (SkillSlot, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a", "na", "normal":
		return SlotNormal, nil
	case "e", "skill":
		return SlotSkill, nil
	case "q", "burst":
		return SlotBurst, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSlot, s)
}

// LevelKeys are the ascension breakpoints used by character and weapon data.
var LevelKeys = []string{"1", "20", "20+", "40", "40+", "50", "50+", "60", "60+", "70", "70+", "80", "80+", "90"}

// ParseLevel validates an ascension level key and returns its numeric level.
func ParseLevel(key string) (int, error) {
	key = strings.TrimSpace(key)
	for _, k := range LevelKeys {
		if k != key {
			continue
		}
		var n int
		if _, err := fmt.Sscanf(strings.TrimSuffix(k, "+"), "%d", &n); err != nil {
			return 0, err
		}
		return n, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, key)
}
