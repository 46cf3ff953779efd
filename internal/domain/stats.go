package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownStat = errors.New("unknown stat")

// Stat uses the gcsim config spelling ("atk%", "cr", "pyro%", ...).
type Stat string

const (
	StatHP         Stat = "hp"
	StatHPP        Stat = "hp%"
	StatATK        Stat = "atk"
	StatATKP       Stat = "atk%"
	StatDEF        Stat = "def"
	StatDEFP       Stat = "def%"
	StatEM         Stat = "em"
	StatER         Stat = "er"
	StatCR         Stat = "cr"
	StatCD         Stat = "cd"
	StatHeal       Stat = "heal%"
	StatDmgP       Stat = "dmg%"
	StatElementalP Stat = "ele%"
	StatPyroP      Stat = "pyro%"
	StatHydroP     Stat = "hydro%"
	StatCryoP      Stat = "cryo%"
	StatElectroP   Stat = "electro%"
	StatAnemoP     Stat = "anemo%"
	StatGeoP       Stat = "geo%"
	StatDendroP    Stat = "dendro%"
	StatPhysP      Stat = "phys%"
)

var stats = []Stat{
	StatHP, StatHPP, StatATK, StatATKP, StatDEF, StatDEFP, StatEM, StatER, StatCR, StatCD,
	StatHeal, StatDmgP, StatElementalP,
	StatPyroP, StatHydroP, StatCryoP, StatElectroP, StatAnemoP, StatGeoP, StatDendroP, StatPhysP,
}

func ParseStat(s string) (Stat, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, st := range stats {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStat, s)
}

// BonusElement returns the element a damage-bonus stat applies to.
func (s Stat) BonusElement() (Element, bool) {
	switch s {
	case StatPyroP:
		return Pyro, true
	case StatHydroP:
		return Hydro, true
	case StatCryoP:
		return Cryo, true
	case StatElectroP:
		return Electro, true
	case StatAnemoP:
		return Anemo, true
	case StatGeoP:
		return Geo, true
	case StatDendroP:
		return Dendro, true
	case StatPhysP:
		return Physical, true
	}
	return "", false
}

// ElementBonusStat is the inverse of BonusElement.
func ElementBonusStat(e Element) Stat {
	if e == Physical {
		return StatPhysP
	}
	return Stat(string(e) + "%")
}

type ArtifactSlot string

const (
	Flower  ArtifactSlot = "flower"
	Feather ArtifactSlot = "feather"
	Sand    ArtifactSlot = "sand"
	Goblet  ArtifactSlot = "goblet"
	Head    ArtifactSlot = "head"
)

type StatValue struct {
	Name  string  `yaml:"name"`
	Value float64 `yaml:"value"`
}

type Artifact struct {
	Slot     ArtifactSlot `yaml:"slot"`
	Set      string       `yaml:"set"`
	MainStat StatValue    `yaml:"main"`
	SubStats []StatValue  `yaml:"subs"`
}

type Artifacts []Artifact

// SetCounts counts equipped pieces per set name.
func (a Artifacts) SetCounts() map[string]int {
	out := make(map[string]int)
	for _, p := range a {
		if p.Set == "" {
			continue
		}
		out[p.Set]++
	}
	return out
}
