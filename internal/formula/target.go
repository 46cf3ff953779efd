package formula

import (
	"errors"
	"fmt"
	"sort"

	"github.com/genshinsim/gcsim/apps/damage_table/internal/domain"
	"github.com/genshinsim/gcsim/apps/damage_table/internal/table"
)

var (
	ErrInvalidTargetParam = errors.New("invalid target param")
	ErrUnknownTermKey     = errors.New("unknown term key")
)

// Term sums the normal-column expectation of Keys in the character's Slot formula
// and weighs it. When Rate names a param, the sum is also scaled by 1 + params[Rate].
type Term struct {
	Slot   domain.SkillSlot
	Keys   []string
	Weight float64
	Rate   string
}

// Target is a weighted damage score over several of one character's formulas.
// Params holds the default of every accepted param; values must lie in [0, 1].
type Target struct {
	Name      string
	Character string
	Terms     []Term
	Params    map[string]float64
}

// IneffaDefault scores a normal-DPS Ineffa: the attack string, the skill with
// its overclock follow-up at the given trigger rate, the burst and a charged attack.
var IneffaDefault = Target{
	Name:      "ineffa_default",
	Character: "ineffa",
	Terms: []Term{
		{Slot: domain.SlotNormal, Keys: []string{"dmg1", "dmg2", "dmg3", "dmg4"}, Weight: 0.4},
		{Slot: domain.SlotSkill, Keys: []string{"dmg", "overclock"}, Weight: 0.8, Rate: "overclocking_rate"},
		{Slot: domain.SlotBurst, Keys: []string{"dmg"}, Weight: 0.6},
		{Slot: domain.SlotNormal, Keys: []string{"charged"}, Weight: 0.3},
	},
	Params: map[string]float64{"overclocking_rate": 0.8},
}

// TermScore is the contribution of one term.
type TermScore struct {
	Slot   domain.SkillSlot
	Keys   []string
	Damage float64
	Scale  float64
	Score  float64
}

type Score struct {
	Target string
	Total  float64
	Terms  []TermScore
}

// ResolveParams merges overrides into the target defaults. Unknown names and values
// outside [0, 1] fail with ErrInvalidTargetParam.
func (t Target) ResolveParams(overrides map[string]float64) (map[string]float64, error) {
	out := make(map[string]float64, len(t.Params))
	for k, v := range t.Params {
		out[k] = v
	}
	names := make([]string, 0, len(overrides))
	for k := range overrides {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		if _, ok := t.Params[k]; !ok {
			return nil, fmt.Errorf("%w: %s has no param %q", ErrInvalidTargetParam, t.Name, k)
		}
		v := overrides[k]
		if v < 0 || v > 1 {
			return nil, fmt.Errorf("%w: %s.%s = %v (expected 0..1)", ErrInvalidTargetParam, t.Name, k, v)
		}
		out[k] = v
	}
	return out, nil
}

// Score evaluates every formula the target needs once and combines the terms.
func (e *Evaluator) Score(reg *Registry, t Target, artifacts domain.Artifacts, cfg domain.ConfigObject, enemy domain.Enemy, overrides map[string]float64) (Score, error) {
	params, err := t.ResolveParams(overrides)
	if err != nil {
		return Score{}, err
	}

	type evaluated struct {
		f Formula
		t table.Table
	}
	bySlot := make(map[domain.SkillSlot]evaluated)

	out := Score{Target: t.Name, Terms: make([]TermScore, 0, len(t.Terms))}
	for _, term := range t.Terms {
		ev, ok := bySlot[term.Slot]
		if !ok {
			f, err := reg.Lookup(t.Character, term.Slot)
			if err != nil {
				return Score{}, err
			}
			tbl, err := e.Evaluate(f, artifacts, cfg, enemy)
			if err != nil {
				return Score{}, err
			}
			ev = evaluated{f: f, t: tbl}
			bySlot[term.Slot] = ev
		}

		var dmg float64
		for _, key := range term.Keys {
			row := -1
			for i, k := range ev.f.SkillKeys {
				if k.Key == key {
					row = i
					break
				}
			}
			if row == -1 {
				return Score{}, fmt.Errorf("%w: %s.%s.%s", ErrUnknownTermKey, t.Character, term.Slot, key)
			}
			c, ok := ev.t.Cell(row, NormalColumn)
			if !ok {
				return Score{}, fmt.Errorf("%w: %s.%s has no %s column", ErrUnknownTermKey, t.Character, term.Slot, NormalColumn)
			}
			dmg += c.Expectation
		}

		scale := term.Weight
		if term.Rate != "" {
			scale *= 1 + params[term.Rate]
		}
		ts := TermScore{Slot: term.Slot, Keys: term.Keys, Damage: dmg, Scale: scale, Score: dmg * scale}
		out.Terms = append(out.Terms, ts)
		out.Total += ts.Score
	}
	return out, nil
}
