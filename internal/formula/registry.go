package formula

import (
	"errors"
	"fmt"
	"sort"

	"github.com/genshinsim/gcsim/apps/damage_table/internal/domain"
)

var (
	ErrFormulaNotFound  = errors.New("formula not found")
	ErrDuplicateFormula = errors.New("duplicate formula")
	ErrTargetNotFound   = errors.New("target not found")
	ErrDuplicateTarget  = errors.New("duplicate target")
)

// Key identifies a formula by character and skill slot.
type Key struct {
	Character string
	Slot      domain.SkillSlot
}

func (k Key) String() string {
	return k.Character + "." + string(k.Slot)
}

// Registry maps (character, slot) to its formula and names to weighted targets.
// Register before sharing; lookups are read-only.
type Registry struct {
	formulas map[Key]Formula
	targets  map[string]Target
}

func NewRegistry() *Registry {
	return &Registry{formulas: make(map[Key]Formula), targets: make(map[string]Target)}
}

// Default returns a registry with every built-in formula and target.
func Default() *Registry {
	r := NewRegistry()
	for _, f := range []Formula{KleeA, KleeE, KleeQ, IneffaA, IneffaE, IneffaQ} {
		if err := r.Register(f); err != nil {
			panic(err)
		}
	}
	if err := r.RegisterTarget(IneffaDefault); err != nil {
		panic(err)
	}
	return r
}

// Register adds f under (f.Character, f.Slot). It fails with ErrDuplicateFormula
// if that key is taken.
func (r *Registry) Register(f Formula) error {
	k := Key{Character: f.Character, Slot: f.Slot}
	if _, ok := r.formulas[k]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateFormula, k)
	}
	r.formulas[k] = f
	return nil
}

// Lookup returns the formula for character and slot, or ErrFormulaNotFound.
func (r *Registry) Lookup(character string, slot domain.SkillSlot) (Formula, error) {
	f, ok := r.formulas[Key{Character: character, Slot: slot}]
	if !ok {
		return Formula{}, fmt.Errorf("%w: %s.%s", ErrFormulaNotFound, character, slot)
	}
	return f, nil
}

// Keys returns all registered keys sorted by character then slot.
func (r *Registry) Keys() []Key {
	out := make([]Key, 0, len(r.formulas))
	for k := range r.formulas {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Character != out[j].Character {
			return out[i].Character < out[j].Character
		}
		return out[i].Slot < out[j].Slot
	})
	return out
}

// RegisterTarget adds t under t.Name. It fails with ErrDuplicateTarget if the name is taken.
func (r *Registry) RegisterTarget(t Target) error {
	if _, ok := r.targets[t.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTarget, t.Name)
	}
	r.targets[t.Name] = t
	return nil
}

// LookupTarget returns the named target, or ErrTargetNotFound.
func (r *Registry) LookupTarget(name string) (Target, error) {
	t, ok := r.targets[name]
	if !ok {
		return Target{}, fmt.Errorf("%w: %q", ErrTargetNotFound, name)
	}
	return t, nil
}

// TargetNames returns all registered target names, sorted.
func (r *Registry) TargetNames() []string {
	out := make([]string, 0, len(r.targets))
	for name := range r.targets {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
