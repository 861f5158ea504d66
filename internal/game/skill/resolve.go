package skill

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/rq3/internal/game/character"
	"github.com/cory-johannsen/rq3/internal/game/rules"
)

// Kind discriminates a Ref.
type Kind int

const (
	Standard Kind = iota
	Custom
)

// Ref identifies one skill of a character: a standard definition or one of the
// character's custom skills.
type Ref struct {
	Kind Kind
	Def  *rules.Skill
	// Index into Character.CustomSkills when Kind is Custom.
	Index int
}

// StandardRef returns a Ref to a standard skill.
func StandardRef(def *rules.Skill) Ref {
	return Ref{Kind: Standard, Def: def}
}

// CustomRef returns a Ref to the character's custom skill at index i.
func CustomRef(i int) Ref {
	return Ref{Kind: Custom, Index: i}
}

// Lookup resolves a skill by display name: custom skills first, then standard
// skill names, then standard skill IDs. Names match ignoring case.
func Lookup(c *character.Character, rs *rules.Ruleset, name string) (Ref, bool) {
	folded := rules.Fold(name)
	for i, cs := range c.CustomSkills {
		if rules.Fold(cs.Name) == folded {
			return CustomRef(i), true
		}
	}
	if def, ok := rs.SkillByName(name); ok {
		return StandardRef(def), true
	}
	if def, ok := rs.Skill(name); ok {
		return StandardRef(def), true
	}
	return Ref{}, false
}

// Context carries what Resolve reads besides the skill itself.
type Context struct {
	Character *character.Character
	Species   *character.Species
	Rules     *rules.Ruleset
	// Bonuses holds the category bonus per category; see CategoryBonuses.
	Bonuses map[string]int
}

// NewContext builds a Context, computing category bonuses from c's current characteristics.
func NewContext(c *character.Character, species *character.Species, rs *rules.Ruleset) Context {
	return Context{
		Character: c,
		Species:   species,
		Rules:     rs,
		Bonuses:   CategoryBonuses(rs.Categories(), c.Characteristics),
	}
}

// Value is one resolved row of the skill table.
type Value struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	Custom   bool   `yaml:"custom,omitempty"`
	Base     int    `yaml:"base"`
	Invested int    `yaml:"invested"`
	Bonus    int    `yaml:"bonus"`
	Total    int    `yaml:"total"`
}

func total(base, invested, bonus int) int {
	if base == 0 && invested == 0 {
		return 0
	}
	return max(0, base+invested+bonus)
}

// Resolve composes the value of ref. A skill with no base and no training totals
// 0 regardless of its category bonus.
//
// Precondition: ref must come from Lookup, StandardRef or CustomRef against ctx.Character.
func Resolve(ref Ref, ctx Context) (Value, []character.Warning) {
	if ref.Kind == Custom {
		cs := ctx.Character.CustomSkills[ref.Index]
		bonus := ctx.Bonuses[cs.Category]
		return Value{
			ID:       cs.ID,
			Name:     cs.Name,
			Category: cs.Category,
			Custom:   true,
			Base:     cs.BaseValue,
			Invested: cs.InvestedValue,
			Bonus:    bonus,
			Total:    total(cs.BaseValue, cs.InvestedValue, bonus),
		}, nil
	}

	var warns []character.Warning
	def := ref.Def
	v := Value{ID: def.ID, Name: def.Name, Category: def.Category, Bonus: ctx.Bonuses[def.Category]}

	switch {
	case def.CharacteristicMultiple():
		if cur, ok := ctx.Character.Current(def.Char1); ok {
			v.Base = cur * def.Multiplier
		} else {
			warns = append(warns, character.Warning{
				Field:   "skills." + def.ID + ".base",
				Message: fmt.Sprintf("requires [%s] defined and >= 1", def.Char1),
			})
		}
	case ctx.Species != nil:
		if b, ok := ctx.Rules.SpeciesBase(ctx.Species, def); ok {
			v.Base = b
		} else {
			v.Base = def.BaseChance
		}
	}

	v.Invested = invested(ctx.Character, def)
	v.Total = total(v.Base, v.Invested, v.Bonus)
	return v, warns
}

// invested returns the trained points for def, falling back to a legacy
// skill-type inventory item of the same name.
func invested(c *character.Character, def *rules.Skill) int {
	if s, ok := c.Skills[def.ID]; ok {
		return s.Value
	}
	folded := rules.Fold(def.Name)
	for _, it := range c.Inventory {
		if it.Kind == character.KindSkill && rules.Fold(it.Name) == folded {
			return it.SkillValue
		}
	}
	return 0
}

// Table resolves every standard skill in table order followed by the character's
// custom skills.
func Table(c *character.Character, species *character.Species, rs *rules.Ruleset) ([]Value, []character.Warning) {
	ctx := NewContext(c, species, rs)
	var (
		out   []Value
		warns []character.Warning
	)
	for _, def := range rs.Skills() {
		v, w := Resolve(StandardRef(def), ctx)
		out = append(out, v)
		warns = append(warns, w...)
	}
	for i := range c.CustomSkills {
		v, _ := Resolve(CustomRef(i), ctx)
		out = append(out, v)
	}
	return out, warns
}

// Penalized applies the roll-time encumbrance penalty: a skill whose name
// contains "dodge" loses the total encumbrance and one containing "sneak" loses
// the armor and weapons encumbrance. Names match ignoring case.
//
// Postcondition: result >= 0.
func Penalized(name string, total int, enc character.Encumbrance) int {
	t := float64(total)
	folded := rules.Fold(name)
	switch {
	case strings.Contains(folded, "dodge"):
		t -= enc.Total
	case strings.Contains(folded, "sneak"):
		t -= enc.ArmorAndWeapons
	}
	return max(0, rules.Round(t))
}
