package sheet

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/rq3/internal/game/character"
	"github.com/cory-johannsen/rq3/internal/game/dice"
	"github.com/cory-johannsen/rq3/internal/game/rules"
	"github.com/cory-johannsen/rq3/internal/game/skill"
)

var (
	// ErrUnknownSkill is returned when a roll names no custom or standard skill.
	ErrUnknownSkill = errors.New("sheet: unknown skill")
	// ErrUnknownCharacteristic is returned when a roll names an unknown or unusable characteristic.
	ErrUnknownCharacteristic = errors.New("sheet: unknown characteristic")
	// ErrNotWeapon is returned when a damage roll names an item without a damage expression.
	ErrNotWeapon = errors.New("sheet: item is not a weapon")
)

// DefaultMultiplier is the characteristic roll multiplier used when none is given.
const DefaultMultiplier = 5

// Roller produces graded d100 rolls and dice expression rolls.
// *dice.Roller satisfies it.
type Roller interface {
	D100(target int) dice.Outcome
	RollExpr(expr string) (dice.RollResult, error)
}

// SkillRoll is the result of a skill roll.
type SkillRoll struct {
	Skill   skill.Value  `yaml:"skill"`
	Target  int          `yaml:"target"`
	Outcome dice.Outcome `yaml:"outcome"`
}

// CharacteristicRoll is the result of a characteristic roll.
type CharacteristicRoll struct {
	Stat    character.Stat `yaml:"stat"`
	Target  int            `yaml:"target"`
	Outcome dice.Outcome   `yaml:"outcome"`
}

// RollSkill rolls the named skill against its encumbrance-penalised total plus
// modifier. A success marks the skill ready for training unless it cannot gain
// experience.
//
// Precondition: c has been derived (see Derive) so its encumbrance is current.
// Postcondition: on error c is unchanged.
func RollSkill(c *character.Character, rs *rules.Ruleset, species *character.Species, name string, modifier int, r Roller) (SkillRoll, error) {
	ref, ok := skill.Lookup(c, rs, name)
	if !ok {
		return SkillRoll{}, fmt.Errorf("rolling %q: %w", name, ErrUnknownSkill)
	}
	v, _ := skill.Resolve(ref, skill.NewContext(c, species, rs))
	target := skill.Penalized(v.Name, v.Total, c.Encumbrance) + modifier
	out := r.D100(target)

	if out.Success {
		markTrained(c, ref)
	}
	return SkillRoll{Skill: v, Target: target, Outcome: out}, nil
}

func markTrained(c *character.Character, ref skill.Ref) {
	if ref.Kind == skill.Custom {
		c.CustomSkills[ref.Index].ReadyForTraining = true
		return
	}
	if !ref.Def.CanGainExperience() {
		return
	}
	if c.Skills == nil {
		c.Skills = make(map[string]character.InvestedSkill)
	}
	s := c.Skills[ref.Def.ID]
	s.ReadyForTraining = true
	c.Skills[ref.Def.ID] = s
}

// RollCharacteristic rolls stat against current × multiplier + modifier. A
// multiplier below 1 selects DefaultMultiplier. A POW success marks POW ready for
// training.
//
// Postcondition: on error c is unchanged.
func RollCharacteristic(c *character.Character, stat character.Stat, multiplier, modifier int, r Roller) (CharacteristicRoll, error) {
	cur, ok := c.Current(stat)
	if !ok {
		return CharacteristicRoll{}, fmt.Errorf("rolling %q: %w", stat, ErrUnknownCharacteristic)
	}
	if multiplier < 1 {
		multiplier = DefaultMultiplier
	}
	target := cur*multiplier + modifier
	out := r.D100(target)

	if out.Success && stat == character.POW {
		ch := c.Characteristics[stat]
		ch.ReadyForTraining = true
		c.Characteristics[stat] = ch
	}
	return CharacteristicRoll{Stat: stat, Target: target, Outcome: out}, nil
}

// RollWeaponDamage rolls a weapon's damage expression with the wielder's damage
// modifier appended.
//
// Precondition: c has been derived so its damage modifier is current.
func RollWeaponDamage(c *character.Character, itemID string, r Roller) (dice.RollResult, error) {
	it, ok := c.Item(itemID)
	if !ok {
		return dice.RollResult{}, fmt.Errorf("sheet: no item %q", itemID)
	}
	if it.Kind != character.KindWeapon || it.Weapon == nil || it.Weapon.Damage == "" {
		return dice.RollResult{}, fmt.Errorf("rolling damage for %q: %w", it.Name, ErrNotWeapon)
	}
	res, err := r.RollExpr(dice.Join(it.Weapon.Damage, c.Derived.DamageModifier))
	if err != nil {
		return dice.RollResult{}, fmt.Errorf("rolling damage for %q: %w", it.Name, err)
	}
	return res, nil
}
