// Package skill composes skill values from base chance, species grants,
// invested training and characteristic-derived category bonuses.
package skill

import (
	"math"

	"github.com/cory-johannsen/rq3/internal/game/character"
)

// Primary returns v - 10.
func Primary(v int) int {
	return v - 10
}

// Secondary returns floor((min(v, 30) - 10) / 2), clamped to [-10, 10].
func Secondary(v int) int {
	m := int(math.Floor(float64(min(v, 30)-10) / 2))
	return max(-10, min(10, m))
}

// Negative returns 10 - v.
func Negative(v int) int {
	return 10 - v
}

type influence struct {
	stat character.Stat
	fn   func(int) int
}

var formulas = map[string][]influence{
	"agility":       {{character.DEX, Primary}, {character.STR, Secondary}, {character.SIZ, Negative}},
	"communication": {{character.INT, Primary}, {character.POW, Secondary}, {character.CHA, Secondary}},
	"knowledge":     {{character.INT, Primary}},
	"manipulation":  {{character.INT, Primary}, {character.DEX, Primary}, {character.STR, Secondary}},
	"perception":    {{character.INT, Primary}, {character.POW, Secondary}, {character.CON, Secondary}},
	"stealth":       {{character.DEX, Primary}, {character.SIZ, Negative}, {character.POW, Negative}},
}

// CategoryBonus returns the bonus applied to every skill in category. A
// characteristic that is missing or unset counts as 10.
//
// Postcondition: Returns 0 for an unknown category.
func CategoryBonus(category string, chars map[character.Stat]character.Characteristic) int {
	bonus := 0
	for _, inf := range formulas[category] {
		v := 10
		if ch, ok := chars[inf.stat]; ok && ch.Current > 0 {
			v = ch.Current
		}
		bonus += inf.fn(v)
	}
	return bonus
}

// CategoryBonuses returns the bonus for each of categories.
func CategoryBonuses(categories []string, chars map[character.Stat]character.Characteristic) map[string]int {
	out := make(map[string]int, len(categories))
	for _, cat := range categories {
		out[cat] = CategoryBonus(cat, chars)
	}
	return out
}
