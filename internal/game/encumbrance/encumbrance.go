// Package encumbrance totals the load a character carries and derives carry and
// fatigue limits.
package encumbrance

import (
	"fmt"

	"github.com/cory-johannsen/rq3/internal/game/character"
	"github.com/cory-johannsen/rq3/internal/game/rules"
)

// Multiplier returns the share of an item's weight that counts toward encumbrance
// for a storage location. Empty means carried.
//
// Postcondition: ok is false for an unknown storage location, which counts as carried.
func Multiplier(s character.StorageLocation) (m float64, ok bool) {
	switch s {
	case character.Carried, "":
		return 1, true
	case character.Worn:
		return 0.5, true
	case character.Bag:
		return 1.0 / 3.0, true
	default:
		return 1, false
	}
}

// ItemEncumbrance returns weight × quantity × storage multiplier.
func ItemEncumbrance(it character.Item) float64 {
	m, _ := Multiplier(it.Storage)
	return it.Weight * float64(it.Count()) * m
}

// equippedLoad returns the full-weight contribution of equipped armor and weapons.
func equippedLoad(c *character.Character, it *character.Item) (float64, bool) {
	switch it.Kind {
	case character.KindArmor:
		if !c.IsEquipped(it) {
			return 0, false
		}
		if it.Armor != nil {
			return it.Armor.Encumbrance, true
		}
		return it.Weight * float64(it.Count()), true
	case character.KindWeapon:
		if !it.Equipped {
			return 0, false
		}
		return it.Weight * float64(it.Count()), true
	}
	return 0, false
}

// Totals holds the derived load values for one character.
type Totals struct {
	Total           float64
	ArmorAndWeapons float64
	Max             int
	FatigueMax      int
}

// Compute totals every inventory item. Equipped armor and weapons count in full
// and also feed the ArmorAndWeapons subtotal; everything else is scaled by its
// storage location. Max and FatigueMax are zero, with a warning, when STR or CON
// is unusable.
//
// Precondition: armor items' Encumbrance must be current.
func Compute(c *character.Character) (Totals, []character.Warning) {
	var (
		t     Totals
		warns []character.Warning
		total float64
		aw    float64
	)
	for i := range c.Inventory {
		it := &c.Inventory[i]
		if load, ok := equippedLoad(c, it); ok {
			total += load
			aw += load
			continue
		}
		if _, ok := Multiplier(it.Storage); !ok {
			warns = append(warns, character.Warning{
				Field:   fmt.Sprintf("inventory[%s].storage", it.ID),
				Message: fmt.Sprintf("unknown storage location %q counted as carried", it.Storage),
			})
		}
		total += ItemEncumbrance(*it)
	}
	t.Total = rules.Round2(total)
	t.ArmorAndWeapons = rules.Round2(aw)

	if str, ok := c.Current(character.STR); ok {
		t.Max = str * 6
	} else {
		warns = append(warns, character.Warning{Field: "encumbrance.max", Message: "requires [str] defined and >= 1"})
	}
	if con, ok := c.Current(character.CON); ok {
		t.FatigueMax = con
	} else {
		warns = append(warns, character.Warning{Field: "fatigue_max", Message: "requires [con] defined and >= 1"})
	}
	return t, warns
}

// Recompute writes the encumbrance totals and fatigue maximum onto c. Limits
// whose characteristic is unusable keep their prior value.
func Recompute(c *character.Character) []character.Warning {
	t, warns := Compute(c)
	c.Encumbrance.Total = t.Total
	c.Encumbrance.ArmorAndWeapons = t.ArmorAndWeapons
	if _, ok := c.Current(character.STR); ok {
		c.Encumbrance.Max = t.Max
	}
	if _, ok := c.Current(character.CON); ok {
		c.FatigueMax = t.FatigueMax
	}
	return warns
}
