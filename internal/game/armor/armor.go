// Package armor computes armor coverage, protection, encumbrance and cost from
// the rule tables and the wearer's size.
package armor

import (
	"github.com/cory-johannsen/rq3/internal/game/character"
	"github.com/cory-johannsen/rq3/internal/game/rules"
)

// SizeCategoryFor buckets a wearer's SIZ. Values below 6 clamp to small and values
// above 25 clamp to troll.
func SizeCategoryFor(siz int) rules.SizeCategory {
	switch {
	case siz <= 10:
		return rules.Small
	case siz <= 15:
		return rules.Medium
	case siz <= 20:
		return rules.Large
	default:
		return rules.Troll
	}
}

// Properties is the computed profile of one armor piece for one wearer.
type Properties struct {
	ArmorPoints         int
	Coverage            int // percent of a full suit
	Encumbrance         float64
	Cost                int
	CostPerENC          float64
	FullSuitEncumbrance float64
	Locations           map[character.Location]int
}

// Calculator evaluates armor pieces against a ruleset.
type Calculator struct {
	rules *rules.Ruleset
}

// NewCalculator returns a Calculator reading from rs.
//
// Precondition: rs must be non-nil.
func NewCalculator(rs *rules.Ruleset) *Calculator {
	return &Calculator{rules: rs}
}

func emptyLocations() map[character.Location]int {
	out := make(map[character.Location]int, len(character.Locations))
	for _, l := range character.Locations {
		out[l] = 0
	}
	return out
}

// CoveragePercentage returns the integer percent of a full suit covered by tag.
// A per-slot tag covers a single slot.
//
// Postcondition: Returns 0 for an unknown tag.
func (c *Calculator) CoveragePercentage(tag string) int {
	ct, ok := c.rules.Coverage(tag)
	if !ok || len(ct.Locations) == 0 {
		return 0
	}
	if ct.PerSlot {
		return rules.Round(c.rules.LocationWeight(ct.Locations[0]) * 100)
	}
	var sum float64
	for _, loc := range ct.Locations {
		sum += c.rules.LocationWeight(loc)
	}
	return rules.Round(sum * 100)
}

// PopulateHitLocations returns the armor points a piece gives each of the seven
// locations. Per-slot pieces protect only slot, and only when slot is one of the
// tag's candidate slots.
//
// Postcondition: the result has an entry for every location; unknown types, unknown
// tags and shields yield all zeros.
func (c *Calculator) PopulateHitLocations(armorType, tag string, slot character.Location) map[character.Location]int {
	out := emptyLocations()
	at, ok := c.rules.ArmorType(armorType)
	if !ok || at.Shield {
		return out
	}
	ct, ok := c.rules.Coverage(tag)
	if !ok {
		return out
	}
	if ct.PerSlot {
		for _, l := range ct.Locations {
			if l == slot {
				out[slot] = at.ArmorPoints
			}
		}
		return out
	}
	for _, l := range ct.Locations {
		out[l] = at.ArmorPoints
	}
	return out
}

// Encumbrance returns round2(fullSuit(size) × coverage/100). Shields use the
// full table value for the size category.
//
// Postcondition: Returns 0 for an unknown type.
func (c *Calculator) Encumbrance(armorType, tag string, siz int) float64 {
	at, ok := c.rules.ArmorType(armorType)
	if !ok {
		return 0
	}
	full := at.FullSuit(SizeCategoryFor(siz))
	if at.Shield {
		return rules.Round2(full)
	}
	return rules.Round2(full * float64(c.CoveragePercentage(tag)) / 100)
}

// Cost returns round(costPerENC × enc), or 0 when the type has no per-unit cost.
func (c *Calculator) Cost(armorType string, enc float64) int {
	at, ok := c.rules.ArmorType(armorType)
	if !ok || at.CostPerENC <= 0 {
		return 0
	}
	return rules.Round(at.CostPerENC * enc)
}

// Calculate returns the full profile of a piece worn in slot by a wearer of size siz.
func (c *Calculator) Calculate(armorType, tag string, slot character.Location, siz int) Properties {
	p := Properties{Locations: c.PopulateHitLocations(armorType, tag, slot)}
	at, ok := c.rules.ArmorType(armorType)
	if !ok {
		return p
	}
	p.CostPerENC = at.CostPerENC
	p.FullSuitEncumbrance = at.FullSuit(SizeCategoryFor(siz))
	if !at.Shield {
		p.ArmorPoints = at.ArmorPoints
		p.Coverage = c.CoveragePercentage(tag)
	}
	p.Encumbrance = c.Encumbrance(armorType, tag, siz)
	p.Cost = c.Cost(armorType, p.Encumbrance)
	return p
}

// CanEquip reports whether a piece with coverage tag may occupy slot.
func (c *Calculator) CanEquip(tag string, slot character.Location) bool {
	return c.rules.CanEquip(tag, slot)
}

// LocationArmor returns the armor value of every location: the maximum among the
// equipped pieces covering it. Pieces do not stack.
//
// Precondition: armor items' Locations must be current (see Recompute).
func LocationArmor(ch *character.Character) map[character.Location]int {
	out := emptyLocations()
	for i := range ch.Inventory {
		it := &ch.Inventory[i]
		if it.Kind != character.KindArmor || it.Armor == nil || !ch.IsEquipped(it) {
			continue
		}
		for loc, ap := range it.Armor.Locations {
			if ap > out[loc] {
				out[loc] = ap
			}
		}
	}
	return out
}
