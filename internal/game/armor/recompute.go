package armor

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/rq3/internal/game/character"
)

// ErrIncompatibleSlot is returned when an armor piece cannot be worn in the requested slot.
var ErrIncompatibleSlot = errors.New("armor: coverage does not fit slot")

// ErrNotArmor is returned when equipping an item that is not an armor piece.
var ErrNotArmor = errors.New("armor: item is not armor")

// Recompute refreshes every armor item's encumbrance, cost and per-location
// protection for the wearer's current SIZ, then sets each hit location's armor to
// the best equipped protection covering it.
//
// Precondition: ch must be non-nil.
// Postcondition: every returned Warning names a value left at its prior state.
func (c *Calculator) Recompute(ch *character.Character) []character.Warning {
	var warns []character.Warning
	siz, sizOK := ch.Current(character.SIZ)
	if !sizOK {
		warns = append(warns, character.Warning{
			Field:   "armor.encumbrance",
			Message: "requires [siz] defined and >= 1",
		})
	}

	for i := range ch.Inventory {
		it := &ch.Inventory[i]
		if it.Kind != character.KindArmor {
			continue
		}
		field := fmt.Sprintf("inventory[%s].armor", it.ID)
		if it.Armor == nil {
			warns = append(warns, character.Warning{Field: field, Message: "armor item has no armor properties"})
			continue
		}
		at, ok := c.rules.ArmorType(it.Armor.Type)
		if !ok {
			warns = append(warns, character.Warning{Field: field, Message: fmt.Sprintf("unknown armor type %q", it.Armor.Type)})
			continue
		}

		slot, _ := ch.ArmorSlot(it.ID)
		if !at.Shield {
			it.Armor.ArmorPoints = at.ArmorPoints
		}
		it.Armor.Locations = c.PopulateHitLocations(it.Armor.Type, it.Armor.Coverage, slot)
		if sizOK {
			it.Armor.Encumbrance = c.Encumbrance(it.Armor.Type, it.Armor.Coverage, siz)
			it.Armor.Cost = c.Cost(it.Armor.Type, it.Armor.Encumbrance)
		}
	}

	best := LocationArmor(ch)
	for _, loc := range character.Locations {
		hl, ok := ch.HitLocations[loc]
		if !ok {
			warns = append(warns, character.Warning{Field: "hit_locations." + string(loc) + ".armor", Message: "hit location missing"})
			continue
		}
		hl.Armor = best[loc]
		ch.HitLocations[loc] = hl
	}
	return warns
}

// Equip places the armor item itemID into slot, replacing whatever occupied it.
//
// Precondition: ch must be non-nil.
// Postcondition: on error ch is unchanged.
func (c *Calculator) Equip(ch *character.Character, itemID string, slot character.Location) error {
	it, ok := ch.Item(itemID)
	if !ok {
		return fmt.Errorf("armor: no item %q", itemID)
	}
	if it.Kind != character.KindArmor || it.Armor == nil {
		return fmt.Errorf("equipping %q: %w", it.Name, ErrNotArmor)
	}
	if !c.CanEquip(it.Armor.Coverage, slot) {
		return fmt.Errorf("equipping %q (%s) into %s: %w", it.Name, it.Armor.Coverage, slot, ErrIncompatibleSlot)
	}
	if ch.EquippedArmor == nil {
		ch.EquippedArmor = make(map[character.Location]string)
	}
	if prev, ok := ch.Item(ch.EquippedArmor[slot]); ok {
		prev.Equipped = false
	}
	if old, ok := ch.ArmorSlot(itemID); ok {
		delete(ch.EquippedArmor, old)
	}
	ch.EquippedArmor[slot] = itemID
	it.Equipped = true
	return nil
}

// Unequip empties slot and returns the ID of the item that occupied it.
func (c *Calculator) Unequip(ch *character.Character, slot character.Location) (string, bool) {
	id, ok := ch.EquippedArmor[slot]
	if !ok {
		return "", false
	}
	delete(ch.EquippedArmor, slot)
	if it, ok := ch.Item(id); ok {
		it.Equipped = false
	}
	return id, true
}

// NewPiece builds an unequipped armor item of the given type and coverage.
//
// Postcondition: Returns an error if the type or coverage tag is unknown.
func (c *Calculator) NewPiece(name, armorType, coverage string) (character.Item, error) {
	at, ok := c.rules.ArmorType(armorType)
	if !ok {
		return character.Item{}, fmt.Errorf("armor: unknown type %q", armorType)
	}
	if _, ok := c.rules.Coverage(coverage); !ok && !at.Shield {
		return character.Item{}, fmt.Errorf("armor: unknown coverage %q", coverage)
	}
	it := character.NewItem(name, character.KindArmor)
	it.Armor = &character.ArmorProps{
		Type:        at.Name,
		Coverage:    coverage,
		ArmorPoints: at.ArmorPoints,
	}
	return it, nil
}

// NewShield builds a standard shield of the given size ("small", "medium", "large").
func (c *Calculator) NewShield(name, size string) (character.Item, error) {
	sh, ok := c.rules.Shield(size)
	if !ok {
		return character.Item{}, fmt.Errorf("armor: unknown shield size %q", size)
	}
	it, err := c.NewPiece(name, "shield", "")
	if err != nil {
		return character.Item{}, err
	}
	it.Armor.ArmorPoints = sh.ArmorPoints
	it.Armor.ParryBonus = sh.ParryBonus
	return it, nil
}
