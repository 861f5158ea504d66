package character

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrSpeciesActive is returned when a species is applied to a character that already has one.
var ErrSpeciesActive = errors.New("character: a species is already applied")

// ErrSpeciesMismatch is returned when removing a species the character does not have.
var ErrSpeciesMismatch = errors.New("character: species is not the applied species")

// New constructs a character with every characteristic at 10, all seven hit
// locations present and undamaged, and a fresh ID.
//
// Precondition: name must be non-empty.
// Postcondition: Returns a Character ready for a derive pass, or a non-nil error.
func New(name string) (*Character, error) {
	if name == "" {
		return nil, errors.New("character name must not be empty")
	}

	chars := make(map[Stat]Characteristic, len(Stats))
	for _, s := range Stats {
		chars[s] = Characteristic{Base: 10, Current: 10}
	}
	locs := make(map[Location]HitLocation, len(Locations))
	for _, l := range Locations {
		locs[l] = HitLocation{}
	}

	return &Character{
		ID:              uuid.NewString(),
		Name:            name,
		Characteristics: chars,
		HitLocations:    locs,
		EquippedArmor:   map[Location]string{},
		Skills:          map[string]InvestedSkill{},
		Movement:        Movement{Walk: BaseWalk, Run: BaseWalk * 3},
	}, nil
}

// NewItem constructs a carried, unequipped item of the given kind with a fresh ID.
//
// Postcondition: Quantity == 1 and Storage == Carried.
func NewItem(name string, kind ItemKind) Item {
	return Item{
		ID:       uuid.NewString(),
		Name:     name,
		Kind:     kind,
		Quantity: 1,
		Storage:  Carried,
	}
}

func shift(c *Character, mods map[Stat]int, sign int) []Warning {
	var warns []Warning
	for _, stat := range Stats {
		delta, ok := mods[stat]
		if !ok || delta == 0 {
			continue
		}
		ch, ok := c.Characteristics[stat]
		if !ok {
			warns = append(warns, warnf(string(stat), "species modifier skipped: characteristic undefined"))
			continue
		}
		ch.Base = max(1, ch.Base+sign*delta)
		ch.Current = max(1, ch.Current+sign*delta)
		ch.Modifier = ModifierFor(ch.Current)
		c.Characteristics[stat] = ch
	}
	return warns
}

// ApplySpecies adds the species characteristic modifiers to base and current
// values, floored at 1, and records the species name.
//
// Precondition: c and sp must be non-nil.
// Postcondition: Returns ErrSpeciesActive without mutation if c already has a species.
func ApplySpecies(c *Character, sp *Species) ([]Warning, error) {
	if c.Species != "" {
		return nil, fmt.Errorf("applying %q over %q: %w", sp.Name, c.Species, ErrSpeciesActive)
	}
	warns := shift(c, sp.CharacteristicMods, 1)
	c.Species = sp.Name
	return warns, nil
}

// RemoveSpecies subtracts the species characteristic modifiers, floored at 1,
// clears the species name and resets movement to the base rates.
//
// Precondition: c and sp must be non-nil.
// Postcondition: Returns ErrSpeciesMismatch without mutation if sp is not the applied species.
func RemoveSpecies(c *Character, sp *Species) ([]Warning, error) {
	if c.Species != sp.Name {
		return nil, fmt.Errorf("removing %q from %q: %w", sp.Name, c.Species, ErrSpeciesMismatch)
	}
	warns := shift(c, sp.CharacteristicMods, -1)
	c.Species = ""
	c.Movement = Movement{Walk: BaseWalk, Run: BaseWalk * 3}
	return warns, nil
}

// StatLabel returns the short display label for a characteristic.
func StatLabel(s Stat) string {
	labels := map[Stat]string{
		STR: "STR",
		CON: "CON",
		SIZ: "SIZ",
		INT: "INT",
		POW: "POW",
		DEX: "DEX",
		CHA: "APP",
	}
	if n, ok := labels[s]; ok {
		return n
	}
	return fmt.Sprintf("<%s>", s)
}
