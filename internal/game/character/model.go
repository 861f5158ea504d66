// Package character defines the character domain model and the characteristic engine.
package character

// Stat identifies one of the seven characteristics.
type Stat string

const (
	STR Stat = "str"
	CON Stat = "con"
	SIZ Stat = "siz"
	INT Stat = "int"
	POW Stat = "pow"
	DEX Stat = "dex"
	CHA Stat = "cha"
)

// Stats lists every characteristic in sheet order.
var Stats = []Stat{STR, CON, SIZ, INT, POW, DEX, CHA}

// ParseStat resolves a characteristic key. "app" is accepted as an alias of CHA.
//
// Postcondition: ok is false for unknown keys.
func ParseStat(s string) (Stat, bool) {
	switch s {
	case "str", "STR":
		return STR, true
	case "con", "CON":
		return CON, true
	case "siz", "SIZ":
		return SIZ, true
	case "int", "INT":
		return INT, true
	case "pow", "POW":
		return POW, true
	case "dex", "DEX":
		return DEX, true
	case "cha", "CHA", "app", "APP":
		return CHA, true
	}
	return "", false
}

// Characteristic is a single characteristic value.
//
// Invariant: Modifier is a pure function of Current.
type Characteristic struct {
	Base             int  `yaml:"base" validate:"gte=0,lte=25"`
	Current          int  `yaml:"current" validate:"gte=0,lte=25"`
	Modifier         int  `yaml:"modifier"`
	ReadyForTraining bool `yaml:"ready_for_training,omitempty"`
}

// Pool is a depletable resource derived from a characteristic (hit points, magic points).
type Pool struct {
	Value int `yaml:"value" validate:"gte=0"`
	Max   int `yaml:"max" validate:"gte=0"`
	Temp  int `yaml:"temp"`
}

// Location identifies one of the seven hit locations.
type Location string

const (
	Head     Location = "head"
	LeftArm  Location = "leftArm"
	RightArm Location = "rightArm"
	Chest    Location = "chest"
	Abdomen  Location = "abdomen"
	LeftLeg  Location = "leftLeg"
	RightLeg Location = "rightLeg"
)

// Locations lists every hit location in sheet order.
var Locations = []Location{Head, LeftArm, RightArm, Chest, Abdomen, LeftLeg, RightLeg}

// ValidLocation reports whether loc names one of the seven hit locations.
func ValidLocation(loc Location) bool {
	for _, l := range Locations {
		if l == loc {
			return true
		}
	}
	return false
}

// HitLocation tracks armor and damage for one body zone.
//
// Invariant: 0 <= Damage <= MaxHitPoints after every recompute.
type HitLocation struct {
	Armor        int `yaml:"armor" validate:"gte=0"`
	MaxHitPoints int `yaml:"max_hit_points" validate:"gte=0"`
	Damage       int `yaml:"damage" validate:"gte=0"`
}

// Remaining returns the hit points left at this location, never negative.
func (h HitLocation) Remaining() int {
	if h.Damage >= h.MaxHitPoints {
		return 0
	}
	return h.MaxHitPoints - h.Damage
}

// ItemKind is the polymorphic type of an inventory item.
type ItemKind string

const (
	KindWeapon    ItemKind = "weapon"
	KindArmor     ItemKind = "armor"
	KindSkill     ItemKind = "skill"
	KindSpell     ItemKind = "spell"
	KindRune      ItemKind = "rune"
	KindEquipment ItemKind = "equipment"
	KindSpecies   ItemKind = "species"
)

// StorageLocation is where an item is kept; it scales the item's encumbrance.
type StorageLocation string

const (
	Carried StorageLocation = "carried"
	Worn    StorageLocation = "worn"
	Bag     StorageLocation = "bag"
)

// ArmorProps holds armor-specific item fields. Encumbrance, Cost and Locations are
// recomputed from the wearer's SIZ on every pass; ArmorPoints and ParryBonus are
// only authoritative for shields.
type ArmorProps struct {
	Type        string           `yaml:"type"`
	Coverage    string           `yaml:"coverage"`
	ArmorPoints int              `yaml:"armor_points" validate:"gte=0"`
	ParryBonus  int              `yaml:"parry_bonus"`
	Encumbrance float64          `yaml:"encumbrance" validate:"gte=0"`
	Cost        int              `yaml:"cost" validate:"gte=0"`
	Locations   map[Location]int `yaml:"locations,omitempty"`
}

// WeaponProps holds weapon-specific item fields.
type WeaponProps struct {
	Damage     string `yaml:"damage"`
	SkillUsed  string `yaml:"skill_used,omitempty"`
	ParryBonus int    `yaml:"parry_bonus,omitempty"`
}

// Item is an owned inventory entry.
type Item struct {
	ID       string          `yaml:"id"`
	Name     string          `yaml:"name"`
	Kind     ItemKind        `yaml:"kind" validate:"oneof=weapon armor skill spell rune equipment species"`
	Weight   float64         `yaml:"weight" validate:"gte=0"`
	Quantity int             `yaml:"quantity"`
	Equipped bool            `yaml:"equipped"`
	Storage  StorageLocation `yaml:"storage,omitempty" validate:"omitempty,oneof=carried worn bag"`
	Armor    *ArmorProps     `yaml:"armor,omitempty"`
	Weapon   *WeaponProps    `yaml:"weapon,omitempty"`
	// SkillValue is the invested value carried by legacy skill-type items.
	SkillValue int `yaml:"skill_value,omitempty"`
}

// Count returns the item quantity, treating anything below 1 as 1.
func (i Item) Count() int {
	if i.Quantity < 1 {
		return 1
	}
	return i.Quantity
}

// InvestedSkill records a character's training in a standard skill.
type InvestedSkill struct {
	Value            int  `yaml:"value" validate:"gte=0"`
	ReadyForTraining bool `yaml:"ready_for_training,omitempty"`
}

// CustomSkill is a player-defined skill filed under a category.
type CustomSkill struct {
	ID               string `yaml:"id"`
	Name             string `yaml:"name" validate:"required"`
	Category         string `yaml:"category"`
	BaseValue        int    `yaml:"base_value" validate:"gte=0"`
	InvestedValue    int    `yaml:"invested_value" validate:"gte=0"`
	ReadyForTraining bool   `yaml:"ready_for_training,omitempty"`
}

// Movement holds walk and run rates.
type Movement struct {
	Walk int `yaml:"walk"`
	Run  int `yaml:"run"`
}

// DerivedStats holds combat values derived from STR, SIZ and DEX.
type DerivedStats struct {
	DamageModifier string `yaml:"damage_modifier"`
	DexSRM         int    `yaml:"dex_srm"`
	SizeSRM        int    `yaml:"size_srm"`
	MeleeSRM       int    `yaml:"melee_srm"`
}

// Encumbrance holds the carried-load totals.
type Encumbrance struct {
	Total           float64 `yaml:"total"`
	ArmorAndWeapons float64 `yaml:"armor_and_weapons"`
	Max             int     `yaml:"max"`
}

// Species is reference data applied to a character at most once.
type Species struct {
	Name               string         `yaml:"name" validate:"required"`
	CharacteristicMods map[Stat]int   `yaml:"characteristic_mods"`
	Movement           Movement       `yaml:"movement"`
	Skills             map[string]int `yaml:"skills"`
}

// Character is the raw and derived state of one character sheet.
//
// ID is assigned at creation; the host owns persistence.
type Character struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Species string `yaml:"species,omitempty"`

	Characteristics map[Stat]Characteristic `yaml:"characteristics" validate:"dive"`
	HitPoints       Pool                    `yaml:"hit_points"`
	MagicPoints     Pool                    `yaml:"magic_points"`
	GeneralDamage   int                     `yaml:"general_damage" validate:"gte=0"`
	Fatigue         int                     `yaml:"fatigue" validate:"gte=0"`

	HitLocations  map[Location]HitLocation `yaml:"hit_locations" validate:"dive"`
	Inventory     []Item                   `yaml:"inventory" validate:"dive"`
	EquippedArmor map[Location]string      `yaml:"equipped_armor,omitempty"`

	Skills       map[string]InvestedSkill `yaml:"skills,omitempty" validate:"dive"`
	CustomSkills []CustomSkill            `yaml:"custom_skills,omitempty" validate:"dive"`

	// Derived fields, rewritten by every recompute.
	Movement    Movement     `yaml:"movement"`
	Derived     DerivedStats `yaml:"derived"`
	Encumbrance Encumbrance  `yaml:"encumbrance"`
	FatigueMax  int          `yaml:"fatigue_max"`
}

// Current returns the current value of stat and whether it is usable (defined and >= 1).
func (c *Character) Current(stat Stat) (int, bool) {
	ch, ok := c.Characteristics[stat]
	if !ok || ch.Current < 1 {
		return 0, false
	}
	return ch.Current, true
}

// Item returns the inventory item with the given ID.
func (c *Character) Item(id string) (*Item, bool) {
	for i := range c.Inventory {
		if c.Inventory[i].ID == id {
			return &c.Inventory[i], true
		}
	}
	return nil, false
}

// ArmorSlot returns the slot an armor item is equipped into via EquippedArmor.
func (c *Character) ArmorSlot(id string) (Location, bool) {
	for _, loc := range Locations {
		if c.EquippedArmor[loc] == id && id != "" {
			return loc, true
		}
	}
	return "", false
}

// IsEquipped reports whether it is equipped, either by flag or by occupying an armor slot.
func (c *Character) IsEquipped(it *Item) bool {
	if it.Equipped {
		return true
	}
	if it.Kind != KindArmor {
		return false
	}
	_, ok := c.ArmorSlot(it.ID)
	return ok
}

// Clone returns a deep copy of c.
//
// Postcondition: mutating the result never affects c.
func (c *Character) Clone() *Character {
	out := *c

	if c.Characteristics != nil {
		out.Characteristics = make(map[Stat]Characteristic, len(c.Characteristics))
		for k, v := range c.Characteristics {
			out.Characteristics[k] = v
		}
	}
	if c.HitLocations != nil {
		out.HitLocations = make(map[Location]HitLocation, len(c.HitLocations))
		for k, v := range c.HitLocations {
			out.HitLocations[k] = v
		}
	}
	if c.EquippedArmor != nil {
		out.EquippedArmor = make(map[Location]string, len(c.EquippedArmor))
		for k, v := range c.EquippedArmor {
			out.EquippedArmor[k] = v
		}
	}
	if c.Skills != nil {
		out.Skills = make(map[string]InvestedSkill, len(c.Skills))
		for k, v := range c.Skills {
			out.Skills[k] = v
		}
	}
	if c.CustomSkills != nil {
		out.CustomSkills = append([]CustomSkill(nil), c.CustomSkills...)
	}
	if c.Inventory != nil {
		out.Inventory = make([]Item, len(c.Inventory))
		for i, it := range c.Inventory {
			out.Inventory[i] = it.clone()
		}
	}
	return &out
}

func (i Item) clone() Item {
	out := i
	if i.Armor != nil {
		a := *i.Armor
		if i.Armor.Locations != nil {
			a.Locations = make(map[Location]int, len(i.Armor.Locations))
			for k, v := range i.Armor.Locations {
				a.Locations[k] = v
			}
		}
		out.Armor = &a
	}
	if i.Weapon != nil {
		w := *i.Weapon
		out.Weapon = &w
	}
	return out
}
