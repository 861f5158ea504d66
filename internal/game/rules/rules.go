// Package rules holds the immutable rule tables shared by every engine: armor
// types, coverage tags, skill definitions, categories and species.
package rules

import (
	"maps"
	"slices"

	"github.com/cory-johannsen/rq3/internal/game/character"
	"golang.org/x/text/cases"
)

// SizeCategory buckets a wearer's SIZ for armor encumbrance lookups.
type SizeCategory string

const (
	Small  SizeCategory = "small"
	Medium SizeCategory = "medium"
	Large  SizeCategory = "large"
	Troll  SizeCategory = "troll"
)

// ArmorType is one row of the armor table.
type ArmorType struct {
	Name        string                   `yaml:"name" validate:"required"`
	ArmorPoints int                      `yaml:"armor_points" validate:"gte=0"`
	CostPerENC  float64                  `yaml:"cost_per_enc" validate:"gte=0"`
	Encumbrance map[SizeCategory]float64 `yaml:"encumbrance" validate:"len=4,dive,keys,oneof=small medium large troll,endkeys,gte=0"`
	Shield      bool                     `yaml:"shield"`
}

// FullSuit returns the full-suit encumbrance for a size category, or 0 when unknown.
func (a *ArmorType) FullSuit(size SizeCategory) float64 {
	return a.Encumbrance[size]
}

// ShieldSize is the fixed protection of a standard shield.
type ShieldSize struct {
	Name        string `yaml:"name" validate:"required"`
	ArmorPoints int    `yaml:"armor_points" validate:"gte=0"`
	ParryBonus  int    `yaml:"parry_bonus" validate:"gte=0"`
}

// Skill is a static skill definition.
type Skill struct {
	ID         string         `yaml:"id" validate:"required"`
	Name       string         `yaml:"name" validate:"required"`
	Category   string         `yaml:"category" validate:"required"`
	BaseChance int            `yaml:"base_chance" validate:"gte=0,lte=100"`
	Char1      character.Stat `yaml:"char1" validate:"required,stat"`
	Char2      character.Stat `yaml:"char2" validate:"omitempty,stat"`
	// Multiplier > 0 marks a characteristic-multiple skill: base = current(Char1) × Multiplier.
	Multiplier   int    `yaml:"multiplier" validate:"gte=0"`
	Specialty    bool   `yaml:"specialty"`
	NoExperience bool   `yaml:"no_experience"`
	SpeciesKey   string `yaml:"species_key"`
}

// CharacteristicMultiple reports whether the skill's base is a multiple of Char1.
func (s *Skill) CharacteristicMultiple() bool {
	return s.Multiplier > 0
}

// CanGainExperience reports whether successful use may mark the skill for training.
func (s *Skill) CanGainExperience() bool {
	return !s.NoExperience
}

// speciesKey returns the key species tables use for this skill.
func (s *Skill) speciesKey() string {
	if s.SpeciesKey != "" {
		return s.SpeciesKey
	}
	return s.ID
}

// CoverageTag resolves an armor coverage tag.
//
// PerSlot tags cover exactly one of Locations, chosen when the piece is equipped.
type CoverageTag struct {
	Locations []character.Location
	PerSlot   bool
}

// Ruleset is an immutable set of rule tables. Lookups are safe for concurrent use.
type Ruleset struct {
	armor       map[string]*ArmorType
	shields     map[string]ShieldSize
	skills      []*Skill
	skillByID   map[string]*Skill
	skillByName map[string]*Skill
	species     map[string]*character.Species
	weights     map[character.Location]float64
	tags        map[string][]character.Location
	slotTags    map[string][]character.Location
	anywhere    map[string]bool
	categories  []string
}

// Fold case-folds a name for case-insensitive matching.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// ArmorType returns the armor table row for name.
//
// Postcondition: Returns nil and false when name is unknown.
//
// Postcondition: The returned row is a copy; mutating it never alters the table.
func (r *Ruleset) ArmorType(name string) (*ArmorType, bool) {
	a, ok := r.armor[Fold(name)]
	if !ok {
		return nil, false
	}
	cp := *a
	cp.Encumbrance = maps.Clone(a.Encumbrance)
	return &cp, true
}

// Shield returns the fixed protection for a standard shield size.
func (r *Ruleset) Shield(size string) (ShieldSize, bool) {
	s, ok := r.shields[Fold(size)]
	return s, ok
}

// Skill returns the skill definition with the given ID.
func (r *Ruleset) Skill(id string) (*Skill, bool) {
	s, ok := r.skillByID[id]
	if !ok {
		return nil, false
	}
	cp := *s
	return &cp, true
}

// SkillByName returns the skill definition whose display name matches name, ignoring case.
func (r *Ruleset) SkillByName(name string) (*Skill, bool) {
	s, ok := r.skillByName[Fold(name)]
	if !ok {
		return nil, false
	}
	cp := *s
	return &cp, true
}

// Skills returns copies of every skill definition in table order.
func (r *Ruleset) Skills() []*Skill {
	return copySkills(r.skills)
}

func copySkills(in []*Skill) []*Skill {
	out := make([]*Skill, len(in))
	for i, s := range in {
		cp := *s
		out[i] = &cp
	}
	return out
}

// SkillsIn returns the skill definitions of one category in table order.
//
// Postcondition: Returns an empty slice for an unknown category.
func (r *Ruleset) SkillsIn(category string) []*Skill {
	var out []*Skill
	for _, s := range r.skills {
		if s.Category == category {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out
}

// SpeciesBase returns the species-provided base value for a skill. A zero value
// counts as not provided.
func (r *Ruleset) SpeciesBase(sp *character.Species, s *Skill) (int, bool) {
	if sp == nil {
		return 0, false
	}
	v := sp.Skills[s.speciesKey()]
	return v, v > 0
}

// Species returns a copy of the species record for name, ignoring case.
func (r *Ruleset) Species(name string) (*character.Species, bool) {
	sp, ok := r.species[Fold(name)]
	if !ok {
		return nil, false
	}
	cp := *sp
	cp.CharacteristicMods = make(map[character.Stat]int, len(sp.CharacteristicMods))
	for k, v := range sp.CharacteristicMods {
		cp.CharacteristicMods[k] = v
	}
	cp.Skills = make(map[string]int, len(sp.Skills))
	for k, v := range sp.Skills {
		cp.Skills[k] = v
	}
	return &cp, true
}

// Coverage resolves an armor coverage tag.
func (r *Ruleset) Coverage(tag string) (CoverageTag, bool) {
	if locs, ok := r.slotTags[tag]; ok {
		return CoverageTag{Locations: slices.Clone(locs), PerSlot: true}, true
	}
	if locs, ok := r.tags[tag]; ok {
		return CoverageTag{Locations: slices.Clone(locs)}, true
	}
	return CoverageTag{}, false
}

// LocationWeight returns the share of a full suit's encumbrance carried by loc.
func (r *Ruleset) LocationWeight(loc character.Location) float64 {
	return r.weights[loc]
}

// Categories returns the skill category names in table order.
func (r *Ruleset) Categories() []string {
	return slices.Clone(r.categories)
}

// CanEquip reports whether armor with coverage tag may be equipped into slot.
func (r *Ruleset) CanEquip(tag string, slot character.Location) bool {
	if !character.ValidLocation(slot) {
		return false
	}
	if r.anywhere[tag] {
		return true
	}
	ct, ok := r.Coverage(tag)
	if !ok {
		return false
	}
	return slices.Contains(ct.Locations, slot)
}
