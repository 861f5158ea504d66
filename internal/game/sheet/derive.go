// Package sheet runs the full recompute pipeline over a character and orchestrates
// skill, characteristic and damage rolls against the derived values.
package sheet

import (
	"maps"
	"slices"

	"github.com/cory-johannsen/rq3/internal/game/armor"
	"github.com/cory-johannsen/rq3/internal/game/character"
	"github.com/cory-johannsen/rq3/internal/game/encumbrance"
	"github.com/cory-johannsen/rq3/internal/game/hitloc"
	"github.com/cory-johannsen/rq3/internal/game/rules"
	"github.com/cory-johannsen/rq3/internal/game/skill"
)

// Result is one derived character sheet.
type Result struct {
	Character   *character.Character                 `yaml:"character"`
	Skills      []skill.Value                        `yaml:"skills"`
	EffectiveHP int                                  `yaml:"effective_hp"`
	Status      map[character.Location]hitloc.Status `yaml:"status"`
	Warnings    []character.Warning                  `yaml:"warnings,omitempty"`
}

// Clone returns a deep copy of r.
func (r Result) Clone() Result {
	out := r
	if r.Character != nil {
		out.Character = r.Character.Clone()
	}
	out.Skills = slices.Clone(r.Skills)
	out.Status = maps.Clone(r.Status)
	out.Warnings = slices.Clone(r.Warnings)
	return out
}

// Derive recomputes every derived field on a copy of c. species may be nil.
//
// Passes run in dependency order: characteristics, armor, then hit locations and
// encumbrance, then skills. A malformed snapshot is reported as warnings.
//
// Precondition: rs and c must be non-nil.
// Postcondition: c is not modified; Derive(rs, r.Character, species) yields the same sheet.
func Derive(rs *rules.Ruleset, c *character.Character, species *character.Species) Result {
	out := c.Clone()
	var warns []character.Warning

	warns = append(warns, character.DeriveCharacteristics(out, species)...)
	warns = append(warns, armor.NewCalculator(rs).Recompute(out)...)
	warns = append(warns, hitloc.Recompute(out)...)
	warns = append(warns, encumbrance.Recompute(out)...)

	skills, sw := skill.Table(out, species, rs)
	warns = append(warns, sw...)

	for _, err := range rules.Check(out) {
		warns = append(warns, character.Warning{Field: "character", Message: err.Error()})
	}

	status := make(map[character.Location]hitloc.Status, len(out.HitLocations))
	for loc, hl := range out.HitLocations {
		status[loc] = hitloc.StatusOf(hl)
	}

	return Result{
		Character:   out,
		Skills:      skills,
		EffectiveHP: hitloc.EffectiveTotalHP(out),
		Status:      status,
		Warnings:    warns,
	}
}
