// Package hitloc distributes hit points across the seven hit locations and
// applies damage and healing to them.
package hitloc

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/rq3/internal/game/character"
)

// ErrUnknownLocation is returned when a damage or healing target is not one of the
// character's hit locations.
var ErrUnknownLocation = errors.New("hitloc: unknown hit location")

// Per-location hit points by total-HP bucket (1-3, 4-6, ... 19-21, 22+).
var distribution = map[character.Location][7]int{
	character.Head:     {1, 2, 3, 4, 5, 6, 7},
	character.LeftArm:  {1, 2, 3, 3, 4, 5, 6},
	character.RightArm: {1, 2, 3, 3, 4, 5, 6},
	character.Chest:    {2, 3, 4, 5, 6, 8, 9},
	character.Abdomen:  {1, 2, 3, 4, 5, 6, 7},
	character.LeftLeg:  {1, 2, 3, 4, 5, 6, 7},
	character.RightLeg: {1, 2, 3, 4, 5, 6, 7},
}

func bucket(maxHP int) int {
	if maxHP < 1 {
		return 0
	}
	return min((maxHP-1)/3, 6)
}

// DistributeHP returns each location's maximum hit points for a total of maxHP.
// Totals of 22 and above use the top bucket.
//
// Postcondition: every location's value is non-decreasing in maxHP.
func DistributeHP(maxHP int) map[character.Location]int {
	b := bucket(maxHP)
	out := make(map[character.Location]int, len(character.Locations))
	for _, loc := range character.Locations {
		out[loc] = distribution[loc][b]
	}
	return out
}

// Clamp lowers damage to maxHP when it exceeds it. It never raises damage.
func Clamp(h character.HitLocation) character.HitLocation {
	if h.Damage > h.MaxHitPoints {
		h.Damage = h.MaxHitPoints
	}
	if h.Damage < 0 {
		h.Damage = 0
	}
	return h
}

// Recompute sets every location's maximum from the character's hit point maximum
// and clamps stored damage to it.
//
// Precondition: c must be non-nil; c.HitPoints.Max must already be derived.
// Postcondition: Damage <= MaxHitPoints for every location present.
func Recompute(c *character.Character) []character.Warning {
	var warns []character.Warning
	if c.HitPoints.Max < 1 {
		return append(warns, character.Warning{
			Field:   "hit_locations",
			Message: fmt.Sprintf("hit point maximum %d is below 1", c.HitPoints.Max),
		})
	}
	dist := DistributeHP(c.HitPoints.Max)
	for _, loc := range character.Locations {
		hl, ok := c.HitLocations[loc]
		if !ok {
			warns = append(warns, character.Warning{
				Field:   "hit_locations." + string(loc),
				Message: "hit location missing",
			})
			continue
		}
		hl.MaxHitPoints = dist[loc]
		c.HitLocations[loc] = Clamp(hl)
	}
	return warns
}

// EffectiveTotalHP returns max(0, HP max - general damage - all location damage).
func EffectiveTotalHP(c *character.Character) int {
	total := c.HitPoints.Max - c.GeneralDamage
	for _, hl := range c.HitLocations {
		total -= hl.Damage
	}
	return max(0, total)
}

func lookup(c *character.Character, loc character.Location) (character.HitLocation, error) {
	hl, ok := c.HitLocations[loc]
	if !ok || !character.ValidLocation(loc) {
		return character.HitLocation{}, fmt.Errorf("%w: %q", ErrUnknownLocation, loc)
	}
	return hl, nil
}

// ApplyDamage deals amount to loc, reduced by the location's armor unless
// ignoreArmor is set. Location damage rises, capped at the location maximum, and
// the general hit point pool falls, floored at 0.
//
// Postcondition: Returns the location's remaining hit points, or ErrUnknownLocation
// with c unchanged.
func ApplyDamage(c *character.Character, loc character.Location, amount int, ignoreArmor bool) (int, error) {
	hl, err := lookup(c, loc)
	if err != nil {
		return 0, err
	}
	eff := max(0, amount)
	if !ignoreArmor {
		eff = max(0, amount-hl.Armor)
	}
	hl.Damage = min(hl.MaxHitPoints, hl.Damage+eff)
	c.HitLocations[loc] = hl
	c.HitPoints.Value = max(0, c.HitPoints.Value-eff)
	return hl.Remaining(), nil
}

// ApplyHealing removes amount of damage from loc, floored at 0, and restores the
// general hit point pool, capped at its maximum.
//
// Postcondition: Returns the location's remaining hit points, or ErrUnknownLocation
// with c unchanged.
func ApplyHealing(c *character.Character, loc character.Location, amount int) (int, error) {
	hl, err := lookup(c, loc)
	if err != nil {
		return 0, err
	}
	amount = max(0, amount)
	hl.Damage = max(0, hl.Damage-amount)
	c.HitLocations[loc] = hl
	c.HitPoints.Value = min(c.HitPoints.Max, c.HitPoints.Value+amount)
	return hl.Remaining(), nil
}

// ResetDamage clears all damage at loc.
func ResetDamage(c *character.Character, loc character.Location) error {
	hl, err := lookup(c, loc)
	if err != nil {
		return err
	}
	hl.Damage = 0
	c.HitLocations[loc] = hl
	return nil
}

// Status bands a location by the share of its hit points remaining.
type Status string

const (
	Healthy  Status = "healthy"
	Injured  Status = "injured"
	Wounded  Status = "wounded"
	Critical Status = "critical"
)

// StatusOf returns the status band for h: critical at 25% remaining or less,
// wounded at 50%, injured at 75%, otherwise healthy.
func StatusOf(h character.HitLocation) Status {
	if h.MaxHitPoints <= 0 {
		return Healthy
	}
	pct := float64(h.Remaining()) / float64(h.MaxHitPoints) * 100
	switch {
	case pct <= 25:
		return Critical
	case pct <= 50:
		return Wounded
	case pct <= 75:
		return Injured
	default:
		return Healthy
	}
}

var displayNames = map[character.Location]string{
	character.Head:     "Head",
	character.LeftArm:  "Left Arm",
	character.RightArm: "Right Arm",
	character.Chest:    "Chest",
	character.Abdomen:  "Abdomen",
	character.LeftLeg:  "Left Leg",
	character.RightLeg: "Right Leg",
}

// DisplayName returns the human-readable label for loc, or loc itself if unknown.
func DisplayName(loc character.Location) string {
	if n, ok := displayNames[loc]; ok {
		return n
	}
	return string(loc)
}
