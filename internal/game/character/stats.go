package character

// BaseWalk is the walk rate of a character with no species movement override.
const BaseWalk = 8

// ModifierFor returns the characteristic modifier for a current value.
//
// Postcondition: result is in [-2, 3] and non-decreasing in current.
func ModifierFor(current int) int {
	switch {
	case current <= 6:
		return -2
	case current <= 8:
		return -1
	case current <= 12:
		return 0
	case current <= 16:
		return 1
	case current <= 20:
		return 2
	default:
		return 3
	}
}

// HitPointsMax returns ceil((con+siz)/2).
//
// Precondition: con >= 1 and siz >= 1.
func HitPointsMax(con, siz int) int {
	return (con + siz + 1) / 2
}

// MagicPointsMax returns the magic point maximum for pow.
func MagicPointsMax(pow int) int {
	return pow
}

// MovementFor returns the walk and run rates for dex and siz, stepping up from
// base. A zero base.Walk selects BaseWalk and a zero base.Run selects three
// times the walk. Each threshold overwrites the last, so the highest threshold
// passed wins; every walk step adds three to run.
//
// Postcondition: with base.Run unset, Run == Walk*3.
func MovementFor(dex, siz int, base Movement) Movement {
	if base.Walk <= 0 {
		base.Walk = BaseWalk
	}
	if base.Run <= 0 {
		base.Run = base.Walk * 3
	}
	step := 0
	if dex > siz {
		step = 1
	}
	if dex > siz+5 {
		step = 2
	}
	if dex > siz+10 {
		step = 3
	}
	if dex > siz+15 {
		step = 4
	}
	return Movement{Walk: base.Walk + step, Run: base.Run + step*3}
}

// DamageModifier returns the damage bonus dice expression for str+siz.
func DamageModifier(str, siz int) string {
	switch sum := str + siz; {
	case sum <= 12:
		return "-1d4"
	case sum <= 16:
		return "-1d2"
	case sum <= 24:
		return "+0"
	case sum <= 32:
		return "+1d4"
	case sum <= 40:
		return "+1d6"
	case sum <= 56:
		return "+2d6"
	default:
		return "+3d6"
	}
}

// StrikeRanks holds the strike rank modifiers derived from DEX and SIZ.
type StrikeRanks struct {
	Dex   int
	Size  int
	Melee int
}

// StrikeRankModifiers returns the DEX, SIZ and melee strike rank modifiers.
//
// Postcondition: Melee == Dex + Size.
func StrikeRankModifiers(dex, siz int) StrikeRanks {
	var sr StrikeRanks
	switch {
	case dex <= 8:
		sr.Dex = 3
	case dex <= 12:
		sr.Dex = 2
	case dex <= 16:
		sr.Dex = 1
	case dex <= 20:
		sr.Dex = 0
	default:
		sr.Dex = -1
	}
	switch {
	case siz <= 8:
		sr.Size = -1
	case siz <= 16:
		sr.Size = 0
	case siz <= 24:
		sr.Size = 1
	default:
		sr.Size = 2
	}
	sr.Melee = sr.Dex + sr.Size
	return sr
}

// TrackMax moves a pool to a new maximum. When the maximum changes, the value
// follows it if it was sitting at the old maximum or was zero; otherwise the
// player-set value is kept. A value above the maximum is always capped. An
// unchanged maximum never refills a depleted pool.
//
// Postcondition: result.Max == newMax and result.Value <= newMax.
func TrackMax(p Pool, newMax int) Pool {
	if p.Max == newMax {
		p.Value = min(p.Value, newMax)
		return p
	}
	switch {
	case p.Value == p.Max || p.Value == 0:
		p.Value = newMax
	case p.Value > newMax:
		p.Value = newMax
	}
	p.Max = newMax
	return p
}

// SyncCurrent sets Current to Base for every characteristic whose Current is unset.
func SyncCurrent(c *Character) {
	for stat, ch := range c.Characteristics {
		if ch.Current == 0 {
			ch.Current = ch.Base
			c.Characteristics[stat] = ch
		}
	}
}

// ResetCurrent discards temporary effects by setting Current to Base for every characteristic.
func ResetCurrent(c *Character) {
	for stat, ch := range c.Characteristics {
		ch.Current = ch.Base
		ch.Modifier = ModifierFor(ch.Current)
		c.Characteristics[stat] = ch
	}
}

// DeriveCharacteristics runs the characteristic pass over c in place: modifiers,
// hit and magic point pools, movement, damage modifier and strike ranks. species
// may be nil. A derivation whose inputs are undefined or below 1 is skipped and
// reported; every other derivation still runs.
//
// Precondition: c must be non-nil.
// Postcondition: every returned Warning names a derived field left at its prior value.
func DeriveCharacteristics(c *Character, species *Species) []Warning {
	var warns []Warning

	SyncCurrent(c)

	for _, stat := range Stats {
		ch, ok := c.Characteristics[stat]
		if !ok || ch.Current < 1 {
			warns = append(warns, undefinedStat(string(stat)+".modifier", stat))
			continue
		}
		ch.Modifier = ModifierFor(ch.Current)
		c.Characteristics[stat] = ch
	}

	str, okSTR := c.Current(STR)
	con, okCON := c.Current(CON)
	siz, okSIZ := c.Current(SIZ)
	pow, okPOW := c.Current(POW)
	dex, okDEX := c.Current(DEX)

	if okCON && okSIZ {
		c.HitPoints = TrackMax(c.HitPoints, HitPointsMax(con, siz))
	} else {
		warns = append(warns, undefinedStat("hit_points.max", CON, SIZ))
	}

	if okPOW {
		c.MagicPoints = TrackMax(c.MagicPoints, MagicPointsMax(pow))
	} else {
		warns = append(warns, undefinedStat("magic_points.max", POW))
	}

	if okDEX && okSIZ {
		var base Movement
		if species != nil {
			base = species.Movement
		}
		c.Movement = MovementFor(dex, siz, base)
	} else {
		warns = append(warns, undefinedStat("movement", DEX, SIZ))
	}

	if okSTR && okSIZ {
		c.Derived.DamageModifier = DamageModifier(str, siz)
	} else {
		warns = append(warns, undefinedStat("derived.damage_modifier", STR, SIZ))
	}

	if okDEX && okSIZ {
		sr := StrikeRankModifiers(dex, siz)
		c.Derived.DexSRM = sr.Dex
		c.Derived.SizeSRM = sr.Size
		c.Derived.MeleeSRM = sr.Melee
	} else {
		warns = append(warns, undefinedStat("derived.strike_ranks", DEX, SIZ))
	}

	return warns
}
