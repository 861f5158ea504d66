package hitloc_test

import (
	"testing"

	"github.com/cory-johannsen/rq3/internal/game/character"
	"github.com/cory-johannsen/rq3/internal/game/hitloc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type testingT interface {
	require.TestingT
	Helper()
}

func wounded(t testingT, maxHP int) *character.Character {
	t.Helper()
	c, err := character.New("Target")
	require.NoError(t, err)
	c.HitPoints = character.Pool{Value: maxHP, Max: maxHP}
	require.Empty(t, hitloc.Recompute(c))
	return c
}

func TestDistributeHP_Buckets(t *testing.T) {
	d := hitloc.DistributeHP(12)
	assert.Equal(t, 4, d[character.Head])
	assert.Equal(t, 3, d[character.LeftArm])
	assert.Equal(t, 5, d[character.Chest])
	assert.Equal(t, 4, d[character.RightLeg])

	assert.Equal(t, 2, hitloc.DistributeHP(1)[character.Chest])
	assert.Equal(t, 9, hitloc.DistributeHP(21)[character.Chest])
	assert.Equal(t, hitloc.DistributeHP(21), hitloc.DistributeHP(40), "22+ uses the top bucket")
}

func TestRecompute_ClampsDamageDown(t *testing.T) {
	c := wounded(t, 18)
	hl := c.HitLocations[character.Chest]
	hl.Damage = 8
	c.HitLocations[character.Chest] = hl

	c.HitPoints.Max = 10
	assert.Empty(t, hitloc.Recompute(c))
	assert.Equal(t, 5, c.HitLocations[character.Chest].MaxHitPoints)
	assert.Equal(t, 5, c.HitLocations[character.Chest].Damage)

	c.HitPoints.Max = 18
	hitloc.Recompute(c)
	assert.Equal(t, 5, c.HitLocations[character.Chest].Damage, "clamp never raises damage")
}

func TestRecompute_FailsClosed(t *testing.T) {
	c, err := character.New("Empty")
	require.NoError(t, err)
	warns := hitloc.Recompute(c)
	require.Len(t, warns, 1)
	assert.Equal(t, "hit_locations", warns[0].Field)

	c.HitPoints.Max = 12
	delete(c.HitLocations, character.Head)
	warns = hitloc.Recompute(c)
	require.Len(t, warns, 1)
	assert.Equal(t, "hit_locations.head", warns[0].Field)
	assert.Equal(t, 5, c.HitLocations[character.Chest].MaxHitPoints)
}

func TestApplyDamage_SubtractsArmor(t *testing.T) {
	c := wounded(t, 12)
	hl := c.HitLocations[character.LeftLeg]
	hl.Armor = 3
	c.HitLocations[character.LeftLeg] = hl

	left, err := hitloc.ApplyDamage(c, character.LeftLeg, 5, false)
	require.NoError(t, err)
	assert.Equal(t, 2, left)
	assert.Equal(t, 2, c.HitLocations[character.LeftLeg].Damage)
	assert.Equal(t, 10, c.HitPoints.Value)

	left, err = hitloc.ApplyDamage(c, character.LeftLeg, 2, false)
	require.NoError(t, err)
	assert.Equal(t, 2, left, "armor absorbs the whole blow")
	assert.Equal(t, 10, c.HitPoints.Value)
}

func TestApplyDamage_IgnoreArmorAndCaps(t *testing.T) {
	c := wounded(t, 12)
	hl := c.HitLocations[character.Head]
	hl.Armor = 8
	c.HitLocations[character.Head] = hl

	left, err := hitloc.ApplyDamage(c, character.Head, 30, true)
	require.NoError(t, err)
	assert.Zero(t, left)
	assert.Equal(t, 4, c.HitLocations[character.Head].Damage, "location damage capped at its max")
	assert.Zero(t, c.HitPoints.Value, "general pool floored at 0")
}

func TestApplyDamage_UnknownLocation(t *testing.T) {
	c := wounded(t, 12)
	before := c.Clone()

	_, err := hitloc.ApplyDamage(c, "tail", 5, false)
	assert.ErrorIs(t, err, hitloc.ErrUnknownLocation)
	_, err = hitloc.ApplyHealing(c, "tail", 5)
	assert.ErrorIs(t, err, hitloc.ErrUnknownLocation)
	assert.ErrorIs(t, hitloc.ResetDamage(c, "tail"), hitloc.ErrUnknownLocation)
	assert.Equal(t, before, c)
}

func TestApplyHealing(t *testing.T) {
	c := wounded(t, 12)
	_, err := hitloc.ApplyDamage(c, character.Chest, 4, true)
	require.NoError(t, err)

	left, err := hitloc.ApplyHealing(c, character.Chest, 10)
	require.NoError(t, err)
	assert.Equal(t, 5, left)
	assert.Zero(t, c.HitLocations[character.Chest].Damage)
	assert.Equal(t, 12, c.HitPoints.Value, "capped at max")
}

func TestResetDamage(t *testing.T) {
	c := wounded(t, 12)
	_, err := hitloc.ApplyDamage(c, character.RightArm, 2, true)
	require.NoError(t, err)
	require.NoError(t, hitloc.ResetDamage(c, character.RightArm))
	assert.Zero(t, c.HitLocations[character.RightArm].Damage)
}

func TestEffectiveTotalHP(t *testing.T) {
	c := wounded(t, 12)
	c.GeneralDamage = 3
	_, err := hitloc.ApplyDamage(c, character.Chest, 4, true)
	require.NoError(t, err)
	assert.Equal(t, 5, hitloc.EffectiveTotalHP(c))

	c.GeneralDamage = 40
	assert.Zero(t, hitloc.EffectiveTotalHP(c))
}

func TestStatusOf(t *testing.T) {
	mk := func(maxHP, dmg int) character.HitLocation {
		return character.HitLocation{MaxHitPoints: maxHP, Damage: dmg}
	}
	assert.Equal(t, hitloc.Healthy, hitloc.StatusOf(mk(4, 0)))
	assert.Equal(t, hitloc.Injured, hitloc.StatusOf(mk(4, 1)))
	assert.Equal(t, hitloc.Wounded, hitloc.StatusOf(mk(4, 2)))
	assert.Equal(t, hitloc.Critical, hitloc.StatusOf(mk(4, 3)))
	assert.Equal(t, hitloc.Critical, hitloc.StatusOf(mk(4, 4)))
	assert.Equal(t, hitloc.Healthy, hitloc.StatusOf(mk(0, 0)))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Left Arm", hitloc.DisplayName(character.LeftArm))
	assert.Equal(t, "tail", hitloc.DisplayName("tail"))
}

func TestProperty_DistributionMonotonic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.IntRange(1, 40).Draw(rt, "a")
		b := rapid.IntRange(a, 40).Draw(rt, "b")
		da, db := hitloc.DistributeHP(a), hitloc.DistributeHP(b)
		for _, loc := range character.Locations {
			assert.LessOrEqual(rt, da[loc], db[loc], "location %s", loc)
		}
	})
}

func TestProperty_DamageNeverExceedsMax(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := wounded(rt, rapid.IntRange(1, 30).Draw(rt, "maxHP"))
		ops := rapid.IntRange(1, 20).Draw(rt, "ops")
		for i := 0; i < ops; i++ {
			loc := rapid.SampledFrom(character.Locations).Draw(rt, "loc")
			amt := rapid.IntRange(-5, 20).Draw(rt, "amount")
			switch rapid.IntRange(0, 2).Draw(rt, "op") {
			case 0:
				_, err := hitloc.ApplyDamage(c, loc, amt, rapid.Bool().Draw(rt, "ignore"))
				require.NoError(rt, err)
			case 1:
				_, err := hitloc.ApplyHealing(c, loc, amt)
				require.NoError(rt, err)
			case 2:
				c.HitPoints.Max = rapid.IntRange(1, 30).Draw(rt, "newMax")
				hitloc.Recompute(c)
			}
			for _, l := range character.Locations {
				hl := c.HitLocations[l]
				assert.GreaterOrEqual(rt, hl.Damage, 0)
				assert.LessOrEqual(rt, hl.Damage, hl.MaxHitPoints)
			}
		}
	})
}
