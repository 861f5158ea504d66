package skill_test

import (
	"testing"

	"github.com/cory-johannsen/rq3/internal/game/character"
	"github.com/cory-johannsen/rq3/internal/game/rules"
	"github.com/cory-johannsen/rq3/internal/game/skill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func setup(t *testing.T) (*character.Character, *rules.Ruleset) {
	t.Helper()
	rs, err := rules.Default()
	require.NoError(t, err)
	c, err := character.New("Skilled")
	require.NoError(t, err)
	return c, rs
}

func set(c *character.Character, s character.Stat, v int) {
	c.Characteristics[s] = character.Characteristic{Base: v, Current: v}
}

func find(t *testing.T, vals []skill.Value, id string) skill.Value {
	t.Helper()
	for _, v := range vals {
		if v.ID == id {
			return v
		}
	}
	t.Fatalf("skill %q not in table", id)
	return skill.Value{}
}

func TestInfluences(t *testing.T) {
	assert.Equal(t, 4, skill.Primary(14))
	assert.Equal(t, -3, skill.Primary(7))

	assert.Equal(t, 0, skill.Secondary(10))
	assert.Equal(t, 2, skill.Secondary(14))
	assert.Equal(t, 2, skill.Secondary(15))
	assert.Equal(t, -2, skill.Secondary(7), "floors toward negative infinity")
	assert.Equal(t, 10, skill.Secondary(40), "capped at 30 before halving")
	assert.Equal(t, -5, skill.Secondary(1))

	assert.Equal(t, -2, skill.Negative(12))
}

func TestCategoryBonus(t *testing.T) {
	c, _ := setup(t)
	set(c, character.DEX, 16)
	set(c, character.STR, 14)
	set(c, character.SIZ, 12)
	set(c, character.INT, 13)

	assert.Equal(t, 6+2-2, skill.CategoryBonus("agility", c.Characteristics))
	assert.Equal(t, 3, skill.CategoryBonus("knowledge", c.Characteristics))
	assert.Equal(t, 3+6+2, skill.CategoryBonus("manipulation", c.Characteristics))
	assert.Equal(t, 6-2+0, skill.CategoryBonus("stealth", c.Characteristics))
	assert.Zero(t, skill.CategoryBonus("necromancy", c.Characteristics))
}

func TestCategoryBonus_MissingCharacteristicCountsAsTen(t *testing.T) {
	c, _ := setup(t)
	delete(c.Characteristics, character.INT)
	assert.Zero(t, skill.CategoryBonus("knowledge", c.Characteristics))
}

func TestTable_NoSpeciesUntrainedIsZero(t *testing.T) {
	c, rs := setup(t)
	set(c, character.DEX, 18)

	vals, warns := skill.Table(c, nil, rs)
	assert.Empty(t, warns)
	climb := find(t, vals, "climb")
	assert.Zero(t, climb.Base)
	assert.Equal(t, 8, climb.Bonus)
	assert.Zero(t, climb.Total, "no bonus leaks onto untrained skills")
}

func TestTable_CharacteristicMultiple(t *testing.T) {
	c, rs := setup(t)
	set(c, character.DEX, 16)
	human, _ := rs.Species("Human")

	for _, sp := range []*character.Species{nil, human} {
		vals, _ := skill.Table(c, sp, rs)
		dodge := find(t, vals, "dodge")
		assert.Equal(t, 32, dodge.Base, "DEX×2 regardless of species")
		assert.Equal(t, 32+6, dodge.Total)
	}
}

func TestTable_SpeciesBaseAndFallback(t *testing.T) {
	c, rs := setup(t)
	elf, _ := rs.Species("Elf")
	human, _ := rs.Species("Human")

	vals, _ := skill.Table(c, elf, rs)
	assert.Equal(t, 50, find(t, vals, "climb").Base)
	assert.Equal(t, 5, find(t, vals, "boat").Base, "not granted by species: base chance")
	assert.Equal(t, 5, find(t, vals, "mineralLore").Base, "zero grant falls back to base chance")

	vals, _ = skill.Table(c, human, rs)
	rw := find(t, vals, "readWriteLanguages")
	assert.Zero(t, rw.Base)
	assert.Zero(t, rw.Total)
	assert.Equal(t, 5, find(t, vals, "fastTalk").Base)
}

func TestTable_InvestedAndLegacyItem(t *testing.T) {
	c, rs := setup(t)
	set(c, character.INT, 14)
	c.Skills["listen"] = character.InvestedSkill{Value: 20}
	legacy := character.NewItem("Search", character.KindSkill)
	legacy.SkillValue = 12
	c.Inventory = append(c.Inventory, legacy)

	vals, _ := skill.Table(c, nil, rs)
	listen := find(t, vals, "listen")
	assert.Equal(t, 20, listen.Invested)
	assert.Equal(t, 20+4, listen.Total)

	search := find(t, vals, "search")
	assert.Equal(t, 12, search.Invested)
	assert.Equal(t, 16, search.Total)
}

func TestTable_TotalFlooredAtZero(t *testing.T) {
	c, rs := setup(t)
	set(c, character.DEX, 3)
	set(c, character.SIZ, 20)
	c.Skills["hide"] = character.InvestedSkill{Value: 2}

	vals, _ := skill.Table(c, nil, rs)
	assert.Zero(t, find(t, vals, "hide").Total)
}

func TestTable_CustomSkills(t *testing.T) {
	c, rs := setup(t)
	set(c, character.DEX, 14)
	c.CustomSkills = []character.CustomSkill{
		{ID: "c1", Name: "Pick Pockets", Category: "stealth", BaseValue: 5, InvestedValue: 10},
		{ID: "c2", Name: "Juggle", Category: "circus", BaseValue: 0, InvestedValue: 0},
	}
	vals, _ := skill.Table(c, nil, rs)

	pp := find(t, vals, "c1")
	assert.True(t, pp.Custom)
	assert.Equal(t, 4, pp.Bonus)
	assert.Equal(t, 19, pp.Total)
	assert.Zero(t, find(t, vals, "c2").Total)
	assert.Len(t, vals, 34)
}

func TestTable_WarnsWhenMultipleCharacteristicMissing(t *testing.T) {
	c, rs := setup(t)
	delete(c.Characteristics, character.DEX)
	_, warns := skill.Table(c, nil, rs)
	require.Len(t, warns, 1)
	assert.Equal(t, "skills.dodge.base", warns[0].Field)
}

func TestLookup_PrefersCustom(t *testing.T) {
	c, rs := setup(t)
	c.CustomSkills = []character.CustomSkill{{ID: "x", Name: "Climb", Category: "agility"}}

	ref, ok := skill.Lookup(c, rs, "climb")
	require.True(t, ok)
	assert.Equal(t, skill.Custom, ref.Kind)

	ref, ok = skill.Lookup(c, rs, "Fast Talk")
	require.True(t, ok)
	assert.Equal(t, skill.Standard, ref.Kind)
	assert.Equal(t, "fastTalk", ref.Def.ID)

	ref, ok = skill.Lookup(c, rs, "readWriteLanguages")
	require.True(t, ok)
	assert.Equal(t, "Read/Write Languages", ref.Def.Name)

	_, ok = skill.Lookup(c, rs, "Basket Weaving")
	assert.False(t, ok)
}

func TestPenalized(t *testing.T) {
	enc := character.Encumbrance{Total: 7.5, ArmorAndWeapons: 25}
	assert.Equal(t, 23, skill.Penalized("Dodge", 30, enc))
	assert.Equal(t, 0, skill.Penalized("sneak", 20, enc))
	assert.Equal(t, 40, skill.Penalized("Climb", 40, enc))

	assert.Equal(t, 40, skill.Penalized("Dodge (Acrobatic)", 50, character.Encumbrance{Total: 10}))
	assert.Equal(t, 5, skill.Penalized("Silent Sneak", 30, enc))
	assert.Equal(t, 13, skill.Penalized("Shield DODGE", 20, character.Encumbrance{Total: 7}))
}

func TestProperty_UntrainedAlwaysZero(t *testing.T) {
	rs, err := rules.Default()
	require.NoError(t, err)
	rapid.Check(t, func(rt *rapid.T) {
		c, err := character.New("Prop")
		require.NoError(rt, err)
		for _, s := range character.Stats {
			v := rapid.IntRange(1, 25).Draw(rt, string(s))
			c.Characteristics[s] = character.Characteristic{Base: v, Current: v}
		}
		vals, _ := skill.Table(c, nil, rs)
		for _, v := range vals {
			if v.ID == "dodge" {
				continue
			}
			assert.Zero(rt, v.Total, "skill %s", v.ID)
		}
	})
}

func TestProperty_SecondaryBounded(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		v := rapid.IntRange(-50, 100).Draw(rt, "v")
		s := skill.Secondary(v)
		assert.GreaterOrEqual(rt, s, -10)
		assert.LessOrEqual(rt, s, 10)
	})
}
