package dice_test

import (
	"fmt"
	"testing"

	"github.com/cory-johannsen/rq3/internal/game/dice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
	"pgregory.net/rapid"
)

// fixedSource replays a scripted sequence of Intn results.
type fixedSource struct {
	vals []int
	i    int
}

func (f *fixedSource) Intn(n int) int {
	v := f.vals[f.i%len(f.vals)]
	f.i++
	return v % n
}

func TestRollResult_Total(t *testing.T) {
	r := dice.RollResult{Expression: "1d8+1-1d4", Dice: []int{6, -3}, Modifier: 1}
	assert.Equal(t, 4, r.Total())
}

func TestRollResult_String(t *testing.T) {
	r := dice.RollResult{Expression: "1d8+1", Dice: []int{4}, Modifier: 1}
	assert.Equal(t, "1d8+1 → [4] +1 = 5", r.String())
	assert.Panics(t, func() { _ = dice.RollResult{}.String() })
}

func TestResolve(t *testing.T) {
	cases := []struct {
		name           string
		target, roll   int
		succ, crit, fb bool
	}{
		{"roll equal to target succeeds", 50, 50, true, false, false},
		{"roll above target fails", 50, 51, false, false, false},
		{"critical at a twentieth", 60, 3, true, true, false},
		{"just past critical", 60, 4, true, false, false},
		{"roll 1 against 100 is critical", 100, 1, true, true, false},
		{"high roll fumbles", 50, 96, false, false, true},
		{"fumble independent of success", 100, 99, true, false, true},
		{"target below twenty has no critical", 19, 1, true, false, false},
		{"negative target never succeeds", -10, 1, false, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := dice.Resolve(tc.target, tc.roll)
			require.NoError(t, err)
			assert.Equal(t, tc.succ, out.Success)
			assert.Equal(t, tc.crit, out.Critical)
			assert.Equal(t, tc.fb, out.Fumble)
		})
	}
}

func TestResolve_RejectsOutOfRange(t *testing.T) {
	for _, roll := range []int{0, 101, -4} {
		_, err := dice.Resolve(50, roll)
		assert.ErrorIs(t, err, dice.ErrInvalidRoll, "roll=%d", roll)
	}
}

func TestParse(t *testing.T) {
	e, err := dice.Parse("1d8+1-1d4")
	require.NoError(t, err)
	assert.Equal(t, []dice.Term{{Count: 1, Sides: 8}, {Count: 1, Sides: 4, Negative: true}}, e.Terms)
	assert.Equal(t, 1, e.Modifier)

	e, err = dice.Parse("d20")
	require.NoError(t, err)
	assert.Equal(t, []dice.Term{{Count: 1, Sides: 20}}, e.Terms)

	e, err = dice.Parse("+0")
	require.NoError(t, err)
	assert.Empty(t, e.Terms)
	assert.Zero(t, e.Modifier)

	e, err = dice.Parse("2D6 - 1")
	require.NoError(t, err)
	assert.Equal(t, 2, e.Terms[0].Count)
	assert.Equal(t, -1, e.Modifier)
}

func TestParse_Errors(t *testing.T) {
	for _, expr := range []string{"", "1d", "0d6", "1d1", "xd6", "1d8++1", "1d8+"} {
		_, err := dice.Parse(expr)
		assert.Error(t, err, "expr=%q", expr)
	}
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "1d8+1-1d4", dice.Join("1d8+1", "-1d4"))
	assert.Equal(t, "1d6+1d4", dice.Join("1d6", "1d4"))
	assert.Equal(t, "1d6+0", dice.Join("1d6", "", "+0"))
}

func TestRoll_SubtractsNegativeTerms(t *testing.T) {
	src := &fixedSource{vals: []int{5, 1}}
	r, err := dice.RollExpr("1d8+1-1d4", src)
	require.NoError(t, err)
	assert.Equal(t, []int{6, -2}, r.Dice)
	assert.Equal(t, 5, r.Total())
}

func TestSeededSource_Deterministic(t *testing.T) {
	a, b := dice.NewSeededSource(42), dice.NewSeededSource(42)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Intn(100), b.Intn(100))
	}
	assert.Panics(t, func() { a.Intn(0) })
}

func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 200; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
	assert.Panics(t, func() { src.Intn(0) })
}

func TestRoller_D100LogsOutcome(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := dice.NewLoggedRoller(&fixedSource{vals: []int{49}}, zap.New(core))

	out := r.D100(50)
	assert.Equal(t, 50, out.Roll)
	assert.True(t, out.Success)

	entries := logs.FilterMessage("d100 roll").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(50), entries[0].ContextMap()["roll"])
}

func TestRoller_RollExpr(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := dice.NewLoggedRoller(&fixedSource{vals: []int{2}}, zap.New(core))

	res, err := r.RollExpr("2d6+3")
	require.NoError(t, err)
	assert.Equal(t, 9, res.Total())
	assert.Equal(t, 1, logs.FilterMessage("dice roll").Len())

	_, err = r.RollExpr("nope")
	assert.Error(t, err)
}

func TestProperty_RollWithinBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(1, 5).Draw(rt, "count")
		sides := rapid.SampledFrom([]int{2, 4, 6, 8, 10, 12, 20}).Draw(rt, "sides")
		mod := rapid.IntRange(-10, 10).Draw(rt, "mod")
		expr := fmt.Sprintf("%dd%d%+d", count, sides, mod)

		r, err := dice.RollExpr(expr, dice.NewSeededSource(rapid.Int64().Draw(rt, "seed")))
		require.NoError(rt, err)
		assert.Len(rt, r.Dice, count)
		assert.GreaterOrEqual(rt, r.Total(), count+mod)
		assert.LessOrEqual(rt, r.Total(), count*sides+mod)
	})
}

func TestProperty_CriticalImpliesSuccess(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		target := rapid.IntRange(-50, 200).Draw(rt, "target")
		roll := rapid.IntRange(1, 100).Draw(rt, "roll")
		out, err := dice.Resolve(target, roll)
		require.NoError(rt, err)
		if out.Critical {
			assert.True(rt, out.Success)
		}
		assert.Equal(rt, roll >= 96, out.Fumble)
	})
}
