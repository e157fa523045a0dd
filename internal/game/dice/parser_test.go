package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/hoard/internal/game/dice"
)

func TestParse_Forms(t *testing.T) {
	cases := []struct {
		in   string
		want dice.Expression
	}{
		{"d20", dice.Expression{Raw: "d20", Count: 1, Sides: 20, Multiplier: 1}},
		{"3d8", dice.Expression{Raw: "3d8", Count: 3, Sides: 8, Multiplier: 1}},
		{"2d6+3", dice.Expression{Raw: "2d6+3", Count: 2, Sides: 6, Modifier: 3, Multiplier: 1}},
		{"4d8-2", dice.Expression{Raw: "4d8-2", Count: 4, Sides: 8, Modifier: -2, Multiplier: 1}},
		{" 2D8 X 100 ", dice.Expression{Raw: " 2D8 X 100 ", Count: 2, Sides: 8, Multiplier: 100}},
		{"1d6*1000", dice.Expression{Raw: "1d6*1000", Count: 1, Sides: 6, Multiplier: 1000}},
		{"2d8x100", dice.Expression{Raw: "2d8x100", Count: 2, Sides: 8, Multiplier: 100}},
		{"1d4+1*10", dice.Expression{Raw: "1d4+1*10", Count: 1, Sides: 4, Modifier: 1, Multiplier: 10}},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := dice.Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, in := range []string{"", "6", "0d6", "2d1", "2dx", "1d6*0", "1d6*", "4d6kh3", "1d6+q"} {
		_, err := dice.Parse(in)
		assert.Error(t, err, "expression %q must be rejected", in)
	}
}

func TestRoll_RejectsUnparsedExpression(t *testing.T) {
	_, err := dice.Roll(dice.Expression{Raw: "0d6", Sides: 6, Multiplier: 1}, dice.NewScriptedSource())
	assert.Error(t, err)
}

func TestProperty_Roll_TotalWithinBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(1, 10).Draw(rt, "count")
		sides := rapid.IntRange(2, 100).Draw(rt, "sides")
		mult := rapid.IntRange(1, 1000).Draw(rt, "mult")
		expr := dice.Expression{Raw: "NdS*M", Count: count, Sides: sides, Multiplier: mult}

		res, err := dice.Roll(expr, dice.NewSeededSource(rapid.Uint64().Draw(rt, "seed")))
		require.NoError(rt, err)
		assert.Len(rt, res.Dice, count)
		assert.GreaterOrEqual(rt, res.Total(), count*mult)
		assert.LessOrEqual(rt, res.Total(), count*sides*mult)
	})
}

func TestRoller_RollExpr_CachesParsedExpression(t *testing.T) {
	src := dice.NewScriptedSource(3, 5)
	r := dice.NewLoggedRoller(src, zap.NewNop())

	first, err := r.RollExpr("1d6*100")
	require.NoError(t, err)
	second, err := r.RollExpr("1d6*100")
	require.NoError(t, err)

	assert.Equal(t, 300, first.Total())
	assert.Equal(t, 500, second.Total())
}

func TestRoller_RollExpr_PropagatesParseError(t *testing.T) {
	r := dice.NewLoggedRoller(dice.NewScriptedSource(), zap.NewNop())
	_, err := r.RollExpr("bogus")
	assert.Error(t, err)
}

func TestRoller_Float64_DelegatesToSource(t *testing.T) {
	r := dice.NewLoggedRoller(dice.NewScriptedSource().WithFloats(0.5), zap.NewNop())
	assert.Equal(t, 0.5, r.Float64())
}
