package treasure_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/hoard/internal/game/dice"
	"github.com/cory-johannsen/hoard/internal/game/table"
	"github.com/cory-johannsen/hoard/internal/game/treasure"
)

func TestExpandGems_PromotesTopRungToJewel(t *testing.T) {
	src := dice.NewScriptedSource(
		100, 6, 6, // Gem quality, stepped up to 5000: promoted, no amount or type roll
		50, 3, 4, 4, 1, // Fancy at base value, four Agates
	)
	gems, promoted, err := newGenerator(src).ExpandGems(2)
	require.NoError(t, err)
	assert.Equal(t, 1, promoted)
	assert.Equal(t, []treasure.Gem{{Type: "Agate", Quality: "Fancy", Value: 100, Amount: 4}}, gems)
	assertExhausted(t, src)
}

func TestExpandGems_ValueAdjustments(t *testing.T) {
	cases := []struct {
		name    string
		faces   []int
		quality string
		value   int
	}{
		{"step down", []int{10, 1, 1}, "Ornamental", 5},
		{"half", []int{30, 1, 2}, "Semiprecious", 25},
		{"three quarters", []int{50, 2, 2}, "Fancy", 75},
		{"base", []int{80, 3, 6}, "Precious", 500},
		{"half again", []int{80, 5, 5}, "Precious", 750},
		{"double", []int{100, 5, 6}, "Gem", 2000},
		{"step up", []int{80, 6, 6}, "Precious", 1000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := dice.NewScriptedSource(append(tc.faces, 1, 100)...)
			gems, promoted, err := newGenerator(src).ExpandGems(1)
			require.NoError(t, err)
			assert.Zero(t, promoted)
			require.Len(t, gems, 1)
			assert.Equal(t, tc.quality, gems[0].Quality)
			assert.Equal(t, tc.value, gems[0].Value)
			assert.Equal(t, "Turquoise", gems[0].Type)
			assertExhausted(t, src)
		})
	}
}

func TestExpandGems_CountsBalance(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64Min(1).Draw(rt, "seed")
		n := rapid.IntRange(0, 50).Draw(rt, "n")
		gems, promoted, err := newGenerator(dice.NewSeededSource(seed)).ExpandGems(n)
		require.NoError(rt, err)
		assert.Equal(rt, n, len(gems)+promoted)
		for _, g := range gems {
			assert.Less(rt, g.Value, treasure.JewelThreshold)
			assert.Positive(rt, g.Amount)
		}
	})
}

func TestExpandGems_NegativeCount(t *testing.T) {
	_, _, err := newGenerator(dice.NewScriptedSource()).ExpandGems(-1)
	assert.ErrorIs(t, err, table.ErrConfiguration)
}

func TestAppraiseGems_ReturnsNewLootWithPromotedJewels(t *testing.T) {
	src := dice.NewScriptedSource(100, 6, 6, 50, 3, 4, 4, 1)
	in := treasure.Loot{Gold: 10, Gems: 2, Jewels: 1}
	gems, out, err := newGenerator(src).AppraiseGems(in)
	require.NoError(t, err)
	assert.Len(t, gems, 1)
	assert.Equal(t, 2, out.Jewels)
	assert.Equal(t, 10, out.Gold)
	assert.Equal(t, 1, in.Jewels, "input loot must not change")
}

func TestAppraiseJewels(t *testing.T) {
	src := dice.NewScriptedSource(3, 5, 1)
	jewels, err := newGenerator(src).AppraiseJewels(treasure.Loot{Jewels: 1})
	require.NoError(t, err)
	assert.Equal(t, []treasure.Jewel{{Type: "Anklet", Value: 800}}, jewels)
	assertExhausted(t, src)
}

func TestExpandJewels_ValueRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64Min(1).Draw(rt, "seed")
		jewels, err := newGenerator(dice.NewSeededSource(seed)).ExpandJewels(5)
		require.NoError(rt, err)
		require.Len(rt, jewels, 5)
		for _, j := range jewels {
			assert.GreaterOrEqual(rt, j.Value, 200)
			assert.LessOrEqual(rt, j.Value, 1600)
			assert.Zero(rt, j.Value%100)
		}
	})
}
