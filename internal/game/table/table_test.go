package table_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/hoard/internal/game/dice"
	"github.com/cory-johannsen/hoard/internal/game/table"
)

func coinTable() *table.Table[string] {
	return table.Percentile("coins",
		table.Row(30, "copper"),
		table.Row(60, "silver"),
		table.Row(95, "gold"),
		table.Row(100, "platinum"),
	)
}

func TestResolve_FirstThresholdAtOrAboveRoll(t *testing.T) {
	tbl := coinTable()
	cases := map[int]string{1: "copper", 30: "copper", 31: "silver", 60: "silver", 61: "gold", 95: "gold", 96: "platinum", 100: "platinum"}
	for roll, want := range cases {
		got, err := tbl.Resolve(roll)
		require.NoError(t, err, "roll %d", roll)
		assert.Equal(t, want, got, "roll %d", roll)
	}
}

func TestResolve_OutOfRangeIsConfigurationError(t *testing.T) {
	tbl := coinTable()
	for _, roll := range []int{0, -5, 101, 1000} {
		_, err := tbl.Resolve(roll)
		require.Error(t, err)
		assert.ErrorIs(t, err, table.ErrConfiguration)
		assert.Contains(t, err.Error(), `"coins"`)
	}
}

func TestNew_RejectsMalformedTables(t *testing.T) {
	_, err := table.New[string]("empty", 100)
	assert.ErrorIs(t, err, table.ErrConfiguration)

	_, err = table.New("flat", 100, table.Row(50, "a"), table.Row(50, "b"), table.Row(100, "c"))
	assert.ErrorIs(t, err, table.ErrConfiguration)

	_, err = table.New("short", 100, table.Row(50, "a"), table.Row(99, "b"))
	assert.ErrorIs(t, err, table.ErrConfiguration)

	_, err = table.New("zero", 100, table.Row(0, "a"), table.Row(100, "b"))
	assert.ErrorIs(t, err, table.ErrConfiguration)
}

func TestMustNew_PanicsOnMalformedTable(t *testing.T) {
	assert.Panics(t, func() { table.MustNew("bad", 10, table.Row(5, 1)) })
}

func TestResolveFunc_GuardsFinalThreshold(t *testing.T) {
	got, err := table.Resolve(7, []int{5, 10}, []string{"low", "high"})
	require.NoError(t, err)
	assert.Equal(t, "high", got)

	_, err = table.Resolve(11, []int{5, 10}, []string{"low", "high"})
	assert.ErrorIs(t, err, table.ErrConfiguration)

	_, err = table.Resolve(1, []int{5, 10}, []string{"low"})
	assert.ErrorIs(t, err, table.ErrConfiguration)
}

func TestUniform_EqualShares(t *testing.T) {
	tbl := table.Uniform("elements", "air", "earth", "fire", "water")
	assert.Equal(t, 4, tbl.Ceiling())
	assert.Equal(t, []int{1, 2, 3, 4}, tbl.Thresholds())
	assert.Equal(t, []string{"air", "earth", "fire", "water"}, tbl.Values())
}

func TestRoll_ReturnsIndexAndValue(t *testing.T) {
	d := dice.NewLoggedRoller(dice.NewScriptedSource(61), zap.NewNop())
	v, idx, err := coinTable().Roll(d)
	require.NoError(t, err)
	assert.Equal(t, "gold", v)
	assert.Equal(t, 2, idx)
}

func TestRoll_SingleEntryConsumesNoRandomness(t *testing.T) {
	src := dice.NewScriptedSource()
	d := dice.NewLoggedRoller(src, zap.NewNop())
	v, err := table.Uniform("only", "x").Pick(d)
	require.NoError(t, err)
	assert.Equal(t, "x", v)
}

func TestProperty_EveryRollInRangeMatchesExactlyOneEntry(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 20).Draw(rt, "n")
		widths := rapid.SliceOfN(rapid.IntRange(1, 10), n, n).Draw(rt, "widths")
		entries := make([]table.Entry[int], n)
		max := 0
		for i, w := range widths {
			max += w
			entries[i] = table.Row(max, i)
		}
		tbl, err := table.New("generated", max, entries...)
		require.NoError(rt, err)

		roll := rapid.IntRange(1, max).Draw(rt, "roll")
		idx, err := tbl.Index(roll)
		require.NoError(rt, err)

		lower := 0
		if idx > 0 {
			lower = entries[idx-1].Max
		}
		assert.Greater(rt, roll, lower)
		assert.LessOrEqual(rt, roll, entries[idx].Max)
	})
}
