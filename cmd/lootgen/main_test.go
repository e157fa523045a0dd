package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRun_Types(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"types"}, &out))

	var types []string
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &types))
	assert.Len(t, types, 30)
}

func TestRun_LootIsReproducibleWithSeed(t *testing.T) {
	args := []string{"loot", "-seed", "99", "-type", "A", "-count", "3"}
	var a, b bytes.Buffer
	require.NoError(t, run(context.Background(), args, &a))
	require.NoError(t, run(context.Background(), args, &b))
	assert.Equal(t, a.String(), b.String())

	var hoards []map[string]any
	require.NoError(t, yaml.Unmarshal(a.Bytes(), &hoards))
	require.Len(t, hoards, 3)
	assert.Equal(t, "A", hoards[0]["type"])
}

func TestRun_Gems(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"gems", "-seed", "3", "-gems", "4", "-jewels", "2"}, &out))

	var res struct {
		Gems   []map[string]any `yaml:"gems"`
		Jewels []map[string]any `yaml:"jewels"`
	}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &res))
	assert.Equal(t, 6, len(res.Gems)+len(res.Jewels))
	assert.GreaterOrEqual(t, len(res.Jewels), 2)
}

func TestRun_Encounter(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), []string{
		"encounter", "-seed", "5", "-env", "wilderness", "-terrain", "swamp",
		"-checks", "12", "-treasure", "-monsters", "../../content/monsters.yaml",
	}, &out)
	require.NoError(t, err)

	var results []map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &results))
	require.Len(t, results, 12)
	for _, r := range results {
		assert.NotEmpty(t, r["result"])
	}
}

func TestRun_Errors(t *testing.T) {
	cases := [][]string{
		nil,
		{"conjure"},
		{"loot"},
		{"loot", "-type", "Z", "-seed", "1"},
		{"loot", "-type", "A", "-count", "0"},
		{"encounter", "-env", "space"},
		{"encounter", "-env", "wilderness", "-terrain", "tundra"},
	}
	for _, args := range cases {
		var out bytes.Buffer
		assert.Error(t, run(context.Background(), args, &out), "%v", args)
	}
}
