package treasure_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/hoard/internal/game/treasure"
)

func sampleLoot() treasure.Loot {
	return treasure.Loot{
		Gold: 120, Gems: 3, Jewels: 1,
		MagicItems: []treasure.Item{
			treasure.Weapon{Name: "Dagger", Type: treasure.Melee, Bonus: "+1"},
			treasure.Armor{Name: "Shield", Special: treasure.SpecialFalseArmor},
			treasure.Potion{Name: "Healing"},
			treasure.Scroll{Name: "Map to 2 Magic Items"},
			treasure.Wand{Name: "Wand of Cold"},
			treasure.Misc{Effect: "Luck", Column: 'A', Form: "Amulet"},
			treasure.Rare{Name: "Flying Carpet"},
		},
	}
}

func TestLoot_JSONKeepsItemVariants(t *testing.T) {
	in := sampleLoot()
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"misc","misc":{"effect":"Luck","column":"A","form":"Amulet"}`)

	var out treasure.Loot
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestLoot_JSONRejectsMismatchedEnvelope(t *testing.T) {
	var out treasure.Loot
	err := json.Unmarshal([]byte(`{"magicItems":[{"kind":"wand","potion":{"name":"Healing"}}]}`), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"wand"`)
}

func TestLoot_YAMLUsesEnvelopes(t *testing.T) {
	data, err := yaml.Marshal(sampleLoot())
	require.NoError(t, err)
	assert.Contains(t, string(data), "kind: weapon")
	assert.Contains(t, string(data), "gold: 120")
}

func TestLoot_Empty(t *testing.T) {
	assert.True(t, treasure.Loot{}.Empty())
	assert.False(t, treasure.Loot{Jewels: 1}.Empty())
	assert.False(t, treasure.Loot{MagicItems: []treasure.Item{treasure.Potion{Name: "ESP"}}}.Empty())
}

func TestItem_Labels(t *testing.T) {
	assert.Equal(t, "Dagger +1", treasure.Weapon{Name: "Dagger", Bonus: "+1"}.Label())
	assert.Equal(t, "Plate Mail -2 (Cursed)", treasure.Armor{Name: "Plate Mail", Bonus: "-2", Special: treasure.SpecialCursed}.Label())
	assert.Equal(t, "Potion of Healing", treasure.Potion{Name: "Healing"}.Label())
}
