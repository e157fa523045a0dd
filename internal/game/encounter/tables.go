package encounter

import "github.com/cory-johannsen/hoard/internal/game/table"

// dungeonBand is the list for one range of dungeon levels; MaxLevel 0 means
// the band is open-ended.
type dungeonBand struct {
	MinLevel, MaxLevel int
	Monsters           *table.Table[string]
}

// Dungeon lists are indexed directly by 1d12.
var dungeonBands = []dungeonBand{
	{1, 1, table.Uniform("dungeon level 1",
		"Giant Bee", "Goblin", "Green Slime", "Kobold", "Bandit", "Orc",
		"Fire Beetle", "Racer Snake", "Crab Spider", "Stirge", "Skeleton", "Giant Rat")},
	{2, 2, table.Uniform("dungeon level 2",
		"Oil Beetle", "Carrion Crawler", "Ghoul", "Gnoll", "Gray Ooze", "Hobgoblin",
		"Lizard Man", "Giant Centipede", "Pit Viper", "Black Widow", "Troglodyte", "Zombie")},
	{3, 3, table.Uniform("dungeon level 3",
		"Bugbear", "Doppleganger", "Gargoyle", "Gelatinous Cube", "Harpy", "Crystal Statue",
		"Ochre Jelly", "Shadow", "Tiger Beetle", "Giant Tarantula", "Wererat", "Wight")},
	{4, 5, table.Uniform("dungeon levels 4-5",
		"Blink Dog", "Cockatrice", "Hell Hound", "Medusa", "Minotaur", "Ogre",
		"Owlbear", "Rust Monster", "Giant Scorpion", "Werewolf", "Wraith", "Gray Worm")},
	{6, 7, table.Uniform("dungeon levels 6-7",
		"Basilisk", "Black Pudding", "Chimera", "Hill Giant", "Gorgon", "Hydra",
		"Manticore", "Mummy", "Spectre", "Troll", "Vampire", "Wyvern")},
	{8, 0, table.Uniform("dungeon levels 8+",
		"Black Dragon", "Blue Dragon", "Efreeti", "Frost Giant", "Fire Giant", "Golem",
		"Purple Worm", "Red Dragon", "Roc", "Salamander", "Vampire", "Chimera")},
}

// bell builds a table for a sum of dice whose lowest total is low: the first
// entry is reached by low, each later entry by one more. Rolls below low fall
// into the first entry.
func bell(name string, low int, names ...string) *table.Table[string] {
	entries := make([]table.Entry[string], len(names))
	for i, n := range names {
		entries[i] = table.Row(low+i, n)
	}
	return table.MustNew(name, low+len(names)-1, entries...)
}

// Wilderness lists are indexed by 2d8, so totals 2..16 cover 15 entries.
var wildernessTables = map[Terrain]*table.Table[string]{
	TerrainDesert: bell("wilderness desert/barren", 2,
		"Blue Dragon", "Hell Hound", "Giant Scorpion", "Manticore", "Camel", "Nomad",
		"Gnoll", "Giant Hawk", "Hill Giant", "Ogre", "Orc", "Griffon",
		"Salamander", "Roc", "Mummy"),
	TerrainGrassland: bell("wilderness grassland", 2,
		"Green Dragon", "Blink Dog", "Wild Horse", "Hobgoblin", "Gnoll", "Bandit",
		"Wolf", "Merchant", "Orc", "Bugbear", "Giant Boar", "Lion",
		"Werewolf", "Hill Giant", "Chimera"),
	TerrainInhabited: bell("wilderness inhabited", 2,
		"Doppleganger", "Pilgrim", "Goblin", "Merchant", "Bandit", "Guard",
		"Noble", "Wolf", "Orc", "Wererat", "Thief", "Acolyte",
		"Hobgoblin", "Ogre", "Vampire"),
	TerrainJungle: bell("wilderness jungle", 2,
		"Green Dragon", "Giant Tarantula", "Pit Viper", "Lizard Man", "Giant Centipede", "Giant Beetle",
		"Giant Ant", "Tiger", "Ape", "Stirge", "Goblin", "Bugbear",
		"Troglodyte", "Medusa", "Wyvern"),
	TerrainMountains: bell("wilderness mountains/hills", 2,
		"Red Dragon", "Roc", "Wyvern", "Griffon", "Dwarf", "Ogre",
		"Orc", "Goblin", "Giant Hawk", "Hill Giant", "Troll", "Stone Giant",
		"Manticore", "Gargoyle", "Frost Giant"),
	TerrainOcean: bell("wilderness ocean", 2,
		"Sea Dragon", "Hydra", "Giant Octopus", "Shark", "Merman", "Pirate",
		"Giant Crab", "Sea Serpent", "Merchant", "Giant Squid", "Sea Hag", "Sahuagin",
		"Whale", "Roc", "Storm Giant"),
	TerrainRiver: bell("wilderness river", 2,
		"Black Dragon", "Giant Leech", "Crocodile", "Giant Fish", "Lizard Man", "Merchant",
		"Bandit", "Giant Frog", "Nixie", "Troll", "Pirate", "Water Termite",
		"Giant Crab", "Hydra", "Nymph"),
	TerrainSwamp: bell("wilderness swamp", 2,
		"Black Dragon", "Giant Leech", "Lizard Man", "Troglodyte", "Crocodile", "Giant Frog",
		"Zombie", "Ghoul", "Giant Centipede", "Stirge", "Shadow", "Gray Ooze",
		"Black Pudding", "Hydra", "Troll"),
	TerrainWoods: bell("wilderness woods/forest", 2,
		"Green Dragon", "Unicorn", "Owlbear", "Dryad", "Elf", "Wolf",
		"Bandit", "Orc", "Goblin", "Brown Bear", "Giant Boar", "Wererat",
		"Werewolf", "Treant", "Blink Dog"),
}

// Urban lists are indexed by 2d6, so totals 2..12 cover 11 entries.
var urbanTables = map[TimeOfDay]*table.Table[string]{
	Day: bell("urban day", 2,
		"Doppleganger", "Noble", "Acolyte", "Merchant", "Pilgrim", "Guard",
		"Thief", "Bandit", "Dwarf", "Elf", "Vampire"),
	Night: bell("urban night", 2,
		"Vampire", "Wererat", "Doppleganger", "Thief", "Bandit", "Guard",
		"Giant Rat", "Ghoul", "Shadow", "Wight", "Spectre"),
}
