package treasure

import (
	"fmt"

	"github.com/cory-johannsen/hoard/internal/game/table"
)

var categoryTables = map[Column]*table.Table[Kind]{
	ColumnAny: table.Percentile("magic item category (any)",
		table.Row(25, KindWeapon),
		table.Row(35, KindArmor),
		table.Row(55, KindPotion),
		table.Row(85, KindScroll),
		table.Row(90, KindWand),
		table.Row(99, KindMisc),
		table.Row(100, KindRare),
	),
	ColumnWeaponArmor: table.Percentile("magic item category (weapon or armor)",
		table.Row(70, KindWeapon),
		table.Row(100, KindArmor),
	),
	ColumnNoWeapon: table.Percentile("magic item category (no weapon)",
		table.Row(12, KindArmor),
		table.Row(40, KindPotion),
		table.Row(79, KindScroll),
		table.Row(86, KindWand),
		table.Row(99, KindMisc),
		table.Row(100, KindRare),
	),
}

// MagicItem rolls a category on col's table and generates an item of it.
//
// Postcondition: the returned Item is never nil on a nil error.
func (g *Generator) MagicItem(col Column) (Item, error) {
	cat, ok := categoryTables[col]
	if !ok {
		return nil, table.Configf("unknown magic item column %s", col)
	}
	kind, err := cat.Pick(g.dice)
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindWeapon:
		return g.Weapon()
	case KindArmor:
		return g.Armor()
	case KindPotion:
		return g.Potion()
	case KindScroll:
		return g.Scroll()
	case KindWand:
		return g.Wand()
	case KindMisc:
		return g.Misc()
	case KindRare:
		return g.Rare()
	}
	return nil, table.Configf("magic item category %q has no generator", kind)
}

var potionTable = table.Percentile("potion",
	table.Row(3, "Clairaudience"),
	table.Row(6, "Clairvoyance"),
	table.Row(9, "Control Animal"),
	table.Row(10, "Control Dragon"),
	table.Row(13, "Control Giant"),
	table.Row(16, "Control Human"),
	table.Row(19, "Control Plant"),
	table.Row(22, "Control Undead"),
	table.Row(25, "Delusion"),
	table.Row(27, "Diminution"),
	table.Row(31, "ESP"),
	table.Row(34, "Fire Resistance"),
	table.Row(37, "Flying"),
	table.Row(40, "Gaseous Form"),
	table.Row(43, "Giant Strength"),
	table.Row(46, "Growth"),
	table.Row(55, "Healing"),
	table.Row(58, "Heroism"),
	table.Row(62, "Invisibility"),
	table.Row(65, "Invulnerability"),
	table.Row(69, "Levitation"),
	table.Row(71, "Longevity"),
	table.Row(75, "Poison"),
	table.Row(80, "Polymorph Self"),
	table.Row(85, "Speed"),
	table.Row(90, "Treasure Finding"),
	table.Row(100, "Water Breathing"),
)

// Potion rolls a single potion.
func (g *Generator) Potion() (Potion, error) {
	name, err := potionTable.Pick(g.dice)
	if err != nil {
		return Potion{}, err
	}
	return Potion{Name: name}, nil
}

// scrollEntry is a scroll label; when Dice is set the label is a format string
// with one %d filled by rolling Dice.
type scrollEntry struct {
	Label string
	Dice  string
}

var scrollTable = table.Percentile("scroll",
	table.Row(15, scrollEntry{Label: "Spell Scroll (1 Spell)"}),
	table.Row(25, scrollEntry{Label: "Spell Scroll (2 Spells)"}),
	table.Row(31, scrollEntry{Label: "Spell Scroll (3 Spells)"}),
	table.Row(34, scrollEntry{Label: "Spell Scroll (4 Spells)"}),
	table.Row(36, scrollEntry{Label: "Spell Scroll (5 Spells)"}),
	table.Row(37, scrollEntry{Label: "Spell Scroll (6 Spells)"}),
	table.Row(38, scrollEntry{Label: "Spell Scroll (7 Spells)"}),
	table.Row(46, scrollEntry{Label: "Cursed Scroll"}),
	table.Row(49, scrollEntry{Label: "Protection from Elementals"}),
	table.Row(53, scrollEntry{Label: "Protection from Lycanthropes"}),
	table.Row(55, scrollEntry{Label: "Protection from Magic"}),
	table.Row(61, scrollEntry{Label: "Protection from Undead"}),
	table.Row(66, scrollEntry{Label: "Map to Treasure Type A"}),
	table.Row(70, scrollEntry{Label: "Map to Treasure Type E"}),
	table.Row(73, scrollEntry{Label: "Map to Treasure Type G"}),
	table.Row(76, scrollEntry{Label: "Map to Treasure Type I"}),
	table.Row(81, scrollEntry{Label: "Map to Magic Item"}),
	table.Row(87, scrollEntry{Label: "Map to %d Magic Items", Dice: "1d4"}),
	table.Row(93, scrollEntry{Label: "Map to Treasure Type E and %d Magic Items", Dice: "1d4"}),
	table.Row(100, scrollEntry{Label: "Map to Treasure Type H"}),
)

// Scroll rolls a single scroll, rolling any count embedded in its label.
func (g *Generator) Scroll() (Scroll, error) {
	e, err := scrollTable.Pick(g.dice)
	if err != nil {
		return Scroll{}, err
	}
	if e.Dice == "" {
		return Scroll{Name: e.Label}, nil
	}
	res, err := g.dice.RollExpr(e.Dice)
	if err != nil {
		return Scroll{}, fmt.Errorf("scroll %q: %w", e.Label, err)
	}
	return Scroll{Name: fmt.Sprintf(e.Label, res.Total())}, nil
}

var wandTable = table.Percentile("wand, staff, or rod",
	table.Row(8, "Wand of Cold"),
	table.Row(13, "Wand of Enemy Detection"),
	table.Row(19, "Wand of Fear"),
	table.Row(26, "Wand of Fireballs"),
	table.Row(30, "Wand of Illusion"),
	table.Row(36, "Wand of Lightning Bolts"),
	table.Row(42, "Wand of Magic Detection"),
	table.Row(50, "Wand of Magic Missiles"),
	table.Row(53, "Wand of Negation"),
	table.Row(58, "Wand of Paralysis"),
	table.Row(62, "Wand of Polymorph"),
	table.Row(68, "Staff of Healing"),
	table.Row(71, "Staff of Power"),
	table.Row(76, "Staff of Snakes"),
	table.Row(84, "Staff of Striking"),
	table.Row(85, "Staff of Wizardry"),
	table.Row(95, "Rod of Cancellation"),
	table.Row(100, "Rod of Absorption"),
)

// Wand rolls a single wand, staff, or rod.
func (g *Generator) Wand() (Wand, error) {
	name, err := wandTable.Pick(g.dice)
	if err != nil {
		return Wand{}, err
	}
	return Wand{Name: name}, nil
}

type miscEffect struct {
	Effect string
	Column FormColumn
}

var (
	misc1Table = table.Percentile("misc item effect (1)",
		table.Row(5, miscEffect{"Blasting", 'E'}),
		table.Row(10, miscEffect{"Blending", 'D'}),
		table.Row(16, miscEffect{"Cold Resistance", 'B'}),
		table.Row(20, miscEffect{"Comprehension", 'E'}),
		table.Row(24, miscEffect{"Control Animal", 'B'}),
		table.Row(28, miscEffect{"Control Human", 'B'}),
		table.Row(32, miscEffect{"Control Plant", 'B'}),
		table.Row(35, miscEffect{"Courage", 'A'}),
		table.Row(39, miscEffect{"Deception", 'A'}),
		table.Row(44, miscEffect{"Delusion", 'B'}),
		table.Row(46, miscEffect{"Djinni Summoning", 'B'}),
		table.Row(50, miscEffect{"Doom", 'A'}),
		table.Row(56, miscEffect{"Fire Resistance", 'B'}),
		table.Row(62, miscEffect{"Free Action", 'C'}),
		table.Row(66, miscEffect{"Holding", 'H'}),
		table.Row(75, miscEffect{"Levitation", 'C'}),
		table.Row(88, miscEffect{"Leaping", 'C'}),
		table.Row(100, miscEffect{"Luck", 'A'}),
	)
	misc2Table = table.Percentile("misc item effect (2)",
		table.Row(12, miscEffect{"Protection +1", 'D'}),
		table.Row(18, miscEffect{"Protection +2", 'D'}),
		table.Row(21, miscEffect{"Protection +3", 'D'}),
		table.Row(25, miscEffect{"Protection from Scrying", 'A'}),
		table.Row(28, miscEffect{"Regeneration", 'B'}),
		table.Row(33, miscEffect{"Scrying", 'F'}),
		table.Row(35, miscEffect{"Scrying, Superior", 'F'}),
		table.Row(42, miscEffect{"Speed", 'C'}),
		table.Row(45, miscEffect{"Spell Storing", 'B'}),
		table.Row(47, miscEffect{"Spell Turning", 'B'}),
		table.Row(55, miscEffect{"Stealth", 'C'}),
		table.Row(61, miscEffect{"Strength", 'G'}),
		table.Row(66, miscEffect{"Telekinesis", 'E'}),
		table.Row(72, miscEffect{"Telepathy", 'E'}),
		table.Row(76, miscEffect{"Teleportation", 'B'}),
		table.Row(80, miscEffect{"True Seeing", 'F'}),
		table.Row(90, miscEffect{"Water Walking", 'C'}),
		table.Row(100, miscEffect{"Weakness", 'G'}),
	)
	// 57% of miscellaneous items come from the first effect table.
	miscEffectTables = table.Percentile("misc item effect table",
		table.Row(57, misc1Table),
		table.Row(100, misc2Table),
	)
	miscFormTables = map[FormColumn]*table.Table[string]{
		'A': table.Percentile("misc form A", table.Row(50, "Amulet"), table.Row(100, "Medallion")),
		'B': table.Percentile("misc form B", table.Row(50, "Bracelet"), table.Row(100, "Ring")),
		'C': table.Percentile("misc form C", table.Row(50, "Boots"), table.Row(75, "Sandals"), table.Row(100, "Slippers")),
		'D': table.Percentile("misc form D", table.Row(60, "Cloak"), table.Row(100, "Robe")),
		'E': table.Percentile("misc form E", table.Row(20, "Crown"), table.Row(60, "Helm"), table.Row(80, "Circlet"), table.Row(100, "Hat")),
		'F': table.Percentile("misc form F", table.Row(30, "Bowl"), table.Row(70, "Crystal Ball"), table.Row(100, "Mirror")),
		'G': table.Percentile("misc form G", table.Row(50, "Gauntlets"), table.Row(100, "Gloves")),
		'H': table.Percentile("misc form H", table.Row(60, "Belt"), table.Row(100, "Girdle")),
	}
)

// Misc rolls a miscellaneous item in two stages: the effect (which names a form
// column) and then the form from that column's table.
func (g *Generator) Misc() (Misc, error) {
	effects, err := miscEffectTables.Pick(g.dice)
	if err != nil {
		return Misc{}, err
	}
	e, err := effects.Pick(g.dice)
	if err != nil {
		return Misc{}, err
	}
	forms, ok := miscFormTables[e.Column]
	if !ok {
		return Misc{}, table.Configf("misc effect %q names unknown form column %s", e.Effect, e.Column)
	}
	form, err := forms.Pick(g.dice)
	if err != nil {
		return Misc{}, err
	}
	return Misc{Effect: e.Effect, Column: e.Column, Form: form}, nil
}

// rareEntry is a rare item name, or a delegation to a uniform sub-table.
type rareEntry struct {
	Name string
	Sub  *table.Table[string]
}

var (
	elementalDevices = table.Uniform("device of summoning elementals",
		"Censer of Controlling Air Elementals",
		"Fan of Summoning Air Elementals",
		"Stone of Controlling Earth Elementals",
		"Drum of Summoning Earth Elementals",
		"Brazier of Commanding Fire Elementals",
		"Lantern of Summoning Fire Elementals",
		"Bowl of Commanding Water Elementals",
		"Conch of Summoning Water Elementals",
	)
	rareTable = table.Percentile("rare item",
		table.Row(5, rareEntry{Name: "Bag of Devouring"}),
		table.Row(25, rareEntry{Name: "Bag of Holding"}),
		table.Row(30, rareEntry{Name: "Boat, Undersea"}),
		table.Row(40, rareEntry{Name: "Broom of Flying"}),
		table.Row(50, rareEntry{Sub: elementalDevices}),
		table.Row(55, rareEntry{Name: "Drums of Panic"}),
		table.Row(58, rareEntry{Name: "Efreeti Bottle"}),
		table.Row(68, rareEntry{Name: "Flying Carpet"}),
		table.Row(75, rareEntry{Name: "Horn of Blasting"}),
		table.Row(80, rareEntry{Name: "Mirror of Life Trapping"}),
		table.Row(100, rareEntry{Name: "Rope of Climbing"}),
	)
)

// Rare rolls a rare item.
func (g *Generator) Rare() (Rare, error) {
	e, err := rareTable.Pick(g.dice)
	if err != nil {
		return Rare{}, err
	}
	if e.Sub == nil {
		return Rare{Name: e.Name}, nil
	}
	name, err := e.Sub.Pick(g.dice)
	if err != nil {
		return Rare{}, err
	}
	return Rare{Name: name}, nil
}
