package treasure

import (
	"fmt"

	"github.com/cory-johannsen/hoard/internal/game/table"
)

type weaponEntry struct {
	Name string
	Type WeaponType
}

var weaponTable = table.Percentile("magic weapon",
	table.Row(2, weaponEntry{"Great Axe", Melee}),
	table.Row(9, weaponEntry{"Battle Axe", Melee}),
	table.Row(11, weaponEntry{"Hand Axe", Melee}),
	table.Row(19, weaponEntry{"Shortbow", Missile}),
	table.Row(27, weaponEntry{"Shortbow Arrows", Missile}),
	table.Row(31, weaponEntry{"Longbow", Missile}),
	table.Row(35, weaponEntry{"Longbow Arrows", Missile}),
	table.Row(43, weaponEntry{"Light Quarrels", Missile}),
	table.Row(47, weaponEntry{"Heavy Quarrels", Missile}),
	table.Row(59, weaponEntry{"Dagger", Melee}),
	table.Row(65, weaponEntry{"Shortsword", Melee}),
	table.Row(79, weaponEntry{"Longsword", Melee}),
	table.Row(81, weaponEntry{"Scimitar", Melee}),
	table.Row(83, weaponEntry{"Two-Handed Sword", Melee}),
	table.Row(86, weaponEntry{"Warhammer", Melee}),
	table.Row(94, weaponEntry{"Mace", Melee}),
	table.Row(95, weaponEntry{"Maul", Melee}),
	table.Row(96, weaponEntry{"Pole Arm", Melee}),
	table.Row(97, weaponEntry{"Sling Bullets", Missile}),
	table.Row(100, weaponEntry{"Spear", Melee}),
)

// weaponBonus is one outcome of a weapon bonus table.
//
// Enemy set: Bonus is a format string completed with a special-enemy roll.
// Reroll set: keep the weapon, roll the special-ability bonus table instead.
type weaponBonus struct {
	Bonus  string
	Enemy  bool
	Reroll bool
	Cursed bool
}

var (
	meleeBonusTable = table.Percentile("melee weapon bonus",
		table.Row(40, weaponBonus{Bonus: "+1"}),
		table.Row(50, weaponBonus{Bonus: "+2"}),
		table.Row(55, weaponBonus{Bonus: "+3"}),
		table.Row(57, weaponBonus{Bonus: "+4"}),
		table.Row(58, weaponBonus{Bonus: "+5"}),
		table.Row(68, weaponBonus{Bonus: "+1, +2 vs. %s", Enemy: true}),
		table.Row(73, weaponBonus{Bonus: "+1, +3 vs. %s", Enemy: true}),
		table.Row(83, weaponBonus{Reroll: true}),
		table.Row(98, weaponBonus{Bonus: "-1", Cursed: true}),
		table.Row(100, weaponBonus{Bonus: "-2", Cursed: true}),
	)
	missileBonusTable = table.Percentile("missile weapon bonus",
		table.Row(46, weaponBonus{Bonus: "+1"}),
		table.Row(58, weaponBonus{Bonus: "+2"}),
		table.Row(64, weaponBonus{Bonus: "+3"}),
		table.Row(82, weaponBonus{Bonus: "+1, +2 vs. %s", Enemy: true}),
		table.Row(94, weaponBonus{Bonus: "+1, +3 vs. %s", Enemy: true}),
		table.Row(98, weaponBonus{Bonus: "-1", Cursed: true}),
		table.Row(100, weaponBonus{Bonus: "-2", Cursed: true}),
	)
	// abilityBonusTable is consulted after a reroll result. It holds no reroll
	// or cursed outcomes, so a reroll recurses exactly once.
	abilityBonusTable = table.Percentile("special ability weapon bonus",
		table.Row(69, "+1"),
		table.Row(86, "+2"),
		table.Row(95, "+3"),
		table.Row(99, "+4"),
		table.Row(100, "+5"),
	)
	specialAbilityTable = table.Percentile("weapon special ability",
		table.Row(20, "Casts Light on Command"),
		table.Row(30, "Charm Person"),
		table.Row(35, "Drains Energy"),
		table.Row(50, "Flames on Command"),
		table.Row(65, "Locate Objects"),
		table.Row(67, "Wishes"),
		table.Row(80, "Detects Magic"),
		table.Row(90, "Detects Traps"),
		table.Row(100, "Sees Invisible"),
	)
	specialEnemyTable = table.Uniform("special enemy",
		"Dragons", "Enchanted Monsters", "Lycanthropes", "Regenerators", "Spell Users", "Undead",
	)
)

// Weapon rolls a magical weapon and its bonus.
func (g *Generator) Weapon() (Weapon, error) {
	w, err := weaponTable.Pick(g.dice)
	if err != nil {
		return Weapon{}, err
	}
	bonuses := meleeBonusTable
	if w.Type == Missile {
		bonuses = missileBonusTable
	}
	b, err := bonuses.Pick(g.dice)
	if err != nil {
		return Weapon{}, err
	}

	out := Weapon{Name: w.Name, Type: w.Type, Bonus: b.Bonus}
	switch {
	case b.Reroll:
		return g.specialAbilityWeapon(out)
	case b.Enemy:
		enemy, err := specialEnemyTable.Pick(g.dice)
		if err != nil {
			return Weapon{}, err
		}
		out.Bonus = fmt.Sprintf(b.Bonus, enemy)
	case b.Cursed:
		out.Special = SpecialCursed
	}
	return out, nil
}

// specialAbilityWeapon re-rolls the bonus of w on the ability bonus table and
// grants it a special ability. The weapon itself is kept.
func (g *Generator) specialAbilityWeapon(w Weapon) (Weapon, error) {
	bonus, err := abilityBonusTable.Pick(g.dice)
	if err != nil {
		return Weapon{}, err
	}
	ability, err := specialAbilityTable.Pick(g.dice)
	if err != nil {
		return Weapon{}, err
	}
	w.Bonus = bonus
	w.Special = ability
	return w, nil
}

var armorTable = table.Percentile("magic armor",
	table.Row(25, "Leather Armor"),
	table.Row(60, "Chain Mail"),
	table.Row(85, "Plate Mail"),
	table.Row(100, "Shield"),
)

// armorBonus outcomes; the index matters, see Armor.
const (
	armorCursed      = 3
	armorCursedFalse = 4
)

// SpecialFalseArmor is the special text of second-tier cursed armor.
const SpecialFalseArmor = "Cursed, appears to be +1 when tested, AC 11"

var (
	armorBonusTable = table.Percentile("armor bonus",
		table.Row(50, "+1"),
		table.Row(80, "+2"),
		table.Row(90, "+3"),
		table.Row(95, ""),  // armorCursed
		table.Row(100, ""), // armorCursedFalse
	)
	cursedArmorBonusTable = table.Percentile("cursed armor bonus",
		table.Row(60, "-1"),
		table.Row(90, "-2"),
		table.Row(100, "-3"),
	)
)

// Armor rolls magical armor.
//
// The first cursed outcome regenerates the armor once against the negative
// bonus table and marks it SpecialCursed. The second cursed outcome does not
// recurse: it records SpecialFalseArmor and leaves Bonus empty. Both paths are
// kept distinct on purpose; existing hoards depend on the empty Bonus.
func (g *Generator) Armor() (Armor, error) {
	return g.armor(false)
}

func (g *Generator) armor(cursed bool) (Armor, error) {
	name, err := armorTable.Pick(g.dice)
	if err != nil {
		return Armor{}, err
	}
	if cursed {
		bonus, err := cursedArmorBonusTable.Pick(g.dice)
		if err != nil {
			return Armor{}, err
		}
		return Armor{Name: name, Bonus: bonus, Special: SpecialCursed}, nil
	}

	bonus, idx, err := armorBonusTable.Roll(g.dice)
	if err != nil {
		return Armor{}, err
	}
	switch idx {
	case armorCursed:
		return g.armor(true)
	case armorCursedFalse:
		return Armor{Name: name, Special: SpecialFalseArmor}, nil
	}
	return Armor{Name: name, Bonus: bonus}, nil
}
