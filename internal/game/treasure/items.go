package treasure

import (
	"fmt"

	"github.com/cory-johannsen/hoard/internal/game/table"
)

// Column selects which top-level category table the magic item generator
// consults. The treasure type row decides the column, never the caller.
type Column int

const (
	// ColumnAny offers every category.
	ColumnAny Column = iota
	// ColumnWeaponArmor offers only magical weapons and armor.
	ColumnWeaponArmor
	// ColumnNoWeapon offers every category except weapons.
	ColumnNoWeapon
)

// String returns the wire name of the column.
func (c Column) String() string {
	switch c {
	case ColumnAny:
		return "any"
	case ColumnWeaponArmor:
		return "weaponArmor"
	case ColumnNoWeapon:
		return "noWeapon"
	default:
		return fmt.Sprintf("Column(%d)", int(c))
	}
}

// ParseColumn maps a wire name back to its Column.
func ParseColumn(s string) (Column, error) {
	switch s {
	case "any":
		return ColumnAny, nil
	case "weaponArmor":
		return ColumnWeaponArmor, nil
	case "noWeapon":
		return ColumnNoWeapon, nil
	}
	return 0, table.Configf("unknown magic item column %q", s)
}

// Kind tags each magic item variant.
type Kind string

const (
	KindWeapon Kind = "weapon"
	KindArmor  Kind = "armor"
	KindPotion Kind = "potion"
	KindScroll Kind = "scroll"
	KindWand   Kind = "wand"
	KindMisc   Kind = "misc"
	KindRare   Kind = "rare"
)

// Item is one generated magic item. The set of implementations is closed:
// Weapon, Armor, Potion, Scroll, Wand, Misc, and Rare.
type Item interface {
	// Kind reports the variant tag.
	Kind() Kind
	// Label renders the item for display, e.g. "Longsword +1".
	Label() string

	sealed()
}

// WeaponType distinguishes melee from missile weapons; each uses its own bonus table.
type WeaponType string

const (
	Melee   WeaponType = "melee"
	Missile WeaponType = "missile"
)

// Weapon is a magical weapon.
//
// Invariant: cursed weapons carry a negative Bonus and Special == SpecialCursed.
type Weapon struct {
	Name    string     `json:"name" yaml:"name"`
	Type    WeaponType `json:"type" yaml:"type"`
	Bonus   string     `json:"bonus" yaml:"bonus"`
	Special string     `json:"special,omitempty" yaml:"special,omitempty"`
}

// SpecialCursed marks a cursed weapon or armor.
const SpecialCursed = "Cursed"

func (Weapon) Kind() Kind { return KindWeapon }
func (w Weapon) Label() string {
	if w.Special != "" {
		return fmt.Sprintf("%s %s (%s)", w.Name, w.Bonus, w.Special)
	}
	return fmt.Sprintf("%s %s", w.Name, w.Bonus)
}
func (Weapon) sealed() {}

// Armor is magical armor or a shield.
//
// Special == SpecialCursed with a non-empty Bonus comes from the first cursed
// tier; a Special mentioning "appears to be +1" with an empty Bonus comes from
// the second.
type Armor struct {
	Name    string `json:"name" yaml:"name"`
	Bonus   string `json:"bonus" yaml:"bonus"`
	Special string `json:"special,omitempty" yaml:"special,omitempty"`
}

func (Armor) Kind() Kind { return KindArmor }
func (a Armor) Label() string {
	switch {
	case a.Bonus == "":
		return fmt.Sprintf("%s (%s)", a.Name, a.Special)
	case a.Special != "":
		return fmt.Sprintf("%s %s (%s)", a.Name, a.Bonus, a.Special)
	}
	return fmt.Sprintf("%s %s", a.Name, a.Bonus)
}
func (Armor) sealed() {}

// Potion is a single magical potion.
type Potion struct {
	Name string `json:"name" yaml:"name"`
}

func (Potion) Kind() Kind      { return KindPotion }
func (p Potion) Label() string { return "Potion of " + p.Name }
func (Potion) sealed()         {}

// Scroll is a spell scroll, protection scroll, or treasure map.
type Scroll struct {
	Name string `json:"name" yaml:"name"`
}

func (Scroll) Kind() Kind      { return KindScroll }
func (s Scroll) Label() string { return s.Name }
func (Scroll) sealed()         {}

// Wand covers wands, staves, and rods.
type Wand struct {
	Name string `json:"name" yaml:"name"`
}

func (Wand) Kind() Kind      { return KindWand }
func (w Wand) Label() string { return w.Name }
func (Wand) sealed()         {}

// FormColumn selects the physical form table (A–H) for a miscellaneous item.
type FormColumn byte

// String renders the column letter.
func (f FormColumn) String() string { return string(rune(f)) }

// MarshalText encodes the column as its letter.
func (f FormColumn) MarshalText() ([]byte, error) { return []byte{byte(f)}, nil }

// UnmarshalText accepts a single letter A–H.
func (f *FormColumn) UnmarshalText(b []byte) error {
	if len(b) != 1 || b[0] < 'A' || b[0] > 'H' {
		return fmt.Errorf("form column must be a letter A-H, got %q", b)
	}
	*f = FormColumn(b[0])
	return nil
}

// Misc is a miscellaneous magic item: an effect bound into a physical form.
// Column picks the form table; Form is filled by a second roll on it.
type Misc struct {
	Effect string     `json:"effect" yaml:"effect"`
	Column FormColumn `json:"column" yaml:"column"`
	Form   string     `json:"form" yaml:"form"`
}

func (Misc) Kind() Kind      { return KindMisc }
func (m Misc) Label() string { return fmt.Sprintf("%s of %s", m.Form, m.Effect) }
func (Misc) sealed()         {}

// Rare is a unique or rare magic item.
type Rare struct {
	Name string `json:"name" yaml:"name"`
}

func (Rare) Kind() Kind      { return KindRare }
func (r Rare) Label() string { return r.Name }
func (Rare) sealed()         {}
