package treasure

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cory-johannsen/hoard/internal/game/table"
)

// Field names a Loot count a treasure row can fill.
type Field int

const (
	FieldCopper Field = iota
	FieldSilver
	FieldElectrum
	FieldGold
	FieldPlatinum
	FieldGems
	FieldJewels
	fieldCount
)

var fieldNames = [fieldCount]string{"copper", "silver", "electrum", "gold", "platinum", "gems", "jewels"}

// String returns the lower-case field name.
func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return "field(" + strconv.Itoa(int(f)) + ")"
	}
	return fieldNames[f]
}

// RowSpec describes one Loot field of a treasure type: how likely it is to be
// present and how much is there when it is. Quantity is a dice expression or an
// integer literal; an empty Quantity means the row is absent.
type RowSpec struct {
	Probability float64
	Quantity    string
}

// MagicSpec describes the magic item slot of a treasure type. Each count is a
// dice expression, an integer literal, or empty for none.
type MagicSpec struct {
	Probability float64
	Column      Column
	Items       string
	Scrolls     string
	Potions     string
}

// Spec is the static template for one treasure type code.
type Spec struct {
	Code  string
	Rows  [fieldCount]RowSpec
	Magic MagicSpec
	// DragonHoard replaces every probability with the dragon-age formula.
	DragonHoard bool
}

// Chance is a resolved row: the probability and the pre-rolled quantity.
type Chance struct {
	Probability float64
	Quantity    int
}

// MagicChance is the resolved magic item row.
type MagicChance struct {
	Probability float64
	Column      Column
	Items       int
	Scrolls     int
	Potions     int
}

// Chances is the per-roll table built from a Spec. It lives for one Loot call.
type Chances struct {
	Rows  [fieldCount]Chance
	Magic MagicChance
}

// DragonProbability is the presence probability of every row of a dragon
// hoard. It is deliberately not clamped; ages above 8 exceed 1.0 and make
// every presence check succeed.
func DragonProbability(dragonAge int) float64 {
	if dragonAge > 1 {
		return float64(dragonAge)/10 + 0.15
	}
	return 0
}

type rowOpt func(*Spec)

func row(f Field, p float64, qty string) rowOpt {
	return func(s *Spec) { s.Rows[f] = RowSpec{Probability: p, Quantity: qty} }
}

func magic(p float64, col Column, items, scrolls, potions string) rowOpt {
	return func(s *Spec) {
		s.Magic = MagicSpec{Probability: p, Column: col, Items: items, Scrolls: scrolls, Potions: potions}
	}
}

func spec(code string, opts ...rowOpt) Spec {
	s := Spec{Code: code}
	for _, o := range opts {
		o(&s)
	}
	return s
}

var specs = func() map[string]Spec {
	all := []Spec{
		// Lair hoards.
		spec("A",
			row(FieldCopper, 0.50, "5d6*100"), row(FieldSilver, 0.60, "5d6*100"),
			row(FieldElectrum, 0.40, "5d4*100"), row(FieldGold, 0.70, "10d6*100"),
			row(FieldPlatinum, 0.50, "1d10*100"), row(FieldGems, 0.50, "6d6"),
			row(FieldJewels, 0.50, "6d6"), magic(0.30, ColumnAny, "3", "", "")),
		spec("B",
			row(FieldCopper, 0.75, "5d10*100"), row(FieldSilver, 0.50, "5d6*100"),
			row(FieldElectrum, 0.50, "5d4*100"), row(FieldGold, 0.50, "3d6*100"),
			row(FieldGems, 0.25, "1d6"), row(FieldJewels, 0.25, "1d6"),
			magic(0.10, ColumnWeaponArmor, "1", "", "")),
		spec("C",
			row(FieldCopper, 0.60, "6d6*100"), row(FieldSilver, 0.60, "5d4*100"),
			row(FieldElectrum, 0.30, "2d6*100"), row(FieldGems, 0.25, "1d4"),
			row(FieldJewels, 0.25, "1d4"), magic(0.15, ColumnAny, "2", "", "")),
		spec("D",
			row(FieldCopper, 0.30, "4d6*100"), row(FieldSilver, 0.45, "6d6*100"),
			row(FieldGold, 0.90, "5d8*100"), row(FieldGems, 0.30, "1d8"),
			row(FieldJewels, 0.30, "1d8"), magic(0.20, ColumnAny, "2", "", "1")),
		spec("E",
			row(FieldCopper, 0.30, "2d8*100"), row(FieldSilver, 0.60, "6d10*100"),
			row(FieldElectrum, 0.50, "3d8*100"), row(FieldGold, 0.50, "4d10*100"),
			row(FieldGems, 0.10, "1d10"), row(FieldJewels, 0.10, "1d10"),
			magic(0.30, ColumnAny, "3", "1", "")),
		spec("F",
			row(FieldSilver, 0.40, "3d8*100"), row(FieldElectrum, 0.50, "4d8*100"),
			row(FieldGold, 0.85, "6d10*100"), row(FieldPlatinum, 0.70, "2d8*100"),
			row(FieldGems, 0.20, "2d12"), row(FieldJewels, 0.10, "1d12"),
			magic(0.35, ColumnNoWeapon, "3", "1", "1")),
		spec("G",
			row(FieldGold, 0.90, "4d6*1000"), row(FieldPlatinum, 0.75, "5d8*100"),
			row(FieldGems, 0.25, "3d6"), row(FieldJewels, 0.25, "1d10"),
			magic(0.50, ColumnAny, "4", "1", "")),
		{
			Code: "H",
			Rows: [fieldCount]RowSpec{
				FieldCopper:   {Quantity: "8d10*100"},
				FieldSilver:   {Quantity: "6d10*1000"},
				FieldElectrum: {Quantity: "3d10*1000"},
				FieldGold:     {Quantity: "5d8*1000"},
				FieldPlatinum: {Quantity: "9d8*100"},
				FieldGems:     {Quantity: "1d100"},
				FieldJewels:   {Quantity: "10d4"},
			},
			Magic:       MagicSpec{Column: ColumnAny, Items: "4", Scrolls: "1", Potions: "1"},
			DragonHoard: true,
		},
		spec("I",
			row(FieldPlatinum, 0.80, "3d10*100"), row(FieldGems, 0.50, "2d6"),
			row(FieldJewels, 0.50, "2d6"), magic(0.15, ColumnAny, "1", "", "")),
		spec("J", row(FieldCopper, 0.45, "3d8*100"), row(FieldSilver, 0.45, "1d8*100")),
		spec("K", row(FieldSilver, 0.90, "2d10*100"), row(FieldElectrum, 0.35, "1d8*100")),
		spec("L", row(FieldGems, 0.50, "1d4")),
		spec("M",
			row(FieldGold, 0.90, "4d10*100"), row(FieldPlatinum, 0.90, "2d8*1000"),
			row(FieldGems, 0.55, "5d4"), row(FieldJewels, 0.45, "2d6")),
		spec("N", magic(0.40, ColumnAny, "", "", "2d4")),
		spec("O", magic(0.50, ColumnAny, "", "1d4", "")),
		// Individual treasure carried by a single creature.
		spec("P", row(FieldCopper, 1, "3d8")),
		spec("Q", row(FieldSilver, 1, "3d6")),
		spec("R", row(FieldElectrum, 1, "2d6")),
		spec("S", row(FieldGold, 1, "2d4")),
		spec("T", row(FieldPlatinum, 1, "1d6")),
		spec("U",
			row(FieldCopper, 0.50, "1d20"), row(FieldSilver, 0.50, "1d20"),
			row(FieldGold, 0.25, "1d20"), row(FieldGems, 0.05, "1d4"),
			row(FieldJewels, 0.05, "1d4"), magic(0.02, ColumnAny, "1", "", "")),
		spec("V",
			row(FieldSilver, 0.25, "1d20"), row(FieldElectrum, 0.25, "1d20"),
			row(FieldGold, 0.50, "1d20"), row(FieldPlatinum, 0.25, "1d20"),
			row(FieldGems, 0.10, "1d4"), row(FieldJewels, 0.10, "1d4"),
			magic(0.05, ColumnAny, "1", "", "")),
		// Unguarded treasure by dungeon level.
		spec("1",
			row(FieldSilver, 1, "1d6*100"), row(FieldGold, 0.50, "1d6*10"),
			row(FieldGems, 0.05, "1d6"), row(FieldJewels, 0.02, "1d6"),
			magic(0.02, ColumnAny, "1", "", "")),
		spec("2",
			row(FieldSilver, 1, "1d12*100"), row(FieldGold, 0.50, "1d6*100"),
			row(FieldGems, 0.10, "1d6"), row(FieldJewels, 0.05, "1d6"),
			magic(0.08, ColumnAny, "1", "", "")),
		spec("3",
			row(FieldSilver, 1, "1d12*100"), row(FieldGold, 0.50, "1d6*100"),
			row(FieldGems, 0.10, "1d6"), row(FieldJewels, 0.05, "1d6"),
			magic(0.08, ColumnAny, "1", "", "")),
		spec("4",
			row(FieldSilver, 1, "1d6*1000"), row(FieldGold, 1, "1d6*200"),
			row(FieldGems, 0.20, "1d8"), row(FieldJewels, 0.10, "1d8"),
			magic(0.10, ColumnAny, "1", "", "")),
		spec("5",
			row(FieldSilver, 1, "1d6*1000"), row(FieldGold, 1, "1d6*200"),
			row(FieldGems, 0.20, "1d8"), row(FieldJewels, 0.10, "1d8"),
			magic(0.10, ColumnAny, "1", "", "")),
		spec("6",
			row(FieldSilver, 1, "1d6*2000"), row(FieldGold, 1, "1d6*500"),
			row(FieldGems, 0.30, "1d8"), row(FieldJewels, 0.15, "1d8"),
			magic(0.15, ColumnAny, "1", "", "")),
		spec("7",
			row(FieldSilver, 1, "1d6*2000"), row(FieldGold, 1, "1d6*500"),
			row(FieldGems, 0.30, "1d8"), row(FieldJewels, 0.15, "1d8"),
			magic(0.15, ColumnAny, "1", "", "")),
		spec("8",
			row(FieldSilver, 1, "1d6*5000"), row(FieldGold, 1, "1d6*1000"),
			row(FieldGems, 0.40, "1d8"), row(FieldJewels, 0.20, "1d8"),
			magic(0.20, ColumnAny, "1", "", "")),
	}
	m := make(map[string]Spec, len(all))
	for _, s := range all {
		m[s.Code] = s
	}
	return m
}()

// ParseType normalizes a treasure type code. Letters are upper-cased; dungeon
// levels above 8 collapse into "8".
//
// Postcondition: Returns a code present in Types(), or an error wrapping
// table.ErrConfiguration naming the input.
func ParseType(code string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if n, err := strconv.Atoi(strings.TrimSuffix(c, "+")); err == nil {
		if n < 1 {
			return "", table.Configf("unknown treasure type %q: dungeon level must be >= 1", code)
		}
		if n > 8 {
			n = 8
		}
		c = strconv.Itoa(n)
	}
	if _, ok := specs[c]; !ok {
		return "", table.Configf("unknown treasure type %q", code)
	}
	return c, nil
}

// LookupSpec returns the template for a code accepted by ParseType.
func LookupSpec(code string) (Spec, error) {
	c, err := ParseType(code)
	if err != nil {
		return Spec{}, err
	}
	return specs[c], nil
}

// Types lists every known treasure type code: letters first, then dungeon levels.
func Types() []string {
	out := make([]string, 0, len(specs))
	for c := range specs {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		li, lj := out[i][0] >= 'A', out[j][0] >= 'A'
		if li != lj {
			return li
		}
		return out[i] < out[j]
	})
	return out
}
