// Package treasure resolves treasure type codes into loot: coins, gem and
// jewel counts, and magic items generated from weighted sub-tables.
package treasure

import (
	"encoding/json"
	"fmt"
)

// Loot is the result of one treasure roll.
//
// Invariant: every count is >= 0 and every MagicItems entry is one of the seven
// Item variants. A Loot is never mutated after it is returned; operations that
// change it (gem appraisal) return a new value.
type Loot struct {
	Copper     int
	Silver     int
	Electrum   int
	Gold       int
	Platinum   int
	Gems       int
	Jewels     int
	MagicItems []Item
}

// Empty reports whether the roll produced nothing at all.
func (l Loot) Empty() bool {
	return l.Copper == 0 && l.Silver == 0 && l.Electrum == 0 && l.Gold == 0 &&
		l.Platinum == 0 && l.Gems == 0 && l.Jewels == 0 && len(l.MagicItems) == 0
}

// withJewels returns a copy of l with n more jewels.
func (l Loot) withJewels(n int) Loot {
	out := l
	out.Jewels += n
	out.MagicItems = append([]Item(nil), l.MagicItems...)
	return out
}

// itemEnvelope is the tagged wire form of an Item: the kind plus exactly one
// populated variant field.
type itemEnvelope struct {
	Kind   Kind    `json:"kind" yaml:"kind"`
	Weapon *Weapon `json:"weapon,omitempty" yaml:"weapon,omitempty"`
	Armor  *Armor  `json:"armor,omitempty" yaml:"armor,omitempty"`
	Potion *Potion `json:"potion,omitempty" yaml:"potion,omitempty"`
	Scroll *Scroll `json:"scroll,omitempty" yaml:"scroll,omitempty"`
	Wand   *Wand   `json:"wand,omitempty" yaml:"wand,omitempty"`
	Misc   *Misc   `json:"misc,omitempty" yaml:"misc,omitempty"`
	Rare   *Rare   `json:"rare,omitempty" yaml:"rare,omitempty"`
}

func envelope(it Item) itemEnvelope {
	env := itemEnvelope{Kind: it.Kind()}
	switch v := it.(type) {
	case Weapon:
		env.Weapon = &v
	case Armor:
		env.Armor = &v
	case Potion:
		env.Potion = &v
	case Scroll:
		env.Scroll = &v
	case Wand:
		env.Wand = &v
	case Misc:
		env.Misc = &v
	case Rare:
		env.Rare = &v
	}
	return env
}

func (e itemEnvelope) item() (Item, error) {
	switch {
	case e.Kind == KindWeapon && e.Weapon != nil:
		return *e.Weapon, nil
	case e.Kind == KindArmor && e.Armor != nil:
		return *e.Armor, nil
	case e.Kind == KindPotion && e.Potion != nil:
		return *e.Potion, nil
	case e.Kind == KindScroll && e.Scroll != nil:
		return *e.Scroll, nil
	case e.Kind == KindWand && e.Wand != nil:
		return *e.Wand, nil
	case e.Kind == KindMisc && e.Misc != nil:
		return *e.Misc, nil
	case e.Kind == KindRare && e.Rare != nil:
		return *e.Rare, nil
	}
	return nil, fmt.Errorf("magic item of kind %q has no matching body", e.Kind)
}

type lootWire struct {
	Copper     int            `json:"copper" yaml:"copper"`
	Silver     int            `json:"silver" yaml:"silver"`
	Electrum   int            `json:"electrum" yaml:"electrum"`
	Gold       int            `json:"gold" yaml:"gold"`
	Platinum   int            `json:"platinum" yaml:"platinum"`
	Gems       int            `json:"gems" yaml:"gems"`
	Jewels     int            `json:"jewels" yaml:"jewels"`
	MagicItems []itemEnvelope `json:"magicItems" yaml:"magicItems"`
}

func (l Loot) wire() lootWire {
	w := lootWire{
		Copper: l.Copper, Silver: l.Silver, Electrum: l.Electrum, Gold: l.Gold,
		Platinum: l.Platinum, Gems: l.Gems, Jewels: l.Jewels,
		MagicItems: make([]itemEnvelope, 0, len(l.MagicItems)),
	}
	for _, it := range l.MagicItems {
		w.MagicItems = append(w.MagicItems, envelope(it))
	}
	return w
}

// MarshalJSON encodes magic items as tagged envelopes.
func (l Loot) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.wire())
}

// UnmarshalJSON decodes the tagged envelope form written by MarshalJSON.
func (l *Loot) UnmarshalJSON(data []byte) error {
	var w lootWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	out := Loot{
		Copper: w.Copper, Silver: w.Silver, Electrum: w.Electrum, Gold: w.Gold,
		Platinum: w.Platinum, Gems: w.Gems, Jewels: w.Jewels,
	}
	for i, env := range w.MagicItems {
		it, err := env.item()
		if err != nil {
			return fmt.Errorf("decoding magic item %d: %w", i, err)
		}
		out.MagicItems = append(out.MagicItems, it)
	}
	*l = out
	return nil
}

// MarshalYAML encodes the same tagged form as MarshalJSON.
func (l Loot) MarshalYAML() (any, error) {
	return l.wire(), nil
}
