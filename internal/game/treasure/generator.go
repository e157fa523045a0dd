package treasure

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/cory-johannsen/hoard/internal/game/table"
)

// Generator resolves treasure types, magic items, gems, and jewels.
//
// A Generator holds no mutable state of its own; concurrent calls are safe
// whenever the injected dice are.
type Generator struct {
	dice   table.Dice
	logger *zap.Logger
}

// NewGenerator creates a Generator drawing all randomness from d.
//
// Precondition: d and logger must be non-nil.
func NewGenerator(d table.Dice, logger *zap.Logger) *Generator {
	return &Generator{dice: d, logger: logger}
}

// quantity evaluates a row quantity: empty is zero, an integer literal is
// itself, anything else is rolled.
func (g *Generator) quantity(expr string) (int, error) {
	if expr == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(expr); err == nil {
		return n, nil
	}
	res, err := g.dice.RollExpr(expr)
	if err != nil {
		return 0, table.Configf("quantity %q: %v", expr, err)
	}
	return res.Total(), nil
}

// Chances pre-rolls every quantity of s and fixes every probability.
//
// Quantities are rolled in field order (copper through jewels, then magic
// items, scrolls, potions) whether or not the row will turn out present.
func (g *Generator) Chances(s Spec, dragonAge int) (Chances, error) {
	var c Chances
	for f := Field(0); f < fieldCount; f++ {
		rs := s.Rows[f]
		qty, err := g.quantity(rs.Quantity)
		if err != nil {
			return Chances{}, fmt.Errorf("treasure type %s %s: %w", s.Code, f, err)
		}
		p := rs.Probability
		if s.DragonHoard {
			p = DragonProbability(dragonAge)
		}
		c.Rows[f] = Chance{Probability: p, Quantity: qty}
	}

	c.Magic = MagicChance{Probability: s.Magic.Probability, Column: s.Magic.Column}
	if s.DragonHoard {
		c.Magic.Probability = DragonProbability(dragonAge)
	}
	var err error
	if c.Magic.Items, err = g.quantity(s.Magic.Items); err != nil {
		return Chances{}, fmt.Errorf("treasure type %s magic items: %w", s.Code, err)
	}
	if c.Magic.Scrolls, err = g.quantity(s.Magic.Scrolls); err != nil {
		return Chances{}, fmt.Errorf("treasure type %s scrolls: %w", s.Code, err)
	}
	if c.Magic.Potions, err = g.quantity(s.Magic.Potions); err != nil {
		return Chances{}, fmt.Errorf("treasure type %s potions: %w", s.Code, err)
	}
	return c, nil
}

// present draws a presence value and compares it against p. Rows with p <= 0
// are absent without consuming a draw.
func (g *Generator) present(p float64) bool {
	if p <= 0 {
		return false
	}
	return g.dice.Float64() <= p
}

// Loot resolves a treasure type code into loot. dragonAge only matters for
// dragon hoards (type H); pass 0 when there is no dragon.
//
// Precondition: code is accepted by ParseType.
// Postcondition: Returns a fully populated Loot, or an error wrapping
// table.ErrConfiguration; no partially filled Loot is ever returned.
func (g *Generator) Loot(code string, dragonAge int) (Loot, error) {
	s, err := LookupSpec(code)
	if err != nil {
		return Loot{}, err
	}
	c, err := g.Chances(s, dragonAge)
	if err != nil {
		return Loot{}, err
	}

	var counts [fieldCount]int
	for f := Field(0); f < fieldCount; f++ {
		if g.present(c.Rows[f].Probability) {
			counts[f] = c.Rows[f].Quantity
		}
	}

	var items []Item
	if g.present(c.Magic.Probability) {
		items, err = g.magicSlot(c.Magic)
		if err != nil {
			return Loot{}, fmt.Errorf("treasure type %s: %w", s.Code, err)
		}
	}

	loot := Loot{
		Copper:     counts[FieldCopper],
		Silver:     counts[FieldSilver],
		Electrum:   counts[FieldElectrum],
		Gold:       counts[FieldGold],
		Platinum:   counts[FieldPlatinum],
		Gems:       counts[FieldGems],
		Jewels:     counts[FieldJewels],
		MagicItems: items,
	}
	g.logger.Debug("treasure rolled",
		zap.String("type", s.Code),
		zap.Int("dragon_age", dragonAge),
		zap.Int("gold", loot.Gold),
		zap.Int("gems", loot.Gems),
		zap.Int("jewels", loot.Jewels),
		zap.Int("magic_items", len(loot.MagicItems)),
	)
	return loot, nil
}

// magicSlot generates the discrete items, then the scrolls, then the potions
// of a present magic item row.
func (g *Generator) magicSlot(m MagicChance) ([]Item, error) {
	items := make([]Item, 0, m.Items+m.Scrolls+m.Potions)
	for i := 0; i < m.Items; i++ {
		it, err := g.MagicItem(m.Column)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	for i := 0; i < m.Scrolls; i++ {
		s, err := g.Scroll()
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	for i := 0; i < m.Potions; i++ {
		p, err := g.Potion()
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, nil
}
