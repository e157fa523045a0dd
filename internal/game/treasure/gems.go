package treasure

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/hoard/internal/game/table"
)

// ValueLadder is the fixed sequence of gem values in gold pieces. A stone that
// appraises at the top rung is a jewel, not a gem.
var ValueLadder = [...]int{5, 10, 50, 100, 500, 1000, 5000}

// JewelThreshold is the value at which a gem is promoted to a jewel.
const JewelThreshold = 5000

// Gem is one appraised lot of identical stones.
type Gem struct {
	Type    string `json:"type" yaml:"type"`
	Quality string `json:"quality" yaml:"quality"`
	Value   int    `json:"value" yaml:"value"`
	Amount  int    `json:"amount" yaml:"amount"`
}

// Jewel is one appraised piece of jewelry.
type Jewel struct {
	Type  string `json:"type" yaml:"type"`
	Value int    `json:"value" yaml:"value"`
}

type gemQuality struct {
	Name   string
	Rung   int // index into ValueLadder
	Amount string
}

var gemQualityTable = table.Percentile("gem quality",
	table.Row(20, gemQuality{"Ornamental", 1, "1d10"}),
	table.Row(45, gemQuality{"Semiprecious", 2, "1d8"}),
	table.Row(75, gemQuality{"Fancy", 3, "1d6"}),
	table.Row(95, gemQuality{"Precious", 4, "1d4"}),
	table.Row(100, gemQuality{"Gem", 5, "1d2"}),
)

// valueShift adjusts a base rung: Step moves along the ladder, otherwise the
// base value is scaled by Num/Den.
type valueShift struct {
	Step     int
	Num, Den int
}

func (s valueShift) apply(rung int) int {
	if s.Step != 0 {
		r := rung + s.Step
		if r < 0 {
			r = 0
		}
		if r >= len(ValueLadder) {
			r = len(ValueLadder) - 1
		}
		return ValueLadder[r]
	}
	return ValueLadder[rung] * s.Num / s.Den
}

// gemValueTable is indexed by 2d6, so rolls run 2..12 and the first bucket
// also spans the impossible 1.
var gemValueTable = table.MustNew("gem value adjustment", 12,
	table.Row(2, valueShift{Step: -1}),
	table.Row(3, valueShift{Num: 1, Den: 2}),
	table.Row(4, valueShift{Num: 3, Den: 4}),
	table.Row(9, valueShift{Num: 1, Den: 1}),
	table.Row(10, valueShift{Num: 3, Den: 2}),
	table.Row(11, valueShift{Num: 2, Den: 1}),
	table.Row(12, valueShift{Step: 1}),
)

var gemTypeTable = table.Percentile("gem type",
	table.Row(8, "Agate"),
	table.Row(10, "Alexandrite"),
	table.Row(14, "Amber"),
	table.Row(20, "Amethyst"),
	table.Row(24, "Aquamarine"),
	table.Row(30, "Bloodstone"),
	table.Row(35, "Carnelian"),
	table.Row(38, "Chrysoberyl"),
	table.Row(43, "Coral"),
	table.Row(46, "Diamond"),
	table.Row(49, "Emerald"),
	table.Row(55, "Garnet"),
	table.Row(60, "Jade"),
	table.Row(66, "Jasper"),
	table.Row(70, "Moonstone"),
	table.Row(76, "Onyx"),
	table.Row(80, "Opal"),
	table.Row(86, "Pearl"),
	table.Row(90, "Ruby"),
	table.Row(93, "Sapphire"),
	table.Row(97, "Topaz"),
	table.Row(100, "Turquoise"),
)

var jewelTypeTable = table.Percentile("jewel type",
	table.Row(4, "Anklet"),
	table.Row(10, "Belt"),
	table.Row(14, "Bowl"),
	table.Row(21, "Bracelet"),
	table.Row(27, "Brooch"),
	table.Row(32, "Buckle"),
	table.Row(37, "Chain"),
	table.Row(40, "Choker"),
	table.Row(42, "Circlet"),
	table.Row(46, "Clasp"),
	table.Row(51, "Comb"),
	table.Row(52, "Crown"),
	table.Row(55, "Cup"),
	table.Row(62, "Earring"),
	table.Row(65, "Flagon"),
	table.Row(68, "Goblet"),
	table.Row(73, "Knife"),
	table.Row(77, "Letter Opener"),
	table.Row(80, "Locket"),
	table.Row(82, "Medal"),
	table.Row(89, "Necklace"),
	table.Row(90, "Plate"),
	table.Row(95, "Pin"),
	table.Row(96, "Sceptre"),
	table.Row(99, "Statuette"),
	table.Row(100, "Tiara"),
)

// ExpandGems appraises count gems. Stones that appraise at JewelThreshold are
// not returned; their number is reported as promoted.
//
// Per stone the rolls are: quality (1d100), value adjustment (2d6), and for
// stones that stay gems, the lot amount and the gem type (1d100).
//
// Postcondition: len(gems) + promoted == count; no gem has Value >= JewelThreshold.
func (g *Generator) ExpandGems(count int) (gems []Gem, promoted int, err error) {
	if count < 0 {
		return nil, 0, table.Configf("gem count must be >= 0, got %d", count)
	}
	gems = []Gem{}
	for i := 0; i < count; i++ {
		q, err := gemQualityTable.Pick(g.dice)
		if err != nil {
			return nil, 0, err
		}
		adj, err := g.dice.RollExpr("2d6")
		if err != nil {
			return nil, 0, fmt.Errorf("gem value: %w", err)
		}
		shift, err := gemValueTable.Resolve(adj.Total())
		if err != nil {
			return nil, 0, err
		}
		value := shift.apply(q.Rung)
		if value >= JewelThreshold {
			promoted++
			continue
		}
		amount, err := g.dice.RollExpr(q.Amount)
		if err != nil {
			return nil, 0, fmt.Errorf("gem amount: %w", err)
		}
		name, err := gemTypeTable.Pick(g.dice)
		if err != nil {
			return nil, 0, err
		}
		gems = append(gems, Gem{Type: name, Quality: q.Name, Value: value, Amount: amount.Total()})
	}
	return gems, promoted, nil
}

// ExpandJewels appraises count pieces of jewelry at 2d8*100 each.
func (g *Generator) ExpandJewels(count int) ([]Jewel, error) {
	if count < 0 {
		return nil, table.Configf("jewel count must be >= 0, got %d", count)
	}
	jewels := []Jewel{}
	for i := 0; i < count; i++ {
		v, err := g.dice.RollExpr("2d8*100")
		if err != nil {
			return nil, fmt.Errorf("jewel value: %w", err)
		}
		name, err := jewelTypeTable.Pick(g.dice)
		if err != nil {
			return nil, err
		}
		jewels = append(jewels, Jewel{Type: name, Value: v.Total()})
	}
	return jewels, nil
}

// AppraiseGems expands loot.Gems. It returns the gems and a copy of loot whose
// Jewels count includes every promoted stone; loot itself is not modified.
func (g *Generator) AppraiseGems(loot Loot) ([]Gem, Loot, error) {
	gems, promoted, err := g.ExpandGems(loot.Gems)
	if err != nil {
		return nil, Loot{}, err
	}
	if promoted > 0 {
		g.logger.Debug("gems promoted to jewels", zap.Int("count", promoted))
	}
	return gems, loot.withJewels(promoted), nil
}

// AppraiseJewels expands loot.Jewels. Pass the Loot returned by AppraiseGems
// so promoted stones are included.
func (g *Generator) AppraiseJewels(loot Loot) ([]Jewel, error) {
	return g.ExpandJewels(loot.Jewels)
}
