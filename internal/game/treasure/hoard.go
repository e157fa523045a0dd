package treasure

import "fmt"

// Hoard is a treasure roll with its gems and jewels appraised.
//
// Invariant: Loot.Jewels == len(Jewels), and Loot already includes every gem
// promoted to a jewel during appraisal.
type Hoard struct {
	Type      string  `json:"type" yaml:"type"`
	DragonAge int     `json:"dragonAge,omitempty" yaml:"dragonAge,omitempty"`
	Loot      Loot    `json:"loot" yaml:"loot"`
	Gems      []Gem   `json:"gems" yaml:"gems"`
	Jewels    []Jewel `json:"jewels" yaml:"jewels"`
}

// Value sums coins (converted to gold pieces), gems, and jewels. Magic items
// carry no listed value and are not counted.
func (h Hoard) Value() float64 {
	l := h.Loot
	v := float64(l.Copper)/100 + float64(l.Silver)/10 + float64(l.Electrum)/2 +
		float64(l.Gold) + float64(l.Platinum)*5
	for _, g := range h.Gems {
		v += float64(g.Value * g.Amount)
	}
	for _, j := range h.Jewels {
		v += float64(j.Value)
	}
	return v
}

// Hoard rolls treasure type code and appraises the result: Loot, then gems
// (promoting top-rung stones), then jewels.
func (g *Generator) Hoard(code string, dragonAge int) (Hoard, error) {
	c, err := ParseType(code)
	if err != nil {
		return Hoard{}, err
	}
	loot, err := g.Loot(c, dragonAge)
	if err != nil {
		return Hoard{}, err
	}
	gems, loot, err := g.AppraiseGems(loot)
	if err != nil {
		return Hoard{}, fmt.Errorf("appraising gems of type %s: %w", c, err)
	}
	jewels, err := g.AppraiseJewels(loot)
	if err != nil {
		return Hoard{}, fmt.Errorf("appraising jewels of type %s: %w", c, err)
	}
	return Hoard{Type: c, DragonAge: dragonAge, Loot: loot, Gems: gems, Jewels: jewels}, nil
}
