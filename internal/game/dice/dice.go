// Package dice provides the randomness abstraction and roll-result types
// consumed by the treasure and encounter generators.
package dice

import (
	"fmt"
	"strings"
)

// RollResult holds the full audit trail for a single dice roll evaluation.
//
// Postcondition: Total() == (sum(Dice) + Modifier) * max(Multiplier, 1).
type RollResult struct {
	Expression string // original expression string, e.g. "2d8*100"
	Dice       []int  // individual die results before modifier
	Modifier   int    // flat modifier (may be negative)
	Multiplier int    // scale applied after the modifier; 0 and 1 both mean unscaled
}

// Total returns the sum of all die results plus the modifier, scaled by the multiplier.
//
// Postcondition: return value == (sum(r.Dice) + r.Modifier) * max(r.Multiplier, 1).
func (r RollResult) Total() int {
	total := r.Modifier
	for _, d := range r.Dice {
		total += d
	}
	if r.Multiplier > 1 {
		total *= r.Multiplier
	}
	return total
}

// String returns a human-readable audit string in the format:
//
//	"2d6+3 → [4 5] +3 = 12"
//	"1d6*1000 → [4] +0 x1000 = 4000"
//
// Precondition: r.Expression is non-empty.
func (r RollResult) String() string {
	if r.Expression == "" {
		panic("dice: RollResult.String() precondition violated: Expression must be non-empty")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s → %v %+d", r.Expression, r.Dice, r.Modifier)
	if r.Multiplier > 1 {
		fmt.Fprintf(&b, " x%d", r.Multiplier)
	}
	fmt.Fprintf(&b, " = %d", r.Total())
	return b.String()
}

// Source is the randomness provider for dice rolls and presence checks.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
	// Float64 returns a random float in [0.0, 1.0).
	Float64() float64
}
