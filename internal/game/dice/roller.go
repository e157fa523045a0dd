package dice

import "fmt"

// Roll evaluates expr with src.
//
// Precondition: expr must come from Parse; src must be non-nil.
// Postcondition: len(result.Dice) == expr.Count and every die is in [1, expr.Sides];
// result.Total() == (sum(result.Dice) + expr.Modifier) * expr.Multiplier.
func Roll(expr Expression, src Source) (RollResult, error) {
	if expr.Count < 1 || expr.Sides < 2 {
		return RollResult{}, fmt.Errorf("dice: cannot roll %d dice of %d sides", expr.Count, expr.Sides)
	}
	rolled := make([]int, expr.Count)
	for i := range rolled {
		rolled[i] = src.Intn(expr.Sides) + 1
	}
	return RollResult{
		Expression: expr.Raw,
		Dice:       rolled,
		Modifier:   expr.Modifier,
		Multiplier: expr.Multiplier,
	}, nil
}

// RollExpr parses expr and rolls it using src in a single call.
func RollExpr(expr string, src Source) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return Roll(e, src)
}
