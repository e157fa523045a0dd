package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// Expression is a parsed dice expression: Count dice of Sides faces, plus
// Modifier, times Multiplier.
//
// Invariant: Count >= 1, Sides >= 2, Multiplier >= 1 after a successful Parse.
type Expression struct {
	Raw        string
	Count      int
	Sides      int
	Modifier   int
	Multiplier int
}

// Parse parses a dice expression. Supported forms: "d20", "2d6", "2d6+3",
// "4d8-2", "1d6*1000", "2d8x100", "1d4+1*10". Spaces and case are ignored.
//
// Postcondition: Returns a valid Expression or a descriptive error.
func Parse(expr string) (Expression, error) {
	if expr == "" {
		return Expression{}, fmt.Errorf("dice: empty expression")
	}
	s := strings.ToLower(strings.ReplaceAll(expr, " ", ""))

	// The multiplier binds loosest.
	s, multiplier, err := splitMultiplier(s)
	if err != nil {
		return Expression{}, fmt.Errorf("dice: invalid multiplier in %q: %w", expr, err)
	}

	countStr, rest, ok := strings.Cut(s, "d")
	if !ok {
		return Expression{}, fmt.Errorf("dice: missing 'd' in expression %q", expr)
	}
	count := 1
	if countStr != "" {
		if count, err = strconv.Atoi(countStr); err != nil {
			return Expression{}, fmt.Errorf("dice: invalid die count in %q: %w", expr, err)
		}
		if count < 1 {
			return Expression{}, fmt.Errorf("dice: invalid die count in %q: must be >= 1", expr)
		}
	}

	sidesStr, modStr := rest, ""
	if i := signOffset(rest); i >= 0 {
		sidesStr, modStr = rest[:i], rest[i:]
	}
	sides, err := strconv.Atoi(sidesStr)
	if err != nil {
		return Expression{}, fmt.Errorf("dice: invalid die sides in %q: %w", expr, err)
	}
	if sides < 2 {
		return Expression{}, fmt.Errorf("dice: invalid die sides in %q: must be >= 2", expr)
	}

	modifier := 0
	if modStr != "" {
		if modifier, err = strconv.Atoi(modStr); err != nil {
			return Expression{}, fmt.Errorf("dice: invalid modifier in %q: %w", expr, err)
		}
	}

	return Expression{
		Raw:        expr,
		Count:      count,
		Sides:      sides,
		Modifier:   modifier,
		Multiplier: multiplier,
	}, nil
}

// splitMultiplier removes a trailing "*N" or "xN" from s.
func splitMultiplier(s string) (string, int, error) {
	i := strings.LastIndexAny(s, "*x")
	if i < 0 {
		return s, 1, nil
	}
	m, err := strconv.Atoi(s[i+1:])
	if err != nil {
		return "", 0, err
	}
	if m < 1 {
		return "", 0, fmt.Errorf("must be >= 1, got %d", m)
	}
	return s[:i], m, nil
}

// signOffset returns the index of the first '+' or '-' after position 0, or -1.
func signOffset(s string) int {
	for i := 1; i < len(s); i++ {
		if s[i] == '+' || s[i] == '-' {
			return i
		}
	}
	return -1
}
