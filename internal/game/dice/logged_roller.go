package dice

import (
	"sync"

	"go.uber.org/zap"
)

// Roller wraps a Source and logger to provide logged dice rolling.
// All rolls are logged at debug level with expression, dice values, modifier,
// multiplier, and total. Parsed expressions are cached by their raw text since
// generators roll the same handful of table dice thousands of times.
type Roller struct {
	src    Source
	logger *zap.Logger
	parsed sync.Map // string -> Expression
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Roll evaluates expr and logs the result at debug level.
//
// Precondition: expr must come from Parse.
// Postcondition: result logged; returns RollResult or error.
func (r *Roller) Roll(expr Expression) (RollResult, error) {
	result, err := Roll(expr, r.src)
	if err != nil {
		return RollResult{}, err
	}
	r.logger.Debug("dice roll",
		zap.String("expression", result.Expression),
		zap.Ints("dice", result.Dice),
		zap.Int("modifier", result.Modifier),
		zap.Int("multiplier", result.Multiplier),
		zap.Int("total", result.Total()),
	)
	return result, nil
}

// RollExpr parses expr and rolls it, logging the result.
//
// Precondition: expr must be a valid dice expression string.
// Postcondition: Returns a RollResult or a parse/roll error.
func (r *Roller) RollExpr(expr string) (RollResult, error) {
	if cached, ok := r.parsed.Load(expr); ok {
		return r.Roll(cached.(Expression))
	}
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	r.parsed.Store(expr, e)
	return r.Roll(e)
}

// Float64 draws a presence value in [0.0, 1.0) from the underlying source.
func (r *Roller) Float64() float64 {
	v := r.src.Float64()
	r.logger.Debug("presence draw", zap.Float64("value", v))
	return v
}
