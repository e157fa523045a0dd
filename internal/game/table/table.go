// Package table implements cumulative-threshold weighted tables: the lookup
// every treasure, magic item, gem, and encounter generator is built on.
package table

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/hoard/internal/game/dice"
)

// ErrConfiguration marks malformed tables, unknown lookup keys, and rolls that
// fall outside a table. It is never a recoverable runtime condition.
var ErrConfiguration = errors.New("configuration error")

// Configf returns an error wrapping ErrConfiguration with a formatted message.
func Configf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

// Dice is the randomness surface consumed by generators.
//
// *dice.Roller satisfies Dice.
type Dice interface {
	// RollExpr evaluates a dice expression such as "1d100" or "2d8*100".
	RollExpr(expr string) (dice.RollResult, error)
	// Float64 returns a presence draw in [0.0, 1.0).
	Float64() float64
}

// Entry pairs a cumulative upper threshold with its outcome.
type Entry[T any] struct {
	Max   int
	Value T
}

// Row is shorthand for building an Entry.
func Row[T any](max int, value T) Entry[T] {
	return Entry[T]{Max: max, Value: value}
}

// Table is an ordered list of cumulative thresholds resolved by a single roll.
//
// Invariant: thresholds are strictly increasing, the first is >= 1, and the last
// equals Ceiling, so every roll in [1, Ceiling] matches exactly one entry.
type Table[T any] struct {
	name    string
	ceiling int
	entries []Entry[T]
}

// New builds a Table named name whose rolls range over [1, ceiling].
//
// Precondition: entries are non-empty and ordered by ascending Max.
// Postcondition: Returns a Table satisfying the threshold invariant, or an
// error wrapping ErrConfiguration naming the offending entry.
func New[T any](name string, ceiling int, entries ...Entry[T]) (*Table[T], error) {
	if len(entries) == 0 {
		return nil, Configf("table %q: no entries", name)
	}
	if ceiling < 1 {
		return nil, Configf("table %q: ceiling must be >= 1, got %d", name, ceiling)
	}
	prev := 0
	for i, e := range entries {
		if e.Max <= prev {
			return nil, Configf("table %q: threshold[%d]=%d is not greater than %d", name, i, e.Max, prev)
		}
		prev = e.Max
	}
	if prev != ceiling {
		return nil, Configf("table %q: final threshold %d does not equal ceiling %d", name, prev, ceiling)
	}
	return &Table[T]{name: name, ceiling: ceiling, entries: append([]Entry[T](nil), entries...)}, nil
}

// MustNew is New for package-level tables; it panics on a malformed table.
func MustNew[T any](name string, ceiling int, entries ...Entry[T]) *Table[T] {
	t, err := New(name, ceiling, entries...)
	if err != nil {
		panic("table: MustNew: " + err.Error())
	}
	return t
}

// Percentile is New with a ceiling of 100.
func Percentile[T any](name string, entries ...Entry[T]) *Table[T] {
	return MustNew(name, 100, entries...)
}

// Uniform builds a table giving each value an equal share of [1, len(values)].
func Uniform[T any](name string, values ...T) *Table[T] {
	entries := make([]Entry[T], len(values))
	for i, v := range values {
		entries[i] = Entry[T]{Max: i + 1, Value: v}
	}
	return MustNew(name, len(values), entries...)
}

// Resolve looks roll up against parallel threshold and outcome slices without
// building a Table. The thresholds are validated on every call.
func Resolve[T any](roll int, thresholds []int, outcomes []T) (T, error) {
	var zero T
	if len(thresholds) != len(outcomes) {
		return zero, Configf("resolve: %d thresholds for %d outcomes", len(thresholds), len(outcomes))
	}
	if len(thresholds) == 0 {
		return zero, Configf("resolve: empty table")
	}
	entries := make([]Entry[T], len(thresholds))
	for i := range thresholds {
		entries[i] = Entry[T]{Max: thresholds[i], Value: outcomes[i]}
	}
	t, err := New("inline", thresholds[len(thresholds)-1], entries...)
	if err != nil {
		return zero, err
	}
	return t.Resolve(roll)
}

// Name returns the table's name.
func (t *Table[T]) Name() string { return t.name }

// Ceiling returns the highest roll the table accepts.
func (t *Table[T]) Ceiling() int { return t.ceiling }

// Len returns the number of outcomes.
func (t *Table[T]) Len() int { return len(t.entries) }

// Thresholds returns a copy of the cumulative thresholds in order.
func (t *Table[T]) Thresholds() []int {
	out := make([]int, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Max
	}
	return out
}

// Values returns a copy of the outcomes in threshold order.
func (t *Table[T]) Values() []T {
	out := make([]T, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Value
	}
	return out
}

// Index returns the position of the first entry whose threshold is >= roll.
//
// Postcondition: Returns an error wrapping ErrConfiguration when roll < 1 or
// roll > Ceiling; there is no silent default.
func (t *Table[T]) Index(roll int) (int, error) {
	if roll < 1 || roll > t.ceiling {
		return -1, Configf("table %q: roll %d outside [1, %d]", t.name, roll, t.ceiling)
	}
	for i, e := range t.entries {
		if roll <= e.Max {
			return i, nil
		}
	}
	// Unreachable while the constructor invariant holds.
	return -1, Configf("table %q: roll %d matched no entry", t.name, roll)
}

// Resolve returns the outcome for roll.
func (t *Table[T]) Resolve(roll int) (T, error) {
	i, err := t.Index(roll)
	if err != nil {
		var zero T
		return zero, err
	}
	return t.entries[i].Value, nil
}

// Roll draws 1d<Ceiling> from d and resolves it, returning the index as well
// as the outcome so callers can branch on position.
func (t *Table[T]) Roll(d Dice) (T, int, error) {
	var zero T
	if t.ceiling == 1 {
		return t.entries[0].Value, 0, nil
	}
	res, err := d.RollExpr(fmt.Sprintf("1d%d", t.ceiling))
	if err != nil {
		return zero, -1, fmt.Errorf("rolling table %q: %w", t.name, err)
	}
	i, err := t.Index(res.Total())
	if err != nil {
		return zero, -1, err
	}
	return t.entries[i].Value, i, nil
}

// Pick is Roll without the index.
func (t *Table[T]) Pick(d Dice) (T, error) {
	v, _, err := t.Roll(d)
	return v, err
}
