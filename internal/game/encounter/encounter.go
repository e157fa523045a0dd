// Package encounter resolves random encounters from fixed monster lists keyed
// by environment.
package encounter

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/hoard/internal/game/monster"
	"github.com/cory-johannsen/hoard/internal/game/table"
)

// Environment selects which family of encounter lists applies.
type Environment string

const (
	Dungeon    Environment = "dungeon"
	Wilderness Environment = "wilderness"
	Urban      Environment = "urban"
)

func (e Environment) valid() bool {
	switch e {
	case Dungeon, Wilderness, Urban:
		return true
	}
	return false
}

// ParseEnvironment accepts an environment name in any case.
func ParseEnvironment(s string) (Environment, error) {
	if e := Environment(strings.ToLower(strings.TrimSpace(s))); e.valid() {
		return e, nil
	}
	return "", table.Configf("unknown environment %q", s)
}

// Terrain is a wilderness sub-environment.
type Terrain string

const (
	TerrainDesert    Terrain = "Desert/Barren"
	TerrainGrassland Terrain = "Grassland"
	TerrainInhabited Terrain = "Inhabited"
	TerrainJungle    Terrain = "Jungle"
	TerrainMountains Terrain = "Mountains/Hills"
	TerrainOcean     Terrain = "Ocean"
	TerrainRiver     Terrain = "River"
	TerrainSwamp     Terrain = "Swamp"
	TerrainWoods     Terrain = "Woods/Forest"
)

// Terrains lists every wilderness terrain.
func Terrains() []Terrain {
	return []Terrain{
		TerrainDesert, TerrainGrassland, TerrainInhabited, TerrainJungle, TerrainMountains,
		TerrainOcean, TerrainRiver, TerrainSwamp, TerrainWoods,
	}
}

// ParseTerrain matches a terrain name ignoring case. Either half of a
// compound name is accepted, so "forest" finds Woods/Forest.
func ParseTerrain(s string) (Terrain, error) {
	q := strings.ToLower(strings.TrimSpace(s))
	for _, t := range Terrains() {
		name := strings.ToLower(string(t))
		if q == name {
			return t, nil
		}
		for _, part := range strings.Split(name, "/") {
			if q == part {
				return t, nil
			}
		}
	}
	return "", table.Configf("unknown terrain %q", s)
}

// TimeOfDay selects the urban list.
type TimeOfDay string

const (
	Day   TimeOfDay = "day"
	Night TimeOfDay = "night"
)

// ParseTimeOfDay accepts "day" or "night" in any case.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	switch t := TimeOfDay(strings.ToLower(strings.TrimSpace(s))); t {
	case Day, Night:
		return t, nil
	}
	return "", table.Configf("unknown time of day %q", s)
}

// Details carries the sub-context of an environment. Only the field matching
// the environment is read: Level for dungeons, SubEnvironment for wilderness,
// Time for urban.
type Details struct {
	Level          int
	SubEnvironment Terrain
	Time           TimeOfDay
}

// NoEncounter is the text of an encounter check that came up empty.
const NoEncounter = "No encounter."

// Encounter is the outcome of one encounter check. The zero value is the
// no-encounter result.
type Encounter struct {
	// Listed is the name rolled on the encounter list.
	Listed  string          `json:"listed" yaml:"listed"`
	Monster monster.Monster `json:"monster" yaml:"monster"`
	// Count is the number appearing; 1 when the monster has no appearing roll.
	Count int `json:"count" yaml:"count"`
}

// Occurred reports whether a monster was encountered.
func (e Encounter) Occurred() bool { return e.Listed != "" }

// String renders the encounter, or NoEncounter.
func (e Encounter) String() string {
	if !e.Occurred() {
		return NoEncounter
	}
	if e.Count == 1 {
		return e.Monster.Name
	}
	return strconv.Itoa(e.Count) + " " + e.Monster.Name
}

// Monsters looks up reference records by name.
type Monsters interface {
	ByName(name string) (monster.Monster, bool)
}

// Resolver rolls encounters.
type Resolver struct {
	dice     table.Dice
	monsters Monsters
	logger   *zap.Logger
}

// NewResolver creates a Resolver.
//
// Precondition: d, monsters, and logger must be non-nil.
func NewResolver(d table.Dice, monsters Monsters, logger *zap.Logger) *Resolver {
	return &Resolver{dice: d, monsters: monsters, logger: logger}
}

// Encounter rolls the 1-in-6 check and, on a 1, a monster from the list for
// env and details.
//
// An unknown environment fails before any dice are rolled. Details are only
// read once the check succeeds, so a failed check is "no encounter" whatever
// they hold.
//
// Postcondition: Returns the zero Encounter when the check fails; a monster
// with Count >= 1 when it succeeds; or an error wrapping table.ErrConfiguration
// for an unknown environment, an unknown detail on a successful check, or a
// listed name that matches no monster.
func (r *Resolver) Encounter(env Environment, d Details) (Encounter, error) {
	if !env.valid() {
		return Encounter{}, table.Configf("unknown environment %q", env)
	}

	check, err := r.dice.RollExpr("1d6")
	if err != nil {
		return Encounter{}, fmt.Errorf("encounter check: %w", err)
	}
	if check.Total() > 1 {
		r.logger.Debug("no encounter", zap.String("environment", string(env)), zap.Int("check", check.Total()))
		return Encounter{}, nil
	}

	list, roll, err := listFor(env, d)
	if err != nil {
		return Encounter{}, err
	}
	idx, err := r.dice.RollExpr(roll)
	if err != nil {
		return Encounter{}, fmt.Errorf("encounter roll on %q: %w", list.Name(), err)
	}
	listed, err := list.Resolve(idx.Total())
	if err != nil {
		return Encounter{}, err
	}

	m, ok := r.monsters.ByName(listed)
	if !ok {
		r.logger.Error("encounter names unknown monster",
			zap.String("table", list.Name()),
			zap.String("name", listed),
		)
		return Encounter{}, table.Configf("encounter table %q: no monster matches %q", list.Name(), listed)
	}

	count := 1
	if m.Appearing != "" {
		n, err := r.dice.RollExpr(m.Appearing)
		if err != nil {
			return Encounter{}, fmt.Errorf("number appearing for %q: %w", m.Name, err)
		}
		if n.Total() > 1 {
			count = n.Total()
		}
	}

	r.logger.Debug("encounter rolled",
		zap.String("environment", string(env)),
		zap.String("table", list.Name()),
		zap.String("listed", listed),
		zap.String("monster", m.Name),
		zap.Int("count", count),
	)
	return Encounter{Listed: listed, Monster: m, Count: count}, nil
}

// listFor returns the list and the dice expression that indexes it.
func listFor(env Environment, d Details) (*table.Table[string], string, error) {
	switch env {
	case Dungeon:
		b, err := dungeonList(d.Level)
		if err != nil {
			return nil, "", err
		}
		return b, "1d12", nil
	case Wilderness:
		t, ok := wildernessTables[d.SubEnvironment]
		if !ok {
			return nil, "", table.Configf("unknown wilderness terrain %q", d.SubEnvironment)
		}
		return t, "2d8", nil
	case Urban:
		t, ok := urbanTables[d.Time]
		if !ok {
			return nil, "", table.Configf("unknown urban time of day %q", d.Time)
		}
		return t, "2d6", nil
	}
	return nil, "", table.Configf("unknown environment %q", env)
}

func dungeonList(level int) (*table.Table[string], error) {
	if level < 1 {
		return nil, table.Configf("dungeon level must be >= 1, got %d", level)
	}
	for _, b := range dungeonBands {
		if level >= b.MinLevel && (b.MaxLevel == 0 || level <= b.MaxLevel) {
			return b.Monsters, nil
		}
	}
	return nil, table.Configf("no dungeon band for level %d", level)
}

// Candidates returns every name on the list for env and details, in table order.
func Candidates(env Environment, d Details) ([]string, error) {
	t, _, err := listFor(env, d)
	if err != nil {
		return nil, err
	}
	return t.Values(), nil
}
