// Package monster holds the monster reference table consulted by the
// encounter resolver.
package monster

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/hoard/internal/game/dice"
	"github.com/cory-johannsen/hoard/internal/game/treasure"
)

// Monster is one reference record.
type Monster struct {
	Name    string `yaml:"name" json:"name"`
	AC      int    `yaml:"ac" json:"ac"`
	HitDice string `yaml:"hit_dice" json:"hitDice"`
	// Appearing is the dice expression for the number encountered. Empty means one.
	Appearing string `yaml:"appearing" json:"appearing,omitempty"`
	Movement  string `yaml:"movement" json:"movement,omitempty"`
	// Treasure is a treasure type code; empty when the monster carries none.
	Treasure string `yaml:"treasure" json:"treasure,omitempty"`
	XP       int    `yaml:"xp" json:"xp"`
}

// Validate checks that the monster satisfies basic invariants.
//
// Precondition: m must not be nil.
// Postcondition: Returns nil iff Name and HitDice are non-empty, AC >= 1, XP >= 0,
// Appearing (if set) parses as a dice expression, and Treasure (if set) is a
// known treasure type.
func (m *Monster) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("monster: name must not be empty")
	}
	if m.AC < 1 {
		return fmt.Errorf("monster %q: ac must be >= 1", m.Name)
	}
	if m.HitDice == "" {
		return fmt.Errorf("monster %q: hit_dice must not be empty", m.Name)
	}
	if m.XP < 0 {
		return fmt.Errorf("monster %q: xp must be >= 0", m.Name)
	}
	if m.Appearing != "" {
		if _, err := dice.Parse(m.Appearing); err != nil {
			return fmt.Errorf("monster %q: appearing: %w", m.Name, err)
		}
	}
	if m.Treasure != "" {
		if _, err := treasure.ParseType(m.Treasure); err != nil {
			return fmt.Errorf("monster %q: %w", m.Name, err)
		}
	}
	return nil
}

// Registry is an immutable, ordered set of monsters.
type Registry struct {
	monsters []Monster
	byName   map[string]int
}

// NewRegistry validates monsters and indexes them by lower-case name.
//
// Postcondition: Returns a Registry preserving input order, or an error on the
// first invalid or duplicated monster.
func NewRegistry(monsters []Monster) (*Registry, error) {
	r := &Registry{
		monsters: make([]Monster, 0, len(monsters)),
		byName:   make(map[string]int, len(monsters)),
	}
	for i := range monsters {
		m := monsters[i]
		if err := m.Validate(); err != nil {
			return nil, err
		}
		key := strings.ToLower(m.Name)
		if _, dup := r.byName[key]; dup {
			return nil, fmt.Errorf("monster %q: duplicate name", m.Name)
		}
		r.byName[key] = len(r.monsters)
		r.monsters = append(r.monsters, m)
	}
	return r, nil
}

type registryFile struct {
	Monsters []Monster `yaml:"monsters"`
}

// LoadRegistryFromBytes parses a monster file of the form `monsters: [...]`.
func LoadRegistryFromBytes(data []byte) (*Registry, error) {
	var f registryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing monster YAML: %w", err)
	}
	if len(f.Monsters) == 0 {
		return nil, fmt.Errorf("monster YAML: no monsters defined")
	}
	return NewRegistry(f.Monsters)
}

// LoadRegistry reads and parses the monster file at path.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	r, err := LoadRegistryFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", path, err)
	}
	return r, nil
}

// ByName finds a monster by name, ignoring case. An exact match wins;
// otherwise the first monster, in load order, whose name contains name.
func (r *Registry) ByName(name string) (Monster, bool) {
	q := strings.ToLower(strings.TrimSpace(name))
	if q == "" {
		return Monster{}, false
	}
	if i, ok := r.byName[q]; ok {
		return r.monsters[i], true
	}
	for _, m := range r.monsters {
		if strings.Contains(strings.ToLower(m.Name), q) {
			return m, true
		}
	}
	return Monster{}, false
}

// All returns a copy of every monster in load order.
func (r *Registry) All() []Monster {
	return append([]Monster(nil), r.monsters...)
}

// Len returns the number of monsters.
func (r *Registry) Len() int { return len(r.monsters) }
