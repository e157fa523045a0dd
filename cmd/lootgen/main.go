// Package main provides lootgen, a one-shot CLI that rolls treasure hoards,
// appraises gems and jewels, and checks for wandering monsters.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/hoard/internal/config"
	"github.com/cory-johannsen/hoard/internal/game/dice"
	"github.com/cory-johannsen/hoard/internal/game/encounter"
	"github.com/cory-johannsen/hoard/internal/game/monster"
	"github.com/cory-johannsen/hoard/internal/game/treasure"
	"github.com/cory-johannsen/hoard/internal/observability"
	"github.com/cory-johannsen/hoard/internal/storage/postgres"
)

const usage = `usage: lootgen <command> [flags]

commands:
  loot       roll and appraise treasure hoards
  gems       appraise a number of gems and jewels
  encounter  make encounter checks
  types      list treasure type codes

run "lootgen <command> -h" for command flags`

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatalf("lootgen: %v", err)
	}
}

// globals are the flags every command accepts.
type globals struct {
	configPath string
	seed       uint64
	record     bool
}

func (g *globals) register(fs *flag.FlagSet) {
	fs.StringVar(&g.configPath, "config", "", "path to configuration file (defaults and HOARD_* environment when empty)")
	fs.Uint64Var(&g.seed, "seed", 0, "seed for reproducible rolls (overrides dice.source)")
	fs.BoolVar(&g.record, "record", false, "store results in the hoard ledger")
}

// env holds what a command needs once flags and configuration are resolved.
type env struct {
	cfg    config.Config
	logger *zap.Logger
	roller *dice.Roller
	ledger *postgres.HoardRepository
	close  func()
}

func setup(ctx context.Context, g globals) (*env, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if g.seed != 0 {
		cfg.Dice = config.DiceConfig{Source: "seeded", Seed: g.seed}
	}

	logger, err := observability.NewLogger(cfg.Logging, "lootgen")
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	src, err := dice.NewSource(cfg.Dice.Source, cfg.Dice.Seed)
	if err != nil {
		return nil, err
	}
	logger.Debug("dice source ready", observability.DiceFields(cfg.Dice)...)

	e := &env{
		cfg:    cfg,
		logger: logger,
		roller: dice.NewLoggedRoller(src, logger),
		close:  func() { _ = logger.Sync() },
	}
	if g.record {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connecting to hoard ledger: %w", err)
		}
		e.ledger = pool.Hoards()
		e.close = func() {
			pool.Close()
			_ = logger.Sync()
		}
	}
	return e, nil
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprintln(out, usage)
		return fmt.Errorf("no command given")
	}
	switch args[0] {
	case "loot":
		return runLoot(ctx, args[1:], out)
	case "gems":
		return runGems(ctx, args[1:], out)
	case "encounter":
		return runEncounter(ctx, args[1:], out)
	case "types":
		return writeYAML(out, treasure.Types())
	case "-h", "-help", "--help", "help":
		fmt.Fprintln(out, usage)
		return nil
	}
	return fmt.Errorf("unknown command %q", args[0])
}

func runLoot(ctx context.Context, args []string, out io.Writer) error {
	var g globals
	fs := flag.NewFlagSet("loot", flag.ContinueOnError)
	fs.SetOutput(out)
	g.register(fs)
	code := fs.String("type", "", "treasure type code: A-V or a dungeon level")
	age := fs.Int("dragon-age", 0, "dragon age category for type H")
	count := fs.Int("count", 1, "number of hoards to roll")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *code == "" {
		return fmt.Errorf("loot: -type is required")
	}
	if *count < 1 {
		return fmt.Errorf("loot: -count must be >= 1, got %d", *count)
	}

	e, err := setup(ctx, g)
	if err != nil {
		return err
	}
	defer e.close()

	gen := treasure.NewGenerator(e.roller, e.logger)
	hoards := make([]treasure.Hoard, 0, *count)
	for range *count {
		h, err := gen.Hoard(*code, *age)
		if err != nil {
			return err
		}
		if e.ledger != nil {
			rec, err := e.ledger.SaveHoard(ctx, h)
			if err != nil {
				return err
			}
			e.logger.Info("hoard recorded", zap.String("id", rec.ID.String()), zap.String("type", h.Type))
		}
		hoards = append(hoards, h)
	}
	return writeYAML(out, hoards)
}

func runGems(ctx context.Context, args []string, out io.Writer) error {
	var g globals
	fs := flag.NewFlagSet("gems", flag.ContinueOnError)
	fs.SetOutput(out)
	g.register(fs)
	gems := fs.Int("gems", 0, "number of gems to appraise")
	jewels := fs.Int("jewels", 0, "number of jewels to appraise")
	if err := fs.Parse(args); err != nil {
		return err
	}

	e, err := setup(ctx, g)
	if err != nil {
		return err
	}
	defer e.close()

	gen := treasure.NewGenerator(e.roller, e.logger)
	appraised, loot, err := gen.AppraiseGems(treasure.Loot{Gems: *gems, Jewels: *jewels})
	if err != nil {
		return err
	}
	pieces, err := gen.AppraiseJewels(loot)
	if err != nil {
		return err
	}
	return writeYAML(out, struct {
		Gems   []treasure.Gem   `yaml:"gems"`
		Jewels []treasure.Jewel `yaml:"jewels"`
	}{appraised, pieces})
}

// encounterResult is one printed encounter check.
type encounterResult struct {
	Result    string               `yaml:"result"`
	Encounter *encounter.Encounter `yaml:"encounter,omitempty"`
	Hoard     *treasure.Hoard      `yaml:"hoard,omitempty"`
}

func runEncounter(ctx context.Context, args []string, out io.Writer) error {
	var g globals
	fs := flag.NewFlagSet("encounter", flag.ContinueOnError)
	fs.SetOutput(out)
	g.register(fs)
	envName := fs.String("env", "dungeon", "environment: dungeon, wilderness, or urban")
	level := fs.Int("level", 1, "dungeon level")
	terrain := fs.String("terrain", "", "wilderness terrain, e.g. forest or swamp")
	tod := fs.String("time", "day", "urban time of day: day or night")
	checks := fs.Int("checks", 1, "number of encounter checks")
	withTreasure := fs.Bool("treasure", false, "roll each encountered monster's treasure type")
	monstersFile := fs.String("monsters", "", "monster reference file (overrides content.monsters_file)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *checks < 1 {
		return fmt.Errorf("encounter: -checks must be >= 1, got %d", *checks)
	}

	env, err := encounter.ParseEnvironment(*envName)
	if err != nil {
		return err
	}
	d := encounter.Details{Level: *level}
	switch env {
	case encounter.Wilderness:
		if d.SubEnvironment, err = encounter.ParseTerrain(*terrain); err != nil {
			return err
		}
	case encounter.Urban:
		if d.Time, err = encounter.ParseTimeOfDay(*tod); err != nil {
			return err
		}
	}

	e, err := setup(ctx, g)
	if err != nil {
		return err
	}
	defer e.close()

	path := e.cfg.Content.MonstersFile
	if *monstersFile != "" {
		path = *monstersFile
	}
	monsters, err := monster.LoadRegistry(path)
	if err != nil {
		return err
	}

	resolver := encounter.NewResolver(e.roller, monsters, e.logger)
	gen := treasure.NewGenerator(e.roller, e.logger)
	results := make([]encounterResult, 0, *checks)
	for range *checks {
		enc, err := resolver.Encounter(env, d)
		if err != nil {
			return err
		}
		res := encounterResult{Result: enc.String()}
		if enc.Occurred() {
			res.Encounter = &enc
			if *withTreasure && enc.Monster.Treasure != "" {
				h, err := gen.Hoard(enc.Monster.Treasure, 0)
				if err != nil {
					return fmt.Errorf("treasure for %s: %w", enc.Monster.Name, err)
				}
				res.Hoard = &h
			}
		}
		if e.ledger != nil {
			if _, err := e.ledger.SaveEncounter(ctx, env, enc); err != nil {
				return err
			}
		}
		results = append(results, res)
	}
	return writeYAML(out, results)
}

func writeYAML(out io.Writer, v any) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return enc.Close()
}
