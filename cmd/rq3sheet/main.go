// Package main provides a CLI that derives a RuneQuest 3 character sheet from a
// YAML snapshot and optionally rolls a skill, characteristic or weapon.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/rq3/internal/config"
	"github.com/cory-johannsen/rq3/internal/game/character"
	"github.com/cory-johannsen/rq3/internal/game/dice"
	"github.com/cory-johannsen/rq3/internal/game/rules"
	"github.com/cory-johannsen/rq3/internal/game/sheet"
	"github.com/cory-johannsen/rq3/internal/observability"
)

// output is the YAML document written to stdout.
type output struct {
	Sheet sheet.Result `yaml:"sheet"`
	Roll  any          `yaml:"roll,omitempty"`
}

func main() {
	configPath := flag.String("config", "", "path to configuration file; empty uses defaults and RQ3_ environment")
	charPath := flag.String("character", "", "path to character YAML snapshot (required)")
	rollSkill := flag.String("roll-skill", "", "skill name to roll")
	rollChar := flag.String("roll-char", "", "characteristic to roll: STR CON SIZ INT POW DEX APP")
	rollDamage := flag.String("roll-damage", "", "inventory ID of a weapon whose damage to roll")
	multiplier := flag.Int("multiplier", sheet.DefaultMultiplier, "characteristic roll multiplier")
	modifier := flag.Int("modifier", 0, "situational modifier added to the roll target")
	flag.Parse()

	if *charPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging, "rq3sheet")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	rs, err := loadRules(cfg.Rules)
	if err != nil {
		logger.Fatal("loading rules", zap.Error(err))
	}

	src := dice.NewCryptoSource()
	if cfg.Dice.Seed != 0 {
		src = dice.NewSeededSource(cfg.Dice.Seed)
		logger.Info("using seeded dice", zap.Int64("seed", cfg.Dice.Seed))
	}

	svc, err := sheet.NewService(rs, dice.NewLoggedRoller(src, logger), logger, cfg.Cache.Size)
	if err != nil {
		logger.Fatal("creating sheet service", zap.Error(err))
	}

	c, err := character.LoadFile(*charPath)
	if err != nil {
		logger.Fatal("loading character", zap.Error(err))
	}

	var out output
	switch {
	case *rollSkill != "":
		out.Roll, err = svc.RollSkill(c, *rollSkill, *modifier)
	case *rollChar != "":
		stat, ok := character.ParseStat(*rollChar)
		if !ok {
			logger.Fatal("unknown characteristic", zap.String("characteristic", *rollChar))
		}
		out.Roll, err = svc.RollCharacteristic(c, stat, *multiplier, *modifier)
	case *rollDamage != "":
		var res dice.RollResult
		res, err = svc.RollDamage(c, *rollDamage)
		if err == nil {
			out.Roll = res.String()
		}
	}
	if err != nil {
		logger.Fatal("rolling", zap.Error(err))
	}
	out.Sheet = svc.Recompute(c)

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		logger.Fatal("writing sheet", zap.Error(err))
	}
	if err := enc.Close(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

func loadRules(cfg config.RulesConfig) (*rules.Ruleset, error) {
	if cfg.Dir == "" {
		return rules.Default()
	}
	return rules.LoadDir(cfg.Dir)
}
