package sheet

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/cory-johannsen/rq3/internal/game/character"
	"github.com/cory-johannsen/rq3/internal/game/dice"
	"github.com/cory-johannsen/rq3/internal/game/rules"
)

// Service derives sheets, logs their warnings and keeps the most recent sheets
// in an LRU cache keyed by character ID.
//
// Service is safe for concurrent use; callers must not share one Character
// between goroutines that mutate it.
type Service struct {
	rules  *rules.Ruleset
	roller Roller
	logger *zap.Logger
	cache  *lru.Cache[string, Result]
}

// NewService creates a Service.
//
// Precondition: rs, roller and logger must be non-nil; size must be >= 1.
// Postcondition: Returns a ready Service or an error for an invalid cache size.
func NewService(rs *rules.Ruleset, roller Roller, logger *zap.Logger, size int) (*Service, error) {
	cache, err := lru.New[string, Result](size)
	if err != nil {
		return nil, fmt.Errorf("creating sheet cache: %w", err)
	}
	return &Service{rules: rs, roller: roller, logger: logger, cache: cache}, nil
}

// species resolves the character's species by name. An unknown name yields a
// warning and no species.
func (s *Service) species(c *character.Character) (*character.Species, []character.Warning) {
	if c.Species == "" {
		return nil, nil
	}
	sp, ok := s.rules.Species(c.Species)
	if !ok {
		return nil, []character.Warning{{Field: "species", Message: fmt.Sprintf("unknown species %q", c.Species)}}
	}
	return sp, nil
}

// Recompute derives c, logs each warning and caches a copy of the sheet under c.ID.
//
// Postcondition: c is not modified; mutating the returned sheet never alters the cache.
func (s *Service) Recompute(c *character.Character) Result {
	sp, warns := s.species(c)
	res := Derive(s.rules, c, sp)
	res.Warnings = append(warns, res.Warnings...)

	for _, w := range res.Warnings {
		s.logger.Warn("derive warning",
			zap.String("character", c.ID),
			zap.String("field", w.Field),
			zap.String("message", w.Message),
		)
	}
	s.logger.Debug("sheet derived",
		zap.String("character", c.ID),
		zap.Int("effective_hp", res.EffectiveHP),
		zap.Int("warnings", len(res.Warnings)),
	)
	if c.ID != "" {
		s.cache.Add(c.ID, res.Clone())
	}
	return res
}

// Sheet returns a copy of the cached sheet for id.
func (s *Service) Sheet(id string) (Result, bool) {
	res, ok := s.cache.Get(id)
	if !ok {
		return Result{}, false
	}
	return res.Clone(), true
}

// Invalidate drops the cached sheet for id.
func (s *Service) Invalidate(id string) {
	s.cache.Remove(id)
}

// RollSkill recomputes c in place, then rolls the named skill.
//
// Postcondition: on success c holds the derived values and the cached sheet is dropped.
func (s *Service) RollSkill(c *character.Character, name string, modifier int) (SkillRoll, error) {
	sp, _ := s.species(c)
	derived := Derive(s.rules, c, sp).Character
	roll, err := RollSkill(derived, s.rules, sp, name, modifier, s.roller)
	if err != nil {
		return SkillRoll{}, err
	}
	*c = *derived
	s.Invalidate(c.ID)
	s.logger.Info("skill roll",
		zap.String("character", c.ID),
		zap.String("skill", roll.Skill.Name),
		zap.Int("target", roll.Target),
		zap.Int("roll", roll.Outcome.Roll),
		zap.Bool("success", roll.Outcome.Success),
	)
	return roll, nil
}

// RollCharacteristic recomputes c in place, then rolls stat.
//
// Postcondition: on success c holds the derived values and the cached sheet is dropped.
func (s *Service) RollCharacteristic(c *character.Character, stat character.Stat, multiplier, modifier int) (CharacteristicRoll, error) {
	sp, _ := s.species(c)
	derived := Derive(s.rules, c, sp).Character
	roll, err := RollCharacteristic(derived, stat, multiplier, modifier, s.roller)
	if err != nil {
		return CharacteristicRoll{}, err
	}
	*c = *derived
	s.Invalidate(c.ID)
	s.logger.Info("characteristic roll",
		zap.String("character", c.ID),
		zap.String("stat", character.StatLabel(stat)),
		zap.Int("target", roll.Target),
		zap.Int("roll", roll.Outcome.Roll),
		zap.Bool("success", roll.Outcome.Success),
	)
	return roll, nil
}

// RollDamage recomputes c in place, then rolls the damage of the weapon itemID.
func (s *Service) RollDamage(c *character.Character, itemID string) (dice.RollResult, error) {
	sp, _ := s.species(c)
	derived := Derive(s.rules, c, sp).Character
	res, err := RollWeaponDamage(derived, itemID, s.roller)
	if err != nil {
		return dice.RollResult{}, err
	}
	*c = *derived
	s.Invalidate(c.ID)
	s.logger.Info("damage roll",
		zap.String("character", c.ID),
		zap.String("expression", res.Expression),
		zap.Int("total", res.Total()),
	)
	return res, nil
}
