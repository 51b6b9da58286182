package ai

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"go.uber.org/zap"

	"github.com/yonti32-ux/roguelike-sub002/internal/combat"
)

// BonusEnv is what a skill bonus condition can see.
type BonusEnv struct {
	HPRatio  float64
	Enemies  int
	Allies   int
	Cooldown int
	Power    float64

	// Hostile is set for skills aimed at enemies.
	Hostile bool

	unit    *combat.Unit
	targets []*combat.Unit
}

// Owns reports whether the evaluating unit knows the skill id.
func (e BonusEnv) Owns(id string) bool { return e.unit != nil && e.unit.HasSkill(id) }

// AnyEnemyAbove reports an enemy in range above the hp ratio.
func (e BonusEnv) AnyEnemyAbove(ratio float64) bool {
	for _, t := range e.targets {
		if t.HPRatio() > ratio {
			return true
		}
	}
	return false
}

// AnyEnemyLacks reports an enemy in range without the named status.
func (e BonusEnv) AnyEnemyLacks(status string) bool {
	for _, t := range e.targets {
		if !t.HasStatus(status) {
			return true
		}
	}
	return false
}

func (e BonusEnv) Has(status string) bool { return e.unit != nil && e.unit.HasStatus(status) }

type bonusRule struct {
	src     string
	add     float64
	program *vm.Program
}

// Built-in situational bonuses, keyed by skill id.
var builtinBonuses = map[string][]combat.BonusRule{
	"berserker_rage": {{When: "HPRatio < 0.3", Add: 30}},
	"regeneration":   {{When: "HPRatio < 0.5", Add: 25}},
	"mark_target": {
		{When: "Hostile && Enemies > 0 && AnyEnemyAbove(0.5)", Add: 10},
		{When: `Owns("heavy_slam")`, Add: 5},
	},
	"dark_hex":       {{When: "Hostile && Enemies > 0 && AnyEnemyAbove(0.5)", Add: 10}},
	"crippling_blow": {{When: "Hostile && Enemies > 0 && AnyEnemyAbove(0.5)", Add: 10}},
	"life_drain":     {{When: "HPRatio < 0.5", Add: 20}},
	"poison_strike":  {{When: `AnyEnemyLacks("poisoned")`, Add: 8}},
	"disease_strike": {{When: `AnyEnemyLacks("poisoned")`, Add: 8}},
}

// SkillPrioritizer scores how useful a skill is right now.
type SkillPrioritizer struct {
	rules map[string][]bonusRule
	log   *zap.Logger
}

// NewSkillPrioritizer compiles the built-in bonuses plus any declared on skills.
func NewSkillPrioritizer(skills []*combat.Skill, log *zap.Logger) (*SkillPrioritizer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	sp := &SkillPrioritizer{rules: map[string][]bonusRule{}, log: log}
	for id, rs := range builtinBonuses {
		if err := sp.add(id, rs); err != nil {
			return nil, err
		}
	}
	for _, sk := range skills {
		if err := sp.add(sk.ID, sk.Bonuses); err != nil {
			return nil, err
		}
	}
	return sp, nil
}

func (sp *SkillPrioritizer) add(id string, rs []combat.BonusRule) error {
	for _, r := range rs {
		prog, err := expr.Compile(r.When, expr.Env(BonusEnv{}), expr.AsBool())
		if err != nil {
			return fmt.Errorf("compile bonus %q for skill %q: %w", r.When, id, err)
		}
		sp.rules[id] = append(sp.rules[id], bonusRule{src: r.When, add: r.Add, program: prog})
	}
	return nil
}

// EvaluateSkillValue scores sk for u. Unusable skills score -100.
func (sp *SkillPrioritizer) EvaluateSkillValue(u *combat.Unit, sk *combat.Skill, hpRatio float64, enemiesInRange, alliesInRange []*combat.Unit) float64 {
	if !u.Ready(sk) {
		return -100
	}
	v := sk.BasePower * 10
	if sk.Cooldown > 3 {
		v -= 5
	}
	if sk.TargetMode == combat.TargetSelf {
		if hpRatio < 0.5 {
			v += 20
		}
		if hpRatio < 0.3 {
			v += 15
		}
	}
	if sk.TargetMode.Enemy() && len(enemiesInRange) > 0 {
		v += 15
		if sk.AoERadius > 0 {
			v += float64(len(enemiesInRange)) * 10
		}
	}

	env := BonusEnv{
		HPRatio:  hpRatio,
		Enemies:  len(enemiesInRange),
		Allies:   len(alliesInRange),
		Cooldown: sk.Cooldown,
		Power:    sk.BasePower,
		Hostile:  sk.TargetMode.Enemy(),
		unit:     u,
		targets:  enemiesInRange,
	}
	for _, r := range sp.rules[sk.ID] {
		out, err := vm.Run(r.program, env)
		if err != nil {
			sp.log.Warn("skill bonus error", zap.String("skill", sk.ID), zap.String("when", r.src), zap.Error(err))
			continue
		}
		if ok, _ := out.(bool); ok {
			v += r.add
		}
	}
	return v
}

// GetBestSkill returns the highest scoring skill worth more than zero, or nil.
func (sp *SkillPrioritizer) GetBestSkill(u *combat.Unit, skills []*combat.Skill, hpRatio float64, enemiesInRange, alliesInRange []*combat.Unit) *combat.Skill {
	var best *combat.Skill
	bestV := 0.0
	for _, sk := range skills {
		if v := sp.EvaluateSkillValue(u, sk, hpRatio, enemiesInRange, alliesInRange); v > bestV {
			best, bestV = sk, v
		}
	}
	return best
}
