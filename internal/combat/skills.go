package combat

import (
	"strings"

	"github.com/yonti32-ux/roguelike-sub002/internal/config"
)

type SkillKind string

const (
	KindAttack  SkillKind = "attack"
	KindHeal    SkillKind = "heal"
	KindBuff    SkillKind = "buff"
	KindDefense SkillKind = "defense"
	KindControl SkillKind = "control"
	KindDebuff  SkillKind = "debuff"
)

type TargetMode string

const (
	TargetSelf     TargetMode = "self"
	TargetAlly     TargetMode = "ally"
	TargetAllies   TargetMode = "allies"
	TargetEnemy    TargetMode = "enemy"
	TargetEnemyAoE TargetMode = "enemy_aoe"
	TargetAround   TargetMode = "around"
)

// Enemy reports modes that pick hostile targets.
func (m TargetMode) Enemy() bool {
	return m == TargetEnemy || m == TargetEnemyAoE || m == TargetAround
}

type RangeMetric string

const (
	MetricChebyshev RangeMetric = "chebyshev"
	MetricManhattan RangeMetric = "manhattan"
)

// Distance measures a to b with the metric; unknown metrics count as Manhattan.
func (m RangeMetric) Distance(a, b Pos) int {
	if m == MetricChebyshev {
		return Chebyshev(a, b)
	}
	return Manhattan(a, b)
}

type AppliedState struct {
	Status StatusEffect
	Self   bool
}

type BonusRule struct {
	When string
	Add  float64
}

type Skill struct {
	ID             string
	Name           string
	Kind           SkillKind
	TargetMode     TargetMode
	BasePower      float64
	Range          int
	Metric         RangeMetric
	Cooldown       int
	ManaCost       int
	StaminaCost    int
	AoERadius      int
	UsesSkillPower bool
	DamageType     DamageType
	Applies        []AppliedState
	Bonuses        []BonusRule
}

// InRange reports whether target lies within the skill's reach from caster.
func (sk *Skill) InRange(caster, target Pos) bool {
	return sk.Metric.Distance(caster, target) <= sk.Range
}

var damageTypes = map[string]DamageType{
	"fireball":       DamageFire,
	"flame_strike":   DamageFire,
	"inferno":        DamageFire,
	"frost_bolt":     DamageIce,
	"ice_lance":      DamageIce,
	"blizzard":       DamageIce,
	"poison_strike":  DamagePoison,
	"disease_strike": DamagePoison,
	"venom_spit":     DamagePoison,
	"arcane_bolt":    DamageMagic,
	"magic_missile":  DamageMagic,
	"dark_hex":       DamageMagic,
	"life_drain":     DamageMagic,
}

// DamageTypeFor maps a skill id to its damage type, physical when unknown.
func DamageTypeFor(skillID string) DamageType {
	if dt, ok := damageTypes[skillID]; ok {
		return dt
	}
	return DamagePhysical
}

var defaultKinds = map[string]SkillKind{
	"heal":           KindHeal,
	"mass_heal":      KindHeal,
	"healing_word":   KindHeal,
	"war_cry":        KindBuff,
	"bless":          KindBuff,
	"empower":        KindBuff,
	"rally":          KindBuff,
	"shield_wall":    KindDefense,
	"iron_skin":      KindDefense,
	"regeneration":   KindDefense,
	"counter_stance": KindDefense,
	"berserker_rage": KindDefense,
	"evasion":        KindDefense,
	"fear_scream":    KindControl,
	"stun_strike":    KindControl,
	"frost_nova":     KindControl,
	"mark_target":    KindDebuff,
	"dark_hex":       KindDebuff,
	"crippling_blow": KindDebuff,
}

// KindFor returns the configured kind or the built-in one for well-known ids.
func KindFor(id, configured string) SkillKind {
	if configured != "" {
		return SkillKind(strings.ToLower(configured))
	}
	if k, ok := defaultKinds[id]; ok {
		return k
	}
	return KindAttack
}

type SkillBook struct {
	byID map[string]*Skill
	ids  []string
}

func NewSkillBook(cfg *config.SkillsConfig) *SkillBook {
	sb := &SkillBook{byID: map[string]*Skill{}}
	if cfg == nil {
		return sb
	}
	for _, s := range cfg.Skills {
		sk := &Skill{
			ID:             s.ID,
			Name:           s.Name,
			Kind:           KindFor(s.ID, s.Kind),
			TargetMode:     TargetMode(s.TargetMode),
			BasePower:      s.BasePower,
			Range:          s.Range,
			Metric:         RangeMetric(s.RangeMetric),
			Cooldown:       s.CD,
			ManaCost:       s.ManaCost,
			StaminaCost:    s.StaminaCost,
			AoERadius:      s.AoERadius,
			UsesSkillPower: s.UsesSkillPower,
			DamageType:     DamageType(s.DamageType),
		}
		if sk.Name == "" {
			sk.Name = s.ID
		}
		if sk.TargetMode == "" {
			sk.TargetMode = defaultMode(sk.Kind)
		}
		if sk.Metric == "" {
			sk.Metric = MetricManhattan
		}
		if sk.DamageType == "" {
			sk.DamageType = DamageTypeFor(s.ID)
		}
		for _, ap := range s.Applies {
			if ap.ID == "" {
				continue
			}
			sk.Applies = append(sk.Applies, AppliedState{
				Status: StatusEffect{
					Name:          ap.ID,
					Duration:      ap.Duration,
					OutgoingMult:  ap.OutgoingMult,
					IncomingMult:  ap.IncomingMult,
					Stun:          ap.Stun,
					DamagePerTurn: ap.DamagePerTurn,
				},
				Self: ap.Self,
			})
		}
		for _, b := range s.Bonuses {
			sk.Bonuses = append(sk.Bonuses, BonusRule{When: b.When, Add: b.Add})
		}
		if _, dup := sb.byID[sk.ID]; !dup {
			sb.ids = append(sb.ids, sk.ID)
		}
		sb.byID[sk.ID] = sk
	}
	return sb
}

func defaultMode(k SkillKind) TargetMode {
	switch k {
	case KindHeal, KindBuff:
		return TargetAlly
	case KindDefense:
		return TargetSelf
	case KindControl:
		return TargetAround
	}
	return TargetEnemy
}

func (sb *SkillBook) Get(id string) *Skill {
	if sb == nil {
		return nil
	}
	return sb.byID[id]
}

// All returns the skills in definition order.
func (sb *SkillBook) All() []*Skill {
	out := make([]*Skill, 0, len(sb.ids))
	for _, id := range sb.ids {
		out = append(out, sb.byID[id])
	}
	return out
}

// Instantiate returns the skills for ids in the given order; unknown ids are skipped.
// Skills are shared read-only definitions; per-unit state lives in Unit.Cooldowns.
func (sb *SkillBook) Instantiate(ids []string) []*Skill {
	out := make([]*Skill, 0, len(ids))
	for _, id := range ids {
		if sk := sb.Get(id); sk != nil {
			out = append(out, sk)
		}
	}
	return out
}
