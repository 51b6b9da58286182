package config

// TuningConfig holds every numeric knob of the combat pipeline and the AI. The AI values
// were tuned by feel; keep them named here rather than guessing intent in code.
type TuningConfig struct {
	Combat CombatTuning `yaml:"combat"`
	AI     AITuning     `yaml:"ai"`
}

type CombatTuning struct {
	FlankingBonus       float64 `yaml:"flanking_damage_bonus"`
	CoverReduction      float64 `yaml:"cover_damage_reduction"`
	CritMultiplier      float64 `yaml:"crit_damage_multiplier"`
	BaseCritChance      float64 `yaml:"base_crit_chance"`
	CounterReflect      float64 `yaml:"counter_reflect_multiplier"`
	ReactionMultiplier  float64 `yaml:"reaction_damage_multiplier"`
	RangedFalloff       float64 `yaml:"ranged_falloff"`
	RegenHealFraction   float64 `yaml:"regen_heal_fraction"`
	LifeDrainFraction   float64 `yaml:"life_drain_fraction"`
	HealPowerMultiplier float64 `yaml:"heal_power_multiplier"`
}

type AITuning struct {
	PathBudget int `yaml:"path_budget"`

	SupportHealChance   float64 `yaml:"support_heal_chance"`
	SupportBuffChance   float64 `yaml:"support_buff_chance"`
	CasterSupportChance float64 `yaml:"caster_support_chance"`
	CommanderBuffChance float64 `yaml:"commander_buff_chance"`
	HealThreshold       float64 `yaml:"heal_threshold"`

	DefensiveThreshold float64 `yaml:"defensive_threshold"`
	RageThreshold      float64 `yaml:"rage_threshold"`
	DefensiveChance    float64 `yaml:"defensive_chance"`

	FearChance         float64 `yaml:"fear_chance"`
	FearMinAdjacent    int     `yaml:"fear_min_adjacent"`
	ControlMinAdjacent int     `yaml:"control_min_adjacent"`

	DebuffChance    float64 `yaml:"debuff_chance"`
	OffensiveChance float64 `yaml:"offensive_chance"`
	CasterSkillBias float64 `yaml:"caster_skill_bias"`
	LifeDrainBoost  float64 `yaml:"life_drain_boost"`
	PoisonBoost     float64 `yaml:"poison_boost"`

	FocusMinFocusers int     `yaml:"focus_min_focusers"`
	FocusLowHP       float64 `yaml:"focus_low_hp"`
	ProtectHP        float64 `yaml:"protect_hp"`
	BerserkerLowHP   float64 `yaml:"berserker_low_hp"`
	IsolationAllies  int     `yaml:"isolation_max_allies"`

	CasterRange      int `yaml:"caster_preferred_range"`
	SupportRange     int `yaml:"support_preferred_range"`
	FormationSpacing int `yaml:"formation_spacing"`
	FlankSearchRange int `yaml:"flank_search_range"`

	BraceIncomingMult float64 `yaml:"brace_incoming_multiplier"`
}

func DefaultTuning() *TuningConfig {
	return &TuningConfig{
		Combat: CombatTuning{
			FlankingBonus:       1.25,
			CoverReduction:      0.75,
			CritMultiplier:      1.5,
			BaseCritChance:      0.1,
			CounterReflect:      1.5,
			ReactionMultiplier:  0.75,
			RangedFalloff:       0.15,
			RegenHealFraction:   0.1,
			LifeDrainFraction:   0.5,
			HealPowerMultiplier: 4,
		},
		AI: AITuning{
			PathBudget: 30,

			SupportHealChance:   0.8,
			SupportBuffChance:   0.6,
			CasterSupportChance: 0.5,
			CommanderBuffChance: 0.7,
			HealThreshold:       0.6,

			DefensiveThreshold: 0.5,
			RageThreshold:      0.3,
			DefensiveChance:    0.8,

			FearChance:         0.7,
			FearMinAdjacent:    2,
			ControlMinAdjacent: 1,

			DebuffChance:    0.8,
			OffensiveChance: 0.6,
			CasterSkillBias: 0.8,
			LifeDrainBoost:  0.3,
			PoisonBoost:     0.2,

			FocusMinFocusers: 2,
			FocusLowHP:       0.4,
			ProtectHP:        0.3,
			BerserkerLowHP:   0.5,
			IsolationAllies:  1,

			CasterRange:      3,
			SupportRange:     2,
			FormationSpacing: 2,
			FlankSearchRange: 4,

			BraceIncomingMult: 0.8,
		},
	}
}

// Validate clamps probabilities into [0,1] and restores non-positive sizes to defaults.
func (t *TuningConfig) Validate() {
	def := DefaultTuning()
	c := &t.Combat
	c.BaseCritChance = clamp(c.BaseCritChance, 0, 1)
	c.RangedFalloff = clamp(c.RangedFalloff, 0, 1)
	c.RegenHealFraction = clamp(c.RegenHealFraction, 0, 1)
	c.LifeDrainFraction = clamp(c.LifeDrainFraction, 0, 1)
	positive(&c.FlankingBonus, def.Combat.FlankingBonus)
	positive(&c.CoverReduction, def.Combat.CoverReduction)
	positive(&c.CritMultiplier, def.Combat.CritMultiplier)
	positive(&c.CounterReflect, def.Combat.CounterReflect)
	positive(&c.ReactionMultiplier, def.Combat.ReactionMultiplier)
	positive(&c.HealPowerMultiplier, def.Combat.HealPowerMultiplier)

	a := &t.AI
	for _, p := range []*float64{
		&a.SupportHealChance, &a.SupportBuffChance, &a.CasterSupportChance, &a.CommanderBuffChance,
		&a.HealThreshold, &a.DefensiveThreshold, &a.RageThreshold, &a.DefensiveChance,
		&a.FearChance, &a.DebuffChance, &a.OffensiveChance, &a.CasterSkillBias,
		&a.LifeDrainBoost, &a.PoisonBoost, &a.FocusLowHP, &a.ProtectHP, &a.BerserkerLowHP,
	} {
		*p = clamp(*p, 0, 1)
	}
	positiveInt(&a.PathBudget, def.AI.PathBudget)
	positiveInt(&a.FearMinAdjacent, def.AI.FearMinAdjacent)
	positiveInt(&a.ControlMinAdjacent, def.AI.ControlMinAdjacent)
	positiveInt(&a.FocusMinFocusers, def.AI.FocusMinFocusers)
	positiveInt(&a.CasterRange, def.AI.CasterRange)
	positiveInt(&a.SupportRange, def.AI.SupportRange)
	positiveInt(&a.FormationSpacing, def.AI.FormationSpacing)
	positiveInt(&a.FlankSearchRange, def.AI.FlankSearchRange)
	positive(&a.BraceIncomingMult, def.AI.BraceIncomingMult)
	if a.IsolationAllies < 0 {
		a.IsolationAllies = def.AI.IsolationAllies
	}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func positive(v *float64, def float64) {
	if *v <= 0 {
		*v = def
	}
}

func positiveInt(v *int, def int) {
	if *v <= 0 {
		*v = def
	}
}
