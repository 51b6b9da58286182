package config

type SkillsConfig struct {
	Skills []Skill `yaml:"skills"`
}

type Skill struct {
	ID             string         `yaml:"id"`
	Name           string         `yaml:"name"`
	Kind           string         `yaml:"kind"`
	TargetMode     string         `yaml:"target_mode"`
	BasePower      float64        `yaml:"base_power"`
	Range          int            `yaml:"range_tiles"`
	RangeMetric    string         `yaml:"range_metric"`
	CD             int            `yaml:"cooldown"`
	ManaCost       int            `yaml:"mana_cost"`
	StaminaCost    int            `yaml:"stamina_cost"`
	AoERadius      int            `yaml:"aoe_radius"`
	UsesSkillPower bool           `yaml:"uses_skill_power"`
	DamageType     string         `yaml:"damage_type"`
	Applies        []AppliedState `yaml:"applies"`
	Bonuses        []BonusRule    `yaml:"bonuses"`
	Note           string         `yaml:"note"`
}

// AppliedState is a status a skill puts on its target (or on the caster when Self is set).
type AppliedState struct {
	ID            string  `yaml:"id"`
	Duration      int     `yaml:"duration"`
	OutgoingMult  float64 `yaml:"outgoing_mult"`
	IncomingMult  float64 `yaml:"incoming_mult"`
	Stun          bool    `yaml:"stun"`
	DamagePerTurn int     `yaml:"damage_per_turn"`
	Self          bool    `yaml:"self"`
}

// BonusRule adds Add to a skill's value when the When expression holds.
type BonusRule struct {
	When string  `yaml:"when"`
	Add  float64 `yaml:"add"`
	Note string  `yaml:"note"`
}
