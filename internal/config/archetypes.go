package config

type ArchetypesConfig struct {
	Archetypes []Archetype `yaml:"archetypes"`
}

type Archetype struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	AIProfile   string             `yaml:"ai_profile"`
	MaxHP       int                `yaml:"max_hp"`
	Attack      int                `yaml:"attack_power"`
	Defense     int                `yaml:"defense"`
	Dodge       float64            `yaml:"dodge_chance"`
	SkillPower  float64            `yaml:"skill_power"`
	Mana        int                `yaml:"mana"`
	Stamina     int                `yaml:"stamina"`
	MovePoints  int                `yaml:"move_points"`
	WeaponRange int                `yaml:"weapon_range"`
	Resist      map[string]float64 `yaml:"resistances"`
	Skills      []string           `yaml:"skills"`
	Reactions   []string           `yaml:"reactions"`
	Note        string             `yaml:"note"`
}

// Index returns archetypes keyed by id.
func (ac *ArchetypesConfig) Index() map[string]*Archetype {
	out := map[string]*Archetype{}
	if ac == nil {
		return out
	}
	for i := range ac.Archetypes {
		out[ac.Archetypes[i].ID] = &ac.Archetypes[i]
	}
	return out
}
