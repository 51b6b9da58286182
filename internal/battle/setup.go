package battle

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/yonti32-ux/roguelike-sub002/internal/ai"
	"github.com/yonti32-ux/roguelike-sub002/internal/combat"
	"github.com/yonti32-ux/roguelike-sub002/internal/config"
	"github.com/yonti32-ux/roguelike-sub002/internal/util"
)

const defaultMovePoints = 3

type Setup struct {
	Tuning     *config.TuningConfig
	Skills     *config.SkillsConfig
	Archetypes *config.ArchetypesConfig
	Scenario   *config.ScenarioConfig
	Seed       int64
	Logger     *zap.Logger
	Record     bool
}

// New builds a ready-to-run battle from loaded config: grid, roster and AI.
func New(st Setup) (*Session, error) {
	sc := st.Scenario
	if sc == nil {
		return nil, fmt.Errorf("battle setup: no scenario")
	}
	book := combat.NewSkillBook(st.Skills)
	s := NewSession(combat.ParseGrid(sc.Width, sc.Height, sc.Terrain), st.Tuning, util.New(st.Seed), st.Logger)
	s.Record(st.Record)

	archetypes := st.Archetypes.Index()
	profiles := map[string]string{}
	for id, a := range archetypes {
		profiles[id] = a.AIProfile
	}
	for _, su := range sc.Units {
		a, ok := archetypes[su.Archetype]
		if !ok {
			return nil, fmt.Errorf("unit %q: %w %q", su.Name, config.ErrUnknownArchetype, su.Archetype)
		}
		side := combat.SideAlly
		if su.Side == "enemy" {
			side = combat.SideEnemy
		}
		if _, err := s.SpawnArchetype(su.Name, a, side, combat.Pos{X: su.X, Y: su.Y}, book); err != nil {
			return nil, err
		}
	}
	if err := s.AttachAI(ai.Options{Profiles: profiles, Skills: book.All()}); err != nil {
		return nil, err
	}
	return s, nil
}

// SpawnArchetype creates a unit with the archetype's stats, skills and reactions.
func (s *Session) SpawnArchetype(name string, a *config.Archetype, side combat.Side, pos combat.Pos, book *combat.SkillBook) (*combat.Unit, error) {
	ent := &combat.Entity{
		ID:         name,
		Archetype:  a.ID,
		HP:         a.MaxHP,
		MaxHP:      a.MaxHP,
		Attack:     a.Attack,
		Defense:    a.Defense,
		Dodge:      a.Dodge,
		SkillPower: a.SkillPower,
		Mana:       a.Mana,
		MaxMana:    a.Mana,
		Stamina:    a.Stamina,
		MaxStamina: a.Stamina,
		Resist:     map[combat.DamageType]float64{},
	}
	for k, v := range a.Resist {
		ent.Resist[combat.DamageType(k)] = v
	}
	u, err := s.Spawn(name, side, pos, ent)
	if err != nil {
		return nil, err
	}
	u.Skills = book.Instantiate(a.Skills)
	u.WeaponRange = max(1, a.WeaponRange)
	u.MaxMovePoints = a.MovePoints
	if u.MaxMovePoints <= 0 {
		u.MaxMovePoints = defaultMovePoints
	}
	u.MovePoints = u.MaxMovePoints
	for _, r := range a.Reactions {
		u.Reactions[r] = true
	}
	return u, nil
}
