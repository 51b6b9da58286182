package ai

import "github.com/yonti32-ux/roguelike-sub002/internal/combat"

type casterStrategy struct{}

func (casterStrategy) sealed()          {}
func (casterStrategy) Profile() Profile { return Caster }

// Casters go for the weakest enemy, picking one out of cover when hp ties.
func (casterStrategy) ChooseTarget(b *BattleAI, u *combat.Unit, targets []*combat.Unit) *combat.Unit {
	return lowestHPPreferring(targets, func(t *combat.Unit) bool { return !b.Scene.HasCover(u, t) })
}

func (s casterStrategy) ExecuteTurn(b *BattleAI, u *combat.Unit, hpRatio float64) Action {
	t := b.Tuning
	return b.runPlan(s, u, hpRatio, plan{
		healChance:    t.CasterSupportChance,
		buffChance:    t.CasterSupportChance,
		defendBelow:   t.DefensiveThreshold,
		rageBelow:     t.RageThreshold,
		controlMin:    t.FearMinAdjacent,
		offenseChance: t.OffensiveChance,
		bestBias:      t.CasterSkillBias,
		move:          keepRange(s, func(b *BattleAI) int { return b.Tuning.CasterRange }),
	})
}

type supportStrategy struct{}

func (supportStrategy) sealed()          {}
func (supportStrategy) Profile() Profile { return Support }

func (supportStrategy) ChooseTarget(_ *BattleAI, _ *combat.Unit, targets []*combat.Unit) *combat.Unit {
	return lowestHPTarget(targets)
}

func (s supportStrategy) ExecuteTurn(b *BattleAI, u *combat.Unit, hpRatio float64) Action {
	t := b.Tuning
	return b.runPlan(s, u, hpRatio, plan{
		healChance:    t.SupportHealChance,
		buffChance:    t.SupportBuffChance,
		defendBelow:   t.DefensiveThreshold,
		rageBelow:     t.RageThreshold,
		controlMin:    t.FearMinAdjacent,
		offenseChance: t.OffensiveChance,
		move:          s.move,
	})
}

// move keeps the healer out of melee and inside the formation.
func (s supportStrategy) move(b *BattleAI, u *combat.Unit) bool {
	enemies := b.enemiesOf(u)
	if adj := adjacent(u, enemies); len(adj) > 0 {
		if b.StepAway(u, nearest(u, adj).Pos) {
			return true
		}
	}
	if cell, ok := b.Pos.FindFormationPosition(u, b.alliesOf(u), b.Tuning.FormationSpacing); ok && cell != u.Pos {
		if b.MoveTo(u, cell) {
			return true
		}
	}
	return keepRange(s, func(b *BattleAI) int { return b.Tuning.SupportRange })(b, u)
}

type controllerStrategy struct{}

func (controllerStrategy) sealed()          {}
func (controllerStrategy) Profile() Profile { return Controller }

// Controllers spread marks: the most dangerous enemy not yet marked.
func (controllerStrategy) ChooseTarget(b *BattleAI, _ *combat.Unit, targets []*combat.Unit) *combat.Unit {
	var unmarked []*combat.Unit
	for _, t := range targets {
		if !t.HasStatus(combat.StatusMarked) {
			unmarked = append(unmarked, t)
		}
	}
	if len(unmarked) > 0 {
		return b.Threat.Highest(unmarked)
	}
	return b.Threat.Highest(targets)
}

func (s controllerStrategy) ExecuteTurn(b *BattleAI, u *combat.Unit, hpRatio float64) Action {
	t := b.Tuning
	return b.runPlan(s, u, hpRatio, plan{
		defendBelow:   t.DefensiveThreshold,
		rageBelow:     t.RageThreshold,
		controlMin:    t.ControlMinAdjacent,
		offenseChance: t.OffensiveChance,
		move:          keepRange(s, func(b *BattleAI) int { return b.Tuning.CasterRange }),
	})
}
