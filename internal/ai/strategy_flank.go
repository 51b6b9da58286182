package ai

import "github.com/yonti32-ux/roguelike-sub002/internal/combat"

type skirmisherStrategy struct{}

func (skirmisherStrategy) sealed()          {}
func (skirmisherStrategy) Profile() Profile { return Skirmisher }

// Skirmishers pick off the weakest enemy, favouring one they already flank on hp ties.
func (skirmisherStrategy) ChooseTarget(b *BattleAI, u *combat.Unit, targets []*combat.Unit) *combat.Unit {
	return lowestHPPreferring(targets, func(t *combat.Unit) bool { return b.Scene.IsFlanking(u, t) })
}

func (s skirmisherStrategy) ExecuteTurn(b *BattleAI, u *combat.Unit, hpRatio float64) Action {
	t := b.Tuning
	return b.runPlan(s, u, hpRatio, plan{
		defendBelow:   t.DefensiveThreshold,
		rageBelow:     t.RageThreshold,
		controlMin:    t.FearMinAdjacent,
		offenseChance: t.OffensiveChance,
		move:          flankOrChase(s, true),
	})
}

type assassinStrategy struct{}

func (assassinStrategy) sealed()          {}
func (assassinStrategy) Profile() Profile { return Assassin }

// Assassins hunt enemies standing apart from their team, weakest first.
func (assassinStrategy) ChooseTarget(b *BattleAI, _ *combat.Unit, targets []*combat.Unit) *combat.Unit {
	var alone []*combat.Unit
	for _, t := range targets {
		if b.isolated(t, b.Tuning.IsolationAllies) {
			alone = append(alone, t)
		}
	}
	if len(alone) > 0 {
		return lowestHP(alone)
	}
	return lowestHP(targets)
}

func (s assassinStrategy) ExecuteTurn(b *BattleAI, u *combat.Unit, hpRatio float64) Action {
	t := b.Tuning
	return b.runPlan(s, u, hpRatio, plan{
		defendBelow:   t.DefensiveThreshold,
		rageBelow:     t.RageThreshold,
		controlMin:    t.FearMinAdjacent,
		offenseChance: t.OffensiveChance,
		move:          flankOrChase(s, true),
	})
}

type tacticianStrategy struct{}

func (tacticianStrategy) sealed()          {}
func (tacticianStrategy) Profile() Profile { return Tactician }

func (tacticianStrategy) ChooseTarget(b *BattleAI, _ *combat.Unit, targets []*combat.Unit) *combat.Unit {
	return highestThreatTarget(b, targets)
}

func (s tacticianStrategy) ExecuteTurn(b *BattleAI, u *combat.Unit, hpRatio float64) Action {
	t := b.Tuning
	return b.runPlan(s, u, hpRatio, plan{
		defendBelow:   t.DefensiveThreshold,
		rageBelow:     t.RageThreshold,
		controlMin:    t.FearMinAdjacent,
		offenseChance: t.OffensiveChance,
		move:          flankOrChase(s, false),
	})
}
