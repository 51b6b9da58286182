package ai

import (
	"fmt"

	"github.com/yonti32-ux/roguelike-sub002/internal/combat"
)

type bruteStrategy struct{}

func (bruteStrategy) sealed()          {}
func (bruteStrategy) Profile() Profile { return Brute }

func (bruteStrategy) ChooseTarget(b *BattleAI, _ *combat.Unit, targets []*combat.Unit) *combat.Unit {
	return highestThreatTarget(b, targets)
}

func (s bruteStrategy) ExecuteTurn(b *BattleAI, u *combat.Unit, hpRatio float64) Action {
	t := b.Tuning
	return b.runPlan(s, u, hpRatio, plan{
		defendBelow:   t.DefensiveThreshold,
		rageBelow:     t.RageThreshold,
		controlMin:    t.FearMinAdjacent,
		offenseChance: t.OffensiveChance,
		move:          chaseTarget(s),
	})
}

type berserkerStrategy struct{}

func (berserkerStrategy) sealed()          {}
func (berserkerStrategy) Profile() Profile { return Berserker }

// Berserkers swing at whatever is closest once hurt, otherwise at the hardest hitter.
func (berserkerStrategy) ChooseTarget(b *BattleAI, u *combat.Unit, targets []*combat.Unit) *combat.Unit {
	if len(targets) == 0 {
		return nil
	}
	if u.HPRatio() < b.Tuning.BerserkerLowHP {
		return nearest(u, targets)
	}
	var best *combat.Unit
	for _, t := range targets {
		if best == nil || t.AttackPower() > best.AttackPower() {
			best = t
		}
	}
	return best
}

func (s berserkerStrategy) ExecuteTurn(b *BattleAI, u *combat.Unit, hpRatio float64) Action {
	t := b.Tuning
	return b.runPlan(s, u, hpRatio, plan{
		defendBelow:   t.RageThreshold,
		rageBelow:     t.RageThreshold,
		controlMin:    t.FearMinAdjacent,
		offenseChance: t.OffensiveChance,
		move:          chaseTarget(s),
	})
}

type defenderStrategy struct{}

func (defenderStrategy) sealed()          {}
func (defenderStrategy) Profile() Profile { return Defender }

// Defenders hit whoever is pressing a threatened ally.
func (defenderStrategy) ChooseTarget(b *BattleAI, u *combat.Unit, targets []*combat.Unit) *combat.Unit {
	if len(targets) == 0 {
		return nil
	}
	var pressing []*combat.Unit
	for _, ally := range b.threatenedAllies(u) {
		for _, e := range targets {
			if combat.Chebyshev(e.Pos, ally.Pos) == 1 {
				pressing = append(pressing, e)
			}
		}
	}
	if len(pressing) > 0 {
		return b.Threat.Highest(pressing)
	}
	return nearest(u, targets)
}

func (s defenderStrategy) ExecuteTurn(b *BattleAI, u *combat.Unit, hpRatio float64) Action {
	t := b.Tuning
	act := b.runPlan(s, u, hpRatio, plan{
		defendBelow:   t.DefensiveThreshold,
		rageBelow:     t.RageThreshold,
		controlMin:    t.FearMinAdjacent,
		offenseChance: t.OffensiveChance,
		move:          s.bodyblock,
	})
	if act == ActNone {
		b.Scene.AddStatus(u, combat.StatusEffect{Name: "braced", Duration: 2, IncomingMult: t.BraceIncomingMult})
		b.Scene.Log(fmt.Sprintf("%s braces.", u.Name))
		return ActDefend
	}
	return act
}

// bodyblock steps between the most threatened ally and its nearest attacker.
func (s defenderStrategy) bodyblock(b *BattleAI, u *combat.Unit) bool {
	enemies := b.enemiesOf(u)
	var ward *combat.Unit
	for _, a := range b.threatenedAllies(u) {
		if ward == nil || a.HPRatio() < ward.HPRatio() {
			ward = a
		}
	}
	if ward != nil {
		if e := nearest(ward, enemies); e != nil {
			cell := ward.Pos.Add(combat.Sign(ward.Pos, e.Pos))
			if cell == u.Pos {
				return false
			}
			if cell != e.Pos && b.Pos.open(cell, u) && b.MoveTo(u, cell) {
				return true
			}
			return b.MoveTowardsTarget(u, e)
		}
	}
	return chaseTarget(s)(b, u)
}

// threatenedAllies lists teammates the coordinator says need guarding.
func (b *BattleAI) threatenedAllies(u *combat.Unit) []*combat.Unit {
	enemies := b.enemiesOf(u)
	var out []*combat.Unit
	for _, a := range b.alliesOf(u) {
		var near []*combat.Unit
		for _, e := range enemies {
			if combat.Chebyshev(e.Pos, a.Pos) <= 2 {
				near = append(near, e)
			}
		}
		if b.Coord.ShouldProtectAlly(a, b.ProfileOf(a), near) {
			out = append(out, a)
		}
	}
	return out
}

type commanderStrategy struct{}

func (commanderStrategy) sealed()          {}
func (commanderStrategy) Profile() Profile { return Commander }

func (commanderStrategy) ChooseTarget(b *BattleAI, _ *combat.Unit, targets []*combat.Unit) *combat.Unit {
	return highestThreatTarget(b, targets)
}

func (s commanderStrategy) ExecuteTurn(b *BattleAI, u *combat.Unit, hpRatio float64) Action {
	t := b.Tuning
	return b.runPlan(s, u, hpRatio, plan{
		healChance:    t.CommanderBuffChance,
		buffChance:    t.CommanderBuffChance,
		defendBelow:   t.DefensiveThreshold,
		rageBelow:     t.RageThreshold,
		controlMin:    t.FearMinAdjacent,
		offenseChance: t.OffensiveChance,
		move:          chaseTarget(s),
	})
}
