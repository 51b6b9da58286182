package ai

import "github.com/yonti32-ux/roguelike-sub002/internal/combat"

// Strategy is one profile's behaviour. The set is closed: every implementation
// lives in this package.
type Strategy interface {
	Profile() Profile
	// ChooseTarget picks from targets, or returns nil when targets is empty.
	ChooseTarget(b *BattleAI, u *combat.Unit, targets []*combat.Unit) *combat.Unit
	// ExecuteTurn performs exactly one terminal action and reports which.
	ExecuteTurn(b *BattleAI, u *combat.Unit, hpRatio float64) Action

	sealed()
}

func newStrategies() [profileCount]Strategy {
	return [profileCount]Strategy{
		Brute:      bruteStrategy{},
		Skirmisher: skirmisherStrategy{},
		Caster:     casterStrategy{},
		Support:    supportStrategy{},
		Tactician:  tacticianStrategy{},
		Berserker:  berserkerStrategy{},
		Defender:   defenderStrategy{},
		Controller: controllerStrategy{},
		Assassin:   assassinStrategy{},
		Commander:  commanderStrategy{},
	}
}

// highestThreatTarget prefers a focus-fire target, then marked enemies, then raw threat.
func highestThreatTarget(b *BattleAI, targets []*combat.Unit) *combat.Unit {
	if len(targets) == 0 {
		return nil
	}
	if ft := b.Coord.GetFocusTarget(targets); ft != nil && b.Coord.ShouldFocusFire(ft, b.Tuning.FocusMinFocusers) {
		return ft
	}
	if marked := withStatus(targets, combat.StatusMarked); len(marked) > 0 {
		return b.Threat.Highest(marked)
	}
	return b.Threat.Highest(targets)
}

// lowestHPTarget prefers marked or cursed enemies, then the one with least hp.
func lowestHPTarget(targets []*combat.Unit) *combat.Unit {
	return lowestHPPreferring(targets, nil)
}

// lowestHPPreferring is lowestHPTarget where prefer settles equal-hp picks.
func lowestHPPreferring(targets []*combat.Unit, prefer func(*combat.Unit) bool) *combat.Unit {
	pool := withStatus(targets, combat.StatusMarked, combat.StatusCursed)
	if len(pool) == 0 {
		pool = targets
	}
	if prefer == nil {
		return lowestHP(pool)
	}
	var best *combat.Unit
	bestPref := false
	for _, t := range pool {
		p := prefer(t)
		if best == nil || t.HP() < best.HP() || (t.HP() == best.HP() && p && !bestPref) {
			best, bestPref = t, p
		}
	}
	return best
}

func lowestHP(units []*combat.Unit) *combat.Unit {
	var best *combat.Unit
	for _, t := range units {
		if best == nil || t.HP() < best.HP() {
			best = t
		}
	}
	return best
}

func withStatus(units []*combat.Unit, names ...string) []*combat.Unit {
	var out []*combat.Unit
	for _, u := range units {
		for _, n := range names {
			if u.HasStatus(n) {
				out = append(out, u)
				break
			}
		}
	}
	return out
}

// isolated reports a unit with at most maxAllies living teammates adjacent.
func (b *BattleAI) isolated(t *combat.Unit, maxAllies int) bool {
	n := 0
	for _, a := range b.Scene.Living(t.Side) {
		if a != t && combat.Chebyshev(a.Pos, t.Pos) == 1 {
			n++
		}
	}
	return n <= maxAllies
}

// chaseTarget walks toward the strategy's pick among all living enemies.
func chaseTarget(s Strategy) func(b *BattleAI, u *combat.Unit) bool {
	return func(b *BattleAI, u *combat.Unit) bool {
		t := s.ChooseTarget(b, u, b.enemiesOf(u))
		if t == nil {
			return false
		}
		return b.MoveTowardsTarget(u, t)
	}
}

// flankOrChase moves to a flanking cell around the pick when one is reachable.
func flankOrChase(s Strategy, shuffle bool) func(b *BattleAI, u *combat.Unit) bool {
	return func(b *BattleAI, u *combat.Unit) bool {
		t := s.ChooseTarget(b, u, b.enemiesOf(u))
		if t == nil {
			return false
		}
		if cell, ok := b.Pos.FindFlankingPosition(u, t, b.Tuning.FlankSearchRange, shuffle); ok && cell != u.Pos {
			if b.MoveTo(u, cell) {
				return true
			}
		}
		return b.MoveTowardsTarget(u, t)
	}
}

// keepRange backs off from adjacent enemies, closes to weapon reach, and otherwise
// sidesteps toward the preferred distance.
func keepRange(s Strategy, preferred func(b *BattleAI) int) func(b *BattleAI, u *combat.Unit) bool {
	return func(b *BattleAI, u *combat.Unit) bool {
		enemies := b.enemiesOf(u)
		wr := b.Scene.WeaponRange(u)
		if wr > 1 {
			if adj := adjacent(u, enemies); len(adj) > 0 {
				if b.StepAway(u, nearest(u, adj).Pos) {
					return true
				}
			}
		}
		t := s.ChooseTarget(b, u, enemies)
		if t == nil {
			return false
		}
		reach := max(wr, preferred(b))
		if combat.Manhattan(u.Pos, t.Pos) > reach {
			if wr <= 1 {
				return b.MoveTowardsTarget(u, t)
			}
			return b.MoveWithin(u, t, reach)
		}
		if cell, ok := b.Pos.FindOptimalRangePosition(u, t, preferred(b), max(wr, 1)); ok {
			d := cell.Sub(u.Pos)
			return b.Scene.TryMoveUnit(u, d.X, d.Y)
		}
		return false
	}
}
